// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "testing"

// poolWithAttrNames builds a pool carrying one UTF8 entry per name
// given, in order, so EncodeXxx helpers (which require the attribute
// name to already be interned) have somewhere to find it.
func poolWithAttrNames(names ...string) *ConstantPool {
	entries := make([]CPEntry, len(names))
	for i, n := range names {
		entries[i] = &UTF8Info{Bytes: []byte(n)}
	}
	return newConstantPool(entries)
}

func TestConstantValueAttributeRoundTrip(t *testing.T) {
	pool := poolWithAttrNames(AttrConstantValue)
	pool.entries = append(pool.entries, &IntegerInfo{Value: 42})
	pool.buildIndex()

	want := ConstantValueAttribute{Value: CPIndex[ConstantValue]{Index: 2}}
	ai, err := EncodeConstantValue(pool, want)
	if err != nil {
		t.Fatalf("EncodeConstantValue: %v", err)
	}

	attrs := Attributes{List: []AttributeInfo{ai}}
	got, ok := attrs.ConstantValue(pool)
	if !ok {
		t.Fatal("ConstantValue: not found after encode")
	}
	if got.Value.Index != want.Value.Index {
		t.Errorf("ConstantValue index = %d, want %d", got.Value.Index, want.Value.Index)
	}
}

func TestSignatureAndSourceFileRoundTrip(t *testing.T) {
	pool := poolWithAttrNames(AttrSignature, AttrSourceFile)
	pool.entries = append(pool.entries, &UTF8Info{Bytes: []byte("LFoo;")}, &UTF8Info{Bytes: []byte("Foo.java")})
	pool.buildIndex()

	sig := Signature{SignatureIndex: CPIndex[*UTF8Info]{Index: 3}}
	sigAI, err := EncodeSignature(pool, sig)
	if err != nil {
		t.Fatalf("EncodeSignature: %v", err)
	}

	src := SourceFile{SourceFileIndex: CPIndex[*UTF8Info]{Index: 4}}
	srcAI, err := EncodeSourceFile(pool, src)
	if err != nil {
		t.Fatalf("EncodeSourceFile: %v", err)
	}

	attrs := Attributes{List: []AttributeInfo{sigAI, srcAI}}

	gotSig, ok := attrs.Signature(pool)
	if !ok || gotSig.SignatureIndex.Index != sig.SignatureIndex.Index {
		t.Errorf("Signature = %+v, ok=%v, want %+v", gotSig, ok, sig)
	}

	gotSrc, ok := attrs.SourceFile(pool)
	if !ok || gotSrc.SourceFileIndex.Index != src.SourceFileIndex.Index {
		t.Errorf("SourceFile = %+v, ok=%v, want %+v", gotSrc, ok, src)
	}
}

func TestSyntheticAndDeprecatedPresenceOnly(t *testing.T) {
	pool := poolWithAttrNames(AttrSynthetic, AttrDeprecated)

	empty := Attributes{}
	if empty.Synthetic(pool) {
		t.Error("Synthetic should be false when absent")
	}
	if empty.Deprecated(pool) {
		t.Error("Deprecated should be false when absent")
	}

	synAI, err := EncodeSynthetic(pool)
	if err != nil {
		t.Fatalf("EncodeSynthetic: %v", err)
	}
	depAI, err := EncodeDeprecated(pool)
	if err != nil {
		t.Fatalf("EncodeDeprecated: %v", err)
	}

	withBoth := Attributes{List: []AttributeInfo{synAI, depAI}}
	if !withBoth.Synthetic(pool) {
		t.Error("Synthetic should be true once encoded and present")
	}
	if !withBoth.Deprecated(pool) {
		t.Error("Deprecated should be true once encoded and present")
	}
	if len(synAI.Info) != 0 || len(depAI.Info) != 0 {
		t.Errorf("Synthetic/Deprecated must carry an empty payload, got %d/%d bytes", len(synAI.Info), len(depAI.Info))
	}
}

func TestEncodeFailsWithoutInternedName(t *testing.T) {
	pool := newConstantPool(nil)
	if _, err := EncodeSynthetic(pool); err == nil {
		t.Error("EncodeSynthetic should fail when the attribute name was never interned into the pool")
	}
}
