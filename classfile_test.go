// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import (
	"bytes"
	"errors"
	"testing"
)

// minimalClassFile builds the smallest legal ClassFile this module
// round-trips: java/lang/Object's own shape (no superclass), one
// constant pool entry pair (the class name plus its UTF8 backing), no
// fields, no methods, no attributes.
func minimalClassFile() *ClassFile {
	pool := newConstantPool([]CPEntry{
		&UTF8Info{Bytes: []byte("java/lang/Object")}, // logical 1
		&ClassInfo{NameIndex: CPIndex[*UTF8Info]{Index: 1}}, // logical 2
	})
	return &ClassFile{
		MinorVersion: 0,
		MajorVersion: 52,
		Pool:         pool,
		AccessFlags:  AccPublic | AccSuper,
		ThisClass:    CPIndex[*ClassInfo]{Index: 2},
		SuperClass:   OptionalCPIndex[*ClassInfo]{},
		opts:         &Options{},
	}
}

func TestClassFileWriteParseRoundTrip(t *testing.T) {
	want := minimalClassFile()

	out, err := want.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := NewBytes(out, &Options{})
	if err != nil {
		t.Fatalf("NewBytes: %v", err)
	}
	if err := got.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.MinorVersion != want.MinorVersion || got.MajorVersion != want.MajorVersion {
		t.Errorf("version mismatch: got %d.%d, want %d.%d", got.MajorVersion, got.MinorVersion, want.MajorVersion, want.MinorVersion)
	}
	if got.AccessFlags != want.AccessFlags {
		t.Errorf("access_flags mismatch: got %#x, want %#x", got.AccessFlags, want.AccessFlags)
	}
	if got.ThisClass.Index != want.ThisClass.Index {
		t.Errorf("this_class mismatch: got %d, want %d", got.ThisClass.Index, want.ThisClass.Index)
	}
	if got.SuperClass.Present() {
		t.Errorf("super_class should be absent, got %d", got.SuperClass.Index)
	}
	if got.Pool.Len() != want.Pool.Len() {
		t.Errorf("pool length mismatch: got %d, want %d", got.Pool.Len(), want.Pool.Len())
	}

	// Re-serializing the freshly parsed file must reproduce the exact
	// same bytes: this is the round-trip property spec §8 names.
	out2, err := got.Write()
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if !bytes.Equal(out, out2) {
		t.Errorf("round-trip bytes differ:\n first: % x\nsecond: % x", out, out2)
	}
}

func TestClassFileParseRejectsBadMagic(t *testing.T) {
	out, err := minimalClassFile().Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out[0] ^= 0xFF

	cf, err := NewBytes(out, &Options{})
	if err != nil {
		t.Fatalf("NewBytes: %v", err)
	}
	if err := cf.Parse(); err == nil {
		t.Error("Parse should reject a corrupted magic number")
	}
}

func TestClassFileParseRejectsTooSmall(t *testing.T) {
	cf, err := NewBytes([]byte{0xCA, 0xFE}, &Options{})
	if err != nil {
		t.Fatalf("NewBytes: %v", err)
	}
	if err := cf.Parse(); !errors.Is(err, ErrTooSmall) {
		t.Errorf("Parse on a too-small buffer: got %v, want %v", err, ErrTooSmall)
	}
}

func TestClassFileDetectsTrailingBytes(t *testing.T) {
	out, err := minimalClassFile().Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	out = append(out, 0x00, 0x01, 0x02)

	cf, err := NewBytes(out, &Options{DisableAnomalyChecks: true})
	if err != nil {
		t.Fatalf("NewBytes: %v", err)
	}
	if err := cf.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	found := false
	for _, a := range cf.Anomalies {
		if a == AnoTrailingBytes {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among anomalies, got %v", AnoTrailingBytes, cf.Anomalies)
	}
}

func TestClassFileZeroSuperClassOnlyValidForObject(t *testing.T) {
	cf := minimalClassFile()
	out, err := cf.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	parsed, err := NewBytes(out, &Options{})
	if err != nil {
		t.Fatalf("NewBytes: %v", err)
	}
	if err := parsed.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, a := range parsed.Anomalies {
		if a == AnoSuperClassAbsentNotObject {
			t.Errorf("java/lang/Object itself should not trip %q", AnoSuperClassAbsentNotObject)
		}
	}
}
