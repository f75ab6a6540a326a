// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// Decode locates the attribute named name within attrs, feeds its
// opaque payload through parse, and returns the typed result. Per spec
// §4.4/§7, a malformed or absent optional attribute is never fatal to
// the overall class file: any failure — lookup miss or decode error —
// collapses to (zero value, false) rather than propagating an error.
// This is the generic entry point the typed attribute accessors use;
// the presence-only Synthetic/Deprecated checks and
// SourceDebugExtension read the AttributeInfo directly instead.
func Decode[A any](attrs Attributes, pool *ConstantPool, name string, parse func(*Reader, *ConstantPool) (A, error)) (A, bool) {
	var zero A
	ai, ok := attrs.FindByName(pool, name)
	if !ok {
		return zero, false
	}
	v, err := parse(NewReader(ai.Info), pool)
	if err != nil {
		return zero, false
	}
	return v, true
}

// Encode re-serializes value through write and wraps it as an
// AttributeInfo named name. The name must already be present in pool
// as a UTF8 entry; otherwise Encode fails with an *IndexError and pool
// is left unchanged. This is the inverse of Decode: the opaque blob
// it produces is what actually lands on the wire (spec §4.4 "round-trip
// expectation" — typed values never auto-reconcile with the blob, the
// caller must explicitly re-encode).
func Encode[A any](pool *ConstantPool, name string, value A, write func(*Writer, A, *ConstantPool) error) (AttributeInfo, error) {
	idx, ok := nameIndexOf(pool, name)
	if !ok {
		return AttributeInfo{}, &IndexError{Pool: pool.Len()}
	}
	w := NewWriter()
	if err := write(w, value, pool); err != nil {
		return AttributeInfo{}, err
	}
	return AttributeInfo{NameIndex: idx, Info: w.Bytes()}, nil
}
