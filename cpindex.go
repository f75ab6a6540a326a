// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// CPIndex[T] is a 1-based index into a ConstantPool, logically
// constrained to referents of kind T. T is normally a concrete entry
// pointer type (e.g. *ClassInfo), giving exact-tag admissibility, or one
// of the union interfaces (ConstantValue, LoadableConstant) for the
// handful of fields JVMS allows to refer to more than one tag. This is
// the "runtime-checked admissibility set" flavor from spec §9 option
// (b), expressed with a generic type parameter so the check still
// happens once, centrally, in Resolve (via ConstantPool.entryAt) rather than being
// re-derived at every call site.
//
// Zero is never a valid value of a plain CPIndex[T]; fields where JVMS
// permits absence use OptionalCPIndex[T] instead.
type CPIndex[T CPEntry] struct {
	Index uint16
}

// IsZero reports whether the index is the reserved zero value. A bare
// CPIndex[T] should never be zero in a well-formed file; this is mainly
// useful while validating input.
func (i CPIndex[T]) IsZero() bool { return i.Index == 0 }

// Resolve looks the index up in pool, returning the zero value of T and
// false if the index is out of range or the referenced entry's tag is
// not admissible for T. Out-of-range and wrong-kind references are both
// folded into a plain "not found" per spec §4.2/§7 — the caller decides
// whether a given field is required.
func (i CPIndex[T]) Resolve(pool *ConstantPool) (T, bool) {
	var zero T
	entry, ok := pool.entryAt(i.Index)
	if !ok {
		return zero, false
	}
	v, ok := entry.(T)
	return v, ok
}

func readCPIndexRaw[T CPEntry](r *Reader) (CPIndex[T], error) {
	v, err := r.ReadU16()
	if err != nil {
		return CPIndex[T]{}, err
	}
	return CPIndex[T]{Index: v}, nil
}

func writeCPIndex[T CPEntry](w *Writer, idx CPIndex[T]) error {
	return w.WriteU16(idx.Index)
}

// OptionalCPIndex[T] models the zero-as-None convention (spec §4.3,
// "read_non_zero"/"write_non_zero"): fields such as inner_name_index,
// outer_class_info_index, or module_version_index where a 0 on the wire
// means "absent" rather than "invalid".
type OptionalCPIndex[T CPEntry] struct {
	Index uint16
}

// Present reports whether the optional index carries a value.
func (i OptionalCPIndex[T]) Present() bool { return i.Index != 0 }

// Get returns the underlying CPIndex[T] and true if Present, or the
// zero CPIndex[T] and false otherwise.
func (i OptionalCPIndex[T]) Get() (CPIndex[T], bool) {
	if !i.Present() {
		return CPIndex[T]{}, false
	}
	return CPIndex[T]{Index: i.Index}, true
}

// Resolve is a convenience combining Get and CPIndex.Resolve.
func (i OptionalCPIndex[T]) Resolve(pool *ConstantPool) (T, bool) {
	var zero T
	idx, ok := i.Get()
	if !ok {
		return zero, false
	}
	return idx.Resolve(pool)
}

func readOptionalCPIndexRaw[T CPEntry](r *Reader) (OptionalCPIndex[T], error) {
	v, err := r.ReadU16()
	if err != nil {
		return OptionalCPIndex[T]{}, err
	}
	return OptionalCPIndex[T]{Index: v}, nil
}

func writeOptionalCPIndex[T CPEntry](w *Writer, idx OptionalCPIndex[T]) error {
	return w.WriteU16(idx.Index)
}
