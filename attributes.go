// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// AttributeInfo is the wire-layer representation of a single attribute:
// a name (resolved through the constant pool) and an opaque,
// length-prefixed byte region whose interpretation depends on that
// name. This two-layer split — opaque bytes first, typed decode on
// demand — is what lets an unknown attribute survive a parse/serialize
// cycle byte-for-byte (spec §8 property 6) without the top-level frame
// needing to know about every attribute kind that exists.
type AttributeInfo struct {
	NameIndex CPIndex[*UTF8Info]
	Info      []byte
}

func readAttributeInfo(r *Reader) (AttributeInfo, error) {
	nameIdx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return AttributeInfo{}, err
	}
	info, err := r.ReadBlob(4)
	if err != nil {
		return AttributeInfo{}, err
	}
	return AttributeInfo{NameIndex: nameIdx, Info: info}, nil
}

func (a AttributeInfo) write(w *Writer) error {
	if err := writeCPIndex(w, a.NameIndex); err != nil {
		return err
	}
	return w.WriteBlob(4, a.Info)
}

// Name resolves the attribute's name through pool, returning "" and
// false if the index does not resolve to a UTF8 entry.
func (a AttributeInfo) Name(pool *ConstantPool) (string, bool) {
	return pool.UTF8At(a.NameIndex)
}

// Attributes is the u16-counted sequence of AttributeInfo attached to a
// ClassFile, FieldInfo, MethodInfo, or nested inside a Code attribute.
type Attributes struct {
	List []AttributeInfo
}

func readAttributes(r *Reader) (Attributes, error) {
	list, err := ReadSeq(r, 2, readAttributeInfo)
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{List: list}, nil
}

func (a Attributes) write(w *Writer) error {
	return WriteSeq(w, 2, a.List, func(w *Writer, ai AttributeInfo) error {
		return ai.write(w)
	})
}

// FindByName performs a linear scan (spec §4.4/§9: acceptable as a
// quality-of-implementation choice; memoizing by name is left to
// callers doing many repeated lookups) for the first attribute whose
// name resolves to want.
func (a Attributes) FindByName(pool *ConstantPool, want string) (AttributeInfo, bool) {
	for _, ai := range a.List {
		if name, ok := ai.Name(pool); ok && name == want {
			return ai, true
		}
	}
	return AttributeInfo{}, false
}

// FindAllByName returns every attribute (in order) whose name resolves
// to want. Some attribute kinds (none standard, but unknown vendor
// attributes in practice) may legally repeat.
func (a Attributes) FindAllByName(pool *ConstantPool, want string) []AttributeInfo {
	var out []AttributeInfo
	for _, ai := range a.List {
		if name, ok := ai.Name(pool); ok && name == want {
			out = append(out, ai)
		}
	}
	return out
}

// nameIndexOf finds (or, given a pool under construction, cannot
// create) the UTF8 index for name; attribute encoders require the
// caller to have already interned the attribute name string into the
// constant pool, exactly as the source requires for any symbol it
// writes back out.
func nameIndexOf(pool *ConstantPool, name string) (CPIndex[*UTF8Info], bool) {
	for i, e := range pool.entries {
		if u, ok := e.(*UTF8Info); ok && u.Str() == name {
			return CPIndex[*UTF8Info]{Index: uint16(logicalIndexOf(pool, i))}, true
		}
	}
	return CPIndex[*UTF8Info]{}, false
}

// logicalIndexOf returns the 1-based JVMS logical index of the dense
// entry at position dense.
func logicalIndexOf(pool *ConstantPool, dense int) int {
	for logical, d := range pool.logicalToDense {
		if d == dense {
			return logical
		}
	}
	return 0
}
