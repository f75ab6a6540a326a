// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// LineNumberEntry maps a bytecode offset to a source line (JVMS
// 4.7.12), the same shape as the OMAP entries the teacher's
// debug.go constants (ImageDebugTypeOMAPToSrc/OMAPFromSrc) name but
// does not itself decode: a flat table of {offset, mapped value} pairs.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

func parseLineNumberEntry(r *Reader) (LineNumberEntry, error) {
	pc, err := r.ReadU16()
	if err != nil {
		return LineNumberEntry{}, err
	}
	line, err := r.ReadU16()
	if err != nil {
		return LineNumberEntry{}, err
	}
	return LineNumberEntry{StartPC: pc, LineNumber: line}, nil
}

func (e LineNumberEntry) write(w *Writer) error {
	if err := w.WriteU16(e.StartPC); err != nil {
		return err
	}
	return w.WriteU16(e.LineNumber)
}

// LineNumberTable is the typed view of a Code attribute's nested
// LineNumberTable attribute (JVMS 4.7.12).
type LineNumberTable struct {
	Entries []LineNumberEntry
}

func parseLineNumberTable(r *Reader, pool *ConstantPool) (LineNumberTable, error) {
	entries, err := ReadSeq(r, 2, parseLineNumberEntry)
	if err != nil {
		return LineNumberTable{}, err
	}
	return LineNumberTable{Entries: entries}, nil
}

func writeLineNumberTable(w *Writer, t LineNumberTable, pool *ConstantPool) error {
	return WriteSeq(w, 2, t.Entries, func(w *Writer, e LineNumberEntry) error { return e.write(w) })
}

// LineNumberTable decodes the LineNumberTable attribute nested inside a
// Code attribute's own Attributes.
func (a Attributes) LineNumberTable(pool *ConstantPool) (LineNumberTable, bool) {
	return Decode(a, pool, AttrLineNumberTable, parseLineNumberTable)
}

// EncodeLineNumberTable re-serializes t as a LineNumberTable AttributeInfo.
func EncodeLineNumberTable(pool *ConstantPool, t LineNumberTable) (AttributeInfo, error) {
	return Encode(pool, AttrLineNumberTable, t, writeLineNumberTable)
}

// LocalVariableEntry is one entry of a LocalVariableTable (JVMS 4.7.13):
// the scope, slot, name and descriptor of one local variable.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       CPIndex[*UTF8Info]
	DescriptorIndex CPIndex[*UTF8Info]
	Index           uint16
}

func parseLocalVariableEntry(r *Reader) (LocalVariableEntry, error) {
	start, err := r.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	length, err := r.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	name, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return LocalVariableEntry{}, err
	}
	desc, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return LocalVariableEntry{}, err
	}
	index, err := r.ReadU16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	return LocalVariableEntry{
		StartPC: start, Length: length,
		NameIndex: name, DescriptorIndex: desc, Index: index,
	}, nil
}

func (e LocalVariableEntry) write(w *Writer) error {
	if err := w.WriteU16(e.StartPC); err != nil {
		return err
	}
	if err := w.WriteU16(e.Length); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.NameIndex); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.DescriptorIndex); err != nil {
		return err
	}
	return w.WriteU16(e.Index)
}

// LocalVariableTable is the typed view of a Code attribute's nested
// LocalVariableTable attribute (JVMS 4.7.13).
type LocalVariableTable struct {
	Entries []LocalVariableEntry
}

func parseLocalVariableTable(r *Reader, pool *ConstantPool) (LocalVariableTable, error) {
	entries, err := ReadSeq(r, 2, parseLocalVariableEntry)
	if err != nil {
		return LocalVariableTable{}, err
	}
	return LocalVariableTable{Entries: entries}, nil
}

func writeLocalVariableTable(w *Writer, t LocalVariableTable, pool *ConstantPool) error {
	return WriteSeq(w, 2, t.Entries, func(w *Writer, e LocalVariableEntry) error { return e.write(w) })
}

// LocalVariableTable decodes the LocalVariableTable attribute nested
// inside a Code attribute's own Attributes.
func (a Attributes) LocalVariableTable(pool *ConstantPool) (LocalVariableTable, bool) {
	return Decode(a, pool, AttrLocalVariableTable, parseLocalVariableTable)
}

// EncodeLocalVariableTable re-serializes t as a LocalVariableTable
// AttributeInfo.
func EncodeLocalVariableTable(pool *ConstantPool, t LocalVariableTable) (AttributeInfo, error) {
	return Encode(pool, AttrLocalVariableTable, t, writeLocalVariableTable)
}

// LocalVariableTypeEntry is one entry of a LocalVariableTypeTable (JVMS
// 4.7.14): same shape as LocalVariableEntry but carrying a generic
// signature instead of a descriptor.
type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      CPIndex[*UTF8Info]
	SignatureIndex CPIndex[*UTF8Info]
	Index          uint16
}

func parseLocalVariableTypeEntry(r *Reader) (LocalVariableTypeEntry, error) {
	start, err := r.ReadU16()
	if err != nil {
		return LocalVariableTypeEntry{}, err
	}
	length, err := r.ReadU16()
	if err != nil {
		return LocalVariableTypeEntry{}, err
	}
	name, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return LocalVariableTypeEntry{}, err
	}
	sig, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return LocalVariableTypeEntry{}, err
	}
	index, err := r.ReadU16()
	if err != nil {
		return LocalVariableTypeEntry{}, err
	}
	return LocalVariableTypeEntry{
		StartPC: start, Length: length,
		NameIndex: name, SignatureIndex: sig, Index: index,
	}, nil
}

func (e LocalVariableTypeEntry) write(w *Writer) error {
	if err := w.WriteU16(e.StartPC); err != nil {
		return err
	}
	if err := w.WriteU16(e.Length); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.NameIndex); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.SignatureIndex); err != nil {
		return err
	}
	return w.WriteU16(e.Index)
}

// LocalVariableTypeTable is the typed view of a Code attribute's nested
// LocalVariableTypeTable attribute (JVMS 4.7.14).
type LocalVariableTypeTable struct {
	Entries []LocalVariableTypeEntry
}

func parseLocalVariableTypeTable(r *Reader, pool *ConstantPool) (LocalVariableTypeTable, error) {
	entries, err := ReadSeq(r, 2, parseLocalVariableTypeEntry)
	if err != nil {
		return LocalVariableTypeTable{}, err
	}
	return LocalVariableTypeTable{Entries: entries}, nil
}

func writeLocalVariableTypeTable(w *Writer, t LocalVariableTypeTable, pool *ConstantPool) error {
	return WriteSeq(w, 2, t.Entries, func(w *Writer, e LocalVariableTypeEntry) error { return e.write(w) })
}

// LocalVariableTypeTable decodes the LocalVariableTypeTable attribute
// nested inside a Code attribute's own Attributes.
func (a Attributes) LocalVariableTypeTable(pool *ConstantPool) (LocalVariableTypeTable, bool) {
	return Decode(a, pool, AttrLocalVariableTypeTable, parseLocalVariableTypeTable)
}

// EncodeLocalVariableTypeTable re-serializes t as a
// LocalVariableTypeTable AttributeInfo.
func EncodeLocalVariableTypeTable(pool *ConstantPool, t LocalVariableTypeTable) (AttributeInfo, error) {
	return Encode(pool, AttrLocalVariableTypeTable, t, writeLocalVariableTypeTable)
}
