// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// Code is the typed view of a method's Code attribute (JVMS 4.7.3):
// the bytecode itself plus the exception table and nested attributes
// (StackMapTable, LineNumberTable, LocalVariableTable, ...).
//
// The exception table's {start_pc, end_pc, handler_pc, catch_type}
// records are structurally identical to the x64 unwind RUNTIME_FUNCTION
// table the teacher parses in exception.go ({Begin, End, Handler} RVA
// triples) — the same "flat array of PC-range-plus-handler records"
// shape, just bytecode offsets instead of RVAs.
type Code struct {
	MaxStack       uint16
	MaxLocals      uint16
	Bytes          []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     Attributes
}

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	// CatchType is zero (via OptionalCPIndex) for a catch-all (finally)
	// handler, otherwise resolves to the caught exception's ClassInfo.
	CatchType OptionalCPIndex[*ClassInfo]
}

func parseExceptionTableEntry(r *Reader) (ExceptionTableEntry, error) {
	start, err := r.ReadU16()
	if err != nil {
		return ExceptionTableEntry{}, err
	}
	end, err := r.ReadU16()
	if err != nil {
		return ExceptionTableEntry{}, err
	}
	handler, err := r.ReadU16()
	if err != nil {
		return ExceptionTableEntry{}, err
	}
	catch, err := readOptionalCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return ExceptionTableEntry{}, err
	}
	return ExceptionTableEntry{StartPC: start, EndPC: end, HandlerPC: handler, CatchType: catch}, nil
}

func (e ExceptionTableEntry) write(w *Writer) error {
	if err := w.WriteU16(e.StartPC); err != nil {
		return err
	}
	if err := w.WriteU16(e.EndPC); err != nil {
		return err
	}
	if err := w.WriteU16(e.HandlerPC); err != nil {
		return err
	}
	return writeOptionalCPIndex(w, e.CatchType)
}

func parseCode(r *Reader, pool *ConstantPool) (Code, error) {
	maxStack, err := r.ReadU16()
	if err != nil {
		return Code{}, err
	}
	maxLocals, err := r.ReadU16()
	if err != nil {
		return Code{}, err
	}
	code, err := r.ReadBlob(4)
	if err != nil {
		return Code{}, err
	}
	excTable, err := ReadSeq(r, 2, parseExceptionTableEntry)
	if err != nil {
		return Code{}, err
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return Code{}, err
	}
	return Code{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Bytes:          code,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

func writeCode(w *Writer, c Code, pool *ConstantPool) error {
	if err := w.WriteU16(c.MaxStack); err != nil {
		return err
	}
	if err := w.WriteU16(c.MaxLocals); err != nil {
		return err
	}
	if err := w.WriteBlob(4, c.Bytes); err != nil {
		return err
	}
	if err := WriteSeq(w, 2, c.ExceptionTable, func(w *Writer, e ExceptionTableEntry) error {
		return e.write(w)
	}); err != nil {
		return err
	}
	return c.Attributes.write(w)
}

// Code decodes the Code attribute from a MethodInfo's attribute set.
func (a Attributes) Code(pool *ConstantPool) (Code, bool) {
	return Decode(a, pool, AttrCode, parseCode)
}

// EncodeCode re-serializes c as a Code AttributeInfo.
func EncodeCode(pool *ConstantPool, c Code) (AttributeInfo, error) {
	return Encode(pool, AttrCode, c, writeCode)
}
