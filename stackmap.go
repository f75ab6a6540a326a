// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// VerificationTypeInfo is a single verifier type-state entry (JVMS
// 4.7.4), used inside StackMapFrame locals/stack lists.
type VerificationTypeInfo struct {
	Tag uint8
	// Object is populated only when Tag == VerifyObject.
	Object CPIndex[*ClassInfo]
	// Offset is populated only when Tag == VerifyUninitialized: the
	// bytecode offset of the `new` instruction that created the object.
	Offset uint16
}

func parseVerificationTypeInfo(r *Reader) (VerificationTypeInfo, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return VerificationTypeInfo{}, err
	}
	v := VerificationTypeInfo{Tag: tag}
	switch tag {
	case VerifyTop, VerifyInteger, VerifyFloat, VerifyDouble, VerifyLong,
		VerifyNull, VerifyUninitializedThis:
		// No payload.
	case VerifyObject:
		idx, err := readCPIndexRaw[*ClassInfo](r)
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		v.Object = idx
	case VerifyUninitialized:
		off, err := r.ReadU16()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		v.Offset = off
	default:
		return VerificationTypeInfo{}, &UnknownTagError{Tag: tag, Context: "VerificationTypeInfo"}
	}
	return v, nil
}

func (v VerificationTypeInfo) write(w *Writer) error {
	if err := w.WriteU8(v.Tag); err != nil {
		return err
	}
	switch v.Tag {
	case VerifyObject:
		return writeCPIndex(w, v.Object)
	case VerifyUninitialized:
		return w.WriteU16(v.Offset)
	default:
		return nil
	}
}

// StackMapFrameKind identifies a StackMapFrame's variant.
type StackMapFrameKind int

const (
	FrameKindSame StackMapFrameKind = iota
	FrameKindSameLocals1Stack
	FrameKindSameLocals1StackExtended
	FrameKindChop
	FrameKindSameExtended
	FrameKindAppend
	FrameKindFull
)

// StackMapFrame is one entry of a StackMapTable attribute (JVMS 4.7.4,
// spec §4.4.2). The wire tag both selects the variant and, for the
// compact forms, doubles as the payload (an implicit offset_delta or
// chop count) — exactly the table transcribed in spec §4.4.2; the
// commented-out `148..=250 => ChopFrame` range present in
// _examples/original_source/src/attr.rs is NOT followed (spec §9).
type StackMapFrame struct {
	Kind StackMapFrameKind

	// OffsetDelta is populated for every kind; for FrameKindSame and
	// FrameKindSameLocals1Stack it is derived from the tag (FrameTag
	// below) rather than read from the wire.
	OffsetDelta uint16

	// FrameTag is the raw wire tag, retained so FrameKindSame and
	// FrameKindSameLocals1Stack frames can recompute their implicit
	// offset delta and so Chop's count (251-tag) is recoverable.
	FrameTag uint8

	Stack   []VerificationTypeInfo // SameLocals1Stack(Extended): exactly one
	Locals  []VerificationTypeInfo // Append, Full
	StackVT []VerificationTypeInfo // Full
}

// ChopCount returns 251-tag for a FrameKindChop frame.
func (f StackMapFrame) ChopCount() int {
	return 251 - int(f.FrameTag)
}

func parseStackMapFrame(r *Reader) (StackMapFrame, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return StackMapFrame{}, err
	}
	switch {
	case tag <= FrameSameMax:
		return StackMapFrame{Kind: FrameKindSame, FrameTag: tag, OffsetDelta: uint16(tag)}, nil

	case tag >= FrameSameLocals1StackMin && tag <= FrameSameLocals1StackMax:
		vt, err := parseVerificationTypeInfo(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind:        FrameKindSameLocals1Stack,
			FrameTag:    tag,
			OffsetDelta: uint16(tag - FrameSameLocals1StackMin),
			Stack:       []VerificationTypeInfo{vt},
		}, nil

	case tag >= FrameReservedMin && tag <= FrameReservedMax:
		return StackMapFrame{}, &UnknownTagError{Tag: tag, Context: "StackMapFrame"}

	case tag == FrameSameLocals1StackExtended:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, err
		}
		vt, err := parseVerificationTypeInfo(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			Kind: FrameKindSameLocals1StackExtended, FrameTag: tag,
			OffsetDelta: delta, Stack: []VerificationTypeInfo{vt},
		}, nil

	case tag >= FrameChopMin && tag <= FrameChopMax:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameKindChop, FrameTag: tag, OffsetDelta: delta}, nil

	case tag == FrameSameExtended:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameKindSameExtended, FrameTag: tag, OffsetDelta: delta}, nil

	case tag >= FrameAppendMin && tag <= FrameAppendMax:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, err
		}
		count := int(tag) - 251
		locals := make([]VerificationTypeInfo, 0, count)
		for i := 0; i < count; i++ {
			vt, err := parseVerificationTypeInfo(r)
			if err != nil {
				return StackMapFrame{}, err
			}
			locals = append(locals, vt)
		}
		return StackMapFrame{Kind: FrameKindAppend, FrameTag: tag, OffsetDelta: delta, Locals: locals}, nil

	case tag == FrameFull:
		delta, err := r.ReadU16()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals, err := ReadSeq(r, 2, parseVerificationTypeInfo)
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := ReadSeq(r, 2, parseVerificationTypeInfo)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{Kind: FrameKindFull, FrameTag: tag, OffsetDelta: delta, Locals: locals, StackVT: stack}, nil

	default:
		return StackMapFrame{}, &UnknownTagError{Tag: tag, Context: "StackMapFrame"}
	}
}

func (f StackMapFrame) write(w *Writer) error {
	switch f.Kind {
	case FrameKindSame:
		return w.WriteU8(uint8(f.OffsetDelta))

	case FrameKindSameLocals1Stack:
		if err := w.WriteU8(uint8(f.OffsetDelta) + FrameSameLocals1StackMin); err != nil {
			return err
		}
		return f.Stack[0].write(w)

	case FrameKindSameLocals1StackExtended:
		if err := w.WriteU8(FrameSameLocals1StackExtended); err != nil {
			return err
		}
		if err := w.WriteU16(f.OffsetDelta); err != nil {
			return err
		}
		return f.Stack[0].write(w)

	case FrameKindChop:
		if err := w.WriteU8(f.FrameTag); err != nil {
			return err
		}
		return w.WriteU16(f.OffsetDelta)

	case FrameKindSameExtended:
		if err := w.WriteU8(FrameSameExtended); err != nil {
			return err
		}
		return w.WriteU16(f.OffsetDelta)

	case FrameKindAppend:
		if err := w.WriteU8(uint8(251 + len(f.Locals))); err != nil {
			return err
		}
		if err := w.WriteU16(f.OffsetDelta); err != nil {
			return err
		}
		for _, vt := range f.Locals {
			if err := vt.write(w); err != nil {
				return err
			}
		}
		return nil

	case FrameKindFull:
		if err := w.WriteU8(FrameFull); err != nil {
			return err
		}
		if err := w.WriteU16(f.OffsetDelta); err != nil {
			return err
		}
		if err := WriteSeq(w, 2, f.Locals, func(w *Writer, vt VerificationTypeInfo) error { return vt.write(w) }); err != nil {
			return err
		}
		return WriteSeq(w, 2, f.StackVT, func(w *Writer, vt VerificationTypeInfo) error { return vt.write(w) })

	default:
		return &UnknownTagError{Tag: f.FrameTag, Context: "StackMapFrame kind"}
	}
}

// StackMapTable is the typed view of a Code attribute's nested
// StackMapTable attribute (JVMS 4.7.4).
type StackMapTable struct {
	Frames []StackMapFrame
}

func parseStackMapTable(r *Reader, pool *ConstantPool) (StackMapTable, error) {
	frames, err := ReadSeq(r, 2, parseStackMapFrame)
	if err != nil {
		return StackMapTable{}, err
	}
	return StackMapTable{Frames: frames}, nil
}

func writeStackMapTable(w *Writer, t StackMapTable, pool *ConstantPool) error {
	return WriteSeq(w, 2, t.Frames, func(w *Writer, f StackMapFrame) error { return f.write(w) })
}

// StackMapTable decodes the StackMapTable attribute nested inside a
// Code attribute's own Attributes.
func (a Attributes) StackMapTable(pool *ConstantPool) (StackMapTable, bool) {
	return Decode(a, pool, AttrStackMapTable, parseStackMapTable)
}

// EncodeStackMapTable re-serializes t as a StackMapTable AttributeInfo.
func EncodeStackMapTable(pool *ConstantPool, t StackMapTable) (AttributeInfo, error) {
	return Encode(pool, AttrStackMapTable, t, writeStackMapTable)
}
