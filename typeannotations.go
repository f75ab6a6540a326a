// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// Type-path segment kinds, transcribed per spec §4.4.4's enumeration
// (Array=0, NestedType=1, WildcardBound=3, TypeArgument=4 — note index
// 2 is left unused by that table, unlike plain JVMS numbering; any
// other byte is rejected as an UnknownTag, consistent with spec §8
// property 8's "exhaustive tag set" requirement for 1-byte
// discriminators).
const (
	PathKindArray         uint8 = 0
	PathKindNestedType    uint8 = 1
	PathKindWildcardBound uint8 = 3
	PathKindTypeArgument  uint8 = 4
)

// Target-info kinds (JVMS 4.7.20.1). Every byte in 0x00..0x4B that JVMS
// assigns gets a name; this module transcribes the full table per
// spec §4.4.4's instruction to do so, the same way pe.go exhaustively
// names every ImageFileMachine*/ImageScn* constant rather than leaving
// gaps.
const (
	TargetClassTypeParameter       uint8 = 0x00
	TargetMethodTypeParameter      uint8 = 0x01
	TargetClassExtends             uint8 = 0x10
	TargetClassTypeParamBound      uint8 = 0x11
	TargetMethodTypeParamBound     uint8 = 0x12
	TargetField                    uint8 = 0x13
	TargetMethodReturn             uint8 = 0x14
	TargetMethodReceiver           uint8 = 0x15
	TargetMethodFormalParameter    uint8 = 0x16
	TargetThrows                   uint8 = 0x17
	TargetLocalVar                 uint8 = 0x40
	TargetResourceVar              uint8 = 0x41
	TargetExceptionParameter       uint8 = 0x42
	TargetInstanceOf               uint8 = 0x43
	TargetNew                      uint8 = 0x44
	TargetConstructorReference     uint8 = 0x45
	TargetMethodReference          uint8 = 0x46
	TargetCast                     uint8 = 0x47
	TargetConstructorInvocationArg uint8 = 0x48
	TargetMethodInvocationArg      uint8 = 0x49
	TargetConstructorReferenceArg  uint8 = 0x4A
	TargetMethodReferenceArg       uint8 = 0x4B
)

// TypePathSegment is one entry of a TypeAnnotation's target_path.
type TypePathSegment struct {
	Kind              uint8
	TypeArgumentIndex uint8
}

func parseTypePathSegment(r *Reader) (TypePathSegment, error) {
	kind, err := r.ReadU8()
	if err != nil {
		return TypePathSegment{}, err
	}
	switch kind {
	case PathKindArray, PathKindNestedType, PathKindWildcardBound, PathKindTypeArgument:
	default:
		return TypePathSegment{}, &UnknownTagError{Tag: kind, Context: "type_path segment"}
	}
	idx, err := r.ReadU8()
	if err != nil {
		return TypePathSegment{}, err
	}
	return TypePathSegment{Kind: kind, TypeArgumentIndex: idx}, nil
}

func (s TypePathSegment) write(w *Writer) error {
	if err := w.WriteU8(s.Kind); err != nil {
		return err
	}
	return w.WriteU8(s.TypeArgumentIndex)
}

// LocalVarTarget is one entry of a localvar_target table (target kinds
// 0x40/0x41).
type LocalVarTarget struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

func parseLocalVarTarget(r *Reader) (LocalVarTarget, error) {
	start, err := r.ReadU16()
	if err != nil {
		return LocalVarTarget{}, err
	}
	length, err := r.ReadU16()
	if err != nil {
		return LocalVarTarget{}, err
	}
	index, err := r.ReadU16()
	if err != nil {
		return LocalVarTarget{}, err
	}
	return LocalVarTarget{StartPC: start, Length: length, Index: index}, nil
}

func (t LocalVarTarget) write(w *Writer) error {
	if err := w.WriteU16(t.StartPC); err != nil {
		return err
	}
	if err := w.WriteU16(t.Length); err != nil {
		return err
	}
	return w.WriteU16(t.Index)
}

// TargetInfo is the tagged union of TypeAnnotation target kinds (JVMS
// 4.7.20.1). Only the fields relevant to Kind are populated; the
// trailing comment on each field lists the kinds that use it.
type TargetInfo struct {
	Kind uint8

	TypeParameterIndex uint8          // 0x00, 0x01, 0x11 (+BoundIndex), 0x12 (+BoundIndex)
	BoundIndex         uint8          // 0x11, 0x12
	SupertypeIndex     uint16         // 0x10
	FormalParamIndex   uint8          // 0x16
	ThrowsTypeIndex    uint16         // 0x17
	LocalVarTable      []LocalVarTarget // 0x40, 0x41
	ExceptionTableIdx  uint16         // 0x42
	Offset             uint16         // 0x43-0x46
	TypeArgumentIndex  uint8          // 0x47-0x4B (+ Offset)
}

func parseTargetInfo(r *Reader, kind uint8) (TargetInfo, error) {
	t := TargetInfo{Kind: kind}
	switch kind {
	case TargetClassTypeParameter, TargetMethodTypeParameter:
		v, err := r.ReadU8()
		if err != nil {
			return TargetInfo{}, err
		}
		t.TypeParameterIndex = v

	case TargetClassExtends:
		v, err := r.ReadU16()
		if err != nil {
			return TargetInfo{}, err
		}
		t.SupertypeIndex = v

	case TargetClassTypeParamBound, TargetMethodTypeParamBound:
		p, err := r.ReadU8()
		if err != nil {
			return TargetInfo{}, err
		}
		b, err := r.ReadU8()
		if err != nil {
			return TargetInfo{}, err
		}
		t.TypeParameterIndex = p
		t.BoundIndex = b

	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		// empty_target: no payload.

	case TargetMethodFormalParameter:
		v, err := r.ReadU8()
		if err != nil {
			return TargetInfo{}, err
		}
		t.FormalParamIndex = v

	case TargetThrows:
		v, err := r.ReadU16()
		if err != nil {
			return TargetInfo{}, err
		}
		t.ThrowsTypeIndex = v

	case TargetLocalVar, TargetResourceVar:
		table, err := ReadSeq(r, 2, parseLocalVarTarget)
		if err != nil {
			return TargetInfo{}, err
		}
		t.LocalVarTable = table

	case TargetExceptionParameter:
		v, err := r.ReadU16()
		if err != nil {
			return TargetInfo{}, err
		}
		t.ExceptionTableIdx = v

	case TargetInstanceOf, TargetNew, TargetConstructorReference, TargetMethodReference:
		v, err := r.ReadU16()
		if err != nil {
			return TargetInfo{}, err
		}
		t.Offset = v

	case TargetCast, TargetConstructorInvocationArg, TargetMethodInvocationArg,
		TargetConstructorReferenceArg, TargetMethodReferenceArg:
		off, err := r.ReadU16()
		if err != nil {
			return TargetInfo{}, err
		}
		idx, err := r.ReadU8()
		if err != nil {
			return TargetInfo{}, err
		}
		t.Offset = off
		t.TypeArgumentIndex = idx

	default:
		return TargetInfo{}, &UnknownTagError{Tag: kind, Context: "TypeAnnotation target_info"}
	}
	return t, nil
}

func (t TargetInfo) write(w *Writer) error {
	switch t.Kind {
	case TargetClassTypeParameter, TargetMethodTypeParameter:
		return w.WriteU8(t.TypeParameterIndex)

	case TargetClassExtends:
		return w.WriteU16(t.SupertypeIndex)

	case TargetClassTypeParamBound, TargetMethodTypeParamBound:
		if err := w.WriteU8(t.TypeParameterIndex); err != nil {
			return err
		}
		return w.WriteU8(t.BoundIndex)

	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		return nil

	case TargetMethodFormalParameter:
		return w.WriteU8(t.FormalParamIndex)

	case TargetThrows:
		return w.WriteU16(t.ThrowsTypeIndex)

	case TargetLocalVar, TargetResourceVar:
		return WriteSeq(w, 2, t.LocalVarTable, func(w *Writer, e LocalVarTarget) error { return e.write(w) })

	case TargetExceptionParameter:
		return w.WriteU16(t.ExceptionTableIdx)

	case TargetInstanceOf, TargetNew, TargetConstructorReference, TargetMethodReference:
		return w.WriteU16(t.Offset)

	case TargetCast, TargetConstructorInvocationArg, TargetMethodInvocationArg,
		TargetConstructorReferenceArg, TargetMethodReferenceArg:
		if err := w.WriteU16(t.Offset); err != nil {
			return err
		}
		return w.WriteU8(t.TypeArgumentIndex)

	default:
		return &UnknownTagError{Tag: t.Kind, Context: "TypeAnnotation target_info"}
	}
}

// TypeAnnotation extends Annotation with a target_info and target_path
// (JVMS 4.7.20).
type TypeAnnotation struct {
	TargetInfo TargetInfo
	TargetPath []TypePathSegment
	Annotation Annotation
}

func parseTypeAnnotation(r *Reader) (TypeAnnotation, error) {
	kind, err := r.ReadU8()
	if err != nil {
		return TypeAnnotation{}, err
	}
	target, err := parseTargetInfo(r, kind)
	if err != nil {
		return TypeAnnotation{}, err
	}
	path, err := ReadSeq(r, 1, parseTypePathSegment)
	if err != nil {
		return TypeAnnotation{}, err
	}
	ann, err := parseAnnotation(r)
	if err != nil {
		return TypeAnnotation{}, err
	}
	return TypeAnnotation{TargetInfo: target, TargetPath: path, Annotation: ann}, nil
}

func (t TypeAnnotation) write(w *Writer) error {
	if err := w.WriteU8(t.TargetInfo.Kind); err != nil {
		return err
	}
	if err := t.TargetInfo.write(w); err != nil {
		return err
	}
	if err := WriteSeq(w, 1, t.TargetPath, func(w *Writer, s TypePathSegment) error { return s.write(w) }); err != nil {
		return err
	}
	return t.Annotation.write(w)
}

// TypeAnnotations is the typed view shared by RuntimeVisibleTypeAnnotations
// and RuntimeInvisibleTypeAnnotations (JVMS 4.7.20).
type TypeAnnotations struct {
	List []TypeAnnotation
}

func parseTypeAnnotations(r *Reader, pool *ConstantPool) (TypeAnnotations, error) {
	list, err := ReadSeq(r, 2, parseTypeAnnotation)
	if err != nil {
		return TypeAnnotations{}, err
	}
	return TypeAnnotations{List: list}, nil
}

func writeTypeAnnotations(w *Writer, t TypeAnnotations, pool *ConstantPool) error {
	return WriteSeq(w, 2, t.List, func(w *Writer, a TypeAnnotation) error { return a.write(w) })
}

// RuntimeVisibleTypeAnnotations decodes that attribute from attrs.
func (a Attributes) RuntimeVisibleTypeAnnotations(pool *ConstantPool) (TypeAnnotations, bool) {
	return Decode(a, pool, AttrRuntimeVisibleTypeAnnotations, parseTypeAnnotations)
}

// RuntimeInvisibleTypeAnnotations decodes that attribute from attrs.
func (a Attributes) RuntimeInvisibleTypeAnnotations(pool *ConstantPool) (TypeAnnotations, bool) {
	return Decode(a, pool, AttrRuntimeInvisibleTypeAnnotations, parseTypeAnnotations)
}
