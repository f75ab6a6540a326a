// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// Annotation is a single runtime-visible or -invisible annotation
// (JVMS 4.7.16). Its element_value_pairs, and the ElementValue kinds
// they carry, recurse ('@' nested annotation, '[' array) — the same
// "container that can hold a nested instance of its own container"
// shape the teacher walks recursively over resource directory trees in
// resource.go, just keyed by a 1-byte ASCII tag instead of a directory
// bit.
type Annotation struct {
	TypeIndex           CPIndex[*UTF8Info]
	ElementValuePairs   []ElementValuePair
}

// ElementValuePair is one {name, value} entry of an Annotation.
type ElementValuePair struct {
	NameIndex CPIndex[*UTF8Info]
	Value     ElementValue
}

// ElementValue is the tagged union of annotation element values (JVMS
// 4.7.16.1, spec §4.4.4). Exactly 13 ASCII tags are valid; any other
// byte is an UnknownTag (spec §8 property 8).
type ElementValue struct {
	Tag uint8

	// ConstValueIndex is populated for tags B C D F I J S Z s c. It names
	// an Integer, Long, Float or Double entry for the primitive tags and a
	// UTF8 entry for 's' and 'c', so it is typed as a plain CPEntry index.
	ConstValueIndex CPIndex[CPEntry]

	// EnumTypeNameIndex/EnumConstNameIndex are populated for tag 'e'.
	EnumTypeNameIndex  CPIndex[*UTF8Info]
	EnumConstNameIndex CPIndex[*UTF8Info]

	// Annotation is populated for tag '@'.
	Annotation *Annotation

	// Array is populated for tag '['.
	Array []ElementValue
}

func parseAnnotation(r *Reader) (Annotation, error) {
	typeIdx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return Annotation{}, err
	}
	pairs, err := ReadSeq(r, 2, parseElementValuePair)
	if err != nil {
		return Annotation{}, err
	}
	return Annotation{TypeIndex: typeIdx, ElementValuePairs: pairs}, nil
}

func (a Annotation) write(w *Writer) error {
	if err := writeCPIndex(w, a.TypeIndex); err != nil {
		return err
	}
	return WriteSeq(w, 2, a.ElementValuePairs, func(w *Writer, p ElementValuePair) error { return p.write(w) })
}

func parseElementValuePair(r *Reader) (ElementValuePair, error) {
	nameIdx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return ElementValuePair{}, err
	}
	v, err := parseElementValue(r)
	if err != nil {
		return ElementValuePair{}, err
	}
	return ElementValuePair{NameIndex: nameIdx, Value: v}, nil
}

func (p ElementValuePair) write(w *Writer) error {
	if err := writeCPIndex(w, p.NameIndex); err != nil {
		return err
	}
	return p.Value.write(w)
}

func parseElementValue(r *Reader) (ElementValue, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return ElementValue{}, err
	}
	v := ElementValue{Tag: tag}
	switch tag {
	case ElemByte, ElemChar, ElemDouble, ElemFloat, ElemInt, ElemLong,
		ElemShort, ElemBoolean, ElemString, ElemClass:
		idx, err := readCPIndexRaw[CPEntry](r)
		if err != nil {
			return ElementValue{}, err
		}
		v.ConstValueIndex = idx

	case ElemEnum:
		typeName, err := readCPIndexRaw[*UTF8Info](r)
		if err != nil {
			return ElementValue{}, err
		}
		constName, err := readCPIndexRaw[*UTF8Info](r)
		if err != nil {
			return ElementValue{}, err
		}
		v.EnumTypeNameIndex = typeName
		v.EnumConstNameIndex = constName

	case ElemAnnotation:
		nested, err := parseAnnotation(r)
		if err != nil {
			return ElementValue{}, err
		}
		v.Annotation = &nested

	case ElemArray:
		arr, err := ReadSeq(r, 2, parseElementValue)
		if err != nil {
			return ElementValue{}, err
		}
		v.Array = arr

	default:
		return ElementValue{}, &UnknownTagError{Tag: tag, Context: "ElementValue"}
	}
	return v, nil
}

func (v ElementValue) write(w *Writer) error {
	if err := w.WriteU8(v.Tag); err != nil {
		return err
	}
	switch v.Tag {
	case ElemByte, ElemChar, ElemDouble, ElemFloat, ElemInt, ElemLong,
		ElemShort, ElemBoolean, ElemString, ElemClass:
		return writeCPIndex(w, v.ConstValueIndex)

	case ElemEnum:
		if err := writeCPIndex(w, v.EnumTypeNameIndex); err != nil {
			return err
		}
		return writeCPIndex(w, v.EnumConstNameIndex)

	case ElemAnnotation:
		return v.Annotation.write(w)

	case ElemArray:
		return WriteSeq(w, 2, v.Array, func(w *Writer, e ElementValue) error { return e.write(w) })

	default:
		return &UnknownTagError{Tag: v.Tag, Context: "ElementValue"}
	}
}

// Annotations is the typed view shared by RuntimeVisibleAnnotations and
// RuntimeInvisibleAnnotations (JVMS 4.7.16/4.7.17): a bare u16-counted
// list of Annotation.
type Annotations struct {
	List []Annotation
}

func parseAnnotations(r *Reader, pool *ConstantPool) (Annotations, error) {
	list, err := ReadSeq(r, 2, parseAnnotation)
	if err != nil {
		return Annotations{}, err
	}
	return Annotations{List: list}, nil
}

func writeAnnotations(w *Writer, a Annotations, pool *ConstantPool) error {
	return WriteSeq(w, 2, a.List, func(w *Writer, an Annotation) error { return an.write(w) })
}

// RuntimeVisibleAnnotations decodes that attribute from attrs.
func (a Attributes) RuntimeVisibleAnnotations(pool *ConstantPool) (Annotations, bool) {
	return Decode(a, pool, AttrRuntimeVisibleAnnotations, parseAnnotations)
}

// RuntimeInvisibleAnnotations decodes that attribute from attrs.
func (a Attributes) RuntimeInvisibleAnnotations(pool *ConstantPool) (Annotations, bool) {
	return Decode(a, pool, AttrRuntimeInvisibleAnnotations, parseAnnotations)
}

// EncodeRuntimeVisibleAnnotations re-serializes a.
func EncodeRuntimeVisibleAnnotations(pool *ConstantPool, a Annotations) (AttributeInfo, error) {
	return Encode(pool, AttrRuntimeVisibleAnnotations, a, writeAnnotations)
}

// EncodeRuntimeInvisibleAnnotations re-serializes a.
func EncodeRuntimeInvisibleAnnotations(pool *ConstantPool, a Annotations) (AttributeInfo, error) {
	return Encode(pool, AttrRuntimeInvisibleAnnotations, a, writeAnnotations)
}

// ParameterAnnotations is the typed view shared by
// RuntimeVisibleParameterAnnotations and RuntimeInvisibleParameterAnnotations
// (JVMS 4.7.18/4.7.19): a u8-counted outer sequence, one Annotations
// list per formal parameter.
type ParameterAnnotations struct {
	Parameters [][]Annotation
}

func parseParameterAnnotations(r *Reader, pool *ConstantPool) (ParameterAnnotations, error) {
	numParams, err := r.ReadU8()
	if err != nil {
		return ParameterAnnotations{}, err
	}
	params := make([][]Annotation, 0, numParams)
	for i := uint8(0); i < numParams; i++ {
		list, err := ReadSeq(r, 2, parseAnnotation)
		if err != nil {
			return ParameterAnnotations{}, err
		}
		params = append(params, list)
	}
	return ParameterAnnotations{Parameters: params}, nil
}

func writeParameterAnnotations(w *Writer, p ParameterAnnotations, pool *ConstantPool) error {
	if err := w.WriteU8(uint8(len(p.Parameters))); err != nil {
		return err
	}
	for _, list := range p.Parameters {
		if err := WriteSeq(w, 2, list, func(w *Writer, an Annotation) error { return an.write(w) }); err != nil {
			return err
		}
	}
	return nil
}

// RuntimeVisibleParameterAnnotations decodes that attribute from attrs.
func (a Attributes) RuntimeVisibleParameterAnnotations(pool *ConstantPool) (ParameterAnnotations, bool) {
	return Decode(a, pool, AttrRuntimeVisibleParameterAnnotations, parseParameterAnnotations)
}

// RuntimeInvisibleParameterAnnotations decodes that attribute from attrs.
func (a Attributes) RuntimeInvisibleParameterAnnotations(pool *ConstantPool) (ParameterAnnotations, bool) {
	return Decode(a, pool, AttrRuntimeInvisibleParameterAnnotations, parseParameterAnnotations)
}

// AnnotationDefault is the typed view of a method's AnnotationDefault
// attribute (JVMS 4.7.22): a bare ElementValue.
type AnnotationDefault struct {
	Value ElementValue
}

func parseAnnotationDefault(r *Reader, pool *ConstantPool) (AnnotationDefault, error) {
	v, err := parseElementValue(r)
	if err != nil {
		return AnnotationDefault{}, err
	}
	return AnnotationDefault{Value: v}, nil
}

func writeAnnotationDefault(w *Writer, d AnnotationDefault, pool *ConstantPool) error {
	return d.Value.write(w)
}

// AnnotationDefault decodes that attribute from attrs.
func (a Attributes) AnnotationDefault(pool *ConstantPool) (AnnotationDefault, bool) {
	return Decode(a, pool, AttrAnnotationDefault, parseAnnotationDefault)
}
