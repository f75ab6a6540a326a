// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "github.com/javaclass/javaclass/mutf8"

// ConstantValueAttribute is the typed view of a field's ConstantValue
// attribute (JVMS 4.7.2): a bare CPIndex to a ConstantValue-family
// entry (named with an Attribute suffix to avoid colliding with the
// ConstantValue admissibility interface in cpentry.go).
type ConstantValueAttribute struct {
	Value CPIndex[ConstantValue]
}

func parseConstantValueAttribute(r *Reader, pool *ConstantPool) (ConstantValueAttribute, error) {
	idx, err := readCPIndexRaw[ConstantValue](r)
	if err != nil {
		return ConstantValueAttribute{}, err
	}
	return ConstantValueAttribute{Value: idx}, nil
}

func writeConstantValueAttribute(w *Writer, c ConstantValueAttribute, pool *ConstantPool) error {
	return writeCPIndex(w, c.Value)
}

// ConstantValue decodes a field's ConstantValue attribute.
func (a Attributes) ConstantValue(pool *ConstantPool) (ConstantValueAttribute, bool) {
	return Decode(a, pool, AttrConstantValue, parseConstantValueAttribute)
}

// EncodeConstantValue re-serializes c as a ConstantValue AttributeInfo.
func EncodeConstantValue(pool *ConstantPool, c ConstantValueAttribute) (AttributeInfo, error) {
	return Encode(pool, AttrConstantValue, c, writeConstantValueAttribute)
}

// EnclosingMethod is the typed view of a class's EnclosingMethod
// attribute (JVMS 4.7.7).
type EnclosingMethod struct {
	ClassIndex  CPIndex[*ClassInfo]
	MethodIndex OptionalCPIndex[*NameAndTypeInfo]
}

func parseEnclosingMethod(r *Reader, pool *ConstantPool) (EnclosingMethod, error) {
	cls, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return EnclosingMethod{}, err
	}
	m, err := readOptionalCPIndexRaw[*NameAndTypeInfo](r)
	if err != nil {
		return EnclosingMethod{}, err
	}
	return EnclosingMethod{ClassIndex: cls, MethodIndex: m}, nil
}

func writeEnclosingMethod(w *Writer, e EnclosingMethod, pool *ConstantPool) error {
	if err := writeCPIndex(w, e.ClassIndex); err != nil {
		return err
	}
	return writeOptionalCPIndex(w, e.MethodIndex)
}

// EnclosingMethod decodes a class's EnclosingMethod attribute.
func (a Attributes) EnclosingMethod(pool *ConstantPool) (EnclosingMethod, bool) {
	return Decode(a, pool, AttrEnclosingMethod, parseEnclosingMethod)
}

// EncodeEnclosingMethod re-serializes e as an EnclosingMethod AttributeInfo.
func EncodeEnclosingMethod(pool *ConstantPool, e EnclosingMethod) (AttributeInfo, error) {
	return Encode(pool, AttrEnclosingMethod, e, writeEnclosingMethod)
}

// utf8AttrValue is the shared shape of the several attributes whose
// entire payload is a single CPIndex to a UTF8Info: Signature,
// SourceFile, and (via a distinct wrapper, since its payload is raw
// bytes rather than a CP index) SourceDebugExtension.
type utf8AttrValue struct {
	Index CPIndex[*UTF8Info]
}

func parseUTF8AttrValue(r *Reader, pool *ConstantPool) (utf8AttrValue, error) {
	idx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return utf8AttrValue{}, err
	}
	return utf8AttrValue{Index: idx}, nil
}

func writeUTF8AttrValue(w *Writer, v utf8AttrValue, pool *ConstantPool) error {
	return writeCPIndex(w, v.Index)
}

// Signature is the typed view of a Signature attribute (JVMS 4.7.9).
type Signature struct {
	SignatureIndex CPIndex[*UTF8Info]
}

// Signature decodes a Signature attribute.
func (a Attributes) Signature(pool *ConstantPool) (Signature, bool) {
	v, ok := Decode(a, pool, AttrSignature, parseUTF8AttrValue)
	return Signature{SignatureIndex: v.Index}, ok
}

// EncodeSignature re-serializes s as a Signature AttributeInfo.
func EncodeSignature(pool *ConstantPool, s Signature) (AttributeInfo, error) {
	return Encode(pool, AttrSignature, utf8AttrValue{Index: s.SignatureIndex}, writeUTF8AttrValue)
}

// SourceFile is the typed view of a SourceFile attribute (JVMS 4.7.10).
type SourceFile struct {
	SourceFileIndex CPIndex[*UTF8Info]
}

// SourceFile decodes a SourceFile attribute.
func (a Attributes) SourceFile(pool *ConstantPool) (SourceFile, bool) {
	v, ok := Decode(a, pool, AttrSourceFile, parseUTF8AttrValue)
	return SourceFile{SourceFileIndex: v.Index}, ok
}

// EncodeSourceFile re-serializes s as a SourceFile AttributeInfo.
func EncodeSourceFile(pool *ConstantPool, s SourceFile) (AttributeInfo, error) {
	return Encode(pool, AttrSourceFile, utf8AttrValue{Index: s.SourceFileIndex}, writeUTF8AttrValue)
}

// SourceDebugExtension is the typed view of a SourceDebugExtension
// attribute (JVMS 4.7.11): unlike most small attributes, its entire
// payload is the raw modified-UTF-8 bytes, not a CPIndex.
type SourceDebugExtension struct {
	Text mutf8.ByteString
}

func parseSourceDebugExtension(r *Reader, pool *ConstantPool) (SourceDebugExtension, error) {
	raw, err := r.ReadBlob(4)
	if err != nil {
		return SourceDebugExtension{}, err
	}
	return SourceDebugExtension{Text: mutf8.FromBytesUnchecked(raw)}, nil
}

func writeSourceDebugExtension(w *Writer, s SourceDebugExtension, pool *ConstantPool) error {
	return w.WriteBlob(4, s.Text.Bytes())
}

// SourceDebugExtension decodes a SourceDebugExtension attribute. Its
// length is implicit in the surrounding AttributeInfo.info length (JVMS
// says the attribute has no internal length field beyond that), so the
// whole Info slice is taken as the text, without going through Decode
// or reading any length prefix.
func (a Attributes) SourceDebugExtension(pool *ConstantPool) (SourceDebugExtension, bool) {
	ai, ok := a.FindByName(pool, AttrSourceDebugExtension)
	if !ok {
		return SourceDebugExtension{}, false
	}
	return SourceDebugExtension{Text: mutf8.FromBytesUnchecked(ai.Info)}, true
}

// EncodeSourceDebugExtension re-serializes s as a SourceDebugExtension
// AttributeInfo.
func EncodeSourceDebugExtension(pool *ConstantPool, s SourceDebugExtension) (AttributeInfo, error) {
	idx, ok := nameIndexOf(pool, AttrSourceDebugExtension)
	if !ok {
		return AttributeInfo{}, &IndexError{Pool: pool.Len()}
	}
	return AttributeInfo{NameIndex: idx, Info: s.Text.Bytes()}, nil
}

// Synthetic is the typed view of the Synthetic marker attribute (JVMS
// 4.7.8): an empty-payload singleton whose presence is the only signal.
type Synthetic struct{}

// Synthetic reports whether the Synthetic attribute is present.
func (a Attributes) Synthetic(pool *ConstantPool) bool {
	_, ok := a.FindByName(pool, AttrSynthetic)
	return ok
}

// EncodeSynthetic builds an empty-payload Synthetic AttributeInfo.
func EncodeSynthetic(pool *ConstantPool) (AttributeInfo, error) {
	idx, ok := nameIndexOf(pool, AttrSynthetic)
	if !ok {
		return AttributeInfo{}, &IndexError{Pool: pool.Len()}
	}
	return AttributeInfo{NameIndex: idx, Info: []byte{}}, nil
}

// Deprecated is the typed view of the Deprecated marker attribute
// (JVMS 4.7.15): same empty-payload singleton shape as Synthetic.
type Deprecated struct{}

// Deprecated reports whether the Deprecated attribute is present.
func (a Attributes) Deprecated(pool *ConstantPool) bool {
	_, ok := a.FindByName(pool, AttrDeprecated)
	return ok
}

// EncodeDeprecated builds an empty-payload Deprecated AttributeInfo.
func EncodeDeprecated(pool *ConstantPool) (AttributeInfo, error) {
	idx, ok := nameIndexOf(pool, AttrDeprecated)
	if !ok {
		return AttributeInfo{}, &IndexError{Pool: pool.Len()}
	}
	return AttributeInfo{NameIndex: idx, Info: []byte{}}, nil
}

// NestHost is the typed view of a class's NestHost attribute (JVMS
// 4.7.28).
type NestHost struct {
	HostClassIndex CPIndex[*ClassInfo]
}

func parseNestHost(r *Reader, pool *ConstantPool) (NestHost, error) {
	idx, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return NestHost{}, err
	}
	return NestHost{HostClassIndex: idx}, nil
}

func writeNestHost(w *Writer, n NestHost, pool *ConstantPool) error {
	return writeCPIndex(w, n.HostClassIndex)
}

// NestHost decodes a class's NestHost attribute.
func (a Attributes) NestHost(pool *ConstantPool) (NestHost, bool) {
	return Decode(a, pool, AttrNestHost, parseNestHost)
}

// EncodeNestHost re-serializes n as a NestHost AttributeInfo.
func EncodeNestHost(pool *ConstantPool, n NestHost) (AttributeInfo, error) {
	return Encode(pool, AttrNestHost, n, writeNestHost)
}

// NestMembers is the typed view of a class's NestMembers attribute
// (JVMS 4.7.29).
type NestMembers struct {
	Classes []CPIndex[*ClassInfo]
}

func parseNestMembers(r *Reader, pool *ConstantPool) (NestMembers, error) {
	classes, err := ReadSeq(r, 2, readCPIndexRaw[*ClassInfo])
	if err != nil {
		return NestMembers{}, err
	}
	return NestMembers{Classes: classes}, nil
}

func writeNestMembers(w *Writer, n NestMembers, pool *ConstantPool) error {
	return WriteSeq(w, 2, n.Classes, func(w *Writer, idx CPIndex[*ClassInfo]) error { return writeCPIndex(w, idx) })
}

// NestMembers decodes a class's NestMembers attribute.
func (a Attributes) NestMembers(pool *ConstantPool) (NestMembers, bool) {
	return Decode(a, pool, AttrNestMembers, parseNestMembers)
}

// EncodeNestMembers re-serializes n as a NestMembers AttributeInfo.
func EncodeNestMembers(pool *ConstantPool, n NestMembers) (AttributeInfo, error) {
	return Encode(pool, AttrNestMembers, n, writeNestMembers)
}

// MethodParameter is one entry of a MethodParameters attribute.
type MethodParameter struct {
	NameIndex OptionalCPIndex[*UTF8Info]
	Flags     uint16
}

func parseMethodParameter(r *Reader) (MethodParameter, error) {
	name, err := readOptionalCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return MethodParameter{}, err
	}
	flags, err := r.ReadU16()
	if err != nil {
		return MethodParameter{}, err
	}
	return MethodParameter{NameIndex: name, Flags: flags}, nil
}

func (p MethodParameter) write(w *Writer) error {
	if err := writeOptionalCPIndex(w, p.NameIndex); err != nil {
		return err
	}
	return w.WriteU16(p.Flags)
}

// MethodParameters is the typed view of a MethodParameters attribute
// (JVMS 4.7.24): a u8-counted sequence, unlike almost every other
// sequence in the format which is u16-counted.
type MethodParameters struct {
	Parameters []MethodParameter
}

func parseMethodParameters(r *Reader, pool *ConstantPool) (MethodParameters, error) {
	params, err := ReadSeq(r, 1, parseMethodParameter)
	if err != nil {
		return MethodParameters{}, err
	}
	return MethodParameters{Parameters: params}, nil
}

func writeMethodParameters(w *Writer, m MethodParameters, pool *ConstantPool) error {
	return WriteSeq(w, 1, m.Parameters, func(w *Writer, p MethodParameter) error { return p.write(w) })
}

// MethodParameters decodes a method's MethodParameters attribute.
func (a Attributes) MethodParameters(pool *ConstantPool) (MethodParameters, bool) {
	return Decode(a, pool, AttrMethodParameters, parseMethodParameters)
}

// EncodeMethodParameters re-serializes m as a MethodParameters AttributeInfo.
func EncodeMethodParameters(pool *ConstantPool, m MethodParameters) (AttributeInfo, error) {
	return Encode(pool, AttrMethodParameters, m, writeMethodParameters)
}

// InnerClass is one entry of an InnerClasses attribute.
type InnerClass struct {
	InnerClassInfoIndex   CPIndex[*ClassInfo]
	OuterClassInfoIndex   OptionalCPIndex[*ClassInfo]
	InnerNameIndex        OptionalCPIndex[*UTF8Info]
	InnerClassAccessFlags uint16
}

func parseInnerClass(r *Reader) (InnerClass, error) {
	inner, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return InnerClass{}, err
	}
	outer, err := readOptionalCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return InnerClass{}, err
	}
	name, err := readOptionalCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return InnerClass{}, err
	}
	flags, err := r.ReadU16()
	if err != nil {
		return InnerClass{}, err
	}
	return InnerClass{
		InnerClassInfoIndex: inner, OuterClassInfoIndex: outer,
		InnerNameIndex: name, InnerClassAccessFlags: flags,
	}, nil
}

func (c InnerClass) write(w *Writer) error {
	if err := writeCPIndex(w, c.InnerClassInfoIndex); err != nil {
		return err
	}
	if err := writeOptionalCPIndex(w, c.OuterClassInfoIndex); err != nil {
		return err
	}
	if err := writeOptionalCPIndex(w, c.InnerNameIndex); err != nil {
		return err
	}
	return w.WriteU16(c.InnerClassAccessFlags)
}

// InnerClasses is the typed view of a class's InnerClasses attribute
// (JVMS 4.7.6).
type InnerClasses struct {
	Classes []InnerClass
}

func parseInnerClasses(r *Reader, pool *ConstantPool) (InnerClasses, error) {
	classes, err := ReadSeq(r, 2, parseInnerClass)
	if err != nil {
		return InnerClasses{}, err
	}
	return InnerClasses{Classes: classes}, nil
}

func writeInnerClasses(w *Writer, i InnerClasses, pool *ConstantPool) error {
	return WriteSeq(w, 2, i.Classes, func(w *Writer, c InnerClass) error { return c.write(w) })
}

// InnerClasses decodes a class's InnerClasses attribute.
func (a Attributes) InnerClasses(pool *ConstantPool) (InnerClasses, bool) {
	return Decode(a, pool, AttrInnerClasses, parseInnerClasses)
}

// EncodeInnerClasses re-serializes i as an InnerClasses AttributeInfo.
func EncodeInnerClasses(pool *ConstantPool, i InnerClasses) (AttributeInfo, error) {
	return Encode(pool, AttrInnerClasses, i, writeInnerClasses)
}

// Exceptions is the typed view of a method's Exceptions attribute
// (JVMS 4.7.5): the checked exceptions it may throw.
type Exceptions struct {
	ExceptionIndexTable []CPIndex[*ClassInfo]
}

func parseExceptions(r *Reader, pool *ConstantPool) (Exceptions, error) {
	tbl, err := ReadSeq(r, 2, readCPIndexRaw[*ClassInfo])
	if err != nil {
		return Exceptions{}, err
	}
	return Exceptions{ExceptionIndexTable: tbl}, nil
}

func writeExceptions(w *Writer, e Exceptions, pool *ConstantPool) error {
	return WriteSeq(w, 2, e.ExceptionIndexTable, func(w *Writer, idx CPIndex[*ClassInfo]) error { return writeCPIndex(w, idx) })
}

// Exceptions decodes a method's Exceptions attribute.
func (a Attributes) Exceptions(pool *ConstantPool) (Exceptions, bool) {
	return Decode(a, pool, AttrExceptions, parseExceptions)
}

// EncodeExceptions re-serializes e as an Exceptions AttributeInfo.
func EncodeExceptions(pool *ConstantPool, e Exceptions) (AttributeInfo, error) {
	return Encode(pool, AttrExceptions, e, writeExceptions)
}
