// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import (
	"fmt"

	"github.com/javaclass/javaclass/mutf8"
)

// CPEntry is implemented by every constant pool entry variant. Admissibility
// for a CPIndex[T] is expressed by constraining T to CPEntry (or to one of
// the narrower union interfaces below) and resolving with a type assertion
// against the entry stored in the pool — the Go analog of the source's
// phantom-typed index (spec §9, option (a)/(b) hybrid).
type CPEntry interface {
	Tag() uint8
	writeCP(w *Writer) error
}

// ConstantValue is the admissibility union for CPIndex[ConstantValue]:
// entries usable as a field ConstantValue attribute (tags 3,4,5,6,8).
type ConstantValue interface {
	CPEntry
	isConstantValue()
}

// LoadableConstant is the admissibility union for `ldc`-family operands
// (tags 3,4,5,6,7,8,15,16,17).
type LoadableConstant interface {
	CPEntry
	isLoadableConstant()
}

// ClassInfo is CONSTANT_Class_info.
type ClassInfo struct {
	NameIndex CPIndex[*UTF8Info]
}

func (*ClassInfo) Tag() uint8         { return TagClass }
func (*ClassInfo) isLoadableConstant() {}

func (e *ClassInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagClass); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameIndex)
}

func readClassInfo(r *Reader) (*ClassInfo, error) {
	idx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	return &ClassInfo{NameIndex: idx}, nil
}

// FieldRefInfo is CONSTANT_Fieldref_info.
type FieldRefInfo struct {
	ClassIndex       CPIndex[*ClassInfo]
	NameAndTypeIndex CPIndex[*NameAndTypeInfo]
}

func (*FieldRefInfo) Tag() uint8 { return TagFieldRef }
func (e *FieldRefInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagFieldRef); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.ClassIndex); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameAndTypeIndex)
}

func readFieldRefInfo(r *Reader) (*FieldRefInfo, error) {
	ci, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return nil, err
	}
	nt, err := readCPIndexRaw[*NameAndTypeInfo](r)
	if err != nil {
		return nil, err
	}
	return &FieldRefInfo{ClassIndex: ci, NameAndTypeIndex: nt}, nil
}

// MethodRefInfo is CONSTANT_Methodref_info.
type MethodRefInfo struct {
	ClassIndex       CPIndex[*ClassInfo]
	NameAndTypeIndex CPIndex[*NameAndTypeInfo]
}

func (*MethodRefInfo) Tag() uint8 { return TagMethodRef }
func (e *MethodRefInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagMethodRef); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.ClassIndex); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameAndTypeIndex)
}

func readMethodRefInfo(r *Reader) (*MethodRefInfo, error) {
	ci, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return nil, err
	}
	nt, err := readCPIndexRaw[*NameAndTypeInfo](r)
	if err != nil {
		return nil, err
	}
	return &MethodRefInfo{ClassIndex: ci, NameAndTypeIndex: nt}, nil
}

// InterfaceMethodRefInfo is CONSTANT_InterfaceMethodref_info.
type InterfaceMethodRefInfo struct {
	ClassIndex       CPIndex[*ClassInfo]
	NameAndTypeIndex CPIndex[*NameAndTypeInfo]
}

func (*InterfaceMethodRefInfo) Tag() uint8 { return TagInterfaceMethodRef }
func (e *InterfaceMethodRefInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagInterfaceMethodRef); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.ClassIndex); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameAndTypeIndex)
}

func readInterfaceMethodRefInfo(r *Reader) (*InterfaceMethodRefInfo, error) {
	ci, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return nil, err
	}
	nt, err := readCPIndexRaw[*NameAndTypeInfo](r)
	if err != nil {
		return nil, err
	}
	return &InterfaceMethodRefInfo{ClassIndex: ci, NameAndTypeIndex: nt}, nil
}

// StringInfo is CONSTANT_String_info.
type StringInfo struct {
	StringIndex CPIndex[*UTF8Info]
}

func (*StringInfo) Tag() uint8          { return TagString }
func (*StringInfo) isConstantValue()    {}
func (*StringInfo) isLoadableConstant() {}
func (e *StringInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagString); err != nil {
		return err
	}
	return writeCPIndex(w, e.StringIndex)
}

func readStringInfo(r *Reader) (*StringInfo, error) {
	idx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	return &StringInfo{StringIndex: idx}, nil
}

// IntegerInfo is CONSTANT_Integer_info.
type IntegerInfo struct {
	Value int32
}

func (*IntegerInfo) Tag() uint8          { return TagInteger }
func (*IntegerInfo) isConstantValue()    {}
func (*IntegerInfo) isLoadableConstant() {}
func (e *IntegerInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagInteger); err != nil {
		return err
	}
	return w.WriteU32(uint32(e.Value))
}

func readIntegerInfo(r *Reader) (*IntegerInfo, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &IntegerInfo{Value: int32(v)}, nil
}

// FloatInfo is CONSTANT_Float_info.
type FloatInfo struct {
	// Bits holds the raw IEEE-754 bit pattern; JVMS does not require NaN
	// canonicalization at this layer so the exact bits are preserved
	// for round-trip fidelity.
	Bits uint32
}

func (*FloatInfo) Tag() uint8          { return TagFloat }
func (*FloatInfo) isConstantValue()    {}
func (*FloatInfo) isLoadableConstant() {}
func (e *FloatInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagFloat); err != nil {
		return err
	}
	return w.WriteU32(e.Bits)
}

func readFloatInfo(r *Reader) (*FloatInfo, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &FloatInfo{Bits: v}, nil
}

// LongInfo is CONSTANT_Long_info. Note the density divergence: this
// model stores one LongInfo entry per logical constant and does NOT
// reserve a following dead slot for it on `entries`; the skipped-slot
// adjustment is applied once, in ConstantPool's index translation (see
// constantpool.go and DESIGN.md).
type LongInfo struct {
	Value int64
}

func (*LongInfo) Tag() uint8          { return TagLong }
func (*LongInfo) isConstantValue()    {}
func (*LongInfo) isLoadableConstant() {}
func (e *LongInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagLong); err != nil {
		return err
	}
	return w.WriteU64(uint64(e.Value))
}

func readLongInfo(r *Reader) (*LongInfo, error) {
	v, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	return &LongInfo{Value: int64(v)}, nil
}

// DoubleInfo is CONSTANT_Double_info. See LongInfo re: slot accounting.
type DoubleInfo struct {
	Bits uint64
}

func (*DoubleInfo) Tag() uint8          { return TagDouble }
func (*DoubleInfo) isConstantValue()    {}
func (*DoubleInfo) isLoadableConstant() {}
func (e *DoubleInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagDouble); err != nil {
		return err
	}
	return w.WriteU64(e.Bits)
}

func readDoubleInfo(r *Reader) (*DoubleInfo, error) {
	v, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	return &DoubleInfo{Bits: v}, nil
}

// NameAndTypeInfo is CONSTANT_NameAndType_info.
type NameAndTypeInfo struct {
	NameIndex       CPIndex[*UTF8Info]
	DescriptorIndex CPIndex[*UTF8Info]
}

func (*NameAndTypeInfo) Tag() uint8 { return TagNameAndType }
func (e *NameAndTypeInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagNameAndType); err != nil {
		return err
	}
	if err := writeCPIndex(w, e.NameIndex); err != nil {
		return err
	}
	return writeCPIndex(w, e.DescriptorIndex)
}

func readNameAndTypeInfo(r *Reader) (*NameAndTypeInfo, error) {
	n, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	d, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	return &NameAndTypeInfo{NameIndex: n, DescriptorIndex: d}, nil
}

// UTF8Info is CONSTANT_Utf8_info. Bytes holds the raw modified-UTF-8
// payload, untouched; Str decodes it via the mutf8 boundary package on
// demand (zero-copy is not attempted here since class file UTF8 entries
// are typically tiny — names and descriptors).
type UTF8Info struct {
	Bytes []byte
}

func (*UTF8Info) Tag() uint8 { return TagUTF8 }
func (e *UTF8Info) writeCP(w *Writer) error {
	if err := w.WriteU8(TagUTF8); err != nil {
		return err
	}
	return w.WriteBlob(2, e.Bytes)
}

// Str decodes the entry's modified-UTF-8 payload to a standard Go
// string via the mutf8 boundary package.
func (e *UTF8Info) Str() string {
	return mutf8.FromBytesUnchecked(e.Bytes).ToUTF8()
}

func readUTF8Info(r *Reader) (*UTF8Info, error) {
	b, err := r.ReadBlob(2)
	if err != nil {
		return nil, err
	}
	return &UTF8Info{Bytes: b}, nil
}

// MethodHandleInfo is CONSTANT_MethodHandle_info. ReferenceIndex's
// admissible category depends on ReferenceKind per JVMS Table 5.4.3.5-C
// (1..4 -> FieldRef, 5/6/7/8 -> MethodRef-ish, 9 -> InterfaceMethodRef);
// since that is a runtime, not a compile-time, admissibility rule, it is
// stored as a plain CPIndex[CPEntry] and validated by ResolveReference
// (below) rather than encoded in the type parameter.
type MethodHandleInfo struct {
	ReferenceKind  uint8
	ReferenceIndex CPIndex[CPEntry]
}

func (*MethodHandleInfo) Tag() uint8          { return TagMethodHandle }
func (*MethodHandleInfo) isLoadableConstant() {}
func (e *MethodHandleInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagMethodHandle); err != nil {
		return err
	}
	if err := w.WriteU8(e.ReferenceKind); err != nil {
		return err
	}
	return writeCPIndex(w, e.ReferenceIndex)
}

func readMethodHandleInfo(r *Reader) (*MethodHandleInfo, error) {
	kind, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	idx, err := readCPIndexRaw[CPEntry](r)
	if err != nil {
		return nil, err
	}
	return &MethodHandleInfo{ReferenceKind: kind, ReferenceIndex: idx}, nil
}

// ResolveReference resolves a MethodHandleInfo's ReferenceIndex against
// the admissible category for its ReferenceKind, returning nil if the
// kind is unknown or the referent's tag does not match.
func (e *MethodHandleInfo) ResolveReference(pool *ConstantPool) CPEntry {
	entry, ok := pool.entryAt(e.ReferenceIndex.Index)
	if !ok {
		return nil
	}
	switch {
	case e.ReferenceKind >= RefGetField && e.ReferenceKind <= RefPutStatic:
		if _, ok := entry.(*FieldRefInfo); ok {
			return entry
		}
	case e.ReferenceKind == RefInvokeVirtual || e.ReferenceKind == RefNewInvokeSpecial:
		if _, ok := entry.(*MethodRefInfo); ok {
			return entry
		}
	case e.ReferenceKind == RefInvokeStatic || e.ReferenceKind == RefInvokeSpecial:
		switch entry.(type) {
		case *MethodRefInfo, *InterfaceMethodRefInfo:
			return entry
		}
	case e.ReferenceKind == RefInvokeInterface:
		if _, ok := entry.(*InterfaceMethodRefInfo); ok {
			return entry
		}
	}
	return nil
}

// MethodTypeInfo is CONSTANT_MethodType_info.
type MethodTypeInfo struct {
	DescriptorIndex CPIndex[*UTF8Info]
}

func (*MethodTypeInfo) Tag() uint8          { return TagMethodType }
func (*MethodTypeInfo) isLoadableConstant() {}
func (e *MethodTypeInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagMethodType); err != nil {
		return err
	}
	return writeCPIndex(w, e.DescriptorIndex)
}

func readMethodTypeInfo(r *Reader) (*MethodTypeInfo, error) {
	idx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	return &MethodTypeInfo{DescriptorIndex: idx}, nil
}

// DynamicInfo is CONSTANT_Dynamic_info.
type DynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         CPIndex[*NameAndTypeInfo]
}

func (*DynamicInfo) Tag() uint8          { return TagDynamic }
func (*DynamicInfo) isLoadableConstant() {}
func (e *DynamicInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagDynamic); err != nil {
		return err
	}
	if err := w.WriteU16(e.BootstrapMethodAttrIndex); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameAndTypeIndex)
}

func readDynamicInfo(r *Reader) (*DynamicInfo, error) {
	bsmIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	nt, err := readCPIndexRaw[*NameAndTypeInfo](r)
	if err != nil {
		return nil, err
	}
	return &DynamicInfo{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: nt}, nil
}

// InvokeDynamicInfo is CONSTANT_InvokeDynamic_info.
type InvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         CPIndex[*NameAndTypeInfo]
}

func (*InvokeDynamicInfo) Tag() uint8 { return TagInvokeDynamic }
func (e *InvokeDynamicInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagInvokeDynamic); err != nil {
		return err
	}
	if err := w.WriteU16(e.BootstrapMethodAttrIndex); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameAndTypeIndex)
}

func readInvokeDynamicInfo(r *Reader) (*InvokeDynamicInfo, error) {
	bsmIdx, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	nt, err := readCPIndexRaw[*NameAndTypeInfo](r)
	if err != nil {
		return nil, err
	}
	return &InvokeDynamicInfo{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: nt}, nil
}

// ModuleInfo is CONSTANT_Module_info.
type ModuleInfo struct {
	NameIndex CPIndex[*UTF8Info]
}

func (*ModuleInfo) Tag() uint8 { return TagModule }
func (e *ModuleInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagModule); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameIndex)
}

func readModuleInfo(r *Reader) (*ModuleInfo, error) {
	idx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	return &ModuleInfo{NameIndex: idx}, nil
}

// PackageInfo is CONSTANT_Package_info.
type PackageInfo struct {
	NameIndex CPIndex[*UTF8Info]
}

func (*PackageInfo) Tag() uint8 { return TagPackage }
func (e *PackageInfo) writeCP(w *Writer) error {
	if err := w.WriteU8(TagPackage); err != nil {
		return err
	}
	return writeCPIndex(w, e.NameIndex)
}

func readPackageInfo(r *Reader) (*PackageInfo, error) {
	idx, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return nil, err
	}
	return &PackageInfo{NameIndex: idx}, nil
}

// readCPEntry reads one tagged constant pool entry, dispatching on the
// leading u8 tag exactly as the source's per-variant switch does (see
// _examples/other_examples/...daimatz-gojvm__pkg-classfile-constant_pool.go.go),
// but returning a concrete *XxxInfo rather than an interface{} union member.
func readCPEntry(r *Reader) (CPEntry, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagClass:
		return readClassInfo(r)
	case TagFieldRef:
		return readFieldRefInfo(r)
	case TagMethodRef:
		return readMethodRefInfo(r)
	case TagInterfaceMethodRef:
		return readInterfaceMethodRefInfo(r)
	case TagString:
		return readStringInfo(r)
	case TagInteger:
		return readIntegerInfo(r)
	case TagFloat:
		return readFloatInfo(r)
	case TagLong:
		return readLongInfo(r)
	case TagDouble:
		return readDoubleInfo(r)
	case TagNameAndType:
		return readNameAndTypeInfo(r)
	case TagUTF8:
		return readUTF8Info(r)
	case TagMethodHandle:
		return readMethodHandleInfo(r)
	case TagMethodType:
		return readMethodTypeInfo(r)
	case TagDynamic:
		return readDynamicInfo(r)
	case TagInvokeDynamic:
		return readInvokeDynamicInfo(r)
	case TagModule:
		return readModuleInfo(r)
	case TagPackage:
		return readPackageInfo(r)
	default:
		return nil, &UnknownTagError{Tag: tag, Context: "constant pool entry"}
	}
}

func writeCPEntry(w *Writer, e CPEntry) error {
	if e == nil {
		return fmt.Errorf("javaclass: nil constant pool entry")
	}
	return e.writeCP(w)
}

// isWideEntry reports whether e occupies two logical constant-pool slots
// (Long and Double, per JVMS 4.4.5).
func isWideEntry(e CPEntry) bool {
	switch e.(type) {
	case *LongInfo, *DoubleInfo:
		return true
	default:
		return false
	}
}
