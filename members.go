// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// FieldInfo describes one field_info record (JVMS 4.5): access flags,
// name/descriptor indices, and an attribute set (typically
// ConstantValue, Synthetic, Deprecated, Signature, and the
// RuntimeVisible/InvisibleAnnotations family).
type FieldInfo struct {
	AccessFlags     uint16
	NameIndex       CPIndex[*UTF8Info]
	DescriptorIndex CPIndex[*UTF8Info]
	Attributes      Attributes
}

func parseFieldInfo(r *Reader) (FieldInfo, error) {
	flags, err := r.ReadU16()
	if err != nil {
		return FieldInfo{}, err
	}
	name, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return FieldInfo{}, err
	}
	desc, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return FieldInfo{}, err
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return FieldInfo{}, err
	}
	return FieldInfo{AccessFlags: flags, NameIndex: name, DescriptorIndex: desc, Attributes: attrs}, nil
}

func (f FieldInfo) write(w *Writer) error {
	if err := w.WriteU16(f.AccessFlags); err != nil {
		return err
	}
	if err := writeCPIndex(w, f.NameIndex); err != nil {
		return err
	}
	if err := writeCPIndex(w, f.DescriptorIndex); err != nil {
		return err
	}
	return f.Attributes.write(w)
}

// MethodInfo describes one method_info record (JVMS 4.6): same header
// shape as FieldInfo, with an attribute set that typically carries
// Code, Exceptions, Signature, MethodParameters, AnnotationDefault, and
// the annotation families.
type MethodInfo struct {
	AccessFlags     uint16
	NameIndex       CPIndex[*UTF8Info]
	DescriptorIndex CPIndex[*UTF8Info]
	Attributes      Attributes
}

func parseMethodInfo(r *Reader) (MethodInfo, error) {
	flags, err := r.ReadU16()
	if err != nil {
		return MethodInfo{}, err
	}
	name, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return MethodInfo{}, err
	}
	desc, err := readCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return MethodInfo{}, err
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return MethodInfo{}, err
	}
	return MethodInfo{AccessFlags: flags, NameIndex: name, DescriptorIndex: desc, Attributes: attrs}, nil
}

func (m MethodInfo) write(w *Writer) error {
	if err := w.WriteU16(m.AccessFlags); err != nil {
		return err
	}
	if err := writeCPIndex(w, m.NameIndex); err != nil {
		return err
	}
	if err := writeCPIndex(w, m.DescriptorIndex); err != nil {
		return err
	}
	return m.Attributes.write(w)
}
