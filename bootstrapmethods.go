// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// BootstrapMethod is one entry of a BootstrapMethods attribute (JVMS
// 4.7.23): a MethodHandle plus the LoadableConstant arguments it is
// invoked with at link time. Structurally this is the same "array of
// {descriptor index, variable-length argument index list}" shape as
// the import directory's array of {DLL name RVA, thunk table} entries
// the teacher walks in imports.go — one bootstrap method per array
// slot instead of one imported DLL per descriptor.
type BootstrapMethod struct {
	MethodRef CPIndex[*MethodHandleInfo]
	Arguments []CPIndex[LoadableConstant]
}

func parseBootstrapMethod(r *Reader) (BootstrapMethod, error) {
	ref, err := readCPIndexRaw[*MethodHandleInfo](r)
	if err != nil {
		return BootstrapMethod{}, err
	}
	args, err := ReadSeq(r, 2, readCPIndexRaw[LoadableConstant])
	if err != nil {
		return BootstrapMethod{}, err
	}
	return BootstrapMethod{MethodRef: ref, Arguments: args}, nil
}

func (m BootstrapMethod) write(w *Writer) error {
	if err := writeCPIndex(w, m.MethodRef); err != nil {
		return err
	}
	return WriteSeq(w, 2, m.Arguments, func(w *Writer, idx CPIndex[LoadableConstant]) error {
		return writeCPIndex(w, idx)
	})
}

// BootstrapMethods is the typed view of the class-level BootstrapMethods
// attribute (JVMS 4.7.23), referenced by every InvokeDynamicInfo and
// DynamicInfo constant-pool entry's bootstrap_method_attr_index.
type BootstrapMethods struct {
	Methods []BootstrapMethod
}

func parseBootstrapMethods(r *Reader, pool *ConstantPool) (BootstrapMethods, error) {
	methods, err := ReadSeq(r, 2, parseBootstrapMethod)
	if err != nil {
		return BootstrapMethods{}, err
	}
	return BootstrapMethods{Methods: methods}, nil
}

func writeBootstrapMethods(w *Writer, b BootstrapMethods, pool *ConstantPool) error {
	return WriteSeq(w, 2, b.Methods, func(w *Writer, m BootstrapMethod) error { return m.write(w) })
}

// BootstrapMethods decodes the class-level BootstrapMethods attribute.
func (a Attributes) BootstrapMethods(pool *ConstantPool) (BootstrapMethods, bool) {
	return Decode(a, pool, AttrBootstrapMethods, parseBootstrapMethods)
}

// EncodeBootstrapMethods re-serializes b as a BootstrapMethods AttributeInfo.
func EncodeBootstrapMethods(pool *ConstantPool, b BootstrapMethods) (AttributeInfo, error) {
	return Encode(pool, AttrBootstrapMethods, b, writeBootstrapMethods)
}
