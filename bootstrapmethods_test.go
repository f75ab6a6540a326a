// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "testing"

func TestBootstrapMethodsRoundTrip(t *testing.T) {
	pool := poolWithAttrNames(AttrBootstrapMethods)
	pool.entries = append(pool.entries,
		&MethodHandleInfo{ReferenceKind: RefInvokeStatic, ReferenceIndex: CPIndex[CPEntry]{Index: 0}},
		&IntegerInfo{Value: 7},
	)
	pool.buildIndex()

	want := BootstrapMethods{
		Methods: []BootstrapMethod{
			{
				MethodRef: CPIndex[*MethodHandleInfo]{Index: 2},
				Arguments: []CPIndex[LoadableConstant]{{Index: 3}},
			},
		},
	}

	ai, err := EncodeBootstrapMethods(pool, want)
	if err != nil {
		t.Fatalf("EncodeBootstrapMethods: %v", err)
	}

	attrs := Attributes{List: []AttributeInfo{ai}}
	got, ok := attrs.BootstrapMethods(pool)
	if !ok {
		t.Fatal("BootstrapMethods: not found after encode")
	}
	if len(got.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(got.Methods))
	}
	if got.Methods[0].MethodRef.Index != want.Methods[0].MethodRef.Index {
		t.Errorf("MethodRef = %d, want %d", got.Methods[0].MethodRef.Index, want.Methods[0].MethodRef.Index)
	}
	if len(got.Methods[0].Arguments) != 1 || got.Methods[0].Arguments[0].Index != 3 {
		t.Errorf("Arguments = %v, want [{3}]", got.Methods[0].Arguments)
	}
}
