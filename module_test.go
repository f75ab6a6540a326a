// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "testing"

func TestModuleRoundTrip(t *testing.T) {
	pool := poolWithAttrNames(AttrModule)
	pool.entries = append(pool.entries,
		&UTF8Info{Bytes: []byte("mymodule")},       // 2
		&ModuleInfo{NameIndex: CPIndex[*UTF8Info]{Index: 2}}, // 3
		&UTF8Info{Bytes: []byte("1.0.0")},           // 4
		&UTF8Info{Bytes: []byte("java.base")},       // 5
		&ModuleInfo{NameIndex: CPIndex[*UTF8Info]{Index: 5}}, // 6
	)
	pool.buildIndex()

	want := Module{
		Name:         CPIndex[*ModuleInfo]{Index: 3},
		Flags:        ModuleOpen,
		VersionIndex: OptionalCPIndex[*UTF8Info]{Index: 4},
		Requires: []ModuleRequires{
			{Requires: CPIndex[*ModuleInfo]{Index: 6}, Flags: RequiresMandated, VersionIndex: OptionalCPIndex[*UTF8Info]{}},
		},
	}

	ai, err := EncodeModule(pool, want)
	if err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}

	attrs := Attributes{List: []AttributeInfo{ai}}
	got, ok := attrs.Module(pool)
	if !ok {
		t.Fatal("Module: not found after encode")
	}
	if got.Name.Index != want.Name.Index {
		t.Errorf("Name = %d, want %d", got.Name.Index, want.Name.Index)
	}
	if got.Flags != want.Flags {
		t.Errorf("Flags = %#x, want %#x", got.Flags, want.Flags)
	}
	if !got.VersionIndex.Present() || got.VersionIndex.Index != want.VersionIndex.Index {
		t.Errorf("VersionIndex = %+v, want %+v", got.VersionIndex, want.VersionIndex)
	}
	if len(got.Requires) != 1 || got.Requires[0].Requires.Index != 6 {
		t.Fatalf("Requires = %+v, want one entry pointing at index 6", got.Requires)
	}
	if got.Requires[0].VersionIsWellFormed(pool) == false {
		t.Error("an absent requires version should be treated as well-formed (nothing to validate)")
	}
}

func TestModuleRequiresVersionAnomalyCheck(t *testing.T) {
	pool := newConstantPool([]CPEntry{
		&UTF8Info{Bytes: []byte("not a semver string")},
	})
	req := ModuleRequires{VersionIndex: OptionalCPIndex[*UTF8Info]{Index: 1}}
	if req.VersionIsWellFormed(pool) {
		t.Error("expected a non-semver version string to fail the well-formedness check")
	}
}

func TestModuleRequiresVersionAnomalyCheckAcceptsSemver(t *testing.T) {
	pool := newConstantPool([]CPEntry{
		&UTF8Info{Bytes: []byte("1.2.3")},
	})
	req := ModuleRequires{VersionIndex: OptionalCPIndex[*UTF8Info]{Index: 1}}
	if !req.VersionIsWellFormed(pool) {
		t.Error("expected a bare dotted version to be accepted after 'v' normalization")
	}
}
