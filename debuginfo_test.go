// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "testing"

func TestLineNumberTableRoundTrip(t *testing.T) {
	pool := poolWithAttrNames(AttrLineNumberTable)

	want := LineNumberTable{Entries: []LineNumberEntry{
		{StartPC: 0, LineNumber: 10},
		{StartPC: 4, LineNumber: 11},
	}}

	ai, err := EncodeLineNumberTable(pool, want)
	if err != nil {
		t.Fatalf("EncodeLineNumberTable: %v", err)
	}

	attrs := Attributes{List: []AttributeInfo{ai}}
	got, ok := attrs.LineNumberTable(pool)
	if !ok {
		t.Fatal("LineNumberTable: not found after encode")
	}
	if len(got.Entries) != len(want.Entries) {
		t.Fatalf("got %d entries, want %d", len(got.Entries), len(want.Entries))
	}
	for i := range want.Entries {
		if got.Entries[i] != want.Entries[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got.Entries[i], want.Entries[i])
		}
	}
}

func TestLocalVariableTableRoundTrip(t *testing.T) {
	pool := poolWithAttrNames(AttrLocalVariableTable)
	pool.entries = append(pool.entries,
		&UTF8Info{Bytes: []byte("x")},
		&UTF8Info{Bytes: []byte("I")},
	)
	pool.buildIndex()

	want := LocalVariableTable{Entries: []LocalVariableEntry{
		{StartPC: 0, Length: 8, NameIndex: CPIndex[*UTF8Info]{Index: 2}, DescriptorIndex: CPIndex[*UTF8Info]{Index: 3}, Index: 1},
	}}

	ai, err := EncodeLocalVariableTable(pool, want)
	if err != nil {
		t.Fatalf("EncodeLocalVariableTable: %v", err)
	}

	attrs := Attributes{List: []AttributeInfo{ai}}
	got, ok := attrs.LocalVariableTable(pool)
	if !ok {
		t.Fatal("LocalVariableTable: not found after encode")
	}
	if len(got.Entries) != 1 || got.Entries[0] != want.Entries[0] {
		t.Errorf("LocalVariableTable entries = %+v, want %+v", got.Entries, want.Entries)
	}
}
