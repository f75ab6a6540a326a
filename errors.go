// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the binary codec and the top-level parser.
// Callers should use errors.Is to test for these, since most call sites
// wrap them with positional context via fmt.Errorf("...: %w", err).
var (
	// ErrUnexpectedEOF is returned when a read runs past the end of the
	// input stream mid-structure.
	ErrUnexpectedEOF = errors.New("javaclass: unexpected end of stream")

	// ErrMalformedCount is returned when a constant-pool count field is
	// zero, which is never valid (index 0 is always reserved).
	ErrMalformedCount = errors.New("javaclass: malformed constant pool count")

	// ErrInvalidPESize-style minimum-size guard. A valid class file can
	// never be smaller than the magic plus the two version fields plus
	// an empty (count=1) constant pool.
	ErrTooSmall = errors.New("javaclass: input smaller than minimum class file size")
)

// MinimalClassFileSize is the smallest possible well-formed class file:
// magic(4) + minor(2) + major(2) + cp_count(2).
const MinimalClassFileSize = 10

// MismatchError reports that an "expect constant" check failed, used for
// the 4-byte magic and anywhere else a fixed literal is required on the
// wire.
type MismatchError struct {
	Expected uint32
	Actual   uint32
	Context  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("javaclass: %s mismatch: expected 0x%08X, got 0x%08X",
		e.Context, e.Expected, e.Actual)
}

// UnknownTagError reports an unrecognized 1-byte discriminator: a
// constant-pool tag, stack-map frame tag, element-value kind,
// target_info kind, or type-path segment kind.
type UnknownTagError struct {
	Tag     uint8
	Context string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("javaclass: unknown %s tag: %d", e.Context, e.Tag)
}

// TooLargeError reports that a length to be serialized exceeds the width
// of its on-wire prefix (e.g. more than 65535 constant pool entries).
type TooLargeError struct {
	N     int
	Limit int
	What  string
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("javaclass: %s length %d exceeds limit %d", e.What, e.N, e.Limit)
}

// IndexError reports that a CPIndex fell outside [1, pool_count-1]. This
// kind is only surfaced where a caller explicitly asks for it; the
// primary index lookup, CPIndex.Resolve, folds this into a plain
// "not found" (zero value, false) per spec, since a wrong-kind or
// out-of-range reference is a normal (if malformed) occurrence that the
// caller is expected to check for. The EncodeXxx helpers also return it,
// with Index 0, when the attribute name is not present in the pool.
type IndexError struct {
	Index uint16
	Pool  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("javaclass: constant pool index %d out of range [1, %d]", e.Index, e.Pool)
}
