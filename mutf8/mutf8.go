// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mutf8 is the library's one external collaborator (spec §6.3):
// it owns decoding of the modified-UTF-8 byte strings used for every
// textual payload in a class file (JVMS 4.4.7). Modified UTF-8 agrees
// with standard UTF-8 except that the NUL character is encoded as the
// two bytes 0xC0 0x80 (so embedded NULs never appear literally) and
// that supplementary-plane characters are encoded as a CESU-8-style
// surrogate pair of three-byte sequences rather than one four-byte
// sequence.
//
// No published third-party modified-UTF-8 codec appears anywhere in
// this module's dependency pack; see DESIGN.md. This package is kept
// intentionally narrow — an opaque byte-string wrapper plus a
// conversion to standard UTF-8 — so that the rest of the module only
// ever depends on this interface, exactly as spec §6.3 describes it,
// and a real external codec could be substituted later without
// touching a single call site.
package mutf8

import "strings"

// ByteString is an opaque, unvalidated modified-UTF-8 byte sequence.
// The codec treats its content opaquely; only this package interprets
// the bytes.
type ByteString []byte

// FromBytesUnchecked wraps b without validating its contents, for the
// common case where the bytes came straight off the wire and will be
// validated (or not) lazily on first conversion.
func FromBytesUnchecked(b []byte) ByteString {
	return ByteString(b)
}

// Bytes returns the raw modified-UTF-8 bytes.
func (s ByteString) Bytes() []byte { return []byte(s) }

// ToUTF8 converts the modified-UTF-8 byte string to standard Go UTF-8,
// decoding the 0xC0 0x80 NUL escape and the 6-byte surrogate-pair
// encoding of supplementary characters. Any byte that cannot be
// interpreted under either modified-UTF-8 or plain UTF-8 is passed
// through using the Unicode replacement character, so this conversion
// never fails — class file readers are expected to tolerate malformed
// strings in attributes they don't otherwise care about (spec §7:
// attribute-level errors are non-fatal).
func (s ByteString) ToUTF8() string {
	var b strings.Builder
	b.Grow(len(s))
	data := []byte(s)
	for i := 0; i < len(data); {
		c0 := data[i]
		switch {
		case c0 == 0xC0 && i+1 < len(data) && data[i+1] == 0x80:
			b.WriteByte(0)
			i += 2

		case c0 < 0x80:
			b.WriteByte(c0)
			i++

		case c0&0xE0 == 0xC0 && i+1 < len(data):
			r := rune(c0&0x1F)<<6 | rune(data[i+1]&0x3F)
			b.WriteRune(r)
			i += 2

		case c0&0xF0 == 0xE0 && i+2 < len(data):
			// Possible surrogate-pair encoding of a supplementary
			// character: two consecutive 3-byte sequences encoding a
			// high surrogate (0xD800-0xDBFF) followed by a low
			// surrogate (0xDC00-0xDFFF).
			hi := rune(c0&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
			if hi >= 0xD800 && hi <= 0xDBFF && i+5 < len(data) &&
				data[i+3]&0xF0 == 0xE0 {
				lo := rune(data[i+3]&0x0F)<<12 | rune(data[i+4]&0x3F)<<6 | rune(data[i+5]&0x3F)
				if lo >= 0xDC00 && lo <= 0xDFFF {
					r := 0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00)
					b.WriteRune(r)
					i += 6
					continue
				}
			}
			b.WriteRune(hi)
			i += 3

		default:
			b.WriteRune(0xFFFD)
			i++
		}
	}
	return b.String()
}

// FromUTF8 encodes a standard Go (UTF-8) string into modified UTF-8,
// the inverse of ToUTF8: NUL bytes become the two-byte 0xC0 0x80
// escape and runes above the Basic Multilingual Plane are re-encoded
// as a surrogate pair of 3-byte sequences.
func FromUTF8(s string) ByteString {
	var out []byte
	for _, r := range s {
		switch {
		case r == 0:
			out = append(out, 0xC0, 0x80)
		case r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out,
				byte(0xC0|r>>6),
				byte(0x80|r&0x3F))
		case r < 0x10000:
			out = append(out,
				byte(0xE0|r>>12),
				byte(0x80|(r>>6)&0x3F),
				byte(0x80|r&0x3F))
		default:
			r -= 0x10000
			hi := 0xD800 + (r >> 10)
			lo := 0xDC00 + (r & 0x3FF)
			out = append(out,
				byte(0xE0|hi>>12),
				byte(0x80|(hi>>6)&0x3F),
				byte(0x80|hi&0x3F),
				byte(0xE0|lo>>12),
				byte(0x80|(lo>>6)&0x3F),
				byte(0x80|lo&0x3F))
		}
	}
	return ByteString(out)
}
