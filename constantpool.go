// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// ConstantPool is the ordered table of symbolic references and literals
// shared by the rest of a class file (JVMS 4.4).
//
// entries is stored densely: one Go value per physical constant pool
// entry, in wire order, with no placeholder for the "dead" slot that
// JVMS reserves after a Long or Double. The mapping from a JVMS logical
// index (the value actually stored in every CPIndex on the wire) to a
// position in entries is precomputed once by buildIndex and consulted
// by entryAt on every lookup. See DESIGN.md for why this (spec §9
// option (b), JVMS-faithful) was chosen over the source's simpler but
// incorrect dense-index behavior.
type ConstantPool struct {
	entries        []CPEntry
	logicalToDense []int
}

// Entries returns the pool's entries in storage (insertion) order.
func (cp *ConstantPool) Entries() []CPEntry {
	return cp.entries
}

// Len returns the number of physical entries (not the JVMS logical
// span, which is larger whenever the pool holds Long or Double
// constants).
func (cp *ConstantPool) Len() int { return len(cp.entries) }

func newConstantPool(entries []CPEntry) *ConstantPool {
	cp := &ConstantPool{entries: entries}
	cp.buildIndex()
	return cp
}

func (cp *ConstantPool) buildIndex() {
	span := 1
	for _, e := range cp.entries {
		if isWideEntry(e) {
			span += 2
		} else {
			span++
		}
	}
	m := make([]int, span)
	for i := range m {
		m[i] = -1
	}
	logical := 1
	for dense, e := range cp.entries {
		if logical < len(m) {
			m[logical] = dense
		}
		if isWideEntry(e) {
			logical += 2
		} else {
			logical++
		}
	}
	cp.logicalToDense = m
}

// entryAt resolves a 1-based JVMS logical index to its backing entry.
// Returns (nil, false) for index 0, an index beyond the logical span,
// or an index that names the dead second slot of a Long/Double.
func (cp *ConstantPool) entryAt(logicalIndex uint16) (CPEntry, bool) {
	i := int(logicalIndex)
	if i <= 0 || i >= len(cp.logicalToDense) {
		return nil, false
	}
	dense := cp.logicalToDense[i]
	if dense < 0 {
		return nil, false
	}
	return cp.entries[dense], true
}

// parseConstantPool reads the 2-byte count followed by entries until
// the JVMS logical span it implies is exhausted. Per JVMS 4.4.5, a Long
// or Double entry consumes two logical slots but only one physical
// entry is present on the wire for it, so the loop advances a logical
// counter rather than simply decoding (count-1) entries.
func parseConstantPool(r *Reader) (*ConstantPool, error) {
	span, err := r.ReadCPCount()
	if err != nil {
		return nil, err
	}
	entries := make([]CPEntry, 0, span)
	logical := uint16(1)
	for logical <= span {
		e, err := readCPEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
		if isWideEntry(e) {
			logical += 2
		} else {
			logical++
		}
	}
	return newConstantPool(entries), nil
}

// serialize writes the 2-byte logical-span count followed by every
// entry in storage order. The count is recomputed from the entries'
// intrinsic widths rather than cached, so it is always consistent with
// whatever entries the caller has assembled.
func (cp *ConstantPool) serialize(w *Writer) error {
	span := 1
	for _, e := range cp.entries {
		if isWideEntry(e) {
			span += 2
		} else {
			span++
		}
	}
	if span > 1<<16-1 {
		return &TooLargeError{N: span, Limit: 1<<16 - 1, What: "constant pool"}
	}
	if err := w.WriteU16(uint16(span)); err != nil {
		return err
	}
	for _, e := range cp.entries {
		if err := writeCPEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// UTF8At is a convenience wrapper around CPIndex[*UTF8Info].Resolve
// plus decoding, since resolving a name/descriptor index and then
// converting it to a Go string is by far the most common pool lookup
// performed throughout the attribute decoders.
func (cp *ConstantPool) UTF8At(idx CPIndex[*UTF8Info]) (string, bool) {
	u, ok := idx.Resolve(cp)
	if !ok {
		return "", false
	}
	return u.Str(), true
}
