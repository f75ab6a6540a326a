// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/javaclass/javaclass/log"
)

// ClassFile is an open .class file: the fully decoded top-level frame
// (JVMS 4.1) plus the constant pool every CPIndex in it resolves
// against. Structurally this mirrors the teacher's File: header fields
// parsed eagerly, nested tables (fields/methods/attributes here;
// sections/imports/exports there) walked in sequence, anomalies
// collected rather than treated as fatal.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Pool         *ConstantPool
	AccessFlags  uint16
	ThisClass    CPIndex[*ClassInfo]
	SuperClass   OptionalCPIndex[*ClassInfo]
	Interfaces   []CPIndex[*ClassInfo]
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   Attributes
	Anomalies    []string

	data   mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// Options controls how a ClassFile is parsed.
type Options struct {
	// DisableAnomalyChecks skips the non-fatal structural anomaly scan
	// (anomaly.go), by default (false).
	DisableAnomalyChecks bool

	// A custom logger.
	Logger log.Logger
}

// New opens the class file at name, memory-mapping it for parsing.
func New(name string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	cf := &ClassFile{}
	cf.setOptions(opts)
	cf.data = data
	cf.f = f
	return cf, nil
}

// NewBytes wraps an in-memory class file buffer for parsing.
func NewBytes(data []byte, opts *Options) (*ClassFile, error) {
	cf := &ClassFile{}
	cf.setOptions(opts)
	cf.data = data
	return cf, nil
}

func (cf *ClassFile) setOptions(opts *Options) {
	if opts != nil {
		cf.opts = opts
	} else {
		cf.opts = &Options{}
	}
	if cf.opts.Logger == nil {
		std := log.NewStdLogger(os.Stdout)
		cf.logger = log.NewHelper(log.NewFilter(std, log.FilterLevel(log.LevelError)))
	} else {
		cf.logger = log.NewHelper(cf.opts.Logger)
	}
}

// Close unmaps and closes the underlying file, if any.
func (cf *ClassFile) Close() error {
	if cf.f != nil && cf.data != nil {
		_ = cf.data.Unmap()
	}
	if cf.f != nil {
		return cf.f.Close()
	}
	return nil
}

// Parse decodes the whole class file from the wrapped buffer.
func (cf *ClassFile) Parse() error {
	if len(cf.data) < MinimalClassFileSize {
		return ErrTooSmall
	}

	r := NewReader(cf.data)
	if err := r.ExpectU32(ClassFileMagic, "class file magic"); err != nil {
		return err
	}

	minor, err := r.ReadU16()
	if err != nil {
		return err
	}
	major, err := r.ReadU16()
	if err != nil {
		return err
	}

	pool, err := parseConstantPool(r)
	if err != nil {
		return err
	}

	flags, err := r.ReadU16()
	if err != nil {
		return err
	}
	thisClass, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return err
	}
	superClass, err := readOptionalCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return err
	}
	interfaces, err := ReadSeq(r, 2, readCPIndexRaw[*ClassInfo])
	if err != nil {
		return err
	}
	fields, err := ReadSeq(r, 2, parseFieldInfo)
	if err != nil {
		return err
	}
	methods, err := ReadSeq(r, 2, parseMethodInfo)
	if err != nil {
		return err
	}
	attrs, err := readAttributes(r)
	if err != nil {
		return err
	}

	cf.MinorVersion = minor
	cf.MajorVersion = major
	cf.Pool = pool
	cf.AccessFlags = flags
	cf.ThisClass = thisClass
	cf.SuperClass = superClass
	cf.Interfaces = interfaces
	cf.Fields = fields
	cf.Methods = methods
	cf.Attributes = attrs

	if r.Len() > 0 {
		cf.logger.Warnf("%d trailing byte(s) after the top-level attribute table", r.Len())
		cf.Anomalies = append(cf.Anomalies, AnoTrailingBytes)
	}

	if !cf.opts.DisableAnomalyChecks {
		cf.Anomalies = append(cf.Anomalies, cf.collectAnomalies()...)
	}

	return nil
}

// Write re-serializes the class file from its current typed fields. It
// does not consult the buffer Parse was originally fed: every field is
// authoritative, matching the round-trip contract spec §8 property 1
// places on the whole top-level frame.
func (cf *ClassFile) Write() ([]byte, error) {
	w := NewWriter()
	if err := w.WriteU32(ClassFileMagic); err != nil {
		return nil, err
	}
	if err := w.WriteU16(cf.MinorVersion); err != nil {
		return nil, err
	}
	if err := w.WriteU16(cf.MajorVersion); err != nil {
		return nil, err
	}
	if err := cf.Pool.serialize(w); err != nil {
		return nil, err
	}
	if err := w.WriteU16(cf.AccessFlags); err != nil {
		return nil, err
	}
	if err := writeCPIndex(w, cf.ThisClass); err != nil {
		return nil, err
	}
	if err := writeOptionalCPIndex(w, cf.SuperClass); err != nil {
		return nil, err
	}
	if err := WriteSeq(w, 2, cf.Interfaces, func(w *Writer, idx CPIndex[*ClassInfo]) error {
		return writeCPIndex(w, idx)
	}); err != nil {
		return nil, err
	}
	if err := WriteSeq(w, 2, cf.Fields, func(w *Writer, f FieldInfo) error { return f.write(w) }); err != nil {
		return nil, err
	}
	if err := WriteSeq(w, 2, cf.Methods, func(w *Writer, m MethodInfo) error { return m.write(w) }); err != nil {
		return nil, err
	}
	if err := cf.Attributes.write(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
