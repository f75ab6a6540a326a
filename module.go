// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "golang.org/x/mod/semver"

// Module access/requires/exports/opens flags (JVMS 4.7.25).
const (
	ModuleOpen         uint16 = 0x0020
	ModuleSynthetic    uint16 = 0x1000
	ModuleMandated     uint16 = 0x8000
	RequiresTransitive uint16 = 0x0020
	RequiresStaticPhase uint16 = 0x0040
	RequiresSynthetic  uint16 = 0x1000
	RequiresMandated   uint16 = 0x8000
)

// ModuleRequires is one entry of a Module attribute's requires table:
// structurally the same "bound DLL descriptor" shape as
// ImageBoundImportDescriptor in boundimports.go — a referenced unit
// plus a version stamp — except the reference is a constant-pool
// Module index instead of an offset into the bound-import table, and
// the version stamp is an optional UTF8 string instead of a raw
// TimeDateStamp.
type ModuleRequires struct {
	Requires       CPIndex[*ModuleInfo]
	Flags          uint16
	VersionIndex   OptionalCPIndex[*UTF8Info]
}

// VersionIsWellFormed reports whether VersionIndex, if present, decodes
// to a semver-valid string. JVMS leaves the module version string
// format open; this is a best-effort anomaly check only; a malformed
// version is never treated as a parse error.
func (r ModuleRequires) VersionIsWellFormed(pool *ConstantPool) bool {
	idx, ok := r.VersionIndex.Get()
	if !ok {
		return true
	}
	utf8, ok := idx.Resolve(pool)
	if !ok {
		return false
	}
	return semver.IsValid(normalizeModuleVersion(utf8.Str()))
}

// normalizeModuleVersion prefixes a bare JPMS version string (e.g.
// "1.2.3") with "v" so x/mod/semver, which demands the leading "v",
// can judge it.
func normalizeModuleVersion(v string) string {
	if len(v) > 0 && v[0] == 'v' {
		return v
	}
	return "v" + v
}

func parseModuleRequires(r *Reader) (ModuleRequires, error) {
	idx, err := readCPIndexRaw[*ModuleInfo](r)
	if err != nil {
		return ModuleRequires{}, err
	}
	flags, err := r.ReadU16()
	if err != nil {
		return ModuleRequires{}, err
	}
	ver, err := readOptionalCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return ModuleRequires{}, err
	}
	return ModuleRequires{Requires: idx, Flags: flags, VersionIndex: ver}, nil
}

func (r ModuleRequires) write(w *Writer) error {
	if err := writeCPIndex(w, r.Requires); err != nil {
		return err
	}
	if err := w.WriteU16(r.Flags); err != nil {
		return err
	}
	return writeOptionalCPIndex(w, r.VersionIndex)
}

// ModuleExports is one entry of a Module attribute's exports table.
type ModuleExports struct {
	Exports CPIndex[*PackageInfo]
	Flags   uint16
	To      []CPIndex[*ModuleInfo]
}

func parseModuleExports(r *Reader) (ModuleExports, error) {
	idx, err := readCPIndexRaw[*PackageInfo](r)
	if err != nil {
		return ModuleExports{}, err
	}
	flags, err := r.ReadU16()
	if err != nil {
		return ModuleExports{}, err
	}
	to, err := ReadSeq(r, 2, readCPIndexRaw[*ModuleInfo])
	if err != nil {
		return ModuleExports{}, err
	}
	return ModuleExports{Exports: idx, Flags: flags, To: to}, nil
}

func (e ModuleExports) write(w *Writer) error {
	if err := writeCPIndex(w, e.Exports); err != nil {
		return err
	}
	if err := w.WriteU16(e.Flags); err != nil {
		return err
	}
	return WriteSeq(w, 2, e.To, func(w *Writer, idx CPIndex[*ModuleInfo]) error { return writeCPIndex(w, idx) })
}

// ModuleOpens is one entry of a Module attribute's opens table. Same
// shape as ModuleExports, with a distinct flag namespace (JVMS 4.7.25).
type ModuleOpens struct {
	Opens CPIndex[*PackageInfo]
	Flags uint16
	To    []CPIndex[*ModuleInfo]
}

func parseModuleOpens(r *Reader) (ModuleOpens, error) {
	idx, err := readCPIndexRaw[*PackageInfo](r)
	if err != nil {
		return ModuleOpens{}, err
	}
	flags, err := r.ReadU16()
	if err != nil {
		return ModuleOpens{}, err
	}
	to, err := ReadSeq(r, 2, readCPIndexRaw[*ModuleInfo])
	if err != nil {
		return ModuleOpens{}, err
	}
	return ModuleOpens{Opens: idx, Flags: flags, To: to}, nil
}

func (o ModuleOpens) write(w *Writer) error {
	if err := writeCPIndex(w, o.Opens); err != nil {
		return err
	}
	if err := w.WriteU16(o.Flags); err != nil {
		return err
	}
	return WriteSeq(w, 2, o.To, func(w *Writer, idx CPIndex[*ModuleInfo]) error { return writeCPIndex(w, idx) })
}

// ModuleProvides is one entry of a Module attribute's provides table:
// a service interface paired with the classes that implement it.
type ModuleProvides struct {
	Provides CPIndex[*ClassInfo]
	With     []CPIndex[*ClassInfo]
}

func parseModuleProvides(r *Reader) (ModuleProvides, error) {
	idx, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return ModuleProvides{}, err
	}
	with, err := ReadSeq(r, 2, readCPIndexRaw[*ClassInfo])
	if err != nil {
		return ModuleProvides{}, err
	}
	return ModuleProvides{Provides: idx, With: with}, nil
}

func (p ModuleProvides) write(w *Writer) error {
	if err := writeCPIndex(w, p.Provides); err != nil {
		return err
	}
	return WriteSeq(w, 2, p.With, func(w *Writer, idx CPIndex[*ClassInfo]) error { return writeCPIndex(w, idx) })
}

// Module is the typed view of the class-level Module attribute (JVMS
// 4.7.25): the full requires/exports/opens/uses/provides tree of a
// module-info.class.
type Module struct {
	Name         CPIndex[*ModuleInfo]
	Flags        uint16
	VersionIndex OptionalCPIndex[*UTF8Info]

	Requires []ModuleRequires
	Exports  []ModuleExports
	Opens    []ModuleOpens
	Uses     []CPIndex[*ClassInfo]
	Provides []ModuleProvides
}

func parseModule(r *Reader, pool *ConstantPool) (Module, error) {
	name, err := readCPIndexRaw[*ModuleInfo](r)
	if err != nil {
		return Module{}, err
	}
	flags, err := r.ReadU16()
	if err != nil {
		return Module{}, err
	}
	ver, err := readOptionalCPIndexRaw[*UTF8Info](r)
	if err != nil {
		return Module{}, err
	}
	requires, err := ReadSeq(r, 2, parseModuleRequires)
	if err != nil {
		return Module{}, err
	}
	exports, err := ReadSeq(r, 2, parseModuleExports)
	if err != nil {
		return Module{}, err
	}
	opens, err := ReadSeq(r, 2, parseModuleOpens)
	if err != nil {
		return Module{}, err
	}
	uses, err := ReadSeq(r, 2, readCPIndexRaw[*ClassInfo])
	if err != nil {
		return Module{}, err
	}
	provides, err := ReadSeq(r, 2, parseModuleProvides)
	if err != nil {
		return Module{}, err
	}
	return Module{
		Name: name, Flags: flags, VersionIndex: ver,
		Requires: requires, Exports: exports, Opens: opens,
		Uses: uses, Provides: provides,
	}, nil
}

func writeModule(w *Writer, m Module, pool *ConstantPool) error {
	if err := writeCPIndex(w, m.Name); err != nil {
		return err
	}
	if err := w.WriteU16(m.Flags); err != nil {
		return err
	}
	if err := writeOptionalCPIndex(w, m.VersionIndex); err != nil {
		return err
	}
	if err := WriteSeq(w, 2, m.Requires, func(w *Writer, r ModuleRequires) error { return r.write(w) }); err != nil {
		return err
	}
	if err := WriteSeq(w, 2, m.Exports, func(w *Writer, e ModuleExports) error { return e.write(w) }); err != nil {
		return err
	}
	if err := WriteSeq(w, 2, m.Opens, func(w *Writer, o ModuleOpens) error { return o.write(w) }); err != nil {
		return err
	}
	if err := WriteSeq(w, 2, m.Uses, func(w *Writer, idx CPIndex[*ClassInfo]) error { return writeCPIndex(w, idx) }); err != nil {
		return err
	}
	return WriteSeq(w, 2, m.Provides, func(w *Writer, p ModuleProvides) error { return p.write(w) })
}

// Module decodes the class-level Module attribute.
func (a Attributes) Module(pool *ConstantPool) (Module, bool) {
	return Decode(a, pool, AttrModule, parseModule)
}

// EncodeModule re-serializes m as a Module AttributeInfo.
func EncodeModule(pool *ConstantPool, m Module) (AttributeInfo, error) {
	return Encode(pool, AttrModule, m, writeModule)
}

// ModulePackages is the typed view of the ModulePackages attribute
// (JVMS 4.7.26): every package the module contains, exported or not.
type ModulePackages struct {
	Packages []CPIndex[*PackageInfo]
}

func parseModulePackages(r *Reader, pool *ConstantPool) (ModulePackages, error) {
	pkgs, err := ReadSeq(r, 2, readCPIndexRaw[*PackageInfo])
	if err != nil {
		return ModulePackages{}, err
	}
	return ModulePackages{Packages: pkgs}, nil
}

func writeModulePackages(w *Writer, m ModulePackages, pool *ConstantPool) error {
	return WriteSeq(w, 2, m.Packages, func(w *Writer, idx CPIndex[*PackageInfo]) error { return writeCPIndex(w, idx) })
}

// ModulePackages decodes the class-level ModulePackages attribute.
func (a Attributes) ModulePackages(pool *ConstantPool) (ModulePackages, bool) {
	return Decode(a, pool, AttrModulePackages, parseModulePackages)
}

// EncodeModulePackages re-serializes m as a ModulePackages AttributeInfo.
func EncodeModulePackages(pool *ConstantPool, m ModulePackages) (AttributeInfo, error) {
	return Encode(pool, AttrModulePackages, m, writeModulePackages)
}

// ModuleMainClass is the typed view of the ModuleMainClass attribute
// (JVMS 4.7.27): a bare CPIndex to the module's launch class.
type ModuleMainClass struct {
	MainClass CPIndex[*ClassInfo]
}

func parseModuleMainClass(r *Reader, pool *ConstantPool) (ModuleMainClass, error) {
	idx, err := readCPIndexRaw[*ClassInfo](r)
	if err != nil {
		return ModuleMainClass{}, err
	}
	return ModuleMainClass{MainClass: idx}, nil
}

func writeModuleMainClass(w *Writer, m ModuleMainClass, pool *ConstantPool) error {
	return writeCPIndex(w, m.MainClass)
}

// ModuleMainClass decodes the class-level ModuleMainClass attribute.
func (a Attributes) ModuleMainClass(pool *ConstantPool) (ModuleMainClass, bool) {
	return Decode(a, pool, AttrModuleMainClass, parseModuleMainClass)
}

// EncodeModuleMainClass re-serializes m as a ModuleMainClass AttributeInfo.
func EncodeModuleMainClass(pool *ConstantPool, m ModuleMainClass) (AttributeInfo, error) {
	return Encode(pool, AttrModuleMainClass, m, writeModuleMainClass)
}
