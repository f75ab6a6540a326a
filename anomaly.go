// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// Anomalies describe a class file that decoded successfully but
// violates a convention the JVMS does not treat as a hard structural
// requirement — interesting for tooling (obfuscators, malformed
// build-pipeline output, fuzzer corpora) even though no anomaly here
// stops the Windows-loader-style strict parse the teacher's
// GetAnomalies performs for PE files from succeeding.
var (
	// AnoTrailingBytes is reported when bytes remain in the input after
	// the top-level attribute table has been fully consumed.
	AnoTrailingBytes = "trailing bytes after the top-level attribute table"

	// AnoOversizedConstantPool is reported when the constant pool count
	// is implausibly large relative to the rest of the file — most real
	// class files carry well under a few thousand entries.
	AnoOversizedConstantPool = "constant pool entry count is unusually large"

	// AnoDuplicateNestMember is reported when a class's NestMembers
	// attribute lists the same class index more than once.
	AnoDuplicateNestMember = "NestMembers attribute lists a class index more than once"

	// AnoMajorVersionUnknown is reported when major_version falls outside
	// the range of class file versions this module recognizes.
	AnoMajorVersionUnknown = "major_version is outside the recognized range"

	// AnoZeroMethods is reported when a non-interface, non-module class
	// declares no methods at all, which is legal but rare outside of
	// pure marker/constant-holder classes.
	AnoZeroMethods = "class declares no methods"

	// AnoSuperClassAbsentNotObject is reported when super_class is zero
	// (meaning "no superclass", valid only for java/lang/Object) on a
	// class whose own name does not resolve to java/lang/Object.
	AnoSuperClassAbsentNotObject = "super_class is absent on a class other than java/lang/Object"
)

// maxPlausibleConstantPoolEntries is the threshold AnoOversizedConstantPool
// checks against; JVMS caps the pool at 65535 entries but real-world
// files rarely approach even a tenth of that.
const maxPlausibleConstantPoolEntries = 20000

// firstRecognizedMajorVersion/lastRecognizedMajorVersion bound the
// major_version anomaly check: 45 is JDK 1.0.2's class file version;
// the upper bound is bumped as newer class file versions are verified
// against this module.
const (
	firstRecognizedMajorVersion = 45
	lastRecognizedMajorVersion  = 68
)

// collectAnomalies runs every non-fatal structural check against an
// already-parsed ClassFile. Anomalies are advisory: none of them
// invalidate the parse that already succeeded.
func (cf *ClassFile) collectAnomalies() []string {
	var out []string

	if cf.Pool.Len() > maxPlausibleConstantPoolEntries {
		out = append(out, AnoOversizedConstantPool)
	}

	if cf.MajorVersion < firstRecognizedMajorVersion || cf.MajorVersion > lastRecognizedMajorVersion {
		out = append(out, AnoMajorVersionUnknown)
	}

	if !cf.SuperClass.Present() {
		if this, ok := cf.ThisClass.Resolve(cf.Pool); ok {
			if name, ok := this.NameIndex.Resolve(cf.Pool); !ok || name.Str() != "java/lang/Object" {
				out = append(out, AnoSuperClassAbsentNotObject)
			}
		}
	}

	if len(cf.Methods) == 0 && cf.AccessFlags&AccInterface == 0 && cf.AccessFlags&AccModule == 0 {
		out = append(out, AnoZeroMethods)
	}

	if nest, ok := cf.Attributes.NestMembers(cf.Pool); ok {
		seen := make(map[uint16]bool, len(nest.Classes))
		for _, idx := range nest.Classes {
			if seen[idx.Index] {
				out = append(out, AnoDuplicateNestMember)
				break
			}
			seen[idx.Index] = true
		}
	}

	return out
}
