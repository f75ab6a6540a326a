// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package javaclass parses and serializes Java .class files (JVMS 4).
package javaclass

// Version is this module's own version string, unrelated to the
// class file format version a ClassFile carries.
const Version = "0.1.0"
