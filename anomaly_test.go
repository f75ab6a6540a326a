// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

import "testing"

func TestCollectAnomaliesZeroMethods(t *testing.T) {
	pool := newConstantPool(nil)
	cf := &ClassFile{
		Pool:        pool,
		MajorVersion: 52,
		AccessFlags: AccPublic | AccSuper,
	}
	anomalies := cf.collectAnomalies()
	if !stringSliceContains(anomalies, AnoZeroMethods) {
		t.Errorf("expected %q in anomalies, got %v", AnoZeroMethods, anomalies)
	}
}

func TestCollectAnomaliesInterfaceSkipsZeroMethods(t *testing.T) {
	pool := newConstantPool(nil)
	cf := &ClassFile{
		Pool:        pool,
		MajorVersion: 52,
		AccessFlags: AccInterface | AccAbstract,
	}
	anomalies := cf.collectAnomalies()
	if stringSliceContains(anomalies, AnoZeroMethods) {
		t.Errorf("did not expect %q in anomalies for an interface, got %v", AnoZeroMethods, anomalies)
	}
}

func TestCollectAnomaliesMajorVersionUnknown(t *testing.T) {
	pool := newConstantPool(nil)
	cf := &ClassFile{
		Pool:        pool,
		MajorVersion: 999,
		AccessFlags: AccInterface,
	}
	anomalies := cf.collectAnomalies()
	if !stringSliceContains(anomalies, AnoMajorVersionUnknown) {
		t.Errorf("expected %q in anomalies, got %v", AnoMajorVersionUnknown, anomalies)
	}
}

func stringSliceContains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
