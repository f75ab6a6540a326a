// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	javaclass "github.com/javaclass/javaclass"
	jlog "github.com/javaclass/javaclass/log"
)

func prettyPrint(buf []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, buf, "", "\t"); err != nil {
		log.Println("JSON indent error: ", err)
		return string(buf)
	}
	return out.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// classSummary is the JSON-friendly projection of a decoded ClassFile
// printed with --all or when no section flag is given; it resolves the constant-pool indices
// a caller would otherwise have to chase by hand.
type classSummary struct {
	MajorVersion int      `json:"major_version"`
	MinorVersion int      `json:"minor_version"`
	ThisClass    string   `json:"this_class"`
	SuperClass   string   `json:"super_class,omitempty"`
	AccessFlags  uint16   `json:"access_flags"`
	Anomalies    []string `json:"anomalies,omitempty"`
}

func summarize(cf *javaclass.ClassFile) classSummary {
	s := classSummary{
		MajorVersion: int(cf.MajorVersion),
		MinorVersion: int(cf.MinorVersion),
		AccessFlags:  cf.AccessFlags,
		Anomalies:    cf.Anomalies,
	}
	if this, ok := cf.ThisClass.Resolve(cf.Pool); ok {
		if name, ok := this.NameIndex.Resolve(cf.Pool); ok {
			s.ThisClass = name.Str()
		}
	}
	if super, ok := cf.SuperClass.Resolve(cf.Pool); ok {
		if name, ok := super.NameIndex.Resolve(cf.Pool); ok {
			s.SuperClass = name.Str()
		}
	}
	return s
}

func dumpClassFile(filename string, cmd *cobra.Command) {
	log.Printf("processing %s", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		log.Printf("error reading %s: %s", filename, err)
		return
	}

	opts := &javaclass.Options{}
	if verbose {
		opts.Logger = jlog.NewStdLogger(os.Stderr)
	}
	cf, err := javaclass.NewBytes(data, opts)
	if err != nil {
		log.Printf("error opening %s: %s", filename, err)
		return
	}
	defer cf.Close()

	if err := cf.Parse(); err != nil {
		log.Printf("error parsing %s: %s", filename, err)
		return
	}

	wantAll, _ := cmd.Flags().GetBool("all")

	wantSummary := wantAll
	wantConstants, _ := cmd.Flags().GetBool("constants")
	wantFields, _ := cmd.Flags().GetBool("fields")
	wantMethods, _ := cmd.Flags().GetBool("methods")
	wantAttrs, _ := cmd.Flags().GetBool("attributes")
	wantAnnotations, _ := cmd.Flags().GetBool("annotations")

	if !wantConstants && !wantFields && !wantMethods && !wantAttrs && !wantAnnotations && !wantAll {
		wantSummary = true
	}

	if wantSummary {
		buf, _ := json.Marshal(summarize(cf))
		fmt.Println(prettyPrint(buf))
	}

	if wantConstants || wantAll {
		buf, _ := json.Marshal(cf.Pool.Entries())
		fmt.Println(prettyPrint(buf))
	}

	if wantFields || wantAll {
		buf, _ := json.Marshal(cf.Fields)
		fmt.Println(prettyPrint(buf))
	}

	if wantMethods || wantAll {
		buf, _ := json.Marshal(cf.Methods)
		fmt.Println(prettyPrint(buf))
	}

	if wantAttrs || wantAll {
		buf, _ := json.Marshal(cf.Attributes)
		fmt.Println(prettyPrint(buf))
	}

	if wantAnnotations || wantAll {
		if a, ok := cf.Attributes.RuntimeVisibleAnnotations(cf.Pool); ok {
			buf, _ := json.Marshal(a)
			fmt.Println(prettyPrint(buf))
		}
		if a, ok := cf.Attributes.RuntimeInvisibleAnnotations(cf.Pool); ok {
			buf, _ := json.Marshal(a)
			fmt.Println(prettyPrint(buf))
		}
	}
}

func dump(cmd *cobra.Command, args []string) {
	filePath := args[0]

	if !isDirectory(filePath) {
		dumpClassFile(filePath, cmd)
		return
	}

	var files []string
	filepath.Walk(filePath, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && filepath.Ext(path) == ".class" {
			files = append(files, path)
		}
		return nil
	})

	for _, f := range files {
		dumpClassFile(f, cmd)
	}
}
