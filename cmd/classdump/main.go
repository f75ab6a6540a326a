// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	javaclass "github.com/javaclass/javaclass"
)

var (
	all         bool
	verbose     bool
	constants   bool
	methods     bool
	fields      bool
	attrs       bool
	annotations bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "classdump",
		Short: "A Java class file parser",
		Long:  "A class-file parser built for tooling and static analysis",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Long:  "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version " + javaclass.Version)
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps the file",
		Long:  "Dumps the decoded structure of a .class file, or every .class file under a directory",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	dumpCmd.Flags().BoolVarP(&constants, "constants", "", false, "Dump the constant pool")
	dumpCmd.Flags().BoolVarP(&fields, "fields", "", false, "Dump fields")
	dumpCmd.Flags().BoolVarP(&methods, "methods", "", false, "Dump methods")
	dumpCmd.Flags().BoolVarP(&attrs, "attributes", "", false, "Dump top-level attributes")
	dumpCmd.Flags().BoolVarP(&annotations, "annotations", "", false, "Dump class-level annotations")
	dumpCmd.Flags().BoolVarP(&all, "all", "", false, "Dump everything")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
