// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command execlog inspects execution-log documents: it ingests one or
// more output files and reports the suite and test outcomes, with the
// same detail-omission and flattening controls the library offers.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	flattenSpecs  []string
	excludeDetail bool
)

var rootCmd = &cobra.Command{
	Use:   "execlog [command] (flags)",
	Short: "execution-log inspection tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		reportCmd,
		mergeCmd,
	)

	for _, cmd := range []*cobra.Command{reportCmd, mergeCmd} {
		cmd.Flags().StringArrayVar(
			&flattenSpecs, "flatten", nil,
			"flatten matching containers (name:<pattern>, tag:<pattern>, for, while, iteration)")
		cmd.Flags().BoolVar(
			&excludeDetail, "exclude-detail", false,
			"drop step-level execution detail while parsing")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
