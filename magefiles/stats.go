//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
)

type pkgStats struct {
	files     int
	testFiles int
	tests     int
}

// Stats prints, per package directory, the number of Go source files, test
// files and Test functions.
func Stats() error {
	stats := map[string]*pkgStats{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "magefiles", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		dir := filepath.Dir(path)
		s, ok := stats[dir]
		if !ok {
			s = &pkgStats{}
			stats[dir] = s
		}
		if !strings.HasSuffix(path, "_test.go") {
			s.files++
			return nil
		}
		s.testFiles++
		n, countErr := countTests(path)
		if countErr == nil {
			s.tests += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(stats))
	for d := range stats {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tFILES\tTEST FILES\tTESTS")
	var total pkgStats
	for _, d := range dirs {
		s := stats[d]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", d, s.files, s.testFiles, s.tests)
		total.files += s.files
		total.testFiles += s.testFiles
		total.tests += s.tests
	}
	fmt.Fprintf(w, "total\t%d\t%d\t%d\n", total.files, total.testFiles, total.tests)
	return w.Flush()
}

// countTests counts top-level Test functions in a test file.
func countTests(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "func Test") {
			count++
		}
	}
	return count, scanner.Err()
}
