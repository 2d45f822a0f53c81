package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lumen/internal/spectest"
)

func (c *cli) runTest(args []string) int {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	halt := fs.Bool("halt", false, "skip execution of scripts with syntax errors")
	if err := fs.Parse(args); err != nil {
		return c.usage("lumen test [--halt] [path|dir]...")
	}

	targets := fs.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}

	files, err := collectTestFiles(targets)
	if err != nil {
		return c.fail("test", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(c.stdout, "no tests found")
		return 0
	}
	sort.Strings(files)

	opts := spectest.Options{HaltOnSyntaxError: *halt}
	passed := 0
	failed := 0
	for _, path := range files {
		ok, reason := runTestFile(path, opts)
		if ok {
			passed++
			log.Debugf("PASS %s", path)
			continue
		}
		failed++
		fmt.Fprintf(c.stdout, "FAIL %s: %s\n", path, reason)
	}
	fmt.Fprintf(c.stdout, "passed %d, failed %d\n", passed, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func runTestFile(path string, opts spectest.Options) (bool, string) {
	ok, reason, err := spectest.RunScript(path, opts)
	if err != nil {
		return false, err.Error()
	}
	return ok, reason
}

func collectTestFiles(targets []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}
	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if isTestFile(target) {
				if err := add(target); err != nil {
					return nil, err
				}
			}
			continue
		}

		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				base := filepath.Base(path)
				if base == ".git" || base == "node_modules" || base == "fixtures" || base == "_examples" {
					return filepath.SkipDir
				}
				return nil
			}
			if isTestFile(path) {
				return add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isTestFile(path string) bool {
	if strings.HasSuffix(path, ".test.lum") {
		return true
	}
	if !strings.HasSuffix(path, ".lum") {
		return false
	}
	sep := string(os.PathSeparator)
	if strings.Contains(path, sep+"tests"+sep+"fixtures"+sep) {
		return false
	}
	return strings.Contains(path, sep+"tests"+sep) || strings.HasPrefix(path, "tests"+sep)
}
