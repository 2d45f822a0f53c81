package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"lumen/internal/ast"
	"lumen/internal/config"
	"lumen/internal/diag"
	"lumen/internal/evaluator"
	"lumen/internal/format"
	"lumen/internal/lexer"
	"lumen/internal/lint"
	"lumen/internal/parser"
	"lumen/internal/repl"
	"lumen/internal/runtimeio"
	"lumen/internal/token"
)

const (
	exitUsage   = 64
	exitNoInput = 66
)

var log = commonlog.GetLogger("lumen")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	tokens bool
	ast    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lumen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tokensMode := fs.Bool("tokens", false, "print tokens instead of running")
	astMode := fs.Bool("ast", false, "print AST instead of running")
	verbose := fs.Bool("v", false, "log pipeline stages to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *verbose {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(-4, nil)
	}

	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr, tokens: *tokensMode, ast: *astMode}

	rest := fs.Args()
	if len(rest) == 0 {
		return c.runREPL(nil)
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "run":
		return c.runRun(cmdArgs)
	case "repl":
		return c.runREPL(cmdArgs)
	case "fmt":
		return c.runFmt(cmdArgs)
	case "lint":
		return c.runLint(cmdArgs)
	case "init":
		return c.runInit(cmdArgs)
	case "test":
		return c.runTest(cmdArgs)
	}
	return c.runRun(rest)
}

func (c *cli) usage(format string, args ...any) int {
	fmt.Fprintf(c.stderr, "usage: "+format+"\n", args...)
	return exitUsage
}

func (c *cli) fail(cmd string, err error) int {
	fmt.Fprintf(c.stderr, "%s error: %s\n", cmd, err)
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return exitNoInput
	}
	return 1
}

func (c *cli) runREPL(args []string) int {
	if c.tokens || c.ast {
		fmt.Fprintln(c.stderr, "repl does not support -tokens or -ast")
		return exitUsage
	}
	if len(args) != 0 {
		return c.usage("lumen repl")
	}

	// A lumen.yml in the working directory applies to the session too.
	man, ok, err := config.Find(".")
	if err != nil {
		return c.fail("repl", err)
	}
	if !ok {
		man = config.Default()
	}
	log.Debugf("repl options %+v", man.Options)

	repl.Start(c.stdin, c.stdout, repl.Options{
		Interactive: runtimeio.IsInteractive(),
		PrintAST:    man.Options.PrintAST,
		Eval:        evaluator.Options{HaltOnSyntaxError: man.Options.HaltOnSyntaxError},
	})
	return evaluator.ExitOK
}

func (c *cli) runRun(args []string) int {
	if len(args) > 1 {
		return c.usage("lumen run [file|dir]")
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	entryPath, man, err := resolveRunTarget(target)
	if err != nil {
		return c.fail("run", err)
	}
	b, err := os.ReadFile(entryPath)
	if err != nil {
		return c.fail("run", err)
	}
	src := string(b)
	log.Debugf("entry %s (%d bytes)", entryPath, len(b))

	if c.tokens {
		toks, diags := lexer.Scan(src)
		dumpTokens(c.stdout, toks)
		return c.report(entryPath, diags)
	}
	if c.ast || man.Options.PrintAST {
		stmts, diags := parser.ParseSource(src)
		fmt.Fprint(c.stdout, ast.SprintProgram(stmts))
		if c.ast {
			return c.report(entryPath, diags)
		}
	}

	runner := evaluator.NewRunner(c.stdout)
	runner.Options.HaltOnSyntaxError = man.Options.HaltOnSyntaxError
	res := runner.Run(src)
	log.Debugf("tokens=%d statements=%d diagnostics=%d executed=%t",
		len(res.Tokens), len(res.Statements), len(res.Diagnostics), res.Executed)
	res.Report(c.stderr)
	return res.ExitCode()
}

func (c *cli) report(path string, diags []diag.Diagnostic) int {
	for _, d := range diags {
		fmt.Fprintln(c.stderr, d.Format(path))
	}
	if diag.List(diags).HasErrors() {
		return evaluator.ExitStatic
	}
	return evaluator.ExitOK
}

func dumpTokens(w io.Writer, toks []token.Token) {
	for _, tok := range toks {
		lit := "nil"
		if tok.Literal != nil {
			lit = fmt.Sprint(tok.Literal)
		}
		fmt.Fprintf(w, "%4d:%-3d  %-10s  %-12q  %s\n", tok.Line, tok.Col, tok.Type, tok.Lexeme, lit)
	}
}

// resolveRunTarget maps a file or project directory to the entry file and
// the manifest that applies to it.
func resolveRunTarget(target string) (string, *config.Manifest, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", nil, err
	}
	if !info.IsDir() {
		abs, err := filepath.Abs(target)
		if err != nil {
			return "", nil, err
		}
		man, ok, err := config.Find(filepath.Dir(abs))
		if err != nil {
			return "", nil, err
		}
		if !ok {
			man = config.Default()
		}
		return abs, man, nil
	}

	root, err := filepath.Abs(target)
	if err != nil {
		return "", nil, err
	}
	man, ok, err := config.Find(root)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, fmt.Errorf("%s: %w", filepath.Join(root, config.FileName), os.ErrNotExist)
	}
	return man.EntryPath(), man, nil
}

func (c *cli) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "project name")
	entry := fs.String("entry", "main.lum", "entry file")
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil || fs.NArg() > 1 {
		return c.usage("lumen init [--name <name>] [--entry <file>] [--force] [dir]")
	}

	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return c.fail("init", err)
	}

	man := config.Default()
	man.Entry = *entry
	man.Name = *name
	if strings.TrimSpace(man.Name) == "" {
		man.Name = filepath.Base(dir)
	}
	if err := man.Validate(); err != nil {
		return c.fail("init", err)
	}

	manifestPath := filepath.Join(dir, config.FileName)
	exists, err := pathExists(manifestPath)
	if err != nil {
		return c.fail("init", err)
	}
	if exists && !*force {
		return c.fail("init", fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.fail("init", err)
	}
	if err := man.Write(manifestPath); err != nil {
		return c.fail("init", err)
	}

	entryPath := filepath.Join(dir, man.Entry)
	if err := ensureDir(entryPath); err != nil {
		return c.fail("init", err)
	}
	entryExists, err := pathExists(entryPath)
	if err != nil {
		return c.fail("init", err)
	}
	if !entryExists || *force {
		if err := os.WriteFile(entryPath, []byte(starterProgram), 0o644); err != nil {
			return c.fail("init", err)
		}
	}
	fmt.Fprintf(c.stdout, "created %s\n", manifestPath)
	return evaluator.ExitOK
}

func (c *cli) runFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	writeBack := fs.Bool("w", false, "write result to (source) file")
	compact := fs.Bool("compact", false, "drop blank lines between statements")
	if err := fs.Parse(args); err != nil {
		return c.usage("lumen fmt [-w] [-compact] <path>...")
	}

	targets := fs.Args()
	if len(targets) == 0 {
		targets = []string{"."}
	}
	files, err := collectLumenFiles(targets)
	if err != nil {
		return c.fail("fmt", err)
	}
	sort.Strings(files)

	opts := format.DefaultOptions()
	opts.KeepBlankLines = !*compact

	code := evaluator.ExitOK
	for _, path := range files {
		b, err := os.ReadFile(path)
		if err != nil {
			return c.fail("fmt", err)
		}
		formatted, err := format.Format(string(b), opts)
		if err != nil {
			var fe *format.Error
			if errors.As(err, &fe) {
				c.report(path, fe.Diagnostics)
			} else {
				fmt.Fprintf(c.stderr, "fmt error: %s: %s\n", path, err)
			}
			code = evaluator.ExitStatic
			continue
		}

		if !*writeBack {
			fmt.Fprint(c.stdout, formatted)
			continue
		}
		if string(b) != formatted {
			if err := writeFileAtomic(path, []byte(formatted)); err != nil {
				return c.fail("fmt", err)
			}
			fmt.Fprintf(c.stdout, "formatted %s\n", path)
		}
	}
	return code
}

func (c *cli) runLint(args []string) int {
	if len(args) == 0 {
		return c.usage("lumen lint <file|dir> [more...]")
	}

	files, err := collectLumenFiles(args)
	if err != nil {
		return c.fail("lint", err)
	}
	sort.Strings(files)

	hadErrors := false
	for _, path := range files {
		diags, err := lintFile(path)
		if err != nil {
			fmt.Fprintln(c.stderr, "lint error:", err)
			hadErrors = true
			continue
		}
		for _, d := range diags {
			fmt.Fprintln(c.stdout, d.Format(path))
			if d.Severity == diag.SeverityError {
				hadErrors = true
			}
		}
		log.Debugf("%s: %d diagnostics", path, len(diags))
	}

	if hadErrors {
		return evaluator.ExitStatic
	}
	return evaluator.ExitOK
}

func lintFile(path string) ([]diag.Diagnostic, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stmts, diags := parser.ParseSource(string(b))
	return append(diags, lint.Run(stmts)...), nil
}

func collectLumenFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if strings.HasSuffix(target, ".lum") {
				files = append(files, target)
			}
			continue
		}

		err = filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				base := filepath.Base(path)
				if base == ".git" || base == "node_modules" {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".lum") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lumenfmt-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

const starterProgram = "var greeting = \"hello\";\nprint greeting + \", lumen\";\n"

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
