// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command gobo formats GML source files.
//
// Usage:
//
//	gobo [flags] format <file|dir>
//
// A file is formatted in place, or printed with -stdout. A directory is
// searched recursively for .gml files, which are formatted in place. With
// -check, nothing is written: a diff is printed for every file that is not
// formatted, and the exit code is 1 if there are any.
//
// Options come from the nearest gobo.json at or above the target, then from
// GOBO_* environment variables, then from flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	gobo "github.com/Pizzaandy/Gobo-sub001"
	"github.com/Pizzaandy/Gobo-sub001/cache"
	"github.com/Pizzaandy/Gobo-sub001/config"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

var version = "dev" // Set with -ldflags "-X main.version=...".

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	check, stdout, write bool
	width, tabWidth      int
	tabs                 bool
	braceStyle           string
	validate             bool
	cachePath, envFile   string
	jobs                 int
	verbose, debug       bool
	version              bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gobo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: gobo [flags] format <file|dir>")
		fs.PrintDefaults()
	}

	var f flags
	fs.BoolVar(&f.check, "check", false, "print a diff for each file that is not formatted, and fail if there are any")
	fs.BoolVar(&f.stdout, "stdout", false, "print a single formatted file instead of overwriting it")
	fs.BoolVar(&f.write, "write", true, "overwrite files with their formatted contents")
	fs.IntVar(&f.width, "width", 0, "target line width")
	fs.BoolVar(&f.tabs, "tabs", false, "indent with tabs")
	fs.IntVar(&f.tabWidth, "tab-width", 0, "columns per indentation level")
	fs.StringVar(&f.braceStyle, "brace-style", "", `"sameLine" or "newLine"`)
	fs.BoolVar(&f.validate, "validate", false, "check that output preserves comments and meaning")
	fs.StringVar(&f.cachePath, "cache", "", "path of a cache of formatted files")
	fs.StringVar(&f.envFile, "envfile", "", "dotenv file to load GOBO_* variables from")
	fs.IntVar(&f.jobs, "j", 0, "number of files to format in parallel")
	fs.BoolVar(&f.verbose, "v", false, "log debug output")
	fs.BoolVar(&f.debug, "debug", false, "with -stdout, print the layout document and comment table to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if f.version {
		fmt.Fprintf(stdout, "gobo %s\n", version)
		return exitOK
	}

	p := newPalette(stdout, stderr)
	if fs.NArg() != 2 || fs.Arg(0) != "format" {
		fs.Usage()
		return exitUsage
	}
	target := fs.Arg(1)

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: !p.color})
	log.SetLevel(logrus.WarnLevel)
	if f.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if f.envFile != "" {
		if err := config.LoadEnvFile(f.envFile); err != nil {
			p.error(err)
			return exitUsage
		}
	}

	if _, err := os.Stat(target); err != nil {
		p.error(err)
		return exitFailure
	}

	opts, err := config.Resolve(target, config.Default(), log)
	if err != nil {
		p.error(err)
		return exitUsage
	}
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["width"] {
		opts.Width = f.width
	}
	if set["tab-width"] {
		opts.TabWidth = f.tabWidth
	}
	if set["tabs"] {
		opts.UseTabs = f.tabs
	}
	if set["brace-style"] {
		opts.BraceStyle = config.BraceStyle(f.braceStyle)
	}
	if set["validate"] {
		opts.ValidateOutput = f.validate
	}
	if err := opts.Validate(); err != nil {
		p.error(err)
		return exitUsage
	}

	options := gobo.Options{Options: opts, Logger: log, Debug: f.debug}
	if f.stdout {
		return formatToStdout(target, options, stdout, stderr, p)
	}

	formatter := gobo.Formatter{
		Options:        options,
		MaxParallelism: f.jobs,
		DryRun:         f.check || !f.write,
		Reporter: reporter.NewReporter(func(err error) error {
			p.error(err)
			return err
		}, nil),
	}
	if f.cachePath != "" {
		c, err := cache.Open(f.cachePath)
		if err != nil {
			p.error(fmt.Errorf("opening cache: %w", err))
			return exitFailure
		}
		defer func() { _ = c.Close() }()
		formatter.Cache = c
	}

	sum, err := formatter.FormatPaths(ctx, target)
	if sum == nil {
		p.error(err)
		return exitFailure
	}
	if f.check {
		for _, change := range sum.Changed {
			p.diff(change.Diff)
		}
	} else if formatter.DryRun {
		for _, change := range sum.Changed {
			fmt.Fprintln(stdout, change.Path)
		}
	}

	switch {
	case err != nil:
		if errors.Is(err, context.Canceled) {
			p.error(err)
		}
		return exitFailure
	case f.check && len(sum.Changed) > 0:
		return exitFailure
	}
	return exitOK
}

// formatToStdout formats a single file and prints the result.
func formatToStdout(path string, opts gobo.Options, stdout, stderr io.Writer, p *palette) int {
	info, err := os.Stat(path)
	if err != nil {
		p.error(err)
		return exitFailure
	}
	if info.IsDir() {
		p.error(reporter.Usagef("-stdout needs a file, and %s is a directory", path))
		return exitUsage
	}
	data, err := os.ReadFile(path)
	if err != nil {
		p.error(err)
		return exitFailure
	}

	opts.Path = path
	res, err := gobo.Format(string(data), opts)
	if err != nil {
		p.error(err)
		return exitFailure
	}
	if res.Debug != nil {
		fmt.Fprintf(stderr, "%s\n%s", res.Debug.Doc, res.Debug.Comments)
	}
	io.WriteString(stdout, res.Output)
	return exitOK
}

// palette colors output written to terminals.
type palette struct {
	stdout, stderr io.Writer
	color          bool

	errorLabel, added, removed, hunk *color.Color
}

func newPalette(stdout, stderr io.Writer) *palette {
	p := &palette{
		stdout:     stdout,
		stderr:     stderr,
		color:      isTerminal(stdout) && isTerminal(stderr),
		errorLabel: color.New(color.FgRed, color.Bold),
		added:      color.New(color.FgGreen),
		removed:    color.New(color.FgRed),
		hunk:       color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.errorLabel, p.added, p.removed, p.hunk} {
		if p.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *palette) error(err error) {
	fmt.Fprintf(p.stderr, "%s %v\n", p.errorLabel.Sprint("error:"), err)
}

func (p *palette) diff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			io.WriteString(p.stdout, line)
		case strings.HasPrefix(line, "+"):
			io.WriteString(p.stdout, p.added.Sprint(line))
		case strings.HasPrefix(line, "-"):
			io.WriteString(p.stdout, p.removed.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			io.WriteString(p.stdout, p.hunk.Sprint(line))
		default:
			io.WriteString(p.stdout, line)
		}
	}
}
