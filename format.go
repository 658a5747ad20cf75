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

package gobo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/comments"
	"github.com/Pizzaandy/Gobo-sub001/config"
	"github.com/Pizzaandy/Gobo-sub001/doc"
	"github.com/Pizzaandy/Gobo-sub001/parser"
	"github.com/Pizzaandy/Gobo-sub001/printer"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

// Options configures a formatting run.
type Options struct {
	config.Options

	// Path names the source in error messages. It may be empty.
	Path string

	// If set, [Result.Debug] is populated.
	Debug bool

	// Receives per-phase timings at debug level. Nil means
	// logrus.StandardLogger().
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}

// Result is the outcome of formatting one source.
type Result struct {
	Output  string
	Debug   *Debug
	Timings Timings
}

// Debug holds intermediate artifacts of a formatting run.
type Debug struct {
	// The layout document, as rendered by doc.Dump.
	Doc string
	// The comment attachment table, as rendered by comments.Table.
	Comments string
}

// Timings records how long each phase took.
type Timings struct {
	Parse    time.Duration
	Attach   time.Duration
	Build    time.Duration
	Print    time.Duration
	Validate time.Duration
}

// Total returns the time taken by all phases.
func (t Timings) Total() time.Duration {
	return t.Parse + t.Attach + t.Build + t.Print + t.Validate
}

// Format formats src.
//
// A source that does not parse yields a [*reporter.SyntaxError]. A bug in the
// formatter, detected either by the layout engine or by validation when
// [config.Options.ValidateOutput] is set, yields a [*reporter.InternalError].
func Format(src string, opts Options) (*Result, error) {
	res := &Result{}
	clock := time.Now()
	lap := func(d *time.Duration) {
		now := time.Now()
		*d = now.Sub(clock)
		clock = now
	}

	file, err := parser.Parse(opts.Path, src)
	if err != nil {
		return nil, err
	}
	lap(&res.Timings.Parse)

	if err := comments.Attach(file); err != nil {
		return nil, &reporter.InternalError{Kind: reporter.Nesting, Path: opts.Path, Err: err}
	}
	tracker := comments.NewTracker(file)
	lap(&res.Timings.Attach)

	d, err := build(file, opts)
	if err != nil {
		return nil, err
	}
	lap(&res.Timings.Build)

	printOpts := docOptions(opts.Options)
	printOpts.Printed = func(id doc.ID) { tracker.Record(int(id)) }
	out, err := doc.Print(printOpts, d)
	if err != nil {
		return nil, &reporter.InternalError{Kind: reporter.PrinterInvariant, Path: opts.Path, Err: err}
	}
	res.Output = out
	lap(&res.Timings.Print)

	if opts.Debug {
		res.Debug = &Debug{
			Doc:      doc.Dump(d),
			Comments: comments.Table(file),
		}
	}

	if opts.ValidateOutput {
		if err := validate(file, tracker, out, opts); err != nil {
			return nil, err
		}
		lap(&res.Timings.Validate)
	}

	opts.logger().WithFields(logrus.Fields{
		"path":     opts.Path,
		"parse":    res.Timings.Parse,
		"attach":   res.Timings.Attach,
		"build":    res.Timings.Build,
		"print":    res.Timings.Print,
		"validate": res.Timings.Validate,
	}).Debug("formatted")
	return res, nil
}

// build translates a file into a document with its breaks propagated.
func build(file *ast.File, opts Options) (d doc.Doc, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*doc.InvariantError)
			if !ok {
				panic(r)
			}
			err = &reporter.InternalError{Kind: reporter.PrinterInvariant, Path: opts.Path, Err: ie}
		}
	}()

	d = printer.Print(file, opts.Options)
	doc.PropagateBreaks(d)
	return d, nil
}

func docOptions(opts config.Options) doc.Options {
	return doc.Options{
		Width:                 opts.Width,
		TabWidth:              opts.TabWidth,
		UseTabs:               opts.UseTabs,
		KeepLeadingBlankLines: !opts.StripLeadingBlankLines,
	}
}

// Check reports whether src is already formatted.
func Check(src string, opts Options) (bool, error) {
	res, err := Format(src, opts)
	if err != nil {
		return false, err
	}
	return res.Output == src, nil
}

// FormatFile formats the file at path in place, and reports whether its
// contents changed.
//
// The new contents are written to a temporary file in the same directory,
// which then replaces the original. If any step fails, including validation,
// the original file is left untouched.
func FormatFile(ctx context.Context, path string, opts Options) (changed bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if opts.Path == "" {
		opts.Path = path
	}
	res, err := Format(string(data), opts)
	if err != nil {
		return false, err
	}
	if res.Output == string(data) {
		return false, nil
	}

	// Do not start a write that cancellation would have prevented.
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := replaceFile(path, []byte(res.Output)); err != nil {
		return false, err
	}
	return true, nil
}

// replaceFile atomically replaces the contents of path, keeping its
// permissions.
func replaceFile(path string, data []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// IsInternal reports whether err is, or wraps, a bug in the formatter.
func IsInternal(err error) bool {
	var ie *reporter.InternalError
	return errors.As(err, &ie)
}
