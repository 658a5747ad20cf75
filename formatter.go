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
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/Pizzaandy/Gobo-sub001/cache"
	"github.com/Pizzaandy/Gobo-sub001/config"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

// DefaultInclude selects the files formatted beneath a directory when
// [Formatter.Include] is empty.
var DefaultInclude = []string{"**/*.gml"}

// Formatter formats many files, in parallel.
type Formatter struct {
	// Options for every file. If Discover is set, these are the base that
	// each file's configuration file and the environment are applied to.
	Options Options
	// If true, the options for each file are resolved with config.Resolve.
	Discover bool
	// The maximum number of files to format at once. If unspecified or set
	// to a non-positive value, then min(runtime.NumCPU(),
	// runtime.GOMAXPROCS(-1)) will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified, every error is
	// recorded and returned by FormatPaths, and warnings are ignored.
	Reporter reporter.Reporter
	// If set, files recorded as formatted with the same contents and options
	// are skipped, and files formatted successfully are recorded.
	Cache *cache.Cache

	// Doublestar patterns, relative to each directory argument, selecting
	// which files beneath it to format. Files named directly are always
	// formatted.
	Include []string
	// Doublestar patterns, relative to each directory argument, of files to
	// skip.
	Exclude []string

	// If true, no file is written. Files that would change are listed in the
	// summary, with a diff.
	DryRun bool
}

// Summary describes the outcome of [Formatter.FormatPaths].
type Summary struct {
	Formatted int // Files rewritten, or that would be in a dry run.
	Unchanged int
	Cached    int // Files skipped because the cache knew them.
	Failed    int

	// Files that changed, sorted by path.
	Changed []Change
}

// Change is a file whose contents formatting changed.
type Change struct {
	Path string
	Diff string // Only set in a dry run.
}

// FormatPaths formats the given files, and the files selected beneath the
// given directories.
//
// A path that does not exist fails the whole call before anything is
// formatted. After that, a failure to format one file is reported and does
// not stop the others; the returned error joins every reported failure.
// Canceling ctx stops new files from being started, and files already
// started are never left partially written.
func (f *Formatter) FormatPaths(ctx context.Context, paths ...string) (*Summary, error) {
	files, err := f.expand(paths)
	if err != nil {
		return nil, err
	}

	par := f.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		cpus := runtime.NumCPU()
		if par > cpus {
			par = cpus
		}
	}

	e := &executor{
		f:       f,
		h:       reporter.NewHandler(f.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		log:     f.Options.logger(),
		configs: map[string]resolved{},
		summary: &Summary{},
	}

	var wg sync.WaitGroup
	for _, file := range files {
		if err := e.s.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer e.s.Release(1)
			e.format(ctx, file)
		}()
	}
	wg.Wait()

	sum := e.summary
	sort.Slice(sum.Changed, func(i, j int) bool {
		return sum.Changed[i].Path < sum.Changed[j].Path
	})
	e.log.WithFields(logrus.Fields{
		"formatted": sum.Formatted,
		"unchanged": sum.Unchanged,
		"cached":    sum.Cached,
		"failed":    sum.Failed,
	}).Info("done")

	err = e.h.Error()
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Join(ctxErr, err)
	}
	return sum, err
}

// expand resolves paths to a sorted list of files.
func (f *Formatter) expand(paths []string) ([]string, error) {
	include := f.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		fsys := os.DirFS(path)
		for _, pattern := range include {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, reporter.Usagef("bad include pattern %q: %v", pattern, err)
			}
		match:
			for _, m := range matches {
				for _, ex := range f.Exclude {
					skip, err := doublestar.Match(ex, m)
					if err != nil {
						return nil, reporter.Usagef("bad exclude pattern %q: %v", ex, err)
					}
					if skip {
						continue match
					}
				}
				add(filepath.Join(path, filepath.FromSlash(m)))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

type resolved struct {
	opts config.Options
	err  error
}

type executor struct {
	f   *Formatter
	h   *reporter.Handler
	s   *semaphore.Weighted
	log logrus.FieldLogger

	mu      sync.Mutex
	configs map[string]resolved // By directory.
	summary *Summary
}

func (e *executor) format(ctx context.Context, path string) {
	log := e.log.WithField("path", path)
	if err := e.doFormat(ctx, path, log); err != nil {
		log.WithError(err).Error("format failed")
		e.mu.Lock()
		e.summary.Failed++
		e.mu.Unlock()
		_ = e.h.HandleError(err)
	}
}

func (e *executor) doFormat(ctx context.Context, path string, log logrus.FieldLogger) error {
	opts := e.f.Options
	opts.Path = path
	opts.Logger = log
	if e.f.Discover {
		resolved, err := e.resolve(path)
		if err != nil {
			return err
		}
		opts.Options = resolved
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if c := e.f.Cache; c != nil {
		ok, err := c.Formatted(ctx, path, data, opts.Options)
		switch {
		case err != nil:
			log.WithError(err).Warn("cache lookup failed")
		case ok:
			log.Debug("cached")
			e.mu.Lock()
			e.summary.Cached++
			e.mu.Unlock()
			return nil
		}
	}

	res, err := Format(string(data), opts)
	if err != nil {
		return err
	}

	changed := res.Output != string(data)
	switch {
	case !changed:
		log.Debug("unchanged")
	case e.f.DryRun:
		log.Info("would reformat")
	default:
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := replaceFile(path, []byte(res.Output)); err != nil {
			return err
		}
		log.Info("reformatted")
	}

	if c := e.f.Cache; c != nil && (!changed || !e.f.DryRun) {
		if err := c.Mark(ctx, path, []byte(res.Output), opts.Options); err != nil {
			log.WithError(err).Warn("cache update failed")
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !changed {
		e.summary.Unchanged++
		return nil
	}
	e.summary.Formatted++
	change := Change{Path: path}
	if e.f.DryRun {
		change.Diff = Diff(path, string(data), res.Output)
	}
	e.summary.Changed = append(e.summary.Changed, change)
	return nil
}

// resolve returns the options for path, resolving them once per directory.
func (e *executor) resolve(path string) (config.Options, error) {
	dir := filepath.Dir(path)

	e.mu.Lock()
	defer e.mu.Unlock()
	if r, ok := e.configs[dir]; ok {
		return r.opts, r.err
	}
	opts, err := config.Resolve(path, e.f.Options.Options, e.log)
	e.configs[dir] = resolved{opts: opts, err: err}
	return opts, err
}
