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

package reporter

import (
	"errors"
	"sync"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, it is recorded by the [Handler] and counts as a
// failure. If it returns nil, the error is considered handled.
type ErrorReporter func(err error) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never cause formatting to fail.
type WarningReporter func(err error)

// Reporter receives errors and warnings as they happen.
type Reporter interface {
	Error(error) error
	Warning(error)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning. Either may be nil: a nil error reporter returns every
// error unchanged, and a nil warning reporter drops warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err error) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err error) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler funnels errors from concurrent formatting jobs into a [Reporter],
// and remembers every error the reporter did not swallow.
type Handler struct {
	reporter Reporter

	mu       sync.Mutex
	reported int
	errs     []error
}

// NewHandler creates a handler that reports through rep. A nil rep records
// every error.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleError reports err, returning whatever the reporter returned.
func (h *Handler) HandleError(err error) error {
	if err == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.reported++
	if err = h.reporter.Error(err); err != nil {
		h.errs = append(h.errs, err)
	}
	return err
}

// HandleWarning reports a warning.
func (h *Handler) HandleWarning(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reporter.Warning(err)
}

// Reported returns the number of errors reported so far, handled or not.
func (h *Handler) Reported() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.reported
}

// Error returns every recorded error, joined. If errors were reported but all
// of them were swallowed by the reporter, it returns [ErrInvalidSource].
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.errs) > 0 {
		return errors.Join(h.errs...)
	}
	if h.reported > 0 {
		return ErrInvalidSource
	}
	return nil
}
