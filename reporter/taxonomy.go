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
	"fmt"
	"strings"

	"github.com/Pizzaandy/Gobo-sub001/ast"
)

// UsageError is a bad invocation: an unknown flag, an invalid option value,
// or a path that does not exist.
type UsageError struct {
	Message string
}

// Usagef creates a [UsageError] from a format string.
func Usagef(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.Message
}

// ConfigParseError is a configuration file that could not be read. It is
// reported as a warning and defaults are used instead.
type ConfigParseError struct {
	Path string
	Err  error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("%s: invalid config, using defaults: %v", e.Path, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// SyntaxError is source that does not parse. Files with syntax errors are
// never written.
type SyntaxError struct {
	Pos ast.Position
	Err error
}

// Syntaxf creates a [SyntaxError] from a format string.
func Syntaxf(pos ast.Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Err: fmt.Errorf(format, args...)}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %v", e.Pos, e.Err)
}

// GetPosition implements [ErrorWithPos].
func (e *SyntaxError) GetPosition() ast.Position {
	return e.Pos
}

// Unwrap implements [ErrorWithPos].
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

var _ ErrorWithPos = (*SyntaxError)(nil)

// InternalKind classifies an [InternalError].
type InternalKind byte

const (
	// CommentCoverage: an attached comment group was never printed.
	CommentCoverage InternalKind = iota + 1
	// DoublePrint: an attached comment group was printed more than once.
	DoublePrint
	// Idempotence: formatting the output again changed it.
	Idempotence
	// ASTMismatch: the output does not parse to the same tree as the input.
	ASTMismatch
	// PrinterInvariant: a document violated the layout engine's contract.
	PrinterInvariant
	// Nesting: a syntax node's span is not nested in its parent's, so
	// comments cannot be attached.
	Nesting
)

func (k InternalKind) String() string {
	switch k {
	case CommentCoverage:
		return "comment not printed"
	case DoublePrint:
		return "comment printed twice"
	case Idempotence:
		return "output is not stable"
	case ASTMismatch:
		return "output changes the syntax tree"
	case PrinterInvariant:
		return "printer invariant violated"
	case Nesting:
		return "syntax tree is not properly nested"
	default:
		return "internal error"
	}
}

// InternalError is a bug in the formatter, detected by validation or by the
// layout engine. It carries what is needed to diagnose it.
type InternalError struct {
	Kind InternalKind
	Path string

	// The offending comment groups, for coverage failures.
	Comments []*ast.CommentGroup
	// The shallowest pair of differing subtrees, for tree mismatches.
	Before, After string
	// A diff between two outputs, for idempotence failures.
	Diff string
	// The output that failed validation.
	Output string

	Err error
}

func (e *InternalError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	fmt.Fprintf(&b, "internal error: %v", e.Kind)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, c := range e.Comments {
		fmt.Fprintf(&b, "\n  comment %s: %q", c.Span, c.Comments[0].Text)
	}
	if e.Before != "" || e.After != "" {
		fmt.Fprintf(&b, "\n  before: %s\n  after:  %s", e.Before, e.After)
	}
	if e.Diff != "" {
		fmt.Fprintf(&b, "\n%s", e.Diff)
	}
	return b.String()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
