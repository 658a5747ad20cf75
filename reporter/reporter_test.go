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

package reporter_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pizzaandy/Gobo-sub001/ast"
	"github.com/Pizzaandy/Gobo-sub001/reporter"
)

func TestErrorWithPos(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := reporter.Error(ast.Position{Filename: "a.gml", Line: 3, Col: 7}, base)
	assert.Equal(t, "a.gml:3:7: boom", err.Error())
	assert.ErrorIs(t, err, base)

	var ewp reporter.ErrorWithPos = reporter.Syntaxf(ast.Position{Line: 1, Col: 2}, "unexpected %q", ")")
	assert.Equal(t, "<input>:1:2: syntax error: unexpected \")\"", ewp.Error())
}

func TestHandler(t *testing.T) {
	t.Parallel()

	var warnings []error
	var mu sync.Mutex
	h := reporter.NewHandler(reporter.NewReporter(
		func(err error) error {
			var usage *reporter.UsageError
			if errors.As(err, &usage) {
				return nil
			}
			return err
		},
		func(err error) {
			mu.Lock()
			defer mu.Unlock()
			warnings = append(warnings, err)
		},
	))

	require.NoError(t, h.Error())
	assert.NoError(t, h.HandleError(nil))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.HandleError(reporter.Usagef("ignored"))
			h.HandleWarning(&reporter.ConfigParseError{Path: "gobo.json", Err: errors.New("bad")})
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, h.Reported())
	assert.Len(t, warnings, 10)
	assert.ErrorIs(t, h.Error(), reporter.ErrInvalidSource)

	internal := &reporter.InternalError{Kind: reporter.Idempotence, Path: "b.gml"}
	assert.Equal(t, internal, h.HandleError(internal))
	err := h.Error()
	var got *reporter.InternalError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, reporter.Idempotence, got.Kind)
	assert.Contains(t, err.Error(), "b.gml: internal error: output is not stable")
}
