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

package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pizzaandy/Gobo-sub001/cache"
	"github.com/Pizzaandy/Gobo-sub001/config"
)

func TestCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := cache.Open(path)
	require.NoError(t, err)

	opts := config.Default()
	content := []byte("a = 1;\n")

	ok, err := c.Formatted(ctx, "a.gml", content, opts)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Mark(ctx, "a.gml", content, opts))
	ok, err = c.Formatted(ctx, "a.gml", content, opts)
	require.NoError(t, err)
	assert.True(t, ok)

	// Different contents or options miss.
	ok, err = c.Formatted(ctx, "a.gml", []byte("a = 2;\n"), opts)
	require.NoError(t, err)
	assert.False(t, ok)
	wide := opts
	wide.Width = 120
	ok, err = c.Formatted(ctx, "a.gml", content, wide)
	require.NoError(t, err)
	assert.False(t, ok)

	// Marking again replaces the entry.
	require.NoError(t, c.Mark(ctx, "a.gml", content, wide))
	ok, err = c.Formatted(ctx, "a.gml", content, wide)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Forget(ctx, "a.gml"))
	ok, err = c.Formatted(ctx, "a.gml", content, wide)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Close())

	// Entries persist across opens.
	c, err = cache.Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Mark(ctx, "b.gml", content, opts))
	require.NoError(t, c.Close())

	c, err = cache.Open(path)
	require.NoError(t, err)
	ok, err = c.Formatted(ctx, "b.gml", content, opts)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, c.Close())
}

func TestDigest(t *testing.T) {
	t.Parallel()

	opts := config.Default()
	a := cache.Digest([]byte("x"), opts)
	assert.Equal(t, a, cache.Digest([]byte("x"), opts))
	assert.NotEqual(t, a, cache.Digest([]byte("y"), opts))
	opts.UseTabs = true
	assert.NotEqual(t, a, cache.Digest([]byte("x"), opts))
	assert.Len(t, a, 64)
}
