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

// Package ast defines the syntax tree for the GameMaker Language (GML)
// dialect that gobo formats.
//
// Every node records its [Span], a half-open range of byte offsets into the
// source. Comments are not nodes: the parser collects them into
// [File.Comments], and the comments package later groups them and attaches
// each group to exactly one node, where it can be found with
// [Node.Comments].
//
// Non-standard type annotations (as in `var x: Real = 1`) are kept as plain
// strings on the nodes that allow them rather than as nodes of their own, so
// that they never take part in comment attachment or structural hashing.
//
// This package defines the [Node] interface, but user code should not
// attempt to implement it. Consumers of a tree will not work correctly if
// they encounter nodes other than the ones defined in this package.
package ast
