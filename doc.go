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

// Package gobo formats GML source code.
//
// Formatting a file happens in phases:
//  1. Parse the source into a syntax tree.
//     Also see: parser.Parse
//  2. Attach every comment to exactly one node of the tree.
//     Also see: comments.Attach
//  3. Translate the tree into a layout document.
//     Also see: printer.Print
//  4. Propagate forced line breaks and render the document at the configured
//     width.
//     Also see: doc.PropagateBreaks, doc.Print
//  5. Optionally validate the result: every comment printed exactly once,
//     the output parses to an equivalent tree, and formatting the output
//     again changes nothing.
//
// [Format] and [Check] run these phases on a string. [FormatFile] formats a
// file in place, replacing it only after every phase has succeeded.
//
// # Formatter
//
// A [Formatter] formats many files at once. It expands directories into the
// GML files beneath them, formats files in parallel, and reports each
// failure through a [reporter.Reporter] without stopping the other files. A
// minimal Formatter, which formats files with the default options using as
// many goroutines as there are CPU cores, is:
//
//	formatter := gobo.Formatter{
//	    Options: gobo.Options{Options: config.Default()},
//	}
//	summary, err := formatter.FormatPaths(ctx, "scripts")
package gobo
