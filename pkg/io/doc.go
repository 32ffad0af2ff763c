// Package io reads treemap weights from files and writes computed layouts.
//
// # Input Formats
//
// Three input formats are recognized, selected by file extension:
//
// JSON (.json) accepts a bare array, an object with parallel weights and
// labels, or an object with labeled items and an optional canvas:
//
//	[6, 6, 4, 3, 2, 2, 1]
//
//	{"weights": [6, 6, 4], "labels": ["a", "b", "c"]}
//
//	{
//	  "canvas": {"width": 600, "height": 400},
//	  "items": [{"label": "src", "value": 120}, {"label": "docs", "value": 30}]
//	}
//
// TOML (.toml) mirrors the JSON object forms:
//
//	weights = [6, 6, 4]
//
//	[canvas]
//	width = 600
//	height = 400
//
//	[[items]]
//	label = "src"
//	value = 120
//
// Text (.txt, or any other extension) holds one weight per line. A line may
// carry a label before the value, separated by a tab or a comma. Blank lines
// and lines starting with # are skipped:
//
//	# bytes per directory
//	src	120
//	docs	30
//	7.5
//
// Inputs are not validated beyond parsing: negative or non-finite weights
// are reported by [treemap.Layout].
//
// # Output Formats
//
// Layouts are written as JSON ([layout.Marshal]) or CSV ([WriteCSV]), one
// row per rectangle in layout order.
//
// [treemap.Layout]: github.com/matzehuels/squarify/pkg/treemap.Layout
// [layout.Marshal]: github.com/matzehuels/squarify/pkg/layout.Marshal
package io
