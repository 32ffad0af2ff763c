// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/squarify/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/squarify/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/squarify/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"strings"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/matzehuels/squarify/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/matzehuels/squarify/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/matzehuels/squarify/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns a one-line summary such as "v1.2.3 (abc1234, 2026-01-02)".
// Commits are shortened to seven characters; unset fields are omitted.
func String() string {
	var meta []string
	if Commit != "" && Commit != "none" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		meta = append(meta, c)
	}
	if Date != "" && Date != "unknown" {
		meta = append(meta, Date)
	}
	if len(meta) == 0 {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, strings.Join(meta, ", "))
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\n", String())
}
