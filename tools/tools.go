//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools (install via `go install`):
//
// mockgen - Mock generation for ports interfaces
//   Install: go install go.uber.org/mock/mockgen@v0.6.0
//   Used by: go generate ./internal/mocks
//
// Air - Live reload during template and handler work
//   Install: go install github.com/air-verse/air@v1.63.0
