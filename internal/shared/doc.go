// Package shared holds cross-cutting utilities that belong to no single
// layer of the cleaning service.
//
// The testutil subpackage provides the buffered slog handler and the
// assertion helpers the package-level tests use to verify structured
// log output.
//
// Code here must stay free of business logic and of dependencies on the
// other internal packages.
package shared
