// Package internal contains the core implementation packages for sassdocgen.
//
// # Package Organization
//
// The internal packages are organized by pipeline stage:
//
//   - workspace: scratch copy of the package sources and compile layout
//   - sassdoc: SassDoc comment parser, .sassdocrc options and autofill
//   - registry: reference index resolving @see, @require and @usedBy links
//   - format: public items to documentation records
//   - example: example pairing and compilation
//   - sass: Dart Sass backends and the @error based value evaluator
//   - resolve: shared variable lookup and value resolution
//   - scssfmt: display formatting of resolved declarations
//   - emit: JSON bundle and lookup table output
//   - build: pipeline driver and stage metrics
//
// Shared pieces live in config, errors, logging, types, validation and
// version.
//
// # Data Flow
//
//	packages -> workspace -> sassdoc -> registry -> format -> resolve -> emit
//	                                        \-> example/sass ->/
//
// Every stage returns its first error and the pipeline unwinds. Unresolved
// references are collected per run and fail it at once unless missing links
// are allowed.
package internal
