// Package cli renders sumset's terminal output: the execution banner,
// batch progress, the result table, verification reports and the styled
// summary.
//
// # Naming Conventions
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
package cli
