// Package define describes the configuration schema: the commands, option
// groups, and options the parser accepts, with their kinds, sections,
// defaults, constraints, and dependencies.
//
// A Definition is loaded from a YAML document via Load, which validates the
// document and precomputes the dependency resolve order so the parser never
// has to handle a malformed schema at runtime. Default returns the embedded
// pgbackrest definition.
package define
