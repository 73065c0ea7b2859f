// Package pgbackrest wires the configuration engine into Uber's Fx dependency
// injection framework and hosts the application entry points.
//
// The config package implements the resolution engine itself: commands,
// indexed option groups, and values merged from the command line, environment
// variables, configuration files, and definition defaults.
package pgbackrest
