// Package config resolves the final option values for one command invocation
// by merging four sources in precedence order: command-line arguments, process
// environment variables, configuration files, and definition defaults.
//
// # Sources
//
// The command line is tokenized first. The first non-option token names the
// command, optionally suffixed with :role, and later non-option tokens become
// command parameters. Options take the forms --opt, --opt=value, --no-opt,
// and --reset-opt.
//
// Environment variables whose key starts with the definition's prefix map to
// options by stripping the prefix, lower-casing, and replacing underscores
// with dashes, so PGBACKREST_PG1_PATH configures pg1-path. The environment
// never overrides the command line.
//
// Configuration files use an ini dialect. The main file and the *.conf parts
// of an include directory are concatenated, then sections are searched from
// most to least specific: [stanza:command], [stanza], [global:command],
// [global]. A key found in an earlier section shadows the same option in the
// sections after it.
//
// Options that no source sets fall back to the definition default for the
// command, and options that stay unresolved but are required for the command
// produce an error.
//
// # Option groups
//
// Grouped options repeat per backend index, pg-path is addressed as pg1-path,
// pg2-path, and so on. Indexes used by any source are compacted in ascending
// order into dense positions starting at zero, so the accessors' Idx variants
// take the dense position, not the sparse key. GroupIndexes exposes the
// mapping and OptionIdxName turns a dense position back into the indexed
// display name.
//
// # Example
//
// A typical invocation:
//
//	def := define.Default()
//
//	cfg, err := config.Parse(def, os.Args)
//	if err != nil {
//	    ...
//	}
//
//	if cfg.Help() {
//	    ...
//	}
//
//	path := cfg.StrIdx("pg-path", 0)
package config
