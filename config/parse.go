package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sscotty71/pgbackrest/config/define"
	"github.com/sscotty71/pgbackrest/storage"
)

// ParseOptions holds settings that control Parse.
type ParseOptions struct {
	Environ []string
	Storage *storage.Storage
	Logger  *slog.Logger
}

// ParseOption defines a function type for applying Parse settings.
type ParseOption func(*ParseOptions)

// WithEnviron overrides the process environment consulted for option values.
// Entries use the same "KEY=value" form as os.Environ.
func WithEnviron(environ []string) ParseOption {
	return func(opts *ParseOptions) {
		opts.Environ = environ
	}
}

// WithStorage overrides the file system used to load configuration files.
func WithStorage(store *storage.Storage) ParseOption {
	return func(opts *ParseOptions) {
		opts.Storage = store
	}
}

// WithLogger sets the logger that receives parse warnings.
func WithLogger(logger *slog.Logger) ParseOption {
	return func(opts *ParseOptions) {
		opts.Logger = logger
	}
}

// Parse resolves the configuration for one command invocation. The argument
// vector must include the executable name at position zero. Values merge with
// command-line arguments winning over environment variables, environment
// variables over configuration files, and configuration files over definition
// defaults.
//
// Hard errors unwrap to one of the Err category sentinels. Recoverable
// oddities, such as unknown options in the environment or a configuration
// file, are logged as warnings and skipped.
func Parse(def *define.Definition, args []string, opts ...ParseOption) (*Config, error) {
	options := ParseOptions{
		Environ: os.Environ(),
		Storage: storage.NewLocal(),
		Logger:  slog.Default(),
	}

	for _, apply := range opts {
		apply(&options)
	}

	if len(args) == 0 {
		return nil, errors.New("argument list must include the executable name")
	}

	state := newParseState(def, &options)

	err := state.parseArguments(args)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(state)

	// Bare help and version invocations have no option values to resolve.
	if !state.resolveNeeded() {
		return cfg, nil
	}

	err = state.parseEnvironment()
	if err != nil {
		return nil, err
	}

	text, loaded, err := state.loadConfigFiles()
	if err != nil {
		return nil, err
	}

	if loaded {
		err = state.applyConfigText(text)
		if err != nil {
			return nil, err
		}
	}

	err = cfg.compactGroups(state)
	if err != nil {
		return nil, err
	}

	err = cfg.resolve(state)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseState carries everything the parse phases share for a single call.
type parseState struct {
	def     *define.Definition
	environ []string
	store   *storage.Storage
	logger  *slog.Logger
	table   map[string]optionEntry
	exe     string
	command *define.Command
	role    string
	help    bool
	params  []string
	options []map[int]*optionValue
}

func newParseState(def *define.Definition, options *ParseOptions) *parseState {
	return &parseState{
		def:     def,
		environ: options.Environ,
		store:   options.Storage,
		logger:  options.Logger,
		table:   buildOptionTable(def),
		options: make([]map[int]*optionValue, len(def.Options)),
	}
}

// resolveNeeded reports whether option values must be resolved. Help for a
// specific command still resolves so actual values can be displayed.
func (p *parseState) resolveNeeded() bool {
	return p.command != nil &&
		p.command.Name != define.CommandHelp &&
		p.command.Name != define.CommandVersion
}

func (p *parseState) warnf(format string, args ...any) {
	p.logger.Warn(fmt.Sprintf(format, args...))
}
