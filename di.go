package pgbackrest

import (
	"log/slog"

	"github.com/sscotty71/pgbackrest/config"
	"github.com/sscotty71/pgbackrest/config/define"

	"go.uber.org/fx"
)

// ModuleOptions holds settings for the configuration module.
type ModuleOptions struct {
	Definition *define.Definition
	Parse      []config.ParseOption
}

// ModuleOption defines a function type for applying configuration module settings.
type ModuleOption func(*ModuleOptions)

// WithDefinition overrides the built-in option definition.
func WithDefinition(def *define.Definition) ModuleOption {
	return func(opts *ModuleOptions) {
		opts.Definition = def
	}
}

// WithParseOptions forwards settings to config.Parse, such as a storage or
// environment override.
func WithParseOptions(opts ...config.ParseOption) ModuleOption {
	return func(options *ModuleOptions) {
		options.Parse = append(options.Parse, opts...)
	}
}

// Module creates an Fx module that resolves the command-line configuration
// once and provides the immutable *config.Config to the container. The
// argument vector must include the executable name at position zero, as
// delivered by os.Args.
//
// When the container carries a *slog.Logger, parse warnings go to it unless a
// config.WithLogger override is forwarded. Help and version invocations
// produce a Config as well; callers inspect Config.Help and Config.Command to
// dispatch.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(args []string, opts ...ModuleOption) fx.Option {
	options := ModuleOptions{Definition: define.Default()}

	for _, apply := range opts {
		apply(&options)
	}

	return fx.Module("config",
		fx.Provide(
			fx.Annotate(
				func(logger *slog.Logger) (*config.Config, error) {
					parseOpts := options.Parse
					if logger != nil {
						parseOpts = append([]config.ParseOption{config.WithLogger(logger)}, parseOpts...)
					}

					return config.Parse(options.Definition, args, parseOpts...)
				},
				fx.ParamTags(`optional:"true"`),
			),
		),
	)
}
