package config

import (
	"path"
	"sort"

	"github.com/sscotty71/pgbackrest/config/define"
	"github.com/sscotty71/pgbackrest/ini"
	"github.com/sscotty71/pgbackrest/storage"
)

// loadConfigFiles locates and concatenates the main configuration file and the
// parts in the include directory. The returned flag reports whether anything
// was loaded, which can be true for empty content.
//
// How explicit values and overridden defaults combine:
//   - Nothing explicit: the default file and default include directory are
//     both optional. A missing default file falls back to the definition's
//     legacy location.
//   - config-path: replaces the base path of both defaults. The files stay
//     optional and the legacy fallback no longer applies.
//   - config: the named file is required. The include directory is ignored
//     unless config-path or config-include-path is also explicit.
//   - config-include-path: the named directory is required. Combined with an
//     explicit config, at least one include file must exist.
//   - no-config: the main file is skipped. The include directory is consulted
//     only when config-path or config-include-path is explicit.
func (p *parseState) loadConfigFiles() (string, bool, error) {
	configID, configValue := p.namedOption(define.OptionConfig)
	if configID < 0 {
		return "", false, nil
	}

	_, pathValue := p.namedOption(define.OptionConfigPath)
	_, includeValue := p.namedOption(define.OptionConfigIncludePath)

	commandName := p.command.Name

	var configDefault, includeDefault string

	if value := p.def.Options[configID].DefaultFor(commandName); value != nil {
		configDefault = *value
	}

	if option := p.def.Option(define.OptionConfigIncludePath); option != nil {
		if value := option.DefaultFor(commandName); value != nil {
			includeDefault = *value
		}
	}

	// An explicitly given path or file must exist, defaults are optional.
	configRequired := configValue.found
	pathRequired := pathValue.found
	includeRequired := includeValue.found

	// The pre-override default decides later whether the legacy fallback
	// location applies.
	configDefaultCurrent := configDefault

	if pathRequired && len(pathValue.values) > 0 {
		base := pathValue.values[0]

		if configDefault != "" {
			configDefault = base + "/" + path.Base(configDefault)
		}

		if includeDefault != "" {
			includeDefault = base + "/" + path.Base(includeDefault)
		}
	}

	loadConfig := true
	loadInclude := true

	if configValue.negate {
		loadConfig = false
		configRequired = false

		if !pathRequired && !includeRequired {
			loadInclude = false
		}
	}

	if configRequired && !pathRequired && !includeRequired {
		loadInclude = false
		includeRequired = false
	}

	var text string

	loaded := false

	if loadConfig {
		name := configDefault

		if configRequired && len(configValue.values) > 0 {
			name = configValue.values[0]
		}

		if name != "" {
			data, err := p.readConfigFile(name, !configRequired)
			if err != nil {
				return "", false, err
			}

			if data == nil && name == configDefaultCurrent && p.def.LegacyFile != "" {
				data, err = p.readConfigFile(p.def.LegacyFile, !configRequired)
				if err != nil {
					return "", false, err
				}
			}

			if data != nil {
				text = string(data)
				loaded = true
			}
		}
	}

	if loadInclude {
		// Fail on a malformed main file before appending includes.
		if loaded {
			_, err := ini.Parse(text)
			if err != nil {
				return "", false, err
			}
		}

		includePath := includeDefault

		if includeRequired && len(includeValue.values) > 0 {
			includePath = includeValue.values[0]
		}

		if includePath != "" {
			listOpts := []storage.ListOption{storage.ListSuffix(".conf")}

			if includeRequired {
				listOpts = append(listOpts, storage.ListErrorOnMissing())
			} else {
				listOpts = append(listOpts, storage.ListNilOnMissing())
			}

			names, err := p.store.List(includePath, listOpts...)
			if err != nil {
				return "", false, err
			}

			if configRequired && includeRequired && len(names) == 0 {
				return "", false, errf(
					ErrOptionInvalidValue, "no configuration include files found in '%s'", includePath)
			}

			// Sorted for reproducibility, precedence does not depend on it.
			sort.Strings(names)

			for _, name := range names {
				data, err := p.readConfigFile(includePath+"/"+name, true)
				if err != nil {
					return "", false, err
				}

				part := string(data)
				if part == "" {
					continue
				}

				_, err = ini.Parse(part)
				if err != nil {
					return "", false, err
				}

				// An LF between parts in case the previous one did not end
				// with one.
				if loaded {
					text += "\n"
				}

				text += part
				loaded = true
			}
		}
	}

	return text, loaded, nil
}

func (p *parseState) readConfigFile(name string, ignoreMissing bool) ([]byte, error) {
	var opts []storage.GetOption

	if ignoreMissing {
		opts = append(opts, storage.GetIgnoreMissing())
	}

	return p.store.Get(name, opts...)
}
