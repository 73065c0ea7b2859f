package config

import (
	"strings"

	"github.com/sscotty71/pgbackrest/config/define"
)

// parseEnvironment applies environment variables carrying the definition's
// prefix. A variable key maps to an option name by stripping the prefix,
// lower-casing, and turning underscores into dashes. Variables lose to the
// command line and win over configuration files.
func (p *parseState) parseEnvironment() error {
	prefix := p.def.EnvPrefix + "_"

	for _, keyValue := range p.environ {
		if !strings.HasPrefix(keyValue, prefix) {
			continue
		}

		rawKey, value, _ := strings.Cut(keyValue[len(prefix):], "=")
		key := strings.ReplaceAll(strings.ToLower(rawKey), "_", "-")

		entry, known := p.table[key]

		switch {
		case !known:
			p.warnf("environment contains invalid option '%s'", key)

			continue
		case entry.negate:
			p.warnf("environment contains invalid negate option '%s'", key)

			continue
		case entry.reset:
			p.warnf("environment contains invalid reset option '%s'", key)

			continue
		}

		option := &p.def.Options[entry.id]

		// Options for other commands may legitimately sit in the environment.
		if !option.ValidFor(p.command.Name) {
			continue
		}

		if value == "" {
			return errf(ErrOptionInvalidValue, "environment variable '%s' must have a value", key)
		}

		record := p.optionIndexValue(entry.id, entry.index)
		if record.found {
			continue
		}

		record.found = true
		record.source = SourceConfig

		switch {
		case option.Kind == define.KindBoolean:
			if value == "n" {
				record.negate = true
			} else if value != "y" {
				return errf(ErrOptionInvalidValue, "environment boolean option '%s' must be 'y' or 'n'", key)
			}
		case option.Multi():
			record.values = strings.Split(value, ":")
		default:
			record.values = []string{value}
		}
	}

	return nil
}
