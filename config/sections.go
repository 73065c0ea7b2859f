package config

import (
	"github.com/sscotty71/pgbackrest/config/define"
	"github.com/sscotty71/pgbackrest/ini"
)

// configSection is one entry in the ordered section search list. Options in a
// command-qualified section draw a warning when invalid for the command, in
// the plain sections they are skipped silently since they may belong to
// another command.
type configSection struct {
	name         string
	cmdQualified bool
	global       bool
}

// applyConfigText merges configuration file content into the occurrence
// store. Sections are searched from most to least specific, so a key in a
// stanza section wins over the same key in a global section.
func (p *parseState) applyConfigText(text string) error {
	document, err := ini.Parse(text)
	if err != nil {
		return err
	}

	var stanza string

	if id, value := p.namedOption(define.OptionStanza); id >= 0 &&
		value.found && !value.negate && !value.reset && len(value.values) > 0 {
		stanza = value.values[0]
	}

	commandName := p.command.Name
	sections := make([]configSection, 0, 4)

	if stanza != "" {
		sections = append(sections,
			configSection{name: stanza + ":" + commandName, cmdQualified: true},
			configSection{name: stanza},
		)
	}

	sections = append(sections,
		configSection{name: define.SectionGlobalName + ":" + commandName, cmdQualified: true, global: true},
		configSection{name: define.SectionGlobalName, global: true},
	)

	for _, section := range sections {
		err = p.applySection(document, section)
		if err != nil {
			return err
		}
	}

	return nil
}

// optionKey identifies an option index for duplicate-spelling detection.
type optionKey struct {
	id    int
	index int
}

func (p *parseState) applySection(document *ini.Ini, section configSection) error {
	claimed := map[optionKey]string{}

	for _, key := range document.Keys(section.name) {
		entry, known := p.table[key]

		switch {
		case !known:
			p.warnf("configuration file contains invalid option '%s'", key)

			continue
		case entry.negate:
			p.warnf("configuration file contains negate option '%s'", key)

			continue
		case entry.reset:
			p.warnf("configuration file contains reset option '%s'", key)

			continue
		}

		option := &p.def.Options[entry.id]

		if option.Section == define.SectionCommandLine {
			p.warnf("configuration file contains command-line only option '%s'", key)

			continue
		}

		// Alternate spellings of the same option may not share a section.
		claimKey := optionKey{id: entry.id, index: entry.index}

		if other, ok := claimed[claimKey]; ok {
			return errf(
				ErrOptionInvalid, "configuration file contains duplicate options ('%s', '%s') in section '[%s]'",
				key, other, section.name)
		}

		claimed[claimKey] = key

		if !option.ValidFor(p.command.Name) {
			if section.cmdQualified {
				p.warnf("configuration file contains option '%s' invalid for section '%s'", key, section.name)
			}

			continue
		}

		if option.Section == define.SectionStanza && section.global {
			p.warnf("configuration file contains stanza-only option '%s' in global section '%s'", key, section.name)

			continue
		}

		// Skip if already claimed by the command line, the environment, or a
		// more specific section.
		record := p.optionIndexValue(entry.id, entry.index)
		if record.found {
			continue
		}

		record.found = true
		record.source = SourceConfig

		if document.IsList(section.name, key) {
			if !option.Multi() {
				return errf(
					ErrOptionInvalid, "option '%s' cannot be set multiple times", optionIndexName(option, entry.index))
			}

			record.values = document.GetList(section.name, key)

			continue
		}

		value := document.Get(section.name, key)
		if value == "" {
			return errf(ErrOptionInvalidValue, "section '%s', key '%s' must have a value", section.name, key)
		}

		if option.Kind == define.KindBoolean {
			if value == "n" {
				record.negate = true
			} else if value != "y" {
				return errf(ErrOptionInvalidValue, "boolean option '%s' must be 'y' or 'n'", key)
			}

			continue
		}

		record.values = []string{value}
	}

	return nil
}
