package config

import (
	"sort"
)

// compactGroups finalizes which options are usable for the command. Options
// invalid for the command but mentioned on the command line are rejected.
// Every sparse group index that received a value maps to a dense position in
// ascending sparse order, and final value slots are allocated per dense index.
func (c *Config) compactGroups(p *parseState) error {
	used := map[string]map[int]bool{}

	for id := range p.def.Options {
		option := &p.def.Options[id]

		if !option.ValidFor(p.command.Name) {
			// Only the command line records occurrences of invalid options,
			// the environment and file phases skip them.
			if p.optionMentioned(id) {
				index := -1

				for candidate := range p.options[id] {
					if index < 0 || candidate < index {
						index = candidate
					}
				}

				return errf(
					ErrOptionInvalid, "option '%s' not valid for command '%s'",
					optionIndexName(option, index), p.command.Name)
			}

			continue
		}

		c.options[id].valid = true

		if option.Group == "" {
			continue
		}

		indexes := used[option.Group]
		if indexes == nil {
			indexes = map[int]bool{}
			used[option.Group] = indexes
		}

		for index, record := range p.options[id] {
			if record.found {
				indexes[index] = true
			}
		}
	}

	for _, group := range p.def.Groups {
		sparse := make([]int, 0, len(used[group.Name]))

		for index := range used[group.Name] {
			sparse = append(sparse, index)
		}

		sort.Ints(sparse)

		c.groups[group.Name] = sparse
	}

	for id := range p.def.Options {
		entry := &c.options[id]

		if !entry.valid {
			continue
		}

		total := 1

		if group := p.def.Options[id].Group; group != "" {
			total = len(c.groups[group])
		}

		entry.values = make([]configValue, total)
	}

	return nil
}
