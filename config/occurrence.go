package config

// optionValue accumulates the parsed occurrences of one option index before
// validation resolves a final value.
type optionValue struct {
	found  bool
	negate bool
	reset  bool
	source Source
	values []string
}

// optionIndexValue returns the occurrence record for an option index, creating
// it on first use. Creation counts as a mention of the option, which later
// becomes a hard error for options not valid for the command, so the
// environment and file phases must check validity before calling this.
func (p *parseState) optionIndexValue(id, index int) *optionValue {
	if p.options[id] == nil {
		p.options[id] = map[int]*optionValue{}
	}

	value, ok := p.options[id][index]
	if !ok {
		value = &optionValue{}
		p.options[id][index] = value
	}

	return value
}

// optionIndexLookup returns a copy of the occurrence record for an option
// index. Absent records read as the zero value.
func (p *parseState) optionIndexLookup(id, index int) optionValue {
	if value, ok := p.options[id][index]; ok {
		return *value
	}

	return optionValue{}
}

// optionMentioned reports whether any index of the option was recorded.
func (p *parseState) optionMentioned(id int) bool {
	return len(p.options[id]) > 0
}

// namedOption returns the id and first-index occurrence of an option by name.
// The id is negative when the definition does not carry the option.
func (p *parseState) namedOption(name string) (int, optionValue) {
	id, ok := p.def.OptionID(name)
	if !ok {
		return -1, optionValue{}
	}

	return id, p.optionIndexLookup(id, 0)
}

// applyArgument records one command-line occurrence of an option, enforcing
// the rules for combining repeated, negated, and reset forms. The value is nil
// for spellings that do not take one.
func (p *parseState) applyArgument(entry optionEntry, value *string) error {
	option := &p.def.Options[entry.id]

	record := p.optionIndexValue(entry.id, entry.index)
	if !record.found {
		record.found = true
		record.negate = entry.negate
		record.reset = entry.reset
		record.source = SourceParam

		if value != nil {
			record.values = []string{*value}
		}

		return nil
	}

	name := optionIndexName(option, entry.index)

	switch {
	case record.negate && entry.negate:
		return errf(ErrOptionInvalid, "option '%s' is negated multiple times", name)
	case record.reset && entry.reset:
		return errf(ErrOptionInvalid, "option '%s' is reset multiple times", name)
	case (record.reset && entry.negate) || (record.negate && entry.reset):
		return errf(ErrOptionInvalid, "option '%s' cannot be negated and reset", name)
	case record.negate != entry.negate:
		return errf(ErrOptionInvalid, "option '%s' cannot be set and negated", name)
	case record.reset != entry.reset:
		return errf(ErrOptionInvalid, "option '%s' cannot be set and reset", name)
	}

	if value != nil && option.Multi() {
		record.values = append(record.values, *value)

		return nil
	}

	return errf(ErrOptionInvalid, "option '%s' cannot be set multiple times", name)
}
