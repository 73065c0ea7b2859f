package config

import (
	"strconv"
	"strings"

	"github.com/sscotty71/pgbackrest/config/define"
)

// resolve walks the options in dependency order, applies source precedence,
// checks dependencies, coerces raw values by kind, and fills the final value
// slots. The order guarantees every dependency target is resolved before its
// dependents.
func (c *Config) resolve(p *parseState) error {
	for _, id := range p.def.ResolveOrder() {
		entry := &c.options[id]
		if !entry.valid {
			continue
		}

		option := &p.def.Options[id]

		sparse := []int{0}
		if option.Group != "" {
			sparse = c.groups[option.Group]
		}

		for dense := range entry.values {
			err := c.resolveIndex(p, id, dense, sparse[dense])
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Config) resolveIndex(p *parseState, id, dense, sparse int) error {
	option := &p.def.Options[id]
	record := p.optionIndexLookup(id, sparse)
	slot := &c.options[id].values[dense]

	// A negated boolean is still a set value, false. A negated or reset
	// occurrence of any other kind means unset.
	set := record.found && (option.Kind == define.KindBoolean || !record.negate) && !record.reset

	slot.negate = record.negate
	slot.reset = record.reset

	if option.Depend != nil {
		resolved, err := c.checkDepend(p, option, record, set, dense, sparse)
		if err != nil {
			return err
		}

		if !resolved {
			return nil
		}
	}

	if set {
		if option.Kind == define.KindBoolean {
			slot.set = true
			slot.source = record.source
			slot.value = !record.negate

			return nil
		}

		value, err := coerceValue(option, optionIndexName(option, sparse), record.values)
		if err != nil {
			return err
		}

		slot.set = true
		slot.source = record.source
		slot.value = value

		return nil
	}

	// A negated non-boolean clears the value but keeps the source.
	if record.negate {
		slot.source = record.source

		return nil
	}

	if value := option.DefaultFor(p.command.Name); value != nil {
		coerced, err := coerceValue(option, optionIndexName(option, sparse), []string{*value})
		if err != nil {
			return err
		}

		slot.set = true
		slot.source = SourceDefault
		slot.value = coerced

		return nil
	}

	if option.RequiredFor(p.command.Name) && !p.help {
		hint := ""

		if option.Section == define.SectionStanza {
			hint = "\nHINT: does this stanza exist?"
		}

		return errf(
			ErrOptionRequired, "%s command requires option: %s%s",
			p.command.Name, optionIndexName(option, sparse), hint)
	}

	return nil
}

// checkDepend reports whether the option's dependency is satisfied. An
// unsatisfied dependency only errors for values set on the command line.
// Values from the environment or a file are silently dropped since they may
// be there for another command.
func (c *Config) checkDepend(
	p *parseState, option *define.Option, record optionValue, set bool, dense, sparse int,
) (bool, error) {
	depend := option.Depend
	dependID, _ := p.def.OptionID(depend.Option)
	dependOption := &p.def.Options[dependID]

	// A dependency inside the same group binds per index, so repo2-cipher-pass
	// follows repo2-cipher-type. The loader rejects any other grouped target.
	dependDense := 0
	dependSparse := 0

	if dependOption.Group != "" && dependOption.Group == option.Group {
		dependDense = dense
		dependSparse = sparse
	}

	value, ok := c.dependValue(dependID, dependDense)
	if !ok {
		if set && record.source == SourceParam {
			return false, errf(
				ErrOptionInvalid, "option '%s' not valid without option '%s'",
				optionIndexName(option, sparse), optionIndexName(dependOption, dependSparse))
		}

		return false, nil
	}

	if len(depend.Values) == 0 {
		return true, nil
	}

	for _, allowed := range depend.Values {
		if value == allowed {
			return true, nil
		}
	}

	if set && record.source == SourceParam {
		dependName := optionIndexName(dependOption, dependSparse)
		values := make([]string, 0, len(depend.Values))

		for _, allowed := range depend.Values {
			if dependOption.Kind == define.KindBoolean {
				// A boolean dependency on false reads best as the no- form.
				if allowed == "0" {
					dependName = "no-" + dependName
				}
			} else {
				values = append(values, "'"+allowed+"'")
			}
		}

		detail := ""

		switch {
		case len(values) == 1:
			detail = " = " + values[0]
		case len(values) > 1:
			detail = " in (" + strings.Join(values, ", ") + ")"
		}

		return false, errf(
			ErrOptionInvalid, "option '%s' not valid without option '%s'%s",
			optionIndexName(option, sparse), dependName, detail)
	}

	return false, nil
}

// dependValue returns the comparison string for a resolved dependency target.
// Booleans read as the "1"/"0" sentinels the definition stores for dependency
// values.
func (c *Config) dependValue(id, dense int) (string, bool) {
	entry := &c.options[id]

	if !entry.valid || dense >= len(entry.values) || !entry.values[dense].set {
		return "", false
	}

	switch value := entry.values[dense].value.(type) {
	case bool:
		if value {
			return "1", true
		}

		return "0", true
	case string:
		return value, true
	}

	return "", false
}

// coerceValue converts the raw occurrence values of a set option to its final
// typed value, validating numbers, path shape, and the allow-list. The name is
// the indexed display name used in error messages.
func coerceValue(option *define.Option, name string, raw []string) (any, error) {
	switch option.Kind {
	case define.KindBoolean:
		return raw[0] == "y", nil

	case define.KindMap:
		pairs := make(map[string]string, len(raw))

		for _, pair := range raw {
			key, value, found := strings.Cut(pair, "=")
			if !found {
				return nil, errf(ErrOptionInvalid, "key/value '%s' not valid for '%s' option", pair, name)
			}

			pairs[key] = value
		}

		return pairs, nil

	case define.KindList:
		return append([]string(nil), raw...), nil
	}

	value := raw[0]

	var numeric float64

	var final any = value

	switch option.Kind {
	case define.KindInteger:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, errf(ErrOptionInvalidValue, "'%s' is not valid for '%s' option", value, name)
		}

		numeric = float64(parsed)
		final = parsed

	case define.KindSize:
		parsed, err := define.ParseSize(value)
		if err != nil {
			return nil, errf(ErrOptionInvalidValue, "'%s' is not valid for '%s' option", value, name)
		}

		numeric = float64(parsed)
		final = parsed

	case define.KindFloat:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errf(ErrOptionInvalidValue, "'%s' is not valid for '%s' option", value, name)
		}

		numeric = parsed
		final = parsed
	}

	switch option.Kind {
	case define.KindInteger, define.KindSize, define.KindFloat:
		if option.AllowRange != nil && (numeric < option.AllowRange.Min || numeric > option.AllowRange.Max) {
			return nil, errf(ErrOptionInvalidValue, "'%s' is out of range for '%s' option", value, name)
		}

	case define.KindPath:
		switch {
		case value == "":
			return nil, errf(ErrOptionInvalidValue, "'%s' must be >= 1 character for '%s' option", value, name)
		case !strings.HasPrefix(value, "/"):
			return nil, errf(ErrOptionInvalidValue, "'%s' must begin with / for '%s' option", value, name)
		case strings.Contains(value, "//"):
			return nil, errf(ErrOptionInvalidValue, "'%s' cannot contain // for '%s' option", value, name)
		}

		if strings.HasSuffix(value, "/") && len(value) != 1 {
			value = value[:len(value)-1]
			final = value
		}
	}

	if len(option.AllowList) > 0 {
		allowed := false

		for _, candidate := range option.AllowList {
			if candidate == value {
				allowed = true

				break
			}
		}

		if !allowed {
			return nil, errf(ErrOptionInvalidValue, "'%s' is not allowed for '%s' option", value, name)
		}
	}

	return final, nil
}
