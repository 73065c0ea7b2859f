package config

import (
	"fmt"

	"github.com/sscotty71/pgbackrest/config/define"
)

// Source identifies the precedence tier a resolved value came from.
type Source int

// Value sources.
const (
	// SourceDefault marks values taken from the definition default.
	SourceDefault Source = iota
	// SourceParam marks values set on the command line.
	SourceParam
	// SourceConfig marks values from the environment or a configuration file.
	SourceConfig
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceParam:
		return "param"
	case SourceConfig:
		return "config"
	}

	return "unknown"
}

type configValue struct {
	set    bool
	negate bool
	reset  bool
	source Source
	value  any
}

type configOption struct {
	valid  bool
	values []configValue
}

// Config is the resolved configuration for one command invocation. It is
// immutable once Parse returns.
//
// Typed accessors return the zero value for options that did not resolve.
// Asking for an option name the definition does not carry, or with an
// accessor of the wrong kind, is a programmer error and panics.
type Config struct {
	def     *define.Definition
	exe     string
	command string
	role    string
	help    bool
	params  []string
	groups  map[string][]int
	options []configOption
}

func newConfig(p *parseState) *Config {
	command := ""
	if p.command != nil {
		command = p.command.Name
	}

	role := p.role
	if role == "" {
		role = define.RoleDefault
	}

	groups := make(map[string][]int, len(p.def.Groups))
	for _, group := range p.def.Groups {
		groups[group.Name] = nil
	}

	return &Config{
		def:     p.def,
		exe:     p.exe,
		command: command,
		role:    role,
		help:    p.help,
		params:  p.params,
		groups:  groups,
		options: make([]configOption, len(p.def.Options)),
	}
}

// Exe returns the executable path from the argument vector.
func (c *Config) Exe() string {
	return c.exe
}

// Command returns the resolved command name. It is empty only when no
// arguments were given at all, which implies help.
func (c *Config) Command() string {
	return c.command
}

// Role returns the role the command runs under.
func (c *Config) Role() string {
	return c.role
}

// Help reports whether help was requested.
func (c *Config) Help() bool {
	return c.help
}

// Params returns the command parameters in command-line order.
func (c *Config) Params() []string {
	return append([]string(nil), c.params...)
}

// Valid reports whether the option may be used with the parsed command.
func (c *Config) Valid(name string) bool {
	id, _ := c.option(name)

	return c.options[id].valid
}

// Has reports whether the option resolved to a value from any source,
// defaults included.
func (c *Config) Has(name string) bool {
	return c.HasIdx(name, 0)
}

// HasIdx reports whether the option resolved at a dense group index.
func (c *Config) HasIdx(name string, index int) bool {
	return c.lookup(name, index).set
}

// Source returns where the option value came from.
func (c *Config) Source(name string) Source {
	return c.SourceIdx(name, 0)
}

// SourceIdx returns where the option value at a dense group index came from.
func (c *Config) SourceIdx(name string, index int) Source {
	return c.lookup(name, index).source
}

// Negate reports whether the option was negated.
func (c *Config) Negate(name string) bool {
	return c.NegateIdx(name, 0)
}

// NegateIdx reports whether the option was negated at a dense group index.
func (c *Config) NegateIdx(name string, index int) bool {
	return c.lookup(name, index).negate
}

// Reset reports whether the option was reset.
func (c *Config) Reset(name string) bool {
	return c.ResetIdx(name, 0)
}

// ResetIdx reports whether the option was reset at a dense group index.
func (c *Config) ResetIdx(name string, index int) bool {
	return c.lookup(name, index).reset
}

// Bool returns a boolean option value, false when unset.
func (c *Config) Bool(name string) bool {
	return c.BoolIdx(name, 0)
}

// BoolIdx returns a boolean option value at a dense group index.
func (c *Config) BoolIdx(name string, index int) bool {
	value := c.kindValue(name, index, define.KindBoolean)
	if !value.set {
		return false
	}

	return value.value.(bool)
}

// Str returns a string or path option value, empty when unset.
func (c *Config) Str(name string) string {
	return c.StrIdx(name, 0)
}

// StrIdx returns a string or path option value at a dense group index.
func (c *Config) StrIdx(name string, index int) string {
	value := c.kindValue(name, index, define.KindString, define.KindPath)
	if !value.set {
		return ""
	}

	return value.value.(string)
}

// Int returns an integer or size option value in its base unit, zero when
// unset. Sizes resolve to bytes.
func (c *Config) Int(name string) int64 {
	return c.IntIdx(name, 0)
}

// IntIdx returns an integer or size option value at a dense group index.
func (c *Config) IntIdx(name string, index int) int64 {
	value := c.kindValue(name, index, define.KindInteger, define.KindSize)
	if !value.set {
		return 0
	}

	return value.value.(int64)
}

// Float returns a float option value, zero when unset.
func (c *Config) Float(name string) float64 {
	return c.FloatIdx(name, 0)
}

// FloatIdx returns a float option value at a dense group index.
func (c *Config) FloatIdx(name string, index int) float64 {
	value := c.kindValue(name, index, define.KindFloat)
	if !value.set {
		return 0
	}

	return value.value.(float64)
}

// StrList returns a list option's values, nil when unset.
func (c *Config) StrList(name string) []string {
	return c.StrListIdx(name, 0)
}

// StrListIdx returns a list option's values at a dense group index.
func (c *Config) StrListIdx(name string, index int) []string {
	value := c.kindValue(name, index, define.KindList)
	if !value.set {
		return nil
	}

	return append([]string(nil), value.value.([]string)...)
}

// KeyValue returns a map option's pairs, nil when unset.
func (c *Config) KeyValue(name string) map[string]string {
	return c.KeyValueIdx(name, 0)
}

// KeyValueIdx returns a map option's pairs at a dense group index.
func (c *Config) KeyValueIdx(name string, index int) map[string]string {
	value := c.kindValue(name, index, define.KindMap)
	if !value.set {
		return nil
	}

	pairs := make(map[string]string, len(value.value.(map[string]string)))
	for key, item := range value.value.(map[string]string) {
		pairs[key] = item
	}

	return pairs
}

// GroupIndexTotal returns how many indexes of the group were configured.
func (c *Config) GroupIndexTotal(group string) int {
	return len(c.groupIndexes(group))
}

// GroupIndexes returns the configured sparse indexes of the group in dense
// order.
func (c *Config) GroupIndexes(group string) []int {
	return append([]int(nil), c.groupIndexes(group)...)
}

// OptionIdxName returns the display name of an option at a dense group index,
// keeping the original sparse key, so the second configured backend might be
// pg4-path. Ungrouped options return their plain name.
func (c *Config) OptionIdxName(name string, index int) string {
	_, option := c.option(name)

	if option.Group == "" {
		return option.Name
	}

	sparse := c.groupIndexes(option.Group)
	if index < 0 || index >= len(sparse) {
		panic(fmt.Sprintf("group '%s' has no index %d", option.Group, index))
	}

	return optionIndexName(option, sparse[index])
}

func (c *Config) option(name string) (int, *define.Option) {
	id, ok := c.def.OptionID(name)
	if !ok {
		panic(fmt.Sprintf("option '%s' is not defined", name))
	}

	return id, &c.def.Options[id]
}

func (c *Config) groupIndexes(group string) []int {
	indexes, ok := c.groups[group]
	if !ok {
		panic(fmt.Sprintf("group '%s' is not defined", group))
	}

	return indexes
}

// lookup returns the value slot for an option index. Out-of-range indexes and
// options that were never resolved read as the zero slot.
func (c *Config) lookup(name string, index int) configValue {
	id, _ := c.option(name)
	entry := &c.options[id]

	if index < 0 || index >= len(entry.values) {
		return configValue{}
	}

	return entry.values[index]
}

func (c *Config) kindValue(name string, index int, kinds ...define.Kind) configValue {
	_, option := c.option(name)

	match := false

	for _, kind := range kinds {
		if option.Kind == kind {
			match = true

			break
		}
	}

	if !match {
		panic(fmt.Sprintf("option '%s' has kind %s", name, option.Kind))
	}

	return c.lookup(name, index)
}
