package define

// Kind identifies the value type of an option.
type Kind int

// Option value kinds.
const (
	KindBoolean Kind = iota
	KindString
	KindInteger
	KindFloat
	KindSize
	KindPath
	KindList
	KindMap
)

// String returns the kind name as used in definition documents.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindSize:
		return "size"
	case KindPath:
		return "path"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	}

	return "unknown"
}

// Multi reports whether the kind accepts multiple values per option index.
func (k Kind) Multi() bool {
	return k == KindList || k == KindMap
}

// Section identifies where an option may be configured.
type Section int

// Option sections.
const (
	// SectionGlobal options may appear anywhere, including global config
	// file sections.
	SectionGlobal Section = iota
	// SectionCommandLine options may not appear in config files.
	SectionCommandLine
	// SectionStanza options belong in stanza config file sections; a global
	// section occurrence draws a warning.
	SectionStanza
)

// String returns the section name as used in definition documents.
func (s Section) String() string {
	switch s {
	case SectionGlobal:
		return "global"
	case SectionCommandLine:
		return "command-line"
	case SectionStanza:
		return "stanza"
	}

	return "unknown"
}

// Range restricts a numeric option to an inclusive interval.
type Range struct {
	Min float64
	Max float64
}

// Depend declares that an option is only usable when another option resolves,
// optionally to one of a restricted set of values. Boolean dependency values
// are stored as the comparison sentinels "0" and "1".
type Depend struct {
	Option string
	Values []string
}

// CommandOption overrides option settings for a single command.
type CommandOption struct {
	Required *bool
	Default  *string
}

// Option describes a single configurable option.
type Option struct {
	Name       string
	Kind       Kind
	Section    Section
	Group      string
	Secure     bool
	Negate     bool
	Required   bool
	Default    *string
	AllowList  []string
	AllowRange *Range
	Depend     *Depend
	Commands   map[string]CommandOption
	Deprecated []string
}

// Multi reports whether the option accepts multiple values per index.
func (o *Option) Multi() bool {
	return o.Kind.Multi()
}

// CanNegate reports whether the option has a no- form. Booleans always do;
// other kinds only when declared negatable.
func (o *Option) CanNegate() bool {
	return o.Kind == KindBoolean || o.Negate
}

// CanReset reports whether the option has a reset- form. Command-line only
// options have nothing in config files to reset.
func (o *Option) CanReset() bool {
	return o.Section != SectionCommandLine
}

// ValidFor reports whether the option may be used with the command.
func (o *Option) ValidFor(command string) bool {
	if len(o.Commands) == 0 {
		return true
	}

	_, ok := o.Commands[command]

	return ok
}

// RequiredFor reports whether the option must resolve for the command,
// honoring per-command overrides.
func (o *Option) RequiredFor(command string) bool {
	cmd, ok := o.Commands[command]
	if ok && cmd.Required != nil {
		return *cmd.Required
	}

	return o.Required
}

// DefaultFor returns the option default for the command, honoring per-command
// overrides. Nil means no default.
func (o *Option) DefaultFor(command string) *string {
	cmd, ok := o.Commands[command]
	if ok && cmd.Default != nil {
		return cmd.Default
	}

	return o.Default
}

// Command describes a command the parser accepts.
type Command struct {
	Name       string
	Parameters bool
	Roles      []string
}

// HasRole reports whether the command may run under the role. The default
// role is always valid.
func (c *Command) HasRole(role string) bool {
	if role == "" || role == RoleDefault {
		return true
	}

	for _, candidate := range c.Roles {
		if candidate == role {
			return true
		}
	}

	return false
}

// Group describes an option group and how many sparse indexes it allows.
type Group struct {
	Name    string
	Indexes int
}

// Reserved command names with parser-level behavior.
const (
	CommandHelp    = "help"
	CommandVersion = "version"
)

// RoleDefault is the implicit role every command runs under when no role
// qualifier is given.
const RoleDefault = "main"

// Reserved option names the parser consults while locating config files and
// stanza sections.
const (
	OptionConfig            = "config"
	OptionConfigPath        = "config-path"
	OptionConfigIncludePath = "config-include-path"
	OptionStanza            = "stanza"
)

// SectionGlobalName is the name of the global configuration file section.
// Stanza sections are layered above it during option lookup.
const SectionGlobalName = "global"

// Definition is a validated configuration schema.
type Definition struct {
	EnvPrefix  string
	LegacyFile string
	Commands   []Command
	Groups     []Group
	Options    []Option

	commandIndex map[string]int
	groupIndex   map[string]int
	optionIndex  map[string]int
	resolveOrder []int
}

// Command returns the named command, or nil when it is not defined.
func (d *Definition) Command(name string) *Command {
	idx, ok := d.commandIndex[name]
	if !ok {
		return nil
	}

	return &d.Commands[idx]
}

// Group returns the named group, or nil when it is not defined.
func (d *Definition) Group(name string) *Group {
	idx, ok := d.groupIndex[name]
	if !ok {
		return nil
	}

	return &d.Groups[idx]
}

// Option returns the named option, or nil when it is not defined.
func (d *Definition) Option(name string) *Option {
	idx, ok := d.optionIndex[name]
	if !ok {
		return nil
	}

	return &d.Options[idx]
}

// OptionID returns the positional id of the named option.
func (d *Definition) OptionID(name string) (int, bool) {
	idx, ok := d.optionIndex[name]

	return idx, ok
}

// ResolveOrder returns option ids ordered so every option appears after the
// option it depends on.
func (d *Definition) ResolveOrder() []int {
	return d.resolveOrder
}
