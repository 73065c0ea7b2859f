package define

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrDefinition is returned when a definition document is not valid.
var ErrDefinition = errors.New("invalid definition")

var (
	namePattern      = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	envPrefixPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)
)

// groupIndexMax caps how many sparse indexes a group may declare.
const groupIndexMax = 256

type document struct {
	EnvPrefix        string       `yaml:"env-prefix"`
	LegacyConfigFile string       `yaml:"legacy-config-file"`
	Commands         []commandDoc `yaml:"commands"`
	OptionGroups     []groupDoc   `yaml:"option-groups"`
	Options          []optionDoc  `yaml:"options"`
}

type commandDoc struct {
	Name       string   `yaml:"name"`
	Parameters bool     `yaml:"parameters"`
	Roles      []string `yaml:"roles"`
}

type groupDoc struct {
	Name    string `yaml:"name"`
	Indexes int    `yaml:"indexes"`
}

type dependDoc struct {
	Option string   `yaml:"option"`
	Values []string `yaml:"values"`
}

type commandOptionDoc struct {
	Required *bool   `yaml:"required"`
	Default  *string `yaml:"default"`
}

type optionDoc struct {
	Name       string                      `yaml:"name"`
	Type       string                      `yaml:"type"`
	Section    string                      `yaml:"section"`
	Group      string                      `yaml:"group"`
	Secure     bool                        `yaml:"secure"`
	Negate     bool                        `yaml:"negate"`
	Required   bool                        `yaml:"required"`
	Default    *string                     `yaml:"default"`
	AllowList  []string                    `yaml:"allow-list"`
	AllowRange []float64                   `yaml:"allow-range"`
	Depend     *dependDoc                  `yaml:"depend"`
	Commands   map[string]commandOptionDoc `yaml:"commands"`
	Deprecated []string                    `yaml:"deprecated"`
}

func definitionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDefinition, fmt.Sprintf(format, args...))
}

// Load parses a definition document and validates it: name syntax and
// uniqueness, group and command references, constraint applicability,
// default literals, and dependency shape. Dependencies must form a cycle-free
// graph; the resulting topological order becomes Definition.ResolveOrder.
func Load(data []byte) (*Definition, error) {
	var doc document

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDefinition, err)
	}

	if !envPrefixPattern.MatchString(doc.EnvPrefix) {
		return nil, definitionError("env-prefix %q must be an uppercase identifier", doc.EnvPrefix)
	}

	def := &Definition{
		EnvPrefix:    doc.EnvPrefix,
		LegacyFile:   doc.LegacyConfigFile,
		commandIndex: map[string]int{},
		groupIndex:   map[string]int{},
		optionIndex:  map[string]int{},
	}

	err = loadCommands(def, doc.Commands)
	if err != nil {
		return nil, err
	}

	err = loadGroups(def, doc.OptionGroups)
	if err != nil {
		return nil, err
	}

	err = loadOptions(def, doc.Options)
	if err != nil {
		return nil, err
	}

	err = resolveDepends(def, doc.Options)
	if err != nil {
		return nil, err
	}

	err = validateDefaults(def)
	if err != nil {
		return nil, err
	}

	def.resolveOrder, err = orderByDepend(def)
	if err != nil {
		return nil, err
	}

	return def, nil
}

func loadCommands(def *Definition, docs []commandDoc) error {
	for _, doc := range docs {
		if !namePattern.MatchString(doc.Name) {
			return definitionError("command name %q is not valid", doc.Name)
		}

		if _, exists := def.commandIndex[doc.Name]; exists {
			return definitionError("command '%s' is defined more than once", doc.Name)
		}

		roles := map[string]bool{}

		for _, role := range doc.Roles {
			if !namePattern.MatchString(role) {
				return definitionError("command '%s' role %q is not valid", doc.Name, role)
			}

			if role == RoleDefault {
				return definitionError("command '%s' declares implicit role '%s'", doc.Name, RoleDefault)
			}

			if roles[role] {
				return definitionError("command '%s' declares role '%s' more than once", doc.Name, role)
			}

			roles[role] = true
		}

		def.commandIndex[doc.Name] = len(def.Commands)
		def.Commands = append(def.Commands, Command{
			Name:       doc.Name,
			Parameters: doc.Parameters,
			Roles:      doc.Roles,
		})
	}

	for _, reserved := range []string{CommandHelp, CommandVersion} {
		if _, exists := def.commandIndex[reserved]; !exists {
			return definitionError("command '%s' must be defined", reserved)
		}
	}

	return nil
}

func loadGroups(def *Definition, docs []groupDoc) error {
	for _, doc := range docs {
		if !namePattern.MatchString(doc.Name) {
			return definitionError("group name %q is not valid", doc.Name)
		}

		if _, exists := def.groupIndex[doc.Name]; exists {
			return definitionError("group '%s' is defined more than once", doc.Name)
		}

		if doc.Indexes < 1 || doc.Indexes > groupIndexMax {
			return definitionError("group '%s' must allow between 1 and %d indexes", doc.Name, groupIndexMax)
		}

		def.groupIndex[doc.Name] = len(def.Groups)
		def.Groups = append(def.Groups, Group{Name: doc.Name, Indexes: doc.Indexes})
	}

	return nil
}

var kindNames = map[string]Kind{
	"boolean": KindBoolean,
	"string":  KindString,
	"integer": KindInteger,
	"float":   KindFloat,
	"size":    KindSize,
	"path":    KindPath,
	"list":    KindList,
	"map":     KindMap,
}

var sectionNames = map[string]Section{
	"":             SectionGlobal,
	"global":       SectionGlobal,
	"command-line": SectionCommandLine,
	"stanza":       SectionStanza,
}

//nolint:gocyclo // one clause per document rule keeps the rules readable in one place.
func loadOptions(def *Definition, docs []optionDoc) error {
	deprecatedIndex := map[string]string{}

	for _, doc := range docs {
		if !namePattern.MatchString(doc.Name) {
			return definitionError("option name %q is not valid", doc.Name)
		}

		if _, exists := def.optionIndex[doc.Name]; exists {
			return definitionError("option '%s' is defined more than once", doc.Name)
		}

		kind, ok := kindNames[doc.Type]
		if !ok {
			return definitionError("option '%s' has invalid type %q", doc.Name, doc.Type)
		}

		section, ok := sectionNames[doc.Section]
		if !ok {
			return definitionError("option '%s' has invalid section %q", doc.Name, doc.Section)
		}

		if doc.Group != "" {
			if _, exists := def.groupIndex[doc.Group]; !exists {
				return definitionError("option '%s' references undefined group '%s'", doc.Name, doc.Group)
			}

			if !strings.HasPrefix(doc.Name, doc.Group+"-") {
				return definitionError("option '%s' must be prefixed with its group '%s'", doc.Name, doc.Group)
			}
		}

		if doc.Secure && (kind == KindBoolean || kind.Multi()) {
			return definitionError("option '%s' of type %s cannot be secure", doc.Name, kind)
		}

		if doc.Negate && kind == KindBoolean {
			return definitionError("boolean option '%s' is negatable by default", doc.Name)
		}

		if doc.Default != nil && kind.Multi() {
			return definitionError("option '%s' of type %s cannot have a default", doc.Name, kind)
		}

		if len(doc.AllowList) > 0 && (kind == KindBoolean || kind.Multi()) {
			return definitionError("option '%s' of type %s cannot have an allow list", doc.Name, kind)
		}

		for _, allowed := range doc.AllowList {
			if allowed == "" {
				return definitionError("option '%s' allow list contains an empty value", doc.Name)
			}
		}

		var allowRange *Range

		if len(doc.AllowRange) > 0 {
			if kind != KindInteger && kind != KindFloat && kind != KindSize {
				return definitionError("option '%s' of type %s cannot have an allowed range", doc.Name, kind)
			}

			if len(doc.AllowRange) != 2 || doc.AllowRange[0] >= doc.AllowRange[1] {
				return definitionError("option '%s' allowed range must be [min, max]", doc.Name)
			}

			allowRange = &Range{Min: doc.AllowRange[0], Max: doc.AllowRange[1]}
		}

		commands := map[string]CommandOption{}

		for _, command := range sortedKeys(doc.Commands) {
			if _, exists := def.commandIndex[command]; !exists {
				return definitionError("option '%s' lists undefined command '%s'", doc.Name, command)
			}

			override := doc.Commands[command]
			commands[command] = CommandOption{Required: override.Required, Default: override.Default}
		}

		for _, deprecated := range doc.Deprecated {
			if !namePattern.MatchString(deprecated) {
				return definitionError("option '%s' deprecated name %q is not valid", doc.Name, deprecated)
			}

			if owner, exists := deprecatedIndex[deprecated]; exists {
				return definitionError("deprecated name '%s' is declared by both '%s' and '%s'", deprecated, owner, doc.Name)
			}

			deprecatedIndex[deprecated] = doc.Name
		}

		def.optionIndex[doc.Name] = len(def.Options)
		def.Options = append(def.Options, Option{
			Name:       doc.Name,
			Kind:       kind,
			Section:    section,
			Group:      doc.Group,
			Secure:     doc.Secure,
			Negate:     doc.Negate,
			Required:   doc.Required,
			Default:    doc.Default,
			AllowList:  doc.AllowList,
			AllowRange: allowRange,
			Commands:   commands,
			Deprecated: doc.Deprecated,
		})
	}

	for deprecated, owner := range deprecatedIndex {
		if _, exists := def.optionIndex[deprecated]; exists {
			return definitionError("deprecated name '%s' of option '%s' is also a current option", deprecated, owner)
		}
	}

	for _, reserved := range []string{OptionConfig, OptionConfigPath, OptionConfigIncludePath, OptionStanza} {
		option := def.Option(reserved)
		if option != nil && (option.Kind != KindString || option.Group != "") {
			return definitionError("option '%s' must be an ungrouped string", reserved)
		}
	}

	return nil
}

func resolveDepends(def *Definition, docs []optionDoc) error {
	for idx, doc := range docs {
		if doc.Depend == nil {
			continue
		}

		target := def.Option(doc.Depend.Option)
		if target == nil {
			return definitionError("option '%s' depends on undefined option '%s'", doc.Name, doc.Depend.Option)
		}

		if doc.Depend.Option == doc.Name {
			return definitionError("option '%s' cannot depend on itself", doc.Name)
		}

		if target.Group != "" && target.Group != doc.Group {
			return definitionError(
				"option '%s' cannot depend on option '%s' outside its group", doc.Name, doc.Depend.Option)
		}

		if target.Kind != KindBoolean && target.Kind != KindString && target.Kind != KindPath {
			return definitionError(
				"option '%s' cannot depend on option '%s' of type %s", doc.Name, doc.Depend.Option, target.Kind)
		}

		values := make([]string, 0, len(doc.Depend.Values))

		for _, value := range doc.Depend.Values {
			if target.Kind == KindBoolean {
				switch value {
				case "y":
					value = "1"
				case "n":
					value = "0"
				default:
					return definitionError(
						"option '%s' dependency on boolean option '%s' must use y/n values", doc.Name, doc.Depend.Option)
				}
			} else if value == "" {
				return definitionError("option '%s' dependency contains an empty value", doc.Name)
			}

			values = append(values, value)
		}

		def.Options[idx].Depend = &Depend{Option: doc.Depend.Option, Values: values}
	}

	return nil
}

func validateDefaults(def *Definition) error {
	for idx := range def.Options {
		option := &def.Options[idx]

		if option.Default != nil {
			err := checkDefault(option, *option.Default)
			if err != nil {
				return err
			}
		}

		for _, command := range sortedKeys(option.Commands) {
			override := option.Commands[command]
			if override.Default == nil {
				continue
			}

			err := checkDefault(option, *override.Default)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func checkDefault(option *Option, value string) error {
	var numeric float64

	switch option.Kind {
	case KindBoolean:
		if value != "y" && value != "n" {
			return definitionError("default %q for boolean option '%s' must be y/n", value, option.Name)
		}

		return nil
	case KindInteger:
		number, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return definitionError("default %q for option '%s' is not valid", value, option.Name)
		}

		numeric = float64(number)
	case KindFloat:
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return definitionError("default %q for option '%s' is not valid", value, option.Name)
		}

		numeric = number
	case KindSize:
		number, err := ParseSize(value)
		if err != nil {
			return definitionError("default %q for option '%s' is not valid", value, option.Name)
		}

		numeric = float64(number)
	case KindPath:
		if value == "" || !strings.HasPrefix(value, "/") ||
			strings.Contains(value, "//") || (len(value) > 1 && strings.HasSuffix(value, "/")) {
			return definitionError("default %q for option '%s' is not a canonical path", value, option.Name)
		}

		return nil
	case KindString:
	case KindList, KindMap:
		return definitionError("option '%s' of type %s cannot have a default", option.Name, option.Kind)
	}

	if len(option.AllowList) > 0 && !contains(option.AllowList, value) {
		return definitionError("default %q for option '%s' is not in the allow list", value, option.Name)
	}

	if option.AllowRange != nil && (numeric < option.AllowRange.Min || numeric > option.AllowRange.Max) {
		return definitionError("default %q for option '%s' is out of range", value, option.Name)
	}

	return nil
}

func orderByDepend(def *Definition) ([]int, error) {
	total := len(def.Options)
	order := make([]int, 0, total)
	placed := make([]bool, total)

	for len(order) < total {
		progress := false

		for idx := range def.Options {
			if placed[idx] {
				continue
			}

			depend := def.Options[idx].Depend
			if depend != nil {
				target, _ := def.OptionID(depend.Option)
				if !placed[target] {
					continue
				}
			}

			order = append(order, idx)
			placed[idx] = true
			progress = true
		}

		if !progress {
			for idx := range def.Options {
				if !placed[idx] {
					return nil, definitionError("dependency cycle involving option '%s'", def.Options[idx].Name)
				}
			}
		}
	}

	return order, nil
}

func sortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))

	for key := range input {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func contains(list []string, value string) bool {
	for _, candidate := range list {
		if candidate == value {
			return true
		}
	}

	return false
}
