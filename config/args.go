package config

import (
	"strconv"
	"strings"

	"github.com/sscotty71/pgbackrest/config/define"
)

// optionEntry is one spelling in the long-option table: the option it selects,
// the sparse group index the spelling addresses, and whether it is a no- or
// reset- form.
type optionEntry struct {
	id     int
	index  int
	negate bool
	reset  bool
}

// buildOptionTable expands the definition into every accepted long-option
// spelling. Grouped options contribute one spelling per group index, so
// repo-path with two indexes yields repo1-path and repo2-path. Deprecated
// spellings address index zero. Negatable and resettable options additionally
// contribute no- and reset- forms of each spelling.
func buildOptionTable(def *define.Definition) map[string]optionEntry {
	table := map[string]optionEntry{}

	add := func(option *define.Option, name string, entry optionEntry) {
		table[name] = entry

		if option.CanNegate() {
			table["no-"+name] = optionEntry{id: entry.id, index: entry.index, negate: true}
		}

		if option.CanReset() {
			table["reset-"+name] = optionEntry{id: entry.id, index: entry.index, reset: true}
		}
	}

	for id := range def.Options {
		option := &def.Options[id]

		if option.Group == "" {
			add(option, option.Name, optionEntry{id: id})
		} else {
			group := def.Group(option.Group)

			for index := 0; index < group.Indexes; index++ {
				add(option, optionIndexName(option, index), optionEntry{id: id, index: index})
			}
		}

		for _, name := range option.Deprecated {
			add(option, name, optionEntry{id: id})
		}
	}

	return table
}

// optionIndexName returns the display name of an option at a sparse group
// index, so repo-path at index 1 is repo2-path. Ungrouped options have a
// single unindexed name.
func optionIndexName(option *define.Option, index int) string {
	if option.Group == "" {
		return option.Name
	}

	return option.Group + strconv.Itoa(index+1) + strings.TrimPrefix(option.Name, option.Group)
}

// parseArguments walks the raw argument vector, classifying each element as
// the command, a command parameter, or an option occurrence. A -- element
// stops option parsing and a bare - is an ordinary token.
func (p *parseState) parseArguments(args []string) error {
	p.exe = args[0]

	commandSet := false
	argFound := false
	optionsDone := false

	for idx := 1; idx < len(args); idx++ {
		arg := args[idx]

		if !optionsDone && arg == "--" {
			optionsDone = true

			continue
		}

		argFound = true

		if optionsDone || arg == "-" || !strings.HasPrefix(arg, "-") {
			if commandSet {
				p.params = append(p.params, arg)

				continue
			}

			err := p.setCommand(arg)
			if err != nil {
				return err
			}

			// Help leaves the command slot open so a following token can
			// name the command help is wanted for.
			if p.command.Name != define.CommandHelp {
				commandSet = true
			}

			continue
		}

		if !strings.HasPrefix(arg, "--") {
			return errf(ErrOptionInvalid, "invalid option '%s'", arg)
		}

		name := arg[2:]

		var inline *string

		if before, after, found := strings.Cut(name, "="); found {
			name = before
			value := after
			inline = &value
		}

		entry, known := p.table[name]
		if !known {
			return errf(ErrOptionInvalid, "invalid option '%s'", arg)
		}

		option := &p.def.Options[entry.id]

		var value *string

		if option.Kind != define.KindBoolean && !entry.negate && !entry.reset {
			value = inline

			if value == nil {
				idx++
				if idx >= len(args) {
					return errf(ErrOptionInvalid, "option '%s' requires argument", arg)
				}

				value = &args[idx]
			}
		} else if inline != nil {
			return errf(ErrOptionInvalid, "invalid option '%s'", arg)
		}

		if option.Secure {
			return errf(
				ErrOptionInvalid,
				"option '%s' is not allowed on the command-line\n"+
					"HINT: this option could expose secrets in the process list.\n"+
					"HINT: specify the option in a configuration file or an environment variable instead.",
				optionIndexName(option, entry.index))
		}

		err := p.applyArgument(entry, value)
		if err != nil {
			return err
		}
	}

	if !commandSet && !p.help {
		if argFound {
			return errf(ErrCommandRequired, "no command found")
		}

		p.help = true
	}

	if len(p.params) > 0 && !p.help && !p.command.Parameters {
		return errf(ErrParamInvalid, "command does not allow parameters")
	}

	return nil
}

// setCommand resolves a non-option token to a command, handling the optional
// :role suffix and the help pseudo-command.
func (p *parseState) setCommand(token string) error {
	command := p.def.Command(token)
	role := define.RoleDefault

	if command == nil {
		if parts := strings.Split(token, ":"); len(parts) == 2 {
			if found := p.def.Command(parts[0]); found != nil {
				role = parts[1]

				if role == "" || !found.HasRole(role) {
					return errf(ErrCommandInvalid, "invalid command role '%s'", role)
				}

				command = found
			}
		}

		if command == nil {
			return errf(ErrCommandInvalid, "invalid command '%s'", token)
		}
	}

	p.command = command
	p.role = role

	if command.Name == define.CommandHelp {
		p.help = true
	}

	return nil
}
