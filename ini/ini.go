// Package ini parses the INI dialect used by pgbackrest configuration files.
//
// The dialect is deliberately small: [section] headers, key=value pairs with
// surrounding whitespace trimmed from both key and value, full-line comments
// starting with #, and blank lines. A key repeated within a section becomes a
// list and is reported as such by IsList.
package ini

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is returned when the input text is not valid ini.
var ErrFormat = errors.New("invalid ini format")

// Ini holds a parsed ini document. Sections and keys preserve the order in
// which they first appear in the input.
type Ini struct {
	order    []string
	sections map[string]*section
}

type section struct {
	order  []string
	values map[string]*value
}

type value struct {
	list  []string
	multi bool
}

// Parse parses ini text into an Ini document.
func Parse(text string) (*Ini, error) {
	result := &Ini{sections: map[string]*section{}}

	var current *section

	for idx, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("%w: section should end with ] at line %d: %s", ErrFormat, idx+1, line)
			}

			name := line[1 : len(line)-1]
			if name == "" {
				return nil, fmt.Errorf("%w: section is zero-length at line %d: %s", ErrFormat, idx+1, line)
			}

			current = result.section(name)

			continue
		}

		if current == nil {
			return nil, fmt.Errorf("%w: key/value found outside of section at line %d: %s", ErrFormat, idx+1, line)
		}

		key, val, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%w: missing '=' in key/value at line %d: %s", ErrFormat, idx+1, line)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: key is zero-length at line %d: %s", ErrFormat, idx+1, line)
		}

		current.add(key, strings.TrimSpace(val))
	}

	return result, nil
}

func (i *Ini) section(name string) *section {
	existing, ok := i.sections[name]
	if ok {
		return existing
	}

	created := &section{values: map[string]*value{}}
	i.sections[name] = created
	i.order = append(i.order, name)

	return created
}

func (s *section) add(key, val string) {
	existing, ok := s.values[key]
	if ok {
		existing.list = append(existing.list, val)
		existing.multi = true

		return
	}

	s.values[key] = &value{list: []string{val}}
	s.order = append(s.order, key)
}

// Sections returns section names in order of first appearance.
func (i *Ini) Sections() []string {
	return i.order
}

// Keys returns the key names of a section in order of first appearance.
// A missing section yields nil.
func (i *Ini) Keys(name string) []string {
	sec, ok := i.sections[name]
	if !ok {
		return nil
	}

	return sec.order
}

// Contains reports whether the section contains the key.
func (i *Ini) Contains(name, key string) bool {
	sec, ok := i.sections[name]
	if !ok {
		return false
	}

	_, ok = sec.values[key]

	return ok
}

// Get returns the first value of a key, or the empty string when the key is
// not present.
func (i *Ini) Get(name, key string) string {
	list := i.GetList(name, key)
	if len(list) == 0 {
		return ""
	}

	return list[0]
}

// GetList returns all values of a key in input order, or nil when the key is
// not present.
func (i *Ini) GetList(name, key string) []string {
	sec, ok := i.sections[name]
	if !ok {
		return nil
	}

	val, ok := sec.values[key]
	if !ok {
		return nil
	}

	return val.list
}

// IsList reports whether the key appeared more than once in its section.
func (i *Ini) IsList(name, key string) bool {
	sec, ok := i.sections[name]
	if !ok {
		return false
	}

	val, ok := sec.values[key]

	return ok && val.multi
}
