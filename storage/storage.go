// Package storage provides the file-system accessor used when loading
// configuration files. It wraps an afero.Fs so tests can run against an
// in-memory file system while production code uses the real one.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
)

// Storage reads files and lists directories on an underlying file system.
type Storage struct {
	fs afero.Fs
}

// New creates a Storage backed by the given file system.
func New(fsys afero.Fs) *Storage {
	return &Storage{fs: fsys}
}

// NewLocal creates a Storage backed by the OS file system.
func NewLocal() *Storage {
	return New(afero.NewOsFs())
}

type getOptions struct {
	ignoreMissing bool
}

// GetOption defines a function type for configuring Get.
type GetOption func(*getOptions)

// GetIgnoreMissing makes Get return nil content and no error when the file
// does not exist.
func GetIgnoreMissing() GetOption {
	return func(opts *getOptions) {
		opts.ignoreMissing = true
	}
}

// Get reads the entire contents of a file.
func (s *Storage) Get(name string, opts ...GetOption) ([]byte, error) {
	var cfg getOptions

	for _, apply := range opts {
		apply(&cfg)
	}

	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if cfg.ignoreMissing && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading file %q: %w", name, err)
	}

	return data, nil
}

type listOptions struct {
	suffix         string
	errorOnMissing bool
	nilOnMissing   bool
}

// ListOption defines a function type for configuring List.
type ListOption func(*listOptions)

// ListSuffix restricts List to names ending with the given suffix.
func ListSuffix(suffix string) ListOption {
	return func(opts *listOptions) {
		opts.suffix = suffix
	}
}

// ListErrorOnMissing makes List fail when the directory does not exist.
func ListErrorOnMissing() ListOption {
	return func(opts *listOptions) {
		opts.errorOnMissing = true
	}
}

// ListNilOnMissing makes List return a nil slice and no error when the
// directory does not exist. Without it a missing directory yields an empty,
// non-nil slice.
func ListNilOnMissing() ListOption {
	return func(opts *listOptions) {
		opts.nilOnMissing = true
	}
}

// List returns the file names directly inside a directory, in the order the
// file system reports them. Subdirectories are not descended into and their
// names are not included.
func (s *Storage) List(path string, opts ...ListOption) ([]string, error) {
	var cfg listOptions

	for _, apply := range opts {
		apply(&cfg)
	}

	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !cfg.errorOnMissing {
			if cfg.nilOnMissing {
				return nil, nil
			}

			return []string{}, nil
		}

		return nil, fmt.Errorf("listing path %q: %w", path, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if cfg.suffix != "" && !strings.HasSuffix(entry.Name(), cfg.suffix) {
			continue
		}

		names = append(names, entry.Name())
	}

	return names, nil
}
