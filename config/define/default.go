package define

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed define.yaml
var defaultDocument []byte

//nolint:gochecknoglobals // parsed once, read-only afterwards.
var defaultDefinition = sync.OnceValue(func() *Definition {
	def, err := Load(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded definition is not loadable: %v", err))
	}

	return def
})

// Default returns the embedded pgbackrest definition. The embedded document
// is validated by the package tests, so Default never fails at runtime.
func Default() *Definition {
	return defaultDefinition()
}
