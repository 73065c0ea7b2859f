package config_test

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/sscotty71/pgbackrest/config"
	"github.com/sscotty71/pgbackrest/config/define"
	"github.com/sscotty71/pgbackrest/storage"
)

func ExampleParse() {
	// Command-line arguments as delivered by the operating system.
	args := []string{
		"pgbackrest", "backup",
		"--stanza", "demo",
		"--type", "full",
	}

	// Configuration files live on an in-memory filesystem here. Production
	// callers omit WithStorage and read the real filesystem instead.
	fsys := afero.NewMemMapFs()
	data := "" +
		"[global]\n" +
		"compress-type=zst\n" +
		"\n" +
		"[demo]\n" +
		"pg1-path=/var/lib/postgresql/17/demo\n"
	_ = afero.WriteFile(fsys, "/etc/pgbackrest/pgbackrest.conf", []byte(data), 0o600)

	// Resolve every option from the command line, the environment, the
	// configuration file, and the definition defaults, in that order.
	cfg, err := config.Parse(define.Default(), args,
		config.WithStorage(storage.New(fsys)),
		config.WithEnviron([]string{"PGBACKREST_PROCESS_MAX=4"}),
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("command: %s\n", cfg.Command())
	fmt.Printf("stanza: %s\n", cfg.Str("stanza"))
	fmt.Printf("pg1-path: %s\n", cfg.Str("pg-path"))
	fmt.Printf("type: %s (%s)\n", cfg.Str("type"), cfg.Source("type"))
	fmt.Printf("compress-type: %s (%s)\n", cfg.Str("compress-type"), cfg.Source("compress-type"))
	fmt.Printf("process-max: %d (%s)\n", cfg.Int("process-max"), cfg.Source("process-max"))
	fmt.Printf("buffer-size: %d (%s)\n", cfg.Int("buffer-size"), cfg.Source("buffer-size"))
	// Output:
	// command: backup
	// stanza: demo
	// pg1-path: /var/lib/postgresql/17/demo
	// type: full (param)
	// compress-type: zst (config)
	// process-max: 4 (config)
	// buffer-size: 1048576 (default)
}

func ExampleConfig_groupIndexes() {
	// Repository keys need not be contiguous. Key 1 and key 4 are set here
	// and the unused keys in between consume no configuration entries.
	cfg, err := config.Parse(define.Default(), []string{
		"pgbackrest", "backup",
		"--stanza", "demo",
		"--pg1-path", "/var/lib/postgresql/17/demo",
		"--repo1-path", "/backup/local",
		"--repo4-host", "backup.example.com",
	},
		config.WithStorage(storage.New(afero.NewMemMapFs())),
		config.WithEnviron(nil),
	)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	// Used keys pack into dense indexes while OptionIdxName reports the
	// original key for display.
	for index := 0; index < cfg.GroupIndexTotal("repo"); index++ {
		fmt.Printf("%s: %s (%s)\n",
			cfg.OptionIdxName("repo-path", index),
			cfg.StrIdx("repo-path", index),
			cfg.SourceIdx("repo-path", index))
	}
	// Output:
	// repo1-path: /backup/local (param)
	// repo4-path: /var/lib/pgbackrest (default)
}
