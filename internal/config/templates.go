package config

import (
	"fmt"
	"os"
)

func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `[limits]
# format ceiling is 2147483647
max_length = 2147483647
# largest payload a single decode may materialize
max_bytes = 268435456
# decode storage grows by at most this many bytes per step
chunk_bytes = 65536

[log]
level = "info"
timestamp = true
no_color = false
`
