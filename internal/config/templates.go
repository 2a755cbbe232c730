package config

import (
	"fmt"
	"os"
)

func Template() string {
	return configTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(configTemplate), 0o600)
}

const configTemplate = `[log]
level = "info"
timestamp = true
no_color = false

[output]
# text | table | json | yaml
format = "text"
color = true

[decode]
stop_on_error = false

[metrics]
enabled = false
# prometheus textfile written after each decode run
textfile = ""
`
