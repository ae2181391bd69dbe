package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/taskpad/internal/core/styles"
)

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Storage.Backend != BackendFile && c.Storage.Backend != BackendSQLite {
		errs = errs.Append("storage.backend",
			fmt.Errorf("unknown backend %q: must be %q or %q", c.Storage.Backend, BackendFile, BackendSQLite))
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme",
			fmt.Errorf("unknown theme %q: available themes are %s", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	if c.Tasks.MaxTextLength < 1 {
		errs = errs.Append("tasks.max_text_length",
			fmt.Errorf("must be at least 1, got %d", c.Tasks.MaxTextLength))
	}

	return errs.ToError()
}
