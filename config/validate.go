package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports settings the commands cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.PreviewWidth <= 0 {
		errs = append(errs, fmt.Errorf("preview_width must be positive, got %d", c.PreviewWidth))
	}
	if c.History.Enabled {
		switch strings.ToLower(c.History.Engine) {
		case "sqlite", "mysql":
		default:
			errs = append(errs, fmt.Errorf("history.engine %q: expected sqlite or mysql", c.History.Engine))
		}
		if c.History.DSN == "" {
			errs = append(errs, errors.New("history.dsn is required when history is enabled"))
		}
	}
	return errors.Join(errs...)
}
