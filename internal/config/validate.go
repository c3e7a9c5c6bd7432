package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Spreadsheet.Name == "" {
		return errors.New("spreadsheet.name must point at the exported sheet (.csv or .xlsx)")
	}
	if err := c.validateCells(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Settings.Timezone); err != nil {
		return fmt.Errorf("settings.timezone: unknown zone %q", c.Settings.Timezone)
	}
	return nil
}

func (c *Config) validateCells() error {
	required := []struct {
		key   string
		value string
	}{
		{"cells.title", c.Cells.Title},
		{"cells.description", c.Cells.Description},
		{"cells.filename", c.Cells.Filename},
		{"cells.keywords", c.Cells.Keywords},
		{"cells.rights", c.Cells.Rights},
		{"cells.renderStatus", c.Cells.RenderStatus},
		{"cells.renderStatusValue", c.Cells.RenderStatusValue},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%s must be set", field.key)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Settings.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("settings.log_format: unsupported value %q", c.Settings.LogFormat)
	}
	switch c.Settings.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("settings.log_level: unsupported value %q", c.Settings.LogLevel)
	}
	return nil
}
