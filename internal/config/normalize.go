package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeCells()
	c.Worksheet.Name = strings.TrimSpace(c.Worksheet.Name)
	c.Settings.Timezone = strings.TrimSpace(c.Settings.Timezone)
	if c.Settings.Timezone == "" {
		c.Settings.Timezone = defaultTimezone
	}
	c.Settings.NtfyTopic = strings.TrimSpace(c.Settings.NtfyTopic)
	if c.Settings.NtfyTimeout <= 0 {
		c.Settings.NtfyTimeout = defaultNtfyTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	base := c.baseDir()
	var err error

	if strings.TrimSpace(c.Settings.RightsFile) == "" {
		c.Settings.RightsFile = defaultRightsFile
	}
	if c.Settings.RightsFile, err = resolveRelative(base, c.Settings.RightsFile); err != nil {
		return fmt.Errorf("settings.rights_file: %w", err)
	}
	if strings.TrimSpace(c.Settings.OutputDir) == "" {
		c.Settings.OutputDir = defaultOutputDir
	}
	if c.Settings.OutputDir, err = resolveRelative(base, c.Settings.OutputDir); err != nil {
		return fmt.Errorf("settings.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Settings.LogDir) == "" {
		c.Settings.LogDir = defaultLogDir
	}
	if c.Settings.LogDir, err = resolveRelative(base, c.Settings.LogDir); err != nil {
		return fmt.Errorf("settings.log_dir: %w", err)
	}
	if c.Settings.LedgerEnabled && strings.TrimSpace(c.Settings.LedgerPath) == "" {
		c.Settings.LedgerPath = defaultLedgerPath
	}
	if c.Settings.LedgerPath, err = resolveRelative(base, c.Settings.LedgerPath); err != nil {
		return fmt.Errorf("settings.ledger_path: %w", err)
	}
	if c.Spreadsheet.Name, err = resolveRelative(base, c.Spreadsheet.Name); err != nil {
		return fmt.Errorf("spreadsheet.name: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Settings.LogFormat = strings.ToLower(strings.TrimSpace(c.Settings.LogFormat))
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = defaultLogFormat
	}
	c.Settings.LogLevel = strings.ToLower(strings.TrimSpace(c.Settings.LogLevel))
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaultLogLevel
	}
}

// Header texts are matched exactly against the sheet, so only surrounding
// whitespace from the YAML is removed.
func (c *Config) normalizeCells() {
	cells := &c.Cells
	for _, value := range []*string{
		&cells.Title,
		&cells.Description,
		&cells.Filename,
		&cells.Keywords,
		&cells.Rights,
		&cells.RenderStatus,
		&cells.RenderStatusValue,
	} {
		*value = strings.TrimSpace(*value)
	}
}
