package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xmlcreator/internal/config"
)

// Default header texts used by SheetBuilder and NewConfig.
const (
	HeaderTitle        = "Title"
	HeaderDescription  = "Description"
	HeaderFilename     = "Filename"
	HeaderKeywords     = "Keywords"
	HeaderRights       = "Rights"
	HeaderRenderStatus = "Render Status"
	DoneMarker         = "done"
)

// DefaultRights is the registry written by NewConfig.
var DefaultRights = []string{"Web", "Broadcast", "Social"}

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	rights  []string
}

// NewConfig produces a config seeded with unique temp directories per test.
// The rights registry file is written under the temp directory; the
// spreadsheet path points at sheet.csv there but the file is not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Path = filepath.Join(base, "config.yml")
	cfgVal.Settings.OutputDir = filepath.Join(base, "xml")
	cfgVal.Settings.LedgerPath = filepath.Join(base, "ledger.db")
	cfgVal.Settings.LogDir = filepath.Join(base, "logs")
	cfgVal.Settings.RightsFile = filepath.Join(base, "rights.yml")
	cfgVal.Spreadsheet.Name = filepath.Join(base, "sheet.csv")
	cfgVal.Worksheet.Name = "Videos"
	cfgVal.Cells = config.Cells{
		Title:             HeaderTitle,
		Description:       HeaderDescription,
		Filename:          HeaderFilename,
		Keywords:          HeaderKeywords,
		Rights:            HeaderRights,
		RenderStatus:      HeaderRenderStatus,
		RenderStatusValue: DoneMarker,
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
		rights:  DefaultRights,
	}
	for _, opt := range opts {
		opt(builder)
	}

	WriteRights(t, cfgVal.Settings.RightsFile, builder.rights...)
	return builder.cfg
}

// WithRights overrides the rights registry written for the config.
func WithRights(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.rights = names
	}
}

// WithoutLedger disables the run ledger.
func WithoutLedger() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Settings.LedgerEnabled = false
		b.cfg.Settings.LedgerPath = ""
	}
}

// WithSheet writes the rows built by sb as the spreadsheet CSV.
func WithSheet(sb *SheetBuilder) ConfigOption {
	return func(b *configBuilder) {
		WriteText(b.t, b.cfg.Spreadsheet.Name, sb.CSV())
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Path)
}

// WriteRights writes a YAML rights registry listing names.
func WriteRights(t testing.TB, path string, names ...string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("rights:\n")
	for _, name := range names {
		b.WriteString("  - \"")
		b.WriteString(strings.ReplaceAll(name, `"`, `\"`))
		b.WriteString("\"\n")
	}
	if len(names) == 0 {
		b.Reset()
		b.WriteString("rights: []\n")
	}
	WriteText(t, path, b.String())
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
