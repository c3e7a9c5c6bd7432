package config

const (
	// DefaultConfigFile is the spreadsheet configuration read when --config is omitted.
	DefaultConfigFile = "config.yml"
	// DefaultServerFile is the delivery configuration read when --server is omitted.
	DefaultServerFile = "server.yml"

	defaultRightsFile  = "rights.yml"
	defaultOutputDir   = "~/xml-creator-data/xml"
	defaultLedgerPath  = "~/xml-creator-data/ledger.db"
	defaultLogDir      = "~/xml-creator-data/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultTimezone    = "America/New_York"
	defaultNtfyTimeout = 10
	defaultDoneMarker  = "done"
	defaultFTPPort     = 21
	defaultFTPTimeout  = 30
)

// Default returns a Config populated with repository defaults. Cell bindings
// and the spreadsheet location have no defaults and must come from the file.
func Default() Config {
	return Config{
		Settings: Settings{
			RightsFile:    defaultRightsFile,
			OutputDir:     defaultOutputDir,
			LedgerEnabled: true,
			LedgerPath:    defaultLedgerPath,
			LogDir:        defaultLogDir,
			LogFormat:     defaultLogFormat,
			LogLevel:      defaultLogLevel,
			Timezone:      defaultTimezone,
			NtfyTimeout:   defaultNtfyTimeout,
		},
		Cells: Cells{
			RenderStatusValue: defaultDoneMarker,
		},
	}
}

// DefaultServer returns server settings with port and timeout defaults.
func DefaultServer() Server {
	return Server{
		FTP: FTP{
			Port:           defaultFTPPort,
			TimeoutSeconds: defaultFTPTimeout,
		},
	}
}
