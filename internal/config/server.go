package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override the server file.
const (
	EnvFTPHost = "XMLCREATOR_FTP_HOST"
	EnvFTPUser = "XMLCREATOR_FTP_USER"
	EnvFTPPass = "XMLCREATOR_FTP_PASS"
	EnvFTPDir  = "XMLCREATOR_FTP_DIR"
)

// FTP holds the delivery server settings.
type FTP struct {
	Host           string `toml:"host" yaml:"host"`
	Port           int    `toml:"port" yaml:"port"`
	User           string `toml:"user" yaml:"user"`
	Pass           string `toml:"pass" yaml:"pass"`
	Dir            string `toml:"dir" yaml:"dir"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Server is the delivery configuration file.
type Server struct {
	FTP FTP `toml:"FTP" yaml:"FTP"`
}

// LoadServer reads the server configuration at path (DefaultServerFile when
// empty). A .env file next to it is loaded first so credentials can live
// outside the YAML; XMLCREATOR_FTP_* variables override file values. Missing
// fields are not an error here: delivery validates them before connecting.
func LoadServer(path string) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultServerFile
	}
	resolved, err := resolveExisting(path)
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(filepath.Dir(resolved), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envPath, err)
	}

	server := DefaultServer()
	if err := decodeFile(resolved, &server); err != nil {
		return nil, err
	}
	server.applyEnv()
	server.FTP.Host = strings.TrimSpace(server.FTP.Host)
	server.FTP.User = strings.TrimSpace(server.FTP.User)
	server.FTP.Dir = strings.TrimSpace(server.FTP.Dir)
	if server.FTP.Port <= 0 {
		server.FTP.Port = defaultFTPPort
	}
	if server.FTP.TimeoutSeconds <= 0 {
		server.FTP.TimeoutSeconds = defaultFTPTimeout
	}
	return &server, nil
}

func (s *Server) applyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvFTPHost, &s.FTP.Host},
		{EnvFTPUser, &s.FTP.User},
		{EnvFTPPass, &s.FTP.Pass},
		{EnvFTPDir, &s.FTP.Dir},
	}
	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.env); ok && value != "" {
			*o.target = value
		}
	}
}

// Timeout returns the connection timeout as a duration.
func (f FTP) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}
