package delivery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// ErrIncompleteSettings means a required server field is absent.
var ErrIncompleteSettings = errors.New("incomplete delivery settings")

// Settings describes the remote drop location.
type Settings struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Dir     string
	Timeout time.Duration
}

// Validate reports every required field that is absent.
func (s Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Host) == "" {
		missing = append(missing, "host")
	}
	if strings.TrimSpace(s.User) == "" {
		missing = append(missing, "user")
	}
	if s.Pass == "" {
		missing = append(missing, "pass")
	}
	if strings.TrimSpace(s.Dir) == "" {
		missing = append(missing, "dir")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteSettings, strings.Join(missing, ", "))
	}
	return nil
}

// Address returns host:port, defaulting the port to 21. A port already present
// in Host wins over Port.
func (s Settings) Address() string {
	host := strings.TrimSpace(s.Host)
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	port := s.Port
	if port <= 0 {
		port = 21
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Uploader sends local files to the remote location.
type Uploader interface {
	Upload(ctx context.Context, localPath string) error
	Close() error
}

// Opener starts an upload session.
type Opener interface {
	Open(ctx context.Context) (Uploader, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context) (Uploader, error)

func (f OpenerFunc) Open(ctx context.Context) (Uploader, error) {
	return f(ctx)
}
