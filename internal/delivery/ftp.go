package delivery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jlaffaye/ftp"

	"xmlcreator/internal/logging"
	"xmlcreator/internal/services"
)

const defaultTimeout = 30 * time.Second

// conn is the subset of *ftp.ServerConn the uploader drives.
type conn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	Stor(path string, r io.Reader) error
	Quit() error
}

type dialFunc func(ctx context.Context, addr string, timeout time.Duration) (conn, error)

func dialFTP(ctx context.Context, addr string, timeout time.Duration) (conn, error) {
	c, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(timeout))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FTPOpener opens FTP upload sessions.
type FTPOpener struct {
	settings Settings
	logger   *slog.Logger
	dial     dialFunc
}

// NewFTPOpener returns an opener for settings.
func NewFTPOpener(settings Settings, logger *slog.Logger) *FTPOpener {
	return &FTPOpener{
		settings: settings,
		logger:   logging.NewComponentLogger(logger, "delivery"),
		dial:     dialFTP,
	}
}

// Open validates the settings, connects, logs in and changes to the target
// directory. Nothing is dialed when the settings are incomplete.
func (o *FTPOpener) Open(ctx context.Context) (Uploader, error) {
	if err := o.settings.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "delivery", "settings", "", err)
	}
	timeout := o.settings.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	addr := o.settings.Address()
	c, err := o.dial(ctx, addr, timeout)
	if err != nil {
		return nil, services.Wrap(services.ErrDelivery, "delivery", "dial", addr, err)
	}
	if err := c.Login(o.settings.User, o.settings.Pass); err != nil {
		_ = c.Quit()
		return nil, services.Wrap(services.ErrDelivery, "delivery", "login", o.settings.User, err)
	}
	if err := c.ChangeDir(o.settings.Dir); err != nil {
		_ = c.Quit()
		return nil, services.Wrap(services.ErrDelivery, "delivery", "cwd", o.settings.Dir, err)
	}
	o.logger.Debug("ftp session opened",
		logging.String("addr", addr),
		logging.String("dir", o.settings.Dir),
	)
	return &ftpUploader{conn: c, logger: o.logger}, nil
}

type ftpUploader struct {
	conn   conn
	logger *slog.Logger
	closed bool
}

// Upload stores localPath in the session directory under its base name.
func (u *ftpUploader) Upload(ctx context.Context, localPath string) error {
	if u.closed {
		return services.Wrap(services.ErrDelivery, "delivery", "stor", "session closed", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	name := filepath.Base(localPath)
	if err := u.conn.Stor(name, file); err != nil {
		return services.Wrap(services.ErrDelivery, "delivery", "stor", name, err)
	}
	u.logger.Info("descriptor uploaded", logging.String(logging.FieldPath, localPath))
	return nil
}

func (u *ftpUploader) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if err := u.conn.Quit(); err != nil {
		return fmt.Errorf("ftp quit: %w", err)
	}
	return nil
}
