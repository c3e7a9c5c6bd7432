package main

import (
	"log/slog"
	"strings"
	"sync"

	"xmlcreator/internal/config"
	"xmlcreator/internal/delivery"
	"xmlcreator/internal/logging"
	"xmlcreator/internal/services"
)

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "directories", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// deliverySettings reads the server file. It is only called once a run has
// descriptors to upload, so a missing server file never blocks a run that
// produces nothing.
func (c *commandContext) deliverySettings() (delivery.Settings, error) {
	server, err := config.LoadServer(flagValue(c.serverFlag))
	if err != nil {
		return delivery.Settings{}, services.Wrap(services.ErrConfiguration, "deliver", "load server config", "", err)
	}
	return delivery.Settings{
		Host:    server.FTP.Host,
		Port:    server.FTP.Port,
		User:    server.FTP.User,
		Pass:    server.FTP.Pass,
		Dir:     server.FTP.Dir,
		Timeout: server.FTP.Timeout(),
	}, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}
