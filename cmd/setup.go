package cmd

import (
	"fmt"
	"io"

	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/config"
	"github.com/matheuskafuri/newsdesk/internal/locale"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/sirupsen/logrus"
)

// session bundles everything a command needs to talk to the backend.
type session struct {
	cfg       *config.Config
	log       *logrus.Logger
	logFile   io.Closer
	client    *api.Client
	formatter *locale.Formatter
}

func setup() (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagBaseURL != "" {
		if err := config.ValidateBaseURL(flagBaseURL); err != nil {
			return nil, fmt.Errorf("invalid --base-url: %w", err)
		}
		cfg.BaseURL = flagBaseURL
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	logPath := flagLogFile
	if logPath == "" {
		logPath = config.LogPath()
	}
	rt := &session{cfg: cfg}
	rt.log, rt.logFile, err = logger.Open(cfg.GetLogLevel(), logPath)
	if err != nil {
		// Non-fatal: run without a log file
		rt.log = logger.Discard()
	}

	tag, err := locale.Resolve(cfg.Locale)
	if err != nil {
		rt.log.WithError(err).Warn("falling back to default locale")
	}
	rt.formatter = locale.New(tag, nil)

	rt.client = api.New(cfg.GetBaseURL(), api.WithLogger(rt.log))
	rt.log.WithFields(logrus.Fields{
		"base_url": cfg.GetBaseURL(),
		"locale":   tag.String(),
	}).Debug("newsdesk starting")
	return rt, nil
}

func (rt *session) Close() {
	if rt.logFile != nil {
		rt.logFile.Close()
	}
}
