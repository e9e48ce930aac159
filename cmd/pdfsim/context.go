package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pdfsim/internal/compare"
	"pdfsim/internal/config"
	"pdfsim/internal/db"
	"pdfsim/internal/fetch"
	"pdfsim/internal/ingest"
	"pdfsim/internal/logging"
	"pdfsim/internal/tokenize"
	"pdfsim/internal/workspace"
)

// commandContext lazily builds the shared pieces every subcommand needs.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	noHistory    *bool

	once      sync.Once
	config    *config.Config
	logger    *slog.Logger
	workspace string
	err       error
}

func newCommandContext(configFlag, logLevelFlag *string, noHistory *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		noHistory:    noHistory,
	}
}

func (c *commandContext) ensure() error {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.err = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}

		logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
		if err != nil {
			c.err = err
			return
		}

		var root string
		if cfg.Paths.WorkspaceDir == "" {
			root, err = workspace.EnsureDefault()
		} else {
			root, err = workspace.EnsureAt(cfg.Paths.WorkspaceDir)
		}
		if err != nil {
			c.err = fmt.Errorf("workspace initialization failed: %w", err)
			return
		}

		c.config = cfg
		c.logger = logger
		c.workspace = root
	})
	return c.err
}

// comparator reads local files directly and downloads URLs as each
// document is opened.
func (c *commandContext) comparator() *compare.Comparator {
	normalizer := tokenize.Normalizer{DropEmpty: c.config.Compare.DropEmptyTokens}
	provider := c.fetcher().Provider(ingest.NewProvider(c.logger))
	return compare.New(provider, normalizer, c.logger)
}

func (c *commandContext) fetcher() *fetch.Client {
	return fetch.New(workspace.DownloadsDir(c.workspace), fetch.Options{
		Timeout:    c.config.FetchTimeout(),
		RetryCount: c.config.Fetch.RetryCount,
		UserAgent:  c.config.Fetch.UserAgent,
	}, c.logger)
}

func (c *commandContext) historyEnabled() bool {
	if c.noHistory != nil && *c.noHistory {
		return false
	}
	return c.config.History.Enabled
}

func (c *commandContext) historyPath() string {
	return workspace.HistoryPath(c.workspace)
}

// record stores a comparison. History is a convenience, so failures are
// logged and never fail the command.
func (c *commandContext) record(res compare.Result) {
	if !c.historyEnabled() {
		return
	}
	if _, err := db.RecordComparison(c.historyPath(), res, time.Now()); err != nil {
		c.logger.Warn("record comparison failed", "component", "history", "error", err)
	}
}
