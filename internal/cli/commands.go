// Package cli implements the hdrcomp commands. Command actions in cmd/hdrcomp
// translate flags into the Params structs defined here.
package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/hdrcomp/internal/auth"
	"github.com/NikitaCOEUR/hdrcomp/internal/completion"
	"github.com/NikitaCOEUR/hdrcomp/internal/config"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
)

// components holds initialized hdrcomp components
type components struct {
	auth   *auth.Auth
	config *config.Loader
	log    *logger.Logger
}

// initializeComponents creates and initializes all required components
func initializeComponents(authPath, logLevel string) (*components, error) {
	authMgr, err := auth.New(authPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	log := logger.New(logLevel, os.Stderr)
	return &components{
		auth:   authMgr,
		config: config.New().WithLogger(log.With("config")),
		log:    log,
	}, nil
}

// session is everything a query in one directory needs
type session struct {
	settings *config.Settings
	engine   *completion.Engine
	platform syspath.Platform
}

// open loads the configuration hierarchy of dir and builds an engine from it.
// A non-empty platform overrides the configured one.
func (c *components) open(dir, platform string) (*session, error) {
	settings, err := c.config.LoadHierarchy(dir, c.auth)
	if err != nil {
		return nil, err
	}
	if platform != "" {
		settings.Platform = platform
	}

	p, err := settings.ResolvePlatform()
	if err != nil {
		return nil, err
	}
	system, err := settings.SystemSource(c.log.With("syspath"))
	if err != nil {
		return nil, err
	}
	filters, err := settings.Filters()
	if err != nil {
		return nil, err
	}

	engine := completion.NewEngine(completion.Options{
		UserPaths:   settings.UserSource(c.log.With("pathset")),
		SystemPaths: system,
		Filters:     filters,
		Logger:      c.log.With("completion"),
	})
	return &session{settings: settings, engine: engine, platform: p}, nil
}
