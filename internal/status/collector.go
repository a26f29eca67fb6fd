// Package status provides status information collection and display for hdrcomp.
package status

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/hdrcomp/internal/auth"
	"github.com/NikitaCOEUR/hdrcomp/internal/config"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
	"github.com/NikitaCOEUR/hdrcomp/internal/scanner"
	"github.com/NikitaCOEUR/hdrcomp/pkg/version"
)

// CollectAll gathers all status information for the current directory
func CollectAll(authPath string, log *logger.Logger) (*Data, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return Collect(currentDir, authPath, log)
}

// Collect gathers all status information for dir
func Collect(dir, authPath string, log *logger.Logger) (*Data, error) {
	if log == nil {
		log = logger.Discard()
	}

	data := &Data{
		CurrentDir:   dir,
		Version:      version.Version,
		AuthPath:     authPath,
		LocalConfigs: make([]config.FileInfo, 0),
		Filters:      make(map[string]string),
	}

	authMgr, err := auth.New(authPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	hierarchyInfo, err := config.GetHierarchyInfo(dir, authMgr)
	if err != nil {
		return nil, fmt.Errorf("failed to get config hierarchy: %w", err)
	}

	data.GlobalConfig = hierarchyInfo.GlobalConfig
	data.LocalConfigs = hierarchyInfo.LocalConfigs
	data.HasAnyConfig = len(data.LocalConfigs) > 0 || (data.GlobalConfig != nil && data.GlobalConfig.Exists)

	data.Authorized = true
	for _, cfg := range data.LocalConfigs {
		if cfg.Loaded && !cfg.Authorized && cfg.PendingCommands > 0 {
			data.Authorized = false
		}
	}

	settings := hierarchyInfo.Settings
	collectPaths(data, settings, log)
	collectFilters(data, settings)

	return data, nil
}

func collectPaths(data *Data, settings *config.Settings, log *logger.Logger) {
	data.Platform = settings.Platform
	if p, err := settings.ResolvePlatform(); err == nil {
		data.Platform = string(p)
	}
	data.SystemFromConfig = settings.SystemConfigured

	for _, layout := range settings.Layouts {
		data.Layouts = append(data.Layouts, layout.String())
	}
	for _, e := range settings.ShellEntries() {
		data.ShellPaths = append(data.ShellPaths, ShellPathInfo{Command: e.Sh, Config: e.File, Trusted: e.Trusted})
	}

	data.UserPaths = resolvePaths(data, settings.UserSource(log))

	system, err := settings.SystemSource(log)
	if err != nil {
		data.Problems = append(data.Problems, err.Error())
		return
	}
	data.SystemPaths = resolvePaths(data, system)
}

func resolvePaths(data *Data, src pathset.Source) []PathInfo {
	paths, err := pathset.ResolveE(src)
	if err != nil {
		data.Problems = append(data.Problems, err.Error())
		return nil
	}

	infos := make([]PathInfo, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(data.CurrentDir, p)
		}
		infos = append(infos, PathInfo{Path: p, Exists: scanner.IsDir(p)})
	}
	return infos
}

func collectFilters(data *Data, settings *config.Settings) {
	filters, err := settings.Filters()
	if err != nil {
		data.Problems = append(data.Problems, err.Error())
		return
	}
	for mode, f := range filters {
		data.Filters[mode] = scanner.Describe(f)
	}
}
