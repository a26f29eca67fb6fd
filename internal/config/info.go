package config

import (
	"os"
)

// FileInfo represents information about a configuration file
type FileInfo struct {
	Path       string
	Loaded     bool
	Authorized bool
	LocalOnly  bool
	// PendingCommands counts shell paths that are skipped until the directory is allowed
	PendingCommands int
}

// GlobalInfo represents information about the global configuration
type GlobalInfo struct {
	Path   string
	Exists bool
	Loaded bool
}

// HierarchyInfo contains information about the configuration hierarchy
type HierarchyInfo struct {
	GlobalConfig *GlobalInfo
	LocalConfigs []FileInfo
	Settings     *Settings
}

// GetHierarchyInfo returns information about the configuration hierarchy for a directory
func GetHierarchyInfo(currentDir string, authMgr AuthChecker) (*HierarchyInfo, error) {
	loader := New()

	layers, err := loader.Layers(currentDir, authMgr)
	if err != nil {
		return nil, err
	}

	info := &HierarchyInfo{
		LocalConfigs: make([]FileInfo, 0),
		Settings:     Merge(layers),
	}
	info.Settings.Anchor(currentDir)

	loaded := make(map[string]Layer, len(layers))
	for _, layer := range layers {
		loaded[layer.Path] = layer
	}

	if globalPath, err := GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			_, globalLoaded := loaded[globalPath]
			info.GlobalConfig = &GlobalInfo{
				Path:   globalPath,
				Exists: true,
				Loaded: globalLoaded,
			}
		}
	}

	for _, path := range FindConfigFiles(currentDir) {
		fi := FileInfo{Path: path}
		if layer, ok := loaded[path]; ok {
			fi.Loaded = true
			fi.Authorized = layer.Trusted
			fi.LocalOnly = layer.Config.LocalOnly
			if !layer.Trusted {
				fi.PendingCommands = len(layer.Config.ShellCommands())
			}
		}
		info.LocalConfigs = append(info.LocalConfigs, fi)
	}

	return info, nil
}
