package status

import (
	"github.com/NikitaCOEUR/hdrcomp/internal/config"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string
	AuthPath   string

	// Authorization
	Authorized   bool
	HasAnyConfig bool // Whether there's any config (local or global)

	// Configuration
	GlobalConfig *config.GlobalInfo
	LocalConfigs []config.FileInfo

	// Search paths
	Platform    string
	UserPaths   []PathInfo
	SystemPaths []PathInfo
	// SystemFromConfig is true when system_paths replaced the platform defaults
	SystemFromConfig bool
	Layouts          []string
	ShellPaths       []ShellPathInfo

	// Filters maps mode ids to filter descriptions
	Filters map[string]string

	// Problems met while resolving, shown as warnings
	Problems []string
}

// PathInfo is one resolved search directory
type PathInfo struct {
	Path   string
	Exists bool
}

// ShellPathInfo describes a shell path entry
type ShellPathInfo struct {
	Command string
	Config  string
	Trusted bool
}
