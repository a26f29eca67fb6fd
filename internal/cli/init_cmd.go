package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/hdrcomp/internal/config"
	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
)

const sampleConfig = `# hdrcomp configuration file

# Directories searched for "..." includes, before the system paths.
# Relative entries are relative to this file.
user_paths:
  - .
  # - include
  # - '{{ env "SDK_ROOT" | default "/opt/sdk" }}/include'
  # Command printing one directory per line (needs 'hdrcomp allow')
  # - sh: pkg-config --variable=includedir gtk+-3.0

# Directories searched for every include. Leave unset to use the
# platform defaults.
# system_paths:
#   - /usr/local/include
#   - /usr/include

# Extra version-guided directories, e.g. /opt/gcc/<version>/include
# system_layouts:
#   - root: /opt/gcc
#     segments: [include]

# Platform whose defaults are used: auto, linux, darwin, windows, freebsd, unix
# platform: auto

# Header file filters per editing mode (regex, or {glob: ...})
# mode_filters:
#   c: '\.h$'
#   c++:
#     glob: "*.{h,hh,hpp,hxx}"

# Set to true to ignore parent configs and the global config
# local_only: false

# Set to true to ignore the global config
# ignore_global: false
`

// Init creates a sample config file in the current directory or the global config
func Init(global bool) error {
	var configPath string

	if global {
		globalPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return derrors.NewConfigurationError("", "failed to get global config path", err)
		}
		configPath = globalPath

		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return derrors.NewIOError(configDir, "failed to create config directory", err)
		}
	} else {
		currentDir, err := os.Getwd()
		if err != nil {
			return derrors.NewIOError(".", "failed to get current directory", err)
		}
		configPath = filepath.Join(currentDir, config.SupportedConfigNames[0])
	}

	if _, err := os.Stat(configPath); err == nil {
		return derrors.NewConfigurationError(configPath, "config file already exists", nil)
	}

	if err := os.WriteFile(configPath, []byte(sampleConfig), 0644); err != nil {
		return derrors.NewIOError(configPath, "failed to create config file", err)
	}

	if global {
		fmt.Printf("Created global config: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to suit your needs")
		fmt.Println("  2. The global config is loaded for every directory")
	} else {
		fmt.Printf("Created sample config: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to suit your needs")
		fmt.Println("  2. Run 'hdrcomp validate' to check it")
		fmt.Println("  3. Run 'hdrcomp allow' if you add shell paths")
	}

	return nil
}
