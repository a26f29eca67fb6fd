package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	AuthPath string
	LogLevel string
	Dir      string
}

// Status displays the configuration and search paths that apply to Dir
func Status(params StatusParams) error {
	dir, err := resolveDir(params.Dir)
	if err != nil {
		return err
	}

	data, err := status.Collect(dir, params.AuthPath, logger.New(params.LogLevel, os.Stderr))
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	fmt.Println(status.Render(data))
	return nil
}
