package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
	"github.com/NikitaCOEUR/hdrcomp/internal/scanner"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate validates a config file: schema first, then the semantic checks
// the schema cannot express.
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.add("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	validatePaths(result, "user_paths", cfg.GetUserPaths())
	system, _ := cfg.GetSystemPaths()
	validatePaths(result, "system_paths", system)

	for i, layout := range cfg.SystemLayouts {
		if err := layout.Validate(); err != nil {
			result.add(fmt.Sprintf("system_layouts/%d", i), err.Error())
		}
	}

	if _, err := syspath.ParsePlatform(cfg.Platform); err != nil {
		result.add("platform", err.Error())
	}

	for mode, spec := range cfg.GetModeFilters() {
		if _, err := spec.Build(); err != nil {
			result.add("mode_filters/"+mode, err.Error())
		}
	}
	for mode := range cfg.ModeFilters {
		if !knownMode(scanner.NormalizeMode(mode)) {
			result.add("mode_filters/"+mode, fmt.Sprintf("Unknown mode '%s'", mode))
		}
	}

	return result, nil
}

func validatePaths(result *ValidationResult, field string, entries []PathEntry) {
	for i, e := range entries {
		name := fmt.Sprintf("%s/%d", field, i)
		if e.IsShell() {
			if strings.TrimSpace(e.Sh) == "" {
				result.add(name, "Shell command is empty")
			}
			if strings.Contains(e.Sh, "\n") {
				result.add(name, "Shell command contains newlines (multiline commands not supported)")
			}
			continue
		}
		if strings.TrimSpace(e.Path) == "" {
			result.add(name, "Path is empty")
			continue
		}
		if pathset.IsTemplate(e.Path) {
			if err := pathset.ParseTemplate(e.Path); err != nil {
				result.add(name, fmt.Sprintf("Invalid template: %v", err))
			}
		}
	}
}

func knownMode(mode string) bool {
	_, ok := scanner.DefaultModeFilters()[mode]
	return ok
}
