package pathset

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

const (
	// DefaultShellTimeout bounds a shell path source
	DefaultShellTimeout = 3 * time.Second
	// MaxShellOutput caps how much of a shell source's output is kept (1MB)
	MaxShellOutput = 1024 * 1024
)

// Shell runs a command through sh and reads one directory per output line.
type Shell struct {
	Command string
	// Dir is the working directory for the command and the base for relative output lines
	Dir     string
	Timeout time.Duration
}

// Paths runs the command
func (s Shell) Paths() ([]string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", s.Command)
	cmd.Dir = s.Dir
	// sh may leave a child holding stdout after being killed
	cmd.WaitDelay = 100 * time.Millisecond
	stdout := &cappedBuffer{max: MaxShellOutput}
	cmd.Stdout = stdout
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("command timeout after %v: %w", timeout, err)
		}
		return nil, err
	}

	output := stdout.Bytes()
	if stdout.truncated {
		// The last line was cut at the cap
		if i := bytes.LastIndexByte(output, '\n'); i >= 0 {
			output = output[:i+1]
		} else {
			output = nil
		}
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxShellOutput)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, absolute(s.Dir, line))
	}
	return paths, nil
}

func (s Shell) String() string {
	return "sh: " + s.Command
}

// cappedBuffer keeps the first max bytes written to it and discards the rest
type cappedBuffer struct {
	bytes.Buffer
	max       int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.Len(); len(p) > room {
		b.Buffer.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	return b.Buffer.Write(p)
}

// TemplateData is exposed to template path entries
type TemplateData struct {
	// Dir is the directory of the config file that declared the entry
	Dir  string
	Home string
}

// Template expands each entry as a text/template with the sprig functions at
// query time, e.g. `{{ env "SDK_ROOT" | default "/opt/sdk" }}/include`.
type Template struct {
	Entries []string
	Dir     string
}

// Paths expands every entry; expansions that come out empty are dropped
func (t Template) Paths() ([]string, error) {
	home, _ := os.UserHomeDir()
	data := TemplateData{Dir: t.Dir, Home: home}

	paths := make([]string, 0, len(t.Entries))
	for _, entry := range t.Entries {
		expanded, err := expand(entry, data)
		if err != nil {
			return nil, err
		}
		expanded = strings.TrimSpace(expanded)
		if expanded == "" {
			continue
		}
		paths = append(paths, absolute(t.Dir, expandHome(expanded, home)))
	}
	return paths, nil
}

func (t Template) String() string {
	return fmt.Sprintf("template%v", t.Entries)
}

// IsTemplate reports whether entry needs template expansion
func IsTemplate(entry string) bool {
	return strings.Contains(entry, "{{")
}

// ParseTemplate checks that entry is a valid template
func ParseTemplate(entry string) error {
	_, err := template.New("path").Funcs(sprig.TxtFuncMap()).Parse(entry)
	return err
}

func expand(entry string, data TemplateData) (string, error) {
	if !IsTemplate(entry) {
		return entry, nil
	}
	tmpl, err := template.New("path").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(entry)
	if err != nil {
		return "", fmt.Errorf("invalid path template %q: %w", entry, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to expand path template %q: %w", entry, err)
	}
	return buf.String(), nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// absolute resolves a relative path against base; an empty base leaves it as is.
func absolute(base, path string) string {
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
