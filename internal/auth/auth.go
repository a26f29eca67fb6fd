// Package auth records which project directories may run shell path commands.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
)

// DirAuth stores the authorization state of a directory and the hash of the
// shell path commands that were approved with it
type DirAuth struct {
	Allowed      bool      `json:"allowed"`
	AllowedAt    time.Time `json:"allowed_at,omitempty"`
	CommandsHash string    `json:"commands_hash,omitempty"`
	ApprovedAt   time.Time `json:"approved_at,omitempty"`
}

// Auth manages project directory authorization
type Auth struct {
	path       string
	mu         sync.RWMutex
	authorized map[string]*DirAuth
}

// New creates a new auth manager backed by the JSON file at path
func New(path string) (*Auth, error) {
	a := &Auth{
		path:       path,
		authorized: make(map[string]*DirAuth),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, derrors.NewIOError(dir, "failed to create auth directory", err)
	}

	if err := a.load(); err != nil && !os.IsNotExist(err) {
		return nil, derrors.NewAuthorizationError(path, "failed to load authorized directories", err)
	}

	return a, nil
}

// DefaultPath returns the location of the auth store
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "hdrcomp", "authorized.json"), nil
}

// GetAuth returns the DirAuth structure for a given directory path
func (a *Auth) GetAuth(path string) *DirAuth {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authorized[normalizePath(path)]
}

// Allow adds a directory to the authorized list
func (a *Auth) Allow(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	normalized := normalizePath(path)
	now := time.Now()
	if a.authorized[normalized] == nil {
		a.authorized[normalized] = &DirAuth{}
	}
	a.authorized[normalized].Allowed = true
	a.authorized[normalized].AllowedAt = now
	return a.persist()
}

// IsAllowed checks if a directory is authorized
func (a *Auth) IsAllowed(path string) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	auth := a.authorized[normalizePath(path)]
	return auth != nil && auth.Allowed, nil
}

// ApproveCommands records the shell path commands of an allowed directory
func (a *Auth) ApproveCommands(dir string, commands []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	auth := a.authorized[normalizePath(dir)]
	if auth == nil || !auth.Allowed {
		return derrors.NewAuthorizationError(dir, "directory not authorized", nil)
	}
	auth.CommandsHash = hashCommands(commands)
	auth.ApprovedAt = time.Now()
	return a.persist()
}

// CommandsApproved reports whether commands are the ones approved for dir.
// A directory without commands needs no approval.
func (a *Auth) CommandsApproved(dir string, commands []string) bool {
	if len(commands) == 0 {
		return true
	}
	auth := a.GetAuth(dir)
	if auth == nil || !auth.Allowed {
		return false
	}
	return auth.CommandsHash == hashCommands(commands)
}

// hashCommands computes an order-independent hash of commands
func hashCommands(commands []string) string {
	sorted := append([]string(nil), commands...)
	sort.Strings(sorted)
	h := sha256.New()
	for _, c := range sorted {
		fmt.Fprintf(h, "%s\n", c)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Revoke removes a directory from the authorized list
func (a *Auth) Revoke(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.authorized, normalizePath(path))
	return a.persist()
}

// List returns all authorized directories, sorted
func (a *Auth) List() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	paths := make([]string, 0, len(a.authorized))
	for path, auth := range a.authorized {
		if auth.Allowed {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// Clear removes all authorized directories
func (a *Auth) Clear() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.authorized = make(map[string]*DirAuth)
	return a.persist()
}

func (a *Auth) load() error {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return err
	}

	var auths map[string]*DirAuth
	if err := json.Unmarshal(data, &auths); err != nil {
		return err
	}

	a.authorized = make(map[string]*DirAuth)
	for path, auth := range auths {
		if auth != nil {
			a.authorized[normalizePath(path)] = auth
		}
	}

	return nil
}

func (a *Auth) persist() error {
	data, err := json.MarshalIndent(a.authorized, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.path, data, 0600); err != nil {
		return derrors.NewIOError(a.path, "failed to write authorized directories", err)
	}
	return nil
}

// normalizePath removes trailing slashes and cleans the path
func normalizePath(path string) string {
	cleaned := filepath.Clean(path)
	if cleaned == string(filepath.Separator) {
		return cleaned
	}
	return strings.TrimSuffix(cleaned, string(filepath.Separator))
}
