package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/hdrcomp/internal/auth"
	"github.com/NikitaCOEUR/hdrcomp/internal/config"
	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
)

// AllowParams contains parameters for the Allow command
type AllowParams struct {
	AuthPath    string
	PathToAllow string
	LogLevel    string
}

// Allow authorizes a directory and approves the shell paths of its config
func Allow(params AllowParams) error {
	log := logger.New(params.LogLevel, os.Stderr)

	dir, err := resolveDir(params.PathToAllow)
	if err != nil {
		return err
	}

	authMgr, err := auth.New(params.AuthPath)
	if err != nil {
		return derrors.NewAuthorizationError(dir, "failed to initialize auth", err)
	}

	if err := authMgr.Allow(dir); err != nil {
		return derrors.NewAuthorizationError(dir, "failed to authorize", err)
	}
	fmt.Printf("Authorized: %s\n", dir)

	commands, err := shellCommandsIn(dir)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		log.Debug().Str("dir", dir).Msg("No shell paths to approve")
		return nil
	}

	if err := authMgr.ApproveCommands(dir, commands); err != nil {
		return err
	}
	fmt.Println("\nApproved shell paths:")
	for _, cmd := range commands {
		fmt.Printf("   • %s\n", cmd)
	}
	fmt.Println("\nRun 'hdrcomp allow' again after changing them.")

	return nil
}

// shellCommandsIn returns the shell path commands of the config in dir
func shellCommandsIn(dir string) ([]string, error) {
	path := config.FindLocalConfig(dir)
	if path == "" {
		return nil, nil
	}
	cfg, err := config.New().Load(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}
	return cfg.ShellCommands(), nil
}

// RevokeParams contains parameters for the Revoke command
type RevokeParams struct {
	AuthPath     string
	PathToRevoke string
}

// Revoke removes authorization for a directory
func Revoke(params RevokeParams) error {
	dir, err := resolveDir(params.PathToRevoke)
	if err != nil {
		return err
	}

	authMgr, err := auth.New(params.AuthPath)
	if err != nil {
		return derrors.NewAuthorizationError(dir, "failed to initialize auth", err)
	}

	if err := authMgr.Revoke(dir); err != nil {
		return derrors.NewAuthorizationError(dir, "failed to revoke", err)
	}

	fmt.Printf("Revoked: %s\n", dir)
	return nil
}

// List displays all authorized directories
func List(authPath string) error {
	authMgr, err := auth.New(authPath)
	if err != nil {
		return derrors.NewAuthorizationError("", "failed to initialize auth", err)
	}

	paths := authMgr.List()
	if len(paths) == 0 {
		fmt.Println("No authorized directories")
		return nil
	}

	fmt.Println("Authorized directories:")
	for _, path := range paths {
		fmt.Printf("  %s\n", path)
	}

	return nil
}
