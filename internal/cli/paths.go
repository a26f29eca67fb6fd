package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
)

// Path kinds accepted by the Paths command
const (
	PathsUser   = "user"
	PathsSystem = "system"
	PathsAll    = "all"
)

// PathsParams contains parameters for the Paths command
type PathsParams struct {
	AuthPath string
	LogLevel string
	Dir      string
	Kind     string
	Platform string
	// Defaults prints the built-in system paths of the platform, ignoring configuration
	Defaults bool
}

// Paths prints the search directories a query in Dir would use, in search order
func Paths(params PathsParams) error {
	kind := params.Kind
	if kind == "" {
		kind = PathsAll
	}
	if kind != PathsUser && kind != PathsSystem && kind != PathsAll {
		return derrors.NewValidationError("kind", fmt.Sprintf("unknown path kind %q (want user, system or all)", kind), nil)
	}

	if params.Defaults {
		p, err := syspath.ParsePlatform(params.Platform)
		if err != nil {
			return err
		}
		for _, dir := range syspath.DefaultSystemPaths(p) {
			fmt.Println(dir)
		}
		return nil
	}

	comps, err := initializeComponents(params.AuthPath, params.LogLevel)
	if err != nil {
		return err
	}
	dir, err := resolveDir(params.Dir)
	if err != nil {
		return err
	}
	sess, err := comps.open(dir, params.Platform)
	if err != nil {
		return err
	}

	if kind != PathsSystem {
		for _, p := range pathset.Resolve(sess.settings.UserSource(comps.log), comps.log) {
			fmt.Printf("user\t%s\n", p)
		}
	}
	if kind != PathsUser {
		system, err := sess.settings.SystemSource(comps.log)
		if err != nil {
			return err
		}
		for _, p := range pathset.Resolve(system, comps.log) {
			fmt.Printf("system\t%s\n", p)
		}
	}
	return nil
}
