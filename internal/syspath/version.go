package syspath

import (
	"github.com/hashicorp/go-version"
)

// GreatestVersion picks the name that parses as the greatest version.
//
// Names are parsed with go-version: an optional leading "v", any number of
// numeric segments, and an optional pre-release which sorts below the release.
// Names that do not parse ("beta", "latest", "x86_64-linux-gnu") are ignored.
// Equal versions such as "1.0" and "1.0.0" are broken by the byte-greater name
// so the choice does not depend on listing order.
func GreatestVersion(names []string) (string, bool) {
	var (
		best     *version.Version
		bestName string
	)
	for _, name := range names {
		v, err := version.NewVersion(name)
		if err != nil {
			continue
		}
		switch {
		case best == nil, v.GreaterThan(best):
		case v.Equal(best) && name > bestName:
		default:
			continue
		}
		best = v
		bestName = name
	}
	return bestName, best != nil
}
