package version

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

var ErrNoBuildInfo = errors.New("build information is not available")

// BuildInfo returns the build information
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return nil, ErrNoBuildInfo
	}

	return bi, nil
}

// Summary renders the main module, its version, the Go version and the VCS revision when the
// binary was stamped with one, e.g. "github.com/anoideaopen/introspect v1.2.0 go1.24.0 rev 1a2b3c4".
func Summary(bi *debug.BuildInfo) string {
	if bi == nil {
		return "unknown"
	}

	parts := []string{bi.Main.Path}
	if bi.Main.Version != "" {
		parts = append(parts, bi.Main.Version)
	}
	parts = append(parts, bi.GoVersion)

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			parts = append(parts, fmt.Sprintf("rev %.7s", s.Value))
		}
	}

	return strings.Join(parts, " ")
}
