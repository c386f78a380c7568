// Package misc keeps program identity, values are set by the linker.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name: either set at build time or derived from
// executable name.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}
