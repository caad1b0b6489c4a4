package config

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Target holds the download destination
type Target struct {
	Dir string
}

// Flags returns CLI flags for target configuration
func (c *Target) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Target directory (default: ../data next to the executable)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("NGFETCH_DIR"),
		},
	}
}

// Resolve returns the configured directory, or the data directory one level
// above the directory holding the running executable.
func (c *Target) Resolve() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", goerr.Wrap(err, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return DefaultDir(exe), nil
}

// DefaultDir returns <dir of exe>/../data, cleaned
func DefaultDir(exe string) string {
	return filepath.Join(filepath.Dir(exe), "..", "data")
}
