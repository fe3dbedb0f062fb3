package preflight

import (
	"context"
	"strings"

	"rsvpsend/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config. inputPath
// overrides paths.input_file when non-empty.
func RunAll(ctx context.Context, cfg *config.Config, inputPath string) []Result {
	if cfg == nil {
		return nil
	}
	if strings.TrimSpace(inputPath) == "" {
		inputPath = cfg.Paths.InputFile
	}

	return []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckInputFile(inputPath),
		CheckNtfy(ctx, cfg.Notifications.NtfyTopic),
	}
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
