package preflight

import (
	"context"
	"fmt"
	"strings"

	"juiceit/internal/config"
	"juiceit/internal/deps"
	"juiceit/internal/services"
)

// Verify runs the dependency checks and the output directory check. The
// returned error wraps services.ErrMissingDependency or
// services.ErrConfiguration and lists a remediation for every failure.
func Verify(ctx context.Context, cfg config.Config) error {
	if missing := deps.Missing(CheckSystemDeps(ctx, cfg)); len(missing) > 0 {
		return missingError(missing)
	}
	if result := CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir); !result.Passed {
		return services.Wrap(services.ErrConfiguration, "preflight", result.Name, result.Detail, nil)
	}
	return nil
}

func missingError(missing []deps.Status) error {
	lines := make([]string, 0, len(missing))
	for _, status := range missing {
		line := status.Remediation
		if line == "" {
			line = fmt.Sprintf("%s is not available", status.Name)
		}
		if status.Detail != "" {
			line = fmt.Sprintf("%s (%s)", line, status.Detail)
		}
		lines = append(lines, line)
	}
	return services.Wrap(services.ErrMissingDependency, "preflight", "", strings.Join(lines, "; "), nil)
}
