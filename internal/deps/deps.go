package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary juiceit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Remediation string
	Optional    bool
	// VersionArgs, when set, are run against the resolved binary and must
	// exit 0. A binary that is on PATH but cannot start counts as missing.
	VersionArgs []string
}

// Library defines a shared library whose presence is confirmed through a
// package-list query. When Match is set, the query output must contain it.
type Library struct {
	Name        string
	Query       []string
	Match       string
	Description string
	Remediation string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Remediation string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Remediation: strings.TrimSpace(req.Remediation),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		if len(req.VersionArgs) > 0 {
			if err := exec.CommandContext(ctx, path, req.VersionArgs...).Run(); err != nil { //nolint:gosec
				status.Detail = fmt.Sprintf("%s %s: %v", cmd, strings.Join(req.VersionArgs, " "), err)
				results = append(results, status)
				continue
			}
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckLibrary runs the library's package-list query and reports whether the
// library is installed. Query failures count as "not installed".
func CheckLibrary(ctx context.Context, lib Library) Status {
	status := Status{
		Name:        lib.Name,
		Command:     strings.Join(lib.Query, " "),
		Description: strings.TrimSpace(lib.Description),
		Remediation: strings.TrimSpace(lib.Remediation),
	}
	if len(lib.Query) == 0 || strings.TrimSpace(lib.Query[0]) == "" {
		status.Detail = "package query not configured"
		return status
	}
	output, err := exec.CommandContext(ctx, lib.Query[0], lib.Query[1:]...).Output() //nolint:gosec
	if err != nil {
		status.Detail = fmt.Sprintf("%s: %v", status.Command, err)
		return status
	}
	if lib.Match != "" && !strings.Contains(string(output), lib.Match) {
		status.Detail = fmt.Sprintf("%s not listed by %s", lib.Match, status.Command)
		return status
	}
	status.Available = true
	return status
}

// Missing returns the required statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
