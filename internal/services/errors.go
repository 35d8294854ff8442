package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingDependency = errors.New("missing dependency")
	ErrDiscNotFound      = errors.New("disc not found")
	ErrScanFailed        = errors.New("scan failed")
	ErrRipFailed         = errors.New("rip failed")
	ErrConfiguration     = errors.New("configuration error")
	ErrExternalTool      = errors.New("external tool error")
)

// ExitError reports a subprocess that ran to completion with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s process exited with code %d", e.Command, e.Code)
}

// ExitCode returns the subprocess exit status carried by err, if any.
func ExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Remediation returns a user-facing next step for a classified error, or an
// empty string when nothing more useful than the message itself applies.
func Remediation(err error) string {
	switch {
	case errors.Is(err, ErrDiscNotFound):
		return "insert a DVD or pass the device explicitly with --dvdSource"
	case errors.Is(err, ErrScanFailed):
		return "check that the disc is readable and libdvdcss is installed"
	case errors.Is(err, ErrRipFailed):
		return "titles ripped before the failure were kept in the output directory"
	default:
		return ""
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
