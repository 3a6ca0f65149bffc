package palette

import "fmt"

// ConfigError reports an invalid constraint, size or base palette
// configuration. It is always fatal and never retried.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Msg
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientCandidatesError reports that the requested palette size
// exceeds the number of eligible candidates under the current constraints.
type InsufficientCandidatesError struct {
	Requested int // total colours requested, 0 when unknown at raise site
	Eligible  int // eligible candidates under the active constraints
}

func (e *InsufficientCandidatesError) Error() string {
	if e.Requested > 0 {
		return fmt.Sprintf("requested %d colours but only %d eligible candidates exist", e.Requested, e.Eligible)
	}
	return fmt.Sprintf("candidate pool exhausted: only %d eligible candidates exist", e.Eligible)
}
