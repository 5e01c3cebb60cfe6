package relax

// errors.go defines the typed errors the layout container raises on
// precondition violations. Everything else — divergent integration, high
// residual energy, oscillation — is reported through the energy log
// instead of an error, since it is a property of the configuration, not
// a misuse of the API.

import "fmt"

// ConfigError reports a precondition violation in a Layout mutation, such
// as updating constraints tagged with more than one tag id.
type ConfigError struct {
	Op  string
	Msg string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("relax: %s: %s", e.Op, e.Msg) }

func errTagIDMismatch(op string) *ConfigError {
	return &ConfigError{Op: op, Msg: "constraints do not all share the same tag id"}
}

func errTagIDNegative(op string) *ConfigError {
	return &ConfigError{Op: op, Msg: "tag id must be >= 0"}
}

func errDuplicateMassName(op, name string) *ConfigError {
	return &ConfigError{Op: op, Msg: fmt.Sprintf("mass name %q is already owned by a different mass", name)}
}
