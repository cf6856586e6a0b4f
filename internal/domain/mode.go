package domain

import "fmt"

// ResponseMode selects how a successful upstream completion is returned to the caller.
type ResponseMode string

const (
	// ResponseModeStrict returns {"reply","model"} and treats an empty reply as an error.
	ResponseModeStrict ResponseMode = "strict"
	// ResponseModePassthrough returns the upstream JSON unchanged.
	ResponseModePassthrough ResponseMode = "passthrough"
)

// ParseResponseMode maps a configuration value to a ResponseMode. Empty means strict.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch ResponseMode(s) {
	case "", ResponseModeStrict:
		return ResponseModeStrict, nil
	case ResponseModePassthrough:
		return ResponseModePassthrough, nil
	}
	return "", fmt.Errorf("domain: unknown response mode %q", s)
}
