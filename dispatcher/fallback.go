package dispatcher

import (
	"encoding/json"

	"github.com/mocksmith/mocksmith/mockerrors"
)

// FallbackSpecification is the decoded rules payload of a FALLBACK
// dispatcher: the inner dispatcher/rules pair to try first, and the name of
// the example response to serve when it matches nothing.
type FallbackSpecification struct {
	Dispatcher      string `json:"dispatcher"`
	DispatcherRules string `json:"dispatcherRules"`
	Fallback        string `json:"fallback"`
}

// ParseFallbackSpecification decodes the JSON rules string of a FALLBACK
// dispatcher. A decoding failure is reported as a [mockerrors.DispatchError];
// callers treat it as recoverable and keep the envelope's own strategy.
func ParseFallbackSpecification(rules string) (*FallbackSpecification, error) {
	var spec FallbackSpecification
	if err := json.Unmarshal([]byte(rules), &spec); err != nil {
		return nil, &mockerrors.DispatchError{
			Rules:   rules,
			Message: "malformed fallback envelope",
			Cause:   err,
		}
	}
	return &spec, nil
}
