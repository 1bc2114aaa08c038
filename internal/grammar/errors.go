package grammar

import "fmt"

// SyntaxError reports a malformed pattern, with the location participle's
// lexer/parser attached to the underlying failure.
type SyntaxError struct {
	Kind    string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error (%v): %v", e.Kind, e.Message)
}

// wrapParseError classifies a participle failure into a SyntaxError. The
// participle error already carries position information in its message,
// so it is preserved verbatim rather than re-derived.
func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	return SyntaxError{Kind: "MalformedPattern", Message: err.Error()}
}
