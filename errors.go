package matchspec

import "fmt"

// ErrorKind classifies a matchspec parse failure.
type ErrorKind int

const (
	// ErrSyntax is the catch-all for malformed input that no more
	// specific kind describes.
	ErrSyntax ErrorKind = iota
	// ErrEmptyPackageName means no package name remained after the
	// optional channel prefix.
	ErrEmptyPackageName
	// ErrUnterminatedChannelPrefix means a channel/subdir prefix was
	// started but never closed with "::" or ":namespace:".
	ErrUnterminatedChannelPrefix
	// ErrUnknownSelectorOperator means an operator spelling is not one
	// of the recognized selectors.
	ErrUnknownSelectorOperator
	// ErrDanglingSelector means a selector operator has no version
	// literal after it.
	ErrDanglingSelector
	// ErrMalformedSeparator means a compound separator has no clause
	// after it, or mixes "," and "|" in one compound.
	ErrMalformedSeparator
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyPackageName:
		return "empty package name"
	case ErrUnterminatedChannelPrefix:
		return "unterminated channel prefix"
	case ErrUnknownSelectorOperator:
		return "unknown selector operator"
	case ErrDanglingSelector:
		return "selector without version"
	case ErrMalformedSeparator:
		return "malformed compound separator"
	default:
		return "syntax error"
	}
}

// ParseError describes a malformed matchspec. Input holds the offending
// substring and Offset its byte position within the parsed expression.
type ParseError struct {
	Kind   ErrorKind
	Input  string
	Offset int
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
	if e.Input != "" {
		msg += fmt.Sprintf(": %q", e.Input)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}
