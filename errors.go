package goshape

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnresolvableElementType   = "unresolvable_element_type"
	CodeDefaultConstruction       = "default_construction"
	CodeUnsupportedCollectionType = "unsupported_collection_type"
	CodeTypeMismatch              = "type_mismatch"
	CodeInvalidEnumIndex          = "invalid_enum_index"
	CodeMissingProperty           = "missing_property"
	CodePropertySet               = "property_set"
	CodeDuplicateIdentifier       = "duplicate_identifier"
	CodeCyclicTypeGraph           = "cyclic_type_graph"
	// Malformed declarations: empty enums, clashing struct keys, bad registrations.
	CodeInvalidShape = "invalid_shape"
	// A context resolver failed before decoding.
	CodeContextResolution = "context_resolution"
)

// Issue describes a single failure.
type Issue struct {
	Path    string // JSON Pointer of the offending element or member (for example: /Tags/2).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"type":"main.User",
	// "identifier":"Age"}) for i18n and logging.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_property at /Nickname: ...
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the issue causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}
