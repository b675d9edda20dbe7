package xmlstream

import (
	"errors"
	"fmt"
)

// ErrUnboundPrefix reports usage of an undeclared namespace prefix in a
// tag name.
var ErrUnboundPrefix = errors.New("unbound namespace prefix in tag name")

// ErrUnboundAttrPrefix reports usage of an undeclared namespace prefix in
// an attribute name.
var ErrUnboundAttrPrefix = errors.New("unbound namespace prefix in attribute name")

// ErrDuplicateAttr reports two attributes resolving to the same name and
// namespace on one element.
var ErrDuplicateAttr = errors.New("duplicate attribute")

var (
	errSpaceInAttrName   = errors.New("space in attribute name")
	errAttrDelimiter     = errors.New("attribute value not enclosed in ' or \"")
	errExpectedTagClose  = errors.New("expected '>' to close tag")
	errExpectedCloseOrWS = errors.New("expected '>' to close tag, or whitespace")
	errMalformed         = errors.New("malformed XML")
	errCDATAOpening      = errors.New("invalid CDATA opening sequence")
	errCommentOpening    = errors.New("expected second '-' to start comment")
	errCommentDashes     = errors.New("no more than one adjacent '-' allowed in a comment")
	errInvalidDoctype    = errors.New("invalid DOCTYPE")
)

// SyntaxError reports a malformed construct with the position at which the
// tokenizer gave up. A parser that returned a SyntaxError is permanently
// failed and produces no further events.
type SyntaxError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("xml syntax error at line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
