package parser

import (
	"fmt"

	"github.com/scriptlang/transpiler/internal/token"
)

// ParseError is a single parser failure with position information.
type ParseError struct {
	Message string
	Code    string
	Pos     token.Position
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

// NewParseError constructs a ParseError.
func NewParseError(pos token.Position, message, code string) *ParseError {
	return &ParseError{Message: message, Code: code, Pos: pos}
}

// Error codes for programmatic handling.
const (
	ErrUnexpectedToken   = "E_UNEXPECTED_TOKEN"
	ErrNoPrefixParse     = "E_NO_PREFIX_PARSE"
	ErrMissingRParen     = "E_MISSING_RPAREN"
	ErrMissingRBracket   = "E_MISSING_RBRACKET"
	ErrMissingColon      = "E_MISSING_COLON"
	ErrMissingArrow      = "E_MISSING_ARROW"
	ErrExpectedIdent     = "E_EXPECTED_IDENT"
	ErrExpectedType      = "E_EXPECTED_TYPE"
	ErrRecursionExceeded = "E_RECURSION_DEPTH_EXCEEDED"
	ErrBadIndent         = "E_BAD_INDENT"
)
