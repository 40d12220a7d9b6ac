package rawtx

import "errors"

// Decode failures wrap one of these sentinels with field and offset context.
// Callers branch with errors.Is; a failed decode never returns a partial
// transaction.
var (
	// ErrInsufficientData means a field required more bytes than remained.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrTruncatedVarInt means a compact size prefix announced continuation
	// bytes the buffer cannot supply.
	ErrTruncatedVarInt = errors.New("truncated varint")

	// ErrTrailingData means bytes remained after the final field.
	ErrTrailingData = errors.New("trailing data")

	// ErrInvalidEncoding means the input string is not valid hex or is too
	// short to contain the version field.
	ErrInvalidEncoding = errors.New("invalid encoding")
)
