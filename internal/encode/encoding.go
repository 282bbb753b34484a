package encode

import (
	"encoding/base64"

	"github.com/google/uuid"
)

const (
	// custom base64 encoding
	// identifiers end up in log fields and span attributes, keep them url and shell safe
	encoding = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-."
)

var Base64 = base64.NewEncoding(encoding).WithPadding(base64.NoPadding)

// ID renders id as a 22 character string.
func ID(id uuid.UUID) string {
	return Base64.EncodeToString(id[:])
}
