// Package idgen generates the short random identifiers campus attaches to
// outgoing requests and export audit rows.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the kinds of identifiers campus mints.
const (
	RequestPrefix = "req-"
	ExportPrefix  = "exp-"
)

// Alphabet is the character set of the random part.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters after the prefix.
const Length = 12

// GenerateWithPrefix returns prefix followed by Length random characters.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// RequestID returns an id for the X-Request-ID header.
func RequestID() (string, error) { return GenerateWithPrefix(RequestPrefix) }

// ExportID returns an id for an export audit row.
func ExportID() (string, error) { return GenerateWithPrefix(ExportPrefix) }
