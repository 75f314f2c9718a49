package shortener

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// DefaultCodeLength is the length of generated codes when none is configured.
const DefaultCodeLength = 10

// CodeAlphabet is the set of characters a generated code is drawn from.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

// CodeGenerator generates random short codes. Implementations must be safe for concurrent use.
type CodeGenerator func() string

// NewCodeGenerator returns a nanoid generator producing codes of the given length
// over CodeAlphabet, backed by crypto/rand.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.Standard(length)
	if err != nil {
		return nil, fmt.Errorf("code generator: %w", err)
	}

	return CodeGenerator(gen), nil
}
