package shortener_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/serroba/shortlink/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeGenerator(t *testing.T) {
	t.Run("produces codes of the configured length over the url-safe alphabet", func(t *testing.T) {
		gen, err := shortener.NewCodeGenerator(shortener.DefaultCodeLength)
		require.NoError(t, err)

		for range 100 {
			code := gen()

			assert.Len(t, code, shortener.DefaultCodeLength)

			for _, c := range code {
				assert.True(t, strings.ContainsRune(shortener.CodeAlphabet, c), "unexpected rune %q", c)
			}
		}
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		gen, err := shortener.NewCodeGenerator(shortener.DefaultCodeLength)
		require.NoError(t, err)

		const n = 200

		codes := make(chan string, n)

		var wg sync.WaitGroup

		for range n {
			wg.Add(1)

			go func() {
				defer wg.Done()
				codes <- gen()
			}()
		}

		wg.Wait()
		close(codes)

		seen := make(map[string]struct{}, n)
		for code := range codes {
			seen[code] = struct{}{}
		}

		assert.Len(t, seen, n)
	})

	t.Run("rejects invalid length", func(t *testing.T) {
		gen, err := shortener.NewCodeGenerator(0)

		assert.Nil(t, gen)
		assert.Error(t, err)
	})
}
