package services_test

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trackingFormat = regexp.MustCompile(`^TRACK-\d+-[A-Z0-9]{9}$`)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestTrackingNumberGenerator_Generate(t *testing.T) {
	t.Run("matches the tracking format", func(t *testing.T) {
		gen := services.NewTrackingNumberGenerator()

		for range 50 {
			tn, err := gen.Generate()
			require.NoError(t, err)
			assert.Regexp(t, trackingFormat, tn.String())
		}
	})

	t.Run("uses the clock in milliseconds", func(t *testing.T) {
		at := time.UnixMilli(1767261600123)
		entropy := bytes.NewReader(bytes.Repeat([]byte{0}, 64))
		gen := services.NewTrackingNumberGeneratorWith(func() time.Time { return at }, entropy)

		tn, err := gen.Generate()

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tn.String(), "TRACK-1767261600123-"), tn.String())
		assert.Regexp(t, trackingFormat, tn.String())
	})

	t.Run("consecutive numbers differ", func(t *testing.T) {
		gen := services.NewTrackingNumberGenerator()

		a, err := gen.Generate()
		require.NoError(t, err)
		b, err := gen.Generate()
		require.NoError(t, err)

		assert.NotEqual(t, a.String(), b.String())
	})

	t.Run("propagates entropy failure", func(t *testing.T) {
		gen := services.NewTrackingNumberGeneratorWith(time.Now, failingReader{})

		_, err := gen.Generate()

		require.ErrorContains(t, err, "entropy exhausted")
	})
}
