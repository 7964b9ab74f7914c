package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateQuantity(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    float64
		wantErr error
	}{
		{"integer", []string{"3"}, 3, nil},
		{"fraction", []string{"3/4"}, 0.75, nil},
		{"whole and fraction", []string{"4", "1/2"}, 4.5, nil},
		{"hyphenated whole and fraction", []string{"4-1/2"}, 4.5, nil},
		{"all tokens are added", []string{"1", "2", "3"}, 6, nil},
		{"decimal", []string{"1.25"}, 1.25, nil},
		{"only first hyphen rewritten", []string{"1-2-3"}, 0, ErrMalformedQuantity},
		{"hyphen in later token", []string{"1", "2-3"}, 0, ErrMalformedQuantity},
		{"empty", nil, 0, ErrNoQuantity},
		{"word", []string{"about"}, 0, ErrMalformedQuantity},
		{"zero denominator", []string{"1/0"}, 0, ErrMalformedQuantity},
		{"dangling slash", []string{"1/"}, 0, ErrMalformedQuantity},
		{"trailing hyphen", []string{"4-"}, 0, ErrMalformedQuantity},
		{"signed number", []string{"+2"}, 0, ErrMalformedQuantity},
		{"exponent", []string{"1e3"}, 0, ErrMalformedQuantity},
		{"two dots", []string{"1.2.3"}, 0, ErrMalformedQuantity},
		{"code is not evaluated", []string{"alert(1)"}, 0, ErrMalformedQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateQuantity(tt.tokens)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluateQuantityLeavesInputAlone(t *testing.T) {
	tokens := []string{"4-1/2"}
	_, err := EvaluateQuantity(tokens)
	require.NoError(t, err)
	assert.Equal(t, "4-1/2", tokens[0])
}
