package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/forkify/internal/domain"
)

func TestRescale(t *testing.T) {
	in := []domain.ParsedIngredient{
		{Quantity: domain.Amount(2), Unit: "cup", Name: "flour"},
		{Unit: "cup", Name: "of stock"},
	}

	got, err := Rescale(in, 4, 8)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.ParsedIngredient{Quantity: domain.Amount(4), Unit: "cup", Name: "flour"}, got[0])
	assert.False(t, got[1].Quantity.Valid, "unknown quantity must stay unknown")
	assert.Equal(t, 2.0, in[0].Quantity.Value, "input must not be modified")
}

func TestRescaleRoundTrip(t *testing.T) {
	in := []domain.ParsedIngredient{
		{Quantity: domain.Amount(4.5), Unit: "cup", Name: "self-raising flour"},
		{Quantity: domain.Amount(1), Name: "a pinch of salt"},
		{Quantity: domain.Amount(0.333), Unit: "tsp", Name: "nutmeg"},
	}

	servings := []int{1, 2, 3, 4, 7, 12, 100}
	for _, s1 := range servings {
		for _, s2 := range servings {
			there, err := Rescale(in, s1, s2)
			require.NoError(t, err)
			back, err := Rescale(there, s2, s1)
			require.NoError(t, err)
			for i := range in {
				assert.InDelta(t, in[i].Quantity.Value, back[i].Quantity.Value, 1e-9, "s1=%d s2=%d", s1, s2)
				assert.Equal(t, in[i].Unit, back[i].Unit)
				assert.Equal(t, in[i].Name, back[i].Name)
			}
		}
	}
}

func TestRescaleRejectsNonPositive(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
	}{
		{"zero target", 4, 0},
		{"negative target", 4, -1},
		{"zero base", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rescale(nil, tt.from, tt.to)
			assert.ErrorIs(t, err, domain.ErrInvalidServings)
		})
	}
}

func TestRescaleParsedFraction(t *testing.T) {
	in := ParseAll([]string{"1/2 onion, chopped"})

	got, err := Rescale(in, 4, 8)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Amount(1), got[0].Quantity)
	assert.Equal(t, "onion, chopped", got[0].Name)
}
