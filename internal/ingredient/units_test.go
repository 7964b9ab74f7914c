package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2 tablespoons sugar", "2 tbsp sugar"},
		{"1 tablespoon oil", "1 tbsp oil"},
		{"8 ounces cheese and 1 ounce butter", "8 oz cheese and 1 oz butter"},
		{"2 teaspoons salt, 1 teaspoon pepper", "2 tsp salt, 1 tsp pepper"},
		{"3 cups milk, 2 cups water", "3 cup milk, 2 cup water"},
		{"2 pounds beef", "2 pound beef"},
		{"1 kg flour", "1 kg flour"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeUnits(tt.in))
		})
	}
}

func TestNormalizeUnitsIdempotent(t *testing.T) {
	lines := []string{
		"4 1/2 cups self-raising flour",
		"2 tablespoons and 3 teaspoons",
		"1 pound 4 ounces",
		"a cup of tea",
		"tablespoonsful of teaspoons",
	}
	for _, l := range lines {
		once := NormalizeUnits(l)
		assert.Equal(t, once, NormalizeUnits(once), l)
	}
}

func TestUnits(t *testing.T) {
	assert.Equal(t, []string{"tbsp", "oz", "tsp", "cup", "pound", "kg", "g"}, Units())
	for _, u := range Units() {
		assert.True(t, IsUnit(u), u)
	}
	assert.False(t, IsUnit("cups"))
	assert.False(t, IsUnit("pinch"))
}

func TestSubstitutionsIsACopy(t *testing.T) {
	subs := Substitutions()
	subs[0].Short = "broken"
	assert.Equal(t, "tbsp", Substitutions()[0].Short)
}
