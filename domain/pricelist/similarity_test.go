package pricelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescriptionSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Filtro de aceite", "Filtro de aceite", 100},
		{"case and whitespace insensitive", "  FILTRO DE ACEITE ", "filtro de aceite", 100},
		{"both empty", "", "", 100},
		{"one side empty", "Filtro", "", 0},
		{"single substitution", "abc", "abd", 66.67},
		{"kitten sitting", "kitten", "sitting", 57.14},
		{"nothing in common", "aaa", "zzz", 0},
		{"accented runes", "Bujía", "Bujia", 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DescriptionSimilarity(tt.a, tt.b))
		})
	}
}

func TestDescriptionSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Filtro de aceite", "Filtro aceite"},
		{"kitten", "sitting"},
		{"", "algo"},
	}
	for _, p := range pairs {
		require.Equal(t, DescriptionSimilarity(p[0], p[1]), DescriptionSimilarity(p[1], p[0]))
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		require.Equalf(t, tt.want, levenshteinDistance(tt.a, tt.b), "distance(%q, %q)", tt.a, tt.b)
	}
}
