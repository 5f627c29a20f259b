package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLikePrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "al", "al"},
		{"Percent", "50%", "50\\%"},
		{"Underscore", "a_b", "a\\_b"},
		{"Backslash", `a\b`, `a\\b`},
		{"AllSpecials", `%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLikePrefix(tt.in))
		})
	}
}

func TestSearchPatternAnchorsAtStart(t *testing.T) {
	// Search is prefix matching, not substring matching: the pattern carries
	// the term verbatim at the start and the only wildcard is the trailing
	// one appended by the query, so "al" matches names starting with "al",
	// never "Salad" by containment.
	pattern := escapeLikePrefix("al") + "%"
	assert.Equal(t, "al%", pattern)
	assert.True(t, strings.HasPrefix(pattern, "al"))
	assert.False(t, strings.ContainsAny(pattern[:len(pattern)-1], "%_"))
}

func TestSearchPatternEscapesUserWildcards(t *testing.T) {
	// A term containing LIKE wildcards stays a literal prefix: only the
	// trailing wildcard appended by the query may match arbitrarily.
	pattern := escapeLikePrefix("a_c%") + "%"
	assert.Equal(t, `a\_c\%%`, pattern)
}
