package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"ten digit domestic", "2814562323", "+12814562323", true},
		{"ten digit with punctuation", "(281) 456-2323", "+12814562323", true},
		{"eleven digits with country code", "12814562323", "+12814562323", true},
		{"already canonical", "+12814562323", "+12814562323", true},
		{"canonical with spaces", "+1 281 456 2323", "+12814562323", true},
		{"international", "+44 20 7183 8750", "+442071838750", true},
		{"empty", "", "", false},
		{"letters only", "call me maybe", "", false},
		{"three digits", "911", "", false},
		{"nine digits", "281456232", "", false},
		{"eleven digits wrong country prefix", "92814562323", "", false},
		{"plus but too short", "+1234567", "", false},
		{"plus but too long", "+1234567890123456", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first, ok := Normalize("+1 (281) 456-2323")
	require.True(t, ok)

	second, ok := Normalize(first)
	require.True(t, ok)
	assert.Equal(t, first, second)
}
