package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorString(t *testing.T) {
	tests := []struct {
		anchor Anchor
		want   string
	}{
		{SheetAnchor("Index"), "'Index'!A1"},
		{Anchor{Sheet: "GET /pets", Row: 3, Col: 2}, "'GET /pets'!B3"},
		{SheetAnchor("O'Brien"), "'O''Brien'!A1"},
		{Anchor{Sheet: "x"}, "'x'!A1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.anchor.String())
	}
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		ref  string
		want Anchor
	}{
		{"'Index'!A1", SheetAnchor("Index")},
		{"Sheet1!$C$10", Anchor{Sheet: "Sheet1", Row: 10, Col: 3}},
		{"#'O''Brien'!B2", Anchor{Sheet: "O'Brien", Row: 2, Col: 2}},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseAnchorErrors(t *testing.T) {
	for _, ref := range []string{"A1", "!A1", "'S'!", "'S'!11"} {
		_, err := ParseAnchor(ref)
		assert.Error(t, err, ref)
	}
}

func TestAnchorRoundTrip(t *testing.T) {
	a := Anchor{Sheet: "createPet (2)", Row: 14, Col: 27}
	got, err := ParseAnchor(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, got)
}
