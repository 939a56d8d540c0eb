package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {

	for _, c := range Categories {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)

		got, err = ParseCategory(c.Element())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	_, err := ParseCategory("Paragraph")
	require.Error(t, err)
}

func TestTypeFor(t *testing.T) {

	tests := []struct {
		cat     Category
		subtype string
		typ     string
		custom  string
	}{
		{CategoryText, "", "", ""},
		{CategoryText, "heading", "heading", ""},
		{CategoryText, "address-rcpt", "other", "subtype:address-rcpt"},
		{CategoryGraphic, "stamp", "stamp", ""},
		{CategoryTable, "invoice", "", "subtype:invoice"},
	}

	for _, tc := range tests {
		typ, custom := tc.cat.TypeFor(tc.subtype)
		require.Equal(t, tc.typ, typ, "%s:%s", tc.cat, tc.subtype)
		require.Equal(t, tc.custom, custom, "%s:%s", tc.cat, tc.subtype)
	}
}
