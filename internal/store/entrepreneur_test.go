package store

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short passes through", in: "Ana Souza", max: MaxNome, want: "Ana Souza"},
		{name: "trims whitespace", in: "  Ana  ", max: MaxNome, want: "Ana"},
		{name: "exact length kept", in: strings.Repeat("a", 10), max: 10, want: strings.Repeat("a", 10)},
		{name: "ascii cut at budget", in: strings.Repeat("a", 12), max: 10, want: strings.Repeat("a", 10)},
		{name: "empty stays empty", in: "   ", max: 10, want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Truncate(tc.in, tc.max))
		})
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	t.Parallel()

	// A rune straddling the budget boundary is dropped whole, never split.
	in := strings.Repeat("x", 99) + "ç"
	got := Truncate(in, 100)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("x", 99), got)
	require.LessOrEqual(t, len(got), 100)

	accented := strings.Repeat("ã", 60)
	got = Truncate(accented, MaxNome)
	require.True(t, utf8.ValidString(got))
	require.LessOrEqual(t, len(got), MaxNome)
	require.Equal(t, strings.Repeat("ã", 50), got)
}

func TestTruncatePtr(t *testing.T) {
	t.Parallel()

	require.Nil(t, TruncatePtr(nil, MaxEmail))

	blank := "   "
	require.Nil(t, TruncatePtr(&blank, MaxEmail))

	long := strings.Repeat("é", 60)
	got := TruncatePtr(&long, MaxEstado)
	require.NotNil(t, got)
	require.True(t, utf8.ValidString(*got))
	require.Equal(t, strings.Repeat("é", 25), *got)
}

func TestSearchFilterNormalize(t *testing.T) {
	t.Parallel()

	f := SearchFilter{Page: 0, PageSize: 0}
	f.Normalize()
	require.Equal(t, 1, f.Page)
	require.Equal(t, 20, f.PageSize)

	f = SearchFilter{Page: -3, PageSize: 500}
	f.Normalize()
	require.Equal(t, 1, f.Page)
	require.Equal(t, 100, f.PageSize)
}
