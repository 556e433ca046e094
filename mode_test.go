package fdio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ParseMode_Matches_Translation_Table(t *testing.T) {
	cases := []struct {
		token string
		want  Mode
	}{
		{"r", ModeRead},
		{"r+", ModeReadWrite},
		{"w", ModeWrite | ModeCreate | ModeTrunc},
		{"w+", ModeReadWrite | ModeCreate | ModeTrunc},
		{"a", ModeWrite | ModeCreate | ModeAppend},
		{"a+", ModeReadWrite | ModeCreate | ModeAppend},
		{"rb", ModeRead | ModeBinary},
		{"r+b", ModeReadWrite | ModeBinary},
		{"wb", ModeWrite | ModeCreate | ModeTrunc | ModeBinary},
		{"w+b", ModeReadWrite | ModeCreate | ModeTrunc | ModeBinary},
		{"ab", ModeWrite | ModeCreate | ModeAppend | ModeBinary},
		{"a+b", ModeReadWrite | ModeCreate | ModeAppend | ModeBinary},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseMode(tc.token)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func Test_ParseMode_Rejects_Tokens_Outside_The_Grammar(t *testing.T) {
	tokens := []string{
		"", "b", "+", "+r", "x", "R", "W+",
		"rw", "wa", "ra", "rr",
		"r++", "w+bb", "rbb", "br", "bw",
		"wb+", // b must be the final character
		" r", "r ", "r\n",
		"read", "write", "append",
	}

	for _, token := range tokens {
		t.Run("token_"+token, func(t *testing.T) {
			_, err := ParseMode(token)
			require.ErrorIs(t, err, ErrInvalidMode, "token %q", token)
		})
	}
}

func Test_ParseMode_Is_Deterministic(t *testing.T) {
	first, err := ParseMode("a+b")
	require.NoError(t, err)

	for range 100 {
		got, err := ParseMode("a+b")
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}

func Test_MustParseMode_Panics_On_Invalid_Token(t *testing.T) {
	require.Panics(t, func() { MustParseMode("q") })
}

func Test_MustParseMode_Returns_Table_Value_For_Valid_Token(t *testing.T) {
	require.Equal(t, ModeWrite|ModeCreate|ModeTrunc, MustParseMode("w"))
}

func Test_Mode_Predicates_Report_Component_Flags(t *testing.T) {
	m := MustParseMode("a+b")

	require.True(t, m.HasReadWrite())
	require.True(t, m.HasAppend())
	require.True(t, m.HasCreate())
	require.True(t, m.HasBinary())
	require.True(t, m.Writable())
	require.False(t, m.HasRead())
	require.False(t, m.HasWrite())
	require.False(t, m.HasTrunc())

	require.False(t, MustParseMode("r").Writable())
}

func Test_Mode_String_Round_Trips_Grammar_Tokens(t *testing.T) {
	for _, token := range []string{"r", "r+", "w", "w+", "a", "a+", "rb", "w+b"} {
		require.Equal(t, token, MustParseMode(token).String())
	}
}
