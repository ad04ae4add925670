package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than cap", in: "abc", max: 5, want: "abc"},
		{name: "exactly cap", in: "abcde", max: 5, want: "abcde"},
		{name: "longer than cap", in: "abcdef", max: 5, want: "abcde"},
		{name: "multibyte counted as characters", in: "ñandú€x", max: 6, want: "ñandú€"},
		{name: "zero cap leaves string", in: "abcdef", max: 0, want: "abcdef"},
		{name: "empty", in: "", max: 3, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateRunes(tt.in, tt.max))
		})
	}
}

func TestCleanOptional(t *testing.T) {
	t.Run("blank becomes nil", func(t *testing.T) {
		assert.Nil(t, CleanOptional("", 10))
		assert.Nil(t, CleanOptional("   \t\n", 10))
	})

	t.Run("trimmed before capping", func(t *testing.T) {
		got := CleanOptional("   hello world   ", 5)
		require.NotNil(t, got)
		assert.Equal(t, "hello", *got)
	})

	t.Run("uncapped", func(t *testing.T) {
		got := CleanOptional(" long comment ", 0)
		require.NotNil(t, got)
		assert.Equal(t, "long comment", *got)
	})
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, "x", Deref(ToPtr("x")))
	assert.Equal(t, 0, Deref[int](nil))
}

func TestParseDateUTC(t *testing.T) {
	d, ok := ParseDateUTC("2024-03-10")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024-13-01", "10/03/2024", "2024-02-30", "yesterday"} {
		_, ok := ParseDateUTC(bad)
		assert.False(t, ok, bad)
	}
}

func TestStartOfNextDay(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		StartOfNextDay(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)),
	)
	assert.Equal(t,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		StartOfNextDay(time.Date(2024, 12, 31, 23, 59, 59, 999, time.UTC)),
	)
}
