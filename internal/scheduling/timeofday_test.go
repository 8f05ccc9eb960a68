package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("08:05")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(8, 5), got)
	assert.Equal(t, "08:05", got.String())

	got, err = ParseTimeOfDay("23:59:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(23, 59), got)

	for _, bad := range []string{"", "8", "24:00", "12:60", "ab:cd", "12:5", "12:00:99", "123:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, "Segunda-feira", Monday.String())
	assert.Equal(t, "Domingo", Sunday.String())
	assert.True(t, Sunday.Valid())
	assert.False(t, Weekday(7).Valid())
	assert.Equal(t, "Weekday(-1)", Weekday(-1).String())
}
