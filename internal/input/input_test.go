package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositiveInt(t *testing.T) {
	n, err := PositiveInt(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	for _, bad := range []string{"0", "-3", "abc", "4.5", ""} {
		_, err := PositiveInt(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestPositiveDecimal_BothSeparators(t *testing.T) {
	v, raw, err := PositiveDecimal("80,5")
	require.NoError(t, err)
	assert.InDelta(t, 80.5, v, 1e-9)
	assert.Equal(t, "80.5", raw)

	v, _, err = PositiveDecimal("80.5")
	require.NoError(t, err)
	assert.InDelta(t, 80.5, v, 1e-9)

	for _, bad := range []string{"0", "-1.5", "weight", ""} {
		_, _, err := PositiveDecimal(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDate_RelativeDays(t *testing.T) {
	now := time.Date(2025, time.March, 1, 15, 4, 5, 0, time.UTC)

	d, err := Date("today", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = Date("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), d)

	d, err = Date("day before yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 27, 0, 0, 0, 0, time.UTC), d)
}

func TestDate_Manual(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	d, err := Date("07.05.2025", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 7, 0, 0, 0, 0, time.UTC), d)

	// Invalid manual dates are rejected, never defaulted to today.
	for _, bad := range []string{"31.02.2025", "00.05.2025", "7.13.2025", "1.2", "tomorrow", "aa.bb.cccc"} {
		_, err := Date(bad, now)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTimeOfDay(t *testing.T) {
	for _, ok := range []string{"00:00", "08:30", "23:59"} {
		v, err := TimeOfDay(ok)
		require.NoError(t, err)
		assert.Equal(t, ok, v)
	}
	for _, bad := range []string{"24:00", "12:60", "8:30", "12.30", "noon", ""} {
		_, err := TimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestChoice(t *testing.T) {
	opts := []string{"great", "ok", "so-so", "bad"}

	v, err := Choice("so-so", opts)
	require.NoError(t, err)
	assert.Equal(t, "so-so", v)

	// No fuzzy matching.
	_, err = Choice("So-So", opts)
	assert.Error(t, err)
	_, err = Choice("soso", opts)
	assert.Error(t, err)
}

func TestName(t *testing.T) {
	v, err := Name("  Push-ups  ")
	require.NoError(t, err)
	assert.Equal(t, "Push-ups", v)

	_, err = Name("   ")
	assert.Error(t, err)
}

func TestNameWithNotes(t *testing.T) {
	name, notes, err := NameWithNotes("massage, lower back, 30 min")
	require.NoError(t, err)
	assert.Equal(t, "massage", name)
	assert.Equal(t, "lower back, 30 min", notes)

	name, notes, err = NameWithNotes("sauna")
	require.NoError(t, err)
	assert.Equal(t, "sauna", name)
	assert.Empty(t, notes)

	_, _, err = NameWithNotes(", just notes")
	assert.Error(t, err)
}

func TestSortTimes(t *testing.T) {
	got := SortTimes([]string{"12:00", "08:30", "12:00", "07:15"})
	assert.Equal(t, []string{"07:15", "08:30", "12:00"}, got)
}
