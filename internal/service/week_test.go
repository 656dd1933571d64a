package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luvi2001/yfcapp/internal/apperr"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDateLayouts(t *testing.T) {
	want := date("2025-03-05")
	for _, in := range []string{
		"2025-03-05",
		"2025-03-05T18:30:00Z",
		"2025-03-05T23:30:00+05:30",
		"Wed Mar 05 2025",
		"Wed Mar 5 2025",
	} {
		got, err := ParseDate("weekStart", in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	_, err := ParseDate("weekStart", "05/03/2025")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = ParseDate("weekStart", "")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestWeekOf(t *testing.T) {
	for _, in := range []string{"2025-03-03", "2025-03-05", "2025-03-09"} {
		w := WeekOf(date(in))
		assert.True(t, date("2025-03-03").Equal(w.Start), in)
		assert.True(t, date("2025-03-09").Equal(w.End), in)
	}
}

func TestNormalizeWeek(t *testing.T) {
	w, err := NormalizeWeek("Mon Mar 03 2025", "Sun Mar 09 2025")
	require.NoError(t, err)
	assert.True(t, date("2025-03-03").Equal(w.Start))
	assert.True(t, date("2025-03-09").Equal(w.End))

	w2, err := NormalizeWeek("2025-03-04", "2025-03-08")
	require.NoError(t, err)
	assert.Equal(t, w, w2)

	_, err = NormalizeWeek("2025-03-03", "2025-03-12")
	var fe *apperr.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "weekEnd", fe.Field)
}

func TestParseMonthYear(t *testing.T) {
	y, m, err := ParseMonthYear("3", "2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.March, m)

	for _, bad := range [][2]string{{"13", "2025"}, {"0", "2025"}, {"march", "2025"}, {"3", "25x"}} {
		_, _, err := ParseMonthYear(bad[0], bad[1])
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, bad)
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2025, time.December)
	assert.True(t, date("2025-12-01").Equal(from))
	assert.True(t, date("2026-01-01").Equal(to))
}
