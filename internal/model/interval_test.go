package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "touching at end", a: Interval{600, 660}, b: Interval{660, 720}, want: false},
		{name: "touching at start", a: Interval{660, 720}, b: Interval{600, 660}, want: false},
		{name: "partial overlap", a: Interval{570, 630}, b: Interval{600, 660}, want: true},
		{name: "contained", a: Interval{600, 660}, b: Interval{610, 620}, want: true},
		{name: "identical", a: Interval{600, 660}, b: Interval{600, 660}, want: true},
		{name: "disjoint", a: Interval{0, 60}, b: Interval{120, 180}, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.a, tc.b))
			assert.Equal(t, tc.want, Overlaps(tc.b, tc.a), "overlap must be symmetric")
		})
	}
}

func TestNewInterval(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		iv, err := NewInterval(600, 660)
		require.NoError(t, err)
		assert.Equal(t, 60, iv.Duration())
	})

	t.Run("empty interval rejected", func(t *testing.T) {
		_, err := NewInterval(600, 600)
		var invalid *InvalidIntervalError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, Interval{600, 600}, invalid.Interval)
	})

	t.Run("reversed interval rejected", func(t *testing.T) {
		_, err := NewInterval(700, 600)
		var invalid *InvalidIntervalError
		assert.True(t, errors.As(err, &invalid))
	})
}

func TestParseInterval(t *testing.T) {
	iv, err := ParseInterval("09:30-10:30")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 570, End: 630}, iv)
	assert.Equal(t, "09:30-10:30", iv.String())

	iv, err = ParseInterval("19:00-24:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 1140, End: 1440}, iv)

	_, err = ParseInterval("10:00")
	assert.Error(t, err)

	_, err = ParseInterval("10:61-11:00")
	assert.Error(t, err)

	_, err = ParseInterval("11:00-10:00")
	var invalid *InvalidIntervalError
	assert.True(t, errors.As(err, &invalid))
}
