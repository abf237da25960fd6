package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTouchedSlots(t *testing.T) {
	testCases := []struct {
		name string
		iv   Interval
		want []TimeSlot
	}{
		{name: "inside morning", iv: Interval{600, 660}, want: []TimeSlot{SlotMorning}},
		{name: "ends at noon", iv: Interval{660, 720}, want: []TimeSlot{SlotMorning}},
		{name: "starts at noon", iv: Interval{720, 780}, want: []TimeSlot{SlotAfternoon}},
		{name: "crosses noon", iv: Interval{690, 780}, want: []TimeSlot{SlotMorning, SlotAfternoon}},
		{name: "ends at 19:00", iv: Interval{1080, 1140}, want: []TimeSlot{SlotAfternoon}},
		{name: "starts at 19:00", iv: Interval{1140, 1200}, want: []TimeSlot{SlotEvening}},
		{name: "whole day", iv: Interval{300, 1440}, want: []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}},
		{name: "before morning", iv: Interval{0, 360}, want: []TimeSlot{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TouchedSlots(tc.iv))
		})
	}
}

func TestSlotRangesCoverDay(t *testing.T) {
	slots := AllSlots()
	for i := 1; i < len(slots); i++ {
		prev, _ := slots[i-1].Range()
		cur, _ := slots[i].Range()
		assert.Equal(t, prev.End, cur.Start, "slots must be contiguous")
	}
	last, _ := slots[len(slots)-1].Range()
	assert.Equal(t, MinutesPerDay, last.End)
}

func TestSlotFlags(t *testing.T) {
	f := SlotFlags{Morning: true}
	assert.True(t, f.Get(SlotMorning))
	assert.False(t, f.Get(SlotAfternoon))

	g := f.With(SlotEvening, true)
	assert.True(t, g.Get(SlotEvening))
	assert.False(t, f.Get(SlotEvening), "With must not mutate the receiver")
	assert.False(t, g.Get(TimeSlot("night")))
}
