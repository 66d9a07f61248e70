package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetingSlots(t *testing.T) {
	t.Run("Regular two-slot range", func(t *testing.T) {
		slots, err := MeetingSlots("Segunda", "17h20-18h10")

		assert.Nil(t, err)
		assert.Equal(t, []int{0, 1}, slots)
	})

	t.Run("Full evening spans four slots", func(t *testing.T) {
		slots, err := MeetingSlots("Quarta", "19h00-22h30")

		assert.Nil(t, err)
		assert.Equal(t, []int{18, 19, 20, 21}, slots)
	})

	t.Run("Saturday offsets into the last day block", func(t *testing.T) {
		slots, err := MeetingSlots("Sábado", "21h40-22h30")

		assert.Nil(t, err)
		assert.Equal(t, []int{45, 46}, slots)
	})

	t.Run("Unknown day", func(t *testing.T) {
		_, err := MeetingSlots("Domingo", "17h20-18h10")

		assert.NotNil(t, err)
	})

	t.Run("Malformed range", func(t *testing.T) {
		_, err := MeetingSlots("Segunda", "17h20")

		assert.NotNil(t, err)
	})

	t.Run("Unknown time", func(t *testing.T) {
		_, err := MeetingSlots("Segunda", "16h00-18h10")

		assert.NotNil(t, err)
	})
}

func TestSlotsConflict(t *testing.T) {
	assert.True(t, SlotsConflict([]int{0, 1}, []int{1, 2}))
	assert.False(t, SlotsConflict([]int{0, 1}, []int{2, 3}))
	assert.False(t, SlotsConflict(nil, []int{0}))
}
