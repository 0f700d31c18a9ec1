package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(day time.Time, startHour, endHour int) Window {
	return Window{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestSlots_Basic(t *testing.T) {
	day := date(2024, time.June, 10)
	w := window(day, 9, 11)

	slots := Slots(w, 30*time.Minute, 30*time.Minute)

	require.Len(t, slots, 4)
	assert.Equal(t, day.Add(9*time.Hour), slots[0])
	assert.Equal(t, day.Add(10*time.Hour+30*time.Minute), slots[3])
}

func TestSlots_LastSlotMustFitDuration(t *testing.T) {
	day := date(2024, time.June, 10)
	w := window(day, 9, 10)

	// 45-minute service on a 30-minute grid: only 09:00 fits, 09:30
	// would run past the window end.
	slots := Slots(w, 45*time.Minute, 30*time.Minute)

	require.Len(t, slots, 1)
	assert.Equal(t, day.Add(9*time.Hour), slots[0])
}

func TestSlots_WindowShorterThanDuration(t *testing.T) {
	day := date(2024, time.June, 10)
	w := Window{
		Start: day.Add(9 * time.Hour),
		End:   day.Add(9*time.Hour + 20*time.Minute),
	}

	assert.Empty(t, Slots(w, 30*time.Minute, 30*time.Minute))
}

func TestSlots_InvalidInputs(t *testing.T) {
	day := date(2024, time.June, 10)
	w := window(day, 9, 17)

	assert.Nil(t, Slots(w, 0, 30*time.Minute))
	assert.Nil(t, Slots(w, 30*time.Minute, 0))
	assert.Nil(t, Slots(w, -time.Minute, 30*time.Minute))
}

func TestSlots_Ordered(t *testing.T) {
	day := date(2024, time.June, 10)
	w := window(day, 9, 17)

	slots := Slots(w, 30*time.Minute, 30*time.Minute)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]))
	}
}
