package model

// TimeSlot канонический отрезок дня
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"   // 06:00-12:00
	SlotAfternoon TimeSlot = "afternoon" // 12:00-19:00
	SlotEvening   TimeSlot = "evening"   // 19:00-24:00
)

// Границы отрезков. На них завязаны проверки доступности, менять нельзя.
var slotRanges = map[TimeSlot]Interval{
	SlotMorning:   {Start: 360, End: 720},
	SlotAfternoon: {Start: 720, End: 1140},
	SlotEvening:   {Start: 1140, End: 1440},
}

// AllSlots возвращает отрезки в порядке следования в течение дня
func AllSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}
}

// Range возвращает канонический интервал отрезка
func (s TimeSlot) Range() (Interval, bool) {
	iv, ok := slotRanges[s]
	return iv, ok
}

// Valid проверяет, что отрезок известен
func (s TimeSlot) Valid() bool {
	_, ok := slotRanges[s]
	return ok
}

// TouchedSlots возвращает отрезки, пересекающиеся с интервалом.
// Например 11:30-13:00 задевает утро и день.
func TouchedSlots(iv Interval) []TimeSlot {
	touched := make([]TimeSlot, 0, len(slotRanges))
	for _, slot := range AllSlots() {
		if Overlaps(slotRanges[slot], iv) {
			touched = append(touched, slot)
		}
	}
	return touched
}

// SlotFlags флаги по трём отрезкам дня
type SlotFlags struct {
	Morning   bool `json:"morning"`
	Afternoon bool `json:"afternoon"`
	Evening   bool `json:"evening"`
}

// AllSlotFlags возвращает флаги со всеми отрезками, выставленными в true
func AllSlotFlags() SlotFlags {
	return SlotFlags{Morning: true, Afternoon: true, Evening: true}
}

// Get возвращает флаг отрезка. Для неизвестного отрезка false.
func (f SlotFlags) Get(slot TimeSlot) bool {
	switch slot {
	case SlotMorning:
		return f.Morning
	case SlotAfternoon:
		return f.Afternoon
	case SlotEvening:
		return f.Evening
	}
	return false
}

// With возвращает копию с изменённым флагом
func (f SlotFlags) With(slot TimeSlot, value bool) SlotFlags {
	switch slot {
	case SlotMorning:
		f.Morning = value
	case SlotAfternoon:
		f.Afternoon = value
	case SlotEvening:
		f.Evening = value
	}
	return f
}
