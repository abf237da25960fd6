package gridview

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

// Prefix общий префикс callback data сетки
const Prefix = "grid:"

// Action действие над сеткой
type Action string

const (
	ActionToggle         Action = "tg"
	ActionSave           Action = "sv"
	ActionDiscard        Action = "ds"
	ActionDiscardConfirm Action = "dy"
	ActionDiscardCancel  Action = "dn"
	ActionClose          Action = "cl"
)

// Коды укладываются в лимит Telegram на 64 байта callback data
var kindCodes = map[service.GridKind]string{
	service.GridTeacherAvailability: "ta",
	service.GridStudentAvailability: "sa",
	service.GridFees:                "fe",
}

var slotCodes = map[model.TimeSlot]string{
	model.SlotMorning:   "m",
	model.SlotAfternoon: "a",
	model.SlotEvening:   "e",
}

// Callback разобранная callback data сетки.
// Date и Slot заполнены только для ActionToggle.
type Callback struct {
	Kind   service.GridKind
	Action Action
	Date   model.Date
	Slot   model.TimeSlot
}

// Data кодирует callback в строку
func (c Callback) Data() string {
	data := Prefix + kindCodes[c.Kind] + ":" + string(c.Action)
	if c.Action == ActionToggle {
		data += ":" + common.FormatCompactDate(c.Date) + ":" + slotCodes[c.Slot]
	}
	return data
}

func toggleData(kind service.GridKind, date model.Date, slot model.TimeSlot) string {
	return Callback{Kind: kind, Action: ActionToggle, Date: date, Slot: slot}.Data()
}

func actionData(kind service.GridKind, action Action) string {
	return Callback{Kind: kind, Action: action}.Data()
}

// Parse разбирает callback data сетки
func Parse(data string) (Callback, error) {
	if !strings.HasPrefix(data, Prefix) {
		return Callback{}, common.ErrInvalidFormat
	}

	parts := strings.Split(strings.TrimPrefix(data, Prefix), ":")
	if len(parts) < 2 {
		return Callback{}, common.ErrInvalidFormat
	}

	kind, ok := lookup(kindCodes, parts[0])
	if !ok {
		return Callback{}, fmt.Errorf("unknown grid kind %q: %w", parts[0], common.ErrInvalidFormat)
	}

	cb := Callback{Kind: kind, Action: Action(parts[1])}

	switch cb.Action {
	case ActionSave, ActionDiscard, ActionDiscardConfirm, ActionDiscardCancel, ActionClose:
		if len(parts) != 2 {
			return Callback{}, common.ErrInvalidFormat
		}
	case ActionToggle:
		if len(parts) != 4 {
			return Callback{}, common.ErrInvalidFormat
		}

		date, err := common.ParseCompactDate(parts[2])
		if err != nil {
			return Callback{}, fmt.Errorf("%v: %w", err, common.ErrInvalidFormat)
		}

		slot, ok := lookup(slotCodes, parts[3])
		if !ok {
			return Callback{}, fmt.Errorf("unknown slot %q: %w", parts[3], common.ErrInvalidFormat)
		}

		cb.Date = date
		cb.Slot = slot
	default:
		return Callback{}, fmt.Errorf("unknown grid action %q: %w", parts[1], common.ErrInvalidFormat)
	}

	return cb, nil
}

func lookup[K comparable](codes map[K]string, code string) (K, bool) {
	for k, c := range codes {
		if c == code {
			return k, true
		}
	}
	var zero K
	return zero, false
}
