package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Ожидаем дату и интервал для поиска свободных учителей
	StateAwaitFreeQuery UserState = "await_free_query"

	// Ожидаем новую дату и интервал для переноса занятия
	StateAwaitReschedule UserState = "await_reschedule"
)

// Ключи временных данных диалога
const (
	DataBookingID = "booking_id"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
