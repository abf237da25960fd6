package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// RestrictionPolicy определяет, проверяется ли доступность учителя
type RestrictionPolicy string

const (
	RestrictionUnrestricted RestrictionPolicy = "unrestricted" // доступность не проверяется
	RestrictionChecked      RestrictionPolicy = "checked"      // записи доступности ограничивают расписание
)

// ParseRestrictionPolicy разбирает политику из строки
func ParseRestrictionPolicy(s string) (RestrictionPolicy, bool) {
	switch RestrictionPolicy(s) {
	case RestrictionUnrestricted:
		return RestrictionUnrestricted, true
	case RestrictionChecked:
		return RestrictionChecked, true
	}
	return "", false
}

type User struct {
	ID                int64             `json:"id"`
	TelegramID        int64             `json:"telegram_id"`
	Username          string            `json:"username"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Role              Role              `json:"role"`
	IsActive          bool              `json:"is_active"`
	RestrictionPolicy RestrictionPolicy `json:"restriction_policy"`
	CreatedAt         time.Time         `json:"created_at"`
}

// IsTeacher проверяет роль учителя
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// IsAdmin проверяет роль администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName имя для отображения
func (u *User) DisplayName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return "@" + u.Username
}
