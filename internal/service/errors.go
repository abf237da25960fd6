package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNotATeacher        = errors.New("user is not a teacher")
	ErrForbidden          = errors.New("not allowed for this role")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingNotActive   = errors.New("booking is not active")
	ErrBookingInPast      = errors.New("booking is in the past")
	ErrTeacherBusy        = errors.New("teacher already has a lesson at this time")
	ErrTeacherUnavailable = errors.New("teacher is not available at this time")
	ErrGridNotOpen        = errors.New("grid is not open")
	ErrDateOutsideGrid    = errors.New("date is outside of the grid")
	ErrUnsavedChanges     = errors.New("grid has unsaved changes")
)
