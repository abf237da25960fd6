package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

var errUsage = errors.New("wrong command arguments")

// commandArgs аргументы команды без самой команды
// "/book 5 2026-10-20 10:00-11:00" -> ["5", "2026-10-20", "10:00-11:00"]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	if strings.HasPrefix(fields[0], "/") {
		return fields[1:]
	}
	return fields
}

// parseLesson разбирает дату и интервал занятия
func parseLesson(dateArg, intervalArg string) (model.Date, model.Interval, error) {
	date, err := model.ParseDate(dateArg)
	if err != nil {
		return model.Date{}, model.Interval{}, err
	}

	interval, err := model.ParseInterval(intervalArg)
	if err != nil {
		return model.Date{}, model.Interval{}, err
	}

	if err := interval.Validate(); err != nil {
		return model.Date{}, model.Interval{}, err
	}

	return date, interval, nil
}

// parseLessonArgs разбирает "ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ"
func parseLessonArgs(args []string) (model.Date, model.Interval, error) {
	if len(args) != 2 {
		return model.Date{}, model.Interval{}, errUsage
	}
	return parseLesson(args[0], args[1])
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parse id %q: %w", arg, errUsage)
	}
	return id, nil
}
