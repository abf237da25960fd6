package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "cancel_booking:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidFormat
	}
	return strconv.ParseInt(parts[1], 10, 64)
}

// IsMessageNotModifiedError Telegram отвечает так на редактирование без изменений
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// compactDateLayout формат даты внутри callback data
const compactDateLayout = "20060102"

// FormatCompactDate кодирует дату для callback data
func FormatCompactDate(d model.Date) string {
	return d.Time().Format(compactDateLayout)
}

// ParseCompactDate разбирает дату из callback data
func ParseCompactDate(s string) (model.Date, error) {
	t, err := time.Parse(compactDateLayout, s)
	if err != nil {
		return model.Date{}, fmt.Errorf("parse compact date %q: %w", s, err)
	}
	return model.DateOf(t), nil
}

// LessonRequest учитель, дата и время занятия, закодированные в кнопке
type LessonRequest struct {
	TeacherID int64
	Date      model.Date
	Interval  model.Interval
}

// BookPrefix callback записи: book:<teacher_id>:<yyyymmdd>:<start>:<end>
const BookPrefix = "book:"

// BookData формирует callback data кнопки записи
func BookData(req LessonRequest) string {
	return fmt.Sprintf("%s%d:%s:%d:%d", BookPrefix, req.TeacherID, FormatCompactDate(req.Date), req.Interval.Start, req.Interval.End)
}

// ParseBookData разбирает callback data кнопки записи
func ParseBookData(data string) (LessonRequest, error) {
	parts := strings.Split(strings.TrimPrefix(data, BookPrefix), ":")
	if !strings.HasPrefix(data, BookPrefix) || len(parts) != 4 {
		return LessonRequest{}, ErrInvalidFormat
	}

	teacherID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return LessonRequest{}, ErrInvalidFormat
	}

	date, err := ParseCompactDate(parts[1])
	if err != nil {
		return LessonRequest{}, ErrInvalidFormat
	}

	start, err := strconv.Atoi(parts[2])
	if err != nil {
		return LessonRequest{}, ErrInvalidFormat
	}

	end, err := strconv.Atoi(parts[3])
	if err != nil {
		return LessonRequest{}, ErrInvalidFormat
	}

	return LessonRequest{TeacherID: teacherID, Date: date, Interval: model.Interval{Start: start, End: end}}, nil
}
