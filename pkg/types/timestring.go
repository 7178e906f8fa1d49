package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда результат выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString represents a civil time of day in "HH:MM" format.
// Используется для хранения времени слотов без привязки к дате и часовому поясу.
// Граница "24:00" допустима как конец рабочего дня.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит строку "HH:MM" и валидирует её
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что строка соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	_, err := t.minutes()
	return err
}

// IsZero returns true if the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String implements fmt.Stringer.
func (t TimeString) String() string {
	return string(t)
}

// minutes возвращает время как количество минут от начала суток
func (t TimeString) minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return hour*60 + minute, nil
}

// IsBefore проверяет, что время строго раньше other.
// Некорректные значения считаются "не раньше" (сравнение не паникует).
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.minutes()
	if err != nil {
		return false
	}
	b, err := other.minutes()
	if err != nil {
		return false
	}
	return a > b
}

// AddMinutes возвращает время, сдвинутое на m минут вперёд.
// Выход за пределы суток считается ошибкой, а не переносом на следующий день.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.minutes()
	if err != nil {
		return "", err
	}

	total += m
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, t, m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}
