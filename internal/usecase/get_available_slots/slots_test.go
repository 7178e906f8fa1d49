package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// monday — понедельник, рабочий день для стандартного врача
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

// standardDoctor врач с графиком Пн-Пт 09:00-17:00, перерыв 12:00-13:00, слот 30 минут
func standardDoctor() *domain.Doctor {
	return &domain.Doctor{
		ID:           1,
		DoctorID:     "D2001",
		Name:         "Dr. Smith",
		WorkingDays:  []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"},
		WorkingHours: &domain.TimeRange{Start: "09:00", End: "17:00"},
		BreakTime:    &domain.TimeRange{Start: "12:00", End: "13:00"},

		SlotDurationMinutes: 30,
	}
}

func TestComputeSlots_StandardSchedule(t *testing.T) {
	doctor := standardDoctor()

	slots := ComputeSlots(doctor, monday, nil)

	// 8 часов минус часовой перерыв = 14 слотов по 30 минут
	require.Len(t, slots, 14)

	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("16:30"), slots[len(slots)-1])

	// Слот 11:30-12:00 граничит с перерывом и включается
	assert.Contains(t, slots, types.TimeString("11:30"))
	// Слот 13:00 начинается ровно в конце перерыва и включается
	assert.Contains(t, slots, types.TimeString("13:00"))

	// Слоты внутри перерыва исключаются
	assert.NotContains(t, slots, types.TimeString("12:00"))
	assert.NotContains(t, slots, types.TimeString("12:30"))

	// Слот 17:00 вышел бы за границу рабочего дня
	assert.NotContains(t, slots, types.TimeString("17:00"))
}

func TestComputeSlots_BookedTimesExcluded(t *testing.T) {
	doctor := standardDoctor()
	booked := []types.TimeString{"09:00", "10:30", "16:30"}

	slots := ComputeSlots(doctor, monday, booked)

	require.Len(t, slots, 11)
	assert.NotContains(t, slots, types.TimeString("09:00"))
	assert.NotContains(t, slots, types.TimeString("10:30"))
	assert.NotContains(t, slots, types.TimeString("16:30"))
	assert.Contains(t, slots, types.TimeString("09:30"))
}

func TestComputeSlots_BookedTimeOffGrid(t *testing.T) {
	doctor := standardDoctor()
	// Занятое время вне сетки не влияет на слоты сетки
	booked := []types.TimeString{"09:15"}

	slots := ComputeSlots(doctor, monday, booked)

	assert.Len(t, slots, 14)
	assert.Contains(t, slots, types.TimeString("09:00"))
	assert.Contains(t, slots, types.TimeString("09:30"))
}

func TestComputeSlots_NonWorkingDay(t *testing.T) {
	doctor := standardDoctor()
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	slots := ComputeSlots(doctor, sunday, nil)

	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestComputeSlots_UnavailableDate(t *testing.T) {
	doctor := standardDoctor()
	doctor.UnavailableDates = []string{"2025-06-02"}

	slots := ComputeSlots(doctor, monday, nil)

	assert.Empty(t, slots)
}

func TestComputeSlots_NoWorkingHours(t *testing.T) {
	doctor := standardDoctor()
	doctor.WorkingHours = nil

	slots := ComputeSlots(doctor, monday, nil)

	assert.Empty(t, slots)
}

func TestComputeSlots_PartialWorkingHours(t *testing.T) {
	doctor := standardDoctor()
	doctor.WorkingHours = &domain.TimeRange{Start: "09:00", End: ""}

	slots := ComputeSlots(doctor, monday, nil)

	assert.Empty(t, slots)
}

func TestComputeSlots_NoWorkingDays(t *testing.T) {
	doctor := standardDoctor()
	doctor.WorkingDays = nil

	slots := ComputeSlots(doctor, monday, nil)

	assert.Empty(t, slots)
}

func TestComputeSlots_NilDoctor(t *testing.T) {
	slots := ComputeSlots(nil, monday, nil)

	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestComputeSlots_DefaultDuration(t *testing.T) {
	doctor := standardDoctor()
	doctor.SlotDurationMinutes = 0
	doctor.BreakTime = nil
	doctor.WorkingHours = &domain.TimeRange{Start: "09:00", End: "10:00"}

	slots := ComputeSlots(doctor, monday, nil)

	// Нулевая длительность заменяется дефолтными 30 минутами
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("09:30"), slots[1])
}

func TestComputeSlots_LastSlotEndsExactlyAtClose(t *testing.T) {
	doctor := standardDoctor()
	doctor.BreakTime = nil
	doctor.WorkingHours = &domain.TimeRange{Start: "09:00", End: "10:30"}

	slots := ComputeSlots(doctor, monday, nil)

	// 10:00-10:30 заканчивается ровно в конце дня и включается
	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("10:00"), slots[2])
}

func TestComputeSlots_DurationNotDividingWindow(t *testing.T) {
	doctor := standardDoctor()
	doctor.BreakTime = nil
	doctor.WorkingHours = &domain.TimeRange{Start: "09:00", End: "10:15"}

	slots := ComputeSlots(doctor, monday, nil)

	// 10:00-10:30 вышел бы за 10:15 и отбрасывается
	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("09:30"), slots[1])
}

func TestComputeSlots_LongSlotOverlappingBreak(t *testing.T) {
	doctor := standardDoctor()
	doctor.SlotDurationMinutes = 90
	doctor.WorkingHours = &domain.TimeRange{Start: "09:00", End: "15:00"}

	slots := ComputeSlots(doctor, monday, nil)

	// 09:00-10:30, 10:30-12:00 свободны; 12:00-13:30 пересекает перерыв;
	// 13:30-15:00 свободен
	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("10:30"), slots[1])
	assert.Equal(t, types.TimeString("13:30"), slots[2])
}

func TestComputeSlots_EndOfDayBoundary(t *testing.T) {
	doctor := standardDoctor()
	doctor.BreakTime = nil
	doctor.SlotDurationMinutes = 60
	doctor.WorkingHours = &domain.TimeRange{Start: "22:00", End: "24:00"}

	slots := ComputeSlots(doctor, monday, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, types.TimeString("22:00"), slots[0])
	assert.Equal(t, types.TimeString("23:00"), slots[1])
}

func TestComputeSlots_InvalidBreakIgnored(t *testing.T) {
	doctor := standardDoctor()
	doctor.BreakTime = &domain.TimeRange{Start: "12:00", End: "bogus"}

	slots := ComputeSlots(doctor, monday, nil)

	// Некорректный перерыв не блокирует слоты
	assert.Len(t, slots, 16)
	assert.Contains(t, slots, types.TimeString("12:00"))
}

func TestComputeSlots_CancelledNotPassedAsBooked(t *testing.T) {
	// Отменённые приёмы отфильтровываются до вызова ComputeSlots;
	// здесь проверяем, что пустой booked освобождает все слоты сетки
	doctor := standardDoctor()

	slots := ComputeSlots(doctor, monday, []types.TimeString{})

	assert.Len(t, slots, 14)
}
