package get_available_slots

import (
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// ComputeSlots вычисляет свободные слоты врача на дату.
// Чистая функция: результат строится заново на каждый вызов, слоты идут
// в хронологическом порядке.
//
// Правила:
//   - дата в календарных исключениях врача → пусто;
//   - день недели не входит в рабочие дни → пусто;
//   - рабочие часы не заданы → пусто;
//   - сетка слотов начинается с workingHours.start с шагом slotDuration;
//     слот, заканчивающийся ровно в workingHours.end, включается,
//     выходящий за границу - нет;
//   - слот, пересекающий перерыв (полуоткрытые интервалы:
//     slotStart < breakEnd && slotEnd > breakStart), исключается;
//   - слот, время начала которого уже занято, исключается.
//
// Некорректная конфигурация не является ошибкой: результат просто пуст
// (fail-closed). Валидность ранее забронированного времени заново не
// проверяется - конфигурация врача могла измениться после бронирования.
func ComputeSlots(doctor *domain.Doctor, date time.Time, booked []types.TimeString) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if doctor == nil {
		return slots
	}

	if doctor.IsUnavailableOn(date) {
		return slots
	}

	if len(doctor.WorkingDays) == 0 || !doctor.WorksOn(date.Weekday()) {
		return slots
	}

	if !doctor.WorkingHours.IsSet() {
		return slots
	}

	start := doctor.WorkingHours.Start
	end := doctor.WorkingHours.End
	if start.Validate() != nil || end.Validate() != nil {
		return slots
	}

	duration := doctor.SlotDuration()

	bookedSet := make(map[types.TimeString]struct{}, len(booked))
	for _, t := range booked {
		bookedSet[t] = struct{}{}
	}

	current := start
	for current.IsBefore(end) {
		slotEnd, err := current.AddMinutes(duration)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(end) {
			break
		}

		if !overlapsBreak(current, slotEnd, doctor.BreakTime) {
			if _, taken := bookedSet[current]; !taken {
				slots = append(slots, current)
			}
		}

		current = slotEnd
	}

	return slots
}

// overlapsBreak проверяет пересечение слота с перерывом.
// Полуоткрытые интервалы: граничащие слоты (заканчивается ровно в начале
// перерыва или начинается ровно в его конце) пересечением не считаются.
func overlapsBreak(slotStart, slotEnd types.TimeString, breakTime *domain.TimeRange) bool {
	if !breakTime.IsSet() {
		return false
	}
	if breakTime.Start.Validate() != nil || breakTime.End.Validate() != nil {
		return false
	}
	return slotStart.IsBefore(breakTime.End) && slotEnd.IsAfter(breakTime.Start)
}
