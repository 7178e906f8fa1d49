package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// Service управляет жизненным циклом приёмов.
// Машина состояний: scheduled -> completed (sweep), scheduled -> cancelled
// (отмена пользователем); оба конечных состояния не пересматриваются.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Sweep переводит запланированные приёмы с датой раньше today в completed.
// Возвращает число успешно завершенных приёмов. Ошибка на одном приёме не
// прерывает обработку остальных. Повторный запуск для той же даты ничего
// не меняет: условное обновление находит ноль подходящих строк.
func (s *Service) Sweep(ctx context.Context, today time.Time) (int, error) {
	s.logger.Info("Sweep: completing scheduled appointments before %s", today.Format(domain.DateFormat))

	stale, err := s.appointmentRepo.ListScheduledBefore(ctx, today)
	if err != nil {
		s.logger.Error("Sweep: failed to list stale appointments: %v", err)
		return 0, fmt.Errorf("%w: Sweep - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, appt := range stale {
		done, err := s.appointmentRepo.CompleteIfScheduled(ctx, appt.ID)
		if err != nil {
			s.logger.Error("Sweep: failed to complete appointment %s (id=%d): %v",
				appt.AppointmentID, appt.ID, err)
			continue
		}
		if !done {
			// Приём успели отменить между выборкой и обновлением
			s.logger.Warn("Sweep: appointment %s (id=%d) no longer scheduled, skipped",
				appt.AppointmentID, appt.ID)
			continue
		}
		completed++
	}

	s.logger.Info("Sweep: completed %d of %d stale appointments", completed, len(stale))
	return completed, nil
}
