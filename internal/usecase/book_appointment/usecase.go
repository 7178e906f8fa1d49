package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GHP-AppointmentService/internal/service/identity"
	"github.com/m04kA/GHP-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// UseCase use case для бронирования приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	resolver        IdentifierResolver
	txManager       TransactionManager
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	resolver IdentifierResolver,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		resolver:        resolver,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// Execute выполняет use case бронирования приёма.
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой приёмов дня (FOR UPDATE), чтобы два конкурентных запроса
// на один слот не прошли оба. Уникальный индекс в БД закрывает гонку
// вторым эшелоном: проигравшая вставка возвращает ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: doctor=%s, patient=%s, date=%s, time=%s",
		req.DoctorRef, req.PatientRef, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим врача
	doctor, err := uc.resolver.ResolveDoctor(ctx, req.DoctorRef)
	if err != nil {
		if errors.Is(err, identity.ErrDoctorNotFound) {
			uc.logger.Warn("BookAppointment: doctor ref=%s not found", req.DoctorRef)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("BookAppointment: failed to resolve doctor ref=%s: %v", req.DoctorRef, err)
		return nil, fmt.Errorf("%w: failed to resolve doctor: %v", ErrInternal, err)
	}

	// 3. Резолвим пациента
	patient, err := uc.resolver.ResolvePatient(ctx, req.PatientRef)
	if err != nil {
		if errors.Is(err, identity.ErrPatientNotFound) {
			uc.logger.Warn("BookAppointment: patient ref=%s not found", req.PatientRef)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("BookAppointment: failed to resolve patient ref=%s: %v", req.PatientRef, err)
		return nil, fmt.Errorf("%w: failed to resolve patient: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 4. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем приёмы врача на дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.ListByDoctorAndDate(txCtx, doctor.BusinessID(), req.Date)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		booked := make([]types.TimeString, 0, len(appointments))
		for _, appt := range appointments {
			if appt.IsActive() {
				booked = append(booked, appt.StartTime)
			}
		}

		// 4.2. Пересчитываем доступные слоты и проверяем запрошенное время
		slots := get_available_slots.ComputeSlots(doctor, req.Date, booked)
		if !containsSlot(slots, req.StartTime) {
			uc.logger.Warn("BookAppointment: slot %s not available for doctor=%s on %s",
				req.StartTime, doctor.BusinessID(), req.Date.Format(domain.DateFormat))
			return &SlotUnavailableError{Requested: req.StartTime, Available: slots}
		}

		// 4.3. Выдаем бизнес-идентификатор приёма
		code, err := uc.appointmentRepo.NextAppointmentCode(txCtx)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to generate appointment code: %v", err)
			return fmt.Errorf("%w: failed to generate appointment code: %v", ErrInternal, err)
		}

		// 4.4. Создаем приём с нормализованными идентификаторами
		appt := &domain.Appointment{
			AppointmentID: code,
			DoctorID:      doctor.BusinessID(),
			PatientID:     patient.BusinessID(),
			Date:          req.Date,
			StartTime:     req.StartTime,
			Status:        domain.StatusScheduled,
			Remarks:       req.Remarks,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Проигранная гонка за слот: уникальный индекс отбил вставку
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: lost slot race for doctor=%s, time=%s",
					doctor.BusinessID(), req.StartTime)
				return &SlotUnavailableError{Requested: req.StartTime, Available: removeSlot(slots, req.StartTime)}
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: successfully created appointment %s (id=%d)",
		result.AppointmentID, result.ID)

	// 5. Уведомления после коммита; контекст запроса может завершиться раньше доставки
	go uc.notifier.AppointmentBooked(context.WithoutCancel(ctx), doctor, patient, result)

	return &Response{
		ID:            result.ID,
		AppointmentID: result.AppointmentID,
		DoctorID:      result.DoctorID,
		DoctorName:    doctor.Name,
		PatientID:     result.PatientID,
		PatientName:   patient.Name,
		Date:          result.Date,
		StartTime:     result.StartTime,
		Status:        string(result.Status),
		Remarks:       result.Remarks,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

func containsSlot(slots []types.TimeString, t types.TimeString) bool {
	for _, slot := range slots {
		if slot == t {
			return true
		}
	}
	return false
}

func removeSlot(slots []types.TimeString, t types.TimeString) []types.TimeString {
	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot != t {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
