package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GHP-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// UseCase use case для изменения приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	resolver        IdentifierResolver
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	resolver IdentifierResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		resolver:        resolver,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case изменения приёма.
// Перенос даты или времени требует свободного слота на новой дате;
// изменение только примечаний или статуса проходит без проверки доступности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Загрузка, проверка и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByStorageID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.ID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		newDate := appt.Date
		if req.Date != nil {
			newDate = *req.Date
		}
		newTime := appt.StartTime
		if req.StartTime != nil {
			newTime = *req.StartTime
		}

		rescheduled := !newDate.Equal(appt.Date) || newTime != appt.StartTime

		// 2.1. При переносе проверяем доступность нового слота
		if rescheduled {
			if err := uc.checkSlotFree(txCtx, appt, newDate, newTime); err != nil {
				return err
			}
		}

		appt.Date = newDate
		appt.StartTime = newTime
		if req.Remarks != nil {
			appt.Remarks = req.Remarks
		}
		if req.Status != nil {
			status, _ := domain.ToAppointmentStatus(*req.Status)
			appt.Status = status
		}

		// 2.2. Сохраняем изменения
		if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("UpdateAppointment: lost slot race for doctor=%s, time=%s",
					appt.DoctorID, appt.StartTime)
				return &SlotUnavailableError{Requested: appt.StartTime}
			}
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment %s (id=%d)",
		result.AppointmentID, result.ID)

	return &Response{
		ID:            result.ID,
		AppointmentID: result.AppointmentID,
		DoctorID:      result.DoctorID,
		PatientID:     result.PatientID,
		Date:          result.Date,
		StartTime:     result.StartTime,
		Status:        string(result.Status),
		Remarks:       result.Remarks,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// checkSlotFree проверяет, что новый слот свободен.
// Сам переносимый приём из занятых времён исключается, иначе он
// заблокировал бы собственный перенос в пределах того же дня.
func (uc *UseCase) checkSlotFree(ctx context.Context, appt *domain.Appointment, newDate time.Time, newTime types.TimeString) error {
	doctor, err := uc.resolver.ResolveDoctor(ctx, appt.DoctorID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to resolve doctor %s: %v", appt.DoctorID, err)
		return fmt.Errorf("%w: failed to resolve doctor: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListByDoctorAndDate(ctx, doctor.BusinessID(), newDate)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked := make([]types.TimeString, 0, len(appointments))
	for _, other := range appointments {
		if other.ID == appt.ID {
			continue
		}
		if other.IsActive() {
			booked = append(booked, other.StartTime)
		}
	}

	slots := get_available_slots.ComputeSlots(doctor, newDate, booked)
	for _, slot := range slots {
		if slot == newTime {
			return nil
		}
	}

	uc.logger.Warn("UpdateAppointment: slot %s not available for doctor=%s on %s",
		newTime, doctor.BusinessID(), newDate.Format(domain.DateFormat))
	return &SlotUnavailableError{Requested: newTime, Available: slots}
}
