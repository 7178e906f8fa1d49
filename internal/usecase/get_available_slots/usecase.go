package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/identity"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных слотов врача
type UseCase struct {
	resolver        IdentifierResolver
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resolver IdentifierResolver,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:        resolver,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%s, date=%s", req.DoctorRef, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	doctor, err := uc.resolver.ResolveDoctor(ctx, req.DoctorRef)
	if err != nil {
		if errors.Is(err, identity.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailableSlots: doctor ref=%s not found", req.DoctorRef)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve doctor ref=%s: %v", req.DoctorRef, err)
		return nil, fmt.Errorf("%w: failed to resolve doctor: %v", ErrInternal, err)
	}

	booked, err := uc.bookedTimes(ctx, doctor.BusinessID(), req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked times for doctor=%s: %v", doctor.BusinessID(), err)
		return nil, fmt.Errorf("%w: failed to get booked times: %v", ErrInternal, err)
	}

	slots := ComputeSlots(doctor, req.Date, booked)

	uc.logger.Info("GetAvailableSlots: %d slots for doctor=%s, date=%s",
		len(slots), doctor.BusinessID(), req.Date.Format(domain.DateFormat))

	return &Response{
		DoctorID:        doctor.BusinessID(),
		Date:            req.Date,
		DurationMinutes: doctor.SlotDuration(),
		Slots:           slots,
	}, nil
}

// IsSlotAvailable проверяет, свободен ли конкретный слот
func (uc *UseCase) IsSlotAvailable(ctx context.Context, doctorRef string, date time.Time, startTime types.TimeString) (bool, error) {
	resp, err := uc.Execute(ctx, &Request{DoctorRef: doctorRef, Date: date})
	if err != nil {
		return false, err
	}

	for _, slot := range resp.Slots {
		if slot == startTime {
			return true, nil
		}
	}
	return false, nil
}

// bookedTimes собирает времена начала активных приёмов врача на дату.
// Отменённые приёмы слот не занимают.
func (uc *UseCase) bookedTimes(ctx context.Context, doctorID string, date time.Time) ([]types.TimeString, error) {
	appointments, err := uc.appointmentRepo.ListByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	booked := make([]types.TimeString, 0, len(appointments))
	for _, appt := range appointments {
		if appt.IsActive() {
			booked = append(booked, appt.StartTime)
		}
	}
	return booked, nil
}
