package appointments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GHP-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/GHP-AppointmentService/internal/service/identity"
)

// Service сервис для чтения и отмены приёмов.
// Бронирование и перенос живут в отдельных use case'ах, здесь только
// операции без проверки доступности слотов.
type Service struct {
	appointmentRepo AppointmentRepository
	resolver        IdentifierResolver
	logger          Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(appointmentRepo AppointmentRepository, resolver IdentifierResolver, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		resolver:        resolver,
		logger:          logger,
	}
}

// GetByRef получает приём по бизнес-идентификатору ("A3001") или storage id
func (s *Service) GetByRef(ctx context.Context, ref string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByRef: fetching appointment ref=%s", ref)

	appt, err := s.findByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// Cancel отменяет приём. Повторная отмена также завершается успехом:
// операция безусловная, важен только итоговый статус.
func (s *Service) Cancel(ctx context.Context, ref string) error {
	s.logger.Info("Cancel: cancelling appointment ref=%s", ref)

	appt, err := s.findByRef(ctx, ref)
	if err != nil {
		return err
	}

	if err := s.appointmentRepo.Cancel(ctx, appt.ID); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appt.ID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment %s (id=%d)", appt.AppointmentID, appt.ID)
	return nil
}

// ListByDoctor получает приёмы врача (сначала новые)
func (s *Service) ListByDoctor(ctx context.Context, doctorRef string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByDoctor: fetching appointments for doctor=%s", doctorRef)

	doctor, err := s.resolveDoctor(ctx, doctorRef)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByDoctor(ctx, doctor.BusinessID())
	if err != nil {
		s.logger.Error("ListByDoctor: repository error for doctor=%s: %v", doctor.BusinessID(), err)
		return nil, fmt.Errorf("%w: ListByDoctor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDoctor: fetched %d appointments for doctor=%s", len(appointments), doctor.BusinessID())
	return models.FromDomainAppointmentList(appointments), nil
}

// ListByPatient получает историю приёмов пациента (сначала новые)
func (s *Service) ListByPatient(ctx context.Context, patientRef string) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByPatient: fetching appointments for patient=%s", patientRef)

	patient, err := s.resolvePatient(ctx, patientRef)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByPatient(ctx, patient.BusinessID())
	if err != nil {
		s.logger.Error("ListByPatient: repository error for patient=%s: %v", patient.BusinessID(), err)
		return nil, fmt.Errorf("%w: ListByPatient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByPatient: fetched %d appointments for patient=%s", len(appointments), patient.BusinessID())
	return models.FromDomainAppointmentList(appointments), nil
}

// DoctorDashboard собирает сводку врача: приёмы на сегодня плюс счетчики
// по всей истории (запланированные на будущее, завершенные, отмененные)
func (s *Service) DoctorDashboard(ctx context.Context, doctorRef string, today time.Time) (*models.DoctorDashboardResponse, error) {
	s.logger.Info("DoctorDashboard: building dashboard for doctor=%s, date=%s",
		doctorRef, today.Format(domain.DateFormat))

	doctor, err := s.resolveDoctor(ctx, doctorRef)
	if err != nil {
		return nil, err
	}

	todays, err := s.appointmentRepo.ListByDoctorAndDate(ctx, doctor.BusinessID(), today)
	if err != nil {
		s.logger.Error("DoctorDashboard: repository error for doctor=%s: %v", doctor.BusinessID(), err)
		return nil, fmt.Errorf("%w: DoctorDashboard - repository error: %v", ErrInternal, err)
	}

	all, err := s.appointmentRepo.ListByDoctor(ctx, doctor.BusinessID())
	if err != nil {
		s.logger.Error("DoctorDashboard: repository error for doctor=%s: %v", doctor.BusinessID(), err)
		return nil, fmt.Errorf("%w: DoctorDashboard - repository error: %v", ErrInternal, err)
	}

	resp := &models.DoctorDashboardResponse{
		DoctorID:   doctor.BusinessID(),
		DoctorName: doctor.Name,
		Date:       today.Format(domain.DateFormat),
		Today:      models.FromDomainAppointmentList(todays).Appointments,
	}

	for _, appt := range all {
		switch {
		case appt.Status == domain.StatusScheduled && !appt.Date.Before(today):
			resp.UpcomingCount++
		case appt.Status == domain.StatusCompleted:
			resp.CompletedCount++
		case appt.Status == domain.StatusCancelled:
			resp.CancelledCount++
		}
	}

	return resp, nil
}

// findByRef находит приём по бизнес-идентификатору, с fallback'ом на storage id
func (s *Service) findByRef(ctx context.Context, ref string) (*domain.Appointment, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: appointment ref is required", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByBusinessID(ctx, ref)
	if err == nil {
		return appt, nil
	}
	if !errors.Is(err, apptRepo.ErrAppointmentNotFound) {
		s.logger.Error("findByRef: repository error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: findByRef - repository error: %v", ErrInternal, err)
	}

	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil {
		return nil, ErrAppointmentNotFound
	}

	appt, err = s.appointmentRepo.GetByStorageID(ctx, id)
	if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
		s.logger.Warn("findByRef: appointment ref=%s not found", ref)
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		s.logger.Error("findByRef: repository error for storage id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: findByRef - repository error: %v", ErrInternal, err)
	}

	return appt, nil
}

func (s *Service) resolveDoctor(ctx context.Context, ref string) (*domain.Doctor, error) {
	doctor, err := s.resolver.ResolveDoctor(ctx, ref)
	if err != nil {
		if errors.Is(err, identity.ErrDoctorNotFound) {
			s.logger.Warn("resolveDoctor: doctor ref=%s not found", ref)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("resolveDoctor: failed to resolve doctor ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to resolve doctor: %v", ErrInternal, err)
	}
	return doctor, nil
}

func (s *Service) resolvePatient(ctx context.Context, ref string) (*domain.Patient, error) {
	patient, err := s.resolver.ResolvePatient(ctx, ref)
	if err != nil {
		if errors.Is(err, identity.ErrPatientNotFound) {
			s.logger.Warn("resolvePatient: patient ref=%s not found", ref)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("resolvePatient: failed to resolve patient ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to resolve patient: %v", ErrInternal, err)
	}
	return patient, nil
}
