package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/internal/service/reports/models"
)

// unknownName подставляется, когда врач или пациент удален,
// а ссылка из приёма на него осталась
const unknownName = "Unknown"

// Service read-only аналитика по приёмам.
// Отчеты собираются в памяти из выборок репозитория; имена резолвятся
// по каноническим бизнес-идентификаторам.
type Service struct {
	appointmentRepo AppointmentRepository
	resolver        IdentifierResolver
	logger          Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(appointmentRepo AppointmentRepository, resolver IdentifierResolver, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		resolver:        resolver,
		logger:          logger,
	}
}

// AppointmentsByDate строит отчет по всем приёмам на дату
func (s *Service) AppointmentsByDate(ctx context.Context, date time.Time) (*models.DailyReportResponse, error) {
	s.logger.Info("AppointmentsByDate: building report for %s", date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("AppointmentsByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: AppointmentsByDate - repository error: %v", ErrInternal, err)
	}

	resp := &models.DailyReportResponse{
		Date:         date.Format(domain.DateFormat),
		Total:        len(appointments),
		Appointments: make([]models.DailyAppointment, 0, len(appointments)),
	}

	doctorNames := make(map[string]string)
	patientNames := make(map[string]string)

	for _, appt := range appointments {
		resp.Appointments = append(resp.Appointments, models.DailyAppointment{
			AppointmentID: appt.AppointmentID,
			DoctorID:      appt.DoctorID,
			DoctorName:    s.doctorName(ctx, doctorNames, appt.DoctorID),
			PatientID:     appt.PatientID,
			PatientName:   s.patientName(ctx, patientNames, appt.PatientID),
			StartTime:     appt.StartTime.String(),
			Status:        string(appt.Status),
		})
	}

	return resp, nil
}

// AppointmentsPerDoctor строит отчет по нагрузке врачей за период,
// по убыванию числа приёмов
func (s *Service) AppointmentsPerDoctor(ctx context.Context, from, to time.Time) (*models.DoctorLoadReportResponse, error) {
	s.logger.Info("AppointmentsPerDoctor: building report for %s..%s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	appointments, err := s.listRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, appt := range appointments {
		counts[appt.DoctorID]++
	}

	doctorNames := make(map[string]string)
	resp := &models.DoctorLoadReportResponse{
		From:    from.Format(domain.DateFormat),
		To:      to.Format(domain.DateFormat),
		Doctors: make([]models.DoctorLoad, 0, len(counts)),
	}
	for doctorID, count := range counts {
		resp.Doctors = append(resp.Doctors, models.DoctorLoad{
			DoctorID:   doctorID,
			DoctorName: s.doctorName(ctx, doctorNames, doctorID),
			Count:      count,
		})
	}

	sort.Slice(resp.Doctors, func(i, j int) bool {
		if resp.Doctors[i].Count != resp.Doctors[j].Count {
			return resp.Doctors[i].Count > resp.Doctors[j].Count
		}
		return resp.Doctors[i].DoctorID < resp.Doctors[j].DoctorID
	})

	return resp, nil
}

// AppointmentsPerSpecialty строит отчет по специальностям за период
func (s *Service) AppointmentsPerSpecialty(ctx context.Context, from, to time.Time) (*models.SpecialtyReportResponse, error) {
	s.logger.Info("AppointmentsPerSpecialty: building report for %s..%s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	appointments, err := s.listRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	specializations := make(map[string]string)
	counts := make(map[string]int)
	for _, appt := range appointments {
		specialty, ok := specializations[appt.DoctorID]
		if !ok {
			specialty = s.doctorSpecialization(ctx, appt.DoctorID)
			specializations[appt.DoctorID] = specialty
		}
		counts[specialty]++
	}

	resp := &models.SpecialtyReportResponse{
		From:        from.Format(domain.DateFormat),
		To:          to.Format(domain.DateFormat),
		Specialties: make([]models.SpecialtyLoad, 0, len(counts)),
	}
	for specialty, count := range counts {
		resp.Specialties = append(resp.Specialties, models.SpecialtyLoad{
			Specialization: specialty,
			Count:          count,
		})
	}

	sort.Slice(resp.Specialties, func(i, j int) bool {
		if resp.Specialties[i].Count != resp.Specialties[j].Count {
			return resp.Specialties[i].Count > resp.Specialties[j].Count
		}
		return resp.Specialties[i].Specialization < resp.Specialties[j].Specialization
	})

	return resp, nil
}

// FrequentPatients строит отчет по пациентам с minCount и более приёмами за период
func (s *Service) FrequentPatients(ctx context.Context, from, to time.Time, minCount int) (*models.FrequentPatientsResponse, error) {
	s.logger.Info("FrequentPatients: building report for %s..%s, minCount=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), minCount)

	if minCount < 1 {
		return nil, fmt.Errorf("%w: minCount must be positive", ErrInvalidInput)
	}

	appointments, err := s.listRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, appt := range appointments {
		counts[appt.PatientID]++
	}

	patientNames := make(map[string]string)
	resp := &models.FrequentPatientsResponse{
		From:     from.Format(domain.DateFormat),
		To:       to.Format(domain.DateFormat),
		MinCount: minCount,
		Patients: make([]models.FrequentPatient, 0),
	}
	for patientID, count := range counts {
		if count < minCount {
			continue
		}
		resp.Patients = append(resp.Patients, models.FrequentPatient{
			PatientID:   patientID,
			PatientName: s.patientName(ctx, patientNames, patientID),
			Count:       count,
		})
	}

	sort.Slice(resp.Patients, func(i, j int) bool {
		if resp.Patients[i].Count != resp.Patients[j].Count {
			return resp.Patients[i].Count > resp.Patients[j].Count
		}
		return resp.Patients[i].PatientID < resp.Patients[j].PatientID
	})

	return resp, nil
}

func (s *Service) listRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not precede from", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("listRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: listRange - repository error: %v", ErrInternal, err)
	}
	return appointments, nil
}

// doctorName резолвит имя врача с кешированием на время построения отчета.
// Нерезолвящийся идентификатор не роняет отчет, строка получает заглушку.
func (s *Service) doctorName(ctx context.Context, cache map[string]string, doctorID string) string {
	if name, ok := cache[doctorID]; ok {
		return name
	}

	name := unknownName
	if doctor, err := s.resolver.ResolveDoctor(ctx, doctorID); err == nil {
		name = doctor.Name
	} else {
		s.logger.Warn("doctorName: failed to resolve doctor %s: %v", doctorID, err)
	}

	cache[doctorID] = name
	return name
}

func (s *Service) doctorSpecialization(ctx context.Context, doctorID string) string {
	doctor, err := s.resolver.ResolveDoctor(ctx, doctorID)
	if err != nil || doctor.Specialization == "" {
		if err != nil {
			s.logger.Warn("doctorSpecialization: failed to resolve doctor %s: %v", doctorID, err)
		}
		return unknownName
	}
	return doctor.Specialization
}

func (s *Service) patientName(ctx context.Context, cache map[string]string, patientID string) string {
	if name, ok := cache[patientID]; ok {
		return name
	}

	name := unknownName
	if patient, err := s.resolver.ResolvePatient(ctx, patientID); err == nil {
		name = patient.Name
	} else {
		s.logger.Warn("patientName: failed to resolve patient %s: %v", patientID, err)
	}

	cache[patientID] = name
	return name
}
