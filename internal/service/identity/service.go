package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/patient"
)

// Service резолвер идентификаторов врачей и пациентов.
// Внешние вызовы могут ссылаться на сущность как по бизнес-идентификатору
// ("D2001"), так и по внутреннему идентификатору хранилища. Резолвер ищет
// сначала по бизнес-идентификатору, затем по storage id, и возвращает
// сущность с каноническим бизнес-идентификатором. Все последующие записи
// ключуются именно им, поэтому запросы по бизнес-идентификатору стабильны
// независимо от того, как сущность указал вызывающий.
type Service struct {
	doctorRepo  DoctorRepository
	patientRepo PatientRepository
	logger      Logger
}

// NewService создает новый экземпляр резолвера
func NewService(doctorRepo DoctorRepository, patientRepo PatientRepository, logger Logger) *Service {
	return &Service{
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		logger:      logger,
	}
}

// ResolveDoctor находит врача по любому из идентификаторов
func (s *Service) ResolveDoctor(ctx context.Context, ref string) (*domain.Doctor, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrDoctorNotFound
	}

	doctor, err := s.doctorRepo.GetByBusinessID(ctx, ref)
	if err == nil {
		return doctor, nil
	}
	if !errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		s.logger.Error("ResolveDoctor: repository error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: ResolveDoctor - repository error: %v", ErrInternal, err)
	}

	// Fallback на storage id
	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil {
		return nil, ErrDoctorNotFound
	}

	doctor, err = s.doctorRepo.GetByStorageID(ctx, id)
	if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		s.logger.Error("ResolveDoctor: repository error for storage id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ResolveDoctor - repository error: %v", ErrInternal, err)
	}

	return doctor, nil
}

// ResolvePatient находит пациента по любому из идентификаторов
func (s *Service) ResolvePatient(ctx context.Context, ref string) (*domain.Patient, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrPatientNotFound
	}

	patient, err := s.patientRepo.GetByBusinessID(ctx, ref)
	if err == nil {
		return patient, nil
	}
	if !errors.Is(err, patientRepo.ErrPatientNotFound) {
		s.logger.Error("ResolvePatient: repository error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: ResolvePatient - repository error: %v", ErrInternal, err)
	}

	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil {
		return nil, ErrPatientNotFound
	}

	patient, err = s.patientRepo.GetByStorageID(ctx, id)
	if errors.Is(err, patientRepo.ErrPatientNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		s.logger.Error("ResolvePatient: repository error for storage id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ResolvePatient - repository error: %v", ErrInternal, err)
	}

	return patient, nil
}
