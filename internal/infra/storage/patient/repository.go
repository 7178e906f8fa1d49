package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GHP-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения справочника пациентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пациентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var patientColumns = []string{
	"id",
	"patient_id",
	"name",
	"email",
	"phone",
}

// GetByBusinessID получает пациента по бизнес-идентификатору ("P1004")
func (r *Repository) GetByBusinessID(ctx context.Context, patientID string) (*domain.Patient, error) {
	return r.getOne(ctx, squirrel.Eq{"patient_id": patientID})
}

// GetByStorageID получает пациента по внутреннему идентификатору хранилища
func (r *Repository) GetByStorageID(ctx context.Context, id int64) (*domain.Patient, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var patient domain.Patient
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&patient.ID,
		&patient.PatientID,
		&patient.Name,
		&patient.Email,
		&patient.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan patient: %v", ErrScanRow, err)
	}

	return &patient, nil
}
