package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GHP-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/GHP-AppointmentService/pkg/types"
)

// Repository репозиторий для чтения справочника врачей.
// CRUD врачей живёт в отдельном сервисе, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var doctorColumns = []string{
	"id",
	"doctor_id",
	"name",
	"specialization",
	"email",
	"phone",
	"working_days",
	"work_start",
	"work_end",
	"break_start",
	"break_end",
	"slot_duration_minutes",
	"unavailable_dates",
}

// GetByBusinessID получает врача по бизнес-идентификатору ("D2001")
func (r *Repository) GetByBusinessID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	return r.getOne(ctx, squirrel.Eq{"doctor_id": doctorID})
}

// GetByStorageID получает врача по внутреннему идентификатору хранилища
func (r *Repository) GetByStorageID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(doctorColumns...).
		From("doctors").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	doctor, err := scanDoctor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan doctor: %v", ErrScanRow, err)
	}

	return doctor, nil
}

func scanDoctor(row *sql.Row) (*domain.Doctor, error) {
	var (
		doctor     domain.Doctor
		workStart  sql.NullString
		workEnd    sql.NullString
		breakStart sql.NullString
		breakEnd   sql.NullString
	)

	err := row.Scan(
		&doctor.ID,
		&doctor.DoctorID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.Email,
		&doctor.Phone,
		pq.Array(&doctor.WorkingDays),
		&workStart,
		&workEnd,
		&breakStart,
		&breakEnd,
		&doctor.SlotDurationMinutes,
		pq.Array(&doctor.UnavailableDates),
	)
	if err != nil {
		return nil, err
	}

	doctor.WorkingHours = toTimeRange(workStart, workEnd)
	doctor.BreakTime = toTimeRange(breakStart, breakEnd)

	return &doctor, nil
}

// toTimeRange собирает TimeRange из nullable колонок.
// Частично заданный диапазон считается незаданным (fail-closed в калькуляторе).
func toTimeRange(start, end sql.NullString) *domain.TimeRange {
	if !start.Valid || !end.Valid || start.String == "" || end.String == "" {
		return nil
	}
	return &domain.TimeRange{
		Start: types.TimeString(start.String),
		End:   types.TimeString(end.String),
	}
}
