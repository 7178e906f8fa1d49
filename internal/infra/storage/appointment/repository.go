package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GHP-AppointmentService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с приёмами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var appointmentColumns = []string{
	"id",
	"appointment_id",
	"doctor_id",
	"patient_id",
	"visit_date",
	"start_time",
	"status",
	"remarks",
	"created_at",
	"updated_at",
}

// NextAppointmentCode выдает следующий бизнес-идентификатор приёма.
// Последовательность в БД заменяет схему count+1, которая давала дубликаты
// при конкурентных бронированиях.
func (r *Repository) NextAppointmentCode(ctx context.Context) (string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var n int64
	err := executor.QueryRowContext(ctx, "SELECT nextval('appointment_code_seq')").Scan(&n)
	if err != nil {
		return "", fmt.Errorf("%w: NextAppointmentCode - nextval: %v", ErrExecQuery, err)
	}

	return fmt.Sprintf("%s%d", domain.AppointmentCodePrefix, domain.AppointmentCodeBase+n), nil
}

// Create создает новый приём.
// Если в контексте есть активная транзакция, выполняется внутри неё.
// Нарушение частичного уникального индекса по (doctor_id, visit_date, start_time)
// означает проигранную гонку за слот и возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"appointment_id",
			"doctor_id",
			"patient_id",
			"visit_date",
			"start_time",
			"status",
			"remarks",
		).
		Values(
			appt.AppointmentID,
			appt.DoctorID,
			appt.PatientID,
			appt.Date,
			appt.StartTime,
			appt.Status,
			appt.Remarks,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByStorageID получает приём по внутреннему идентификатору
func (r *Repository) GetByStorageID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByBusinessID получает приём по бизнес-идентификатору ("A3001")
func (r *Repository) GetByBusinessID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	return r.getOne(ctx, squirrel.Eq{"appointment_id": appointmentID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListByDoctorAndDate получает приёмы врача на конкретную дату, по времени начала.
// Внутри транзакции добавляет FOR UPDATE: строки дня блокируются на время
// проверки доступности и вставки нового приёма.
func (r *Repository) ListByDoctorAndDate(ctx context.Context, doctorID string, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"doctor_id": doctorID, "visit_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctorAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByDoctor получает все приёмы врача (сначала новые)
func (r *Repository) ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"doctor_id": doctorID}, "visit_date DESC, start_time DESC")
}

// ListByPatient получает все приёмы пациента (сначала новые)
func (r *Repository) ListByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"patient_id": patientID}, "visit_date DESC, start_time DESC")
}

// ListByDate получает все приёмы на дату (по времени начала)
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	return r.list(ctx, squirrel.Eq{"visit_date": date}, "start_time ASC")
}

// ListByDateRange получает приёмы за период [from, to] включительно
func (r *Repository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.GtOrEq{"visit_date": from}).
		Where(squirrel.LtOrEq{"visit_date": to}).
		OrderBy("visit_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListScheduledBefore получает запланированные приёмы с датой раньше указанной.
// Используется lifecycle sweep'ом.
func (r *Repository) ListScheduledBefore(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.Lt{"visit_date": date}).
		OrderBy("visit_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduledBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update обновляет дату, время, примечания и статус приёма.
// Нарушение уникального индекса при переносе возвращается как ErrSlotTaken.
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("visit_date", appt.Date).
		Set("start_time", appt.StartTime).
		Set("remarks", appt.Remarks).
		Set("status", appt.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel переводит приём в статус cancelled.
// Повторная отмена безвредна: строка существует, обновление проходит.
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// CompleteIfScheduled условно переводит приём в completed.
// Обновление проходит только пока статус scheduled, поэтому конкурентная
// отмена никогда не затирается sweep'ом. Возвращает true, если статус изменён.
func (r *Repository) CompleteIfScheduled(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusScheduled}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CompleteIfScheduled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CompleteIfScheduled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CompleteIfScheduled - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq, orderBy string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRow(s rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		createdAt, updatedAt sql.NullTime
	)

	err := s.Scan(
		&appt.ID,
		&appt.AppointmentID,
		&appt.DoctorID,
		&appt.PatientID,
		&appt.Date,
		&appt.StartTime,
		&appt.Status,
		&appt.Remarks,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	return scanRow(row)
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
