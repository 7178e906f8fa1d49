package notification

import (
	"context"
	"fmt"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
	"github.com/m04kA/GHP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GHP-AppointmentService/pkg/psqlbuilder"
)

// Repository журнал отправленных уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает уведомление в журнал
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns(
			"channel",
			"recipient_type",
			"recipient_name",
			"contact",
			"message",
		).
		Values(
			n.Channel,
			n.RecipientType,
			n.RecipientName,
			n.Contact,
			n.Message,
		).
		Suffix("RETURNING id, sent_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.SentAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
