package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/GHP-AppointmentService/internal/domain"
)

// Service best-effort доставка уведомлений о приёмах.
// Каждая отправка журналируется в БД; ошибки доставки логируются и никогда
// не поднимаются к вызывающему - бронирование от них не зависит.
type Service struct {
	email EmailSender
	sms   SMSSender
	repo  NotificationRepository
	log   Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(email EmailSender, sms SMSSender, repo NotificationRepository, log Logger) *Service {
	return &Service{
		email: email,
		sms:   sms,
		repo:  repo,
		log:   log,
	}
}

// AppointmentBooked уведомляет врача и пациента о новом приёме.
// Каждому получателю уходит email и SMS; каналы с пустым контактом пропускаются.
func (s *Service) AppointmentBooked(ctx context.Context, doctor *domain.Doctor, patient *domain.Patient, appt *domain.Appointment) {
	date := appt.Date.Format(domain.DateFormat)

	doctorBody := fmt.Sprintf("New appointment on %s at %s with patient %s.",
		date, appt.StartTime, patient.Name)
	s.Notify(ctx, domain.ChannelEmail, domain.RecipientDoctor, doctor.Name, doctor.Email, doctorBody)
	s.Notify(ctx, domain.ChannelSMS, domain.RecipientDoctor, doctor.Name, doctor.Phone, doctorBody)

	patientBody := fmt.Sprintf("Your appointment with %s is scheduled on %s at %s.",
		doctor.Name, date, appt.StartTime)
	s.Notify(ctx, domain.ChannelEmail, domain.RecipientPatient, patient.Name, patient.Email, patientBody)
	s.Notify(ctx, domain.ChannelSMS, domain.RecipientPatient, patient.Name, patient.Phone, patientBody)
}

// Notify отправляет одно уведомление и записывает его в журнал.
// Пустой контакт - не ошибка, получатель просто не настроил канал.
func (s *Service) Notify(ctx context.Context, channel domain.NotificationChannel, recipientType domain.RecipientType, recipientName, contact, message string) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return
	}

	record := &domain.Notification{
		Channel:       channel,
		RecipientType: recipientType,
		RecipientName: recipientName,
		Contact:       contact,
		Message:       message,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error("Notify: failed to journal %s notification for %s: %v", channel, contact, err)
	}

	var err error
	switch channel {
	case domain.ChannelEmail:
		err = s.email.Send(ctx, recipientName, contact, "Appointment notification", message)
	case domain.ChannelSMS:
		err = s.sms.Send(ctx, contact, message)
	default:
		s.log.Warn("Notify: unknown channel %s for %s", channel, contact)
		return
	}

	if err != nil {
		s.log.Error("Notify: failed to send %s to %s: %v", channel, contact, err)
		return
	}

	s.log.Info("Notify: sent %s notification to %s (%s)", channel, recipientName, contact)
}
