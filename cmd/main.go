package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	bookAppointmentHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_available_slots"
	getDailyReportHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_daily_report"
	getDoctorAppointmentsHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_doctor_appointments"
	getDoctorDashboardHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_doctor_dashboard"
	getDoctorLoadReportHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_doctor_load_report"
	getFrequentPatientsHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_frequent_patients"
	getPatientAppointmentsHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_patient_appointments"
	getSpecialtyReportHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/get_specialty_report"
	updateAppointmentHandler "github.com/m04kA/GHP-AppointmentService/internal/api/handlers/update_appointment"
	"github.com/m04kA/GHP-AppointmentService/internal/api/middleware"
	"github.com/m04kA/GHP-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/doctor"
	notificationRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/notification"
	patientRepo "github.com/m04kA/GHP-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/GHP-AppointmentService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/GHP-AppointmentService/internal/service/appointments"
	identityService "github.com/m04kA/GHP-AppointmentService/internal/service/identity"
	lifecycleService "github.com/m04kA/GHP-AppointmentService/internal/service/lifecycle"
	reportsService "github.com/m04kA/GHP-AppointmentService/internal/service/reports"
	bookAppointmentUC "github.com/m04kA/GHP-AppointmentService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/GHP-AppointmentService/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/m04kA/GHP-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/GHP-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GHP-AppointmentService/pkg/logger"
	"github.com/m04kA/GHP-AppointmentService/pkg/metrics"
	"github.com/m04kA/GHP-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/GHP-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GHP-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		doctorRepository       *doctorRepo.Repository
		patientRepository      *patientRepo.Repository
		appointmentRepository  *appointmentRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		doctorRepository = doctorRepo.NewRepository(wrappedDB)
		patientRepository = patientRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		doctorRepository = doctorRepo.NewRepository(db)
		patientRepository = patientRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем каналы уведомлений (email + SMS)
	emailSender := notifier.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
	smsSender := notifier.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	notifierSvc := notifier.NewService(emailSender, smsSender, notificationRepository, log)
	log.Info("Notification channels initialized (email=%v, sms=%v)",
		cfg.SendGrid.APIKey != "", cfg.Twilio.AccountSID != "")

	// Инициализируем сервисы
	identitySvc := identityService.NewService(doctorRepository, patientRepository, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, identitySvc, log)
	lifecycleSvc := lifecycleService.NewService(appointmentRepository, log)
	reportsSvc := reportsService.NewService(appointmentRepository, identitySvc, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		identitySvc,
		appointmentRepository,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		identitySvc,
		txMgr,
		notifierSvc,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		identitySvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getDoctorDashboard := getDoctorDashboardHandler.NewHandler(appointmentsSvc, log)
	getDailyReport := getDailyReportHandler.NewHandler(reportsSvc, log)
	getDoctorLoadReport := getDoctorLoadReportHandler.NewHandler(reportsSvc, log)
	getSpecialtyReport := getSpecialtyReportHandler.NewHandler(reportsSvc, log)
	getFrequentPatients := getFrequentPatientsHandler.NewHandler(reportsSvc, log)

	// Запускаем периодическое завершение прошедших приёмов
	var sweeper *cron.Cron
	if cfg.Sweep.Enabled {
		sweeper = cron.New()
		_, err := sweeper.AddFunc(cfg.Sweep.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			today := time.Now().UTC().Truncate(24 * time.Hour)
			completed, err := lifecycleSvc.Sweep(ctx, today)
			if err != nil {
				log.Error("Sweep failed: %v", err)
				return
			}
			log.Info("Sweep finished: completed=%d", completed)
		})
		if err != nil {
			log.Fatal("Failed to schedule sweep (%q): %v", cfg.Sweep.Schedule, err)
		}
		sweeper.Start()
		log.Info("Appointment sweep scheduled: %q", cfg.Sweep.Schedule)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Приёмы ---
	// Запись на приём
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение приёма по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос / изменение приёма
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)

	// Отмена приёма
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История приёмов врача
	protected.HandleFunc("/doctors/{doctorId}/appointments", getDoctorAppointments.Handle).Methods(http.MethodGet)

	// Сводка врача на день
	protected.HandleFunc("/doctors/{doctorId}/dashboard", getDoctorDashboard.Handle).Methods(http.MethodGet)

	// История приёмов пациента
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Отчеты ---
	protected.HandleFunc("/reports/daily", getDailyReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/doctors", getDoctorLoadReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/specialties", getSpecialtyReport.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reports/frequent-patients", getFrequentPatients.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем планировщик, дожидаемся активного прогона
	if sweeper != nil {
		<-sweeper.Stop().Done()
		log.Info("Appointment sweep stopped")
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
