package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/tscs-kln/tscs-backend-go/internal/config"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/matching"
	"github.com/tscs-kln/tscs-backend-go/internal/fixtures"
	appHTTP "github.com/tscs-kln/tscs-backend-go/internal/handler/http"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/cron"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/jwt"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/sse"
	"github.com/tscs-kln/tscs-backend-go/internal/repository/memory"
	serviceAttendance "github.com/tscs-kln/tscs-backend-go/internal/service/attendance"
	serviceAuth "github.com/tscs-kln/tscs-backend-go/internal/service/auth"
	serviceDashboard "github.com/tscs-kln/tscs-backend-go/internal/service/dashboard"
	serviceInterview "github.com/tscs-kln/tscs-backend-go/internal/service/interview"
	serviceLeave "github.com/tscs-kln/tscs-backend-go/internal/service/leave"
	serviceMatching "github.com/tscs-kln/tscs-backend-go/internal/service/matching"
	serviceNotification "github.com/tscs-kln/tscs-backend-go/internal/service/notification"
	servicePayroll "github.com/tscs-kln/tscs-backend-go/internal/service/payroll"
	serviceStaff "github.com/tscs-kln/tscs-backend-go/internal/service/staff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tscs-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo := memory.NewUserRepository()
	staffRepo := memory.NewStaffRepository()
	mentorRepo := memory.NewMentorRepository(fixtures.GetDefaultMentors()...)
	substituteRepo := memory.NewSubstituteRepository(fixtures.GetDefaultSubstitutes()...)
	registrationRepo := memory.NewRegistrationRepository()
	leaveApplicationRepo := memory.NewLeaveApplicationRepository()
	jobDescriptionRepo := memory.NewJobDescriptionRepository()
	notificationRepo := memory.NewNotificationRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	payRateRepo := memory.NewPayRateRepository()
	salaryReportRepo := memory.NewSalaryReportRepository()
	interviewRepo := memory.NewInterviewRepository()

	err = fixtures.SeedDepartment(ctx, fixtures.Repositories{
		Users:             userRepo,
		Staff:             staffRepo,
		Registrations:     registrationRepo,
		LeaveApplications: leaveApplicationRepo,
		JobDescriptions:   jobDescriptionRepo,
		Attendance:        attendanceRepo,
		PayRates:          payRateRepo,
		Interviews:        interviewRepo,
	}, cfg.Seed.Password)
	if err != nil {
		slog.Error("failed to seed department data", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	matcher := serviceMatching.NewMatcher(cfg.Matching.ScoringMode)
	slog.Info("matcher ready", "scoring_mode", matcher.Mode())

	sseHub := sse.NewHub()
	notificationService := serviceNotification.NewNotificationService(notificationRepo, sseHub)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	staffService := serviceStaff.NewStaffService(
		staffRepo,
		mentorRepo,
		registrationRepo,
		userRepo,
		jobDescriptionRepo,
		serviceMatching.NewInstrumentedRanker(matcher, matching.RosterMentors),
		notificationService,
	)
	leaveService := serviceLeave.NewLeaveService(
		leaveApplicationRepo,
		staffRepo,
		substituteRepo,
		serviceMatching.NewInstrumentedRanker(matcher, matching.RosterSubstitutes),
		notificationService,
	)
	dashboardService := serviceDashboard.NewDashboardService(
		staffRepo,
		mentorRepo,
		substituteRepo,
		registrationRepo,
		leaveApplicationRepo,
	)

	attendanceService := serviceAttendance.NewAttendanceService(attendanceRepo, staffRepo)
	payrollService := servicePayroll.NewPayrollService(
		salaryReportRepo,
		payRateRepo,
		attendanceRepo,
		staffRepo,
		notificationService,
		cfg.Payroll.DefaultDailyRate,
	)
	interviewService := serviceInterview.NewInterviewService(interviewRepo, notificationService)

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(JWTService, leaveService, interviewService).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(authService),
			Staff:        appHTTP.NewStaffHandler(staffService),
			Registration: appHTTP.NewRegistrationHandler(staffService),
			Leave:        appHTTP.NewLeaveHandler(leaveService),
			Notification: appHTTP.NewNotificationHandler(notificationService, JWTService),
			Dashboard:    appHTTP.NewDashboardHandler(dashboardService),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceService),
			Salary:       appHTTP.NewSalaryHandler(payrollService),
			Interview:    appHTTP.NewInterviewHandler(interviewService),
		},
	)

	// Request contexts derive from ctx so open notification streams end on shutdown.
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("server running", "addr", "http://localhost"+server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		scheduler.Stop()
		os.Exit(1)
	}

	// ListenAndServe returns as soon as Shutdown starts; wait for in-flight requests
	<-shutdownDone
	slog.Info("server stopped")
}
