package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tscs-kln/tscs-backend-go/internal/domain/user"
	"github.com/tscs-kln/tscs-backend-go/internal/handler/http/middleware"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/jwt"
	"github.com/tscs-kln/tscs-backend-go/internal/pkg/metrics"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Auth         AuthHandler
	Staff        StaffHandler
	Registration RegistrationHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	Dashboard    DashboardHandler
	Attendance   AttendanceHandler
	Salary       SalaryHandler
	Interview    InterviewHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/sign-in", h.Auth.SignIn)

		// Public sign-up, reviewed by a coordinator
		r.Post("/registrations", h.Registration.Submit)

		// EventSource cannot set headers; the stream also accepts ?jwt=
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verify(JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery))
			r.Use(middleware.AuthRequired(JWTService))
			r.Get("/notifications/stream", h.Notification.Stream)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/sign-out", h.Auth.SignOut)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Post("/{id}/read", h.Notification.MarkOneAsRead)
			})

			r.Route("/staff", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionStaffViewAll)).Get("/", h.Staff.List)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionStaffViewAll)).Get("/", h.Staff.Get)
					r.With(middleware.RequirePermission(user.PermissionStaffViewAll)).Get("/job-description", h.Staff.GetJobDescription)
					r.With(middleware.RequirePermission(user.PermissionJobDescriptionManage)).Put("/job-description", h.Staff.SaveJobDescription)

					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/attendance", h.Attendance.ListForStaff)
					r.With(middleware.RequirePermission(user.PermissionAttendanceRecord)).Post("/attendance", h.Attendance.Record)

					r.With(middleware.RequirePermission(user.PermissionSalaryViewAll)).Get("/pay-rate", h.Salary.GetPayRate)
					r.With(middleware.RequirePermission(user.PermissionSalaryPrepare)).Put("/pay-rate", h.Salary.SetPayRate)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionMentorAssign))
						r.Get("/mentor-suggestions", h.Staff.SuggestMentors)
						r.Put("/mentor", h.Staff.AssignMentor)
					})
				})
			})

			r.With(middleware.RequirePermission(user.PermissionMentorViewAll)).Get("/mentors", h.Staff.ListMentors)

			r.With(middleware.RequireStaffProfile).Get("/me/job-description", h.Staff.GetMyJobDescription)
			r.With(middleware.RequireStaffProfile, middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/me/attendance", h.Attendance.ListMine)
			r.With(middleware.RequireStaffProfile, middleware.RequirePermission(user.PermissionSalaryViewOwn)).Get("/me/salary-reports", h.Salary.ListMine)

			r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/attendance", h.Attendance.MonthlySummary)

			r.Route("/salary-reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSalaryViewAll)).Get("/", h.Salary.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryPrepare))
					r.Post("/generate", h.Salary.Generate)
					r.Post("/send", h.Salary.SendToHOD)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryApprove))
					r.Post("/{id}/approve", h.Salary.Approve)
					r.Post("/{id}/reject", h.Salary.Reject)
				})
			})

			r.Route("/interviews", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionInterviewView)).Get("/", h.Interview.List)
				r.With(middleware.RequirePermission(user.PermissionInterviewManage)).Post("/", h.Interview.Schedule)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionInterviewView)).Get("/", h.Interview.Get)
					r.With(middleware.RequirePermission(user.PermissionInterviewScheme)).Put("/marking-scheme", h.Interview.SetMarkingScheme)
					r.With(middleware.RequirePermission(user.PermissionInterviewMark)).Put("/candidates/{candidateID}/marks", h.Interview.AssignMarks)
					r.With(middleware.RequirePermission(user.PermissionInterviewShortlist)).Post("/shortlist", h.Interview.SubmitShortlist)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionInterviewManage))
						r.Post("/shortlist/approve", h.Interview.ApproveShortlist)
						r.Post("/shortlist/reject", h.Interview.RejectShortlist)
					})
				})
			})

			r.With(middleware.RequirePermission(user.PermissionDashboardView)).Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/registrations", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionRegistrationView)).Get("/", h.Registration.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionRegistrationDecide))
					r.Post("/{id}/approve", h.Registration.Approve)
					r.Post("/{id}/reject", h.Registration.Reject)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				// Temporary staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaffProfile)
					r.With(middleware.RequirePermission(user.PermissionLeaveApply)).Get("/substitute-suggestions", h.Leave.SuggestSubstitutes)
					r.With(middleware.RequirePermission(user.PermissionLeaveApply)).Post("/", h.Leave.Apply)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.ListMine)
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", h.Leave.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})
		})
	})
	return r
}
