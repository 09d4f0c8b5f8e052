package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Deps são os singletons montados no boot.
type Deps struct {
	Config *config.Config
	Log    *slog.Logger

	Repo  domain.Repository
	Cache *ucAppointment.AvailabilityCache

	Audit       *audit.Dispatcher
	AuditReader audit.Reader

	// Opções extras dos casos de uso (relógio nos testes).
	Options []ucAppointment.Option
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	if err := validators.Register(); err != nil {
		return err
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		gin.Recovery(),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	opts := append([]ucAppointment.Option{
		ucAppointment.WithCache(d.Cache),
		ucAppointment.WithAudit(d.Audit),
	}, d.Options...)

	availabilityUC := ucAppointment.NewGetAvailability(d.Repo, opts...)
	bookUC := ucAppointment.NewBookAppointment(d.Repo, d.Config.DomicilioCities, opts...)
	confirmUC := ucAppointment.NewConfirmAppointment(d.Repo, opts...)
	completeUC := ucAppointment.NewCompleteAppointment(d.Repo, opts...)
	cancelUC := ucAppointment.NewCancelAppointment(d.Repo, opts...)
	agendaUC := ucAppointment.NewListBarberAgenda(d.Repo)
	historyUC := ucAppointment.NewListClientAppointments(d.Repo)

	replaceWeekUC := ucSchedule.NewReplaceWeek(d.Repo, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		d.Repo,
		bookUC,
		confirmUC,
		completeUC,
		cancelUC,
		agendaUC,
		historyUC,
	)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.Repo, replaceWeekUC)
	meHandler := handlers.NewMeHandler(d.Repo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON): tudo autenticado
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config))
	{
		api.GET("/me", meHandler.GetMe)

		api.GET("/barbers/schedule", availabilityHandler.Schedule)

		// ------------------------------
		// CLIENTE
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments/mine", appointmentHandler.ListMine)
		api.PATCH("/appointments/mine/:id/cancel", appointmentHandler.Cancel)

		// ------------------------------
		// BARBEIRO
		// ------------------------------
		barber := api.Group("/barber")
		barber.Use(middleware.RequireRole(models.RoleBarber))
		{
			barber.GET("/appointments", appointmentHandler.ListBarberAgenda)
			barber.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			barber.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			barber.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			barber.GET("/schedules", workingHoursHandler.Get)
			barber.PUT("/schedules", workingHoursHandler.Update)

			if d.AuditReader != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.Repo, d.AuditReader)
				barber.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	return nil
}
