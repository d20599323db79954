package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookwise/backend/internal/domain"
	"bookwise/backend/internal/service/booking"
	"bookwise/backend/internal/service/schedule"
	"bookwise/backend/internal/store"
)

type bookingService interface {
	AvailableSlots(ctx context.Context, date string) ([]booking.SlotAvailability, error)
	Book(ctx context.Context, date, timeOfDay string) (domain.Appointment, error)
}

type scheduleService interface {
	GetConfig(ctx context.Context) (domain.ScheduleConfig, error)
	UpdateConfig(ctx context.Context, in schedule.UpdateInput) (domain.ScheduleConfig, error)
}

type Server struct {
	bookings  bookingService
	schedules scheduleService
	log       *slog.Logger
}

func NewServer(bookings bookingService, schedules scheduleService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		bookings:  bookings,
		schedules: schedules,
		log:       log.With(slog.String("component", "http")),
	}
}

func (s *Server) Router(requestTimeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogging(s.log))
	r.Use(defaultRequestTimeout(requestTimeout))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	appointment := r.Group("/appointment")
	appointment.GET("/available-slots", s.getAvailableSlots)
	appointment.POST("/book", s.bookAppointment)

	r.GET("/config", s.getConfig)
	r.POST("/config", s.updateConfig)

	return r
}

func (s *Server) getAvailableSlots(c *gin.Context) {
	log := s.log.With(slog.String("handler", "GetAvailableSlots"))

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		log.Warn("invalid request", slog.String("reason", "missing_date"))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date query parameter is required"})
		return
	}

	slots, err := s.bookings.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		s.renderError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

type bookRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (s *Server) bookAppointment(c *gin.Context) {
	log := s.log.With(slog.String("handler", "BookAppointment"))

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		log.Warn("invalid request", slog.String("reason", "missing_date_or_time"))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date and time are required"})
		return
	}

	appt, err := s.bookings.Book(c.Request.Context(), req.Date, req.Time)
	if err != nil {
		s.renderError(c, log, err)
		return
	}

	log.Info(
		"appointment booked",
		slog.String("appointment_id", appt.ID.String()),
		slog.Time("start_time", appt.StartTime),
		slog.Time("end_time", appt.EndTime),
	)
	c.JSON(http.StatusCreated, appt)
}

func (s *Server) getConfig(c *gin.Context) {
	log := s.log.With(slog.String("handler", "GetConfig"))

	cfg, err := s.schedules.GetConfig(c.Request.Context())
	if err != nil {
		s.renderError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type updateConfigRequest struct {
	Timezone               *string   `json:"timezone"`
	SlotDuration           *int      `json:"slotDuration"`
	MaxSlotsPerAppointment *int      `json:"maxSlotsPerAppointment"`
	OperationalStartTime   *string   `json:"operationalStartTime"`
	OperationalEndTime     *string   `json:"operationalEndTime"`
	DaysOff                *[]string `json:"daysOff"`
	UnavailableHours       *[]string `json:"unavailableHours"`
}

func (s *Server) updateConfig(c *gin.Context) {
	log := s.log.With(slog.String("handler", "UpdateConfig"))

	var req updateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid request", slog.Any("err", err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	cfg, err := s.schedules.UpdateConfig(c.Request.Context(), schedule.UpdateInput{
		Timezone:               req.Timezone,
		SlotDuration:           req.SlotDuration,
		MaxSlotsPerAppointment: req.MaxSlotsPerAppointment,
		OperationalStartTime:   req.OperationalStartTime,
		OperationalEndTime:     req.OperationalEndTime,
		DaysOff:                req.DaysOff,
		UnavailableHours:       req.UnavailableHours,
	})
	if err != nil {
		s.renderError(c, log, err)
		return
	}

	log.Info("schedule config updated", slog.String("config_id", cfg.ID.String()))
	c.JSON(http.StatusOK, cfg)
}

// renderError maps domain and store failures onto client-facing responses.
// Every calendar-rule rejection carries its specific reason; anything
// unrecognized is a 500 and logged.
func (s *Server) renderError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date, expected YYYY-MM-DD"})
	case errors.Is(err, domain.ErrClosedWeekend):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot book appointments on weekends."})
	case errors.Is(err, domain.ErrClosedDayOff):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot book appointments on a day off."})
	case errors.Is(err, domain.ErrClosedBlackout):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot book during unavailable hours."})
	case errors.Is(err, store.ErrSlotFull):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Slot is already fully booked."})
	default:
		var bookingErr *booking.ValidationError
		var scheduleErr *schedule.ValidationError
		if errors.As(err, &bookingErr) || errors.As(err, &scheduleErr) {
			log.Warn("invalid request", slog.Any("err", err))
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		log.Error("request failed", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
