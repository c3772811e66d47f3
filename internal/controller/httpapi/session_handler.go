package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/service"
)

type createSessionsBody struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type scheduleBody struct {
	Customer string `json:"customer"`
}

type SessionHandler struct {
	sessions SessionService
	booking  BookingService
	location *time.Location
	logger   *zap.Logger
}

func NewSessionHandler(sessions SessionService, booking BookingService, location *time.Location, logger *zap.Logger) *SessionHandler {
	if location == nil {
		location = time.UTC
	}

	return &SessionHandler{
		sessions: sessions,
		booking:  booking,
		location: location,
		logger:   logger,
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	var body createSessionsBody
	if err := bindBody(c, &body); err != nil {
		writeError(c, h.logger, err)
		return
	}

	start, err := parseTime(body.Start, h.location)
	if err != nil {
		writeError(c, h.logger, service.ValidationError("Invalid value for \"start\""))
		return
	}

	end, err := parseTime(body.End, h.location)
	if err != nil {
		writeError(c, h.logger, service.ValidationError("Invalid value for \"end\""))
		return
	}

	sessions, err := h.sessions.Create(c.Request.Context(), currentProfessional(c), start, end)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sessions": sessions})
}

func (h *SessionHandler) Find(c *gin.Context) {
	filter, err := h.sessionFilter(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	sessions, err := h.sessions.Find(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) sessionFilter(c *gin.Context) (model.SessionFilter, error) {
	professionalID, err := queryInt64(c, "professional")
	if err != nil {
		return model.SessionFilter{}, err
	}

	booked, err := queryBool(c, "booked")
	if err != nil {
		return model.SessionFilter{}, err
	}

	timeRange, err := queryRange(c, h.location)
	if err != nil {
		return model.SessionFilter{}, err
	}

	page, err := queryPage(c)
	if err != nil {
		return model.SessionFilter{}, err
	}

	return model.SessionFilter{
		ProfessionalID: professionalID,
		Booked:         booked,
		Customer:       queryString(c, "customer"),
		Range:          timeRange,
		Page:           page,
	}, nil
}

func (h *SessionHandler) FindAvailable(c *gin.Context) {
	professionalID, err := queryInt64(c, "professional")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	timeRange, err := queryRange(c, h.location)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	sessions, err := h.sessions.FindAvailable(c.Request.Context(), model.AvailabilityFilter{
		ProfessionalID: professionalID,
		Range:          timeRange,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) FindOne(c *gin.Context) {
	id, err := lookupID(c, service.SessionNotFoundError)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	session, err := h.sessions.FindOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *SessionHandler) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.sessions.Destroy(c.Request.Context(), currentProfessional(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) Schedule(c *gin.Context) {
	id, err := lookupID(c, service.SessionNotFoundError)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var body scheduleBody
	if err := bindBody(c, &body); err != nil {
		writeError(c, h.logger, err)
		return
	}

	sessions, err := h.booking.Schedule(c.Request.Context(), id, body.Customer)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
