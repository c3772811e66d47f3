package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/service"
)

type professionalFields struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type professionalBody struct {
	Professional *professionalFields `json:"professional"`
}

func (b professionalBody) input() *service.ProfessionalInput {
	if b.Professional == nil {
		return nil
	}
	return &service.ProfessionalInput{
		FirstName: b.Professional.FirstName,
		LastName:  b.Professional.LastName,
	}
}

type ProfessionalHandler struct {
	service ProfessionalService
	logger  *zap.Logger
}

func NewProfessionalHandler(service ProfessionalService, logger *zap.Logger) *ProfessionalHandler {
	return &ProfessionalHandler{service: service, logger: logger}
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var body professionalBody
	if err := bindBody(c, &body); err != nil {
		writeError(c, h.logger, err)
		return
	}

	professional, err := h.service.Create(c.Request.Context(), body.input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"professional": professional})
}

func (h *ProfessionalHandler) Find(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	filter := model.ProfessionalFilter{
		FirstName: queryString(c, "first_name"),
		LastName:  queryString(c, "last_name"),
		Page:      page,
	}

	professionals, err := h.service.Find(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"professionals": professionals})
}

func (h *ProfessionalHandler) FindOne(c *gin.Context) {
	id, err := lookupID(c, service.ProfessionalNotFoundError)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	professional, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"professional": professional})
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id, err := lookupID(c, service.ProfessionalNotFoundError)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var body professionalBody
	if err := bindBody(c, &body); err != nil {
		writeError(c, h.logger, err)
		return
	}

	professional, err := h.service.Update(c.Request.Context(), id, body.input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"professional": professional})
}

func (h *ProfessionalHandler) Destroy(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.service.Destroy(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
