package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Professional json.RawMessage `json:"professional"`
}

type AuthHandler struct {
	service AuthService
	logger  *zap.Logger
}

func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if err := bindBody(c, &body); err != nil {
		writeError(c, h.logger, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), parseProfessionalRef(body.Professional))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
