package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nogs0/bot-api-Vercel/internal/service"
)

// driverHeader carries the phone number looked up by the test endpoint.
const driverHeader = "driver"

// ChatHandler handles the chat-facing query endpoints.
type ChatHandler struct {
	driverService *service.DriverService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(driverService *service.DriverService) *ChatHandler {
	return &ChatHandler{driverService: driverService}
}

// Test handles POST /test and replies with the name of the driver whose
// phone number is in the driver header.
func (h *ChatHandler) Test(c *gin.Context) {
	phoneNumber := c.GetHeader(driverHeader)
	if phoneNumber == "" {
		respondError(c, service.ErrMissingDriverHeader)
		return
	}

	driver, err := h.driverService.FindByPhone(c.Request.Context(), phoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	respondReply(c, http.StatusOK, driver.Name)
}

// Message handles POST /message
func (h *ChatHandler) Message(c *gin.Context) {
	message, err := h.driverService.BroadcastMessage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondReply(c, http.StatusOK, message)
}
