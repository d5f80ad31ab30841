package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nogs0/bot-api-Vercel/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CreateDriverRequest is the HTTP request body for driver registration.
// Pointers distinguish a missing field from its zero value.
type CreateDriverRequest struct {
	Name        *string `json:"name" binding:"required,min=1"`
	PhoneNumber *string `json:"phone_number" binding:"required,min=1"`
	Online      *bool   `json:"online" binding:"required"`
}

// UpdateDriverRequest is the webhook payload sent by the chat integration
// for every group message.
type UpdateDriverRequest struct {
	AppPackageName       *string       `json:"appPackageName" binding:"required"`
	MessengerPackageName *string       `json:"messengerPackageName" binding:"required"`
	Query                *MessageQuery `json:"query" binding:"required"`
}

// MessageQuery describes the chat message that triggered the webhook.
type MessageQuery struct {
	Sender           *string  `json:"sender" binding:"required"`
	Message          *string  `json:"message" binding:"required"`
	IsGroup          *bool    `json:"isGroup" binding:"required"`
	GroupParticipant *string  `json:"groupParticipant" binding:"required"`
	RuleID           *float64 `json:"ruleId" binding:"required"`
	IsTestMessage    *bool    `json:"isTestMessage" binding:"required"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Online      bool   `json:"online"`
}

// DriversResponse wraps the driver listing.
type DriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetAll handles GET /drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := DriversResponse{Drivers: make([]DriverResponse, 0, len(drivers))}
	for _, d := range drivers {
		response.Drivers = append(response.Drivers, DriverResponse{
			ID:          d.ID,
			Name:        d.Name,
			PhoneNumber: d.PhoneNumber,
			Online:      d.Online,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /drivers/create
func (h *DriverHandler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.driverService.CreateDriver(c.Request.Context(), service.CreateDriverRequest{
		Name:        *req.Name,
		PhoneNumber: *req.PhoneNumber,
		Online:      *req.Online,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, MessageResponse{Message: "success"})
}

// UpdateStatus handles POST /drivers/update
func (h *DriverHandler) UpdateStatus(c *gin.Context) {
	var req UpdateDriverRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.driverService.UpdateStatusFromMessage(c.Request.Context(), service.UpdateStatusRequest{
		GroupParticipant: *req.Query.GroupParticipant,
		Message:          *req.Query.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondReply(c, http.StatusOK, reply)
}
