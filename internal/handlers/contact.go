package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/contact"
)

// ContactSubmitter delivers a contact request
type ContactSubmitter interface {
	Submit(ctx context.Context, req contact.Request) (*contact.Message, error)
}

// ContactHandler serves the contact form endpoint
type ContactHandler struct {
	service ContactSubmitter
}

// NewContactHandler creates a contact handler
func NewContactHandler(service ContactSubmitter) *ContactHandler {
	return &ContactHandler{service: service}
}

const msgDeliveryFailed = "Serverfehler beim Senden. Bitte später erneut versuchen."

// Submit godoc
// @Summary Send contact request
// @Description Validates the contact form and mails it to the dealer
// @Tags contact
// @Accept json
// @Produce json
// @Param request body contact.Request true "Contact form"
// @Success 200 {object} map[string]bool "ok: true"
// @Failure 400 {object} map[string]string "error: Validation message"
// @Failure 429 {object} map[string]string "error: Too many requests"
// @Failure 500 {object} map[string]string "error: Delivery failed"
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Anfrage"})
		return
	}

	_, err := h.service.Submit(c.Request.Context(), req)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	case err != nil:
		log.Error("Contact delivery failed", "ip", c.ClientIP(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgDeliveryFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
