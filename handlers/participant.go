package handlers

import (
	"net/http"
	"strings"

	"fintrack-backend/models"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/participants
func (h *Handler) CreateParticipant(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		utils.BadRequest(c, "participant id is required")
		return
	}

	p := models.Participant{
		ID:       strings.TrimSpace(req.ID),
		OwnerID:  userID,
		Name:     req.Name,
		Email:    req.Email,
		FCMToken: req.FCMToken,
	}
	if err := h.Participants.Upsert(c.Request.Context(), &p); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Participant saved", p)
}

// GET /api/participants
func (h *Handler) GetParticipants(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	participants, err := h.Participants.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", participants)
}
