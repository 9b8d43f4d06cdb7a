package controllers

import (
	"net/http"
	"time"

	"github.com/Damilola-codes/lenno-sub000/middleware"
	"github.com/Damilola-codes/lenno-sub000/services"
	"github.com/Damilola-codes/lenno-sub000/utils"
)

type createMilestoneRequest struct {
	Title       string     `json:"title" validate:"required,titleok"`
	Description string     `json:"description" validate:"maxlen=5000"`
	Amount      float64    `json:"amount" validate:"positive"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// POST /contracts/{id}/milestones
func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	contractID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	var req createMilestoneRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	milestone, err := h.Svc.CreateMilestone(r.Context(), p, contractID, services.CreateMilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(w, "milestones", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Milestone created", Data: milestone})
}

// GET /contracts/{id}/milestones
func (h *Handler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	contractID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	milestones, err := h.Svc.ListMilestones(r.Context(), p, contractID)
	if err != nil {
		writeError(w, "milestones", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: milestones})
}

// POST /milestones/{id}/complete
func (h *Handler) CompleteMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	milestoneID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	milestone, err := h.Svc.CompleteMilestone(r.Context(), p, milestoneID)
	if err != nil {
		writeError(w, "milestones", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Milestone completed", Data: milestone})
}

// POST /milestones/{id}/pay
func (h *Handler) PayMilestone(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	milestoneID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	milestone, err := h.Svc.PayMilestone(r.Context(), p, milestoneID)
	if err != nil {
		writeError(w, "milestones", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Milestone paid", Data: milestone})
}
