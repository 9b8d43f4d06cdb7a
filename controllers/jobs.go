package controllers

import (
	"math"
	"net/http"

	"github.com/Damilola-codes/lenno-sub000/middleware"
	"github.com/Damilola-codes/lenno-sub000/services"
	"github.com/Damilola-codes/lenno-sub000/utils"
)

type createJobRequest struct {
	Title       string  `json:"title" validate:"required,titleok"`
	Description string  `json:"description" validate:"maxlen=5000"`
	Budget      float64 `json:"budget" validate:"positive"`
	IsHourly    bool    `json:"is_hourly"`
}

// POST /jobs
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req createJobRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	job, err := h.Svc.CreateJob(r.Context(), p, services.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		IsHourly:    req.IsHourly,
	})
	if err != nil {
		writeError(w, "jobs", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Job created", Data: job})
}

// GET /jobs/{id}
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	job, err := h.Svc.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, "jobs", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: job})
}

// GET /jobs
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	jobs, total, err := h.Svc.ListJobs(r.Context(), page, limit)
	if err != nil {
		writeError(w, "jobs", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": jobs,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  total,
				"total_pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		},
	})
}
