package controllers

import (
	"net/http"

	"github.com/Damilola-codes/lenno-sub000/middleware"
	"github.com/Damilola-codes/lenno-sub000/services"
	"github.com/Damilola-codes/lenno-sub000/utils"
)

type submitProposalRequest struct {
	CoverLetter  string  `json:"cover_letter" validate:"maxlen=5000"`
	ProposedRate float64 `json:"proposed_rate" validate:"positive"`
	Duration     string  `json:"duration" validate:"maxlen=100"`
}

// POST /jobs/{id}/proposals
func (h *Handler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	jobID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	var req submitProposalRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	proposal, err := h.Svc.SubmitProposal(r.Context(), p, jobID, services.SubmitProposalInput{
		CoverLetter:  req.CoverLetter,
		ProposedRate: req.ProposedRate,
		Duration:     req.Duration,
	})
	if err != nil {
		writeError(w, "proposals", err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Proposal submitted", Data: proposal})
}

// GET /jobs/{id}/proposals
func (h *Handler) ListProposals(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	jobID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	proposals, err := h.Svc.ListProposals(r.Context(), p, jobID)
	if err != nil {
		writeError(w, "proposals", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: proposals})
}

// POST /proposals/{id}/accept
func (h *Handler) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	proposalID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	contract, err := h.Svc.AcceptProposal(r.Context(), p, proposalID)
	if err != nil {
		writeError(w, "proposals", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Proposal accepted", Data: contract})
}

// POST /proposals/{id}/reject
func (h *Handler) RejectProposal(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}
	proposalID, ok := pathID(r)
	if !ok {
		badID(w)
		return
	}

	proposal, err := h.Svc.RejectProposal(r.Context(), p, proposalID)
	if err != nil {
		writeError(w, "proposals", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Proposal rejected", Data: proposal})
}
