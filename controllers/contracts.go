package controllers

import (
	"net/http"

	"github.com/Damilola-codes/lenno-sub000/utils"
)

// GET /contracts
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(r)
	if !ok {
		unauthorized(w)
		return
	}

	contracts, err := h.Svc.ListContracts(r.Context(), p)
	if err != nil {
		writeError(w, "contracts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: contracts})
}

// GET /contracts/{id}
func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
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

	contract, err := h.Svc.GetContract(r.Context(), p, contractID)
	if err != nil {
		writeError(w, "contracts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: contract})
}

// PUT /contracts/{id}/cancel
func (h *Handler) CancelContract(w http.ResponseWriter, r *http.Request) {
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

	contract, err := h.Svc.CancelContract(r.Context(), p, contractID)
	if err != nil {
		writeError(w, "contracts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Contract cancelled", Data: contract})
}

// DELETE /contracts/{id}
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Svc.DeleteContract(r.Context(), p, contractID); err != nil {
		writeError(w, "contracts", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Contract deleted"})
}
