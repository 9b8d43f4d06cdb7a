package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/services"
	"github.com/Damilola-codes/lenno-sub000/utils"
)

// Handler wraps the marketplace service for HTTP access.
type Handler struct {
	Svc *services.Service
}

func NewHandler(svc *services.Service) *Handler {
	return &Handler{Svc: svc}
}

// principal extracts the authenticated identity placed in the request
// context by the auth middleware.
func principal(r *http.Request) (services.Principal, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		return services.Principal{}, false
	}
	role, _ := utils.GetUserRole(r)
	return services.Principal{UserID: uid, Role: role}, true
}

func pathID(r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func unauthorized(w http.ResponseWriter) {
	utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
}

func badID(w http.ResponseWriter) {
	utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
}

// writeError maps a service failure onto the HTTP surface. Unexpected
// errors are logged and reported as a generic 500, never swallowed.
func writeError(w http.ResponseWriter, tag string, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: err.Error()})
	case apperr.KindForbidden:
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: err.Error()})
	case apperr.KindInvalidState, apperr.KindValidation:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
	default:
		log.Printf("[%s] unexpected error: %v", tag, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
	}
}

func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return page, limit
}
