package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Damilola-codes/lenno-sub000/utils"
)

// ValidateJSON decodes a JSON payload into dst and runs
// utils.ValidateStruct over it. On failure it writes the error response
// itself and returns a non-nil error so the handler can bail out.
func ValidateJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "application/json; charset=utf-8" {
		utils.WriteJSON(w, http.StatusUnsupportedMediaType, utils.APIResponse{Success: false, Message: "Content-Type must be application/json"})
		return http.ErrNotSupported
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return err
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
		return err
	}
	return nil
}
