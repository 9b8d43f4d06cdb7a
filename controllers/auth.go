package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Damilola-codes/lenno-sub000/utils"
)

// POST /auth/logout
// Session issuance lives with the Pi auth service; revocation is ours.
// The token's jti goes into the blacklist for the remainder of its
// lifetime, after which expiry takes over.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	_, claims, err := utils.ValidateAccessToken(tokenStr)
	if err != nil {
		unauthorized(w)
		return
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
		return
	}

	ttl := time.Hour
	if exp, ok := claims["exp"].(float64); ok {
		if d := time.Until(time.Unix(int64(exp), 0)); d > 0 {
			ttl = d
		}
	}
	if err := utils.RevokeJTI(jti, ttl); err != nil {
		writeError(w, "auth", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
