package handlers

import (
	"log"
	"net/http"

	"github.com/racquetek/booking-api/functions/gateway/interfaces"
	"github.com/racquetek/booking-api/functions/gateway/transport"
	"github.com/racquetek/booking-api/functions/gateway/types"
)

type AuthHandler struct {
	AuthService interfaces.AuthServiceInterface
}

func NewAuthHandler(authService interfaces.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// Login handles POST /api/login and returns the member record.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var login types.MemberLogin
	if !decodeBody(w, r, &login) {
		return
	}

	user, err := h.AuthService.MemberLogin(r.Context(), login.LastName, login.MembershipNumber)
	if err != nil {
		transport.SendError(w, err)
		return
	}

	log.Printf("member login user=%d", user.ID)
	transport.SendJSON(w, user, http.StatusOK)
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var login types.AdminLogin
	if !decodeBody(w, r, &login) {
		return
	}

	session, err := h.AuthService.AdminLogin(r.Context(), login.Email, login.Password)
	if err != nil {
		transport.SendError(w, err)
		return
	}
	transport.SendJSON(w, session, http.StatusOK)
}
