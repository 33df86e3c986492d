package api

import (
	"net/http"

	"github.com/Jagatmohan-arch/HotelOS-sub001/internal/domain"
)

type loginRequest struct {
	Tenant   string `json:"tenant"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ssoLoginRequest struct {
	Tenant  string `json:"tenant"`
	IDToken string `json:"id_token"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  apiUser `json:"user"`
}

type apiUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	token, user, err := h.sessions.Login(r.Context(), req.Tenant, req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, loginResponse{Token: token, User: userToAPI(user)})
}

func (h *Handler) loginSSO(w http.ResponseWriter, r *http.Request) {
	if h.oidc == nil {
		writeError(w, h.logger, r, domain.ErrValidation("sso is not configured"))
		return
	}
	var req ssoLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	identity, err := h.oidc.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeError(w, h.logger, r, domain.ErrAccessDenied("invalid identity token"))
		return
	}
	token, user, err := h.sessions.LoginExternal(r.Context(), req.Tenant, identity.Email)
	if err != nil {
		writeError(w, h.logger, r, err)
		return
	}
	writeData(w, http.StatusOK, loginResponse{Token: token, User: userToAPI(user)})
}

func userToAPI(u *domain.User) apiUser {
	return apiUser{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: string(u.Role)}
}
