package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/middleware"
)

const tokenTTL = time.Hour

type tokenRequest struct {
	Email string `json:"email"`
}

// IssueToken signs a short-lived token for the given email and sets it as an
// HTTP-only cookie. SameSite=None because the frontend runs on another origin.
func (a *App) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" {
		a.error(w, http.StatusBadRequest, "Email required")
		return
	}

	token, err := middleware.SignJWT(a.Cfg.TokenSecret, middleware.TokenClaims{
		Email: req.Email,
		Exp:   time.Now().Add(tokenTTL).Unix(),
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	a.json(w, http.StatusOK, map[string]string{"message": "Token issued"})
}

// Logout clears the auth cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	a.json(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
