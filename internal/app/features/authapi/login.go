// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/inputval"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// HandleLogin serves POST /auth/login. The access token travels in the
// body; the refresh token only ever leaves as an httpOnly cookie.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	v.RequireEmail("email", req.Email)
	v.Require("password", req.Password, "Password is required")
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("No account found with this email")
		}
		h.Wr.Error(w, r, err)
		return
	}
	if !userstore.CheckPassword(u, req.Password) {
		h.Wr.Error(w, r, apierror.Unauthorized("Incorrect password"))
		return
	}

	access, err := h.Tokens.IssueAccess(u)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	refresh, err := h.Tokens.IssueRefresh(u)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	h.setRefreshCookie(w, refresh)
	h.Log.Info("user logged in", zap.String("email", u.Email))
	h.Wr.OK(w, "User logged in successfully", tokenResponse{AccessToken: access})
}

// HandleRefresh serves POST /auth/refresh-token.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cookie := auth.RefreshToken(r)
	if cookie == "" {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}
	claims, err := h.Tokens.VerifyRefresh(cookie)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	// Re-read the account so a role or email change invalidates stale claims.
	u, err := h.Users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("No account found with this email")
		}
		h.Wr.Error(w, r, err)
		return
	}

	access, err := h.Tokens.IssueAccess(u)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Wr.OK(w, "Access token retrieved successfully", tokenResponse{AccessToken: access})
}

func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Tokens.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.Prod,
		SameSite: http.SameSiteLaxMode,
	})
}
