// internal/app/features/authapi/password.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/apierror"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/inputval"
	"github.com/hopecharity/hopehub/internal/app/system/mailer"
	"github.com/hopecharity/hopehub/internal/app/system/normalize"
	"github.com/hopecharity/hopehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// HandleChangePassword serves PATCH /auth/change-password. On top of
// the role middleware it demands a matching access/refresh pair, so a
// leaked access token alone cannot rotate a password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Tokens.PairMatch(auth.BearerToken(r), auth.RefreshToken(r)); err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	p, ok := auth.CurrentUser(r)
	if !ok {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	v.Require("oldPassword", req.OldPassword, "Old password is required")
	v.MinLen("newPassword", req.NewPassword, 6, "Password must be at least 6 characters")
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = apierror.NotFound("No account found with this email")
		}
		h.Wr.Error(w, r, err)
		return
	}
	if !userstore.CheckPassword(u, req.OldPassword) {
		h.Wr.Error(w, r, apierror.Unauthorized("Old password is incorrect"))
		return
	}

	if err := h.Users.SetPassword(ctx, u.ID, req.NewPassword); err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Log.Info("password changed", zap.String("email", u.Email))
	h.Wr.OK(w, "Password changed successfully", nil)
}

type forgetPasswordRequest struct {
	Email string `json:"email"`
}

type resetLinkResponse struct {
	ResetLink string `json:"resetLink"`
}

// HandleForgetPassword serves POST /auth/forget-password. Mail failures
// are logged, not surfaced; the link is returned either way.
func (h *Handler) HandleForgetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req forgetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	v.RequireEmail("email", req.Email)
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

	token, err := h.Tokens.IssueReset(u)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	link := h.ResetUIBaseURL + "?email=" + url.QueryEscape(u.Email) + "&token=" + url.QueryEscape(token)

	msg := mailer.BuildResetEmail(mailer.ResetEmailData{
		SiteName:  h.SiteName,
		FirstName: u.Name.FirstName,
		ResetLink: link,
		ExpiresIn: "10 minutes",
	})
	msg.To = u.Email
	if err := h.Mail.Send(msg); err != nil {
		h.Log.Error("reset mail delivery failed", zap.String("email", u.Email), zap.Error(err))
	}

	h.Wr.OK(w, "Reset link generated successfully", resetLinkResponse{ResetLink: link})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// HandleResetPassword serves POST /auth/reset-password with the reset
// token as bearer credential.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	token := auth.BearerToken(r)
	if token == "" {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
		return
	}
	claims, err := h.Tokens.VerifyAccess(token)
	if err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Wr.Error(w, r, apierror.BadRequest("Invalid JSON body"))
		return
	}
	var v inputval.Errors
	v.RequireEmail("email", req.Email)
	v.MinLen("newPassword", req.NewPassword, 6, "Password must be at least 6 characters")
	if err := v.Err(); err != nil {
		h.Wr.Error(w, r, err)
		return
	}

	if claims.Email != normalize.Email(req.Email) {
		h.Wr.Error(w, r, apierror.Unauthorized("You are not authorized"))
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
	if err := h.Users.SetPassword(ctx, u.ID, req.NewPassword); err != nil {
		h.Wr.Error(w, r, err)
		return
	}
	h.Log.Info("password reset", zap.String("email", u.Email))
	h.Wr.OK(w, "Password reset successfully", nil)
}
