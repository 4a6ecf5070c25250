// internal/app/features/authapi/handler.go

// Package authapi serves login, token refresh, and the password
// lifecycle endpoints under /auth.
package authapi

import (
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/mailer"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for authentication.
type Handler struct {
	Log    *zap.Logger
	Wr     *respond.Writer
	Users  *userstore.Store
	Tokens *auth.Manager
	Mail   *mailer.Mailer

	// Prod marks refresh cookies Secure.
	Prod bool
	// SiteName labels outbound email.
	SiteName string
	// ResetUIBaseURL is the frontend page reset links point at.
	ResetUIBaseURL string
}

// NewHandler constructs an auth handler.
func NewHandler(log *zap.Logger, wr *respond.Writer, users *userstore.Store,
	tokens *auth.Manager, mail *mailer.Mailer, prod bool, siteName, resetUIBaseURL string) *Handler {
	return &Handler{
		Log:            log,
		Wr:             wr,
		Users:          users,
		Tokens:         tokens,
		Mail:           mail,
		Prod:           prod,
		SiteName:       siteName,
		ResetUIBaseURL: resetUIBaseURL,
	}
}
