// internal/app/features/causes/handler.go
package causes

import (
	causestore "github.com/hopecharity/hopehub/internal/app/store/causes"
	donationstore "github.com/hopecharity/hopehub/internal/app/store/donations"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for causes.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Wr        *respond.Writer
	Tokens    *auth.Manager
	Causes    *causestore.Store
	Donations *donationstore.Store
	Admins    *profilestore.Store
	Donors    *profilestore.Store
}

// NewHandler constructs a causes handler bound to its stores.
func NewHandler(db *mongo.Database, log *zap.Logger, wr *respond.Writer, tokens *auth.Manager,
	causes *causestore.Store, donations *donationstore.Store,
	admins, donors *profilestore.Store) *Handler {
	return &Handler{
		DB:        db,
		Log:       log,
		Wr:        wr,
		Tokens:    tokens,
		Causes:    causes,
		Donations: donations,
		Admins:    admins,
		Donors:    donors,
	}
}
