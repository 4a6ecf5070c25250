// internal/app/features/donations/handler.go
package donations

import (
	causestore "github.com/hopecharity/hopehub/internal/app/store/causes"
	donationstore "github.com/hopecharity/hopehub/internal/app/store/donations"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for donations.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Wr        *respond.Writer
	Tokens    *auth.Manager
	Donations *donationstore.Store
	Causes    *causestore.Store
	Donors    *profilestore.Store
}

// NewHandler constructs a donations handler bound to its stores.
func NewHandler(db *mongo.Database, log *zap.Logger, wr *respond.Writer, tokens *auth.Manager,
	donations *donationstore.Store, causes *causestore.Store, donors *profilestore.Store) *Handler {
	return &Handler{
		DB:        db,
		Log:       log,
		Wr:        wr,
		Tokens:    tokens,
		Donations: donations,
		Causes:    causes,
		Donors:    donors,
	}
}
