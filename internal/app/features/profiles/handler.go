// internal/app/features/profiles/handler.go

// Package profiles serves the role profile endpoints. One handler per
// role, mounted at /admin, /donor, and /volunteer; the handlers share
// all of their code and differ only in the store they talk to.
package profiles

import (
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for one role's profiles.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Wr       *respond.Writer
	Role     models.ProfileRole
	Profiles *profilestore.Store
	Users    *userstore.Store
}

// NewHandler constructs a profiles handler for one role.
func NewHandler(db *mongo.Database, log *zap.Logger, wr *respond.Writer,
	profiles *profilestore.Store, users *userstore.Store) *Handler {
	return &Handler{
		DB:       db,
		Log:      log,
		Wr:       wr,
		Role:     profiles.Role(),
		Profiles: profiles,
		Users:    users,
	}
}
