// internal/app/features/users/handler.go
package users

import (
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for user accounts.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Wr       *respond.Writer
	Users    *userstore.Store
	Profiles map[models.ProfileRole]*profilestore.Store

	// DefaultProfileImage is applied when signup omits an image.
	DefaultProfileImage string
}

// NewHandler constructs a users handler bound to its stores.
func NewHandler(db *mongo.Database, log *zap.Logger, wr *respond.Writer,
	users *userstore.Store, profiles map[models.ProfileRole]*profilestore.Store,
	defaultProfileImage string) *Handler {
	return &Handler{
		DB:                  db,
		Log:                 log,
		Wr:                  wr,
		Users:               users,
		Profiles:            profiles,
		DefaultProfileImage: defaultProfileImage,
	}
}
