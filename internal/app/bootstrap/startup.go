// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/txn"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// HopeHub uses it to seed the configured super-admin account.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		return nil
	}
	return ensureSuperAdmin(ctx, deps, appCfg, logger)
}

// ensureSuperAdmin creates the configured super-admin user and its admin
// profile if no account with that email exists yet. An existing account
// is left untouched, whatever its role.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	db := deps.HopeHubMongoDatabase
	users := userstore.New(db, appCfg.BcryptCost)
	admins := profilestore.New(db, models.ProfileAdmin)

	existing, err := users.GetByEmail(ctx, appCfg.SuperAdminEmail)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if existing != nil {
		logger.Info("superadmin account already exists",
			zap.String("email", existing.Email),
			zap.String("role", existing.Role))
		return nil
	}

	var created models.User
	err = txn.Run(ctx, db, logger, func(ctx context.Context) error {
		u, err := users.Create(ctx, models.User{
			Name:  models.PersonName{FirstName: "Super", LastName: "Admin"},
			Email: appCfg.SuperAdminEmail,
			Role:  models.RoleSuperAdmin,
		}, appCfg.SuperAdminPassword)
		if err != nil {
			return err
		}

		p, err := admins.Create(ctx, models.Profile{
			Name:         u.Name,
			Email:        u.Email,
			ProfileImage: appCfg.DefaultProfileImage,
			User:         u.ID,
		})
		if err != nil {
			return err
		}

		if err := users.SetProfileRef(ctx, u.ID, models.ProfileAdmin, p.ID); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("seeded superadmin account",
		zap.String("email", created.Email),
		zap.String("id", created.ID.Hex()))
	return nil
}
