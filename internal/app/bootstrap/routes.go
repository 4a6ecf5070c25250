// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/hopecharity/hopehub/internal/app/features/authapi"
	causesfeature "github.com/hopecharity/hopehub/internal/app/features/causes"
	donationsfeature "github.com/hopecharity/hopehub/internal/app/features/donations"
	healthfeature "github.com/hopecharity/hopehub/internal/app/features/health"
	profilesfeature "github.com/hopecharity/hopehub/internal/app/features/profiles"
	usersfeature "github.com/hopecharity/hopehub/internal/app/features/users"
	causestore "github.com/hopecharity/hopehub/internal/app/store/causes"
	donationstore "github.com/hopecharity/hopehub/internal/app/store/donations"
	profilestore "github.com/hopecharity/hopehub/internal/app/store/profiles"
	userstore "github.com/hopecharity/hopehub/internal/app/store/users"
	"github.com/hopecharity/hopehub/internal/app/system/auth"
	"github.com/hopecharity/hopehub/internal/app/system/mailer"
	"github.com/hopecharity/hopehub/internal/app/system/respond"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. HopeHub builds the stores once, shares
// them across feature handlers, and mounts every feature router under
// /api/v1 with a health endpoint at the root.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.HopeHubMongoDatabase
	prod := coreCfg.Env == "prod"

	wr := respond.NewWriter(logger, prod)

	tokens := auth.NewManager(
		appCfg.JWTSecret, appCfg.JWTRefreshSecret,
		appCfg.AccessExpiry, appCfg.RefreshExpiry, appCfg.ResetExpiry)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
	}, logger)

	users := userstore.New(db, appCfg.BcryptCost)
	admins := profilestore.New(db, models.ProfileAdmin)
	donors := profilestore.New(db, models.ProfileDonor)
	volunteers := profilestore.New(db, models.ProfileVolunteer)
	causes := causestore.New(db)
	donations := donationstore.New(db)

	profilesByRole := map[models.ProfileRole]*profilestore.Store{
		models.ProfileAdmin:     admins,
		models.ProfileDonor:     donors,
		models.ProfileVolunteer: volunteers,
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.HopeHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api/v1", func(api chi.Router) {
		usersHandler := usersfeature.NewHandler(db, logger, wr, users, profilesByRole, appCfg.DefaultProfileImage)
		api.Mount("/users", usersfeature.Routes(usersHandler, tokens))

		authHandler := authfeature.NewHandler(logger, wr, users, tokens, mail, prod, appCfg.SiteName, appCfg.ResetUIBaseURL)
		api.Mount("/auth", authfeature.Routes(authHandler, tokens))

		adminHandler := profilesfeature.NewHandler(db, logger, wr, admins, users)
		api.Mount("/admin", profilesfeature.Routes(adminHandler, tokens))

		donorHandler := profilesfeature.NewHandler(db, logger, wr, donors, users)
		api.Mount("/donor", profilesfeature.Routes(donorHandler, tokens))

		volunteerHandler := profilesfeature.NewHandler(db, logger, wr, volunteers, users)
		api.Mount("/volunteer", profilesfeature.Routes(volunteerHandler, tokens))

		causesHandler := causesfeature.NewHandler(db, logger, wr, tokens, causes, donations, admins, donors)
		api.Mount("/cause", causesfeature.Routes(causesHandler, tokens))

		donationsHandler := donationsfeature.NewHandler(db, logger, wr, tokens, donations, causes, donors)
		api.Mount("/donation", donationsfeature.Routes(donationsHandler, tokens))
	})

	// Unmatched routes answer with the JSON error envelope.
	r.NotFound(wr.NotFoundHandler())

	return r, nil
}
