package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/readbacklabs/readback-web/internal/config"
	"github.com/readbacklabs/readback-web/internal/handlers"
	"github.com/readbacklabs/readback-web/internal/infrastructure/backend"
	"github.com/readbacklabs/readback-web/internal/infrastructure/redis"
	"github.com/readbacklabs/readback-web/internal/middleware"
	"github.com/readbacklabs/readback-web/internal/services/authz"
	"github.com/readbacklabs/readback-web/internal/services/credentials"
	"github.com/readbacklabs/readback-web/internal/services/oauthsession"
	"github.com/readbacklabs/readback-web/internal/services/renewal"
	"github.com/readbacklabs/readback-web/internal/services/resolver"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogging(cfg.Logging)

	h, guard := buildServices(cfg)
	r := setupRouter(cfg, h, guard)

	log.Info().Str("addr", cfg.Server.Addr).Msg("Server starting")
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("ListenAndServe error")
	}
}

func setupLogging(cfg config.LoggingConfig) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func buildServices(cfg *config.Config) (*handlers.Handlers, *middleware.Guard) {
	backendService := backend.NewService(cfg.Backend)
	credentialService := credentials.NewService(cfg.Session)
	redisService := redis.NewService(cfg.Redis)
	sessionService := oauthsession.NewService(cfg.Session, cfg.Auth.SigningKey, redisService)
	renewalService := renewal.NewService(backendService, credentialService)
	resolverService := resolver.NewService(credentialService, renewalService, sessionService)
	authzService := authz.NewService(cfg.Auth.SigningKey)

	h := handlers.New(cfg, backendService, credentialService, resolverService, sessionService, authzService)
	guard := middleware.NewGuard(resolverService, authzService)
	return h, guard
}

func setupRouter(cfg *config.Config, h *handlers.Handlers, guard *middleware.Guard) *mux.Router {
	r := mux.NewRouter()
	r.Use(guard.Middleware)

	api := r.PathPrefix("/api").Subrouter()
	signIn := middleware.RateLimit(cfg.RateLimit)(http.HandlerFunc(h.HandleSignIn))
	api.Handle("/auth/signin", signIn).Methods("POST")
	api.HandleFunc("/auth/signout", h.HandleSignOut).Methods("POST")
	api.HandleFunc("/auth/signup", h.HandleSignUp).Methods("POST")
	api.HandleFunc("/auth/activate", h.HandleActivate).Methods("POST")
	api.HandleFunc("/auth/resend-activation", h.HandleResendActivation).Methods("POST")
	api.HandleFunc("/auth/reset-password", h.HandlePasswordReset).Methods("POST")
	api.HandleFunc("/auth/reset-password/confirm", h.HandlePasswordResetConfirm).Methods("POST")
	api.HandleFunc("/auth/oauth/{provider}", h.HandleOAuthRedirect).Methods("GET")
	api.HandleFunc("/profile", h.HandleGetProfile).Methods("GET")
	api.HandleFunc("/profile", h.HandleUpdateProfile).Methods("PATCH")
	api.HandleFunc("/profile/avatar", h.HandleUploadAvatar).Methods("PUT")
	api.HandleFunc("/admin/users", h.HandleListUsers).Methods("GET")
	api.HandleFunc("/admin/users/{id}", h.HandleUpdateUser).Methods("PATCH")

	r.HandleFunc("/oauth/landing", h.HandleOAuthLanding).Methods("GET")
	r.HandleFunc("/alphabet", h.HandleAlphabet).Methods("GET")
	r.HandleFunc("/home", h.HandleHome).Methods("GET")
	for path, handler := range h.StaticPages() {
		r.HandleFunc(path, handler).Methods("GET")
	}

	return r
}
