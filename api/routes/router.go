package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pitchpartner/pitchpartner-backend/api/controllers"
	"github.com/pitchpartner/pitchpartner-backend/api/middleware"
	"github.com/pitchpartner/pitchpartner-backend/internal/auth"
	"github.com/pitchpartner/pitchpartner-backend/internal/clubs"
	"github.com/pitchpartner/pitchpartner-backend/internal/inventory"
	"github.com/pitchpartner/pitchpartner-backend/internal/leads"
	"github.com/pitchpartner/pitchpartner-backend/internal/proposals"
	"github.com/pitchpartner/pitchpartner-backend/internal/sponsors"
	"github.com/pitchpartner/pitchpartner-backend/pkg/auth/session"
	"github.com/pitchpartner/pitchpartner-backend/pkg/config"
	"github.com/pitchpartner/pitchpartner-backend/pkg/db"
	"github.com/pitchpartner/pitchpartner-backend/pkg/enums"
	"github.com/pitchpartner/pitchpartner-backend/pkg/logger"
	"github.com/pitchpartner/pitchpartner-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the HTTP surface needs. The router stays a pure
// wiring function; construction order lives in cmd/api.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	SessionManager   sessionManager
	Metrics          *prometheus.Registry
	MembershipsRepo  middleware.MembershipChecker
	AuthService      auth.Service
	RegisterService  auth.RegisterService
	SwitchService    auth.SwitchClubService
	ClubService      clubs.Service
	LeadService      leads.Service
	SponsorService   sponsors.Service
	InventoryService inventory.Service
	ProposalService  proposals.Service
	PublicService    proposals.PublicService
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/proposals/{token}", controllers.PublicProposal(deps.PublicService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg), middleware.Idempotency(deps.Redis, logg)).Post("/register", controllers.Register(deps.RegisterService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/switch-club", controllers.SwitchClub(deps.SwitchService, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.Use(middleware.ClubContext(logg))

		manageRoles := middleware.RequireClubRoles(deps.MembershipsRepo, logg,
			enums.MemberRoleOwner, enums.MemberRoleAdmin)

		r.Route("/v1/clubs", func(r chi.Router) {
			r.Get("/me", controllers.ClubProfile(deps.ClubService, logg))
			r.Put("/me", controllers.ClubUpdate(deps.ClubService, logg))
			r.Get("/me/users", controllers.ClubUsers(deps.ClubService, logg))
			r.With(manageRoles).Post("/me/users/invite", controllers.ClubInvite(deps.ClubService, logg))
			r.With(manageRoles).Delete("/me/users/{userId}", controllers.ClubRemoveUser(deps.ClubService, logg))
		})

		r.Route("/v1/leads", func(r chi.Router) {
			r.Get("/", controllers.LeadList(deps.LeadService, logg))
			r.Post("/", controllers.LeadCreate(deps.LeadService, logg))
			r.Get("/{leadId}", controllers.LeadGet(deps.LeadService, logg))
			r.Put("/{leadId}", controllers.LeadUpdate(deps.LeadService, logg))
			r.Delete("/{leadId}", controllers.LeadDelete(deps.LeadService, logg))
		})

		r.Route("/v1/sponsors", func(r chi.Router) {
			r.Get("/", controllers.SponsorList(deps.SponsorService, logg))
			r.Post("/", controllers.SponsorCreate(deps.SponsorService, logg))
			r.Get("/{sponsorId}", controllers.SponsorGet(deps.SponsorService, logg))
			r.Put("/{sponsorId}", controllers.SponsorUpdate(deps.SponsorService, logg))
			r.Delete("/{sponsorId}", controllers.SponsorDelete(deps.SponsorService, logg))
		})

		r.Route("/v1/inventory", func(r chi.Router) {
			r.Route("/assets", func(r chi.Router) {
				r.Get("/", controllers.AssetList(deps.InventoryService, logg))
				r.Post("/", controllers.AssetCreate(deps.InventoryService, logg))
				r.Get("/{assetId}", controllers.AssetGet(deps.InventoryService, logg))
				r.Put("/{assetId}", controllers.AssetUpdate(deps.InventoryService, logg))
				r.Delete("/{assetId}", controllers.AssetDelete(deps.InventoryService, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.CategoryList(deps.InventoryService, logg))
				r.Post("/", controllers.CategoryCreate(deps.InventoryService, logg))
				r.Put("/{categoryId}", controllers.CategoryUpdate(deps.InventoryService, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(deps.InventoryService, logg))
			})
		})

		r.Route("/v1/proposals", func(r chi.Router) {
			r.Get("/", controllers.ProposalList(deps.ProposalService, logg))
			r.Post("/", controllers.ProposalCreate(deps.ProposalService, logg))
			r.Get("/builder/bootstrap", controllers.ProposalBootstrap(deps.ProposalService, logg))
			r.Get("/{proposalId}", controllers.ProposalGet(deps.ProposalService, logg))
			r.Put("/{proposalId}", controllers.ProposalSave(deps.ProposalService, logg))
			r.Delete("/{proposalId}", controllers.ProposalDelete(deps.ProposalService, logg))
			r.Post("/{proposalId}/layout/actions", controllers.ProposalLayoutActions(deps.ProposalService, logg))
			r.Post("/{proposalId}/publish", controllers.ProposalPublish(deps.ProposalService, logg))
			r.Get("/{proposalId}/preview", controllers.ProposalPreview(deps.ProposalService, logg))
			r.Patch("/{proposalId}/status", controllers.ProposalUpdateStatus(deps.ProposalService, logg))
		})
	})

	return r
}
