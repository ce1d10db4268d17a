package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"

	_ "github.com/aussiebroadwan/accounts/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Admin route denial messages.
const (
	detailAdminsOnly    = "Admins only"
	detailAdminFeedback = "Admin access required"
)

// Limits are the rate limit profiles applied per route group.
type Limits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultLimits returns the httpx profiles, including RATELIMIT_* overrides.
func DefaultLimits() Limits {
	return Limits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

type Options struct {
	Version   string
	CORS      httpx.CORSConfig
	Limits    Limits
	AvatarDir string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       Limits
	avatarDir    string

	store           store.Store
	AuthService     *service.AuthService
	UserService     *service.UserService
	FeedbackService *service.FeedbackService
}

func NewRouter(st store.Store, logger *slog.Logger, opts Options) *Router {
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: opts.Version,
		startTime:    time.Now(),
		logger:       logger,
		limits:       opts.Limits,
		avatarDir:    opts.AvatarDir,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(opts.CORS),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAdmin()
	r.registerAvatars()
	r.registerFeedback()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Accounts API
//	@version		0.1.0
//	@description	Account signup, password login with bearer session tokens, profile management and feedback collection.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/accounts
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8000
//	@BasePath	/
//
//	@schemes	http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from POST /token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn resolves the bearer token to its account. Store faults surface as 500.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(func(ctx context.Context, token string) (domain.User, string, error) {
		u, err := r.AuthService.ResolveCurrentUser(ctx, token)
		if err != nil && !errors.Is(err, service.ErrUnauthorized) {
			return domain.User{}, "", fmt.Errorf("%w: %w", httpx.ErrInternal, err)
		}
		return u, u.Username, err
	})
}

func adminOnly(detail string) httpx.Middleware {
	return httpx.RequirePrincipal(func(u domain.User) bool { return u.IsAdmin() }, detail)
}

func (r *Router) registerAuth() {
	signup := &SignupHandler{UserService: r.UserService}
	token := &TokenHandler{AuthService: r.AuthService}

	// Credential endpoints: strict. Login is keyed by IP and username so one
	// address cannot hammer many accounts, nor many addresses one account.
	r.Mux.Handle("POST /signup",
		httpx.Chain(signup,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("POST /token",
		httpx.Chain(token,
			httpx.RateLimitByIPAndFormField(r.limits.Strict, "username"),
		),
	)
}

func (r *Router) registerUsers() {
	h := &MeHandler{AuthService: r.AuthService, UserService: r.UserService}

	me := httpx.Chain(http.HandlerFunc(h.HandleGet),
		r.authn(),
		httpx.RateLimitByUser(r.limits.Lenient),
	)
	r.Mux.Handle("GET /users/me", me)
	r.Mux.Handle("GET /users/me/{$}", me)

	r.Mux.Handle("POST /users/me/onboarding-complete",
		httpx.Chain(http.HandlerFunc(h.HandleOnboardingComplete),
			r.authn(),
			httpx.RateLimitByUser(r.limits.Moderate),
		),
	)
	r.Mux.Handle("PUT /users/me/avatar",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateAvatar),
			r.authn(),
			httpx.RateLimitByUser(r.limits.Moderate),
		),
	)

	// Re-authenticates, so it gets the credential limit.
	r.Mux.Handle("POST /users/change-password",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword),
			r.authn(),
			httpx.RateLimitByUser(r.limits.Strict),
		),
	)
}

func (r *Router) registerAdmin() {
	users := &AdminUsersHandler{UserService: r.UserService}
	feedback := &AdminFeedbackHandler{FeedbackService: r.FeedbackService}

	r.Mux.Handle("GET /admin/users",
		httpx.Chain(http.HandlerFunc(users.HandleList),
			r.authn(),
			adminOnly(detailAdminsOnly),
			httpx.RateLimitByUser(r.limits.Lenient),
		),
	)
	r.Mux.Handle("POST /admin/users",
		httpx.Chain(http.HandlerFunc(users.HandleCreate),
			r.authn(),
			adminOnly(detailAdminsOnly),
			httpx.RateLimitByUser(r.limits.Moderate),
		),
	)
	r.Mux.Handle("GET /admin/feedback",
		httpx.Chain(feedback,
			r.authn(),
			adminOnly(detailAdminFeedback),
			httpx.RateLimitByUser(r.limits.Lenient),
		),
	)
}

func (r *Router) registerAvatars() {
	h := &AvatarsHandler{UserService: r.UserService, Dir: r.avatarDir}

	r.Mux.Handle("GET /avatars",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /dbz/{filename}",
		httpx.Chain(http.HandlerFunc(h.HandleImage),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}

func (r *Router) registerFeedback() {
	h := &FeedbackHandler{FeedbackService: r.FeedbackService}

	r.Mux.Handle("POST /feedback",
		httpx.Chain(h,
			r.authn(),
			httpx.RateLimitByUser(r.limits.Moderate),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}",
		httpx.Chain(RootHandler(),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}
