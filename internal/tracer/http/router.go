package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/httpx"
	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.Codec
	sessionTTL   time.Duration
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	IdentityService *service.IdentityService
	FollowService   *service.FollowService
	LedgerService   *service.LedgerService
	FeedService     *service.FeedService
	ReportService   *service.ReportService
	Mailer          service.Mailer
}

func NewRouter(
	tokens *jwtx.Codec,
	sessionTTL time.Duration,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		sessionTTL:   sessionTTL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerPurchases()
	r.registerFollows()
	r.registerReports()
	r.registerSystem()
}

// secured wraps h with bearer authentication, a last-seen bump and a per-user
// rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.tokens),
		r.touchMiddleware(),
		httpx.RateLimitByUser(limit),
	)
}

// touchMiddleware records user activity on every authenticated request, the
// way the pre-request hook of the original web app bumped last_seen.
func (r *Router) touchMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID := httpx.UserID(req.Context()); userID != "" {
				if err := r.IdentityService.Touch(req.Context(), userID); err != nil {
					slogx.FromContext(req.Context()).Warn("last_seen bump failed", "err", err)
				}
			}
			next.ServeHTTP(w, req)
		})
	}
}

func (r *Router) registerAuth() {
	register := &RegisterHandler{IdentityService: r.IdentityService}
	login := &LoginHandler{
		IdentityService: r.IdentityService,
		Tokens:          r.tokens,
		SessionTTL:      r.sessionTTL,
	}

	// Credential endpoints get the strict limit to slow brute force.
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(register, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)))

	reset := &ResetHandler{IdentityService: r.IdentityService, Mailer: r.Mailer}
	r.Mux.Handle("POST /v1/reset-password/request",
		httpx.Chain(http.HandlerFunc(reset.HandleRequest), httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /v1/reset-password",
		httpx.Chain(http.HandlerFunc(reset.HandleReset), httpx.RateLimitByIP(httpx.StrictLimit)))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{IdentityService: r.IdentityService}

	r.Mux.Handle("GET /v1/userinfo",
		r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PUT /v1/profile",
		r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
}

func (r *Router) registerPurchases() {
	h := &PurchasesHandler{
		IdentityService: r.IdentityService,
		LedgerService:   r.LedgerService,
		FeedService:     r.FeedService,
	}

	r.Mux.Handle("POST /v1/purchases",
		r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/feed",
		r.secured(http.HandlerFunc(h.HandleFeed), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/explore",
		r.secured(http.HandlerFunc(h.HandleExplore), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/users/{username}/purchases",
		r.secured(http.HandlerFunc(h.HandleByUser), httpx.LenientLimit))
}

func (r *Router) registerFollows() {
	h := &FollowHandler{
		IdentityService: r.IdentityService,
		FollowService:   r.FollowService,
	}

	r.Mux.Handle("POST /v1/users/{username}/follow",
		r.secured(http.HandlerFunc(h.HandleFollow), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/users/{username}/follow",
		r.secured(http.HandlerFunc(h.HandleUnfollow), httpx.ModerateLimit))
}

func (r *Router) registerReports() {
	h := &ReportsHandler{ReportService: r.ReportService}

	r.Mux.Handle("GET /v1/reports/shops",
		r.secured(http.HandlerFunc(h.HandleShops), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/reports/monthly",
		r.secured(http.HandlerFunc(h.HandleMonthly), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/reports/users",
		r.secured(http.HandlerFunc(h.HandleUsers), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit)))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit)))
}
