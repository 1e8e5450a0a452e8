package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"filippo.io/csrf"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/flock/api/flock" // Swagger docs
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/httpx"
	"github.com/aussiebroadwan/flock/pkg/obs"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

const apiPrefix = "/api/v1"

// Config is the HTTP facing part of the server configuration.
type Config struct {
	Version       string
	SecureCookies bool // set in production, cookies are then HTTPS only
	SessionTTL    time.Duration
	TrustProxy    bool
	CORSOrigins   []string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg         Config
	startTime   time.Time
	logger      *slog.Logger
	metrics     *obs.Metrics
	readyChecks map[string]ReadyCheck

	// StrictLimiter guards unauthenticated endpoints that send mail or check
	// tokens, keyed by client address. ModerateLimiter guards authenticated
	// writes, keyed by user. Nil admits everything.
	StrictLimiter   ratelimit.Limiter
	ModerateLimiter ratelimit.Limiter

	AuthService     *service.AuthService
	MFAService      *service.MFAService
	UserService     *service.UserService
	InviteService   *service.InviteService
	OrgService      *service.OrgService
	AuditService    *service.AuditService
	PeopleService   *service.PeopleService
	FieldService    *service.FieldService
	TagService      *service.TagService
	GroupService    *service.GroupService
	PlanService     *service.PlanService
	TemplateService *service.TemplateService
	SongService     *service.SongService
	FormService     *service.FormService
	WorkflowService *service.WorkflowService
}

func NewRouter(cfg Config, st store.Store, metrics *obs.Metrics, logger *slog.Logger) (*Router, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = service.DefaultSessionTTL
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		cfg:       cfg,
		startTime: time.Now(),
		logger:    logger,
		metrics:   metrics,
		readyChecks: map[string]ReadyCheck{
			"database": st.Ping,
		},
	}

	// Cross-origin writes are refused unless the origin is one we serve CORS to.
	protection := csrf.New()
	for _, origin := range cfg.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := protection.AddTrustedOrigin(origin); err != nil {
			return nil, fmt.Errorf("trusted origin %q: %w", origin, err)
		}
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if metrics != nil {
		r.middlewares = append(r.middlewares, metrics.Instrument)
	}
	if len(cfg.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Retry-After", "X-Request-ID", "Content-Disposition"},
			AllowCredentials: true, // the session is a cookie
		}).Handler)
	}
	r.middlewares = append(r.middlewares, protection.Handler)

	return r, nil
}

// AddReadyCheck adds a dependency to /readyz.
func (r *Router) AddReadyCheck(name string, check ReadyCheck) {
	r.readyChecks[name] = check
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerAdmin()
	r.registerPeople()
	r.registerGroups()
	r.registerPlans()
	r.registerSongs()
	r.registerForms()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Flock API
//	@version					0.1.0
//	@description				Church management: people, groups, service planning, songs, forms and workflows.
//	@description
//	@description				Every organization's data is isolated. Sign in through /api/v1/auth/login; the session travels in the flock_session cookie.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/flock
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							header
//	@name						Cookie
//	@description				Session cookie set by login or register. Format: "flock_session={token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) strict() ratelimit.Limiter {
	if r.StrictLimiter == nil {
		return ratelimit.Unlimited{}
	}
	return r.StrictLimiter
}

func (r *Router) moderate() ratelimit.Limiter {
	if r.ModerateLimiter == nil {
		return ratelimit.Unlimited{}
	}
	return r.ModerateLimiter
}

// public is an unauthenticated endpoint rate limited by client address.
func (r *Router) public(bucket string, h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.RateLimitMiddleware(r.strict(), bucket, httpx.IPKeyExtractor(r.cfg.TrustProxy), r.metrics),
	)
}

// read needs a session.
func (r *Router) read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		SessionMiddleware(r.AuthService),
	)
}

// write needs a session and is rate limited by user.
func (r *Router) write(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		SessionMiddleware(r.AuthService),
		httpx.RateLimitMiddleware(r.moderate(), "write", principalKey, r.metrics),
	)
}

// handle registers "METHOD /path" under the API prefix.
func (r *Router) handle(pattern string, h http.Handler) {
	method, path, _ := strings.Cut(pattern, " ")
	r.Mux.Handle(method+" "+apiPrefix+path, h)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
		cookies:     cookies{secure: r.cfg.SecureCookies, ttl: r.cfg.SessionTTL},
		trustProxy:  r.cfg.TrustProxy,
	}

	// Login and register carry their own ip+email and ip limiters
	r.handle("POST /auth/register", http.HandlerFunc(h.HandleRegister))
	r.handle("POST /auth/login", http.HandlerFunc(h.HandleLogin))
	r.handle("POST /auth/logout", http.HandlerFunc(h.HandleLogout))

	// Mail sending and token checks - strict limit by IP
	r.handle("POST /auth/password-reset/request", r.public("password_reset", h.HandleRequestPasswordReset))
	r.handle("POST /auth/password-reset", r.public("password_reset", h.HandleResetPassword))
	r.handle("POST /auth/verify-email", r.public("verify_email", h.HandleVerifyEmail))

	r.handle("GET /auth/me", r.read(h.HandleMe))
	r.handle("PATCH /auth/me", r.write(h.HandleUpdateProfile))
	r.handle("DELETE /auth/me", r.write(h.HandleDeleteAccount))
	r.handle("POST /auth/password", r.write(h.HandleChangePassword))
	r.handle("POST /auth/verify-email/resend", r.write(h.HandleResendVerification))
	r.handle("GET /auth/sessions", r.read(h.HandleSessions))
	r.handle("DELETE /auth/sessions/{id}", r.write(h.HandleRevokeSession))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.handle("GET /auth/mfa", r.read(h.HandleStatus))
	r.handle("POST /auth/mfa/enroll", r.write(h.HandleEnroll))
	r.handle("POST /auth/mfa/confirm", r.write(h.HandleConfirm))
	r.handle("POST /auth/mfa/backup-codes", r.write(h.HandleRegenerateBackupCodes))
	r.handle("DELETE /auth/mfa", r.write(h.HandleDisable))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		UserService:   r.UserService,
		InviteService: r.InviteService,
		OrgService:    r.OrgService,
		AuditService:  r.AuditService,
	}

	r.handle("GET /users", r.read(h.HandleListUsers))
	r.handle("PATCH /users/{id}/role", r.write(h.HandleUpdateRole))
	r.handle("PATCH /users/{id}/status", r.write(h.HandleUpdateStatus))

	r.handle("GET /invites", r.read(h.HandleListInvites))
	r.handle("POST /invites", r.write(h.HandleCreateInvite))
	r.handle("DELETE /invites/{id}", r.write(h.HandleRevokeInvite))

	r.handle("GET /organization", r.read(h.HandleGetOrganization))
	r.handle("PATCH /organization", r.write(h.HandleUpdateOrganization))

	r.handle("GET /audit", r.read(h.HandleListAudit))
}

func (r *Router) registerPeople() {
	h := &PeopleHandler{
		PeopleService: r.PeopleService,
		FieldService:  r.FieldService,
	}

	r.handle("GET /people", r.read(h.HandleList))
	r.handle("POST /people", r.write(h.HandleCreate))
	r.handle("GET /people/export", r.read(h.HandleExport))
	r.handle("POST /people/import", r.write(h.HandleImport))
	r.handle("POST /people/merge", r.write(h.HandleMerge))
	r.handle("GET /people/{id}", r.read(h.HandleGet))
	r.handle("PATCH /people/{id}", r.write(h.HandleUpdate))
	r.handle("DELETE /people/{id}", r.write(h.HandleDelete))

	r.handle("GET /people/{id}/notes", r.read(h.HandleNotes))
	r.handle("POST /people/{id}/notes", r.write(h.HandleAddNote))
	r.handle("DELETE /people/{id}/notes/{noteId}", r.write(h.HandleDeleteNote))
	r.handle("PUT /people/{id}/tags/{tagId}", r.write(h.HandleAddTag))
	r.handle("DELETE /people/{id}/tags/{tagId}", r.write(h.HandleRemoveTag))
	r.handle("PUT /people/{id}/fields/{fieldId}", r.write(h.HandleSetFieldValue))

	r.handle("GET /fields", r.read(h.HandleListFields))
	r.handle("POST /fields", r.write(h.HandleCreateField))
	r.handle("DELETE /fields/{id}", r.write(h.HandleDeleteField))

	tags := &TagsHandler{TagService: r.TagService}
	r.handle("GET /tags", r.read(tags.HandleList))
	r.handle("POST /tags", r.write(tags.HandleCreate))
	r.handle("PATCH /tags/{id}", r.write(tags.HandleUpdate))
	r.handle("DELETE /tags/{id}", r.write(tags.HandleDelete))
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{GroupService: r.GroupService}

	r.handle("GET /groups", r.read(h.HandleList))
	r.handle("POST /groups", r.write(h.HandleCreate))
	r.handle("GET /groups/{id}", r.read(h.HandleGet))
	r.handle("PATCH /groups/{id}", r.write(h.HandleUpdate))
	r.handle("DELETE /groups/{id}", r.write(h.HandleDelete))
	r.handle("POST /groups/{id}/members", r.write(h.HandleAddMember))
	r.handle("DELETE /groups/{id}/members/{personId}", r.write(h.HandleRemoveMember))
	r.handle("GET /groups/{id}/attendance", r.read(h.HandleAttendance))
	r.handle("POST /groups/{id}/attendance", r.write(h.HandleRecordAttendance))
}

func (r *Router) registerPlans() {
	h := &PlansHandler{
		PlanService:     r.PlanService,
		TemplateService: r.TemplateService,
	}

	r.handle("GET /plans", r.read(h.HandleList))
	r.handle("POST /plans", r.write(h.HandleCreate))
	r.handle("GET /plans/{id}", r.read(h.HandleGet))
	r.handle("PATCH /plans/{id}", r.write(h.HandleUpdate))
	r.handle("DELETE /plans/{id}", r.write(h.HandleDelete))
	r.handle("POST /plans/{id}/items", r.write(h.HandleAddItem))
	r.handle("POST /plans/{id}/items/reorder", r.write(h.HandleReorder))
	r.handle("PATCH /plans/{id}/items/{itemId}", r.write(h.HandleUpdateItem))
	r.handle("DELETE /plans/{id}/items/{itemId}", r.write(h.HandleDeleteItem))
	r.handle("POST /plans/{id}/apply-template", r.write(h.HandleApplyTemplate))
	r.handle("POST /plans/{id}/save-as-template", r.write(h.HandleSaveAsTemplate))
	r.handle("POST /plans/{id}/assignments", r.write(h.HandleAssign))
	r.handle("PATCH /plans/{id}/assignments/{assignmentId}", r.write(h.HandleUpdateAssignment))
	r.handle("DELETE /plans/{id}/assignments/{assignmentId}", r.write(h.HandleUnassign))

	r.handle("GET /templates", r.read(h.HandleListTemplates))
	r.handle("POST /templates", r.write(h.HandleCreateTemplate))
	r.handle("GET /templates/{id}", r.read(h.HandleGetTemplate))
	r.handle("PATCH /templates/{id}", r.write(h.HandleUpdateTemplate))
	r.handle("DELETE /templates/{id}", r.write(h.HandleDeleteTemplate))
}

func (r *Router) registerSongs() {
	h := &SongsHandler{SongService: r.SongService}

	r.handle("GET /songs", r.read(h.HandleList))
	r.handle("POST /songs", r.write(h.HandleCreate))
	r.handle("GET /songs/{id}", r.read(h.HandleGet))
	r.handle("PATCH /songs/{id}", r.write(h.HandleUpdate))
	r.handle("DELETE /songs/{id}", r.write(h.HandleDelete))
}

func (r *Router) registerForms() {
	h := &FormsHandler{
		FormService:     r.FormService,
		WorkflowService: r.WorkflowService,
	}

	r.handle("GET /forms", r.read(h.HandleList))
	r.handle("POST /forms", r.write(h.HandleCreate))
	r.handle("GET /forms/{id}", r.read(h.HandleGet))
	r.handle("PATCH /forms/{id}", r.write(h.HandleUpdate))
	r.handle("DELETE /forms/{id}", r.write(h.HandleDelete))
	r.handle("GET /forms/{id}/submissions", r.read(h.HandleSubmissions))
	r.handle("POST /forms/{id}/submissions", r.write(h.HandleSubmit))

	r.handle("GET /workflows", r.read(h.HandleListWorkflows))
	r.handle("POST /workflows", r.write(h.HandleCreateWorkflow))
	r.handle("GET /workflows/{id}", r.read(h.HandleGetWorkflow))
	r.handle("PATCH /workflows/{id}", r.write(h.HandleUpdateWorkflow))
	r.handle("DELETE /workflows/{id}", r.write(h.HandleDeleteWorkflow))
	r.handle("POST /workflows/{id}/run", r.write(h.HandleRunWorkflow))
}

func (r *Router) registerSystem() {
	// Health checks are polled by orchestrators and are not rate limited
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.cfg.Version))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.cfg.Version, r.readyChecks))

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
