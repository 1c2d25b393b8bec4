package http

import (
	"net/http"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/httpx"
	obsmw "portfolio/internal/observability/middleware"
	"portfolio/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Auth         service.AuthService
	Users        service.UserService
	History      service.HistoryService
	Projects     service.ProjectService
	Certificates service.CertificateService
	SiteData     service.SiteDataService
	Skills       service.SkillsService
}

type Options struct {
	Production  bool
	CookieDays  int
	CORSOrigins []string
	// RateLimitPerMinute applies per client IP to the credential endpoints.
	// Zero disables it.
	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

type statusResponse struct {
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRouter(d Deps, opt Options) http.Handler {
	if opt.RequestTimeout <= 0 {
		opt.RequestTimeout = 30 * time.Second
	}
	rs := responder{production: opt.Production}
	g := gates{auth: d.Auth, responder: rs}
	uh := userHandler{auth: d.Auth, users: d.Users, jar: cookieJar{production: opt.Production, days: opt.CookieDays}, responder: rs}
	ch := contentHandler{
		history:      d.History,
		projects:     d.Projects,
		certificates: d.Certificates,
		siteData:     d.SiteData,
		skills:       d.Skills,
		responder:    rs,
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(httpx.LogRequests)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(opt.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsIfSet(opt.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(obsmw.WithMetrics)

	r.NotFound(rs.notFound)
	r.MethodNotAllowed(rs.methodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.NoCache)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			httpx.WriteJSON(w, http.StatusOK, statusResponse{
				Message:   "API Server Portofolio Aktif!",
				Status:    "OK",
				Timestamp: time.Now().UTC(),
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if opt.RateLimitPerMinute > 0 {
					r.Use(httprate.LimitByIP(opt.RateLimitPerMinute, time.Minute))
				}
				r.Post("/register-request", uh.register)
				r.Post("/register-verify", uh.verify)
				r.Post("/resend-verification", uh.resend)
				r.Post("/login", uh.login)
				r.Post("/google", uh.google)
			})
			r.Get("/logout", uh.logout)

			r.Group(func(r chi.Router) {
				r.Use(g.authenticate)
				r.Post("/refresh-token", uh.refresh)
				r.Get("/getuser", uh.me)
				r.Put("/profile", uh.updateProfile)
				r.Delete("/profile", uh.deleteAccount)

				r.Group(func(r chi.Router) {
					r.Use(g.requireRole(domain.RoleAdmin, domain.RoleSuperAdmin))
					r.Get("/stats", uh.stats)
					r.Get("/users", uh.list)
					r.Delete("/users/{id}", uh.deleteUser)
				})

				r.Group(func(r chi.Router) {
					r.Use(g.requireSuperAdmin)
					r.Get("/management/users", uh.management)
					r.Post("/admins", uh.createAdmin)
					r.Put("/admins/{id}", uh.updateAdmin)
					r.Delete("/admins/{id}", uh.deleteAdmin)
					r.Delete("/superadmins/{id}", uh.deleteSuperAdmin)
					r.Put("/role/{id}", uh.updateRole)
				})
			})
		})

		// Reads are public; every mutation needs an admin session.
		admin := func(r chi.Router) chi.Router { return r.With(g.authenticate, g.requireAdmin) }

		r.Route("/history", func(r chi.Router) {
			r.Get("/", ch.listHistory)
			admin(r).Post("/", ch.createHistory)
			admin(r).Put("/{id}", ch.updateHistory)
			admin(r).Delete("/{id}", ch.deleteHistory)
		})
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", ch.listProjects)
			admin(r).Post("/", ch.createProject)
			admin(r).Put("/{id}", ch.updateProject)
			admin(r).Delete("/{id}", ch.deleteProject)
		})
		r.Route("/sertifikat", func(r chi.Router) {
			r.Get("/", ch.listCertificates)
			admin(r).Post("/", ch.createCertificate)
			admin(r).Put("/{id}", ch.updateCertificate)
			admin(r).Delete("/{id}", ch.deleteCertificate)
		})
		r.Route("/sitedata", func(r chi.Router) {
			r.Get("/", ch.getSiteData)
			admin(r).Put("/", ch.updateSiteData)
			admin(r).Post("/upload-image", ch.uploadProfileImage)
			admin(r).Put("/update-image", ch.updateProfileImage)
			admin(r).Delete("/delete-image", ch.deleteProfileImage)
		})
		r.Route("/skills", func(r chi.Router) {
			r.Get("/", ch.getSkills)
			admin(r).Put("/", ch.updateSkills)
			admin(r).Post("/soft", ch.addSoftSkill)
			admin(r).Delete("/soft/{index}", ch.removeSoftSkill)
			admin(r).Put("/hard", ch.replaceHardSkills)
		})
	})

	return r
}

func originsIfSet(in []string) []string {
	out := []string{}
	for _, o := range in {
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:5173"}
	}
	return out
}
