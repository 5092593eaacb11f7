package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobboard/internal/domain/user"
	"jobboard/internal/http/handlers"
	httpmw "jobboard/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	CompanyHandler     *handlers.CompanyHandler
	SavedJobHandler    *handlers.SavedJobHandler
	CategoryHandler    *handlers.CategoryHandler
	AdminHandler       *handlers.AdminHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Limiter            httpmw.Limiter
	LoginRateLimit     int
	LoginRateWindow    time.Duration
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics, httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			promhttp.Handler().ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/register":
			r.withLoginLimit(r.deps.AuthHandler.Register).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/login":
			r.withLoginLimit(r.deps.AuthHandler.Login).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.List(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs/recommended":
			// handled by the protected switch below
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
			r.deps.AuthMiddleware.OptionalAuthenticate(http.HandlerFunc(r.deps.JobHandler.Get)).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/companies":
			r.deps.CompanyHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/companies/"):
			r.deps.CompanyHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/categories":
			r.deps.CategoryHandler.List(w, req)
			return
		}

		if isProtectedPath(path) {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func isProtectedPath(path string) bool {
	for _, prefix := range []string{"/auth/", "/jobs", "/applications", "/saved-jobs", "/company", "/admin"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/auth/me":
		r.deps.AuthHandler.Me(w, req)
		return
	case req.Method == http.MethodPut && path == "/auth/profile":
		r.deps.AuthHandler.UpdateProfile(w, req)
		return
	case req.Method == http.MethodPut && path == "/auth/password":
		r.deps.AuthHandler.ChangePassword(w, req)
		return
	case req.Method == http.MethodPost && path == "/auth/logout":
		r.deps.AuthHandler.Logout(w, req)
		return

	case req.Method == http.MethodGet && path == "/jobs/recommended":
		r.requireRole(user.RoleCandidate, r.deps.JobHandler.ListRecommended).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		r.requireRole(user.RoleEmployer, r.deps.JobHandler.Create).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status"):
		r.requireRoles([]user.Role{user.RoleEmployer, user.RoleAdmin}, r.deps.JobHandler.UpdateStatus).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/jobs/"):
		r.requireRole(user.RoleEmployer, r.deps.JobHandler.Update).ServeHTTP(w, req)
		return

	case req.Method == http.MethodPost && path == "/applications":
		r.requireRole(user.RoleCandidate, r.deps.ApplicationHandler.Apply).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/mine":
		r.requireRole(user.RoleCandidate, r.deps.ApplicationHandler.ListMine).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		r.requireRoles([]user.Role{user.RoleEmployer, user.RoleAdmin}, r.deps.ApplicationHandler.UpdateStatus).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		r.requireRole(user.RoleCandidate, r.deps.ApplicationHandler.Withdraw).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/saved-jobs":
		r.requireRole(user.RoleCandidate, r.deps.SavedJobHandler.List).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/saved-jobs":
		r.requireRole(user.RoleCandidate, r.deps.SavedJobHandler.Save).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/saved-jobs/"):
		r.requireRole(user.RoleCandidate, r.deps.SavedJobHandler.Remove).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/company":
		r.requireRole(user.RoleEmployer, r.deps.CompanyHandler.GetMine).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/company":
		r.requireRole(user.RoleEmployer, r.deps.CompanyHandler.Create).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/company":
		r.requireRole(user.RoleEmployer, r.deps.CompanyHandler.Update).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/company/jobs":
		r.requireRole(user.RoleEmployer, r.deps.JobHandler.ListMine).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/company/applications":
		r.requireRole(user.RoleEmployer, r.deps.ApplicationHandler.ListForCompany).ServeHTTP(w, req)
		return

	case strings.HasPrefix(path, "/admin/"):
		r.requireRoles([]user.Role{user.RoleAdmin}, r.handleAdmin).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) handleAdmin(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/admin/stats":
		r.deps.AdminHandler.Statistics(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/users":
		r.deps.AdminHandler.ListUsers(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/admin/users/"):
		r.deps.AdminHandler.GetUser(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/users/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.SetUserStatus(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/users/"):
		r.deps.AdminHandler.DeleteUser(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/companies/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.SetCompanyStatus(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/companies/") && strings.HasSuffix(path, "/verify"):
		r.deps.AdminHandler.SetCompanyVerified(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/companies/"):
		r.deps.AdminHandler.DeleteCompany(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/jobs":
		r.deps.AdminHandler.ListJobs(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/jobs/") && strings.HasSuffix(path, "/approve"):
		r.deps.AdminHandler.ApproveJob(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/jobs/") && strings.HasSuffix(path, "/reject"):
		r.deps.AdminHandler.RejectJob(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/admin/jobs/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.SetJobStatus(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/jobs/"):
		r.deps.AdminHandler.DeleteJob(w, req)
		return
	case req.Method == http.MethodGet && path == "/admin/applications":
		r.deps.ApplicationHandler.ListAll(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/admin/applications/"):
		r.deps.ApplicationHandler.Delete(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) requireRole(role user.Role, handler http.HandlerFunc) http.Handler {
	return httpmw.RequireRole(role)(handler)
}

func (r *Router) requireRoles(roles []user.Role, handler http.HandlerFunc) http.Handler {
	return httpmw.RequireRole(roles...)(handler)
}

func (r *Router) withLoginLimit(handler http.HandlerFunc) http.Handler {
	return httpmw.RateLimit(r.deps.Limiter, httpmw.ClientIP, r.deps.LoginRateLimit, r.deps.LoginRateWindow)(handler)
}
