package services

import (
	"io"
	"log/slog"
	"net/http"

	"profile-service/modules/api/openapi"
	"profile-service/modules/api/serde"
	"profile-service/modules/db"
	"profile-service/modules/middleware/problem"
	"profile-service/modules/server"

	httpSwagger "github.com/swaggo/http-swagger"
)

var _ server.RegistrableService = (*FrontService)(nil)

// Status is the body of GET /.
type Status struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

// FrontService serves the status page, probes and API docs.
type FrontService struct {
	name   string
	health db.HealthManager
}

// NewFrontService reports name on GET /. A nil health manager makes
// readiness always succeed.
func NewFrontService(name string, health db.HealthManager) *FrontService {
	return &FrontService{name: name, health: health}
}

func (s *FrontService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.status)
	mux.HandleFunc("GET /healthz", s.healthz)
	mux.HandleFunc("GET /readyz", s.readyz)
	mux.HandleFunc("GET "+openapi.Path, s.openAPI)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL(openapi.Path)))
}

func (s *FrontService) status(w http.ResponseWriter, _ *http.Request) {
	serde.WriteJSON(w, http.StatusOK, Status{Service: s.name, Status: "running"})
}

// healthz is liveness only and never touches the database.
func (s *FrontService) healthz(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

func (s *FrontService) readyz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			slog.WarnContext(r.Context(), "readiness check failed", slog.Any("error", err))
			problem.Write(w, problem.ServiceUnavailable("database unavailable", problem.WithInstance(r.URL.Path)))
			return
		}
	}
	writeText(w, http.StatusOK, "ok")
}

func (s *FrontService) openAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Raw())
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
