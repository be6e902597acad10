// Package web serves the diet plan form and its downloads.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"mime"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"diet-planner/internal/export"
	"diet-planner/internal/metrics"
	"diet-planner/internal/planner"
	"diet-planner/internal/profile"
	"diet-planner/internal/shared"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"checked": func(selected []string, v string) bool { return slices.Contains(selected, v) },
}).ParseFS(templateFiles, "templates/index.html"))

type pageData struct {
	Options formOptions
	Answers profile.Answers
	Error   string
	Hint    string
	Plan    *planner.Plan
	Token   string
}

// Server is the HTTP front end.
type Server struct {
	planner  *planner.Planner
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer
	secret   []byte
}

// NewServer creates a Server. gatherer backs /metrics and recorder may be nil.
func NewServer(p *planner.Planner, recorder *metrics.Recorder, gatherer prometheus.Gatherer, secret []byte) *Server {
	return &Server{
		planner:  p,
		recorder: recorder,
		gatherer: gatherer,
		secret:   secret,
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleForm)
	r.Post("/plan", s.handlePlan)
	r.Post("/export/{format}", s.handleExport)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{Options: options, Answers: defaultAnswers()})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	answers, err := parseAnswers(r)
	if err == nil {
		var plan *planner.Plan
		plan, err = s.planner.Generate(r.Context(), answers)
		if err == nil {
			s.renderPlan(w, answers, plan)
			return
		}
	}

	msg, hint := shared.UserMessage(err)
	s.render(w, statusFor(err), pageData{Options: options, Answers: withFormDefaults(answers), Error: msg, Hint: hint})
}

func (s *Server) renderPlan(w http.ResponseWriter, answers profile.Answers, plan *planner.Plan) {
	token, err := signExportToken(s.secret, plan.ID, plan.Profile.Name, plan.Text, plan.CreatedAt)
	if err != nil {
		log.Printf("[%s] failed to sign download token: %v", plan.ID, err)
		msg, hint := shared.UserMessage(err)
		s.render(w, http.StatusInternalServerError, pageData{Options: options, Answers: answers, Error: msg, Hint: hint})
		return
	}
	s.render(w, http.StatusOK, pageData{Options: options, Answers: withFormDefaults(answers), Plan: plan, Token: token})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "txt" && format != "pdf" {
		http.NotFound(w, r)
		return
	}

	claims, err := parseExportToken(s.secret, r.PostFormValue("token"))
	if err != nil {
		log.Printf("Rejected %s export: %v", format, err)
		http.Error(w, "This download link is invalid or has expired. Please generate the plan again.", http.StatusForbidden)
		return
	}
	date, err := time.Parse(time.DateOnly, claims.Date)
	if err != nil {
		http.Error(w, "This download link is invalid. Please generate the plan again.", http.StatusForbidden)
		return
	}

	var artifact export.Artifact
	if format == "pdf" {
		artifact, err = export.PDF(claims.Plan)
	} else {
		artifact = export.Text(claims.Plan)
	}
	s.recorder.RecordExport(format, err)
	if err != nil {
		log.Printf("[%s] %s export failed: %v", claims.ID, format, err)
		msg, hint := shared.UserMessage(err)
		http.Error(w, msg+"\n"+hint, statusFor(err))
		return
	}
	artifact.FileName = export.FileName(claims.Name, date, format)

	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName}))
	if _, err := w.Write(artifact.Data); err != nil {
		log.Printf("[%s] failed to write %s: %v", claims.ID, artifact.FileName, err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(metrics.GetSysHealth()); err != nil {
		log.Printf("Failed to encode health: %v", err)
	}
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("Failed to render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func statusFor(err error) int {
	var (
		validationErr *shared.ValidationError
		serviceErr    *shared.ServiceError
		encodingErr   *shared.EncodingError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway
	case errors.As(err, &encodingErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
