// ABOUTME: JSON HTTP API over the calculators and the tracker service.
// ABOUTME: Routes with gorilla/mux and logs every request through logrus.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harperreed/agewell/internal/assistant"
	"github.com/harperreed/agewell/internal/mealplan"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/harperreed/agewell/internal/tracker"
	"github.com/harperreed/agewell/internal/wellness"
	"github.com/sirupsen/logrus"
)

// Server serves the API.
type Server struct {
	svc    *tracker.Service
	logger *logrus.Logger
	router *mux.Router
	now    func() time.Time
}

// NewServer builds the router for svc.
func NewServer(svc *tracker.Service, logger *logrus.Logger) *Server {
	s := &Server{
		svc:    svc,
		logger: logger,
		router: mux.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router.PathPrefix("/api").Subrouter()
	r.Use(s.logRequests)

	r.HandleFunc("/bmi", s.handleBMI).Methods(http.MethodPost)
	r.HandleFunc("/insurance", s.handleInsurance).Methods(http.MethodPost)
	r.HandleFunc("/meal-plan", s.handleMealPlan).Methods(http.MethodPost)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)

	r.HandleFunc("/habits", s.handleListHabits).Methods(http.MethodGet)
	r.HandleFunc("/habits", s.handleAddHabit).Methods(http.MethodPost)
	r.HandleFunc("/habits/progress", s.handleHabitProgress).Methods(http.MethodGet)
	r.HandleFunc("/habits/{id}/increment", s.handleIncrement).Methods(http.MethodPost)
	r.HandleFunc("/habits/{id}/decrement", s.handleDecrement).Methods(http.MethodPost)
	r.HandleFunc("/habits/{id}", s.handleDeleteHabit).Methods(http.MethodDelete)

	r.HandleFunc("/cycles", s.handleListCycles).Methods(http.MethodGet)
	r.HandleFunc("/cycles", s.handleLogCycle).Methods(http.MethodPost)
	r.HandleFunc("/cycles/prediction", s.handlePrediction).Methods(http.MethodGet)
	r.HandleFunc("/cycles/{id}", s.handleDeleteCycle).Methods(http.MethodDelete)

	r.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile", s.handlePutProfile).Methods(http.MethodPut)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	s.logger.Info("API server stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, wellness.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidHabit),
		errors.Is(err, models.ErrInvalidCycle),
		errors.Is(err, models.ErrInvalidProfile),
		errors.Is(err, mealplan.ErrInvalidRequest),
		errors.Is(err, assistant.ErrEmptyMessage),
		errors.Is(err, storage.ErrAmbiguousID):
		status = http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed")
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// day reads the optional ?date=YYYY-MM-DD parameter, defaulting to today.
func (s *Server) day(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return models.Truncate(s.now()), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, badRequest("date must be YYYY-MM-DD")
	}
	return d, nil
}

// profileAge returns the stored profile's age, or 0 when unknown.
func (s *Server) profileAge() (int, error) {
	age, ok, err := s.svc.ProfileAge(s.now())
	if err != nil || !ok {
		return 0, err
	}
	return age, nil
}
