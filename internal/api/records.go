// ABOUTME: Handlers for habits, cycles, and the profile.
// ABOUTME: Converts between request/response bodies and the stored models.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/harperreed/agewell/internal/models"
	"github.com/harperreed/agewell/internal/storage"
	"github.com/harperreed/agewell/internal/wellness"
)

type habitBody struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Target    int       `json:"target"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toHabitBody(h *models.Habit) habitBody {
	return habitBody{
		ID:        h.ID.String(),
		Name:      h.Name,
		Target:    h.TargetFrequency,
		Category:  h.Category,
		CreatedAt: h.CreatedAt,
	}
}

type addHabitRequest struct {
	Name     string `json:"name"`
	Target   int    `json:"target"`
	Category string `json:"category,omitempty"`
}

type habitChangeBody struct {
	HabitID   string `json:"habit_id"`
	Name      string `json:"name"`
	Target    int    `json:"target"`
	Completed int    `json:"completed"`
	Changed   bool   `json:"changed"`
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.svc.Habits()
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]habitBody, 0, len(habits))
	for _, h := range habits {
		out = append(out, toHabitBody(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	var req addHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	h, err := s.svc.AddHabit(req.Name, req.Target, req.Category)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHabitBody(h))
}

func (s *Server) handleHabitProgress(w http.ResponseWriter, r *http.Request) {
	day, err := s.day(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	summary, err := s.svc.Progress(day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	s.changeHabit(w, r, true)
}

func (s *Server) handleDecrement(w http.ResponseWriter, r *http.Request) {
	s.changeHabit(w, r, false)
}

func (s *Server) changeHabit(w http.ResponseWriter, r *http.Request, up bool) {
	day, err := s.day(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	change := s.svc.Decrement
	if up {
		change = s.svc.Increment
	}
	ch, err := change(id, day)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, habitChangeBody{
		HabitID:   ch.Habit.ID.String(),
		Name:      ch.Habit.Name,
		Target:    ch.Habit.TargetFrequency,
		Completed: ch.Completed,
		Changed:   ch.Changed,
	})
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.DeleteHabit(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cycleBody struct {
	ID           string   `json:"id"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	CycleLength  *int     `json:"cycle_length,omitempty"`
	PeriodLength *int     `json:"period_length,omitempty"`
	Symptoms     []string `json:"symptoms"`
	Mood         *string  `json:"mood,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

func toCycleBody(c *models.Cycle) cycleBody {
	out := cycleBody{
		ID:           c.ID.String(),
		StartDate:    c.StartDate.Format(models.DateFormat),
		CycleLength:  c.CycleLength,
		PeriodLength: c.PeriodLength,
		Symptoms:     c.Symptoms,
		Mood:         c.Mood,
		Notes:        c.Notes,
	}
	if out.Symptoms == nil {
		out.Symptoms = []string{}
	}
	if c.EndDate != nil {
		out.EndDate = c.EndDate.Format(models.DateFormat)
	}
	return out
}

type logCycleRequest struct {
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	PeriodLength *int     `json:"period_length,omitempty"`
	Symptoms     []string `json:"symptoms,omitempty"`
	Mood         string   `json:"mood,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

func (req logCycleRequest) cycle() (*models.Cycle, error) {
	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		return nil, badRequest("start_date must be YYYY-MM-DD")
	}
	c := models.NewCycle(start).
		WithSymptoms(req.Symptoms).
		WithMood(req.Mood).
		WithNotes(req.Notes)
	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			return nil, badRequest("end_date must be YYYY-MM-DD")
		}
		c.WithEndDate(end)
	}
	if req.PeriodLength != nil {
		c.WithPeriodLength(*req.PeriodLength)
	}
	return c, nil
}

type predictionBody struct {
	wellness.CyclePrediction
	DaysUntil int `json:"days_until"`
}

func (s *Server) handleListCycles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, badRequest("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	cycles, err := s.svc.Cycles(limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]cycleBody, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, toCycleBody(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLogCycle(w http.ResponseWriter, r *http.Request) {
	var req logCycleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	c, err := req.cycle()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.svc.LogCycle(c); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCycleBody(c))
}

func (s *Server) handleDeleteCycle(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.DeleteCycle(mux.Vars(r)["id"]); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	p, ok, err := s.svc.Prediction()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, predictionBody{
		CyclePrediction: p,
		DaysUntil:       wellness.DaysUntil(p, s.now()),
	})
}

type profileBody struct {
	FullName    string     `json:"full_name"`
	Email       string     `json:"email,omitempty"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	Age         *int       `json:"age,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (s *Server) toProfileBody(p *models.Profile) profileBody {
	out := profileBody{
		FullName: p.FullName,
		Email:    p.Email,
		Gender:   p.Gender,
		PhotoURL: p.PhotoURL,
	}
	if p.DateOfBirth != nil {
		out.DateOfBirth = p.DateOfBirth.Format(models.DateFormat)
	}
	if age, ok := p.Age(s.now()); ok {
		out.Age = &age
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toProfileBody(p))
}

type putProfileRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req putProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	p := models.NewProfile(req.FullName)
	existing, err := s.svc.Profile()
	switch {
	case err == nil:
		p.PhotoURL = existing.PhotoURL
	case !errors.Is(err, storage.ErrNotFound):
		s.writeError(w, err)
		return
	}

	p.Email = req.Email
	if req.Gender != "" {
		p.Gender = &req.Gender
	}
	if req.DateOfBirth != "" {
		dob, err := models.ParseDate(req.DateOfBirth)
		if err != nil {
			s.writeError(w, badRequest("date_of_birth must be YYYY-MM-DD"))
			return
		}
		p.DateOfBirth = &dob
	}

	if err := s.svc.UpdateProfile(p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toProfileBody(p))
}
