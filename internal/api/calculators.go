// ABOUTME: Handlers for the stateless calculators: BMI, insurance, meal plan, and chat.
// ABOUTME: Inputs are validated before anything is computed.
package api

import (
	"net/http"

	"github.com/harperreed/agewell/internal/assistant"
	"github.com/harperreed/agewell/internal/mealplan"
	"github.com/harperreed/agewell/internal/wellness"
)

type bmiRequest struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	AgeYears *int    `json:"age_years,omitempty"`
}

func (s *Server) handleBMI(w http.ResponseWriter, r *http.Request) {
	var req bmiRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	in := wellness.BiometricInput{HeightCm: req.HeightCm, WeightKg: req.WeightKg}
	if req.AgeYears != nil {
		in.AgeYears = *req.AgeYears
	} else {
		age, err := s.profileAge()
		if err != nil {
			s.writeError(w, err)
			return
		}
		in.AgeYears = age
	}
	if err := in.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wellness.ClassifyBMI(in))
}

func (s *Server) handleInsurance(w http.ResponseWriter, r *http.Request) {
	var p wellness.InsuranceProfile
	if err := decodeJSON(r, &p); err != nil {
		s.writeError(w, err)
		return
	}
	if p.AgeYears == 0 {
		age, err := s.profileAge()
		if err != nil {
			s.writeError(w, err)
			return
		}
		p.AgeYears = age
	}
	if err := p.Validate(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wellness.EstimateSavings(p))
}

func (s *Server) handleMealPlan(w http.ResponseWriter, r *http.Request) {
	var req mealplan.Request
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	plan, err := mealplan.Generate(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Matched  string `json:"matched,omitempty"`
	Fallback bool   `json:"fallback"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	conv := assistant.NewConversation()
	reply, err := conv.Send(req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	topic, ok := assistant.Match(req.Message)
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply.Text, Matched: topic.Keyword, Fallback: !ok})
}
