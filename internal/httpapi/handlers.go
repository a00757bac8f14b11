package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jacksmith/trips/internal/auth"
	"github.com/jacksmith/trips/internal/model"
	"github.com/jacksmith/trips/internal/ops"
)

// listResponse is the body of GET /api/trips.
type listResponse struct {
	State string       `json:"state"`
	Query string       `json:"query"`
	Trips []model.Trip `json:"trips"`
	Total int          `json:"total"`
	Hint  string       `json:"hint,omitempty"`
}

// createTripRequest is the body of POST /api/trips. Every field is optional.
type createTripRequest struct {
	Title          string   `json:"title"`
	Destination    string   `json:"destination"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Image          string   `json:"image"`
	Notes          string   `json:"notes"`
	SavedLocations []string `json:"savedLocations"`
	IsFavorite     bool     `json:"isFavorite"`
}

// loginRequest is the body of POST /api/session. A name signs up a new
// account; without one the email signs in.
type loginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  s.manager.Ready(),
	}, s.logger)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var favorites bool
	if v := r.URL.Query().Get("favorites"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid favorites value %q", v), s.logger)
			return
		}
		favorites = b
	}

	view := s.manager.List(query, ops.ListOptions{FavoritesOnly: favorites})
	resp := listResponse{
		State: view.State.String(),
		Query: view.Query,
		Trips: view.Trips,
		Total: view.Total,
	}
	if resp.Trips == nil {
		resp.Trips = []model.Trip{}
	}
	if view.Empty() {
		resp.Hint = view.Hint()
	}
	writeJSON(w, http.StatusOK, resp, s.logger)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, trip, s.logger)
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", s.logger)
			return
		}
	}

	trip, err := s.manager.Create(r.Context(), model.TripFields{
		Title:          req.Title,
		Destination:    req.Destination,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Image:          req.Image,
		Notes:          req.Notes,
		SavedLocations: req.SavedLocations,
		IsFavorite:     req.IsFavorite,
	})
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusCreated, trip, s.logger)
}

func (s *Server) handleSaveTrip(w http.ResponseWriter, r *http.Request) {
	var trip model.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", s.logger)
		return
	}
	trip.ID = chi.URLParam(r, "id")

	saved, err := s.manager.Save(r.Context(), trip)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, saved, s.logger)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	trip, err := s.manager.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, trip, s.logger)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, err, s.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": s.session.IsAuthenticated(),
		"user":          s.session.User(),
	}, s.logger)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", s.logger)
		return
	}

	signIn := s.session.Login
	if req.Name != "" {
		signIn = func(ctx context.Context, email string) (*auth.User, error) {
			return s.session.Signup(ctx, req.Name, email)
		}
	}

	user, err := signIn(r.Context(), req.Email)
	if err != nil {
		handleError(w, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, user, s.logger)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Logout(r.Context()); err != nil {
		handleError(w, err, s.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.notices.Drain(), s.logger)
}
