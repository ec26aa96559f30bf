package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/store"
)

type goalRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	Saved     bool   `json:"is_saved"`
}

type goalResponse struct {
	ID        int64  `json:"goal_id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	Saved     bool   `json:"is_saved"`
}

func toGoalResponse(g *store.Goal) goalResponse {
	return goalResponse{
		ID:        g.ID,
		UserID:    g.UserID,
		Title:     g.Title,
		StartDate: g.StartDate.Format(report.DateLayout),
		Saved:     g.Saved,
	}
}

// decodeGoal reads a goal body for userID, writing 400 on malformed input.
// Field-level checks are left to the store's validator.
func decodeGoal(w http.ResponseWriter, r *http.Request, userID int64) (*store.Goal, bool) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return nil, false
	}
	start, err := time.Parse(report.DateLayout, req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date는 YYYY-MM-DD 형식이어야 합니다.")
		return nil, false
	}
	return &store.Goal{UserID: userID, Title: req.Title, StartDate: start, Saved: req.Saved}, true
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userID", msgInvalidUserID)
	if !ok {
		return
	}
	g, ok := decodeGoal(w, r, userID)
	if !ok {
		return
	}

	if _, err := s.reports.DB.GetUser(r.Context(), userID); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.reports.DB.AddGoal(r.Context(), g); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userID", msgInvalidUserID)
	if !ok {
		return
	}
	goalID, ok := idParam(w, r, "goalID", msgInvalidGoalID)
	if !ok {
		return
	}
	g, ok := decodeGoal(w, r, userID)
	if !ok {
		return
	}
	g.ID = goalID

	if err := s.reports.DB.UpdateGoal(r.Context(), g); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userID", msgInvalidUserID)
	if !ok {
		return
	}
	goalID, ok := idParam(w, r, "goalID", msgInvalidGoalID)
	if !ok {
		return
	}

	if err := s.reports.DB.DeleteGoal(r.Context(), userID, goalID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "goal_id": goalID})
}

func (s *Server) handlePeerGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userID", msgInvalidUserID)
	if !ok {
		return
	}

	peers, err := s.reports.PeerGoals(r.Context(), userID, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, peers)
}
