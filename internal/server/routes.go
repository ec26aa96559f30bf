package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lazypower/growthlog/internal/logger"
	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/store"
)

// Client-facing error messages.
const (
	msgInvalidUserID = "잘못된 userId 입력입니다."
	msgInvalidGoalID = "잘못된 goalId 입력입니다."
	msgInvalidBody   = "잘못된 요청 본문입니다."
	msgInvalidPeers  = "잘못된 peers 값입니다."
	msgUserNotFound  = "해당 사용자를 찾을 수 없습니다."
	msgGoalNotFound  = "해당 목표를 찾을 수 없습니다."
	msgInternal      = "Internal Server Error"
)

func (s *Server) handleFeedbackList(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userID", msgInvalidUserID)
	if !ok {
		return
	}
	order := report.ParseSortOrder(r.URL.Query().Get("sort"))

	list, err := s.reports.FeedbackList(r.Context(), userID, order)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePeriodDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "userID", msgInvalidUserID)
	if !ok {
		return
	}
	withPeers := true
	if v := r.URL.Query().Get("peers"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidPeers)
			return
		}
		withPeers = b
	}

	detail, err := s.reports.PeriodDetail(r.Context(), userID, withPeers, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// idParam reads a positive id from the named path parameter, writing 400
// with msg otherwise.
func idParam(w http.ResponseWriter, r *http.Request, name, msg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}

// fail maps err to a status. Causes of 500s are logged, not echoed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, store.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, msgGoalNotFound)
	case errors.As(err, &verrs):
		writeError(w, http.StatusBadRequest, verrs.Error())
	default:
		s.log.WithError(err).WithFields(logger.RequestFields(r)).Error("request failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
