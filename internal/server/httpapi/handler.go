package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mshimizu/kintai/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	WorkDate  string `json:"work_date"`
	Status    string `json:"status"`
	SessionID *int64 `json:"session_id"`
}

type punchRequest struct {
	Action string `json:"action"`
}

type punchResponse struct {
	Message   string `json:"message"`
	SessionID *int64 `json:"session_id,omitempty"`
}

type reportRow struct {
	WorkDate     string  `json:"work_date"`
	SessionID    *int64  `json:"session_id"`
	StartAt      *string `json:"start_at"`
	EndAt        *string `json:"end_at"`
	BreakSeconds int64   `json:"break_seconds"`
	WorkSeconds  int64   `json:"work_seconds"`
	NetSeconds   int64   `json:"net_seconds"`
}

type reportResponse struct {
	Month string      `json:"month"`
	Rows  []reportRow `json:"rows"`
}

type breakRow struct {
	ID           int64   `json:"id"`
	BreakStartAt string  `json:"break_start_at"`
	BreakEndAt   *string `json:"break_end_at"`
}

type breaksResponse struct {
	Breaks []breakRow `json:"breaks"`
}

type sessionBoundsRequest struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

type breakBoundsRequest struct {
	BreakStartAt string `json:"break_start_at"`
	BreakEndAt   string `json:"break_end_at"`
}

type breakCreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the domain taxonomy onto the uniform {message} shape:
// validation and conflict are 400, not found is 404, everything else is an
// opaque 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		s.writeJSON(w, http.StatusBadRequest, messageResponse{Message: common.Message(err)})
	case errors.Is(err, common.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, messageResponse{Message: common.Message(err)})
	default:
		s.logger.Error(r.Context(), err.Error(), "request_id", r.Header.Get("X-Request-Id"))
		s.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal error"})
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.Validationf("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, what string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validationf("invalid %s id", what)
	}
	return id, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	result, err := s.attendance.Status(r.Context(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, statusResponse{
		WorkDate:  result.WorkDate,
		Status:    string(result.Status),
		SessionID: result.SessionID,
	})
}

func (s *Server) handlePunch(w http.ResponseWriter, r *http.Request) {
	var req punchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.attendance.Punch(r.Context(), req.Action, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, punchResponse{Message: result.Message, SessionID: result.SessionID})
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.attendance.MonthlyReport(r.Context(), r.URL.Query().Get("month"), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows := make([]reportRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, reportRow{
			WorkDate:     row.WorkDate,
			SessionID:    row.SessionID,
			StartAt:      row.StartAt,
			EndAt:        row.EndAt,
			BreakSeconds: row.BreakSeconds,
			WorkSeconds:  row.WorkSeconds,
			NetSeconds:   row.NetSeconds,
		})
	}
	s.writeJSON(w, http.StatusOK, reportResponse{Month: report.Month, Rows: rows})
}

func (s *Server) handleListBreaks(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "session")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.attendance.ListBreaks(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows := make([]breakRow, 0, len(list))
	for _, b := range list {
		rows = append(rows, breakRow{ID: b.ID, BreakStartAt: b.StartAt, BreakEndAt: b.EndAt})
	}
	s.writeJSON(w, http.StatusOK, breaksResponse{Breaks: rows})
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "session")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req sessionBoundsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.attendance.UpdateSessionBounds(r.Context(), sessionID, req.StartAt, req.EndAt, s.now()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "working hours updated"})
}

func (s *Server) handleAddBreak(w http.ResponseWriter, r *http.Request) {
	sessionID, err := pathID(r, "session")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req breakBoundsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	id, err := s.attendance.AddBreak(r.Context(), sessionID, req.BreakStartAt, req.BreakEndAt, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, breakCreatedResponse{Message: "break added", ID: id})
}

func (s *Server) handleUpdateBreak(w http.ResponseWriter, r *http.Request) {
	breakID, err := pathID(r, "break")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req breakBoundsRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.attendance.UpdateBreak(r.Context(), breakID, req.BreakStartAt, req.BreakEndAt, s.now()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "break updated"})
}

func (s *Server) handleDeleteBreak(w http.ResponseWriter, r *http.Request) {
	breakID, err := pathID(r, "break")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.attendance.DeleteBreak(r.Context(), breakID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "break deleted"})
}
