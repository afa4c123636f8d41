package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sporadisk/selfcare/journal"
	"github.com/sporadisk/selfcare/record"
)

const maxBodyBytes = 1 << 20

type meResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type entryRequest struct {
	Text string      `json:"text"`
	Mood record.Mood `json:"mood"`
}

type eventRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    record.Category `json:"category"`
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.account.CurrentUser()
	if !ok {
		s.writeFailure(w, journal.ErrSignedOut, "")
		return
	}

	nickname, err := s.account.Nickname(r.Context())
	if err != nil {
		s.logger.Warn("nickname lookup failed", "error", err)
	}

	writeJSON(w, http.StatusOK, meResponse{
		ID:       user.ID.String(),
		Email:    user.Email,
		Nickname: nickname,
	})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.journal.RecentEntries(r.Context())
	if err != nil {
		s.writeFailure(w, err, "Could not load entries")
		return
	}
	if entries == nil {
		entries = []record.DiaryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleWriteEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if !s.decode(w, r, &req) {
		return
	}

	err := s.journal.WriteEntry(r.Context(), req.Text, req.Mood)
	if err != nil {
		s.writeFailure(w, err, "Could not save entry")
		return
	}
	writeJSON(w, http.StatusCreated, journal.NoticeEntrySaved)
}

func (s *Server) handleListTimeline(w http.ResponseWriter, r *http.Request) {
	events, err := s.journal.Timeline(r.Context())
	if err != nil {
		s.writeFailure(w, err, "Could not load timeline")
		return
	}
	if events == nil {
		events = []record.TimelineEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !s.decode(w, r, &req) {
		return
	}

	err := s.journal.AddEvent(r.Context(), req.Title, req.Description, req.Category)
	if err != nil {
		s.writeFailure(w, err, "Could not add event")
		return
	}
	writeJSON(w, http.StatusCreated, journal.NoticeEventAdded)
}

func (s *Server) handleExportDiary(w http.ResponseWriter, r *http.Request) {
	list := journal.NewEntriesList(s.journal)
	err := list.Refresh(r.Context())
	if err != nil {
		s.writeFailure(w, err, "Could not load entries")
		return
	}

	exp := s.exporter
	saver := &responseSaver{w: w}
	exp.Saver = saver

	err = list.Export(&exp)
	if errors.Is(err, journal.ErrNothingToExport) {
		writeJSON(w, http.StatusUnprocessableEntity, journal.NoticeNoEntries)
		return
	}
	if err != nil && !saver.wrote {
		s.writeFailure(w, err, "Could not export diary")
		return
	}
	if err != nil {
		s.logger.Error("diary download interrupted", "error", err)
	}
}

func (s *Server) handleExportTimeline(w http.ResponseWriter, r *http.Request) {
	list := journal.NewTimelineList(s.journal)
	err := list.Refresh(r.Context())
	if err != nil {
		s.writeFailure(w, err, "Could not load timeline")
		return
	}

	exp := s.exporter
	saver := &responseSaver{w: w}
	exp.Saver = saver

	err = list.Export(&exp)
	if errors.Is(err, journal.ErrNothingToExport) {
		writeJSON(w, http.StatusUnprocessableEntity, journal.NoticeNoEvents)
		return
	}
	if err != nil && !saver.wrote {
		s.writeFailure(w, err, "Could not export timeline")
		return
	}
	if err != nil {
		s.logger.Error("timeline download interrupted", "error", err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, journal.Notice{
			Kind:        journal.Failure,
			Title:       "Invalid request",
			Description: err.Error(),
		})
		return false
	}
	return true
}

// writeFailure maps err to a status code and a notice.
func (s *Server) writeFailure(w http.ResponseWriter, err error, fallback string) {
	code := http.StatusBadGateway
	switch {
	case errors.Is(err, journal.ErrMissingFields):
		code = http.StatusBadRequest
	case errors.Is(err, journal.ErrSignedOut):
		code = http.StatusUnauthorized
	default:
		s.logger.Error(fallback, "error", err)
	}

	writeJSON(w, code, journal.FailureNotice(err, fallback))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// responseSaver delivers an exported document as a download.
type responseSaver struct {
	w     http.ResponseWriter
	wrote bool
}

func (rs *responseSaver) Save(filename string, data []byte) error {
	h := rs.w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Set("Content-Length", strconv.Itoa(len(data)))

	rs.wrote = true
	rs.w.WriteHeader(http.StatusOK)
	_, err := rs.w.Write(data)
	if err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	return nil
}
