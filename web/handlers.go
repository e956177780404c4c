package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/poiesic/wellwise/dialogue"
	"github.com/poiesic/wellwise/session"
)

type messageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// SessionView is the public summary of a conversation.
type SessionView struct {
	ID       string        `json:"session_id"`
	Phase    session.Phase `json:"phase"`
	Symptoms []string      `json:"symptoms"`
	Pending  []string      `json:"pending,omitempty"`
	Welcome  string        `json:"welcome,omitempty"`
}

// MessageResponse pairs a turn's reply with its session id.
type MessageResponse struct {
	ID    string          `json:"session_id"`
	Reply *dialogue.Reply `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newSessionView(id string, st session.State) SessionView {
	return SessionView{
		ID:       id,
		Phase:    st.Phase,
		Symptoms: st.Tracker.Symptoms(),
		Pending:  st.Pending,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := static.ReadFile("static/chat.html")
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, st := s.store.Create()
	view := newSessionView(id, st)
	view.Welcome = dialogue.MsgWelcome
	s.writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := s.store.Get(id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionView(id, st))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, err := s.store.Update(id, func(session.State) (session.State, error) {
		return session.NewState(), nil
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionView(id, st))
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req messageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, http.StatusBadRequest, "message is required and must be at most 2000 characters")
		return
	}

	var reply *dialogue.Reply
	_, err := s.store.Update(id, func(st session.State) (session.State, error) {
		next, rep, err := s.handler.Handle(r.Context(), st, req.Message)
		if err != nil {
			return st, err
		}
		reply = rep
		return next, nil
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, MessageResponse{ID: id, Reply: reply})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrSessionNotFound) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.logger.Error("turn failed", "err", err)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", "err", err)
	}
}
