package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/codex-battleship/internal/app"
	"github.com/jaminalder/codex-battleship/internal/constants"
	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/jaminalder/codex-battleship/internal/identity"
	"github.com/rs/zerolog"
)

type handlers struct {
	svc       *app.Service
	tpl       *templates
	logger    zerolog.Logger
	heartbeat time.Duration
	origins   []string
}

type errorBody struct {
	Kind domain.Kind `json:"kind"`
	Data string      `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalid:
		return http.StatusBadRequest
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindFinished:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// log prefers the request-scoped logger set by RequestID.
func (h *handlers) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.logger
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindNone {
		h.log(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Kind: "Internal", Data: "internal error"})
		return
	}
	h.log(r).Debug().Err(err).Str("kind", string(kind)).Msg("request rejected")
	body := errorBody{Kind: kind, Data: domain.Reason(err)}
	if kind == domain.KindFinished {
		body.Data = ""
	}
	writeJSON(w, statusFor(kind), body)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalid)
	}
	return nil
}

func parseKey(s string) (identity.Key, error) {
	k, err := identity.Parse(s)
	if err != nil {
		return identity.Key{}, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
	}
	return k, nil
}

// callerKey authenticates the caller from the X-Player-Secret header, then the
// player_secret cookie, and returns the public key derived from the secret.
// Callers with neither get a fresh secret cookie. Only the derived key is
// ever written to responses.
func callerKey(w http.ResponseWriter, r *http.Request) (identity.Key, error) {
	if v := r.Header.Get(constants.PlayerSecretHeader); v != "" {
		secret, err := identity.ParseSecret(v)
		if err != nil {
			return identity.Key{}, fmt.Errorf("%w: %v", domain.ErrInvalid, err)
		}
		return secret.Key(), nil
	}
	if c, err := r.Cookie(constants.PlayerSecretCookie); err == nil && c.Value != "" {
		if secret, err := identity.ParseSecret(c.Value); err == nil {
			return secret.Key(), nil
		}
	}
	secret := identity.NewSecret()
	http.SetCookie(w, &http.Cookie{
		Name:     constants.PlayerSecretCookie,
		Value:    secret.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return secret.Key(), nil
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data := struct{ Key string }{Key: caller.String()}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "", data))
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": caller.String()})
}

func (h *handlers) createMatch(w http.ResponseWriter, r *http.Request) {
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req struct {
		Opponent string `json:"opponent"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	opponent, err := parseKey(req.Opponent)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.svc.CreateMatch(r.Context(), caller, opponent)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/matches/"+st.Match.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": st.Match.ID})
}

func (h *handlers) listMatches(w http.ResponseWriter, r *http.Request) {
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	ids, err := h.svc.Matches(r.Context(), caller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (h *handlers) activeMatch(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Active()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": st.Match.ID, "turn": st.Match.Turn.String()})
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, ok := h.svc.Get(id)
	if !ok {
		h.writeError(w, r, domain.NotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, st.View())
}

func (h *handlers) placeShips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req struct {
		Ships []string `json:"ships"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.PlaceShips(r.Context(), caller, id, req.Ships); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, _ := h.svc.Get(id)
	writeJSON(w, http.StatusOK, st.View())
}

func (h *handlers) proposeShot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req struct {
		X *int `json:"x"`
		Y *int `json:"y"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.X == nil || req.Y == nil {
		h.writeError(w, r, fmt.Errorf("%w: x and y are required", domain.ErrInvalid))
		return
	}
	if err := h.svc.ProposeShot(r.Context(), caller, id, *req.X, *req.Y); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, _ := h.svc.Get(id)
	writeJSON(w, http.StatusAccepted, st.View())
}

func (h *handlers) acknowledge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	outcome, err := h.svc.AcknowledgeShot(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.Outcome{"result": outcome})
}

func (h *handlers) ownBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.svc.OwnBoard(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) shots(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.svc.Shots(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// view renders the game page. htmx refreshes send HX-Request and get only the
// boards fragment back.
func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	caller, err := callerKey(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	st, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := gameData{ID: id, Me: caller.String(), Match: st.View()}
	if own, err := h.svc.OwnBoard(r.Context(), caller, id); err == nil {
		data.Own = &own
	}
	if shots, err := h.svc.Shots(r.Context(), caller, id); err == nil {
		data.Shots = &shots
	}
	data.MyTurn = st.Match.Turn == caller && st.Match.BothPlaced() && !st.Match.IsFinished() && st.Match.Pending == nil
	data.MustAck = st.Match.Pending != nil && st.Match.Pending.Target == caller

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Header.Get("HX-Request") == "true" {
		_, _ = w.Write(renderTemplate(h.tpl.boards, "", data))
		return
	}
	data.BoardsHTML = template.HTML(renderTemplate(h.tpl.boards, "", data))
	_, _ = w.Write(renderTemplate(h.tpl.game, "", data))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		h.writeError(w, r, domain.NotFound(id))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// plain requests only get the headers
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: match\n")
			_, _ = fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}
