package web

import (
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/jaminalder/codex-battleship/internal/domain"
)

// stream streams the same public events as the SSE endpoint, one text
// frame per event. Client frames are ignored.
func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		h.writeError(w, r, domain.NotFound(id))
		return
	}
	logger := h.log(r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(h.origins),
	})
	if err != nil {
		logger.Warn().Err(err).Str("match_id", id).Msg("failed to accept websocket")
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())
	ch, unsub := h.svc.Subscribe(ctx, id)
	defer unsub()
	logger.Debug().Str("match_id", id).Msg("websocket subscribed")

	for {
		select {
		case <-ctx.Done():
			return
		case b, ok := <-ch:
			if !ok {
				_ = conn.Close(websocket.StatusTryAgainLater, "subscriber dropped")
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, b); err != nil {
				logger.Debug().Err(err).Str("match_id", id).Msg("websocket write failed")
				return
			}
		}
	}
}

// originPatterns turns configured CORS origins into host patterns for the
// websocket origin check.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			return []string{"*"}
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}
