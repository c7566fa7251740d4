package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"chat-sync/domain"
	"chat-sync/projection"
	"chat-sync/search"
)

type Snapshotter interface {
	Snapshot() *projection.State
}

// Searcher answers /find queries against the local full-text index.
type Searcher interface {
	Search(ctx context.Context, query search.Query) ([]search.Hit, error)
}

type StatsProvider func() map[string]any

type statePayload struct {
	Users  map[domain.UserID]domain.User `json:"users"`
	Rooms  []roomPayload                 `json:"rooms"`
	Online []domain.UserID               `json:"online"`
}

type roomPayload struct {
	ID            domain.RoomID    `json:"id"`
	Name          string           `json:"name"`
	Volume        int              `json:"volume"`
	Notifications bool             `json:"notifications"`
	Users         []domain.UserID  `json:"users"`
	AllLoaded     bool             `json:"allLoaded"`
	Messages      []domain.Message `json:"messages"`
}

// StartDebugServer exposes the current projection, session stats and the
// message search index as JSON, for poking at a running client.
func StartDebugServer(port int, engine Snapshotter, stats StatsProvider, searcher Searcher, log *slog.Logger) {
	mux := newDebugMux(engine, stats, searcher, log)

	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info("Debug server listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warn("Debug server stopped", "error", err)
		}
	}()
}

func newDebugMux(engine Snapshotter, stats StatsProvider, searcher Searcher, log *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, toStatePayload(engine.Snapshot()), log)
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, _ *http.Request) {
		payload := map[string]any{}
		if stats != nil {
			payload = stats()
		}
		writeJSON(w, payload, log)
	})

	// /find?q=invoice --room 12 --limit 5 runs a /find command against the
	// message index and returns the matching hits.
	mux.HandleFunc("/find", func(w http.ResponseWriter, r *http.Request) {
		query := search.ParseQuery(r.URL.Query().Get("q"))
		if query.Terms == "" {
			http.Error(w, "missing search terms, use ?q=", http.StatusBadRequest)
			return
		}
		hits, err := searcher.Search(r.Context(), query)
		if err != nil {
			log.Warn("Search failed", "query", query.RawInput, "error", err)
			http.Error(w, "search failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, toFindPayload(query, hits), log)
	})

	return mux
}

type findPayload struct {
	Terms string        `json:"terms"`
	Room  domain.RoomID `json:"room,omitempty"`
	Hits  []hitPayload  `json:"hits"`
}

type hitPayload struct {
	Room    domain.RoomID    `json:"room"`
	ID      domain.MessageID `json:"id"`
	Content string           `json:"content"`
}

func toFindPayload(query search.Query, hits []search.Hit) findPayload {
	payload := findPayload{
		Terms: query.Terms,
		Room:  query.Room,
		Hits:  []hitPayload{},
	}
	for _, hit := range hits {
		payload.Hits = append(payload.Hits, hitPayload{Room: hit.Room, ID: hit.ID, Content: hit.Content})
	}
	return payload
}

func toStatePayload(state *projection.State) statePayload {
	payload := statePayload{
		Users:  state.Users,
		Online: state.OnlineList(),
	}
	for _, room := range state.Rooms {
		payload.Rooms = append(payload.Rooms, roomPayload{
			ID:            room.ID,
			Name:          room.Name,
			Volume:        room.Volume,
			Notifications: room.Notifications,
			Users:         room.Users,
			AllLoaded:     room.AllLoaded,
			Messages:      room.Messages,
		})
	}
	return payload
}

func writeJSON(w http.ResponseWriter, payload any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn("Failed to encode debug payload", "error", err)
	}
}
