package transport_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-sync/domain"
	"chat-sync/reconcile"
	"chat-sync/transport"
)

var upgrader = websocket.Upgrader{}

// fakeServer upgrades one connection, pushes the given frames in order, and
// keeps the connection open until the test finishes.
func fakeServer(t *testing.T, gotAuth chan<- string, frames ...string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotAuth != nil {
			select {
			case gotAuth <- r.Header.Get("Authorization"):
			default:
			}
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection open; the client closes it on ctx cancel.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 5*time.Second, 10*time.Millisecond)
}

func Test_Client_Applies_Stream_To_Projection(t *testing.T) {
	req := require.New(t)
	url := fakeServer(t, nil,
		`{"handler":"ws","action":"setWsId","opponentWsId":"0001:ab",
		  "rooms":[{"roomId":1,"name":"general","users":[7]}],
		  "users":[{"userId":7,"user":"bob","sex":"M"}],
		  "online":[7]}`,
		`{"handler":"chat","action":"printMessage","id":1,"roomId":1,"userId":7,"time":100,"content":"hello"}`,
		`{"handler":"chat","action":"printMessage","id":2,"roomId":1,"userId":7,"time":50,"content":"earlier"}`,
	)

	engine := reconcile.NewEngine(logs.GetLoggerFromLevel(slog.LevelDebug))
	client := transport.NewClient(url, "", engine, logs.GetLoggerFromLevel(slog.LevelDebug), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	finished := make(chan error, 1)
	go func() { finished <- client.Run(ctx) }()

	waitFor(t, func() bool {
		room := engine.Snapshot().Room(1)
		return room != nil && len(room.Messages) == 2
	})

	state := engine.Snapshot()
	req.Equal("general", state.Room(1).Name)
	req.Equal("bob", state.Users[7].Name)
	req.True(state.IsOnline(7))
	// The older live message sits before the newer one.
	req.Equal(domain.MessageID(2), state.Room(1).Messages[0].ID)
	req.Equal(domain.MessageID(1), state.Room(1).Messages[1].ID)

	cancel()
	req.NoError(<-finished)
}

func Test_Client_Sends_Bearer_Token(t *testing.T) {
	req := require.New(t)
	gotAuth := make(chan string, 1)
	url := fakeServer(t, gotAuth)

	engine := reconcile.NewEngine(logs.GetLoggerFromLevel(slog.LevelDebug))
	client := transport.NewClient(url, "secret-token", engine, logs.GetLoggerFromLevel(slog.LevelDebug), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = client.Run(ctx) }()

	select {
	case auth := <-gotAuth:
		req.Equal("Bearer secret-token", auth)
	case <-time.After(5 * time.Second):
		t.Fatal("server never saw the handshake")
	}
}

func Test_Client_Drops_Bad_Frames_And_Keeps_Reading(t *testing.T) {
	url := fakeServer(t, nil,
		`{"handler":"ws","action":"setWsId","rooms":[{"roomId":1,"name":"general"}],"users":[],"online":[]}`,
		`this is not json`,
		`{"handler":"chat","action":"growl"}`,
		`{"handler":"chat","action":"printMessage","roomId":1}`,
		`{"handler":"chat","action":"printMessage","id":1,"roomId":1,"userId":7,"time":100,"content":"survivor"}`,
	)

	engine := reconcile.NewEngine(logs.GetLoggerFromLevel(slog.LevelDebug))
	client := transport.NewClient(url, "", engine, logs.GetLoggerFromLevel(slog.LevelDebug), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = client.Run(ctx) }()

	waitFor(t, func() bool {
		room := engine.Snapshot().Room(1)
		return room != nil && len(room.Messages) == 1
	})
	require.Equal(t, "survivor", engine.Snapshot().Room(1).Messages[0].Content)
}

func Test_Client_Reconnects_After_Server_Drop(t *testing.T) {
	connections := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		connections <- struct{}{}
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	engine := reconcile.NewEngine(logs.GetLoggerFromLevel(slog.LevelDebug))
	client := transport.NewClient(url, "", engine, logs.GetLoggerFromLevel(slog.LevelDebug), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = client.Run(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case <-connections:
		case <-time.After(5 * time.Second):
			t.Fatal("client did not reconnect")
		}
	}
}
