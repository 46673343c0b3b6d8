package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newSocketPair upgrades a real websocket against an httptest server and
// returns the server-side socket wrapped in a Connection.
func newSocketPair(t *testing.T) (*Connection, *websocket.Conn) {
	t.Helper()

	serverSide := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverSide <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewConnection(<-serverSide), client
}

func TestConnectionSendAfterCloseErrors(t *testing.T) {
	conn, _ := newSocketPair(t)
	conn.Start()

	conn.Close(websocket.CloseNormalClosure, "done")

	for i := 0; i < 3; i++ {
		assert.Error(t, conn.Send([]byte("event")))
	}
}

func TestConnectionCloseDuringBroadcast(t *testing.T) {
	hub := NewHub()
	conn, client := newSocketPair(t)
	hub.Attach(conn)

	// Drain the client side so writes never stall on the socket.
	go func() {
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hub.Broadcast([]byte("event"))
		}
	}()
	go func() {
		defer wg.Done()
		conn.Close(websocket.CloseGoingAway, "watcher left")
	}()
	wg.Wait()

	hub.Detach(conn)
	assert.Error(t, conn.Send([]byte("event")))
}
