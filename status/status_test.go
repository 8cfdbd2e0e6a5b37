package status

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketBroadcast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(HandlerWebsocket))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait for registration of client
	require.Eventually(t, func() bool {
		globalLock.Lock()
		defer globalLock.Unlock()
		return len(broadcastList) != 0
	}, time.Second, 10*time.Millisecond)

	Progress(0.5, "Importing %s", "anim_Maurice_scene002")

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		if msg.Message == "Importing anim_Maurice_scene002" {
			assert.Equal(t, PROGRESS, msg.Type)
			assert.Equal(t, float32(0.5), msg.Progress)
			break
		}
	}
}

func TestHistory(t *testing.T) {
	for i := 0; i < historySize+5; i++ {
		Info("message %d", i)
	}
	Status("bad progress", PROGRESS, float32(math.NaN()))

	require.Eventually(t, func() bool {
		h := History()
		return len(h) != 0 && h[len(h)-1].Message == "bad progress"
	}, time.Second, 10*time.Millisecond)

	h := History()
	assert.Len(t, h, historySize)
	assert.Equal(t, float32(0), h[len(h)-1].Progress)
	assert.Equal(t, fmt.Sprintf("message %d", historySize+4), h[len(h)-2].Message)
}
