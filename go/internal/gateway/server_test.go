package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
)

type echoDispatcher struct{}

func (echoDispatcher) Dispatch(_ context.Context, req command.Request) command.Response {
	return command.Response{
		Status:  command.StatusSuccess,
		Message: "echo " + req.Command,
		Command: req.Command,
	}.Echo(req)
}

type testClient struct {
	conn   net.Conn
	reader *bufio.Reader
}

func startServer(t *testing.T, config ConnectionConfig) (*Server, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(echoDispatcher{}, config, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return srv, ln.Addr().String()
}

func dial(t *testing.T, addr string) *testClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{conn: conn, reader: bufio.NewReader(conn)}
}

func (c *testClient) send(t *testing.T, raw string) {
	t.Helper()
	_, err := c.conn.Write([]byte(raw))
	require.NoError(t, err)
}

func (c *testClient) receive(t *testing.T) command.Response {
	t.Helper()
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	line, err := c.reader.ReadString('\n')
	require.NoError(t, err)

	var resp command.Response
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	return resp
}

func TestServer_MalformedThenValid(t *testing.T) {
	_, addr := startServer(t, DefaultConnectionConfig())
	c := dial(t, addr)

	c.send(t, "this is not json\n")
	resp := c.receive(t)
	assert.Equal(t, command.StatusError, resp.Status)
	assert.Equal(t, command.UnknownCommand, resp.Command)
	assert.Equal(t, apperrors.CodeProtocol, resp.Code)
	assert.True(t, strings.HasPrefix(resp.Message, "Invalid JSON format"))

	c.send(t, `{"command":"PING","client_id":"c-1"}`+"\n")
	resp = c.receive(t)
	assert.Equal(t, "echo PING", resp.Message)
	assert.JSONEq(t, `"c-1"`, string(resp.ClientID))
}

func TestServer_TwoRequestsInOneWrite(t *testing.T) {
	_, addr := startServer(t, DefaultConnectionConfig())
	c := dial(t, addr)

	c.send(t, `{"command":"ONE"}`+"\n"+`{"command":"TWO"}`+"\r\n")

	assert.Equal(t, "ONE", c.receive(t).Command)
	assert.Equal(t, "TWO", c.receive(t).Command)
}

func TestServer_RequestSplitAcrossWrites(t *testing.T) {
	_, addr := startServer(t, DefaultConnectionConfig())
	c := dial(t, addr)

	c.send(t, `{"comm`)
	time.Sleep(20 * time.Millisecond)
	c.send(t, `and":"SPLIT"}`+"\n")

	assert.Equal(t, "SPLIT", c.receive(t).Command)
}

func TestServer_OversizeFrameKeepsConnection(t *testing.T) {
	config := DefaultConnectionConfig()
	config.MaxMessageSize = 64
	_, addr := startServer(t, config)
	c := dial(t, addr)

	c.send(t, `{"command":"`+strings.Repeat("X", 200)+`"}`+"\n")
	resp := c.receive(t)
	assert.Equal(t, apperrors.CodeProtocol, resp.Code)
	assert.Equal(t, "Message exceeds maximum size of 64 bytes", resp.Message)

	c.send(t, `{"command":"AFTER"}`+"\n")
	assert.Equal(t, "AFTER", c.receive(t).Command)
}

func TestServer_TracksConnections(t *testing.T) {
	srv, addr := startServer(t, DefaultConnectionConfig())
	c := dial(t, addr)

	c.send(t, `{"command":"HELLO"}`+"\n")
	c.receive(t)
	assert.Equal(t, 1, srv.connections.Count())

	require.NoError(t, c.conn.Close())
	assert.Eventually(t, func() bool { return srv.connections.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServer_IdleTimeoutClosesConnection(t *testing.T) {
	config := DefaultConnectionConfig()
	config.IdleTimeout = 50 * time.Millisecond
	_, addr := startServer(t, config)
	c := dial(t, addr)

	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err := c.reader.ReadByte()
	assert.Error(t, err)
}

func TestWebSocketHandler_RoundTrip(t *testing.T) {
	cm := NewConnectionManager()
	h := NewWebSocketHandler(context.Background(), echoDispatcher{}, DefaultConnectionConfig(), cm)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{bad")))
	var resp command.Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, command.UnknownCommand, resp.Command)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"PING"}`)))
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "echo PING", resp.Message)

	statsResp, err := http.Get(srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer statsResp.Body.Close()
	var stats map[string]int
	require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
	assert.Equal(t, 1, stats[TransportWebSocket])
}
