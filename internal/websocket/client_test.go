package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/stretchr/testify/require"
)

// echoServer upgrades incoming connections and echoes text frames back.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			data, op, err := wsutil.ReadClientData(conn)
			if err != nil {
				return
			}
			if op == ws.OpText {
				if err := wsutil.WriteServerText(conn, data); err != nil {
					return
				}
			}
		}
	}))
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func TestConnectEcho(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{URL: wsURL(srv), DialTimeout: time.Second})
	require.NoError(t, err)
	require.NotNil(t, client)

	require.NoError(t, client.WriteText([]byte("hello")))

	select {
	case frame := <-client.Frames():
		require.Equal(t, ws.OpText, frame.OpCode)
		require.Equal(t, "hello", string(frame.Payload))
	case <-ctx.Done():
		t.Fatal("no frame received")
	}

	require.NoError(t, client.Close(ctx))
	require.True(t, client.Closed())
	require.NoError(t, client.Err())
}

func TestFrameSentDuringHandshakeDelivered(t *testing.T) {
	// A server that speaks first can land its frame in the dialer's
	// buffered reader before our read loop starts; it must not be lost.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			return
		}
		defer conn.Close()
		if err := wsutil.WriteServerText(conn, []byte("greeting")); err != nil {
			return
		}
		// Keep the connection up until the client is done.
		_, _, _ = wsutil.ReadClientData(conn)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{URL: wsURL(srv), DialTimeout: time.Second})
	require.NoError(t, err)

	select {
	case frame := <-client.Frames():
		require.Equal(t, ws.OpText, frame.OpCode)
		require.Equal(t, "greeting", string(frame.Payload))
	case <-ctx.Done():
		t.Fatal("handshake-adjacent frame was dropped")
	}

	require.NoError(t, client.Close(ctx))
}

func TestCloseIsIdempotent(t *testing.T) {
	srv := echoServer(t)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{URL: wsURL(srv), DialTimeout: time.Second})
	require.NoError(t, err)

	require.NoError(t, client.Close(ctx))
	require.NoError(t, client.Close(ctx))

	// Writes on a closed connection must fail every time, not just
	// sometimes.
	for i := 0; i < 32; i++ {
		require.Error(t, client.WriteText([]byte("after close")))
	}
}

func TestServerInitiatedClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = wsutil.WriteServerText(conn, []byte("bye"))
		frame := ws.NewCloseFrame(ws.NewCloseFrameBody(ws.StatusNormalClosure, "done"))
		_ = ws.WriteFrame(conn, frame)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{URL: wsURL(srv), DialTimeout: time.Second})
	require.NoError(t, err)

	select {
	case frame := <-client.Frames():
		require.Equal(t, "bye", string(frame.Payload))
	case <-ctx.Done():
		t.Fatal("no frame received")
	}

	select {
	case <-client.Done():
	case <-ctx.Done():
		t.Fatal("connection did not terminate")
	}
	require.NoError(t, client.Err())
}
