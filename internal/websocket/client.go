// Package websocket wraps a gobwas/ws client connection into channel
// based frame delivery with idempotent close.
package websocket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

type Config struct {
	URL         string
	DialTimeout time.Duration
	Headers     http.Header
	Logger      *slog.Logger
}

// Frame is one data frame received from the server.
type Frame struct {
	OpCode  ws.OpCode
	Payload []byte
}

type Client struct {
	conn     net.Conn
	out      chan wsutil.Message
	frames   chan Frame
	done     chan struct{}
	doneOnce sync.Once
	errMu    sync.Mutex
	err      error
	logger   *slog.Logger
}

// setDone marks the connection finished with an optional terminal error.
// The first call wins.
func (c *Client) setDone(err error) {
	c.doneOnce.Do(func() {
		c.errMu.Lock()
		c.err = err
		c.errMu.Unlock()
		close(c.done)
	})
}

// Frames delivers data frames. The channel is closed when the read loop
// exits.
func (c *Client) Frames() <-chan Frame { return c.frames }

// Done is closed when the connection has terminated.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err returns the terminal error, nil for a clean shutdown. Valid after
// Done is closed.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Closed reports whether the connection has terminated.
func (c *Client) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *Client) WriteText(data []byte) error {
	return c.write(ws.OpText, data)
}

func (c *Client) Ping(data []byte) error {
	return c.write(ws.OpPing, data)
}

func (c *Client) write(opcode ws.OpCode, data []byte) error {
	// Both select cases are ready once done is closed, so check it
	// explicitly on either side of the enqueue.
	if c.Closed() {
		return errors.New("connection closed")
	}
	select {
	case <-c.done:
		return errors.New("connection closed")
	case c.out <- wsutil.Message{OpCode: opcode, Payload: data}:
		if c.Closed() {
			return errors.New("connection closed")
		}
		return nil
	}
}

// Close sends a close frame and waits for the server to finish the
// handshake or ctx to expire. Safe to call more than once.
func (c *Client) Close(ctx context.Context) error {
	if c.Closed() {
		return nil
	}
	_ = c.write(ws.OpClose, ws.NewCloseFrameBody(ws.StatusNormalClosure, "closing"))
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		c.setDone(nil)
		_ = c.conn.Close()
		return fmt.Errorf("close failed: %w", ctx.Err())
	}
}

func Connect(ctx context.Context, config Config) (*Client, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("url", config.URL))

	dialTimeout := config.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 10 * time.Second
	}

	hsCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	d := ws.Dialer{
		Timeout: dialTimeout,
		Header:  ws.HandshakeHeaderHTTP(config.Headers),
	}
	conn, buf, hs, err := d.Dial(hsCtx, config.URL)
	if err != nil {
		return nil, err
	}
	logger.Debug("handshake complete", slog.Any("handshake", hs))

	// The server may start sending frames right behind the upgrade
	// response; those bytes sit in the dialer's buffered reader and
	// must reach the read loop before anything read from conn.
	var rd io.Reader = conn
	if buf != nil {
		if n := buf.Buffered(); n > 0 {
			pending := make([]byte, n)
			if _, err := io.ReadFull(buf, pending); err != nil {
				_ = conn.Close()
				return nil, fmt.Errorf("draining handshake buffer: %w", err)
			}
			rd = io.MultiReader(bytes.NewReader(pending), conn)
		}
		ws.PutReader(buf)
	}

	client := &Client{
		conn:   conn,
		out:    make(chan wsutil.Message, 1000),
		frames: make(chan Frame, 1000),
		done:   make(chan struct{}),
		logger: logger,
	}

	// read loop: control frames handled inline, data frames delivered
	go func() {
		defer close(client.frames)
		for {
			messages, err := wsutil.ReadServerMessage(rd, nil)
			if err != nil {
				if errors.Is(err, io.EOF) || client.Closed() {
					client.setDone(nil)
					return
				}
				logger.Error("ws read failed", slog.Any("err", err))
				client.setDone(err)
				return
			}
			for _, msg := range messages {
				if ws.OpCode.IsControl(msg.OpCode) {
					if err := wsutil.HandleServerControlMessage(conn, msg); err != nil {
						logger.Error("control message handling failed", slog.Any("err", err))
					}
					if msg.OpCode == ws.OpClose {
						logger.Debug("rcv: close", slog.String("reason", string(msg.Payload)))
						client.setDone(nil)
						return
					}
					continue
				}
				select {
				case client.frames <- Frame{OpCode: msg.OpCode, Payload: msg.Payload}:
				case <-client.done:
					return
				}
			}
		}
	}()

	// write loop
	go func() {
		for {
			select {
			case <-client.done:
				return
			case msg := <-client.out:
				if err := wsutil.WriteClientMessage(conn, msg.OpCode, msg.Payload); err != nil {
					logger.Error("ws write failed", slog.Any("err", err))
					client.setDone(err)
					return
				}
			}
		}
	}()

	// release the conn once finished
	go func() {
		<-client.done
		_ = conn.Close()
	}()

	return client, nil
}
