// Package openaitools provides a client for the realtime API: a
// persistent websocket session carrying typed events in both directions.
package openaitools

import (
	"context"
	"fmt"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/auth"
	"github.com/oaitools/openaitools-go/events"
	"github.com/oaitools/openaitools-go/internal/websocket"
)

// Client holds realtime connection configuration. Connect may be called
// multiple times; every call opens an independent session.
type Client struct {
	config *clientConfig
}

func New(opts ...ClientOption) *Client {
	config := &clientConfig{}
	withDefaults()(config)
	WithOptions(opts...)(config)
	return &Client{config: config}
}

// Connect dials the realtime endpoint, waits for the server to announce
// the session and applies the configured session settings. The returned
// session is open and ready for Send and Recv.
func (c *Client) Connect(ctx context.Context) (*Session, error) {
	provider := c.config.provider
	if provider == nil {
		p, err := auth.FromEnv()
		if err != nil {
			return nil, err
		}
		provider = p
	}

	url, headers, err := provider.RealtimeURL(c.config.model)
	if err != nil {
		return nil, err
	}

	s := newSession(c.config)
	s.state.Store(int32(StateConnecting))

	ws, err := websocket.Connect(ctx, websocket.Config{
		URL:         url,
		DialTimeout: c.config.dialTimeout,
		Headers:     headers,
		Logger:      c.config.logger,
	})
	if err != nil {
		s.state.Store(int32(StateClosed))
		return nil, &apierr.TransportError{Op: "dial", Err: err}
	}
	s.ws = ws

	created, err := s.waitForSessionCreated(ctx)
	if err != nil {
		_ = ws.Close(ctx)
		s.state.Store(int32(StateClosed))
		return nil, err
	}
	s.setInfo(created.Session)
	s.state.Store(int32(StateOpen))

	if err := s.UpdateSession(ctx, c.config.sessionConfig()); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	return s, nil
}

// waitForSessionCreated consumes frames until session.created arrives.
// A server error event aborts the handshake.
func (s *Session) waitForSessionCreated(ctx context.Context) (*events.SessionCreatedEvent, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for session: %w", ctx.Err())
		case frame, ok := <-s.ws.Frames():
			if !ok {
				err := s.ws.Err()
				if err == nil {
					err = apierr.ErrSessionClosed
				}
				return nil, &apierr.ReceiveError{Err: err}
			}
			ev := events.ParseServer(frame.Payload)
			switch e := ev.(type) {
			case *events.SessionCreatedEvent:
				return e, nil
			case *events.ErrorEvent:
				return nil, &e.ErrorDetail
			default:
				s.logger.Debug("event before session.created", "type", ev.EventType())
			}
		}
	}
}
