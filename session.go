package openaitools

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"
	"sync/atomic"

	gows "github.com/gobwas/ws"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/events"
	"github.com/oaitools/openaitools-go/internal/websocket"
)

// State of a realtime session.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session is one open realtime connection. Send may be called from one
// goroutine at a time, and Recv from one goroutine at a time; the two
// sides are independent.
type Session struct {
	cfg    *clientConfig
	ws     *websocket.Client
	state  atomic.Int32
	logger *slog.Logger

	// info is written by the Recv goroutine and readable from anywhere.
	infoMu sync.Mutex
	info   events.Session

	// errDelivered is touched only by the Recv goroutine.
	errDelivered bool
}

func newSession(cfg *clientConfig) *Session {
	return &Session{cfg: cfg, logger: cfg.logger}
}

// State returns the current session state.
func (s *Session) State() State { return State(s.state.Load()) }

// ID returns the server assigned session ID.
func (s *Session) ID() string { return s.Info().ID }

// Info returns the server's view of the session from session.created.
func (s *Session) Info() events.Session {
	s.infoMu.Lock()
	defer s.infoMu.Unlock()
	return s.info
}

func (s *Session) setInfo(info events.Session) {
	s.infoMu.Lock()
	s.info = info
	s.infoMu.Unlock()
}

// Send marshals an event and writes it as one text frame. Events without
// an event_id get a generated one. Sending on a session that is not open
// fails with a SendError wrapping ErrSessionClosed.
func (s *Session) Send(ctx context.Context, ev events.Event) error {
	if s.State() != StateOpen || s.ws.Closed() {
		s.closeNow()
		return &apierr.SendError{EventType: ev.EventType(), Err: apierr.ErrSessionClosed}
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return &apierr.SendError{EventType: ev.EventType(), Err: err}
	}
	if !gjson.GetBytes(data, "event_id").Exists() {
		base := events.NewBaseEvent(ev.EventType())
		if data, err = sjson.SetBytes(data, "event_id", base.EventID); err != nil {
			return &apierr.SendError{EventType: ev.EventType(), Err: err}
		}
	}
	select {
	case <-ctx.Done():
		return &apierr.SendError{EventType: ev.EventType(), Err: ctx.Err()}
	default:
	}
	if err := s.ws.WriteText(data); err != nil {
		s.closeNow()
		return &apierr.SendError{EventType: ev.EventType(), Err: apierr.ErrSessionClosed}
	}
	s.logger.Debug("sent event", "type", ev.EventType())
	return nil
}

// Recv returns the next server event. Frames that do not decode come
// back as *events.UnknownEvent. After the connection terminates Recv
// returns the transport error once, wrapped in a ReceiveError, and
// (nil, nil) on every later call.
func (s *Session) Recv(ctx context.Context) (events.Event, error) {
	for {
		if s.State() == StateClosed && s.errDelivered {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case frame, ok := <-s.ws.Frames():
			if !ok {
				s.state.Store(int32(StateClosed))
				err := s.ws.Err()
				if err != nil && !s.errDelivered {
					s.errDelivered = true
					return nil, &apierr.ReceiveError{Err: err}
				}
				s.errDelivered = true
				return nil, nil
			}
			if frame.OpCode != gows.OpText {
				s.logger.Debug("ignoring non-text frame", "opcode", frame.OpCode)
				continue
			}
			ev := events.ParseServer(frame.Payload)
			if u, isUnknown := ev.(*events.UnknownEvent); isUnknown {
				s.logger.Debug("unknown event", "type", u.Type)
			}
			if upd, isUpdate := ev.(*events.SessionUpdatedEvent); isUpdate {
				s.setInfo(upd.Session)
			}
			return ev, nil
		}
	}
}

// Close performs the websocket close handshake. It is idempotent and
// safe to call in any state.
func (s *Session) Close(ctx context.Context) error {
	switch s.State() {
	case StateClosed, StateIdle:
		return nil
	}
	s.state.Store(int32(StateClosing))
	err := s.ws.Close(ctx)
	s.state.Store(int32(StateClosed))
	return err
}

// closeNow marks the session closed after a transport failure.
func (s *Session) closeNow() {
	if s.State() == StateOpen {
		s.state.Store(int32(StateClosed))
	}
}

// UpdateSession applies new session settings.
func (s *Session) UpdateSession(ctx context.Context, cfg events.SessionConfig) error {
	return s.Send(ctx, events.NewSessionUpdate(cfg))
}

// AppendAudio appends raw PCM in the session input format to the input
// audio buffer.
func (s *Session) AppendAudio(ctx context.Context, pcm []byte) error {
	return s.AppendAudioBase64(ctx, base64.StdEncoding.EncodeToString(pcm))
}

// AppendAudioBase64 appends already encoded audio.
func (s *Session) AppendAudioBase64(ctx context.Context, audio string) error {
	return s.Send(ctx, events.NewInputAudioBufferAppend(audio))
}

// CommitInput commits the pending input audio buffer into a user item.
func (s *Session) CommitInput(ctx context.Context) error {
	return s.Send(ctx, events.NewInputAudioBufferCommit())
}

// ClearInput discards the pending input audio buffer.
func (s *Session) ClearInput(ctx context.Context) error {
	return s.Send(ctx, events.NewInputAudioBufferClear())
}

// ClearOutputAudio discards buffered output audio server side, used when
// interrupting playback.
func (s *Session) ClearOutputAudio(ctx context.Context) error {
	return s.Send(ctx, events.NewOutputAudioBufferClear())
}

// CreateItem adds an item to the conversation.
func (s *Session) CreateItem(ctx context.Context, item events.ConversationItem) error {
	return s.Send(ctx, events.NewConversationItemCreate(item))
}

// SendText adds a user text message and optionally requests a response.
func (s *Session) SendText(ctx context.Context, text string, respond bool) error {
	if err := s.CreateItem(ctx, events.UserMessageItem(text)); err != nil {
		return err
	}
	if respond {
		return s.CreateResponse(ctx)
	}
	return nil
}

// RetrieveItem asks the server to send back a conversation item.
func (s *Session) RetrieveItem(ctx context.Context, itemID string) error {
	return s.Send(ctx, events.NewConversationItemRetrieve(itemID))
}

// DeleteItem removes an item from the conversation.
func (s *Session) DeleteItem(ctx context.Context, itemID string) error {
	return s.Send(ctx, events.NewConversationItemDelete(itemID))
}

// TruncateItem drops audio past audioEndMs from a finished assistant
// item, keeping the conversation consistent with interrupted playback.
func (s *Session) TruncateItem(ctx context.Context, itemID string, contentIndex, audioEndMs int) error {
	return s.Send(ctx, events.NewConversationItemTruncate(itemID, contentIndex, audioEndMs))
}

// CreateResponse requests a model response with the session defaults.
func (s *Session) CreateResponse(ctx context.Context) error {
	return s.Send(ctx, events.NewResponseCreate(nil))
}

// CreateResponseWith requests a model response with per-response
// overrides. Set Conversation to "none" for an out-of-band response.
func (s *Session) CreateResponseWith(ctx context.Context, cfg events.ResponseCreateConfig) error {
	return s.Send(ctx, events.NewResponseCreate(&cfg))
}

// CancelResponse cancels an in-progress response. An empty ID cancels
// the current default response.
func (s *Session) CancelResponse(ctx context.Context, responseID string) error {
	return s.Send(ctx, events.NewResponseCancel(responseID))
}

// SubmitFunctionOutput answers a completed function call and optionally
// requests the follow-up response.
func (s *Session) SubmitFunctionOutput(ctx context.Context, callID, output string, respond bool) error {
	if err := s.CreateItem(ctx, events.FunctionOutputItem(callID, output)); err != nil {
		return err
	}
	if respond {
		return s.CreateResponse(ctx)
	}
	return nil
}
