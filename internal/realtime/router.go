package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/AanchalGupta0502/SocialeX/validators"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Services are the operations the event handlers call.
type Services struct {
	Profiles *services.Profiles
	Graph    *services.SocialGraph
	Chats    *services.ChatStore
	Content  *services.Content
}

type Options struct {
	HandlerTimeout time.Duration
	SendBuffer     int
	// CheckOrigin decides whether an upgrade request may proceed. Nil
	// accepts every origin.
	CheckOrigin func(r *http.Request) bool
}

type handlerFunc func(ctx context.Context, c *Client, data json.RawMessage) error

// Router upgrades connections, decodes inbound envelopes and runs the handler
// registered for each event on its own goroutine.
type Router struct {
	hub       *Hub
	svc       Services
	validator *validators.Validator
	logger    logging.Logger
	upgrader  websocket.Upgrader
	opts      Options
	handlers  map[string]handlerFunc

	// Handler contexts derive from ctx, not from the connection.
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closing  bool
	inflight sync.WaitGroup
}

func NewRouter(hub *Hub, svc Services, v *validators.Validator, logger logging.Logger, opts Options) *Router {
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = 10 * time.Second
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		hub:       hub,
		svc:       svc,
		validator: v,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}
	r.handlers = r.routes()
	return r
}

func (r *Router) Hub() *Hub { return r.hub }

// ServeWS upgrades the request and serves the connection until it closes.
func (r *Router) ServeWS(c echo.Context) error {
	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		r.logger.Warn(c.Request().Context(), "websocket upgrade failed", "remote", c.RealIP(), "error", err)
		return nil
	}

	client := newClient(uuid.NewString(), conn, r.opts.SendBuffer, r.logger)
	r.hub.Register(client)
	go client.writePump()

	client.readPump(func(data []byte) { r.Dispatch(client, data) })
	r.hub.Unregister(client)
	return nil
}

// Dispatch decodes one inbound frame and starts its handler. Handlers start
// in arrival order but may finish in any order.
func (r *Router) Dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		r.replyError(c, "", "malformed message")
		return
	}

	h, ok := r.handlers[env.Event]
	if !ok {
		r.logger.Debug(r.ctx, "unknown event", "client_id", c.id, "event", env.Event)
		r.replyError(c, env.Event, "unknown event")
		return
	}

	r.mu.Lock()
	if r.closing {
		r.mu.Unlock()
		r.replyError(c, env.Event, "server shutting down")
		return
	}
	r.inflight.Add(1)
	r.mu.Unlock()

	go r.run(c, env, h)
}

func (r *Router) run(c *Client, env Envelope, h handlerFunc) {
	defer r.inflight.Done()

	ctx, cancel := context.WithTimeout(r.ctx, r.opts.HandlerTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error(ctx, "event handler panicked", "event", env.Event, "client_id", c.id,
				"panic", p, "stack", string(debug.Stack()))
			r.replyError(c, env.Event, "internal error")
		}
	}()

	if err := h(ctx, c, env.Data); err != nil {
		r.logger.Error(ctx, "event handler failed", "event", env.Event, "client_id", c.id, "error", err)
		r.replyError(c, env.Event, errorMessage(env.Event, err))
	}
}

// Shutdown stops accepting events, waits for in-flight handlers until ctx
// expires and then disconnects every client.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closing = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.inflight.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = fmt.Errorf("waiting for event handlers: %w", ctx.Err())
	}
	r.cancel()
	r.hub.CloseAll()
	return err
}

// Broadcast sends an event to every connection.
func (r *Router) Broadcast(event string, data any) error {
	frame, err := encodeFrame(event, data)
	if err != nil {
		return err
	}
	r.hub.Broadcast(frame)
	return nil
}

func (r *Router) broadcastToRoom(room, event string, data any, exceptID string) error {
	frame, err := encodeFrame(event, data)
	if err != nil {
		return err
	}
	r.hub.BroadcastToRoom(room, frame, exceptID)
	return nil
}

func (r *Router) reply(c *Client, event string, data any) error {
	frame, err := encodeFrame(event, data)
	if err != nil {
		return err
	}
	c.Send(frame)
	return nil
}

func (r *Router) replyError(c *Client, event, message string) {
	if err := r.reply(c, EventError, errorPayload{Event: event, Message: message}); err != nil {
		r.logger.Error(r.ctx, "encode error reply", "error", err)
	}
}

// bind decodes and validates the payload before calling fn.
func bind[T any](v *validators.Validator, fn func(ctx context.Context, c *Client, p *T) error) handlerFunc {
	return func(ctx context.Context, c *Client, data json.RawMessage) error {
		var p T
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("%w: invalid payload: %v", common.ErrorValidation, err)
		}
		if err := v.Struct(&p); err != nil {
			return err
		}
		return fn(ctx, c, &p)
	}
}

// subjects names what an event looks up, for not-found replies.
var subjects = map[string]string{
	EventPostLiked:      "Post",
	EventPostUnliked:    "Post",
	EventMakeComment:    "Post",
	EventFollowUser:     "User",
	EventUnfollowUser:   "User",
	EventUpdateProfile:  "User",
	EventCreateStory:    "User",
	EventCreateNewStory: "User",
}

func errorMessage(event string, err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorDuplicate):
		return err.Error()
	case errors.Is(err, common.ErrorNotFound):
		if s, ok := subjects[event]; ok {
			return s + " not found"
		}
		return "not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return "failed to handle " + event
	}
}
