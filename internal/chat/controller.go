// Package chat runs the conversation for one session: explanation
// short-circuit, quiz mode, quick actions and general chat, in that order.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/lock"
	"github.com/edubot/edubot/internal/logger"
	"github.com/edubot/edubot/internal/store"
)

// ErrInvalidRequest is returned for a request without a message or
// session id. Nothing is loaded or stored.
var ErrInvalidRequest = errors.New("message and sessionId are required")

// Request is one chat turn as received from a client.
type Request struct {
	SessionID string
	UserID    string
	Message   string
	Language  locale.Language
}

// Controller loads the session, runs the Machine and persists the outcome.
type Controller struct {
	sessions store.SessionRepo
	locker   lock.Locker
	machine  *Machine
	lockWait time.Duration
	log      *logger.Logger
}

// NewController wires a Controller. A nil locker serializes in process.
func NewController(sessions store.SessionRepo, locker lock.Locker, machine *Machine, lockWait time.Duration, log *logger.Logger) *Controller {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if lockWait <= 0 {
		lockWait = time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		sessions: sessions,
		locker:   locker,
		machine:  machine,
		lockWait: lockWait,
		log:      log,
	}
}

// Handle processes one turn and returns the reply. The reply is only
// returned once the session holding it has been saved.
func (c *Controller) Handle(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.SessionID) == "" {
		return "", ErrInvalidRequest
	}

	lockCtx, cancel := context.WithTimeout(ctx, c.lockWait)
	unlock, err := c.locker.Lock(lockCtx, "session:"+req.SessionID)
	cancel()
	if err != nil {
		return "", fmt.Errorf("lock session: %w", err)
	}
	defer unlock()

	sess, err := c.sessions.Get(ctx, req.SessionID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		sess = store.NewSession(req.SessionID, req.UserID, c.machine.now())
	case err != nil:
		return "", fmt.Errorf("load session: %w", err)
	}
	if sess.UserID == "" && req.UserID != "" {
		sess.UserID = req.UserID
	}

	out, err := c.machine.Transition(ctx, sess, Turn{Text: req.Message, Lang: req.Language})
	if err != nil {
		c.log.Warn("chat turn failed",
			"session_id", req.SessionID,
			"language", req.Language.String(),
			"error", err,
		)
		return "", err
	}

	if err := c.sessions.Save(ctx, out.Session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	c.log.Debug("chat turn",
		"session_id", req.SessionID,
		"language", req.Language.String(),
		"effects", out.Effects,
		"mode", string(out.Session.Mode),
		"version", out.Session.Version,
	)
	return out.Reply, nil
}
