// Package bidfeed
package bidfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/daoleviethoang/friendly-frontend/internal/config"
	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
	"github.com/daoleviethoang/friendly-frontend/internal/session"
)

const (
	pongWait       = 60 * time.Second
	maxMessageSize = 8192
)

var ErrUnauthorized = errors.New("bidfeed: connection refused: unauthorized")

// Feed keeps a websocket open to the live bid stream and republishes every
// price update as a bidTick intent. The bearer token is read from the
// session store at dial time, so a rotation between reconnects is picked up
// automatically.
//
// The feed is an accessory: no outcome here is fatal to the client. An
// unauthorized dial (including the pre-login window, when no credentials
// exist yet) parks the loop until the next successful login.
type Feed struct {
	cfg   *config.Config
	bus   *intent.Bus
	store session.Store
	log   logger.Logger

	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func New(cfg *config.Config, bus *intent.Bus, store session.Store, log logger.Logger) *Feed {
	return &Feed{
		cfg:   cfg,
		bus:   bus,
		store: store,
		log:   log,

		initialBackoff: time.Second,
		maxBackoff:     30 * time.Second,
	}
}

// Run keeps the feed connected until ctx is done. It always returns nil so
// a shared group never tears the orchestration routines down over a feed
// problem.
func (f *Feed) Run(ctx context.Context) error {
	logins := f.bus.Subscribe(intent.LoginSuccess)
	backoff := f.initialBackoff

	for {
		f.log.Info("connecting to bid feed", "url", f.cfg.BidFeedWsURL)

		err := f.connect(ctx)
		switch {
		case errors.Is(err, ErrUnauthorized):
			f.log.Warn("bid feed rejected the token, waiting for the next login")
			if _, err := logins.Next(ctx); err != nil {
				f.log.Info("bid feed stopped")
				return nil
			}
			backoff = f.initialBackoff
			continue
		case err != nil && !errors.Is(err, context.Canceled):
			f.log.Warn("bid feed session ended, will retry", "error", err)
		}

		select {
		case <-ctx.Done():
			f.log.Info("bid feed stopped")
			return nil
		case <-time.After(backoff):
		}
		if backoff < f.maxBackoff {
			backoff *= 2
		}
	}
}

func (f *Feed) connect(ctx context.Context) error {
	// Scoped to this one connection, so the close watchdog below exits
	// when the session ends on its own, not only on process shutdown.
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}

	header := make(http.Header)
	if creds, err := f.store.Credentials(ctx); err == nil {
		header.Set("Authorization", "Bearer "+creds.AccessToken)
	}

	conn, res, err := dialer.DialContext(ctx, f.cfg.BidFeedWsURL, header)
	if err != nil {
		if res != nil && res.StatusCode == http.StatusUnauthorized {
			return ErrUnauthorized
		}
		return fmt.Errorf("bidfeed: dial failed: %w", err)
	}
	defer conn.Close()

	f.log.Info("bid feed connected")

	go func() {
		<-connCtx.Done()
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutting down"),
		)
		conn.Close()
	}()

	return f.readLoop(connCtx, conn)
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("bidfeed: read failed: %w", err)
			}
			return nil
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var tick domain.BidTick
		if err := json.Unmarshal(raw, &tick); err != nil {
			f.log.Warn("ignoring malformed bid tick", "error", err)
			continue
		}

		f.bus.Publish(intent.BidTick, tick)
	}
}
