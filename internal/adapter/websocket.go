package adapter

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketConn defines the subset of a websocket connection used by stream clients
//
//go:generate mockgen -source=websocket.go -destination=../mocks/websocket.go -package=mocks -mock_names=WebSocketConn=MockWebSocketConn
type WebSocketConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v interface{}) error
	SetReadDeadline(t time.Time) error
	Close() error
}

// WebSocketDialer opens websocket connections to enable mocking
//
//go:generate mockgen -source=websocket.go -destination=../mocks/websocket.go -package=mocks -mock_names=WebSocketDialer=MockWebSocketDialer
type WebSocketDialer interface {
	Dial(ctx context.Context, url string, header http.Header) (WebSocketConn, error)
}

// RealWebSocketDialer implements WebSocketDialer with gorilla/websocket
type RealWebSocketDialer struct {
	dialer *websocket.Dialer
}

// NewWebSocketDialer creates a dialer with the given handshake timeout
func NewWebSocketDialer(handshakeTimeout time.Duration) WebSocketDialer {
	return &RealWebSocketDialer{
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

func (d *RealWebSocketDialer) Dial(ctx context.Context, url string, header http.Header) (WebSocketConn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}
