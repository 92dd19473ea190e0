package csprcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Eras256/FlowFi/internal/adapter"
	"github.com/Eras256/FlowFi/internal/logger"
)

const (
	DIAL_TIMEOUT           = 15 * time.Second
	SUBSCRIBER_BUFFER_SIZE = 64
)

// ErrStreamClosed is returned when the stream is used before Start, after Close, or when a
// dropped connection cannot be redialed
var ErrStreamClosed = errors.New("stream closed")

// StreamMessage is a message pushed by the streaming service
type StreamMessage struct {
	Channel string          `json:"channel"`
	Payload json.RawMessage `json:"payload"`
}

type subscribeRequest struct {
	Action  string `json:"action"`
	Channel string `json:"channel"`
}

// Stream is a CSPR.cloud streaming connection shared by every subscriber
//
//go:generate mockgen -source=stream.go -destination=../../mocks/csprcloud_stream.go -package=mocks -mock_names=Stream=MockCSPRCloudStream
type Stream interface {
	// Start dials the streaming service and begins dispatching messages
	Start(ctx context.Context) error

	// Subscribe registers interest in a channel. The returned function unsubscribes
	// and closes the message channel. A connection dropped since Start is redialed first.
	Subscribe(ctx context.Context, channel string) (<-chan json.RawMessage, func(), error)

	// Close terminates the connection and every subscription
	Close() error
}

type subscriber struct {
	channel string
	ch      chan json.RawMessage
}

type stream struct {
	dialer      adapter.WebSocketDialer
	url         string
	accessToken string

	mu          sync.Mutex
	writeMu     sync.Mutex
	conn        adapter.WebSocketConn
	started     bool
	subscribers map[*subscriber]struct{}
	done        chan struct{}
	wg          sync.WaitGroup
}

// NewStream creates a stream. Nothing is dialed until Start is called.
func NewStream(dialer adapter.WebSocketDialer, url, accessToken string) Stream {
	return &stream{
		dialer:      dialer,
		url:         url,
		accessToken: accessToken,
		subscribers: make(map[*subscriber]struct{}),
	}
}

func (s *stream) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		logger.WarnCtx(ctx, "Already connected to CSPR.cloud stream")
		return nil
	}

	header := http.Header{}
	if s.accessToken != "" {
		header.Set("authorization", s.accessToken)
	}

	dialCtx, cancel := context.WithTimeout(ctx, DIAL_TIMEOUT)
	defer cancel()
	conn, err := s.dialer.Dial(dialCtx, s.url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}

	s.conn = conn
	s.started = true
	s.done = make(chan struct{})
	s.wg.Add(1)
	go s.readLoop(conn, s.done)

	logger.InfoCtx(ctx, "Connected to CSPR.cloud stream", zap.String("url", s.url))
	return nil
}

func (s *stream) Subscribe(ctx context.Context, channel string) (<-chan json.RawMessage, func(), error) {
	s.mu.Lock()
	conn, started := s.conn, s.started
	s.mu.Unlock()
	if conn == nil {
		if !started {
			return nil, nil, ErrStreamClosed
		}
		logger.InfoCtx(ctx, "CSPR.cloud stream dropped, redialing")
		if err := s.Start(ctx); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrStreamClosed, err)
		}
	}

	s.mu.Lock()
	conn = s.conn
	if conn == nil {
		s.mu.Unlock()
		return nil, nil, ErrStreamClosed
	}
	sub := &subscriber{
		channel: channel,
		ch:      make(chan json.RawMessage, SUBSCRIBER_BUFFER_SIZE),
	}
	s.subscribers[sub] = struct{}{}
	s.mu.Unlock()

	s.writeMu.Lock()
	err := conn.WriteJSON(subscribeRequest{Action: "subscribe", Channel: channel})
	s.writeMu.Unlock()
	if err != nil {
		s.remove(sub)
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	logger.InfoCtx(ctx, "Subscribed to stream channel", zap.String("channel", channel))

	var once sync.Once
	return sub.ch, func() { once.Do(func() { s.remove(sub) }) }, nil
}

func (s *stream) remove(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[sub]; ok {
		delete(s.subscribers, sub)
		close(sub.ch)
	}
}

func (s *stream) readLoop(conn adapter.WebSocketConn, done chan struct{}) {
	defer s.wg.Done()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
			default:
				logger.Warn("CSPR.cloud stream read failed", zap.Error(err))
				_ = conn.Close()
			}
			s.closeSubscribers(conn)
			return
		}

		var msg StreamMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug("Ignoring undecodable stream message", zap.Error(err))
			continue
		}

		s.dispatch(msg)
	}
}

// dispatch never blocks the read loop: a subscriber with a full buffer misses the message
func (s *stream) dispatch(msg StreamMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subscribers {
		if sub.channel != msg.Channel {
			continue
		}
		select {
		case sub.ch <- msg.Payload:
		default:
			logger.Debug("Dropping stream message for slow subscriber", zap.String("channel", msg.Channel))
		}
	}
}

func (s *stream) closeSubscribers(conn adapter.WebSocketConn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subscribers {
		delete(s.subscribers, sub)
		close(sub.ch)
	}
	if s.conn == conn {
		s.conn = nil
	}
}

func (s *stream) Close() error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.conn, s.done = nil, nil
	s.started = false
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	close(done)
	err := conn.Close()
	s.wg.Wait()

	logger.Info("CSPR.cloud stream closed")
	return err
}
