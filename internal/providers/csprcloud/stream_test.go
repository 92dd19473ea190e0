package csprcloud_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eras256/FlowFi/internal/mocks"
	"github.com/Eras256/FlowFi/internal/providers/csprcloud"
)

type fakeFeed struct {
	messages chan []byte
}

func newConn(ctrl *gomock.Controller) (*mocks.MockWebSocketConn, *fakeFeed) {
	conn := mocks.NewMockWebSocketConn(ctrl)
	feed := &fakeFeed{messages: make(chan []byte, 8)}

	conn.EXPECT().ReadMessage().DoAndReturn(func() (int, []byte, error) {
		msg, ok := <-feed.messages
		if !ok {
			return 0, nil, errors.New("use of closed network connection")
		}
		return 1, msg, nil
	}).AnyTimes()

	return conn, feed
}

func TestStream_SubscribeAndDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := mocks.NewMockWebSocketDialer(ctrl)
	conn, feed := newConn(ctrl)

	expectedHeader := http.Header{}
	expectedHeader.Set("authorization", "token")
	dialer.EXPECT().Dial(gomock.Any(), "wss://stream.example", expectedHeader).Return(conn, nil)
	conn.EXPECT().WriteJSON(gomock.Any()).DoAndReturn(func(v interface{}) error {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `{"action":"subscribe","channel":"deploys"}`, string(b))
		return nil
	})
	conn.EXPECT().Close().DoAndReturn(func() error {
		close(feed.messages)
		return nil
	})

	stream := csprcloud.NewStream(dialer, "wss://stream.example", "token")
	ctx := context.Background()
	require.NoError(t, stream.Start(ctx))

	messages, unsubscribe, err := stream.Subscribe(ctx, "deploys")
	require.NoError(t, err)
	defer unsubscribe()

	feed.messages <- []byte(`{"channel":"blocks","payload":{"height":1}}`)
	feed.messages <- []byte(`not json`)
	feed.messages <- []byte(`{"channel":"deploys","payload":{"deploy_hash":"abc"}}`)

	select {
	case payload := <-messages:
		assert.JSONEq(t, `{"deploy_hash":"abc"}`, string(payload))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream message")
	}

	require.NoError(t, stream.Close())

	// subscriber channels are closed with the stream
	_, open := <-messages
	assert.False(t, open)

	// Close is idempotent
	assert.NoError(t, stream.Close())
}

func TestStream_SubscribeBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	stream := csprcloud.NewStream(mocks.NewMockWebSocketDialer(ctrl), "wss://stream.example", "")

	_, _, err := stream.Subscribe(context.Background(), "deploys")
	assert.ErrorIs(t, err, csprcloud.ErrStreamClosed)
}

func TestStream_DialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := mocks.NewMockWebSocketDialer(ctrl)
	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("handshake failed"))

	stream := csprcloud.NewStream(dialer, "wss://stream.example", "")
	assert.Error(t, stream.Start(context.Background()))
	assert.NoError(t, stream.Close())
}

func TestStream_UnsubscribeClosesChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := mocks.NewMockWebSocketDialer(ctrl)
	conn, feed := newConn(ctrl)

	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(conn, nil)
	conn.EXPECT().WriteJSON(gomock.Any()).Return(nil)
	conn.EXPECT().Close().DoAndReturn(func() error {
		close(feed.messages)
		return nil
	})

	stream := csprcloud.NewStream(dialer, "wss://stream.example", "")
	require.NoError(t, stream.Start(context.Background()))

	messages, unsubscribe, err := stream.Subscribe(context.Background(), "blocks")
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()
	_, open := <-messages
	assert.False(t, open)

	require.NoError(t, stream.Close())
}

func TestStream_SubscribeRedialsDroppedConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := mocks.NewMockWebSocketDialer(ctrl)
	first, firstFeed := newConn(ctrl)
	second, secondFeed := newConn(ctrl)

	gomock.InOrder(
		dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(first, nil),
		dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(second, nil),
	)
	first.EXPECT().WriteJSON(gomock.Any()).Return(nil)
	first.EXPECT().Close().Return(nil)
	second.EXPECT().WriteJSON(gomock.Any()).Return(nil)
	second.EXPECT().Close().DoAndReturn(func() error {
		close(secondFeed.messages)
		return nil
	})

	stream := csprcloud.NewStream(dialer, "wss://stream.example", "")
	ctx := context.Background()
	require.NoError(t, stream.Start(ctx))

	messages, _, err := stream.Subscribe(ctx, "deploys")
	require.NoError(t, err)

	// upstream drops the connection
	close(firstFeed.messages)
	select {
	case _, open := <-messages:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber was not closed after the connection dropped")
	}

	messages, unsubscribe, err := stream.Subscribe(ctx, "deploys")
	require.NoError(t, err)
	defer unsubscribe()

	secondFeed.messages <- []byte(`{"channel":"deploys","payload":{"deploy_hash":"def"}}`)
	select {
	case payload := <-messages:
		assert.JSONEq(t, `{"deploy_hash":"def"}`, string(payload))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message on the redialed stream")
	}

	require.NoError(t, stream.Close())
}

func TestStream_NoRedialAfterClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := mocks.NewMockWebSocketDialer(ctrl)
	conn, feed := newConn(ctrl)

	dialer.EXPECT().Dial(gomock.Any(), gomock.Any(), gomock.Any()).Return(conn, nil)
	conn.EXPECT().Close().DoAndReturn(func() error {
		close(feed.messages)
		return nil
	})

	stream := csprcloud.NewStream(dialer, "wss://stream.example", "")
	require.NoError(t, stream.Start(context.Background()))
	require.NoError(t, stream.Close())

	_, _, err := stream.Subscribe(context.Background(), "deploys")
	assert.ErrorIs(t, err, csprcloud.ErrStreamClosed)
}
