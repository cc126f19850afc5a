package messaging

import (
	"testing"

	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConsumer(t *testing.T, bufferSize int) *NATSConsumer {
	t.Helper()

	log, err := logger.NewLogger("error")
	require.NoError(t, err)

	return NewNATSConsumer(&config.NATSConfig{
		MaxPendingMessages: bufferSize,
	}, log)
}

func TestHandleMessageForwardsEvent(t *testing.T) {
	consumer := testConsumer(t, 10)

	consumer.handleMessage(&nats.Msg{
		Data: []byte(`{"hash":"0xabc","from":"0x1111","to":"0x2222","network":"base"}`),
	})

	select {
	case event := <-consumer.GetMessageChannel():
		assert.Equal(t, "0xabc", event.Hash)
		assert.Equal(t, "0x1111", event.From)
		assert.Equal(t, "0x2222", event.To)
		assert.Equal(t, "base", event.Network)
	default:
		t.Fatal("expected event on channel")
	}
}

func TestHandleMessageDropsMalformedPayload(t *testing.T) {
	consumer := testConsumer(t, 10)

	consumer.handleMessage(&nats.Msg{Data: []byte(`not json`)})

	select {
	case <-consumer.GetMessageChannel():
		t.Fatal("malformed payload must not produce an event")
	default:
	}
}

func TestHandleMessageDropsWhenChannelFull(t *testing.T) {
	consumer := testConsumer(t, 1)

	payload := []byte(`{"hash":"0x1","from":"0xa","to":"0xb","network":"base"}`)
	consumer.handleMessage(&nats.Msg{Data: payload})
	consumer.handleMessage(&nats.Msg{Data: payload})

	// Only the first event fits
	<-consumer.GetMessageChannel()
	select {
	case <-consumer.GetMessageChannel():
		t.Fatal("second event should have been dropped")
	default:
	}
}
