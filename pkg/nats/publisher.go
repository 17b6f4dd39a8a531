package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/lyricroom/backend/pkg/pubsub"
	"github.com/nats-io/nats.go"
)

const keyHeader = "Lyricroom-Key"

type publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to the nats server at url, retrying the first
// connection a few times.
func NewPublisher(ctx context.Context, name, url string) (pubsub.Publisher, error) {
	opts := nats.GetDefaultOptions()
	opts.Url = url
	opts.Name = name
	opts.ReconnectWait = 2 * time.Second
	opts.MaxReconnect = -1

	var conn *nats.Conn
	retrier := retry.NewRetrier(5, 100*time.Millisecond, opts.ReconnectWait)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		var err error
		conn, err = opts.Connect()
		return err
	})
	if err != nil {
		return nil, err
	}

	return &publisher{conn: conn}, nil
}

func (p *publisher) Stop(ctx context.Context) error {
	return p.conn.Drain()
}

func (p *publisher) Publish(ctx context.Context, topic string, msg *pubsub.Pack) error {
	m := nats.NewMsg(topic)
	m.Data = msg.Msg
	if len(msg.Key) > 0 {
		m.Header.Set(keyHeader, string(msg.Key))
	}

	if err := p.conn.PublishMsg(m); err != nil {
		return fmt.Errorf("p.conn.PublishMsg: %w", err)
	}
	return nil
}
