package notify

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const publishTimeout = 2 * time.Second

// RedisSink publishes each notification as JSON on a pub/sub channel so a
// separate UI process can present it.
type RedisSink struct {
	client  *redis.Client
	channel string
	logger  log.FieldLogger
}

func NewRedisSink(client *redis.Client, channel string, logger log.FieldLogger) *RedisSink {
	return &RedisSink{client: client, channel: channel, logger: logger}
}

func (s *RedisSink) Notify(n Notification) {
	data, err := sonic.ConfigStd.Marshal(n)
	if err != nil {
		s.logger.WithError(err).Error("failed to marshal notification")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		s.logger.WithError(err).WithField("channel", s.channel).Error("failed to publish notification")
	}
}
