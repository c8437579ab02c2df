package mq

import (
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

type Config struct {
	User         string
	Pass         string
	Host         string
	Port         int
	MaxReconnect uint
}

type Conn struct {
	Channel *amqp.Channel
}

func NewConnection(cfg Config) (Conn, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d", cfg.User, cfg.Pass, cfg.Host, cfg.Port)

	var conn *amqp.Connection
	err := retry.Do(
		func() error {
			var err error
			conn, err = amqp.Dial(url)
			return err
		},
		retry.Attempts(cfg.MaxReconnect),
		retry.Delay(1*time.Second),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("attempt %d to connect to mq failed: %v", n+1, err)
		}),
	)
	if err != nil {
		return Conn{}, errors.Wrap(err, "dial mq")
	}

	ch, err := conn.Channel()
	if err != nil {
		return Conn{}, errors.Wrap(err, "open mq channel")
	}

	return Conn{Channel: ch}, nil
}
