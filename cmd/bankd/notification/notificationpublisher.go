package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/gbtpbank/gbtp-api/internal/mq"
)

const (
	exchangeName = "balance-notifications"
	routeKey     = "notif"
	kind         = "topic"
)

type Notification struct {
	MessageID   string    `json:"messageId"`
	Operation   string    `json:"operation"`
	AccountID   string    `json:"accountId"`
	ToAccountID string    `json:"toAccountId,omitempty"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublishTxNotification announces a successful mutation. Best-effort:
// failures are logged, the client response is never affected.
func PublishTxNotification(conn mq.Conn, operation, accountID, toAccountID string, amount float64) {
	n := Notification{
		MessageID:   uuid.New().String(),
		Operation:   operation,
		AccountID:   accountID,
		ToAccountID: toAccountID,
		Amount:      amount,
		CreatedAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(n)
	if err != nil {
		log.Warnf("failed to marshal notification: %v", err)
		return
	}

	_ = conn.Channel.ExchangeDeclare(exchangeName, kind, true, false, false, false, nil)

	err = conn.Channel.Publish(exchangeName, routeKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    n.MessageID,
		Body:         body,
		DeliveryMode: amqp.Transient,
	})
	if err != nil {
		log.Errorf("error sending notification to %s topic: %v", exchangeName, err)
	}
}
