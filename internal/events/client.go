// Package events publishes ledger change notifications to an AMQP broker so
// external collaborators (dashboards, audit) can react. Publishing is
// best-effort: it happens after the mutation succeeded and its failure never
// fails the mutation.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"financeflow/internal/core"
)

const (
	RoutingKeyPut     = "expense.put"
	RoutingKeyRemoved = "expense.removed"
)

type Client struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewClient(url, exchange string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{conn: conn, channel: channel, exchange: exchange}
	if err := c.setup(); err != nil {
		c.Close()
		return nil, fmt.Errorf("setup exchange: %w", err)
	}
	return c, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	return nil
}

// PublishExpensePut announces a create or full replace.
func (c *Client) PublishExpensePut(ctx context.Context, uid string, e core.Expense) error {
	body, err := NewExpensePutMessage(uid, e).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, RoutingKeyPut, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published expense put event",
		"expense_id", e.ID, "uid", uid, "exchange", c.exchange)
	return nil
}

// PublishExpenseRemoved announces a removal.
func (c *Client) PublishExpenseRemoved(ctx context.Context, uid, expenseID string) error {
	body, err := NewExpenseRemovedMessage(uid, expenseID).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, RoutingKeyRemoved, body); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published expense removed event",
		"expense_id", expenseID, "uid", uid, "exchange", c.exchange)
	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
