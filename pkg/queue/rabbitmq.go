package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"pompa-press/pkg/config"
	"pompa-press/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NewsletterQueueName = "newsletter_queue"
	NewsletterExchange  = "newsletters"
	PublishRoutingKey   = "content_published"
)

// Client publishes and consumes newsletter dispatch tasks so fan-out never
// runs on the request path that triggered a publish.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NewsletterExchange, // name
		"direct",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NewsletterQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NewsletterQueueName,
		PublishRoutingKey,
		NewsletterExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
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

// PublishTask enqueues one dispatch task; messages are persistent so a broker
// restart does not drop a publish event.
func (c *Client) PublishTask(task map[string]interface{}) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		NewsletterExchange,
		PublishRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("Failed to publish task to exchange=%s: %v", NewsletterExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumeTasks hands each queued task to handler; a handler error requeues
// the message, a malformed body is dropped.
func (c *Client) ConsumeTasks(handler func(task map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		NewsletterQueueName,
		"",    // consumer
		false, // auto-ack (we manually ack after processing)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Started consuming from queue: %s", NewsletterQueueName)

	go func() {
		for msg := range msgs {
			var task map[string]interface{}
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("Failed to unmarshal task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("Handler failed to process task: %v, task=%+v", err, task)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// QueueLength returns the number of pending dispatch tasks.
func (c *Client) QueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(NewsletterQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
