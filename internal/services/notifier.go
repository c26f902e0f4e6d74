package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
)

// StatusUpdate is published whenever an analysis changes status.
type StatusUpdate struct {
	AnalysisID   string                `json:"analysis_id"`
	Filename     string                `json:"filename"`
	Status       models.AnalysisStatus `json:"status"`
	OverallScore *float64              `json:"overall_score,omitempty"`
	Error        string                `json:"error,omitempty"`
	Timestamp    time.Time             `json:"timestamp"`
}

type Notifier interface {
	Publish(ctx context.Context, update StatusUpdate) error
	Close() error
}

// NewNotifier dials RabbitMQ and declares a topic exchange. An empty url
// returns a notifier that drops every update.
func NewNotifier(url, exchange string, log *zap.Logger) (Notifier, error) {
	if url == "" {
		return noopNotifier{}, nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	log.Info("✅ RabbitMQ notifier connected", zap.String("exchange", exchange))

	return &amqpNotifier{conn: conn, exchange: exchange, logger: log}, nil
}

// StatusUpdateFor builds the event for a stored analysis.
func StatusUpdateFor(a *models.Analysis) StatusUpdate {
	update := StatusUpdate{
		AnalysisID:   a.ID.String(),
		Filename:     a.Filename,
		Status:       a.Status,
		OverallScore: a.OverallScore,
		Timestamp:    time.Now().UTC(),
	}
	if a.ErrorMessage != nil {
		update.Error = *a.ErrorMessage
	}
	return update
}

func routingKey(analysisID string) string {
	return fmt.Sprintf("analysis.%s", analysisID)
}

type amqpNotifier struct {
	conn     *amqp.Connection
	exchange string
	logger   *zap.Logger
}

func (n *amqpNotifier) Publish(ctx context.Context, update StatusUpdate) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}

	err = ch.Publish(
		n.exchange,
		routingKey(update.AnalysisID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   update.Timestamp,
			MessageId:   uuid.NewString(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish status update: %w", err)
	}

	n.logger.Debug("📣 status update published",
		zap.String("analysis_id", update.AnalysisID),
		zap.String("status", string(update.Status)))
	return nil
}

func (n *amqpNotifier) Close() error {
	return n.conn.Close()
}

type noopNotifier struct{}

func (noopNotifier) Publish(context.Context, StatusUpdate) error { return nil }
func (noopNotifier) Close() error { return nil }
