package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"assessment-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AssessmentPublisher publishes assessment lifecycle events to RabbitMQ.
// Publishing is best-effort: the orchestrator never fails a request over a
// lost event.
type AssessmentPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

func NewAssessmentPublisher(conn *RabbitMQConnection) *AssessmentPublisher {
	return &AssessmentPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

func (p *AssessmentPublisher) PublishAssessmentCompleted(ctx context.Context, result *models.AssessmentResult) error {
	var completedAt int64
	if result.CompletedAt != nil {
		completedAt = result.CompletedAt.Unix()
	}

	event := AssessmentCompletedEvent{
		EventType:      EventTypeAssessmentCompleted,
		AssessmentID:   result.ID.String(),
		UserID:         result.UserID,
		OverallScore:   result.Overall.Score,
		Grade:          result.Overall.Grade,
		Recommendation: result.Overall.Recommendation,
		CompletedAt:    completedAt,
	}

	_, err := p.conn.Channel.QueueDeclare(
		AssessmentEventsQueue, // queue name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal assessment event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",                    // exchange
		AssessmentEventsQueue, // routing key (queue name)
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish assessment event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Assessment event published",
		"queue", AssessmentEventsQueue,
		"assessment_id", event.AssessmentID,
		"grade", event.Grade,
	)

	return nil
}
