package events

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"
)

const (
	SubjectBookingCreated  = "booking.created"
	SubjectReviewCreated   = "review.created"
	SubjectContactReceived = "contact.received"
)

// Publisher pushes domain events onto NATS for downstream consumers
// (notifications, analytics). Publishes are best effort: a nil Publisher or
// a failed publish never fails the request that triggered it.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Publish marshals payload and fires it at subject, logging failures.
func (p *Publisher) Publish(subject string, payload interface{}) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", subject, err)
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		log.Printf("Failed to publish %s event: %v", subject, err)
	}
}
