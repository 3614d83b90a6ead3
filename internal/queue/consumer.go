package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PurchaseLogger consumes ticket.purchased events and appends one line per
// purchase to <Dir>/purchases.log.
type PurchaseLogger struct {
	URL string
	Dir string
}

// Run dials the broker and consumes until ctx is cancelled.  Lost
// connections are retried with exponential backoff capped at 30s.
// Malformed messages are logged and rejected without requeue.
func (p *PurchaseLogger) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(p.URL)
		if err != nil {
			log.Printf("purchase-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = p.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("purchase-consumer: consume loop ended: %v; reconnecting", err)
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (p *PurchaseLogger) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("purchase-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(TicketPurchasedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(TicketPurchasedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := p.handleMessage(d.Body); err != nil {
				log.Printf("purchase-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (p *PurchaseLogger) handleMessage(body []byte) error {
	var ev TicketPurchasedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.MovieID == "" {
		return errors.New("event has no movie_id")
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", p.Dir, err)
	}
	f, err := os.OpenFile(filepath.Join(p.Dir, "purchases.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatPurchase(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatPurchase(ev TicketPurchasedEvent) string {
	return fmt.Sprintf("[%s] Ticket purchased | event_id=%s | movie_id=%s | movie=%q | showtime=%q | ticket=%d | sold=%d/%d\n",
		ev.PurchasedAt, ev.EventID, ev.MovieID, ev.MovieTitle, ev.Showtime, ev.TicketNumber, ev.TicketsSold, ev.Capacity)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
