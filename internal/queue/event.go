// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPurchasedQueue is the durable queue purchase events are routed to.
const TicketPurchasedQueue = "ticket.purchased"

// TicketPurchasedEvent is published after the catalog accepted a purchase.
// It carries enough information for downstream consumers to log or notify
// without calling the catalog again.
type TicketPurchasedEvent struct {
	EventID      string `json:"event_id"`
	MovieID      string `json:"movie_id"`
	MovieTitle   string `json:"movie_title"`
	Showtime     string `json:"showtime"`
	TicketNumber int    `json:"ticket_number"`
	TicketsSold  int    `json:"tickets_sold"`
	Capacity     int    `json:"capacity"`
	PurchasedAt  string `json:"purchased_at"`
}
