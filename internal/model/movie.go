package model

// Movie represents a single film in the catalog together with its ticket
// inventory.  The catalog service owns these records; storefronts only hold
// transient copies that are re-fetched on every interaction.
//
// Fields:
//  ID          – catalog identifier, always compared as a string.
//  Title       – display title.
//  Description – short synopsis shown on the featured card.
//  Poster      – absolute URL of the poster image.
//  Capacity    – number of seats in the screening.
//  TicketsSold – tickets already sold; should never exceed Capacity.
//  Runtime     – running time in minutes.
//  Showtime    – human readable start time, e.g. "04:00PM".
type Movie struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	Capacity    int    `json:"capacity"`
	TicketsSold int    `json:"tickets_sold"`
	Runtime     int    `json:"runtime"`
	Showtime    string `json:"showtime"`
}

// AvailableTickets returns capacity - sold.  The result is not clamped so a
// corrupt record (sold > capacity) yields a negative number.
func AvailableTickets(capacity, sold int) int {
	return capacity - sold
}

// Available returns the number of tickets still on sale for m.
func (m Movie) Available() int {
	return AvailableTickets(m.Capacity, m.TicketsSold)
}

// SoldOut reports whether no tickets remain.
func (m Movie) SoldOut() bool {
	return m.Available() <= 0
}
