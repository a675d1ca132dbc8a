package game

// Route labels an edge of the map by the transport that serves it.
type Route int

const (
	Taxi Route = iota
	Bus
	Underground
	Boat
)

func (r Route) String() string {
	switch r {
	case Taxi:
		return "taxi"
	case Bus:
		return "bus"
	case Underground:
		return "underground"
	case Boat:
		return "boat"
	default:
		return "unknown"
	}
}

// Ticket is consumed by a move. Secret hides the route that was used.
type Ticket int

const (
	TaxiTicket Ticket = iota
	BusTicket
	UndergroundTicket
	SecretTicket
	DoubleTicket
	numTickets
)

func (t Ticket) String() string {
	switch t {
	case TaxiTicket:
		return "Taxi"
	case BusTicket:
		return "Bus"
	case UndergroundTicket:
		return "Underground"
	case SecretTicket:
		return "Secret"
	case DoubleTicket:
		return "Double"
	default:
		return "Unknown"
	}
}

// TicketFor returns the ticket that pays for a ride on route. Boat rides can
// only be paid with a secret ticket.
func TicketFor(route Route) Ticket {
	switch route {
	case Taxi:
		return TaxiTicket
	case Bus:
		return BusTicket
	case Underground:
		return UndergroundTicket
	default:
		return SecretTicket
	}
}

// Covers reports whether ticket t pays for a ride on route.
func (t Ticket) Covers(route Route) bool {
	return t == SecretTicket || TicketFor(route) == t
}

// Tickets is a ticket inventory indexed by Ticket. It is an array so copies
// never share storage.
type Tickets [numTickets]int

// NewTickets builds an inventory from per-kind counts.
func NewTickets(taxi, bus, underground, secret, double int) Tickets {
	return Tickets{taxi, bus, underground, secret, double}
}
