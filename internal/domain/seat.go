package domain

import "github.com/shopspring/decimal"

type SeatClass string

const (
	SeatClassEconomy  SeatClass = "ECONOMY"
	SeatClassBusiness SeatClass = "BUSINESS"
	SeatClassFirst    SeatClass = "FIRST"
)

// Seat is keyed by (FlightID, Label); Available is the only field
// mutated after the seat map is generated, and only through the
// claim/release operations.
type Seat struct {
	FlightID  int64
	Label     string
	Class     SeatClass
	Modifier  decimal.Decimal
	Available bool
}
