package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single dated unit of activity (quantity of days at a unit price)
// attributed to one mission. The report and mission references live in
// relation tables, not on the entry row; MissionID and MissionName are
// populated on read through those links.
type Entry struct {
	EntryID     string          `json:"entryID"`
	Date        time.Time       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"` // days, fixed-point
	UnitPrice   int64           `json:"unitPrice"` // minor currency units
	Description string          `json:"description"`
	MissionID   string          `json:"missionID"`
	MissionName string          `json:"missionName,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"-"`
}

// LineTotal is quantity × unit_price rounded to a whole number of minor
// currency units. All arithmetic stays in decimal; binary floating point is
// never involved.
func (e *Entry) LineTotal() int64 {
	return e.Quantity.Mul(decimal.NewFromInt(e.UnitPrice)).Round(0).IntPart()
}
