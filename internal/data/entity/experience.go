package entity

import "github.com/google/uuid"

type ExperienceStatus string

const (
	ExperienceStatusPending  ExperienceStatus = "pending"
	ExperienceStatusActive   ExperienceStatus = "active"
	ExperienceStatusRejected ExperienceStatus = "rejected"
)

// Experience is the authoritative price/capacity source for bookings.
// Price fields are mutable by the host at any time, so pricing decisions
// must always re-read this row rather than trust a cached copy.
type Experience struct {
	Base
	HostID       uuid.UUID        `db:"host_id"`
	Title        string           `db:"title"`
	Description  string           `db:"description"`
	Location     string           `db:"location"`
	Price        int64            `db:"price"`         // per guest, KRW
	PrivatePrice int64            `db:"private_price"` // flat, KRW
	MaxCapacity  int              `db:"max_capacity"`
	Status       ExperienceStatus `db:"status"`
}
