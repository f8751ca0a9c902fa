package pricing

import "time"

// Refund policy windows.
const (
	fullRefundDays   = 7
	halfRefundDays   = 3
	gracePeriod      = 24 * time.Hour // after payment
	graceMinLeadTime = 24 * time.Hour // before the experience
)

// RefundPercent returns the refundable share of the guest charge when a
// paid booking is cancelled at instant now.
//
// The day-based table keys off time remaining until the experience start:
// >=7 days -> 100%, >=3 days -> 50%, otherwise 0%. One carve-out: a
// cancellation within 24 hours of the original payment is fully refunded
// as long as at least one day remains before the experience.
func RefundPercent(now, paidAt, scheduledAt time.Time) int {
	untilStart := scheduledAt.Sub(now)

	if !paidAt.IsZero() && now.Sub(paidAt) <= gracePeriod && untilStart >= graceMinLeadTime {
		return 100
	}

	switch days := int(untilStart.Hours() / 24); {
	case days >= fullRefundDays:
		return 100
	case days >= halfRefundDays:
		return 50
	default:
		return 0
	}
}

// RefundAmount applies pct to the guest charge.
func RefundAmount(amount int64, pct int) int64 {
	return amount * int64(pct) / 100
}
