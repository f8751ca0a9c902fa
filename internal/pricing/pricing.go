// Package pricing holds the money math for bookings. All amounts are KRW
// and use integer floor division, matching how charges actually settle.
//
// Two independent deductions apply: a 10% guest-side service fee added on
// top of the host price at booking time, and a 20% platform cut of the
// host price at settlement time. Some reporting surfaces label the fee as
// "15%" or "20%"; those labels are wrong, the computation here is what
// moves money. Do not reconcile labels by changing these rates.
package pricing

// Fee rates, in percent.
const (
	GuestFeePercent   = 10
	HostPayoutPercent = 80
)

// Quote is the guest-facing price breakdown computed at booking creation.
type Quote struct {
	HostPrice int64 // amount owed to the host before platform deductions
	GuestFee  int64 // floor(HostPrice * 10%), retained by the platform
	Total     int64 // HostPrice + GuestFee, what the guest is charged
}

// NewQuote computes the booking charge from the experience's current
// prices. Private bookings pay the flat private price regardless of guest
// count; group bookings pay per guest.
func NewQuote(experiencePrice, privatePrice int64, guests int, private bool) Quote {
	hostPrice := experiencePrice * int64(guests)
	if private {
		hostPrice = privatePrice
	}

	guestFee := hostPrice * GuestFeePercent / 100

	return Quote{
		HostPrice: hostPrice,
		GuestFee:  guestFee,
		Total:     hostPrice + guestFee,
	}
}

// Settlement is the final payout split, computed once at settlement time.
type Settlement struct {
	HostPayout      int64 // floor(HostPrice * 80%)
	PlatformRevenue int64 // Total - HostPayout
}

// Settle splits the host price (not the guest total) 80/20 and assigns the
// remainder of the guest charge to the platform, so
// HostPayout + PlatformRevenue == Total always holds.
func Settle(q Quote) Settlement {
	payout := q.HostPrice * HostPayoutPercent / 100
	return Settlement{
		HostPayout:      payout,
		PlatformRevenue: q.Total - payout,
	}
}
