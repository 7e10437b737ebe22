package core

import (
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Policy is the lending policy in effect for one command.
// It is loaded once when the command starts and passed into the decide functions.
type Policy struct {
	leaseDays   uint
	bookingDays uint
	configured  bool
}

// PolicyFrom builds the Policy from stored settings.
func PolicyFrom(settings lendingstore.PolicySettings) Policy {
	return Policy{
		leaseDays:   settings.DefaultLeaseDays,
		bookingDays: settings.DefaultBookingDays,
		configured:  true,
	}
}

// NoPolicy is the Policy used when no settings exist. Every default it is asked for fails.
func NoPolicy() Policy {
	return Policy{}
}

func (p Policy) IsConfigured() bool {
	return p.configured
}

func (p Policy) LeaseDays() uint {
	return p.leaseDays
}

func (p Policy) BookingDays() uint {
	return p.bookingDays
}

// DefaultDueDate returns leasedOn plus the default lease duration.
func (p Policy) DefaultDueDate(leasedOn lendingstore.Date) (lendingstore.Date, error) {
	if !p.configured {
		return lendingstore.Date{}, ErrPolicyNotConfigured
	}

	return leasedOn.AddDays(int(p.leaseDays)), nil
}

// DefaultExpireDate returns today plus the default booking hold duration.
func (p Policy) DefaultExpireDate(today lendingstore.Date) (lendingstore.Date, error) {
	if !p.configured {
		return lendingstore.Date{}, ErrPolicyNotConfigured
	}

	return today.AddDays(int(p.bookingDays)), nil
}
