package lendingstore

import (
	"time"

	"github.com/google/uuid"
)

/***** Enumerations *****/

// Condition describes the physical state of a copy.
type Condition string

const (
	ConditionNew         Condition = "New"
	ConditionAsNew       Condition = "As New"
	ConditionFine        Condition = "Fine"
	ConditionVeryGood    Condition = "Very Good"
	ConditionGood        Condition = "Good"
	ConditionFair        Condition = "Fair"
	ConditionPoor        Condition = "Poor"
	ConditionBindingCopy Condition = "Binding Copy"
)

// Conditions returns all conditions from best to worst.
func Conditions() []Condition {
	return []Condition{
		ConditionNew,
		ConditionAsNew,
		ConditionFine,
		ConditionVeryGood,
		ConditionGood,
		ConditionFair,
		ConditionPoor,
		ConditionBindingCopy,
	}
}

func (c Condition) IsValid() bool {
	for _, known := range Conditions() {
		if c == known {
			return true
		}
	}

	return false
}

// BookingStatus is the externally driven workflow state of a Booking.
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "Pending"
	BookingStatusAccepted BookingStatus = "Accepted"
	BookingStatusIgnored  BookingStatus = "Ignored"
	BookingStatusExpired  BookingStatus = "Expired"
	BookingStatusGranted  BookingStatus = "Granted"
)

func BookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusAccepted,
		BookingStatusIgnored,
		BookingStatusExpired,
		BookingStatusGranted,
	}
}

func (s BookingStatus) IsValid() bool {
	for _, known := range BookingStatuses() {
		if s == known {
			return true
		}
	}

	return false
}

// MemberRole is the membership tier.
type MemberRole string

const (
	MemberRoleOne MemberRole = "One"
	MemberRoleTwo MemberRole = "Two"
)

func (r MemberRole) IsValid() bool {
	return r == MemberRoleOne || r == MemberRoleTwo
}

/***** Defaults *****/

const (
	DefaultBookLanguage      = "English"
	DefaultBookItemCondition = ConditionNew
	DefaultLeaseCondition    = ConditionGood
	DefaultMemberRole        = MemberRoleOne
	DefaultBookingStatus     = BookingStatusPending
)

/***** Policy *****/

// PolicySettings holds the library-wide defaults for lease and booking durations.
// Several rows may exist; the earliest created one is authoritative.
type PolicySettings struct {
	ID                 uuid.UUID
	DefaultLeaseDays   uint
	DefaultBookingDays uint
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

/***** Catalog *****/

type Genre struct {
	ID          uuid.UUID
	Name        string
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Series struct {
	ID        uuid.UUID
	Title     string
	Image     string
	GenreID   uuid.UUID
	Publisher string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BookType struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Book struct {
	ID         uuid.UUID
	Title      string
	Image      string
	BookTypeID uuid.UUID
	ISBN       string
	GenreID    uuid.NullUUID
	SeriesID   uuid.NullUUID
	Author     string
	Publisher  string
	Year       uint
	Language   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GenreBookCount is one row of the per-genre book count aggregation.
type GenreBookCount struct {
	GenreID   uuid.UUID
	GenreName string
	BookCount int
}

/***** Inventory *****/

// BookItem is one physical copy of a Book.
// Available is derived from the lease history and is never written by callers.
type BookItem struct {
	ID               uuid.UUID
	BookID           uuid.UUID
	Code             string
	RetiredOn        Date
	RetirementReason string
	Condition        Condition
	Available        bool
	CreatedBy        string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

/***** Members *****/

type Member struct {
	ID                uuid.UUID
	UserRef           string
	FullName          string
	Role              MemberRole
	Active            bool
	About             string
	TerminationReason string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

/***** Lending *****/

// Lease is a loan of a BookItem to a Member. It is open while Returned is zero.
type Lease struct {
	ID         uuid.UUID
	Image      string
	Condition  Condition
	BookItemID uuid.UUID
	MemberID   uuid.UUID
	LeasedOn   Date
	DueDate    Date
	Returned   Date
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l Lease) IsOpen() bool {
	return l.Returned.IsZero()
}

// LeaseWriteResult is the outcome of a transactional lease write.
type LeaseWriteResult struct {
	Lease             Lease
	BookItemAvailable bool
}

/***** Reservations *****/

type Booking struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	Status     BookingStatus
	ExpireDate Date
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

/***** Restocking *****/

// RestockAction is the audit record of one bulk intake of copies.
type RestockAction struct {
	ID                uuid.UUID
	BookID            uuid.UUID
	NumberOfBooks     uint
	Codes             *string
	Prefix            string
	GenerateCodesFrom *uint
	Condition         Condition
	Notes             string
	ProducedCodes     []string
	CreatedBy         string
	UpdatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
