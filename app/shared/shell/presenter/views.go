package presenter

import (
	"github.com/mikietechie/sapp-library/lendingstore"
)

type PolicyView struct {
	DefaultLeaseDays   uint `json:"default_lease_days"`
	DefaultBookingDays uint `json:"default_booking_days"`
}

type GenreView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type BookTypeView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	BookTypeID string `json:"book_type_id"`
	ISBN       string `json:"isbn"`
	GenreID    string `json:"genre_id,omitempty"`
	Author     string `json:"author,omitempty"`
	Publisher  string `json:"publisher,omitempty"`
	Year       uint   `json:"year,omitempty"`
	Language   string `json:"language"`
}

type BookItemView struct {
	ID               string `json:"id"`
	BookID           string `json:"book_id"`
	Code             string `json:"code"`
	Condition        string `json:"condition"`
	Available        bool   `json:"available"`
	RetiredOn        string `json:"retired_on,omitempty"`
	RetirementReason string `json:"retirement_reason,omitempty"`
}

type MemberView struct {
	ID                string `json:"id"`
	UserRef           string `json:"user_ref,omitempty"`
	FullName          string `json:"full_name"`
	Role              string `json:"role"`
	Active            bool   `json:"active"`
	About             string `json:"about,omitempty"`
	TerminationReason string `json:"termination_reason,omitempty"`
}

type LeaseView struct {
	ID                string `json:"id"`
	BookItemID        string `json:"book_item_id"`
	MemberID          string `json:"member_id"`
	Condition         string `json:"condition"`
	LeasedOn          string `json:"leased_on"`
	DueDate           string `json:"due_date"`
	Returned          string `json:"returned,omitempty"`
	BookItemAvailable *bool  `json:"book_item_available,omitempty"`
}

type BookingView struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	MemberID   string `json:"member_id"`
	Status     string `json:"status"`
	ExpireDate string `json:"expire_date"`
}

type RestockView struct {
	ID            string         `json:"id"`
	BookID        string         `json:"book_id"`
	NumberOfBooks uint           `json:"number_of_books"`
	Prefix        string         `json:"prefix"`
	Condition     string         `json:"condition"`
	Notes         string         `json:"notes,omitempty"`
	ProducedCodes []string       `json:"produced_codes"`
	Items         []BookItemView `json:"items,omitempty"`
}

func Policy(settings lendingstore.PolicySettings) PolicyView {
	return PolicyView{DefaultLeaseDays: settings.DefaultLeaseDays, DefaultBookingDays: settings.DefaultBookingDays}
}

func Genre(genre lendingstore.Genre) GenreView {
	return GenreView{ID: genre.ID.String(), Name: genre.Name, Description: genre.Description}
}

func BookType(bookType lendingstore.BookType) BookTypeView {
	return BookTypeView{ID: bookType.ID.String(), Name: bookType.Name}
}

func Book(book lendingstore.Book) BookView {
	view := BookView{
		ID:         book.ID.String(),
		Title:      book.Title,
		BookTypeID: book.BookTypeID.String(),
		ISBN:       book.ISBN,
		Author:     book.Author,
		Publisher:  book.Publisher,
		Year:       book.Year,
		Language:   book.Language,
	}

	if book.GenreID.Valid {
		view.GenreID = book.GenreID.UUID.String()
	}

	return view
}

func BookItem(item lendingstore.BookItem) BookItemView {
	return BookItemView{
		ID:               item.ID.String(),
		BookID:           item.BookID.String(),
		Code:             item.Code,
		Condition:        string(item.Condition),
		Available:        item.Available,
		RetiredOn:        item.RetiredOn.String(),
		RetirementReason: item.RetirementReason,
	}
}

func Member(member lendingstore.Member) MemberView {
	return MemberView{
		ID:                member.ID.String(),
		UserRef:           member.UserRef,
		FullName:          member.FullName,
		Role:              string(member.Role),
		Active:            member.Active,
		About:             member.About,
		TerminationReason: member.TerminationReason,
	}
}

func Lease(lease lendingstore.Lease) LeaseView {
	return LeaseView{
		ID:         lease.ID.String(),
		BookItemID: lease.BookItemID.String(),
		MemberID:   lease.MemberID.String(),
		Condition:  string(lease.Condition),
		LeasedOn:   lease.LeasedOn.String(),
		DueDate:    lease.DueDate.String(),
		Returned:   lease.Returned.String(),
	}
}

// LeaseWrite is the lease view of a lease write, including the availability it left the copy in.
func LeaseWrite(result lendingstore.LeaseWriteResult) LeaseView {
	view := Lease(result.Lease)
	available := result.BookItemAvailable
	view.BookItemAvailable = &available

	return view
}

func Booking(booking lendingstore.Booking) BookingView {
	return BookingView{
		ID:         booking.ID.String(),
		BookID:     booking.BookID.String(),
		MemberID:   booking.MemberID.String(),
		Status:     string(booking.Status),
		ExpireDate: booking.ExpireDate.String(),
	}
}

func Restock(action lendingstore.RestockAction, items []lendingstore.BookItem) RestockView {
	return RestockView{
		ID:            action.ID.String(),
		BookID:        action.BookID.String(),
		NumberOfBooks: action.NumberOfBooks,
		Prefix:        action.Prefix,
		Condition:     string(action.Condition),
		Notes:         action.Notes,
		ProducedCodes: action.ProducedCodes,
		Items:         List(items, BookItem),
	}
}

// List maps every entity with view. A nil input yields an empty, non-nil slice.
func List[E, V any](entities []E, view func(E) V) []V {
	views := make([]V, 0, len(entities))
	for _, entity := range entities {
		views = append(views, view(entity))
	}

	return views
}
