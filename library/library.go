package library

import (
	"io"
	"log/slog"
)

// Status is the outcome token returned by every circulation operation.
type Status string

const (
	StatusPatronNotFound      Status = "patron not found"
	StatusItemNotFound        Status = "item not found"
	StatusAlreadyCheckedOut   Status = "item already checked out"
	StatusOnHoldByOtherPatron Status = "item on hold by other patron"
	StatusCheckOutSuccessful  Status = "check out successful"
	StatusAlreadyInLibrary    Status = "item already in library"
	StatusReturnSuccessful    Status = "return successful"
	StatusAlreadyOnHold       Status = "item already on hold"
	StatusRequestSuccessful   Status = "request successful"
	StatusPaymentSuccessful   Status = "payment successful"
)

// OK reports whether s is one of the success tokens.
func (s Status) OK() bool {
	switch s {
	case StatusCheckOutSuccessful, StatusReturnSuccessful, StatusRequestSuccessful, StatusPaymentSuccessful:
		return true
	}
	return false
}

// DefaultFinePerDay is charged for each overdue item on each day advance.
const DefaultFinePerDay = 0.10

// Library owns the holdings and members and runs the circulation rules.
// It is not safe for concurrent use.
type Library struct {
	holdings    map[string]Item
	members     map[string]*Patron
	currentDate int

	finePerDay float64
	logger     *slog.Logger
	recorder   Recorder
}

// Option configures a Library.
type Option func(*Library)

// WithFinePerDay sets the per item, per day overdue charge.
func WithFinePerDay(rate float64) Option {
	return func(l *Library) { l.finePerDay = rate }
}

// WithLogger routes transition logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRecorder notifies r after every successful mutation.
func WithRecorder(r Recorder) Option {
	return func(l *Library) { l.recorder = r }
}

// NewLibrary returns an empty library on day 0.
func NewLibrary(opts ...Option) *Library {
	l := &Library{
		holdings:   make(map[string]Item),
		members:    make(map[string]*Patron),
		finePerDay: DefaultFinePerDay,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) Holdings() map[string]Item   { return l.holdings }
func (l *Library) Members() map[string]*Patron { return l.members }
func (l *Library) CurrentDate() int            { return l.currentDate }
func (l *Library) FinePerDay() float64         { return l.finePerDay }

// AddLibraryItem registers item, replacing any holding with the same id.
func (l *Library) AddLibraryItem(item Item) {
	l.holdings[item.ID()] = item
}

// AddPatron registers patron, replacing any member with the same id.
func (l *Library) AddPatron(patron *Patron) {
	l.members[patron.ID()] = patron
}

// LookupLibraryItemFromID returns the holding or nil.
func (l *Library) LookupLibraryItemFromID(id string) Item {
	return l.holdings[id]
}

// LookupPatronFromID returns the member or nil.
func (l *Library) LookupPatronFromID(id string) *Patron {
	return l.members[id]
}

// CheckOutLibraryItem lends an item to a patron. A hold placed by the same
// patron is fulfilled and cleared; a hold by anyone else blocks the loan.
func (l *Library) CheckOutLibraryItem(patronID, itemID string) Status {
	patron := l.LookupPatronFromID(patronID)
	if patron == nil {
		return StatusPatronNotFound
	}
	item := l.LookupLibraryItemFromID(itemID)
	if item == nil {
		return StatusItemNotFound
	}
	if item.CheckedOutBy() != nil {
		return StatusAlreadyCheckedOut
	}
	if holder := item.RequestedBy(); holder != nil && holder != patron {
		return StatusOnHoldByOtherPatron
	}

	item.SetCheckedOutBy(patron)
	item.SetLocation(CheckedOut)
	item.SetDateCheckedOut(l.currentDate)
	if item.RequestedBy() == patron {
		item.SetRequestedBy(nil)
	}
	patron.AddLibraryItem(item)

	l.logger.Debug("item checked out", "patron_id", patronID, "item_id", itemID, "date", l.currentDate)
	l.record(Event{Kind: EventCheckOut, PatronID: patronID, ItemID: itemID, Day: l.currentDate})
	return StatusCheckOutSuccessful
}

// ReturnLibraryItem takes an item back from whoever holds it. Items with an
// outstanding hold go to the hold shelf.
func (l *Library) ReturnLibraryItem(itemID string) Status {
	item := l.LookupLibraryItemFromID(itemID)
	if item == nil {
		return StatusItemNotFound
	}
	holder := item.CheckedOutBy()
	if holder == nil {
		return StatusAlreadyInLibrary
	}

	holder.RemoveLibraryItem(item)
	item.SetCheckedOutBy(nil)
	item.SetDateCheckedOut(NeverCheckedOut)
	if item.RequestedBy() != nil {
		item.SetLocation(OnHoldShelf)
	} else {
		item.SetLocation(OnShelf)
	}

	l.logger.Debug("item returned", "patron_id", holder.ID(), "item_id", itemID, "location", item.Location())
	l.record(Event{Kind: EventReturn, PatronID: holder.ID(), ItemID: itemID, Day: l.currentDate})
	return StatusReturnSuccessful
}

// RequestLibraryItem places a hold. An item that is not out moves to the hold
// shelf straight away.
func (l *Library) RequestLibraryItem(patronID, itemID string) Status {
	patron := l.LookupPatronFromID(patronID)
	if patron == nil {
		return StatusPatronNotFound
	}
	item := l.LookupLibraryItemFromID(itemID)
	if item == nil {
		return StatusItemNotFound
	}
	if item.RequestedBy() != nil {
		return StatusAlreadyOnHold
	}

	item.SetRequestedBy(patron)
	if item.CheckedOutBy() == nil {
		item.SetLocation(OnHoldShelf)
	}

	l.logger.Debug("item requested", "patron_id", patronID, "item_id", itemID)
	l.record(Event{Kind: EventRequest, PatronID: patronID, ItemID: itemID, Day: l.currentDate})
	return StatusRequestSuccessful
}

// PayFine reduces a patron's balance by amount. Overpayment leaves credit.
func (l *Library) PayFine(patronID string, amount float64) Status {
	patron := l.LookupPatronFromID(patronID)
	if patron == nil {
		return StatusPatronNotFound
	}
	patron.AmendFine(-amount)

	l.logger.Debug("fine paid", "patron_id", patronID, "amount", amount, "balance", patron.Fine())
	l.record(Event{Kind: EventPayment, PatronID: patronID, Day: l.currentDate, Amount: amount})
	return StatusPaymentSuccessful
}

// IncrementCurrentDate advances the clock one day and charges every patron
// the daily rate for each item overdue on the new date.
func (l *Library) IncrementCurrentDate() {
	l.currentDate++
	for _, patron := range l.members {
		for itemID := range patron.OverdueItems(l.currentDate) {
			patron.AmendFine(l.finePerDay)
			l.record(Event{Kind: EventFine, PatronID: patron.ID(), ItemID: itemID, Day: l.currentDate, Amount: l.finePerDay})
		}
	}
	l.logger.Debug("date advanced", "date", l.currentDate)
}

func (l *Library) record(e Event) {
	if l.recorder == nil {
		return
	}
	if err := l.recorder.Record(e); err != nil {
		l.logger.Warn("failed to record circulation event", "kind", e.Kind, "error", err)
	}
}
