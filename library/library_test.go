package library

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	lib        *Library
	i1, i2, i3 *LibraryItem
	p1, p2     *Patron
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	f := fixture{
		lib: NewLibrary(opts...),
		i1:  NewLibraryItem("123456", "Catcher in the Rye"),
		i2:  NewLibraryItem("987654", "Space Jam"),
		i3:  NewLibraryItem("999999", "Mad Max: Fury Road"),
		p1:  NewPatron("111111", "Dr. Zoidberg"),
		p2:  NewPatron("555555", "Philip J. Fry"),
	}
	f.lib.AddLibraryItem(f.i1)
	f.lib.AddLibraryItem(f.i2)
	f.lib.AddLibraryItem(f.i3)
	f.lib.AddPatron(f.p1)
	f.lib.AddPatron(f.p2)
	return f
}

type recorderSpy struct {
	events []Event
	err    error
}

func (r *recorderSpy) Record(e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestLibraryInit(t *testing.T) {
	lib := NewLibrary()
	require.NotNil(t, lib)

	assert.Empty(t, lib.Holdings())
	assert.Empty(t, lib.Members())
	assert.Equal(t, 0, lib.CurrentDate())
	assert.InDelta(t, 0.10, lib.FinePerDay(), 1e-9)
}

func TestLibraryRegistrationAndLookups(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.lib.Holdings(), f.i1.ID())
	assert.Contains(t, f.lib.Members(), f.p1.ID())

	assert.Equal(t, Item(f.i1), f.lib.LookupLibraryItemFromID("123456"))
	assert.Nil(t, f.lib.LookupLibraryItemFromID("000000"))
	assert.Same(t, f.p1, f.lib.LookupPatronFromID("111111"))
	assert.Nil(t, f.lib.LookupPatronFromID("000000"))

	replacement := NewPatron("111111", "Hermes Conrad")
	f.lib.AddPatron(replacement)
	assert.Same(t, replacement, f.lib.LookupPatronFromID("111111"))
	assert.Len(t, f.lib.Members(), 2)
}

func TestCheckOutLibraryItem(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, Status("patron not found"), f.lib.CheckOutLibraryItem("000000", f.i1.ID()))
	assert.Equal(t, Status("item not found"), f.lib.CheckOutLibraryItem(f.p1.ID(), "000000"))

	f.i1.SetCheckedOutBy(f.p1)
	assert.Equal(t, Status("item already checked out"), f.lib.CheckOutLibraryItem(f.p2.ID(), f.i1.ID()))
	assert.Equal(t, StatusAlreadyCheckedOut, f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID()))

	f.i2.SetRequestedBy(f.p2)
	assert.Equal(t, Status("item on hold by other patron"), f.lib.CheckOutLibraryItem(f.p1.ID(), f.i2.ID()))
	assert.Equal(t, OnShelf, f.i2.Location())
	assert.Nil(t, f.i2.CheckedOutBy())

	f.i3.SetRequestedBy(f.p1)
	assert.Equal(t, Status("check out successful"), f.lib.CheckOutLibraryItem(f.p1.ID(), f.i3.ID()))
	assert.Nil(t, f.i3.RequestedBy())
	assert.Same(t, f.p1, f.i3.CheckedOutBy())
	assert.Equal(t, f.lib.CurrentDate(), f.i3.DateCheckedOut())
	assert.Equal(t, CheckedOut, f.i3.Location())
	assert.Contains(t, f.p1.CheckedOutItems(), f.i3.ID())
}

func TestCheckOutRecordsCurrentDate(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.lib.IncrementCurrentDate()
	}

	require.Equal(t, StatusCheckOutSuccessful, f.lib.CheckOutLibraryItem(f.p2.ID(), f.i2.ID()))
	assert.Equal(t, 3, f.i2.DateCheckedOut())
}

func TestCheckOutPatronNotFoundWinsOverItemNotFound(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, StatusPatronNotFound, f.lib.CheckOutLibraryItem("000000", "000000"))
}

func TestReturnLibraryItem(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, Status("item not found"), f.lib.ReturnLibraryItem("000000"))
	assert.Equal(t, Status("item already in library"), f.lib.ReturnLibraryItem(f.i1.ID()))

	f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID())
	f.lib.CheckOutLibraryItem(f.p1.ID(), f.i2.ID())
	f.i2.SetRequestedBy(f.p2)

	assert.Equal(t, Status("return successful"), f.lib.ReturnLibraryItem(f.i1.ID()))
	assert.Equal(t, StatusReturnSuccessful, f.lib.ReturnLibraryItem(f.i2.ID()))

	assert.NotContains(t, f.p1.CheckedOutItems(), f.i1.ID())
	assert.NotContains(t, f.p1.CheckedOutItems(), f.i2.ID())
	assert.Equal(t, OnShelf, f.i1.Location())
	assert.Equal(t, OnHoldShelf, f.i2.Location())
	assert.Nil(t, f.i1.CheckedOutBy())
	assert.Equal(t, NeverCheckedOut, f.i1.DateCheckedOut())
	assert.Same(t, f.p2, f.i2.RequestedBy())

	assert.Equal(t, StatusAlreadyInLibrary, f.lib.ReturnLibraryItem(f.i1.ID()))
}

func TestHoldShelfItemGoesToRequester(t *testing.T) {
	f := newFixture(t)

	f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID())
	require.Equal(t, StatusRequestSuccessful, f.lib.RequestLibraryItem(f.p2.ID(), f.i1.ID()))
	assert.Equal(t, CheckedOut, f.i1.Location())

	f.lib.ReturnLibraryItem(f.i1.ID())
	assert.Equal(t, OnHoldShelf, f.i1.Location())

	assert.Equal(t, StatusOnHoldByOtherPatron, f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID()))
	assert.Equal(t, StatusCheckOutSuccessful, f.lib.CheckOutLibraryItem(f.p2.ID(), f.i1.ID()))
	assert.Nil(t, f.i1.RequestedBy())
	assert.Contains(t, f.p2.CheckedOutItems(), f.i1.ID())
	assert.Empty(t, f.p1.CheckedOutItems())
}

func TestRequestLibraryItem(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, Status("patron not found"), f.lib.RequestLibraryItem("000000", f.i1.ID()))
	assert.Equal(t, Status("item not found"), f.lib.RequestLibraryItem(f.p1.ID(), "000000"))

	f.i1.SetRequestedBy(f.p2)
	assert.Equal(t, Status("item already on hold"), f.lib.RequestLibraryItem(f.p1.ID(), f.i1.ID()))
	assert.Equal(t, StatusAlreadyOnHold, f.lib.RequestLibraryItem(f.p2.ID(), f.i1.ID()))

	assert.Equal(t, Status("request successful"), f.lib.RequestLibraryItem(f.p1.ID(), f.i2.ID()))
	assert.Same(t, f.p1, f.i2.RequestedBy())
	assert.Equal(t, OnHoldShelf, f.i2.Location())
}

func TestPayFine(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, Status("patron not found"), f.lib.PayFine("000000", 0.50))
	assert.Zero(t, f.p1.Fine())
	assert.Zero(t, f.p2.Fine())

	f.p1.AmendFine(1.50)
	assert.Equal(t, Status("payment successful"), f.lib.PayFine(f.p1.ID(), 1.50))
	assert.InDelta(t, 0, f.p1.Fine(), 1e-9)

	assert.Equal(t, StatusPaymentSuccessful, f.lib.PayFine(f.p1.ID(), 2.00))
	assert.InDelta(t, -2.00, f.p1.Fine(), 1e-9)
}

func TestIncrementCurrentDate(t *testing.T) {
	f := newFixture(t)

	f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID())
	f.lib.CheckOutLibraryItem(f.p1.ID(), f.i2.ID())
	for i := 0; i < 28; i++ {
		f.lib.IncrementCurrentDate()
	}
	assert.Equal(t, 28, f.lib.CurrentDate())
	assert.InDelta(t, 0, f.p1.Fine(), 1e-9)
	assert.InDelta(t, 0, f.p2.Fine(), 1e-9)

	for i := 0; i < 28; i++ {
		f.lib.IncrementCurrentDate()
	}
	assert.Equal(t, 56, f.lib.CurrentDate())
	assert.InDelta(t, 5.60, f.p1.Fine(), 1e-9)
	assert.InDelta(t, 0, f.p2.Fine(), 1e-9)
}

func TestIncrementCurrentDateCustomRate(t *testing.T) {
	f := newFixture(t, WithFinePerDay(0.25))

	f.lib.CheckOutLibraryItem(f.p2.ID(), f.i3.ID())
	for i := 0; i < 30; i++ {
		f.lib.IncrementCurrentDate()
	}
	// overdue on days 29 and 30
	assert.InDelta(t, 0.50, f.p2.Fine(), 1e-9)
}

func TestRecorderReceivesSuccessfulTransitions(t *testing.T) {
	spy := &recorderSpy{}
	f := newFixture(t, WithRecorder(spy))

	f.lib.CheckOutLibraryItem("000000", f.i1.ID())
	f.lib.ReturnLibraryItem(f.i1.ID())
	assert.Empty(t, spy.events)

	f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID())
	f.lib.RequestLibraryItem(f.p2.ID(), f.i1.ID())
	f.lib.ReturnLibraryItem(f.i1.ID())
	f.lib.PayFine(f.p2.ID(), 1)

	require.Len(t, spy.events, 4)
	assert.Equal(t, EventCheckOut, spy.events[0].Kind)
	assert.Equal(t, EventRequest, spy.events[1].Kind)
	assert.Equal(t, EventReturn, spy.events[2].Kind)
	assert.Equal(t, f.p1.ID(), spy.events[2].PatronID)
	assert.Equal(t, EventPayment, spy.events[3].Kind)
	assert.InDelta(t, 1.0, spy.events[3].Amount, 1e-9)
}

func TestRecorderFailureDoesNotChangeOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	spy := &recorderSpy{err: errors.New("disk on fire")}
	f := newFixture(t, WithRecorder(spy), WithLogger(logger))

	assert.Equal(t, StatusCheckOutSuccessful, f.lib.CheckOutLibraryItem(f.p1.ID(), f.i1.ID()))
	assert.Same(t, f.p1, f.i1.CheckedOutBy())
	assert.Contains(t, buf.String(), "failed to record circulation event")
	assert.Contains(t, buf.String(), "disk on fire")
}

func TestStatusOK(t *testing.T) {
	assert.True(t, StatusCheckOutSuccessful.OK())
	assert.True(t, StatusReturnSuccessful.OK())
	assert.True(t, StatusRequestSuccessful.OK())
	assert.True(t, StatusPaymentSuccessful.OK())
	assert.False(t, StatusItemNotFound.OK())
	assert.False(t, StatusOnHoldByOtherPatron.OK())
}
