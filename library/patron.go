package library

// Patron is a registered library member with the items they hold and a fine
// balance. A negative balance is credit.
type Patron struct {
	id              string
	name            string
	checkedOutItems map[string]Item
	fineAmount      float64
}

func NewPatron(id, name string) *Patron {
	return &Patron{
		id:              id,
		name:            name,
		checkedOutItems: make(map[string]Item),
	}
}

func (p *Patron) ID() string    { return p.id }
func (p *Patron) Name() string  { return p.name }
func (p *Patron) Fine() float64 { return p.fineAmount }

// CheckedOutItems returns the live map of items keyed by item id.
func (p *Patron) CheckedOutItems() map[string]Item { return p.checkedOutItems }

// AddLibraryItem records item as held by the patron, replacing any entry with
// the same id.
func (p *Patron) AddLibraryItem(item Item) {
	p.checkedOutItems[item.ID()] = item
}

// RemoveLibraryItem forgets item. Removing an item the patron does not hold
// is a no-op.
func (p *Patron) RemoveLibraryItem(item Item) {
	delete(p.checkedOutItems, item.ID())
}

// AmendFine adds delta to the balance; payments are negative deltas.
func (p *Patron) AmendFine(delta float64) {
	p.fineAmount += delta
}

// OverdueItems returns the held items that are overdue as of currentDate.
func (p *Patron) OverdueItems(currentDate int) map[string]Item {
	overdue := make(map[string]Item)
	for id, item := range p.checkedOutItems {
		if item.IsOverdue(currentDate) {
			overdue[id] = item
		}
	}
	return overdue
}
