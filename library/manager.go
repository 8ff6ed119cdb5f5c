package library

import (
	"fmt"
	"log/slog"
	"sort"
)

// LibraryManager is a thin façade over the Library and its Journal, keeping
// CLI code simple.
type LibraryManager struct {
	lib     *Library
	journal *Journal
	logger  *slog.Logger
}

// NewLibraryManager opens the circulation journal, builds the library from
// cfg and seeds it from cfg.Catalog when one is set.
func NewLibraryManager(cfg Config, logger *slog.Logger) (*LibraryManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	journal, err := OpenJournal(cfg.JournalName)
	if err != nil {
		return nil, err
	}

	lib := NewLibrary(
		WithFinePerDay(cfg.FinePerDay),
		WithLogger(logger),
		WithRecorder(journal),
	)

	if cfg.Catalog != "" {
		catalog, err := LoadCatalog(cfg.Catalog)
		if err != nil {
			journal.Close()
			return nil, err
		}
		if err := catalog.Register(lib); err != nil {
			journal.Close()
			return nil, fmt.Errorf("register catalog: %w", err)
		}
		logger.Info("catalog loaded", "path", cfg.Catalog, "items", len(catalog.Items), "patrons", len(catalog.Patrons))
	}

	return &LibraryManager{lib: lib, journal: journal, logger: logger}, nil
}

// Close closes the underlying journal.
func (lm *LibraryManager) Close() error { return lm.journal.Close() }

// Library exposes the managed library.
func (lm *LibraryManager) Library() *Library { return lm.lib }

// ------------------ Circulation ------------------

func (lm *LibraryManager) CheckOut(patronID, itemID string) Status {
	return lm.lib.CheckOutLibraryItem(patronID, itemID)
}

func (lm *LibraryManager) Return(itemID string) Status {
	return lm.lib.ReturnLibraryItem(itemID)
}

func (lm *LibraryManager) Request(patronID, itemID string) Status {
	return lm.lib.RequestLibraryItem(patronID, itemID)
}

func (lm *LibraryManager) PayFine(patronID string, amount float64) Status {
	return lm.lib.PayFine(patronID, amount)
}

// AdvanceDays increments the library date days times and returns the new
// date.
func (lm *LibraryManager) AdvanceDays(days int) int {
	for i := 0; i < days; i++ {
		lm.lib.IncrementCurrentDate()
	}
	return lm.lib.CurrentDate()
}

// ------------------ Queries ------------------

func (lm *LibraryManager) Snapshot() Snapshot { return lm.lib.Snapshot() }

// OverdueItems lists a patron's overdue items ordered by id. ok is false
// when the patron is not a member.
func (lm *LibraryManager) OverdueItems(patronID string) (items []Item, ok bool) {
	patron := lm.lib.LookupPatronFromID(patronID)
	if patron == nil {
		return nil, false
	}
	overdue := patron.OverdueItems(lm.lib.CurrentDate())
	items = make([]Item, 0, len(overdue))
	for _, it := range overdue {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID() < items[j].ID() })
	return items, true
}

func (lm *LibraryManager) History(itemID string) ([]Event, error) {
	return lm.journal.History(itemID)
}

func (lm *LibraryManager) PatronHistory(patronID string) ([]Event, error) {
	return lm.journal.PatronHistory(patronID)
}

func (lm *LibraryManager) TotalFines(patronID string) (float64, error) {
	return lm.journal.TotalFines(patronID)
}

// ------------------ Utilities ------------------

// PrettyItem formats an item for lists.
func PrettyItem(it Item) string {
	holder := ""
	if p := it.CheckedOutBy(); p != nil {
		holder = p.Name()
	}
	return fmt.Sprintf("%-8s %-30s %-6s %-14s %-20s", it.ID(), truncateString(it.Title(), 30), it.Kind(), it.Location(), truncateString(holder, 20))
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
