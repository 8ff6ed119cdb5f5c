package library

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// EventKind names a circulation transition.
type EventKind string

const (
	EventCheckOut EventKind = "checkout"
	EventReturn   EventKind = "return"
	EventRequest  EventKind = "request"
	EventPayment  EventKind = "payment"
	EventFine     EventKind = "fine"
)

// Event describes one successful mutation of library state.
type Event struct {
	ID       string    `json:"id"`
	Kind     EventKind `json:"kind"`
	PatronID string    `json:"patron_id"`
	ItemID   string    `json:"item_id,omitempty"`
	Day      int       `json:"day"`
	Amount   float64   `json:"amount,omitempty"`
	Recorded time.Time `json:"recorded"`
}

// Recorder receives circulation events from a Library.
type Recorder interface {
	Record(Event) error
}

// Journal keeps the circulation history in an in-memory SQLite database. The
// data lives as long as the process does.
type Journal struct {
	db *sql.DB

	insertStmt *sql.Stmt
}

// OpenJournal opens a memory-only journal. Journals opened with the same name
// in one process share their data.
func OpenJournal(name string) (*Journal, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A shared in-memory database disappears when its last connection closes.
	db.SetMaxOpenConns(1)

	if err := applyJournalSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{db: db}
	if j.insertStmt, err = db.Prepare(`INSERT INTO events(id,kind,patron_id,item_id,day,amount,recorded) VALUES(?,?,?,?,?,?,?)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return j, nil
}

// Close releases the prepared statement and the database.
func (j *Journal) Close() error {
	if j.insertStmt != nil {
		j.insertStmt.Close()
	}
	return j.db.Close()
}

func applyJournalSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
            id TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            patron_id TEXT NOT NULL,
            item_id TEXT NOT NULL DEFAULT '',
            day INTEGER NOT NULL,
            amount REAL NOT NULL DEFAULT 0,
            recorded DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_events_item ON events(item_id);`,
		`CREATE INDEX IF NOT EXISTS idx_events_patron ON events(patron_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply journal schema: %w", err)
		}
	}
	return nil
}

// Record stores e, assigning an id and timestamp when missing.
func (j *Journal) Record(e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Recorded.IsZero() {
		e.Recorded = time.Now().UTC()
	}
	_, err := j.insertStmt.Exec(e.ID, string(e.Kind), e.PatronID, e.ItemID, e.Day, e.Amount, e.Recorded)
	return err
}

// History returns the events touching an item, oldest first.
func (j *Journal) History(itemID string) ([]Event, error) {
	return j.query(`SELECT id,kind,patron_id,item_id,day,amount,recorded FROM events WHERE item_id=? ORDER BY day, rowid`, itemID)
}

// PatronHistory returns the events of one patron, oldest first.
func (j *Journal) PatronHistory(patronID string) ([]Event, error) {
	return j.query(`SELECT id,kind,patron_id,item_id,day,amount,recorded FROM events WHERE patron_id=? ORDER BY day, rowid`, patronID)
}

// TotalFines sums the overdue charges ever accrued by a patron.
func (j *Journal) TotalFines(patronID string) (float64, error) {
	var total float64
	err := j.db.QueryRow(`SELECT COALESCE(SUM(amount),0) FROM events WHERE patron_id=? AND kind=?`, patronID, string(EventFine)).
		Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (j *Journal) query(q string, arg string) ([]Event, error) {
	rows, err := j.db.Query(q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e    Event
			kind string
		)
		if err := rows.Scan(&e.ID, &kind, &e.PatronID, &e.ItemID, &e.Day, &e.Amount, &e.Recorded); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}
	return events, rows.Err()
}
