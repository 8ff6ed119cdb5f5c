package library

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// Snapshot is a read-only view of library state, ordered by id.
type Snapshot struct {
	CurrentDate int              `json:"current_date"`
	Items       []ItemSnapshot   `json:"items"`
	Patrons     []PatronSnapshot `json:"patrons"`
}

type ItemSnapshot struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Kind           string   `json:"kind"`
	Creator        string   `json:"creator,omitempty"`
	CheckOutLength int      `json:"check_out_length"`
	Location       Location `json:"location"`
	CheckedOutBy   string   `json:"checked_out_by,omitempty"`
	RequestedBy    string   `json:"requested_by,omitempty"`
	DateCheckedOut int      `json:"date_checked_out"`
	Overdue        bool     `json:"overdue"`
}

type PatronSnapshot struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Fine       float64  `json:"fine"`
	CheckedOut []string `json:"checked_out"`
}

// Snapshot captures the current holdings and members.
func (l *Library) Snapshot() Snapshot {
	s := Snapshot{
		CurrentDate: l.currentDate,
		Items:       make([]ItemSnapshot, 0, len(l.holdings)),
		Patrons:     make([]PatronSnapshot, 0, len(l.members)),
	}
	for _, it := range l.holdings {
		is := ItemSnapshot{
			ID:             it.ID(),
			Title:          it.Title(),
			Kind:           it.Kind(),
			Creator:        creatorOf(it),
			CheckOutLength: it.CheckOutLength(),
			Location:       it.Location(),
			DateCheckedOut: it.DateCheckedOut(),
		}
		if p := it.CheckedOutBy(); p != nil {
			is.CheckedOutBy = p.ID()
			is.Overdue = it.IsOverdue(l.currentDate)
		}
		if p := it.RequestedBy(); p != nil {
			is.RequestedBy = p.ID()
		}
		s.Items = append(s.Items, is)
	}
	for _, p := range l.members {
		ps := PatronSnapshot{
			ID:         p.ID(),
			Name:       p.Name(),
			Fine:       p.Fine(),
			CheckedOut: make([]string, 0, len(p.CheckedOutItems())),
		}
		for id := range p.CheckedOutItems() {
			ps.CheckedOut = append(ps.CheckedOut, id)
		}
		sort.Strings(ps.CheckedOut)
		s.Patrons = append(s.Patrons, ps)
	}
	sort.Slice(s.Items, func(i, j int) bool { return s.Items[i].ID < s.Items[j].ID })
	sort.Slice(s.Patrons, func(i, j int) bool { return s.Patrons[i].ID < s.Patrons[j].ID })
	return s
}

// JSON renders the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(s, "", "  ")
}
