package library

// Location is where an item currently sits.
type Location string

const (
	OnShelf     Location = "ON_SHELF"
	OnHoldShelf Location = "ON_HOLD_SHELF"
	CheckedOut  Location = "CHECKED_OUT"
)

// NeverCheckedOut is the date sentinel for an item that is not out.
const NeverCheckedOut = -1

// Default checkout lengths in days.
const (
	ItemCheckOutLength  = 28
	BookCheckOutLength  = 21
	AlbumCheckOutLength = 14
	MovieCheckOutLength = 7
)

// Item is the capability set shared by every kind of holding. The mutators
// do no validation; Library keeps the circulation invariants.
type Item interface {
	ID() string
	Title() string
	Kind() string
	CheckOutLength() int

	Location() Location
	SetLocation(Location)
	CheckedOutBy() *Patron
	SetCheckedOutBy(*Patron)
	RequestedBy() *Patron
	SetRequestedBy(*Patron)
	DateCheckedOut() int
	SetDateCheckedOut(int)

	IsOverdue(currentDate int) bool
}

// LibraryItem is a generic holding and the embedded base of Book, Album and
// Movie.
type LibraryItem struct {
	id             string
	title          string
	checkOutLength int
	location       Location
	checkedOutBy   *Patron
	requestedBy    *Patron
	dateCheckedOut int
}

// NewLibraryItem returns an item on the shelf with the generic 28 day loan.
func NewLibraryItem(id, title string) *LibraryItem {
	return newLibraryItem(id, title, ItemCheckOutLength)
}

func newLibraryItem(id, title string, length int) *LibraryItem {
	return &LibraryItem{
		id:             id,
		title:          title,
		checkOutLength: length,
		location:       OnShelf,
		dateCheckedOut: NeverCheckedOut,
	}
}

func (i *LibraryItem) ID() string          { return i.id }
func (i *LibraryItem) Title() string       { return i.title }
func (i *LibraryItem) Kind() string        { return "item" }
func (i *LibraryItem) CheckOutLength() int { return i.checkOutLength }

func (i *LibraryItem) Location() Location        { return i.location }
func (i *LibraryItem) SetLocation(l Location)    { i.location = l }
func (i *LibraryItem) CheckedOutBy() *Patron     { return i.checkedOutBy }
func (i *LibraryItem) SetCheckedOutBy(p *Patron) { i.checkedOutBy = p }
func (i *LibraryItem) RequestedBy() *Patron      { return i.requestedBy }
func (i *LibraryItem) SetRequestedBy(p *Patron)  { i.requestedBy = p }
func (i *LibraryItem) DateCheckedOut() int       { return i.dateCheckedOut }
func (i *LibraryItem) SetDateCheckedOut(d int)   { i.dateCheckedOut = d }

// IsOverdue reports whether more than the loan length has elapsed since the
// item was checked out.
func (i *LibraryItem) IsOverdue(currentDate int) bool {
	return currentDate-i.dateCheckedOut > i.checkOutLength
}

// Book is a holding with an author and a 21 day loan.
type Book struct {
	LibraryItem
	author string
}

func NewBook(id, title, author string) *Book {
	return &Book{LibraryItem: *newLibraryItem(id, title, BookCheckOutLength), author: author}
}

func (b *Book) Kind() string   { return "book" }
func (b *Book) Author() string { return b.author }

// Album is a holding with an artist and a 14 day loan.
type Album struct {
	LibraryItem
	artist string
}

func NewAlbum(id, title, artist string) *Album {
	return &Album{LibraryItem: *newLibraryItem(id, title, AlbumCheckOutLength), artist: artist}
}

func (a *Album) Kind() string   { return "album" }
func (a *Album) Artist() string { return a.artist }

// Movie is a holding with a director and a 7 day loan.
type Movie struct {
	LibraryItem
	director string
}

func NewMovie(id, title, director string) *Movie {
	return &Movie{LibraryItem: *newLibraryItem(id, title, MovieCheckOutLength), director: director}
}

func (m *Movie) Kind() string     { return "movie" }
func (m *Movie) Director() string { return m.director }

// creatorOf returns the descriptive attribute of a variant, or "" for a
// generic item.
func creatorOf(it Item) string {
	switch v := it.(type) {
	case *Book:
		return v.Author()
	case *Album:
		return v.Artist()
	case *Movie:
		return v.Director()
	}
	return ""
}
