package bondbook

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned when an intent refers to an id that is not in the book.
var ErrNotFound = errors.New("instrument not found")

// Book is an immutable snapshot of the ordered list of instruments, and of the
// instrument being edited if any.
//
// Every mutation returns a new Book, the receiver is never modified. The order
// of the instruments is meaningful: it is the display order.
type Book struct {
	instruments []Instrument
	editing     ID
}

// NewBook returns a book holding a copy of instruments, in order.
func NewBook(instruments []Instrument) Book {
	b := Book{instruments: make([]Instrument, len(instruments))}
	for k, i := range instruments {
		b.instruments[k] = i.Clone()
	}
	return b
}

// Instruments returns a copy of the instruments in display order.
func (b Book) Instruments() []Instrument {
	out := make([]Instrument, len(b.instruments))
	for k, i := range b.instruments {
		out[k] = i.Clone()
	}
	return out
}

// Len returns the number of instruments.
func (b Book) Len() int { return len(b.instruments) }

// Index returns the position of instrument id, or -1.
func (b Book) Index(id ID) int {
	return slices.IndexFunc(b.instruments, func(i Instrument) bool { return i.ID == id })
}

// Get returns a copy of instrument id.
func (b Book) Get(id ID) (Instrument, bool) {
	k := b.Index(id)
	if k < 0 {
		return Instrument{}, false
	}
	return b.instruments[k].Clone(), true
}

// Editing returns the instrument currently being edited.
func (b Book) Editing() (Instrument, bool) {
	if b.editing == "" {
		return Instrument{}, false
	}
	return b.Get(b.editing)
}

// with returns a book sharing nothing with b, holding instruments.
func (b Book) with(instruments []Instrument) Book {
	return Book{instruments: instruments, editing: b.editing}
}

// Add appends a placeholder instrument with the given fresh id and marks it as
// being edited.
func (b Book) Add(id ID) (Book, Instrument, error) {
	if b.Index(id) >= 0 {
		return b, Instrument{}, fmt.Errorf("instrument %q already exists", id)
	}
	i := NewInstrument(id)
	nb := b.with(append(b.Instruments(), i))
	nb.editing = id
	return nb, i.Clone(), nil
}

// BeginEdit marks instrument id as being edited.
func (b Book) BeginEdit(id ID) (Book, error) {
	if b.Index(id) < 0 {
		return b, fmt.Errorf("cannot edit %q: %w", id, ErrNotFound)
	}
	nb := b.with(b.Instruments())
	nb.editing = id
	return nb, nil
}

// Cancel stops editing. An instrument added and never saved stays in the book.
func (b Book) Cancel() Book {
	nb := b.with(b.Instruments())
	nb.editing = ""
	return nb
}

// Edit validates the draft and replaces every field of instrument id but its
// id. On a validation failure it returns the unchanged book and a
// *ValidationError.
func (b Book) Edit(id ID, d Draft) (Book, error) {
	k := b.Index(id)
	if k < 0 {
		return b, fmt.Errorf("cannot save %q: %w", id, ErrNotFound)
	}
	if err := d.Validate(); err != nil {
		return b, err
	}
	instruments := b.Instruments()
	instruments[k] = d.apply(instruments[k])
	nb := b.with(instruments)
	if nb.editing == id {
		nb.editing = ""
	}
	return nb, nil
}

// Delete removes instrument id. Deleting an unknown id changes nothing.
func (b Book) Delete(id ID) Book {
	instruments := slices.DeleteFunc(b.Instruments(), func(i Instrument) bool { return i.ID == id })
	nb := b.with(instruments)
	if nb.editing == id {
		nb.editing = ""
	}
	return nb
}

// Move relocates the instrument at from to position to. Out of range
// positions leave the order unchanged.
func (b Book) Move(from, to int) Book {
	return b.with(Move(b.Instruments(), from, to))
}

// MoveUp moves instrument id one position up. Unknown ids and the first
// instrument are left in place.
func (b Book) MoveUp(id ID) Book {
	k := b.Index(id)
	if k < 0 {
		return b.with(b.Instruments())
	}
	return b.Move(k, k-1)
}

// MoveDown moves instrument id one position down. Unknown ids and the last
// instrument are left in place.
func (b Book) MoveDown(id ID) Book {
	k := b.Index(id)
	if k < 0 {
		return b.with(b.Instruments())
	}
	return b.Move(k, k+1)
}
