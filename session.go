package bondbook

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Storage persists the ordered list of instruments in a single named slot.
//
// Load returns an empty list when the slot does not exist yet.
type Storage interface {
	Load(ctx context.Context) ([]Instrument, error)
	Save(ctx context.Context, instruments []Instrument) error
}

// Session owns a Book and writes it to its Storage after every mutation.
//
// Each operation computes the new snapshot, saves the whole sequence, and only
// then makes the snapshot current. When saving fails the previous snapshot is
// kept and the error returned. Operations are serialized.
type Session struct {
	mu      sync.Mutex
	storage Storage
	book    Book
	log     *zap.Logger
	newID   func() ID
}

// Open loads the book from storage.
func Open(ctx context.Context, storage Storage, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	instruments, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load book: %w", err)
	}
	log.Debug("book loaded", zap.Int("instruments", len(instruments)))
	return &Session{
		storage: storage,
		book:    NewBook(instruments),
		log:     log,
		newID:   NewID,
	}, nil
}

// Book returns the current snapshot.
func (s *Session) Book() Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book
}

// commit saves nb and makes it current.
func (s *Session) commit(ctx context.Context, op string, nb Book) error {
	if err := s.storage.Save(ctx, nb.Instruments()); err != nil {
		s.log.Error("cannot save book", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("cannot save book after %s: %w", op, err)
	}
	s.book = nb
	s.log.Debug("book saved", zap.String("op", op), zap.Int("instruments", nb.Len()))
	return nil
}

// Add appends a placeholder instrument, marked as being edited.
func (s *Session) Add(ctx context.Context) (Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nb, i, err := s.book.Add(s.newID())
	if err != nil {
		return Instrument{}, err
	}
	if err := s.commit(ctx, "add", nb); err != nil {
		return Instrument{}, err
	}
	return i, nil
}

// BeginEdit marks instrument id as being edited. Nothing is written.
func (s *Session) BeginEdit(id ID) (Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nb, err := s.book.BeginEdit(id)
	if err != nil {
		return Instrument{}, err
	}
	s.book = nb
	i, _ := nb.Get(id)
	return i, nil
}

// Cancel stops editing. Nothing is written.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book = s.book.Cancel()
}

// Edit replaces instrument id with the draft values. A *ValidationError
// leaves the book untouched.
func (s *Session) Edit(ctx context.Context, id ID, d Draft) (Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nb, err := s.book.Edit(id, d)
	if err != nil {
		return Instrument{}, err
	}
	if err := s.commit(ctx, "edit", nb); err != nil {
		return Instrument{}, err
	}
	i, _ := nb.Get(id)
	return i, nil
}

// Delete removes instrument id.
func (s *Session) Delete(ctx context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "delete", s.book.Delete(id))
}

// Move relocates the instrument at from to position to.
func (s *Session) Move(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "move", s.book.Move(from, to))
}

// MoveUp moves instrument id one position up.
func (s *Session) MoveUp(ctx context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "up", s.book.MoveUp(id))
}

// MoveDown moves instrument id one position down.
func (s *Session) MoveDown(ctx context.Context, id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx, "down", s.book.MoveDown(id))
}

// Replace swaps the whole book for instruments, as an import does.
func (s *Session) Replace(ctx context.Context, instruments []Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkIDs(instruments); err != nil {
		return err
	}
	return s.commit(ctx, "replace", NewBook(instruments))
}
