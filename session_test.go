package bondbook

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
)

func openSession(t *testing.T, st *memoryStorage) *Session {
	t.Helper()
	s, err := Open(context.Background(), st, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	st := &memoryStorage{saved: sampleBook().Instruments()}
	s := openSession(t, st)

	i, err := s.Add(ctx)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if got := ids(st.saved); got != "a,b,c,"+string(i.ID) {
		t.Errorf("saved after Add() = %q", got)
	}

	d := DraftOf(i)
	d.Name, d.Held, d.Months, d.Coupon = "new", "3", []Month{5}, "4"
	if _, err := s.Edit(ctx, i.ID, d); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if got := st.saved[3]; got.Name != "new" || !got.Held.Equal(Q(3)) {
		t.Errorf("saved after Edit() = %v", got)
	}

	if err := s.MoveUp(ctx, i.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Move(ctx, 0, 3); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "c"); err != nil {
		t.Fatal(err)
	}
	want := "b," + string(i.ID) + ",a"
	if got := ids(st.saved); got != want {
		t.Errorf("saved = %q, want %q", got, want)
	}
	if got := ids(s.Book().Instruments()); got != want {
		t.Errorf("Book() = %q, want %q", got, want)
	}

	// Reopening reads what was saved.
	if got := ids(openSession(t, st).Book().Instruments()); got != want {
		t.Errorf("reopened book = %q, want %q", got, want)
	}
}

func TestSession_EditingIsNotSaved(t *testing.T) {
	st := &memoryStorage{saved: sampleBook().Instruments()}
	s := openSession(t, st)

	if _, err := s.BeginEdit("a"); err != nil {
		t.Fatal(err)
	}
	if e, ok := s.Book().Editing(); !ok || e.ID != "a" {
		t.Errorf("Editing() = %v, %v", e.ID, ok)
	}
	s.Cancel()
	if _, ok := s.Book().Editing(); ok {
		t.Error("Cancel() did not stop editing")
	}
	if st.saves != 0 {
		t.Errorf("BeginEdit() and Cancel() saved %d times", st.saves)
	}
}

func TestSession_Invalid(t *testing.T) {
	st := &memoryStorage{saved: sampleBook().Instruments()}
	s := openSession(t, st)

	_, err := s.Edit(context.Background(), "a", Draft{Name: "a"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Edit() error = %v, want a *ValidationError", err)
	}
	if st.saves != 0 {
		t.Errorf("invalid Edit() saved")
	}
}

func TestSession_SaveFailure(t *testing.T) {
	ctx := context.Background()
	broken := errors.New("disk full")
	st := &memoryStorage{saved: sampleBook().Instruments()}
	s := openSession(t, st)
	st.fail = broken

	if err := s.Delete(ctx, "a"); !errors.Is(err, broken) {
		t.Errorf("Delete() error = %v, want %v", err, broken)
	}
	if _, err := s.Add(ctx); !errors.Is(err, broken) {
		t.Errorf("Add() error = %v, want %v", err, broken)
	}
	if err := s.Replace(ctx, nil); !errors.Is(err, broken) {
		t.Errorf("Replace() error = %v, want %v", err, broken)
	}
	if got := ids(s.Book().Instruments()); got != "a,b,c" {
		t.Errorf("Book() after failed saves = %q, want a,b,c", got)
	}
}

func TestSession_Replace(t *testing.T) {
	ctx := context.Background()
	st := &memoryStorage{saved: sampleBook().Instruments()}
	s := openSession(t, st)

	if err := s.Replace(ctx, []Instrument{bond("x", "x", 1, "1", 1), bond("x", "y", 1, "1", 1)}); err == nil {
		t.Error("Replace() with duplicated ids succeeded")
	}
	if err := s.Replace(ctx, []Instrument{bond("x", "x", 1, "1", 1)}); err != nil {
		t.Fatal(err)
	}
	if got := ids(st.saved); got != "x" {
		t.Errorf("saved = %q, want x", got)
	}
}

func TestSession_DeleteLast(t *testing.T) {
	ctx := context.Background()
	st := &memoryStorage{saved: []Instrument{bond("a", "a", 1, "2", 3)}}
	s := openSession(t, st)

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if s.Book().Len() != 0 || len(st.saved) != 0 {
		t.Errorf("book = %q, saved = %q, want both empty", ids(s.Book().Instruments()), ids(st.saved))
	}
	r := NewReport(s.Book(), "", mustDate(t, "2024-03-01"), Hover{})
	if !r.Monthly.Sum().IsZero() || !r.Monthly.Max().IsZero() {
		t.Errorf("monthly income of an empty book = %v", r.Monthly)
	}
}
