package annotations

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "annotations.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)

	a := &Annotation{
		Series: "chest-01",
		Frame:  3,
		Tool:   "measure",
		Value:  42.5,
		Unit:   "mm",
		X1:     10, Y1: 20, X2: 30, Y2: 40,
	}
	if err := s.Put(a); err != nil {
		t.Fatal(err)
	}
	if a.ID == "" {
		t.Fatal("Put should assign an id")
	}

	got, err := s.Get(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("annotation not found after Put")
	}
	if got.Series != "chest-01" || got.Frame != 3 || got.Value != 42.5 || got.X2 != 30 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("missing id should return nil, nil")
	}
}

func TestStore_ListOrdersByFrame(t *testing.T) {
	s := openTestStore(t)
	for _, frame := range []int{5, 1, 3} {
		if err := s.Put(&Annotation{Series: "s", Frame: frame, Tool: "measure"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Put(&Annotation{Series: "other", Frame: 0, Tool: "measure"}); err != nil {
		t.Fatal(err)
	}

	list, err := s.List("s")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d annotations, want 3", len(list))
	}
	for i, want := range []int{1, 3, 5} {
		if list[i].Frame != want {
			t.Errorf("list[%d].Frame = %d, want %d", i, list[i].Frame, want)
		}
	}
}

func TestStore_SetLabel(t *testing.T) {
	s := openTestStore(t)
	a := &Annotation{Series: "s", Tool: "measure"}
	if err := s.Put(a); err != nil {
		t.Fatal(err)
	}

	if err := s.SetLabel(a.ID, "lesion"); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(a.ID)
	if got.Label != "lesion" {
		t.Errorf("label = %q, want lesion", got.Label)
	}

	if err := s.SetLabel("missing", "x"); err == nil {
		t.Error("labelling an unknown id should fail")
	}
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	a := &Annotation{Series: "s", Tool: "measure"}
	if err := s.Put(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(a.ID); got != nil {
		t.Error("annotation still present after Delete")
	}
	if err := s.Delete("missing"); err != nil {
		t.Errorf("deleting unknown id should be a no-op, got %v", err)
	}
}
