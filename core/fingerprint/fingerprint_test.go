package fingerprint

import (
	"errors"
	"reflect"
	"testing"

	"ligysis-core/errs"
)

func TestNewSortsAndDedupes(t *testing.T) {
	f := New("L1", []int{12, 10, 11, 10, 12})
	if !reflect.DeepEqual(f.Residues, []int{10, 11, 12}) {
		t.Fatalf("residues not normalised: %v", f.Residues)
	}
	if !f.Contains(11) || f.Contains(13) {
		t.Fatalf("Contains wrong for %v", f.Residues)
	}
}

func TestFilterDropsEmpty(t *testing.T) {
	kept, dropped := Filter([]Fingerprint{New("a", []int{1}), New("b", nil), New("c", []int{2})})
	if len(kept) != 2 || kept[0].ID != "a" || kept[1].ID != "c" {
		t.Fatalf("kept: %+v", kept)
	}
	if len(dropped) != 1 || dropped[0] != "b" {
		t.Fatalf("dropped: %v", dropped)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]Fingerprint{New("a", []int{1}), New("b", []int{2})}); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := Validate([]Fingerprint{New("a", nil)}); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("empty set: want ErrInput, got %v", err)
	}
	if err := Validate([]Fingerprint{New("a", []int{1}), New("a", []int{2})}); !errors.Is(err, errs.ErrInput) {
		t.Fatalf("duplicate id: want ErrInput, got %v", err)
	}
}
