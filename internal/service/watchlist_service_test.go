package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"plate-capture-service/internal/repository"
)

func TestWatchlistAdd_DuplicateNamesThePlate(t *testing.T) {
	store := repository.NewMemoryWatchlistStore()
	svc := NewWatchlistService(store, zerolog.Nop())

	if _, err := svc.Add(context.Background(), "AB12345", nil); err != nil {
		t.Fatalf("First add failed: %v", err)
	}

	_, err := svc.Add(context.Background(), "AB12345", nil)
	if !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("Expected ErrDuplicatePlate, got %v", err)
	}
	if !strings.Contains(err.Error(), "AB12345") {
		t.Errorf("Expected the conflict error to name the plate, got %q", err.Error())
	}

	plates, _ := store.List(context.Background())
	if len(plates) != 1 {
		t.Errorf("Expected watch list size 1 after failed insert, got %d", len(plates))
	}
}

func TestWatchlistAdd_NormalizedDuplicateConflicts(t *testing.T) {
	store := repository.NewMemoryWatchlistStore()
	svc := NewWatchlistService(store, zerolog.Nop())

	if _, err := svc.Add(context.Background(), "AB12345", nil); err != nil {
		t.Fatalf("First add failed: %v", err)
	}

	if _, err := svc.Add(context.Background(), "ab-12 345", nil); !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("Expected case/spacing variant to conflict, got %v", err)
	}
}

func TestWatchlistAdd_RejectsEmptyPlate(t *testing.T) {
	svc := NewWatchlistService(repository.NewMemoryWatchlistStore(), zerolog.Nop())

	if _, err := svc.Add(context.Background(), "  --  ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput for a plate with no alphanumerics, got %v", err)
	}
}

func TestWatchlistRemove_MissingIDIsNoOp(t *testing.T) {
	svc := NewWatchlistService(repository.NewMemoryWatchlistStore(), zerolog.Nop())

	if err := svc.Remove(context.Background(), 999); err != nil {
		t.Fatalf("Expected removing a missing id to succeed, got %v", err)
	}
}

func TestWatchlistAdd_KeepsOriginalSpelling(t *testing.T) {
	store := repository.NewMemoryWatchlistStore()
	svc := NewWatchlistService(store, zerolog.Nop())

	desc := "delivery van"
	plate, err := svc.Add(context.Background(), "ab-12 345", &desc)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if plate.PlateNumber != "ab-12 345" {
		t.Errorf("Expected original spelling to be kept, got %q", plate.PlateNumber)
	}
	if plate.Normalized != "AB12345" {
		t.Errorf("Expected normalized AB12345, got %q", plate.Normalized)
	}
	if plate.ID == 0 {
		t.Error("Expected an assigned id")
	}
	if plate.Description == nil || *plate.Description != desc {
		t.Error("Expected description to be stored")
	}
}
