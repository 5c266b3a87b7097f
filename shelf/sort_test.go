package shelf_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arthur-debert/nanoshelf/shelf"
	"github.com/arthur-debert/nanoshelf/shelf/storage"
	"github.com/arthur-debert/nanoshelf/testutil"
	"github.com/arthur-debert/nanoshelf/types"
)

func TestNaturalSortChildren(t *testing.T) {
	store, _, u := testutil.LoadUniverse(t)
	ctx := context.Background()

	// The fixture deliberately creates the documents out of order.
	testutil.AssertChildNames(t, store, u.Projects.ID, "Roadmap", "Doc 10", "Doc 2", "Doc")

	if err := store.NaturalSortChildren(ctx, u.Projects.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertChildNames(t, store, u.Projects.ID, "Doc", "Doc 2", "Doc 10", "Roadmap")
	testutil.AssertOrderDense(t, store, u.Projects.ID)

	// Sorting an already sorted container is a stable no-op.
	if err := store.NaturalSortChildren(ctx, u.Projects.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertChildNames(t, store, u.Projects.ID, "Doc", "Doc 2", "Doc 10", "Roadmap")
}

func TestNaturalSortMixedCase(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	nb, err := store.CreateItem(ctx, "Box", types.ItemNotebook, storage.CreateOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"Doc 10", "doc1", "Doc", "Doc 2"} {
		if _, err := store.CreateItem(ctx, name, types.ItemDocument, storage.CreateOptions{ParentID: nb.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := store.NaturalSortChildren(ctx, nb.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertChildNames(t, store, nb.ID, "Doc", "doc1", "Doc 2", "Doc 10")
}

func TestNaturalSortRootLevel(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "Alpha", "beta"} {
		if _, err := store.CreateItem(ctx, name, types.ItemDocument, storage.CreateOptions{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := store.NaturalSortChildren(ctx, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertChildNames(t, store, "", "Alpha", "beta", "zeta")
}

func TestNaturalSortValidation(t *testing.T) {
	store, _, u := testutil.LoadUniverse(t)
	ctx := context.Background()

	if err := store.NaturalSortChildren(ctx, "nope"); !errors.Is(err, shelf.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.NaturalSortChildren(ctx, u.Roadmap.ID); !errors.Is(err, shelf.ErrNotContainer) {
		t.Errorf("expected ErrNotContainer, got %v", err)
	}
}
