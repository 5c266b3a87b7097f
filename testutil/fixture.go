// Package testutil provides the shared test fixture and assertion helpers
// used across the module's test suites.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/arthur-debert/nanoshelf/host"
	"github.com/arthur-debert/nanoshelf/shelf"
	"github.com/arthur-debert/nanoshelf/shelf/storage"
	"github.com/arthur-debert/nanoshelf/types"
)

// FixedTime is the deterministic clock value stores created by this package
// tick at.
var FixedTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// Universe gives typed access to the fixture tree:
//
//	Work (notebook)
//	  Projects (folder)
//	    Roadmap (document, block blk-roadmap)
//	    Doc 10 / Doc 2 / Doc (documents, deliberately unsorted)
//	  Meeting Notes (document, block blk-meeting)
//	Personal (notebook)
//	  Recipes (folder)
//	    Pasta (document, block blk-pasta)
//	Scratch (document, root level, no block)
type Universe struct {
	Work         types.Item
	Personal     types.Item
	Projects     types.Item
	Roadmap      types.Item
	Doc10        types.Item
	Doc2         types.Item
	DocPlain     types.Item
	MeetingNotes types.Item
	Recipes      types.Item
	Pasta        types.Item
	Scratch      types.Item
}

// NewStore returns an initialized empty store over a mock gateway with a
// deterministic clock.
func NewStore(t *testing.T) (*shelf.Store, *host.MockGateway) {
	t.Helper()
	gw := host.NewMockGateway()
	store := shelf.New(gw, shelf.WithClock(func() time.Time { return FixedTime }))
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return store, gw
}

// LoadUniverse returns a store populated with the fixture tree.
func LoadUniverse(t *testing.T) (*shelf.Store, *host.MockGateway, *Universe) {
	t.Helper()
	store, gw := NewStore(t)
	ctx := context.Background()

	gw.AddBlock(&types.Block{ID: "blk-roadmap", Text: "Roadmap 2024"})
	gw.AddBlock(&types.Block{ID: "blk-meeting", Text: "Meeting notes"})
	gw.AddBlock(&types.Block{ID: "blk-pasta", Text: "Pasta recipes"})

	u := &Universe{}
	u.Work = *mustCreate(t, store, ctx, "Work", types.ItemNotebook, storage.CreateOptions{})
	u.Personal = *mustCreate(t, store, ctx, "Personal", types.ItemNotebook, storage.CreateOptions{})
	u.Projects = *mustCreate(t, store, ctx, "Projects", types.ItemFolder, storage.CreateOptions{ParentID: u.Work.ID})
	u.Roadmap = *mustCreate(t, store, ctx, "Roadmap", types.ItemDocument, storage.CreateOptions{ParentID: u.Projects.ID, BlockID: "blk-roadmap"})
	u.Doc10 = *mustCreate(t, store, ctx, "Doc 10", types.ItemDocument, storage.CreateOptions{ParentID: u.Projects.ID})
	u.Doc2 = *mustCreate(t, store, ctx, "Doc 2", types.ItemDocument, storage.CreateOptions{ParentID: u.Projects.ID})
	u.DocPlain = *mustCreate(t, store, ctx, "Doc", types.ItemDocument, storage.CreateOptions{ParentID: u.Projects.ID})
	u.MeetingNotes = *mustCreate(t, store, ctx, "Meeting Notes", types.ItemDocument, storage.CreateOptions{ParentID: u.Work.ID, BlockID: "blk-meeting"})
	u.Recipes = *mustCreate(t, store, ctx, "Recipes", types.ItemFolder, storage.CreateOptions{ParentID: u.Personal.ID})
	u.Pasta = *mustCreate(t, store, ctx, "Pasta", types.ItemDocument, storage.CreateOptions{ParentID: u.Recipes.ID, BlockID: "blk-pasta"})
	u.Scratch = *mustCreate(t, store, ctx, "Scratch", types.ItemDocument, storage.CreateOptions{})

	return store, gw, u
}

func mustCreate(t *testing.T, store *shelf.Store, ctx context.Context, name string, typ types.ItemType, opts storage.CreateOptions) *types.Item {
	t.Helper()
	item, err := store.CreateItem(ctx, name, typ, opts)
	if err != nil {
		t.Fatalf("failed to create %s %q: %v", typ, name, err)
	}
	return item
}
