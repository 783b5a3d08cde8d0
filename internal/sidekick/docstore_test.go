package sidekick_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"sidekick/internal/sidekick"
	"sidekick/internal/testutil"
)

func TestStorageKey(t *testing.T) {
	tests := []struct {
		userID string
		want   string
	}{
		{"alice", "sidekick-data-alice"},
		{"", "sidekick-data-guest"},
		{"a1b2", "sidekick-data-a1b2"},
	}
	for _, tt := range tests {
		if got := sidekick.StorageKey(tt.userID); got != tt.want {
			t.Errorf("StorageKey(%q) = %q, want %q", tt.userID, got, tt.want)
		}
	}
}

func TestDocumentStore_FreshUserGetsDefault(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewTestStorage()

	store := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), sidekick.StorageKey("alice"))
	doc := store.Get()

	if len(doc.Tasks) != 0 || doc.Tasks == nil {
		t.Errorf("Tasks = %#v, want empty non-nil", doc.Tasks)
	}
	if doc.SchemaVersion != sidekick.CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", doc.SchemaVersion, sidekick.CurrentSchemaVersion)
	}

	// Loading must not write anything.
	keys, _ := storage.Keys(ctx)
	if len(keys) != 0 {
		t.Errorf("storage keys after load = %v, want none", keys)
	}
}

func TestDocumentStore_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewTestStorage()
	key := sidekick.StorageKey("alice")

	store := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), key)
	store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-1", "Call the venue")
	})
	if !store.Durable() {
		t.Fatal("Durable() = false after successful write")
	}

	reopened := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), key)
	tasks := reopened.Get().Tasks
	if len(tasks) != 1 || tasks[0].Title != "Call the venue" {
		t.Errorf("reloaded tasks = %+v", tasks)
	}
}

func TestDocumentStore_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewTestStorage()
	logger := sidekick.NewNopLogger()

	alice := sidekick.NewDocumentStore(ctx, storage, logger, sidekick.StorageKey("alice"))
	alice.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-1", "Alice's task")
	})

	bob := sidekick.NewDocumentStore(ctx, storage, logger, sidekick.StorageKey("bob"))
	if n := len(bob.Get().Tasks); n != 0 {
		t.Errorf("bob sees %d tasks, want 0", n)
	}
}

func TestDocumentStore_WriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewFailingStorage(testutil.NewTestStorage())
	key := sidekick.StorageKey("alice")
	store := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), key)

	storage.FailSets(fmt.Errorf("write: %w", sidekick.ErrQuotaExceeded))
	got := store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-1", "Unsaved")
	})
	if len(got.Tasks) != 1 {
		t.Fatalf("Update() returned %d tasks, want 1", len(got.Tasks))
	}
	if len(store.Get().Tasks) != 1 {
		t.Error("in-memory document lost the change after a failed write")
	}
	if store.Durable() {
		t.Error("Durable() = true after failed write")
	}
	if _, err := storage.Get(ctx, key); !errors.Is(err, sidekick.ErrNotFound) {
		t.Errorf("storage holds a value after failed write: err = %v", err)
	}

	// The next successful write carries every change made meanwhile.
	storage.FailSets(nil)
	store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-2", "Saved")
	})
	if !store.Durable() {
		t.Error("Durable() = false after recovery")
	}
	raw, err := storage.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n := len(sidekick.MergeWithDefaults(raw).Tasks); n != 2 {
		t.Errorf("stored document has %d tasks, want 2", n)
	}
}

func TestDocumentStore_ReadFailureKeepsStoredValue(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewFailingStorage(testutil.NewTestStorage())
	key := sidekick.StorageKey("alice")

	seed := sidekick.AddTask(sidekick.AddTask(sidekick.Default(), "t-1", "One"), "t-2", "Two")
	if err := sidekick.SaveDocument(ctx, storage, key, seed); err != nil {
		t.Fatal(err)
	}
	setsBefore := storage.SetCalls()

	storage.FailGets(true)
	store := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), key)
	storage.FailGets(false)

	if store.Durable() {
		t.Error("Durable() = true after a failed load")
	}
	got := store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-3", "Three")
	})
	if len(got.Tasks) != 1 {
		t.Errorf("in-memory tasks = %d, want 1", len(got.Tasks))
	}
	if store.Durable() {
		t.Error("Durable() = true for a change that was kept in memory only")
	}
	if n := storage.SetCalls(); n != setsBefore {
		t.Errorf("store wrote %d time(s) after a failed load, want none", n-setsBefore)
	}

	raw, err := storage.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n := len(sidekick.MergeWithDefaults(raw).Tasks); n != 2 {
		t.Errorf("stored document has %d tasks, want the 2 seeded ones", n)
	}

	// Once storage answers again, Reload restores the real document and
	// writes go through.
	if n := len(store.Reload(ctx).Tasks); n != 2 {
		t.Fatalf("Reload() tasks = %d, want 2", n)
	}
	store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-3", "Three")
	})
	if !store.Durable() {
		t.Error("Durable() = false after Reload and a successful write")
	}
	raw, err = storage.Get(ctx, key)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(sidekick.MergeWithDefaults(raw).Tasks); n != 3 {
		t.Errorf("stored document has %d tasks, want 3", n)
	}
}

func TestDocumentStore_UnreadableValueFallsBack(t *testing.T) {
	ctx := context.Background()
	key := sidekick.StorageKey("alice")

	t.Run("invalid JSON", func(t *testing.T) {
		storage := testutil.NewTestStorage()
		if err := storage.Set(ctx, key, []byte(`{"tasks":[`)); err != nil {
			t.Fatal(err)
		}
		doc := sidekick.LoadDocument(ctx, storage, sidekick.NewNopLogger(), key)
		if len(doc.Tasks) != 0 {
			t.Errorf("Tasks = %+v, want defaults", doc.Tasks)
		}
	})

	t.Run("read error", func(t *testing.T) {
		storage := testutil.NewFailingStorage(testutil.NewTestStorage())
		storage.FailGets(true)
		doc := sidekick.LoadDocument(ctx, storage, sidekick.NewNopLogger(), key)
		if doc.Phono.Tracks == nil {
			t.Error("Phono.Tracks is nil, want defaults")
		}
	})

	t.Run("array", func(t *testing.T) {
		storage := testutil.NewTestStorage()
		if err := storage.Set(ctx, key, []byte(`[1,2,3]`)); err != nil {
			t.Fatal(err)
		}
		doc := sidekick.LoadDocument(ctx, storage, sidekick.NewNopLogger(), key)
		if doc.SchemaVersion != sidekick.CurrentSchemaVersion || len(doc.Tasks) != 0 {
			t.Errorf("got %+v, want defaults", doc)
		}
	})
}

func TestDocumentStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := sidekick.NewDocumentStore(ctx, testutil.NewTestStorage(), sidekick.NewNopLogger(), "k")
	store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-1", "Original")
	})

	doc := store.Get()
	doc.Tasks[0].Title = "Mutated"

	if got := store.Get().Tasks[0].Title; got != "Original" {
		t.Errorf("store changed through a returned copy: %q", got)
	}
}

func TestDocumentStore_SetStampsVersion(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewTestStorage()
	store := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), "k")

	doc := sidekick.Default()
	doc.SchemaVersion = 0
	store.Set(ctx, doc)

	raw, err := storage.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	var stored struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatal(err)
	}
	if stored.SchemaVersion != sidekick.CurrentSchemaVersion {
		t.Errorf("stored schemaVersion = %d", stored.SchemaVersion)
	}
}

func TestDocumentStore_ResetAndReload(t *testing.T) {
	ctx := context.Background()
	storage := testutil.NewTestStorage()
	key := sidekick.StorageKey("alice")
	store := sidekick.NewDocumentStore(ctx, storage, sidekick.NewNopLogger(), key)

	store.Update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, "t-1", "Something")
	})
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if n := len(store.Get().Tasks); n != 0 {
		t.Errorf("after Reset, %d tasks remain", n)
	}
	if _, err := storage.Get(ctx, key); !errors.Is(err, sidekick.ErrNotFound) {
		t.Errorf("key still stored after Reset: %v", err)
	}

	// Another writer changes the stored value; Reload picks it up.
	other := sidekick.Default()
	other = sidekick.AddTask(other, "t-9", "From elsewhere")
	if err := sidekick.SaveDocument(ctx, storage, key, other); err != nil {
		t.Fatal(err)
	}
	if got := store.Reload(ctx).Tasks; len(got) != 1 || got[0].ID != "t-9" {
		t.Errorf("Reload() tasks = %+v", got)
	}
}
