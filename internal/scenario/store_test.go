package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"whatif/internal/state"
)

func sampleScenario(id string, createdAt time.Time) *state.WhatIfScenario {
	due := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	return &state.WhatIfScenario{
		ID:        id,
		Name:      "scenario " + id,
		CreatedAt: createdAt,
		Status:    state.StatusDraft,
		Baseline: state.SystemState{
			Events: []state.Event{
				{ID: "e1", Title: "Standup", StartTime: due.Add(-9 * time.Hour), EndTime: due.Add(-8 * time.Hour), Category: state.CategoryWork, Priority: state.PriorityMedium},
			},
			Tasks: []state.Task{
				{ID: "t1", Title: "Report", DueDate: &due, Status: state.TaskPending, Priority: state.PriorityHigh, EstimatedMinutes: 60},
			},
		},
		Changes: []state.ScenarioChange{
			{ID: "c1", Type: state.ChangeRemove, Target: state.TargetEvent, Remove: &state.RemovePayload{ItemID: "e1"}},
		},
	}
}

func TestRepository_PutGetDelete(t *testing.T) {
	repo := NewRepository()
	s := sampleScenario("s1", time.Now())

	repo.Put(s)
	got, ok := repo.Get("s1")
	if !ok || got.ID != "s1" {
		t.Fatalf("Get after Put: ok=%v got=%v", ok, got)
	}

	repo.Delete("s1")
	if _, ok := repo.Get("s1"); ok {
		t.Errorf("scenario still present after Delete")
	}
}

func TestRepository_ListOrderedByCreation(t *testing.T) {
	repo := NewRepository()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo.Put(sampleScenario("newest", base.Add(2*time.Hour)))
	repo.Put(sampleScenario("oldest", base))
	repo.Put(sampleScenario("middle", base.Add(time.Hour)))

	list := repo.List()
	want := []string{"oldest", "middle", "newest"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %q, want %q", i, list[i].ID, id)
		}
	}
}

func TestRepository_ActivePointer(t *testing.T) {
	repo := NewRepository()

	if err := repo.SetActive("ghost"); !errors.Is(err, state.ErrNotFound) {
		t.Errorf("SetActive on missing scenario: got %v, want ErrNotFound", err)
	}

	repo.Put(sampleScenario("s1", time.Now()))
	if err := repo.SetActive("s1"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	active, ok := repo.Active()
	if !ok || active.ID != "s1" {
		t.Fatalf("Active: ok=%v got=%v", ok, active)
	}

	repo.Delete("s1")
	if _, ok := repo.Active(); ok {
		t.Errorf("active pointer survived deleting its scenario")
	}
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	src := NewRepository()
	src.Put(sampleScenario("s1", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)))
	src.Put(sampleScenario("s2", time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)))
	if err := src.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := NewRepository()
	if err := dst.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, ok := dst.Get("s1")
	if !ok {
		t.Fatalf("s1 missing after reload")
	}
	if got.Name != "scenario s1" || len(got.Changes) != 1 || got.Changes[0].Remove == nil {
		t.Errorf("scenario content lost in roundtrip: %+v", got)
	}
	if got.Baseline.Tasks[0].DueDate == nil {
		t.Errorf("due date pointer lost in roundtrip")
	}
	if len(dst.List()) != 2 {
		t.Errorf("expected 2 scenarios after reload, got %d", len(dst.List()))
	}
}

func TestRepository_LoadMissingCacheIsFine(t *testing.T) {
	repo := NewRepository()
	if err := repo.Load(t.TempDir()); err != nil {
		t.Errorf("missing cache must not error, got %v", err)
	}
}

func TestRepository_LoadSkipsInvalidLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"id":"good","name":"ok","status":"draft","created_at":"2025-03-10T09:00:00Z","baseline":{},"changes":[]}
this is not json
`
	if err := os.WriteFile(filepath.Join(dir, cacheFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository()
	if err := repo.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := repo.Get("good"); !ok {
		t.Errorf("valid line was not loaded")
	}
	if len(repo.List()) != 1 {
		t.Errorf("invalid line produced a scenario")
	}
}

func TestRepository_SaveEmptyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	if err := NewRepository().Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, cacheFile)); !os.IsNotExist(err) {
		t.Errorf("empty repository wrote a cache file")
	}
}

func TestRepository_SaveAfterDeletingLastScenarioClearsCache(t *testing.T) {
	dir := t.TempDir()

	repo := NewRepository()
	repo.Put(sampleScenario("s1", time.Now()))
	if err := repo.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	repo.Delete("s1")
	if err := repo.Save(dir); err != nil {
		t.Fatalf("Save after delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, cacheFile)); !os.IsNotExist(err) {
		t.Errorf("stale cache file survived the delete")
	}

	reloaded := NewRepository()
	if err := reloaded.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded.List()) != 0 {
		t.Errorf("deleted scenario resurrected from stale cache")
	}
}
