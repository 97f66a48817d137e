// Package scenario holds the in-memory scenario repository and its optional
// JSONL cache persistence.
package scenario

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"whatif/internal/state"
)

const cacheFile = "scenarios.jsonl"

// Repository exclusively owns all WhatIfScenario instances by id, plus the
// "active scenario" pointer. The active pointer is a lookup key, not a
// second owner. Safe for concurrent use; note that handing out *WhatIfScenario
// means a single scenario must not be simulated from two goroutines at once.
type Repository struct {
	mu        sync.RWMutex
	scenarios map[string]*state.WhatIfScenario
	activeID  string
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		scenarios: make(map[string]*state.WhatIfScenario),
	}
}

// Put stores or replaces a scenario.
func (r *Repository) Put(s *state.WhatIfScenario) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scenarios[s.ID] = s
}

// Get returns the scenario with the given id.
func (r *Repository) Get(id string) (*state.WhatIfScenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scenarios[id]
	return s, ok
}

// Delete removes a scenario; it also clears the active pointer if it was
// pointing at the removed scenario.
func (r *Repository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scenarios, id)
	if r.activeID == id {
		r.activeID = ""
	}
}

// List returns all scenarios ordered by creation time.
func (r *Repository) List() []*state.WhatIfScenario {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*state.WhatIfScenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// SetActive points the active-scenario reference at an existing scenario.
func (r *Repository) SetActive(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scenarios[id]; !ok {
		return fmt.Errorf("%w: scenario %s", state.ErrNotFound, id)
	}
	r.activeID = id
	return nil
}

// Active resolves the active-scenario pointer, if any.
func (r *Repository) Active() (*state.WhatIfScenario, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scenarios[r.activeID]
	return s, ok
}

// Load reads scenarios from the JSONL cache in dir. A missing cache is not
// an error; invalid lines are skipped with a warning.
func (r *Repository) Load(dir string) error {
	path := filepath.Join(dir, cacheFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open scenario cache: %w", err)
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		var s state.WhatIfScenario
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			log.Warn().Err(err).Msg("Skipping invalid JSON line in scenario cache")
			continue
		}
		r.Put(&s)
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading scenario cache: %w", err)
	}

	log.Info().Int("count", count).Str("path", path).Msg("Loaded scenarios from cache")
	return nil
}

// Save persists all scenarios to the JSONL cache in dir, one scenario per
// line, via an atomic tmp+rename.
func (r *Repository) Save(dir string) error {
	scenarios := r.List()
	path := filepath.Join(dir, cacheFile)

	// An empty repository removes the cache, otherwise deleting the last
	// scenario would resurrect it on the next Load.
	if len(scenarios) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale scenario cache: %w", err)
		}
		return nil
	}

	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, s := range scenarios {
		if err := encoder.Encode(s); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("%w: %v", state.ErrSerialization, err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	log.Info().Int("count", len(scenarios)).Str("path", path).Msg("Scenarios saved to cache")
	return nil
}
