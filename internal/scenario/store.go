// Package scenario provides the in-memory scenario store, side-by-side
// comparison, and the per-session store registry.
package scenario

import (
	"sort"
	"sync"

	"github.com/lendforge/lending-forecast/internal/forecast"
	"github.com/lendforge/lending-forecast/pkg/validation"
)

// Summary is the listing view of a saved scenario.
type Summary struct {
	Name            string          `json:"name"`
	HorizonMonths   int             `json:"horizonMonths"`
	Totals          forecast.Totals `json:"totals"`
	RevenuePerLoan  float64         `json:"avgRevenuePerLoan"`
	NetContribution float64         `json:"netContributionPerLoan"`
}

// Store maps scenario names to saved forecast results. Saves are upserts:
// saving under an existing name replaces the previous snapshot. The store
// lives for the duration of a session only.
type Store struct {
	mu        sync.RWMutex
	scenarios map[string]*forecast.Result
}

// NewStore creates an empty scenario store.
func NewStore() *Store {
	return &Store{scenarios: make(map[string]*forecast.Result)}
}

// Save upserts a computed result under its scenario name.
func (s *Store) Save(result *forecast.Result) error {
	if err := validation.ValidateScenarioName(result.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios[result.Name] = result
	return nil
}

// Get retrieves a saved scenario by name.
func (s *Store) Get(name string) (*forecast.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scenarios[name]
	return result, ok
}

// Delete removes a saved scenario. It reports whether the name existed.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scenarios[name]; !ok {
		return false
	}
	delete(s.scenarios, name)
	return true
}

// Clear removes all saved scenarios.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenarios = make(map[string]*forecast.Result)
}

// Count returns the number of saved scenarios.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenarios)
}

// List returns summaries of all saved scenarios, sorted by name.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.scenarios))
	for _, result := range s.scenarios {
		summaries = append(summaries, Summary{
			Name:            result.Name,
			HorizonMonths:   result.Parameters.HorizonMonths,
			Totals:          result.Totals,
			RevenuePerLoan:  result.UnitEconomics.RevenuePerLoan,
			NetContribution: result.UnitEconomics.NetContributionPerLoan,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}

// All returns the saved results sorted by name.
func (s *Store) All() []*forecast.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*forecast.Result, 0, len(s.scenarios))
	for _, result := range s.scenarios {
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}
