package charts

import (
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/report"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
)

const (
	CaseTrends      = "Case Trends"
	GeographicMap   = "Geographic Map"
	OutcomeSplit    = "Outcome Split"
	RegionalRanking = "Regional Ranking"
)

// Factory builds a chart over already filtered records.
type Factory func(records []domain.Record) report.Rasterizer

// Registry manages the named charts that can be rendered for a report or download.
type Registry interface {
	// Register adds a new chart factory
	Register(name string, factory Factory) error
	// Create instantiates the named chart over the given records
	Create(name string, records []domain.Record) (report.Rasterizer, error)
	// List returns registered chart names in alphabetical order
	List() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]Factory),
	}
}

// NewDefaultRegistry registers the trend, map, outcome and ranking charts.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	MustRegister(r, CaseTrends, func(records []domain.Record) report.Rasterizer {
		return TrendChart{Title: "Malaria Incidence Trends", Points: surveillance.Trend(records)}
	})
	MustRegister(r, GeographicMap, func(records []domain.Record) report.Rasterizer {
		return MapChart{Title: "Geographic Incidence", Points: surveillance.Map(records)}
	})
	MustRegister(r, OutcomeSplit, func(records []domain.Record) report.Rasterizer {
		return OutcomeChart{Title: "Outcome Distribution", Outcome: surveillance.Outcome(records)}
	})
	MustRegister(r, RegionalRanking, func(records []domain.Record) report.Rasterizer {
		return RankingChart{Title: "Regional Ranking", Ranking: surveillance.Ranking(records)}
	})
	return r
}

// MustRegister is Register for built-in charts; it panics when the name is taken.
func MustRegister(r Registry, name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func (r *registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("chart name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("chart %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string, records []domain.Record) (report.Rasterizer, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("chart %q is not registered", name)
	}

	return factory(records), nil
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
