package domain

import "time"

// AllRegions selects every region when used as a filter value.
const AllRegions = "All"

type RiskLevel string

const (
	RiskHigh     RiskLevel = "High"
	RiskModerate RiskLevel = "Moderate"
)

// Record is one monthly surveillance observation for a region.
type Record struct {
	Date           time.Time
	Region         string
	Latitude       float64
	Longitude      float64
	Cases          int
	Recoveries     int
	Deaths         int
	PrevalenceRate float64 // percent
}

// Filter narrows records to a reporting year and a focus region.
// A zero Year matches every year; an empty or "All" Region matches every region.
type Filter struct {
	Year   int
	Region string
}

func (f Filter) AllRegions() bool {
	return f.Region == "" || f.Region == AllRegions
}

func (f Filter) Matches(r Record) bool {
	if f.Year != 0 && r.Date.Year() != f.Year {
		return false
	}
	if !f.AllRegions() && r.Region != f.Region {
		return false
	}
	return true
}

// RegionLabel is the display name of the focus region.
func (f Filter) RegionLabel() string {
	if f.AllRegions() {
		return AllRegions
	}
	return f.Region
}

type KPIs struct {
	TotalCases      int
	TotalRecoveries int
	TotalDeaths     int
	AvgPrevalence   float64
	Risk            RiskLevel
}

type TrendPoint struct {
	Date   time.Time
	Region string
	Cases  int
}

type MapPoint struct {
	Region    string
	Latitude  float64
	Longitude float64
	Cases     int
}

type OutcomeSplit struct {
	Recoveries int
	Deaths     int
}

type PivotRow struct {
	Region string
	Cases  int
	Deaths int
}

// MapFrame holds the map bubbles of a single month of an animation.
type MapFrame struct {
	Month  string
	Points []MapPoint
}

type RegionTotal struct {
	Region string
	Cases  int
}

// RaceFrame ranks regions by cases for a single month, highest first.
type RaceFrame struct {
	Month   string
	Ranking []RegionTotal
}

// Snapshot is the dashboard state rendered by text reporters.
type Snapshot struct {
	Filter Filter
	KPIs   KPIs
	Pivot  []PivotRow
}
