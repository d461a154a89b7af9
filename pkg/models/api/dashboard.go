package api

import "time"

type Filters struct {
	Years   []int    `json:"years"`
	Regions []string `json:"regions"`
}

type KPIs struct {
	Year            int     `json:"year"`
	Region          string  `json:"region"`
	TotalCases      int     `json:"total_cases"`
	TotalRecoveries int     `json:"total_recoveries"`
	TotalDeaths     int     `json:"total_deaths"`
	AvgPrevalence   float64 `json:"avg_prevalence"`
	Risk            string  `json:"risk"`
}

type TrendPoint struct {
	Date   time.Time `json:"date"`
	Region string    `json:"region"`
	Cases  int       `json:"cases"`
}

type MapPoint struct {
	Region    string  `json:"region"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Cases     int     `json:"cases"`
}

type OutcomeSplit struct {
	Recoveries int `json:"recoveries"`
	Deaths     int `json:"deaths"`
}

type PivotRow struct {
	Region string `json:"region"`
	Cases  int    `json:"cases"`
	Deaths int    `json:"deaths"`
}

type MapFrame struct {
	Month  string     `json:"month"`
	Points []MapPoint `json:"points"`
}

type RegionTotal struct {
	Region string `json:"region"`
	Cases  int    `json:"cases"`
}

type RaceFrame struct {
	Month   string        `json:"month"`
	Ranking []RegionTotal `json:"ranking"`
}

type NewsItem struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	Link    string `json:"link"`
}
