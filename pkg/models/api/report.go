package api

type PublishedReport struct {
	ID            string   `json:"id"`
	FileName      string   `json:"file_name"`
	Location      string   `json:"location"`
	ChartFailures []string `json:"chart_failures,omitempty"`
}
