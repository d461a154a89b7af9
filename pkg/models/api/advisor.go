package api

type AdvisorRequest struct {
	Question string `json:"question"`
	Year     int    `json:"year"`
	Region   string `json:"region"`
}

type AdvisorResponse struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}
