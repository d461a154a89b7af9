package domain

type NewsItem struct {
	Date    string
	Title   string
	Summary string
	Source  string
	Link    string
}
