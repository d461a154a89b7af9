package news

import (
	"fmt"
	"strings"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Feed serves the latest field updates and global health news.
type Feed interface {
	Fetch(region string) []domain.NewsItem
}

type staticFeed struct {
	items []domain.NewsItem
}

// DefaultItems are the bundled updates shown when no feed file is configured.
var DefaultItems = []domain.NewsItem{
	{
		Date:    "Dec 04, 2025",
		Title:   "WHO Releases World Malaria Report 2025",
		Summary: "The 2025 report highlights a slight increase in global cases to 282 million, emphasizing the growing threat of drug resistance.",
		Source:  "World Health Organization",
		Link:    "https://www.who.int/news-room/fact-sheets/detail/malaria",
	},
	{
		Date:    "Nov 15, 2025",
		Title:   "Breakthrough in Non-Artemisinin Treatments",
		Summary: "Phase 3 trials for GanLum show positive results, offering a potential new tool against artemisinin-resistant parasites.",
		Source:  "Medicines for Malaria Venture",
		Link:    "https://www.mmv.org/newsroom",
	},
	{
		Date:    "Oct 24, 2025",
		Title:   "New Vaccine Rollout in Central Africa",
		Summary: "Targeted vaccination campaigns reach 1 million children in high-transmission zones this quarter.",
		Source:  "Global Fund Updates",
		Link:    "https://www.theglobalfund.org/",
	},
}

func NewStaticFeed(items []domain.NewsItem) Feed {
	return &staticFeed{items: items}
}

// LoadFeed reads news items from an ini file, one section per item, in file order.
// An empty path yields the bundled items.
func LoadFeed(path string) (Feed, error) {
	if path == "" {
		return NewStaticFeed(DefaultItems), nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load news feed file: %w", err)
	}

	var items []domain.NewsItem
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		item := domain.NewsItem{
			Date:    section.Key("date").String(),
			Title:   section.Key("title").String(),
			Summary: section.Key("summary").String(),
			Source:  section.Key("source").String(),
			Link:    section.Key("link").String(),
		}
		if item.Title == "" {
			return nil, fmt.Errorf("news item %q has no title", section.Name())
		}
		items = append(items, item)
	}
	return NewStaticFeed(items), nil
}

// Fetch returns every item for "All" or an empty region, otherwise the items whose
// summary mentions the region (case-insensitive).
func (f *staticFeed) Fetch(region string) []domain.NewsItem {
	if region == "" || region == domain.AllRegions {
		out := make([]domain.NewsItem, len(f.items))
		copy(out, f.items)
		return out
	}

	needle := strings.ToLower(region)
	out := make([]domain.NewsItem, 0)
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(item.Summary), needle) {
			out = append(out, item)
		}
	}
	return out
}
