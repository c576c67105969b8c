package feeds

import "github.com/thinkscotty/newsdesk/internal/models"

func src(id, name, url string, cat models.Category, selected bool) models.Source {
	return models.Source{ID: id, Name: name, URL: url, Category: cat, IsSelected: selected}
}

func sport(id, name, url string, sub models.SportsSubcategory) models.Source {
	return models.Source{ID: id, Name: name, URL: url, Category: models.CategorySports, Subcategory: sub, IsSelected: true}
}

// DefaultSources is the curated catalog shipped with newsdesk.
func DefaultSources() []models.Source {
	return []models.Source{
		src("techcrunch", "TechCrunch", "https://techcrunch.com/feed/", models.CategoryTechnology, true),
		src("the-verge", "The Verge", "https://www.theverge.com/rss/index.xml", models.CategoryTechnology, true),
		src("ars-technica", "Ars Technica", "https://feeds.arstechnica.com/arstechnica/index", models.CategoryTechnology, true),
		src("wired", "Wired", "https://www.wired.com/feed/rss", models.CategoryTechnology, true),
		src("bbc-technology", "BBC News - Technology", "https://feeds.bbci.co.uk/news/technology/rss.xml", models.CategoryTechnology, false),

		src("cnbc-top", "CNBC Top News", "https://www.cnbc.com/id/100003114/device/rss/rss.html", models.CategoryFinance, true),
		src("yahoo-finance", "Yahoo Finance", "https://finance.yahoo.com/news/rssindex", models.CategoryFinance, true),
		src("marketwatch", "MarketWatch", "https://feeds.content.dowjones.io/public/rss/mw_topstories", models.CategoryFinance, true),
		src("seeking-alpha", "Seeking Alpha Market Currents", "https://seekingalpha.com/market_currents.xml", models.CategoryFinance, true),
		src("investing-com", "Investing.com News", "https://www.investing.com/rss/news.rss", models.CategoryFinance, false),

		src("bbc-business", "BBC News - Business", "https://feeds.bbci.co.uk/news/business/rss.xml", models.CategoryBusiness, true),
		src("fortune", "Fortune", "https://fortune.com/feed", models.CategoryBusiness, true),
		src("forbes-business", "Forbes - Business", "https://www.forbes.com/business/feed/", models.CategoryBusiness, true),
		src("economic-times", "Economic Times", "https://economictimes.indiatimes.com/rssfeedsdefault.cms", models.CategoryBusiness, false),

		src("bbc-world", "BBC News - World", "https://feeds.bbci.co.uk/news/world/rss.xml", models.CategoryWorld, true),
		src("guardian-world", "The Guardian - World", "https://www.theguardian.com/world/rss", models.CategoryWorld, true),
		src("npr-world", "NPR World", "https://feeds.npr.org/1004/rss.xml", models.CategoryWorld, true),
		src("aljazeera", "Al Jazeera", "https://www.aljazeera.com/xml/rss/all.xml", models.CategoryWorld, true),
		src("nyt-world", "The New York Times - World", "https://rss.nytimes.com/services/xml/rss/nyt/World.xml", models.CategoryWorld, false),

		src("npr-politics", "NPR Politics", "https://feeds.npr.org/1014/rss.xml", models.CategoryPolitics, true),
		src("politico", "Politico", "https://rss.politico.com/politics-news.xml", models.CategoryPolitics, true),
		src("the-hill", "The Hill", "https://thehill.com/feed/", models.CategoryPolitics, true),
		src("nyt-politics", "The New York Times - Politics", "https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml", models.CategoryPolitics, false),

		src("science-daily", "ScienceDaily", "https://www.sciencedaily.com/rss/all.xml", models.CategoryScience, true),
		src("nasa", "NASA Breaking News", "https://www.nasa.gov/rss/dyn/breaking_news.rss", models.CategoryScience, true),
		src("phys-org", "Phys.org", "https://phys.org/rss-feed/", models.CategoryScience, true),
		src("bbc-science", "BBC News - Science", "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml", models.CategoryScience, false),

		src("bbc-health", "BBC News - Health", "https://feeds.bbci.co.uk/news/health/rss.xml", models.CategoryHealth, true),
		src("npr-health", "NPR Health", "https://feeds.npr.org/1128/rss.xml", models.CategoryHealth, true),
		src("stat-news", "STAT", "https://www.statnews.com/feed/", models.CategoryHealth, true),

		sport("espn-nfl", "ESPN NFL", "https://www.espn.com/espn/rss/nfl/news", models.SportNFL),
		sport("espn-nba", "ESPN NBA", "https://www.espn.com/espn/rss/nba/news", models.SportNBA),
		sport("espn-mlb", "ESPN MLB", "https://www.espn.com/espn/rss/mlb/news", models.SportMLB),
		sport("espn-nhl", "ESPN NHL", "https://www.espn.com/espn/rss/nhl/news", models.SportNHL),
		sport("bbc-football", "BBC Sport - Football", "https://feeds.bbci.co.uk/sport/football/rss.xml", models.SportSoccer),
		sport("guardian-football", "The Guardian - Football", "https://www.theguardian.com/football/rss", models.SportSoccer),
		sport("bbc-f1", "BBC Sport - Formula 1", "https://feeds.bbci.co.uk/sport/formula1/rss.xml", models.SportF1),
		sport("bbc-tennis", "BBC Sport - Tennis", "https://feeds.bbci.co.uk/sport/tennis/rss.xml", models.SportTennis),
		sport("bbc-golf", "BBC Sport - Golf", "https://feeds.bbci.co.uk/sport/golf/rss.xml", models.SportGolf),

		src("variety", "Variety", "https://variety.com/feed/", models.CategoryEntertainment, true),
		src("hollywood-reporter", "The Hollywood Reporter", "https://www.hollywoodreporter.com/feed/", models.CategoryEntertainment, true),
		src("bbc-entertainment", "BBC News - Entertainment & Arts", "https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml", models.CategoryEntertainment, true),
	}
}
