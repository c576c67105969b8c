package intelligence

import "github.com/thinkscotty/newsdesk/internal/models"

type rule struct {
	keywords   []string
	reason     string
	confidence float64
	kind       models.ContextType
}

func (r rule) context() *models.RelevanceContext {
	return &models.RelevanceContext{Reason: r.reason, Confidence: r.confidence, Type: r.kind}
}

const (
	relevance = models.ContextCategoryRelevance
	market    = models.ContextMarketImpact
)

// categoryRules are evaluated in order; the first rule with a matching keyword wins.
var categoryRules = map[models.Category][]rule{
	models.CategoryTechnology: {
		{[]string{"ai", "machine learning"}, "AI developments are reshaping products and jobs across industries", 0.85, relevance},
		{[]string{"cybersecurity", "breach", "hack", "ransomware"}, "Security incidents can expose your personal data", 0.85, relevance},
		{[]string{"apple", "google", "microsoft", "amazon", "meta"}, "Big Tech moves set the direction for the devices and services you use", 0.75, relevance},
		{[]string{"chip", "semiconductor", "nvidia"}, "Chip supply drives the price and availability of electronics", 0.75, relevance},
		{[]string{"startup", "funding round", "venture"}, "Startup funding signals where the next products are coming from", 0.65, relevance},
	},
	models.CategoryFinance: {
		{[]string{"fed", "interest rate", "federal reserve"}, "Affects interest rates, mortgages, and market sentiment", 0.9, market},
		{[]string{"inflation", "cpi", "consumer price"}, "Inflation data shapes purchasing power and rate expectations", 0.85, market},
		{[]string{"earnings", "quarterly results", "revenue"}, "Earnings results move stock prices and sector outlooks", 0.8, market},
		{[]string{"bitcoin", "crypto", "ethereum"}, "Crypto swings ripple into broader risk appetite", 0.75, market},
		{[]string{"stock", "market", "shares", "nasdaq", "dow"}, "Market moves affect retirement and investment accounts", 0.7, market},
	},
	models.CategoryBusiness: {
		{[]string{"layoff", "job cuts", "hiring freeze"}, "Workforce changes signal how companies see the economy", 0.85, relevance},
		{[]string{"merger", "acquisition", "acquire"}, "Consolidation can change prices and choices for customers", 0.8, market},
		{[]string{"supply chain", "shortage", "shipping"}, "Supply disruptions affect product availability and costs", 0.8, relevance},
		{[]string{"ceo", "executive", "board"}, "Leadership changes often precede strategy shifts", 0.7, relevance},
	},
	models.CategoryWorld: {
		{[]string{"war", "conflict", "invasion", "ceasefire"}, "Conflicts affect global security, energy prices, and migration", 0.85, relevance},
		{[]string{"election", "vote", "referendum"}, "Election outcomes abroad reshape alliances and trade", 0.8, relevance},
		{[]string{"climate", "earthquake", "flood", "hurricane"}, "Disasters and climate events have far-reaching humanitarian effects", 0.8, relevance},
		{[]string{"summit", "treaty", "united nations"}, "Diplomatic agreements set the terms of international cooperation", 0.7, relevance},
	},
	models.CategoryPolitics: {
		{[]string{"election", "poll", "campaign", "ballot"}, "Election dynamics determine who sets policy next", 0.85, relevance},
		{[]string{"supreme court", "ruling", "justice"}, "Court rulings can change rights and rules nationwide", 0.85, relevance},
		{[]string{"bill", "legislation", "congress", "senate"}, "Legislation in progress could change laws that affect you", 0.8, relevance},
		{[]string{"tax", "budget", "spending"}, "Fiscal decisions affect taxes and public services", 0.8, market},
	},
	models.CategoryScience: {
		{[]string{"nasa", "space", "mars", "rocket"}, "Space missions expand what we know about the universe", 0.8, relevance},
		{[]string{"climate", "emissions", "warming"}, "Climate research informs policy and long-term planning", 0.8, relevance},
		{[]string{"study", "research", "discovery"}, "New findings may change established understanding", 0.7, relevance},
	},
	models.CategoryHealth: {
		{[]string{"outbreak", "virus", "pandemic", "covid"}, "Disease spread can affect public health guidance", 0.9, relevance},
		{[]string{"fda", "approval", "drug", "vaccine"}, "Treatment approvals change what care is available", 0.85, relevance},
		{[]string{"diet", "exercise", "sleep", "nutrition"}, "Lifestyle research can inform everyday health choices", 0.7, relevance},
		{[]string{"insurance", "medicare", "medicaid"}, "Coverage changes affect what care costs", 0.8, market},
	},
	models.CategoryEntertainment: {
		{[]string{"box office", "premiere", "release"}, "New releases shape what everyone will be talking about", 0.7, relevance},
		{[]string{"streaming", "netflix", "disney+", "subscription"}, "Streaming changes affect what you pay and what you can watch", 0.8, market},
		{[]string{"award", "oscar", "emmy", "grammy"}, "Awards spotlight the year's most influential work", 0.7, relevance},
	},
	models.CategorySports: {
		{[]string{"trade", "signing", "contract"}, "Roster moves change team outlooks for the season", 0.75, relevance},
		{[]string{"injury", "injured"}, "Injuries can swing upcoming results", 0.75, relevance},
	},
}

var sportsRules = map[models.SportsSubcategory][]rule{
	models.SportNFL: {
		{[]string{"quarterback", "qb"}, "Quarterback play decides NFL seasons", 0.85, relevance},
		{[]string{"playoff", "super bowl"}, "Postseason picture is taking shape", 0.9, relevance},
		{[]string{"draft"}, "Draft moves shape franchises for years", 0.8, relevance},
		{[]string{"injury", "injured reserve"}, "Injury news affects lineups and fantasy rosters", 0.8, relevance},
	},
	models.SportNBA: {
		{[]string{"playoff", "finals"}, "Playoff races are heating up", 0.9, relevance},
		{[]string{"trade", "free agent"}, "Roster moves shift the balance of power", 0.85, relevance},
		{[]string{"mvp", "triple-double", "record"}, "Standout performances define the season's narrative", 0.75, relevance},
	},
	models.SportMLB: {
		{[]string{"world series", "postseason", "playoff"}, "October baseball decides the season", 0.9, relevance},
		{[]string{"pitcher", "rotation", "bullpen"}, "Pitching depth drives results", 0.75, relevance},
		{[]string{"trade deadline", "trade"}, "Deadline deals reshape contenders", 0.85, relevance},
	},
	models.SportNHL: {
		{[]string{"stanley cup", "playoff"}, "The Cup chase is on", 0.9, relevance},
		{[]string{"goalie", "goaltender"}, "Goaltending swings series", 0.75, relevance},
		{[]string{"trade"}, "Trades shift the standings race", 0.8, relevance},
	},
	models.SportSoccer: {
		{[]string{"champions league", "world cup"}, "Top competitions on the line", 0.9, relevance},
		{[]string{"transfer", "signing"}, "Transfer business changes squads", 0.85, relevance},
		{[]string{"premier league", "la liga", "serie a", "bundesliga"}, "League title and relegation races are affected", 0.8, relevance},
	},
	models.SportF1: {
		{[]string{"championship", "title"}, "Championship standings are at stake", 0.9, relevance},
		{[]string{"qualifying", "pole"}, "Grid position sets up race day", 0.75, relevance},
		{[]string{"regulation", "penalty", "fia"}, "Rule decisions can change race outcomes", 0.8, relevance},
	},
	models.SportTennis: {
		{[]string{"grand slam", "wimbledon", "us open", "french open", "australian open"}, "Grand Slam results define careers", 0.9, relevance},
		{[]string{"ranking", "world no"}, "Ranking shifts affect seeding", 0.75, relevance},
		{[]string{"injury", "withdraw"}, "Withdrawals reshape tournament draws", 0.8, relevance},
	},
	models.SportGolf: {
		{[]string{"masters", "pga championship", "open championship", "major"}, "Major championships are golf's biggest stage", 0.9, relevance},
		{[]string{"ryder cup"}, "Team golf brings national pride into play", 0.85, relevance},
		{[]string{"liv", "pga tour"}, "Tour politics shape where stars play", 0.75, relevance},
	},
}

var (
	breakingWords = []string{"breaking"}
	marketWords   = []string{"stock", "market", "shares", "nasdaq", "dow", "s&p", "futures", "bond"}
	dealWords     = []string{"merger", "acquisition", "acquire", "buyout", "takeover", "deal to buy"}
	analystWords  = []string{"upgrade", "downgrade", "price target", "analyst", "outperform", "underperform"}
	urgentWords   = []string{"breaking", "urgent", "just in", "developing", "alert", "live:", "happening now"}
)

type bulletRule struct {
	keywords []string
	bullet   string
}

var categoryBullets = map[models.Category][]bulletRule{
	models.CategoryTechnology: {
		{[]string{"ai", "machine learning"}, "AI tools may change how work gets done in affected fields"},
		{[]string{"breach", "hack", "ransomware"}, "Check whether your accounts or data were exposed"},
		{[]string{"price", "subscription"}, "Expect pricing changes for related devices or services"},
		{[]string{"antitrust", "lawsuit"}, "Legal outcomes could reshape how Big Tech operates"},
	},
	models.CategoryFinance: {
		{[]string{"interest rate", "fed", "federal reserve"}, "Borrowing costs for mortgages and loans may shift"},
		{[]string{"inflation", "cpi"}, "Purchasing power and wage negotiations are affected"},
		{[]string{"stock", "market", "shares"}, "Portfolio values may see short-term volatility"},
		{[]string{"earnings"}, "Sector peers may move on these results"},
	},
	models.CategoryBusiness: {
		{[]string{"layoff", "job cuts"}, "Job market conditions in this sector may tighten"},
		{[]string{"merger", "acquisition"}, "Customers may see changes in pricing or service"},
		{[]string{"supply chain", "shortage"}, "Delays and higher prices may follow for affected goods"},
	},
	models.CategoryWorld: {
		{[]string{"war", "conflict", "invasion"}, "Energy and commodity prices may respond"},
		{[]string{"election"}, "Foreign policy and trade relationships could shift"},
		{[]string{"refugee", "migration"}, "Neighboring countries may face humanitarian pressure"},
	},
	models.CategoryPolitics: {
		{[]string{"tax"}, "Your tax bill could change if this advances"},
		{[]string{"supreme court", "ruling"}, "Legal precedent may change across the country"},
		{[]string{"election", "poll"}, "Policy priorities may shift after the vote"},
	},
	models.CategoryScience: {
		{[]string{"climate", "emissions"}, "Findings may inform future climate policy"},
		{[]string{"space", "nasa"}, "Results could guide upcoming missions"},
	},
	models.CategoryHealth: {
		{[]string{"vaccine", "drug", "approval"}, "New treatment options may become available"},
		{[]string{"outbreak", "virus"}, "Public health guidance may be updated"},
		{[]string{"insurance", "medicare"}, "Out-of-pocket health costs could change"},
	},
	models.CategoryEntertainment: {
		{[]string{"streaming", "subscription"}, "Subscription prices or catalogs may change"},
		{[]string{"strike", "union"}, "Production schedules for upcoming releases may slip"},
	},
	models.CategorySports: {
		{[]string{"injury", "injured"}, "Lineups and betting lines may shift"},
		{[]string{"trade", "signing", "transfer"}, "Team chemistry and depth charts will change"},
		{[]string{"playoff", "championship", "final"}, "Seeding and postseason matchups are affected"},
	},
}

var crossCuttingBullets = []bulletRule{
	{[]string{"legislation", "bill", "congress", "senate", "parliament", "lawmakers"}, "Lawmakers may act, changing the rules in this area"},
	{[]string{"regulator", "regulation", "antitrust", "ftc", "sec "}, "Regulatory scrutiny could bring fines or new compliance rules"},
	{[]string{"tariff", "sanction", "trade war", "international", "global"}, "International ties and cross-border trade could be affected"},
	{[]string{"consumer", "shoppers", "prices", "cost of living"}, "Consumers may see changes in what they pay or buy"},
}
