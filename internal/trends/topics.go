package trends

type topic struct {
	label    string
	keywords []string
}

// topics are tracked in this order, which is also the order signals are emitted in.
var topics = []topic{
	{"Artificial intelligence", []string{"artificial intelligence", "generative ai", "a.i."}},
	{"OpenAI", []string{"openai", "chatgpt"}},
	{"Nvidia", []string{"nvidia"}},
	{"Semiconductors", []string{"semiconductor", "chipmaker"}},
	{"Cybersecurity", []string{"cyberattack", "ransomware", "data breach"}},
	{"Inflation", []string{"inflation"}},
	{"Interest rates", []string{"interest rate", "rate cut", "rate hike"}},
	{"Federal Reserve", []string{"federal reserve", "the fed"}},
	{"Recession", []string{"recession"}},
	{"Stock market", []string{"stock market", "wall street", "s&p 500", "nasdaq"}},
	{"Earnings", []string{"earnings"}},
	{"Bitcoin", []string{"bitcoin", "crypto"}},
	{"Oil prices", []string{"crude", "oil price", "opec"}},
	{"Tariffs", []string{"tariff"}},
	{"Trade war", []string{"trade war", "export controls"}},
	{"Layoffs", []string{"layoff", "job cuts"}},
	{"Housing", []string{"housing market", "mortgage"}},
	{"Ukraine", []string{"ukraine"}},
	{"Russia", []string{"russia", "kremlin"}},
	{"China", []string{"china", "beijing"}},
	{"Middle East", []string{"israel", "gaza", "hamas"}},
	{"Iran", []string{"iran"}},
	{"Elections", []string{"election"}},
	{"Climate", []string{"climate", "heatwave", "wildfire"}},
	{"Supply chain", []string{"supply chain", "shortage"}},
}

// highCredibility is matched case-insensitively as a substring of source names.
var highCredibility = []string{
	"reuters", "associated press", "ap news", "bbc", "npr", "wall street journal",
	"financial times", "bloomberg", "new york times", "the guardian", "the economist",
}
