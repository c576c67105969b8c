package location

type placeKind int

const (
	kindCity placeKind = iota
	kindRegion
	kindCountry
)

type gazetteerEntry struct {
	name string
	lat  float64
	lon  float64
	kind placeKind
}

var gazetteerEntries = []gazetteerEntry{
	// Major cities
	{"New York", 40.7128, -74.0060, kindCity},
	{"Los Angeles", 34.0522, -118.2437, kindCity},
	{"Chicago", 41.8781, -87.6298, kindCity},
	{"Houston", 29.7604, -95.3698, kindCity},
	{"Phoenix", 33.4484, -112.0740, kindCity},
	{"Philadelphia", 39.9526, -75.1652, kindCity},
	{"San Antonio", 29.4241, -98.4936, kindCity},
	{"San Diego", 32.7157, -117.1611, kindCity},
	{"Dallas", 32.7767, -96.7970, kindCity},
	{"San Francisco", 37.7749, -122.4194, kindCity},
	{"San Jose", 37.3382, -121.8863, kindCity},
	{"Austin", 30.2672, -97.7431, kindCity},
	{"Seattle", 47.6062, -122.3321, kindCity},
	{"Denver", 39.7392, -104.9903, kindCity},
	{"Boston", 42.3601, -71.0589, kindCity},
	{"Washington", 38.9072, -77.0369, kindCity},
	{"Atlanta", 33.7490, -84.3880, kindCity},
	{"Miami", 25.7617, -80.1918, kindCity},
	{"Detroit", 42.3314, -83.0458, kindCity},
	{"Las Vegas", 36.1699, -115.1398, kindCity},
	{"Nashville", 36.1627, -86.7816, kindCity},
	{"New Orleans", 29.9511, -90.0715, kindCity},
	{"Minneapolis", 44.9778, -93.2650, kindCity},
	{"Portland", 45.5152, -122.6784, kindCity},
	{"Pittsburgh", 40.4406, -79.9959, kindCity},
	{"Baltimore", 39.2904, -76.6122, kindCity},
	{"Cleveland", 41.4993, -81.6944, kindCity},
	{"St. Louis", 38.6270, -90.1994, kindCity},
	{"Kansas City", 39.0997, -94.5786, kindCity},
	{"Charlotte", 35.2271, -80.8431, kindCity},
	{"Toronto", 43.6532, -79.3832, kindCity},
	{"Montreal", 45.5017, -73.5673, kindCity},
	{"Vancouver", 49.2827, -123.1207, kindCity},
	{"Ottawa", 45.4215, -75.6972, kindCity},
	{"Mexico City", 19.4326, -99.1332, kindCity},
	{"Havana", 23.1136, -82.3666, kindCity},
	{"Bogota", 4.7110, -74.0721, kindCity},
	{"Lima", -12.0464, -77.0428, kindCity},
	{"Santiago", -33.4489, -70.6693, kindCity},
	{"Buenos Aires", -34.6037, -58.3816, kindCity},
	{"Sao Paulo", -23.5505, -46.6333, kindCity},
	{"Rio de Janeiro", -22.9068, -43.1729, kindCity},
	{"Caracas", 10.4806, -66.9036, kindCity},
	{"London", 51.5074, -0.1278, kindCity},
	{"Manchester", 53.4808, -2.2426, kindCity},
	{"Liverpool", 53.4084, -2.9916, kindCity},
	{"Edinburgh", 55.9533, -3.1883, kindCity},
	{"Dublin", 53.3498, -6.2603, kindCity},
	{"Paris", 48.8566, 2.3522, kindCity},
	{"Marseille", 43.2965, 5.3698, kindCity},
	{"Berlin", 52.5200, 13.4050, kindCity},
	{"Munich", 48.1351, 11.5820, kindCity},
	{"Frankfurt", 50.1109, 8.6821, kindCity},
	{"Hamburg", 53.5511, 9.9937, kindCity},
	{"Madrid", 40.4168, -3.7038, kindCity},
	{"Barcelona", 41.3851, 2.1734, kindCity},
	{"Lisbon", 38.7223, -9.1393, kindCity},
	{"Rome", 41.9028, 12.4964, kindCity},
	{"Milan", 45.4642, 9.1900, kindCity},
	{"Amsterdam", 52.3676, 4.9041, kindCity},
	{"Brussels", 50.8503, 4.3517, kindCity},
	{"Geneva", 46.2044, 6.1432, kindCity},
	{"Zurich", 47.3769, 8.5417, kindCity},
	{"Vienna", 48.2082, 16.3738, kindCity},
	{"Prague", 50.0755, 14.4378, kindCity},
	{"Warsaw", 52.2297, 21.0122, kindCity},
	{"Budapest", 47.4979, 19.0402, kindCity},
	{"Stockholm", 59.3293, 18.0686, kindCity},
	{"Oslo", 59.9139, 10.7522, kindCity},
	{"Copenhagen", 55.6761, 12.5683, kindCity},
	{"Helsinki", 60.1699, 24.9384, kindCity},
	{"Athens", 37.9838, 23.7275, kindCity},
	{"Istanbul", 41.0082, 28.9784, kindCity},
	{"Ankara", 39.9334, 32.8597, kindCity},
	{"Moscow", 55.7558, 37.6173, kindCity},
	{"Kyiv", 50.4501, 30.5234, kindCity},
	{"Kharkiv", 49.9935, 36.2304, kindCity},
	{"Minsk", 53.9006, 27.5590, kindCity},
	{"Jerusalem", 31.7683, 35.2137, kindCity},
	{"Tel Aviv", 32.0853, 34.7818, kindCity},
	{"Gaza", 31.5017, 34.4668, kindCity},
	{"Beirut", 33.8938, 35.5018, kindCity},
	{"Damascus", 33.5138, 36.2765, kindCity},
	{"Baghdad", 33.3152, 44.3661, kindCity},
	{"Tehran", 35.6892, 51.3890, kindCity},
	{"Riyadh", 24.7136, 46.6753, kindCity},
	{"Dubai", 25.2048, 55.2708, kindCity},
	{"Doha", 25.2854, 51.5310, kindCity},
	{"Cairo", 30.0444, 31.2357, kindCity},
	{"Lagos", 6.5244, 3.3792, kindCity},
	{"Nairobi", -1.2921, 36.8219, kindCity},
	{"Johannesburg", -26.2041, 28.0473, kindCity},
	{"Cape Town", -33.9249, 18.4241, kindCity},
	{"Addis Ababa", 8.9806, 38.7578, kindCity},
	{"Khartoum", 15.5007, 32.5599, kindCity},
	{"Kabul", 34.5553, 69.2075, kindCity},
	{"Islamabad", 33.6844, 73.0479, kindCity},
	{"Karachi", 24.8607, 67.0011, kindCity},
	{"New Delhi", 28.6139, 77.2090, kindCity},
	{"Mumbai", 19.0760, 72.8777, kindCity},
	{"Bangalore", 12.9716, 77.5946, kindCity},
	{"Dhaka", 23.8103, 90.4125, kindCity},
	{"Bangkok", 13.7563, 100.5018, kindCity},
	{"Singapore", 1.3521, 103.8198, kindCity},
	{"Jakarta", -6.2088, 106.8456, kindCity},
	{"Manila", 14.5995, 120.9842, kindCity},
	{"Hanoi", 21.0278, 105.8342, kindCity},
	{"Beijing", 39.9042, 116.4074, kindCity},
	{"Shanghai", 31.2304, 121.4737, kindCity},
	{"Shenzhen", 22.5431, 114.0579, kindCity},
	{"Hong Kong", 22.3193, 114.1694, kindCity},
	{"Taipei", 25.0330, 121.5654, kindCity},
	{"Seoul", 37.5665, 126.9780, kindCity},
	{"Pyongyang", 39.0392, 125.7625, kindCity},
	{"Tokyo", 35.6762, 139.6503, kindCity},
	{"Osaka", 34.6937, 135.5023, kindCity},
	{"Sydney", -33.8688, 151.2093, kindCity},
	{"Melbourne", -37.8136, 144.9631, kindCity},
	{"Auckland", -36.8485, 174.7633, kindCity},

	// Regions and states
	{"California", 36.7783, -119.4179, kindRegion},
	{"Texas", 31.9686, -99.9018, kindRegion},
	{"Florida", 27.6648, -81.5158, kindRegion},
	{"Silicon Valley", 37.3875, -122.0575, kindRegion},
	{"Wall Street", 40.7060, -74.0088, kindRegion},
	{"Middle East", 29.2985, 42.5510, kindRegion},
	{"Europe", 54.5260, 15.2551, kindRegion},
	{"West Bank", 31.9466, 35.3027, kindRegion},
	{"Crimea", 44.9521, 34.1024, kindRegion},
	{"Scotland", 56.4907, -4.2026, kindRegion},

	// Countries
	{"United States", 37.0902, -95.7129, kindCountry},
	{"Canada", 56.1304, -106.3468, kindCountry},
	{"Mexico", 23.6345, -102.5528, kindCountry},
	{"Brazil", -14.2350, -51.9253, kindCountry},
	{"Argentina", -38.4161, -63.6167, kindCountry},
	{"United Kingdom", 55.3781, -3.4360, kindCountry},
	{"Britain", 55.3781, -3.4360, kindCountry},
	{"Ireland", 53.1424, -7.6921, kindCountry},
	{"France", 46.2276, 2.2137, kindCountry},
	{"Germany", 51.1657, 10.4515, kindCountry},
	{"Spain", 40.4637, -3.7492, kindCountry},
	{"Italy", 41.8719, 12.5674, kindCountry},
	{"Poland", 51.9194, 19.1451, kindCountry},
	{"Ukraine", 48.3794, 31.1656, kindCountry},
	{"Russia", 61.5240, 105.3188, kindCountry},
	{"Turkey", 38.9637, 35.2433, kindCountry},
	{"Israel", 31.0461, 34.8516, kindCountry},
	{"Iran", 32.4279, 53.6880, kindCountry},
	{"Iraq", 33.2232, 43.6793, kindCountry},
	{"Syria", 34.8021, 38.9968, kindCountry},
	{"Saudi Arabia", 23.8859, 45.0792, kindCountry},
	{"Egypt", 26.8206, 30.8025, kindCountry},
	{"Nigeria", 9.0820, 8.6753, kindCountry},
	{"South Africa", -30.5595, 22.9375, kindCountry},
	{"Kenya", -0.0236, 37.9062, kindCountry},
	{"India", 20.5937, 78.9629, kindCountry},
	{"Pakistan", 30.3753, 69.3451, kindCountry},
	{"China", 35.8617, 104.1954, kindCountry},
	{"Taiwan", 23.6978, 120.9605, kindCountry},
	{"Japan", 36.2048, 138.2529, kindCountry},
	{"South Korea", 35.9078, 127.7669, kindCountry},
	{"North Korea", 40.3399, 127.5101, kindCountry},
	{"Vietnam", 14.0583, 108.2772, kindCountry},
	{"Indonesia", -0.7893, 113.9213, kindCountry},
	{"Philippines", 12.8797, 121.7740, kindCountry},
	{"Australia", -25.2744, 133.7751, kindCountry},
	{"New Zealand", -40.9006, 174.8860, kindCountry},
	{"Venezuela", 6.4238, -66.5897, kindCountry},
}

var gazetteer = func() map[string]gazetteerEntry {
	m := make(map[string]gazetteerEntry, len(gazetteerEntries))
	for _, e := range gazetteerEntries {
		m[normalizeName(e.name)] = e
	}
	return m
}()

// blacklist holds capitalized words that are never places.
var blacklist = func() map[string]bool {
	words := []string{
		"Apple", "Google", "Microsoft", "Amazon", "Meta", "Facebook", "Tesla", "Nvidia", "Netflix",
		"Disney", "OpenAI", "Intel", "Samsung", "Boeing", "Twitter", "Uber", "Walmart", "Oracle",
		"Reuters", "Bloomberg", "Associated Press",
		"Senate", "Congress", "House", "Parliament", "Supreme Court", "White House", "Pentagon",
		"Federal Reserve", "Fed", "Treasury", "Wall Street", "Nasdaq", "United Nations", "NATO",
		"President", "Prime Minister", "Minister", "Governor", "Mayor", "CEO", "Chairman",
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
		"January", "February", "March", "April", "May", "June", "July", "August",
		"September", "October", "November", "December",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[normalizeName(w)] = true
	}
	return m
}()
