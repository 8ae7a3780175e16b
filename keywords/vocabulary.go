package keywords

// defaultVocabulary is the built-in gazetteer: organization names and
// industry terms that signal a specific query. It is deliberately small;
// deployments with richer directories supply their own via WithVocabulary.
var defaultVocabulary = []string{
	// TV networks
	"cnn", "nbc", "fox", "abc", "cbs", "hbo", "espn", "mtv",
	// Streaming
	"netflix", "hulu", "disney", "amazon prime", "apple tv",
	// Big tech
	"google", "apple", "microsoft", "amazon", "facebook", "meta", "tesla",
	// Banks
	"goldman sachs", "jpmorgan", "morgan stanley", "bank of america",
	// Pharma
	"pfizer", "moderna", "johnson & johnson", "merck",

	// Industry and transaction vocabulary
	"television", "broadcast", "tv", "network", "media", "streaming",
	"cryptocurrency", "crypto", "bitcoin", "blockchain", "digital asset",
	"pharmaceutical", "pharma", "drug", "clinical", "fda",
	"technology", "tech", "software", "startup",
	"ipo", "public offering", "merger", "acquisition",
	"litigation", "lawsuit", "dispute", "court", "trial",
	"fortune 500", "fortune500",
}
