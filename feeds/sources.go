package feeds

// DefaultSources are the feeds aggregated when no custom source list is
// configured.
var DefaultSources = []Source{
	{
		Name:    "BBC World",
		URL:     "https://feeds.bbci.co.uk/news/world/rss.xml",
		Region:  RegionWorld,
		Limit:   10,
		Enabled: true,
	},
	{
		Name:    "CNBC Business",
		URL:     "https://www.cnbc.com/id/10001147/device/rss/rss.html",
		Region:  RegionUS,
		Limit:   10,
		Enabled: true,
	},
	{
		Name:    "TechCrunch",
		URL:     "https://techcrunch.com/feed/",
		Region:  RegionUS,
		Limit:   10,
		Enabled: true,
	},
	{
		Name:    "The Star Business",
		URL:     "https://www.thestar.com.my/rss/business",
		Region:  RegionMalaysia,
		Limit:   10,
		Enabled: true,
	},
	{
		Name:    "Malay Mail",
		URL:     "https://www.malaymail.com/feed/rss/malaysia",
		Region:  RegionMalaysia,
		Limit:   10,
		Enabled: true,
	},
}
