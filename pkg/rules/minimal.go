package rules

// Minimal is the built-in fallback used when the embedded pack or a reload
// source cannot be read. It keeps the blocking core small but complete.
func Minimal() RuleSet {
	return RuleSet{
		Name:            "agelock-minimal",
		Version:         "0",
		InternalSchemes: []string{"data", "blob", "chrome", "chrome-extension", "about", "devtools", "moz-extension"},
		Infrastructure:  []string{"gstatic.com", "googleapis.com", "cloudflare.com", "cloudfront.net", "wikipedia.org"},
		Whitelist:       []string{"*.wikipedia.org", "*.khanacademy.org", "*.pbskids.org"},
		Search: SearchRules{
			Engines:   []string{"google.", "bing.", "duckduckgo.", "yahoo."},
			Resources: []string{"gstatic.com", "googleapis.com", "bing.net", "yimg.com"},
		},
		Ads: AdRules{
			Domains:        []string{"doubleclick.net", "googlesyndication.com", "googleadservices.com", "*.google-analytics.com"},
			PathPatterns:   []string{`/ads?/`, `/banner`, `/preroll`},
			TrackingParams: []string{"utm_", "gclid=", "fbclid="},
			QueryKeywords:  []string{"banner", "sponsor", "track", "click"},
			QueryTokens:    []string{"ad", "ads"},
		},
		Video: VideoRules{
			Extensions:   []string{".mp4", ".webm", ".m3u8", ".mpd"},
			PathPatterns: []string{`/videoplayback`, `/hls/`, `/dash/`, `\.m3u8`},
		},
		Gambling: GamblingRules{
			SafeKeywords: []string{"kids", "rhyme", "school"},
			TLDs:         []string{".poker", ".bet", ".casino", ".bingo", ".gambling"},
			Domains:      []string{"bet365.", "pokerstars.", "888.com"},
			Contexts:     []string{"/poker/", "/slots/", "/casino/", "?bet="},
		},
		Explicit: []PatternGroup{
			{Category: "sexual", Toggle: "adult", Pattern: `\b(sex|nude|naked|porn\w*|xxx\w*)\b`},
		},
		BlockedCategories: map[string]bool{"adult": true},
		Suspicious: SuspiciousRules{
			HostPatterns: []string{`^(\d{1,3}\.){3}\d{1,3}$`},
		},
		SocialMedia: []string{"facebook.com", "instagram.com", "tiktok.com"},
		RestrictedPlatform: RestrictedPlatformRules{
			Domains:      []string{"youtube.com", "youtu.be"},
			KidsDomains:  []string{"youtubekids.com"},
			KidsRedirect: "https://www.youtubekids.com",
		},
		SafeSearch: []SafeSearchEngine{
			{Name: "google", Hosts: []string{"google."}, Param: "safe", Value: "active"},
			{Name: "bing", Hosts: []string{"bing."}, Param: "adlt", Value: "strict"},
			{Name: "duckduckgo", Hosts: []string{"duckduckgo."}, Param: "kp", Value: "1"},
		},
		Text: TextRules{
			Vocabulary: []CategoryTerms{
				{Category: "sexual", Terms: []string{"sex", "nude", "naked", "porn"}},
				{Category: "violence", Terms: []string{"kill", "murder", "gun"}},
			},
			Thresholds: map[string]map[string]float64{
				"children":  {"sexual": 0.1, "violence": 0.2},
				"teenagers": {"sexual": 0.5, "violence": 0.6},
				"adults":    {"sexual": 0.9, "violence": 0.9},
			},
		},
	}
}
