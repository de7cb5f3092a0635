package classifier_test

import (
	"testing"

	"github.com/NeuralTrust/AgeLock/pkg/classifier"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier(t *testing.T) *classifier.Classifier {
	t.Helper()
	rs, err := rules.Default()
	require.NoError(t, err)
	reg, err := rules.Compile(rs)
	require.NoError(t, err)
	return classifier.New(reg)
}

var malformedURLs = []string{
	"",
	"   ",
	"not a url",
	"example.com/no-scheme",
	"http://",
	"://missing-scheme",
	"http://bad host.com/",
	"%zz%zz",
	"http://[::1",
}

func TestClassifiers_MalformedURLsReturnSafeDefault(t *testing.T) {
	c := newClassifier(t)

	for _, raw := range malformedURLs {
		t.Run(raw, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, c.IsMaliciousDomain(raw))
				assert.False(t, c.IsAdOrTracker(raw))
				assert.False(t, c.IsTrackingURL(raw))
				assert.False(t, c.IsThirdPartyTracker(raw, "https://example.com/"))
				assert.False(t, c.IsVideo(raw))
				assert.False(t, c.IsSearchEngine(raw))
				assert.False(t, c.IsSearchEngineResource(raw, ""))
				assert.False(t, c.IsGamblingSite(raw))
				assert.False(t, c.IsSocialMedia(raw))
				assert.False(t, c.IsGamingSite(raw))
				assert.False(t, c.IsKidFriendlyResource(raw, policy.Image))
				assert.False(t, c.IsSuspiciousURL(raw))
				assert.False(t, c.IsContentFarm(raw))
				assert.False(t, c.IsRestrictedPlatform(raw))
				assert.False(t, c.IsWhitelisted(raw))
				_, explicit := c.IsExplicitURL(raw)
				assert.False(t, explicit)
			})
		})
	}
}

func TestParse(t *testing.T) {
	target, ok := classifier.Parse("https://Ads.Example.com/Path/To/File.JS?UTM_Source=x&q=Hello%20World")
	require.True(t, ok)
	assert.Equal(t, "ads.example.com", target.Host)
	assert.Equal(t, "/path/to/file.js", target.Path)
	assert.Equal(t, ".js", target.Ext())
	assert.Contains(t, target.Query, "utm_source")
	assert.Equal(t, "ads example com path to file js utm source x q hello world", target.Text)
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "data", classifier.Scheme("data:image/png;base64,AAAA"))
	assert.Equal(t, "chrome-extension", classifier.Scheme("chrome-extension://abc/page.html"))
	assert.Equal(t, "", classifier.Scheme("no scheme here"))
	assert.Equal(t, "", classifier.Scheme(":nothing"))

	c := newClassifier(t)
	assert.True(t, c.IsInternalScheme("blob:https://example.com/uuid"))
	assert.True(t, c.IsInternalScheme("about:blank"))
	assert.False(t, c.IsInternalScheme("https://example.com/"))
}

func TestIsVideo(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "hls playlist", url: "https://cdn.example.net/live/master.m3u8", want: true},
		{name: "mp4 extension", url: "https://media.example.org/clip.MP4", want: true},
		{name: "dash path", url: "https://cdn.example.net/dash/seg-1", want: true},
		{name: "videoplayback", url: "https://rr1.example.net/videoplayback?id=1", want: true},
		{name: "video domain", url: "https://player.vimeo.com/api", want: true},
		{name: "mime param", url: "https://cdn.example.net/get?mime=video%2Fmp4", want: true},
		{name: "plain page", url: "https://example.com/about", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsVideo(tt.url))
		})
	}
}

func TestIsAdOrTracker(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "ad network", url: "https://securepubads.g.doubleclick.net/tag/js/gpt.js", want: true},
		{name: "path constrained ad entry", url: "https://www.facebook.com/tr/?id=1", want: true},
		{name: "facebook page is not an ad", url: "https://www.facebook.com/groups/", want: false},
		{name: "ad path", url: "https://news.example.com/ads/slot1.js", want: true},
		{name: "preroll path", url: "https://news.example.com/preroll/config", want: true},
		{name: "ad file", url: "https://news.example.com/static/ad.gif", want: true},
		{name: "ad subdomain", url: "https://pixel.example.com/p", want: true},
		{name: "two label host is not a subdomain", url: "https://pixel.com/p", want: false},
		{name: "tracking prefix", url: "https://shop.example.com/item?utm_source=mail", want: true},
		{name: "tracking exact", url: "https://shop.example.com/item?gclid=abc", want: true},
		{name: "ad keyword param", url: "https://shop.example.com/item?sponsor_id=3", want: true},
		{name: "ad token param", url: "https://shop.example.com/item?ad_id=3", want: true},
		{name: "upload is not an ad", url: "https://shop.example.com/upload?upload_id=3&address=x", want: false},
		{name: "risky tld", url: "https://free-prizes.xyz/", want: true},
		{name: "clean url", url: "https://shop.example.com/item?id=3", want: false},
		{name: "video exempt", url: "https://cdn.example.net/hls/track1/index.m3u8?utm_source=x&track=1", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsAdOrTracker(tt.url))
		})
	}
}

func TestIsTrackingURL(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsTrackingURL("https://telemetry.example.com/v1"))
	assert.True(t, c.IsTrackingURL("https://example.com/collect?v=1"))
	assert.True(t, c.IsTrackingURL("https://example.com/analytics.js"))
	assert.False(t, c.IsTrackingURL("https://example.com/soundtrack/album"))
	assert.False(t, c.IsTrackingURL("https://example.com/catalog/tags"))
	assert.False(t, c.IsTrackingURL("https://cdn.example.com/track/seg.m3u8"))
	assert.False(t, c.IsTrackingURL("https://www.khanacademy.org/metrics"))
}

func TestIsThirdPartyTracker(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		name     string
		url      string
		referrer string
		want     bool
	}{
		{name: "cross origin counter", url: "https://stats.other.net/counter", referrer: "https://news.example.com/", want: true},
		{name: "cross origin event", url: "https://cdn.other.net/event", referrer: "https://news.example.com/", want: true},
		{name: "same host", url: "https://news.example.com/counter", referrer: "https://news.example.com/", want: false},
		{name: "subdomain of referrer", url: "https://stats.news.example.com/counter", referrer: "https://news.example.com/", want: false},
		{name: "no referrer", url: "https://stats.other.net/counter", referrer: "", want: false},
		{name: "malformed referrer", url: "https://stats.other.net/counter", referrer: "::", want: false},
		{name: "cross origin plain asset", url: "https://cdn.other.net/lib/app.js", referrer: "https://news.example.com/", want: false},
		{name: "cross origin video", url: "https://cdn.other.net/event/seg.m3u8", referrer: "https://news.example.com/", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsThirdPartyTracker(tt.url, tt.referrer))
		})
	}
}

func TestSearchEngine(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsSearchEngine("https://www.google.co.uk/search?q=birds"))
	assert.True(t, c.IsSearchEngine("https://duckduckgo.com/?q=birds"))
	assert.True(t, c.IsSearchEngine("https://search.brave.com/search?q=x"))
	assert.False(t, c.IsSearchEngine("https://googleads.example.com/"))
	assert.False(t, c.IsSearchEngine("https://www.gstatic.com/logo.png"))

	assert.True(t, c.IsSearchEngineResource("https://www.gstatic.com/logo.png", ""))
	assert.True(t, c.IsSearchEngineResource("https://images.example.org/a.png", "https://www.bing.com/search?q=x"))
	assert.False(t, c.IsSearchEngineResource("https://images.example.org/a.png", "https://www.gstatic.com/"),
		"a search resource referrer does not extend trust")
	assert.False(t, c.IsSearchEngineResource("https://images.example.org/a.png", ""))
}

func TestIsWhitelisted(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsWhitelisted("https://en.wikipedia.org/wiki/Owl"))
	assert.True(t, c.IsWhitelisted("https://www.bbc.co.uk/cbeebies/shows"))
	assert.False(t, c.IsWhitelisted("https://www.bbc.co.uk/news"))
	assert.True(t, c.IsWhitelisted("https://www.google.com/search?q=owl"))
	assert.True(t, c.IsWhitelisted("https://fonts.gstatic.com/s/roboto.woff2"))
	assert.False(t, c.IsWhitelisted("https://random-blog.example/"))
}

func TestGambling(t *testing.T) {
	c := newClassifier(t)

	tests := []struct {
		name string
		url  string
		want classifier.GamblingTier
	}{
		{name: "gambling tld", url: "https://lucky.casino/", want: classifier.GamblingHigh},
		{name: "brand with context", url: "https://www.pokerstars.com/poker/lobby", want: classifier.GamblingHigh},
		{name: "brand with query context", url: "https://sports.bet365.com/en?bet=42", want: classifier.GamblingHigh},
		{name: "brand without context", url: "https://www.bet365.com/", want: classifier.GamblingLow},
		{name: "context and phrasing", url: "https://games.example.com/slots/free-spins", want: classifier.GamblingHigh},
		{name: "context without phrasing", url: "https://example.com/lottery/history-of-lotteries", want: classifier.NotGambling},
		{name: "safe domain beats context", url: "https://pbskids.org/games/bingo/", want: classifier.NotGambling},
		{name: "safe keyword beats tld", url: "https://kids-rhymes.bingo/", want: classifier.NotGambling},
		{name: "plain site", url: "https://example.com/", want: classifier.NotGambling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Gambling(tt.url))
			assert.Equal(t, tt.want == classifier.GamblingHigh, c.IsGamblingSite(tt.url))
		})
	}
}

func TestGambling_SafeAllowlistAlwaysWins(t *testing.T) {
	c := newClassifier(t)
	rs, err := rules.Default()
	require.NoError(t, err)

	paths := []string{"/", "/poker/", "/slots/free-spins", "/casino/?bet=1&poker=2", "/bingo/"}
	for _, domain := range rs.Gambling.SafeDomains {
		for _, p := range paths {
			raw := "https://" + domain + p
			assert.False(t, c.IsGamblingSite(raw), raw)
		}
	}
}

func TestIsExplicitURL(t *testing.T) {
	c := newClassifier(t)

	category, ok := c.IsExplicitURL("https://example.com/free-porn-videos")
	assert.True(t, ok)
	assert.Equal(t, "sexual", category)

	category, ok = c.IsExplicitURL("https://example.com/search?q=buy+cocaine")
	assert.True(t, ok)
	assert.Equal(t, "drugs", category)

	category, ok = c.IsExplicitURL("https://example.com/download/keygen")
	assert.True(t, ok)
	assert.Equal(t, "illegal", category)

	for _, raw := range []string{
		"https://example.com/assets/app.css",
		"https://example.com/classic-cocktail-recipes",
		"https://essex.example.com/sussex",
		"https://example.com/scunthorpe",
	} {
		_, ok := c.IsExplicitURL(raw)
		assert.False(t, ok, raw)
	}
}

func TestIsExplicitURL_RespectsToggles(t *testing.T) {
	rs, err := rules.Default()
	require.NoError(t, err)
	rs.BlockedCategories["drugs"] = false
	c := classifier.New(rules.MustCompile(rs))

	_, ok := c.IsExplicitURL("https://example.com/search?q=cocaine")
	assert.False(t, ok)
	_, ok = c.IsExplicitURL("https://example.com/porn")
	assert.True(t, ok)
}

func TestHasExplicitContent(t *testing.T) {
	c := newClassifier(t)

	category, ok := c.HasExplicitContent("He talked about White-Power rallies")
	assert.True(t, ok)
	assert.Equal(t, "hate", category)

	_, ok = c.HasExplicitContent("")
	assert.False(t, ok)
	_, ok = c.HasExplicitContent("a nice day at the park")
	assert.False(t, ok)
}

func TestDomainLists(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsMaliciousDomain("https://chapter1.mangapark.net/read"))
	assert.False(t, c.IsMaliciousDomain("https://example.com/"))
	assert.True(t, c.IsSocialMedia("https://www.instagram.com/"))
	assert.False(t, c.IsSocialMedia("https://notinstagram.com/"))
	assert.True(t, c.IsGamingSite("https://store.steampowered.com/app/1"))
	assert.True(t, c.IsContentFarm("https://www.coffeemanga.com/"))
	assert.True(t, c.IsInfrastructure("https://upload.wikimedia.org/a.png"))
	assert.False(t, c.IsInfrastructure("https://www.google.com/"))
}

func TestRestrictedPlatform(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsRestrictedPlatform("https://www.youtube.com/watch?v=1"))
	assert.True(t, c.IsRestrictedPlatform("https://youtu.be/abc"))
	assert.False(t, c.IsRestrictedPlatform("https://www.youtubekids.com/"))
	assert.True(t, c.IsKidsPlatform("https://www.youtubekids.com/watch?v=1"))
	assert.False(t, c.IsKidsPlatform("https://www.youtube.com/"))
}

func TestIsSuspiciousURL(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsSuspiciousURL("http://192.168.10.4/index.html"))
	assert.True(t, c.IsSuspiciousURL("http://[::1]:8080/x"))
	assert.True(t, c.IsSuspiciousURL("https://[2001:db8::1]/"))
	assert.True(t, c.IsSuspiciousURL("http://0123456789abcdef01.example.com/"))
	assert.True(t, c.IsSuspiciousURL("https://secure-bank.example.com/verify"))
	assert.True(t, c.IsSuspiciousURL("https://example.com/wp-content/uploads/run.php"))
	assert.True(t, c.IsSuspiciousURL("https://example.com/cgi-bin/x"))
	assert.False(t, c.IsSuspiciousURL("https://example.com/verify-email-tips"))
	assert.False(t, c.IsSuspiciousURL("https://example.com/"))
}

func TestIsKidFriendlyResource(t *testing.T) {
	c := newClassifier(t)

	assert.True(t, c.IsKidFriendlyResource("https://pbskids.org/app.js", policy.Script))
	assert.True(t, c.IsKidFriendlyResource("https://i.ytimg.com/vi/1/hq.jpg", policy.Image))
	assert.False(t, c.IsKidFriendlyResource("https://i.ytimg.com/api/data", policy.XHR))
	assert.True(t, c.IsKidFriendlyResource("https://example.com/kids/activities", policy.MainFrame))
	assert.True(t, c.IsKidFriendlyResource("https://example.com/page?topic=alphabet", policy.MainFrame))
	assert.False(t, c.IsKidFriendlyResource("https://example.com/start-party", policy.MainFrame))
}
