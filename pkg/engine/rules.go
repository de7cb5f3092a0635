package engine

import (
	"github.com/NeuralTrust/AgeLock/pkg/classifier"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
)

// Rule is one named step of the decision order. Eval reports whether the
// rule matched and, if so, the verdict.
type Rule struct {
	Name string
	Eval func(ev *evaluation) (policy.Verdict, bool)
}

type evaluation struct {
	req     policy.RequestDescriptor
	profile policy.AgeProfile
	st      *state
	// view is nil when the URL does not parse; URL-based rules then
	// never match.
	view *classifier.View
}

func newEvaluation(req policy.RequestDescriptor, profile policy.AgeProfile, st *state) *evaluation {
	if req.ResourceType == "" {
		req.ResourceType = policy.Other
	}
	ev := &evaluation{req: req, profile: profile, st: st}
	if v, ok := st.classifier.View(req); ok {
		ev.view = v
	}
	return ev
}

func (ev *evaluation) parsed() bool {
	return ev.view != nil
}

const (
	RuleRestrictedPlatform = "restricted_platform"
	RuleSafeResourceType   = "safe_resource_type"
	RuleInternalScheme     = "internal_scheme"
	RuleInfrastructure     = "infrastructure"
	RuleGambling           = "gambling"
	RuleSearchEngine       = "search_engine"
	RuleStrictMode         = "strict_mode"
	RuleVideo              = "video"
	RuleExplicit           = "explicit_content"
	RuleMalicious          = "malicious_domain"
	RuleAdTracker          = "ad_tracker"
	RuleTracking           = "tracking_url"
	RuleSuspicious         = "suspicious_url"
	RuleThirdPartyTracker  = "third_party_tracker"
	RuleContentFarm        = "content_farm"
	RuleTopLevelCategory   = "top_level_category"
)

// Precedence returns the decision order. The age-gated platform check runs
// first so sub-resources of the platform are gated too.
func Precedence() []Rule {
	return []Rule{
		{Name: RuleRestrictedPlatform, Eval: restrictedPlatform},
		{Name: RuleSafeResourceType, Eval: safeResourceType},
		{Name: RuleInternalScheme, Eval: internalScheme},
		{Name: RuleInfrastructure, Eval: infrastructure},
		{Name: RuleGambling, Eval: gambling},
		{Name: RuleSearchEngine, Eval: searchEngine},
		{Name: RuleStrictMode, Eval: strictMode},
		{Name: RuleVideo, Eval: video},
		{Name: RuleExplicit, Eval: explicitContent},
		{Name: RuleMalicious, Eval: malicious},
		{Name: RuleAdTracker, Eval: adTracker},
		{Name: RuleTracking, Eval: tracking},
		{Name: RuleSuspicious, Eval: suspicious},
		{Name: RuleThirdPartyTracker, Eval: thirdPartyTracker},
		{Name: RuleContentFarm, Eval: contentFarm},
		{Name: RuleTopLevelCategory, Eval: topLevelCategory},
	}
}

var none = policy.Verdict{}

func restrictedPlatform(ev *evaluation) (policy.Verdict, bool) {
	if !ev.st.opts.RestrictedPlatform || !ev.parsed() {
		return none, false
	}
	if ev.view.IsKidsPlatform() {
		return policy.Allow("kids platform"), true
	}
	if ev.profile != policy.Children || !ev.view.IsRestrictedPlatform() {
		return none, false
	}
	target := ev.st.registry.KidsRedirect
	if ev.req.ResourceType.IsNavigation() && target != "" {
		return policy.Redirect(target, "This platform is blocked in kids mode, use the kids version instead"), true
	}
	v := policy.Cancel("This platform is blocked in kids mode", policy.CategoryPlatform)
	return v, true
}

func safeResourceType(ev *evaluation) (policy.Verdict, bool) {
	if !ev.req.ResourceType.IsPassive() {
		return none, false
	}
	if ev.parsed() {
		if ev.profile.IsMinor() && ev.view.Gambling() == classifier.GamblingHigh {
			return policy.Cancel("Gambling content is not allowed", policy.CategoryGambling), true
		}
		if ev.view.IsMaliciousDomain() {
			return policy.Cancel("Known malicious site", policy.CategoryMalicious), true
		}
	}
	return policy.Allow("safe resource type " + string(ev.req.ResourceType)), true
}

func internalScheme(ev *evaluation) (policy.Verdict, bool) {
	if ev.st.classifier.IsInternalScheme(ev.req.URL) {
		return policy.Allow("internal url"), true
	}
	return none, false
}

func infrastructure(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsInfrastructure() {
		return policy.Allow("allowed infrastructure domain"), true
	}
	return none, false
}

func gambling(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.profile.IsMinor() && ev.view.Gambling() == classifier.GamblingHigh {
		return policy.Cancel("Gambling content is not allowed", policy.CategoryGambling), true
	}
	return none, false
}

func searchEngine(ev *evaluation) (policy.Verdict, bool) {
	if !ev.parsed() {
		return none, false
	}
	if safe := ev.st.rewriter.Enforce(ev.req.URL); safe != ev.req.URL {
		return policy.Redirect(safe, "SafeSearch redirection"), true
	}
	if ev.view.IsSearchEngine() || ev.view.IsSearchEngineResource() {
		return policy.Allow("search engine resource"), true
	}
	return none, false
}

func strictMode(ev *evaluation) (policy.Verdict, bool) {
	if !ev.st.opts.StrictMode || !ev.parsed() {
		return none, false
	}
	if ev.view.ReferredBySearch() || ev.view.IsWhitelisted() {
		return none, false
	}
	if !ev.req.ResourceType.IsNavigation() && ev.view.IsKidFriendlyResource() {
		return none, false
	}
	return policy.Cancel("Not in whitelist", policy.CategoryRestricted), true
}

func video(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsVideo() {
		return policy.Allow("video content"), true
	}
	return none, false
}

func explicitContent(ev *evaluation) (policy.Verdict, bool) {
	if !ev.st.opts.ContentFiltering || !ev.parsed() {
		return none, false
	}
	if category, ok := ev.view.ExplicitCategory(); ok {
		return policy.Cancel("Explicit content", policy.Category(category)), true
	}
	return none, false
}

func malicious(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsMaliciousDomain() {
		return policy.Cancel("Known malicious site", policy.CategoryMalicious), true
	}
	return none, false
}

func adTracker(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsAdOrTracker() {
		return policy.Cancel("Ad or tracker", policy.CategoryAds), true
	}
	return none, false
}

func tracking(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsTrackingURL() {
		return policy.Cancel("Tracking URL", policy.CategoryTracking), true
	}
	return none, false
}

func suspicious(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsSuspiciousURL() {
		return policy.Cancel("Suspicious URL", policy.CategorySuspicious), true
	}
	return none, false
}

func thirdPartyTracker(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsThirdPartyTracker() {
		return policy.Cancel("Third-party tracker", policy.CategoryTracking), true
	}
	return none, false
}

func contentFarm(ev *evaluation) (policy.Verdict, bool) {
	if ev.parsed() && ev.view.IsContentFarm() {
		return policy.Cancel("Content farm", policy.CategoryFarm), true
	}
	return none, false
}

func topLevelCategory(ev *evaluation) (policy.Verdict, bool) {
	if !ev.parsed() || !ev.req.ResourceType.IsNavigation() {
		return none, false
	}
	if !ev.st.opts.SocialMediaEnabled && ev.view.IsSocialMedia() {
		return policy.Cancel("Social media is disabled", policy.CategorySocial), true
	}
	if !ev.st.opts.GamingEnabled && ev.view.IsGamingSite() {
		return policy.Cancel("Gaming sites are disabled", policy.CategoryGaming), true
	}
	return none, false
}
