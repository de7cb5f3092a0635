package classifier

import "github.com/NeuralTrust/AgeLock/pkg/domain/policy"

// View binds one parsed request to the classifier so a caller running many
// predicates parses the URL once.
type View struct {
	c   *Classifier
	t   *Target
	req policy.RequestDescriptor
}

// View returns false when the request URL has no scheme or host.
func (c *Classifier) View(req policy.RequestDescriptor) (*View, bool) {
	t, ok := Parse(req.URL)
	if !ok {
		return nil, false
	}
	return &View{c: c, t: t, req: req}, true
}

func (v *View) Target() *Target { return v.t }
func (v *View) IsInfrastructure() bool { return v.c.isInfrastructure(v.t) }
func (v *View) IsMaliciousDomain() bool { return v.c.isMalicious(v.t) }
func (v *View) IsVideo() bool { return v.c.isVideo(v.t) }
func (v *View) IsAdOrTracker() bool { return v.c.isAdOrTracker(v.t) }
func (v *View) IsTrackingURL() bool { return v.c.isTracking(v.t, false) }
func (v *View) IsSuspiciousURL() bool { return v.c.isSuspicious(v.t) }
func (v *View) IsContentFarm() bool { return v.c.isContentFarm(v.t) }
func (v *View) IsSearchEngine() bool { return v.c.isSearchEngine(v.t) }
func (v *View) IsWhitelisted() bool { return v.c.isWhitelisted(v.t) }
func (v *View) IsRestrictedPlatform() bool { return v.c.isRestrictedPlatform(v.t) }
func (v *View) IsKidsPlatform() bool { return v.c.isKidsPlatform(v.t) }
func (v *View) Gambling() GamblingTier { return v.c.gambling(v.t) }
func (v *View) ExplicitCategory() (string, bool) { return v.c.explicitURL(v.t) }

func (v *View) IsSocialMedia() bool {
	return v.c.reg.SocialMedia.MatchHost(v.t.Host)
}

func (v *View) IsGamingSite() bool {
	return v.c.reg.Gaming.MatchHost(v.t.Host)
}

func (v *View) IsSearchEngineResource() bool {
	return v.c.isSearchResource(v.t, v.req.Referrer)
}

// ReferredBySearch reports a referrer that is itself a search engine.
func (v *View) ReferredBySearch() bool {
	return v.c.referredBySearch(v.req.Referrer)
}

func (v *View) IsThirdPartyTracker() bool {
	return v.c.isThirdPartyTracker(v.t, v.req.Referrer)
}

func (v *View) IsKidFriendlyResource() bool {
	return v.c.isKidFriendly(v.t, v.req.ResourceType)
}
