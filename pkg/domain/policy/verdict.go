package policy

type Action string

const (
	ActionAllow    Action = "allow"
	ActionCancel   Action = "cancel"
	ActionRedirect Action = "redirect"
)

type Category string

const (
	CategoryNone       Category = ""
	CategoryGambling   Category = "gambling"
	CategoryRestricted Category = "restricted"
	CategoryMalicious  Category = "malicious"
	CategoryAds        Category = "ads"
	CategoryTracking   Category = "tracking"
	CategorySuspicious Category = "suspicious"
	CategoryFarm       Category = "content_farm"
	CategorySocial     Category = "social_media"
	CategoryGaming     Category = "gaming"
	CategoryPlatform   Category = "restricted_platform"
)

// Verdict is produced fresh for every request and never cached.
type Verdict struct {
	Action      Action   `json:"action"`
	Reason      string   `json:"reason,omitempty"`
	Category    Category `json:"category,omitempty"`
	RedirectURL string   `json:"redirect_url,omitempty"`
	// Rule is the name of the rule that produced the verdict.
	Rule string `json:"rule,omitempty"`
}

func Allow(reason string) Verdict {
	return Verdict{Action: ActionAllow, Reason: reason}
}

func Cancel(reason string, category Category) Verdict {
	return Verdict{Action: ActionCancel, Reason: reason, Category: category}
}

func Redirect(target, reason string) Verdict {
	return Verdict{Action: ActionRedirect, RedirectURL: target, Reason: reason}
}

func (v Verdict) Allowed() bool {
	return v.Action == ActionAllow
}

func (v Verdict) Blocked() bool {
	return v.Action == ActionCancel
}
