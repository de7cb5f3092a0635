package safesearch

import (
	"net/url"
	"sort"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/matcher"
	"github.com/NeuralTrust/AgeLock/pkg/rules"
)

const (
	imageFilterGoogle = "google"
	imageFilterBing   = "bing"

	googleSafeImages = "itp:safe"
	bingLargeImages  = "+filterui:imagesize-large"
)

type param struct {
	name  string
	value string
}

type engine struct {
	name        string
	hosts       *matcher.Set
	params      []param
	imageFilter string
}

// Rewriter forces strict filtering on search URLs. Parameters are set, never
// appended, so Enforce is idempotent.
type Rewriter struct {
	engines []engine
	enabled bool
}

func New(engines []rules.SafeSearchEngine, enabled bool) *Rewriter {
	r := &Rewriter{enabled: enabled}
	for _, e := range engines {
		if e.Param == "" || len(e.Hosts) == 0 {
			continue
		}
		eng := engine{
			name:        e.Name,
			hosts:       matcher.NewSet(e.Hosts...),
			params:      []param{{name: e.Param, value: e.Value}},
			imageFilter: strings.ToLower(e.ImageFilter),
		}
		extra := make([]string, 0, len(e.Extra))
		for k := range e.Extra {
			extra = append(extra, k)
		}
		sort.Strings(extra)
		for _, k := range extra {
			eng.params = append(eng.params, param{name: k, value: e.Extra[k]})
		}
		r.engines = append(r.engines, eng)
	}
	return r
}

func (r *Rewriter) Enabled() bool {
	return r.enabled
}

// Engine returns the name of the first engine whose hosts match raw.
func (r *Rewriter) Engine(raw string) (string, bool) {
	u, ok := matcher.ParseURL(raw)
	if !ok {
		return "", false
	}
	if e := r.find(u.Hostname()); e != nil {
		return e.name, true
	}
	return "", false
}

// Enforce returns raw with the engine's safe-search parameters set. The
// input is returned unchanged when rewriting is disabled or no engine
// matches. It is also unchanged when the URL or its query does not parse, or
// when every parameter already has its safe value.
func (r *Rewriter) Enforce(raw string) string {
	if !r.enabled {
		return raw
	}
	u, ok := matcher.ParseURL(raw)
	if !ok {
		return raw
	}
	e := r.find(u.Hostname())
	if e == nil {
		return raw
	}

	// A query that does not parse would lose pairs on re-encoding.
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return raw
	}
	changed := false
	set := func(name, value string) {
		if cur, ok := q[name]; ok && len(cur) == 1 && cur[0] == value {
			return
		}
		q.Set(name, value)
		changed = true
	}
	for _, p := range e.params {
		set(p.name, p.value)
	}

	p := strings.ToLower(u.Path)
	switch e.imageFilter {
	case imageFilterGoogle:
		if strings.HasPrefix(p, "/search") && q.Get("tbm") == "isch" {
			if tbs := q.Get("tbs"); !strings.Contains(tbs, googleSafeImages) {
				if tbs == "" {
					set("tbs", googleSafeImages)
				} else {
					set("tbs", googleSafeImages+","+tbs)
				}
			}
		}
	case imageFilterBing:
		if strings.HasPrefix(p, "/images/search") {
			if qft := q.Get("qft"); !strings.Contains(qft, bingLargeImages) {
				set("qft", qft+bingLargeImages)
			}
		}
	}

	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (r *Rewriter) find(host string) *engine {
	for i := range r.engines {
		if r.engines[i].hosts.MatchHost(host) {
			return &r.engines[i]
		}
	}
	return nil
}
