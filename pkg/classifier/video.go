package classifier

import "strings"

// IsVideo reports streaming media and manifests. Video URLs are exempt from
// every ad and tracking heuristic because manifests routinely carry words
// such as "track".
func (c *Classifier) IsVideo(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isVideo(t)
}

func (c *Classifier) isVideo(t *Target) bool {
	for _, ext := range c.reg.VideoExtensions {
		if strings.HasSuffix(t.Path, ext) {
			return true
		}
	}
	for _, re := range c.reg.VideoPaths {
		if re.MatchString(t.Path) {
			return true
		}
	}
	if c.reg.VideoDomains.MatchHost(t.Host) {
		return true
	}
	for key, vals := range t.Query {
		for _, v := range vals {
			pair := key + "=" + v
			for _, vp := range c.reg.VideoParams {
				if strings.Contains(pair, vp) {
					return true
				}
			}
		}
	}
	return false
}
