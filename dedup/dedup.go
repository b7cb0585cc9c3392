package dedup

import (
	"net/url"
	"strings"

	"newsbrief/types"
)

// trackingParams are query parameters stripped during canonicalization.
// Removing them is what makes the same article shared through different
// channels dedupe to one URL.
var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
	"igshid": true,
	"mc_cid": true,
	"mc_eid": true,
	"ref":    true,
}

// Canonicalize normalizes a URL for dedup comparison. The rule set is
// fixed and determines dedup correctness:
//   - scheme and host lower-cased
//   - fragment removed
//   - tracking query parameters removed (utm_*, fbclid, gclid, igshid,
//     mc_cid, mc_eid, ref); surviving parameters are re-encoded in
//     sorted key order
//   - trailing slash trimmed
//
// Unparseable URLs fall back to lower-cased, trimmed input so they still
// dedupe against byte-identical duplicates.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || trackingParams[lk] {
			q.Del(k)
		}
	}
	// url.Values.Encode sorts keys, which keeps param order differences
	// from defeating the comparison.
	u.RawQuery = q.Encode()

	out := u.String()
	out = strings.TrimRight(out, "/")
	return out
}

// Deduplicate returns the entries with unique canonical URLs,
// first-seen-wins, preserving the relative order of first occurrence.
// It is a pure transform: idempotent, no side effects, empty in → empty out.
func Deduplicate(entries []types.FeedEntry) []types.FeedEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]types.FeedEntry, 0, len(entries))
	for _, e := range entries {
		key := Canonicalize(e.URL)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
