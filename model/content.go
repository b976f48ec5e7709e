package model

import "strings"

// ContentBundle carries the two reduced content excerpts for one audit.
// Built fresh per request, never persisted. Fetch failures arrive here as
// bracketed note values, not as errors.
type ContentBundle struct {
	WebsiteText string
	SocialText  string
	IsLimited   bool
}

// MarkLimited computes IsLimited from the two excerpts: a fetch-failure
// note in either, or a website excerpt too short to score confidently.
func (b *ContentBundle) MarkLimited(notePrefix string, minUsable int) {
	b.IsLimited = strings.Contains(b.WebsiteText, notePrefix) ||
		strings.Contains(b.SocialText, notePrefix) ||
		len(b.WebsiteText) < minUsable
}
