// Package platform classifies referrer URLs into coarse traffic-source labels.
package platform

import (
	"net/url"
	"strings"
)

// Unknown is the label for referrers that cannot be parsed as a URL.
const Unknown = "Unknown"

type rule struct {
	label      string
	substrings []string
}

// Ordered table; first match wins. Order matters because some substrings
// could co-occur in a single URL.
var rules = []rule{
	{"Twitter/X", []string{"twitter.com", "t.co", "x.com"}},
	{"LinkedIn", []string{"linkedin.com"}},
	{"Instagram", []string{"instagram.com"}},
	{"Facebook", []string{"facebook.com", "fb.com"}},
	{"Medium", []string{"medium.com"}},
	{"GitHub", []string{"github.com"}},
	{"YouTube", []string{"youtube.com", "youtu.be"}},
	{"TikTok", []string{"tiktok.com"}},
	{"Reddit", []string{"reddit.com"}},
	{"Discord", []string{"discord.com", "discord.gg"}},
	{"Telegram", []string{"telegram.org", "t.me"}},
	{"WhatsApp", []string{"whatsapp.com"}},
	{"Google Search", []string{"google.com"}},
	{"Bing Search", []string{"bing.com"}},
	{"DuckDuckGo", []string{"duckduckgo.com"}},
}

// Classify maps a referrer URL to a platform label. Empty input yields "".
// Referrers matching no table entry fall back to their bare hostname with a
// leading "www." stripped, or Unknown when the value has no parseable host.
// Pure and total: it never fails.
func Classify(referrer string) string {
	if referrer == "" {
		return ""
	}

	lower := strings.ToLower(referrer)
	for _, r := range rules {
		for _, sub := range r.substrings {
			if strings.Contains(lower, sub) {
				return r.label
			}
		}
	}

	parsed, err := url.Parse(referrer)
	if err != nil || parsed.Hostname() == "" {
		return Unknown
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
