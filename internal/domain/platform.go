package domain

import (
	"net/url"
	"strings"
)

// platform maps a set of hostnames to a platform identifier.
type platform struct {
	id      string
	domains []string
}

// platforms lists the services the frontend advertises support for.
// Order matters only for overlapping domains; the first match wins.
var platforms = []platform{
	{"youtube", []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}},
	{"tiktok", []string{"tiktok.com", "vm.tiktok.com"}},
	{"instagram", []string{"instagram.com", "instagr.am"}},
	{"facebook", []string{"facebook.com", "fb.com", "fb.watch"}},
	{"twitter", []string{"twitter.com", "x.com", "t.co"}},
	{"vimeo", []string{"vimeo.com"}},
	{"dailymotion", []string{"dailymotion.com", "dai.ly"}},
	{"twitch", []string{"twitch.tv", "clips.twitch.tv"}},
	{"reddit", []string{"reddit.com", "v.redd.it", "redd.it"}},
	{"pinterest", []string{"pinterest.com", "pin.it"}},
	{"snapchat", []string{"snapchat.com"}},
	{"vk", []string{"vk.com", "vkvideo.ru"}},
	{"linkedin", []string{"linkedin.com"}},
	{"soundcloud", []string{"soundcloud.com", "snd.sc"}},
	{"tumblr", []string{"tumblr.com"}},
	{"bbc", []string{"bbc.com", "bbc.co.uk"}},
	{"bilibili", []string{"bilibili.com", "b23.tv"}},
	{"rumble", []string{"rumble.com"}},
	{"odysee", []string{"odysee.com", "lbry.tv"}},
	{"streamable", []string{"streamable.com"}},
	{"bandcamp", []string{"bandcamp.com"}},
	{"mixcloud", []string{"mixcloud.com"}},
	{"niconico", []string{"nicovideo.jp", "nico.ms"}},
	{"kick", []string{"kick.com"}},
}

// DetectPlatform returns the platform id for a source URL, or "unknown".
func DetectPlatform(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	host := strings.ToLower(u.Hostname())
	for _, p := range platforms {
		for _, d := range p.domains {
			if host == d || strings.HasSuffix(host, "."+d) {
				return p.id
			}
		}
	}
	return "unknown"
}
