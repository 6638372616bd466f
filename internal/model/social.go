package model

import (
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// SocialNetwork is one profile link on the CV header.
type SocialNetwork struct {
	Network  string
	Username string
}

// socialHosts maps the recognized network names to their profile URL prefix.
var socialHosts = map[string]string{
	"LinkedIn":      "https://linkedin.com/in/",
	"GitHub":        "https://github.com/",
	"GitLab":        "https://gitlab.com/",
	"Instagram":     "https://instagram.com/",
	"ORCID":         "https://orcid.org/",
	"Mastodon":      "https://mastodon.social/",
	"X":             "https://x.com/",
	"StackOverflow": "https://stackoverflow.com/users/",
	"ResearchGate":  "https://researchgate.net/profile/",
	"YouTube":       "https://youtube.com/@",
	"GoogleScholar": "https://scholar.google.com/citations?user=",
	"Telegram":      "https://t.me/",
}

// SocialNetworkNames lists the recognized networks in a stable order.
func SocialNetworkNames() []string {
	names := make([]string, 0, len(socialHosts))
	for name := range socialHosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// URL derives the profile address for the network and username.
func (s SocialNetwork) URL() string {
	prefix, ok := socialHosts[s.Network]
	if !ok {
		return ""
	}
	return prefix + s.Username
}

func (s *SocialNetwork) validate(path string, errs *ErrorList) {
	if _, ok := socialHosts[s.Network]; !ok {
		errs.Add(NewFieldError(path+".network", s.Network,
			"unknown social network, expected one of: %s", strings.Join(SocialNetworkNames(), ", ")))
	}
	if strings.TrimSpace(s.Username) == "" {
		errs.Add(NewFieldError(path+".username", s.Username, "username must not be empty"))
	} else if strings.ContainsAny(s.Username, " \t") {
		errs.Add(NewFieldError(path+".username", s.Username, "username must not contain whitespace"))
	}
}

// LinkLabel derives a tidy display label for an arbitrary URL: the eTLD+1 of
// its host when one can be extracted, the bare host otherwise.
func LinkLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}
	host := parsed.Hostname()
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return strings.TrimPrefix(etld, "www.")
	}
	return strings.TrimPrefix(host, "www.")
}

func validateURLField(path, raw string, errs *ErrorList) {
	if raw == "" {
		return
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs.Add(NewFieldError(path, raw, "must be an absolute http(s) URL"))
		return
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs.Add(NewFieldError(path, raw, "unsupported URL scheme %q", parsed.Scheme))
	}
}

func validateEmailField(path, raw string, errs *ErrorList) {
	if raw == "" {
		return
	}
	at := strings.Index(raw, "@")
	if at <= 0 || at == len(raw)-1 || strings.ContainsAny(raw, " \t") || !strings.Contains(raw[at+1:], ".") {
		errs.Add(NewFieldError(path, raw, "must be a valid email address"))
	}
}

func validatePhoneField(path, raw string, errs *ErrorList) {
	if raw == "" {
		return
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, raw)
	if !strings.HasPrefix(cleaned, "+") {
		errs.Add(NewFieldError(path, raw, "phone number must start with a country code, e.g. +90"))
		return
	}
	digits := cleaned[1:]
	if len(digits) < 7 || len(digits) > 15 {
		errs.Add(NewFieldError(path, raw, "phone number must have 7-15 digits"))
		return
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			errs.Add(NewFieldError(path, raw, "phone number contains non-digit %q", string(r)))
			return
		}
	}
}
