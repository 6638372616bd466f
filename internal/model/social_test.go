package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cvgen/internal/model"
)

func TestSocialNetworkURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		network  string
		username string
		want     string
	}{
		{"GitHub", "janedoe", "https://github.com/janedoe"},
		{"LinkedIn", "jane-doe", "https://linkedin.com/in/jane-doe"},
		{"YouTube", "janedoe", "https://youtube.com/@janedoe"},
		{"GoogleScholar", "AbC123", "https://scholar.google.com/citations?user=AbC123"},
		{"MySpace", "jane", ""},
	}
	for _, tc := range tests {
		sn := model.SocialNetwork{Network: tc.network, Username: tc.username}
		assert.Equal(t, tc.want, sn.URL(), "network %s", tc.network)
	}
}

func TestLinkLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.example.com/profile", "example.com"},
		{"http://blog.example.co.uk/posts", "example.co.uk"},
		{"example.org", "example.org"},
		{"not a url at all", "not a url at all"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, model.LinkLabel(tc.raw), "input %q", tc.raw)
	}
}
