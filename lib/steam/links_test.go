package steam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAppID(t *testing.T) {
	tests := []struct {
		link string
		want int64
	}{
		{"https://store.steampowered.com/app/730/", 730},
		{"https://store.steampowered.com/app/1091500/Cyberpunk_2077/", 1091500},
		{"https://steamcommunity.com/app/570", 570},
		{"check this out https://store.steampowered.com/app/440/ great game", 440},
	}

	for _, tt := range tests {
		got, err := ExtractAppID(tt.link)
		require.NoError(t, err, tt.link)
		assert.Equal(t, tt.want, got, tt.link)
	}
}

func TestExtractAppID_NoMatch(t *testing.T) {
	for _, link := range []string{
		"",
		"hello",
		"https://store.steampowered.com/news/",
		"https://example.com/app/730",
	} {
		_, err := ExtractAppID(link)
		assert.ErrorIs(t, err, ErrNoAppID, link)
	}
}
