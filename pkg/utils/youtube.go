package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// IsURL reports whether s is an http(s) URL rather than a local path.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func ExtractYouTubeID(youtubeURL string) (string, error) {
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(u.Host)
	switch {
	case strings.Contains(host, "youtu.be"):
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("no video ID found in youtu.be URL")

	case strings.Contains(host, "youtube.com"):
		if strings.HasPrefix(u.Path, "/watch") {
			if videoID := u.Query().Get("v"); videoID != "" {
				return videoID, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/"} {
			if id := strings.TrimPrefix(u.Path, prefix); id != u.Path && id != "" {
				return id, nil
			}
		}
	}

	return "", fmt.Errorf("unable to extract video ID from URL: %s", youtubeURL)
}

func IsYouTubeURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Host)
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}
