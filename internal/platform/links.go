package platform

import "regexp"

// Matches youtube.com and youtu.be links with or without scheme and www.
var youtubeURLRe = regexp.MustCompile(`(?i)(https?://)?(www\.)?(youtube\.com|youtu\.be)/\S+`)

// FindYouTubeURL extracts the first supported video link from free text.
// It returns the matching substring only, not the whole message.
func FindYouTubeURL(text string) (string, bool) {
	m := youtubeURLRe.FindString(text)
	if m == "" {
		return "", false
	}
	return m, true
}
