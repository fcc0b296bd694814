package dto

import (
	"net/url"
	"regexp"
	"strings"

	"hostmarket_backend/internal/models"
)

// ThumbnailTransform - фиксированные параметры превью (crop, 640x360, auto формат и качество)
const ThumbnailTransform = "c_fill,w_640,h_360,f_auto,q_auto"

const uploadSegment = "/upload/"

// ThumbnailURL вставляет ThumbnailTransform сразу после /upload/ в URL картинки.
// Только переписывание строки, сети нет. URL без /upload/ возвращается как есть.
func ThumbnailURL(src string) string {
	src = strings.TrimSpace(src)
	idx := strings.Index(src, uploadSegment)
	if idx < 0 {
		return src
	}
	head := src[:idx+len(uploadSegment)]
	rest := src[idx+len(uploadSegment):]
	if strings.HasPrefix(rest, ThumbnailTransform+"/") {
		return src
	}
	return head + ThumbnailTransform + "/" + rest
}

var (
	youtubePattern   = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?(?:[^#]*&)?v=|shorts/|embed/))([A-Za-z0-9_-]{6,})`)
	instagramPattern = regexp.MustCompile(`instagram\.com/(reel|p)/([A-Za-z0-9_-]+)`)
	tiktokPattern    = regexp.MustCompile(`tiktok\.com/@[^/]+/video/(\d+)`)
)

// DetectProvider угадывает площадку по хосту
func DetectProvider(sourceURL string) models.ShortProvider {
	u, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, "youtube.com"):
		return models.ShortProviderYouTube
	case strings.HasSuffix(host, "instagram.com"):
		return models.ShortProviderInstagram
	case strings.HasSuffix(host, "tiktok.com"):
		return models.ShortProviderTikTok
	}
	return ""
}

// EmbedURL строит embed-ссылку из исходной. Нераспознанная ссылка дает "".
func EmbedURL(provider models.ShortProvider, sourceURL string) string {
	if provider == "" {
		provider = DetectProvider(sourceURL)
	}
	switch provider {
	case models.ShortProviderYouTube:
		if m := youtubePattern.FindStringSubmatch(sourceURL); m != nil {
			return "https://www.youtube.com/embed/" + m[1]
		}
	case models.ShortProviderInstagram:
		if m := instagramPattern.FindStringSubmatch(sourceURL); m != nil {
			return "https://www.instagram.com/" + m[1] + "/" + m[2] + "/embed"
		}
	case models.ShortProviderTikTok:
		if m := tiktokPattern.FindStringSubmatch(sourceURL); m != nil {
			return "https://www.tiktok.com/embed/v2/" + m[1]
		}
	}
	return ""
}
