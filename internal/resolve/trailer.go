package resolve

import (
	"strings"

	"github.com/vmunix/netlee/internal/media"
)

// FirstTrailer returns the first video that is a trailer hosted on YouTube,
// in the order given. No ranking by language or resolution is applied.
func FirstTrailer(videos []media.Video) *media.TrailerRef {
	for _, v := range videos {
		if !strings.EqualFold(v.Type, "trailer") || !strings.EqualFold(v.Site, media.TrailerProviderYouTube) {
			continue
		}
		if v.Key == "" {
			continue
		}
		return &media.TrailerRef{Provider: media.TrailerProviderYouTube, Key: v.Key}
	}
	return nil
}
