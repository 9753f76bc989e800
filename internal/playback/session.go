package playback

import "github.com/vmunix/netlee/internal/media"

// Session is the ephemeral state of one mount. It is owned by the
// Controller; callers only ever see copies.
type Session struct {
	Ref            media.ContentRef `json:"ref"`
	Phase          Phase            `json:"phase"`
	ActiveAssetURL string           `json:"active_asset_url,omitempty"`
	UsedFallback   bool             `json:"used_fallback"`
	LastError      media.ErrorKind  `json:"last_error,omitempty"`
	Err            error            `json:"-"`
}

// View is a render-ready snapshot of the controller.
type View struct {
	Mounted bool               `json:"mounted"`
	Session Session            `json:"session"`
	Record  *media.MovieRecord `json:"record,omitempty"`

	// Available user actions.
	CanPlayFull    bool `json:"can_play_full"`
	CanPlayTrailer bool `json:"can_play_trailer"`
	CanGoBack      bool `json:"can_go_back"`
}

// ErrorMessage returns the surfaced error text, or "" when there is none.
func (v View) ErrorMessage() string {
	if v.Session.Err == nil {
		return ""
	}
	return v.Session.Err.Error()
}
