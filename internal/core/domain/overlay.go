package domain

// OverlayKind discriminates the overlay variants. Exactly one of the
// variant payloads on Overlay is non-nil and it matches Kind.
type OverlayKind string

const (
	OverlayImage   OverlayKind = "image"
	OverlayText    OverlayKind = "text"
	OverlayVideo   OverlayKind = "video"
	OverlayBrowser OverlayKind = "browser"
)

// Overlay is a decorative placeable layer on top of the primary capture.
type Overlay struct {
	Placeable
	ID      OverlayID   `json:"id"`
	Name    string      `json:"name"`
	Kind    OverlayKind `json:"kind"`
	Opacity int         `json:"opacity"` // 0..100

	Image   *ImageOverlayProps   `json:"image,omitempty"`
	Text    *TextOverlayProps    `json:"text,omitempty"`
	Video   *VideoOverlayProps   `json:"video,omitempty"`
	Browser *BrowserOverlayProps `json:"browser,omitempty"`
}

// Payload returns the variant payload matching Kind, or nil when the
// overlay is structurally inconsistent.
func (o *Overlay) Payload() interface{} {
	switch o.Kind {
	case OverlayImage:
		if o.Image != nil {
			return o.Image
		}
	case OverlayText:
		if o.Text != nil {
			return o.Text
		}
	case OverlayVideo:
		if o.Video != nil {
			return o.Video
		}
	case OverlayBrowser:
		if o.Browser != nil {
			return o.Browser
		}
	}
	return nil
}

type ImageOverlayProps struct {
	Source string `json:"source"`
}

type TextOverlayProps struct {
	Content    string `json:"content"`
	FontFamily string `json:"fontFamily,omitempty"`
	FontSize   int    `json:"fontSize,omitempty"`
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	Bold       bool   `json:"bold,omitempty"`
}

type VideoOverlayProps struct {
	Source string `json:"source"`
	Loop   bool   `json:"loop"`
	Muted  bool   `json:"muted"`
}

type BrowserOverlayProps struct {
	URL             string `json:"url"`
	RefreshInterval int    `json:"refreshInterval,omitempty"` // seconds, 0 = never
}
