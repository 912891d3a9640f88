package schema

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Config is the root landing page document: SEO metadata, theme, an optional
// floating WhatsApp button and the ordered section sequence. It is addressed
// externally by a site key; the document itself carries no identity.
type Config struct {
	Meta     Meta      `json:"meta"`
	Theme    Theme     `json:"theme"`
	WhatsApp *WhatsApp `json:"whatsapp,omitempty"`
	Sections []Section `json:"sections"`
}

// Meta holds SEO and identity fields. Title, description and robots are the
// only required fields; everything else is optional and absence is preserved
// as distinct from an empty string.
type Meta struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Keywords     *string `json:"keywords,omitempty"`
	OGImage      *string `json:"ogImage,omitempty"`
	Favicon      *string `json:"favicon,omitempty"`
	CanonicalURL *string `json:"canonicalUrl,omitempty"`
	Robots       string  `json:"robots"`
	Author       *string `json:"author,omitempty"`

	FacebookPixelID    *string `json:"facebookPixelId,omitempty"`
	GoogleAnalyticsID  *string `json:"googleAnalyticsId,omitempty"`
	GoogleTagManagerID *string `json:"googleTagManagerId,omitempty"`

	// Local business structured data (schema.org).
	BusinessName *string  `json:"businessName,omitempty"`
	BusinessType string   `json:"businessType"`
	PriceRange   *string  `json:"priceRange,omitempty"`
	RatingValue  *float64 `json:"ratingValue,omitempty"`
	ReviewCount  *int     `json:"reviewCount,omitempty"`
}

// DefaultMeta returns a Meta with every defaulted field populated.
func DefaultMeta() Meta {
	return Meta{
		Robots:       "index, follow",
		BusinessType: "LocalBusiness",
	}
}

// UnmarshalJSON overlays the payload on top of the defaults so absent fields
// keep their declared default values.
func (m *Meta) UnmarshalJSON(data []byte) error {
	type alias Meta
	tmp := alias(DefaultMeta())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*m = Meta(tmp)
	return nil
}

// Validate enforces the required meta fields.
func (m Meta) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Description, validation.Required),
		validation.Field(&m.Robots, validation.Required),
		validation.Field(&m.OGImage, is.URL),
		validation.Field(&m.Favicon, is.URL),
		validation.Field(&m.CanonicalURL, is.URL),
	)
}

// Theme is the global palette and font pair. Color values are expected to be
// valid CSS colors but are not strictly validated beyond being non-empty.
type Theme struct {
	Colors ThemeColors `json:"colors"`
	Fonts  ThemeFonts  `json:"fonts"`
}

// ThemeColors names the four palette slots used by every section template.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// ThemeFonts carries the heading/body font family names.
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

func (t Theme) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Colors),
		validation.Field(&t.Fonts),
	)
}

func (c ThemeColors) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Primary, validation.Required),
		validation.Field(&c.Secondary, validation.Required),
		validation.Field(&c.Background, validation.Required),
		validation.Field(&c.Text, validation.Required),
	)
}

func (f ThemeFonts) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Heading, validation.Required),
		validation.Field(&f.Body, validation.Required),
	)
}

// Position enumerates the screen corners available to the WhatsApp button.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionTopRight    Position = "top-right"
	PositionTopLeft     Position = "top-left"
)

// WhatsApp configures the optional floating contact button.
type WhatsApp struct {
	Enabled  bool     `json:"enabled"`
	Number   string   `json:"number"`
	Message  *string  `json:"message,omitempty"`
	Position Position `json:"position"`
}

// DefaultWhatsApp returns the disabled bottom-right default.
func DefaultWhatsApp() WhatsApp {
	return WhatsApp{
		Enabled:  false,
		Number:   "",
		Position: PositionBottomRight,
	}
}

func (w *WhatsApp) UnmarshalJSON(data []byte) error {
	type alias WhatsApp
	tmp := alias(DefaultWhatsApp())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*w = WhatsApp(tmp)
	return nil
}

func (w WhatsApp) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Position, validation.In(
			PositionBottomRight, PositionBottomLeft, PositionTopRight, PositionTopLeft,
		)),
	)
}

// LinkVariant selects the visual treatment of an embedded link.
type LinkVariant string

const (
	LinkPrimary   LinkVariant = "primary"
	LinkSecondary LinkVariant = "secondary"
	LinkOutline   LinkVariant = "outline"
	LinkPlain     LinkVariant = "link"
)

// Link is a value type embedded wherever a clickable action exists. It has no
// identity of its own and is copied by value.
type Link struct {
	Text     string      `json:"text"`
	URL      string      `json:"url"`
	Variant  LinkVariant `json:"variant"`
	External bool        `json:"external"`
}

func (l *Link) UnmarshalJSON(data []byte) error {
	type alias Link
	tmp := alias(Link{Variant: LinkPrimary})
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*l = Link(tmp)
	return nil
}

func (l Link) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Text, validation.Required),
		validation.Field(&l.URL, validation.Required),
		validation.Field(&l.Variant, validation.In(LinkPrimary, LinkSecondary, LinkOutline, LinkPlain)),
	)
}

// Image references a hosted asset with alt text and optional dimensions.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

func (i Image) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Src, validation.Required, is.URL),
	)
}

// Animation enumerates entrance animations for a section.
type Animation string

const (
	AnimationNone       Animation = "none"
	AnimationFadeIn     Animation = "fade-in"
	AnimationSlideUp    Animation = "slide-up"
	AnimationSlideLeft  Animation = "slide-left"
	AnimationSlideRight Animation = "slide-right"
	AnimationZoomIn     Animation = "zoom-in"
)

// Shadow enumerates drop shadow presets.
type Shadow string

const (
	ShadowNone Shadow = "none"
	ShadowSM   Shadow = "sm"
	ShadowMD   Shadow = "md"
	ShadowLG   Shadow = "lg"
)

// SectionSettings is the uniform per-section presentation block. Padding and
// background accept either a preset token or a raw CSS value, so they stay
// free-form strings here. Settings validate independently of the section
// content so the editor can still toggle visibility of a broken section.
type SectionSettings struct {
	Visible         bool      `json:"visible"`
	PaddingTop      string    `json:"paddingTop"`
	PaddingBottom   string    `json:"paddingBottom"`
	BackgroundColor string    `json:"backgroundColor"`
	Container       bool      `json:"container"`
	Animation       Animation `json:"animation"`
	Border          bool      `json:"border"`
	Shadow          Shadow    `json:"shadow"`
}

// DefaultSettings returns the settings every new section starts from.
func DefaultSettings() SectionSettings {
	return SectionSettings{
		Visible:         true,
		PaddingTop:      "md",
		PaddingBottom:   "md",
		BackgroundColor: "white",
		Container:       true,
		Animation:       AnimationSlideUp,
		Border:          false,
		Shadow:          ShadowNone,
	}
}

func (s *SectionSettings) UnmarshalJSON(data []byte) error {
	type alias SectionSettings
	tmp := alias(DefaultSettings())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = SectionSettings(tmp)
	return nil
}

func (s SectionSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.PaddingTop, validation.Required),
		validation.Field(&s.PaddingBottom, validation.Required),
		validation.Field(&s.BackgroundColor, validation.Required),
		validation.Field(&s.Animation, validation.In(
			AnimationNone, AnimationFadeIn, AnimationSlideUp,
			AnimationSlideLeft, AnimationSlideRight, AnimationZoomIn,
		)),
		validation.Field(&s.Shadow, validation.In(ShadowNone, ShadowSM, ShadowMD, ShadowLG)),
	)
}
