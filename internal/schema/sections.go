package schema

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SectionType discriminates the closed set of section kinds. The discriminant
// is immutable once a section is created.
type SectionType string

const (
	SectionHeader       SectionType = "header"
	SectionHero         SectionType = "hero"
	SectionFeatures     SectionType = "features"
	SectionTestimonials SectionType = "testimonials"
	SectionPricing      SectionType = "pricing"
	SectionCTA          SectionType = "cta"
	SectionContact      SectionType = "contact"
	SectionFooter       SectionType = "footer"
	SectionVideo        SectionType = "video"
	SectionGallery      SectionType = "gallery"
	SectionVideoGallery SectionType = "video-gallery"
	SectionMap          SectionType = "map"
	SectionIframe       SectionType = "iframe"
)

// SectionTypes lists every known discriminant in declaration order.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionHeader, SectionHero, SectionFeatures, SectionTestimonials,
		SectionPricing, SectionCTA, SectionContact, SectionFooter,
		SectionVideo, SectionGallery, SectionVideoGallery, SectionMap,
		SectionIframe,
	}
}

// SectionContent is the tagged-union payload of a section. One concrete
// struct exists per section kind so a section's content can never disagree
// with its declared type.
type SectionContent interface {
	validation.Validatable

	// SectionType reports the discriminant this content shape belongs to.
	SectionType() SectionType
}

// Section is one ordered, typed block within a document. IDs are opaque
// tokens generated at creation; they are never renumbered on reorder.
type Section struct {
	ID       string          `json:"id"`
	Name     *string         `json:"name,omitempty"`
	Type     SectionType     `json:"type"`
	Content  SectionContent  `json:"content"`
	Settings SectionSettings `json:"settings"`
}

type sectionEnvelope struct {
	ID       string          `json:"id"`
	Name     *string         `json:"name,omitempty"`
	Type     SectionType     `json:"type"`
	Content  json.RawMessage `json:"content"`
	Settings json.RawMessage `json:"settings"`
}

// NewContent returns a zero-value content struct for the given discriminant,
// with defaults applied. Unknown discriminants are rejected.
func NewContent(t SectionType) (SectionContent, error) {
	switch t {
	case SectionHeader:
		c := defaultHeaderContent()
		return &c, nil
	case SectionHero:
		c := defaultHeroContent()
		return &c, nil
	case SectionFeatures:
		c := defaultFeaturesContent()
		return &c, nil
	case SectionTestimonials:
		return &TestimonialsContent{}, nil
	case SectionPricing:
		return &PricingContent{}, nil
	case SectionCTA:
		return &CTAContent{}, nil
	case SectionContact:
		return &ContactContent{}, nil
	case SectionFooter:
		return &FooterContent{}, nil
	case SectionVideo:
		c := defaultVideoContent()
		return &c, nil
	case SectionGallery:
		c := defaultGalleryContent()
		return &c, nil
	case SectionVideoGallery:
		c := defaultVideoGalleryContent()
		return &c, nil
	case SectionMap:
		c := defaultMapContent()
		return &c, nil
	case SectionIframe:
		c := defaultIframeContent()
		return &c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, string(t))
	}
}

// UnmarshalJSON decodes the envelope, then dispatches the content payload to
// the concrete shape selected by the type discriminant.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env sectionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	content, err := NewContent(env.Type)
	if err != nil {
		return err
	}
	if len(env.Content) > 0 {
		if err := json.Unmarshal(env.Content, content); err != nil {
			return fmt.Errorf("content: %w", err)
		}
	}

	settings := DefaultSettings()
	if len(env.Settings) > 0 {
		if err := json.Unmarshal(env.Settings, &settings); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}

	s.ID = env.ID
	s.Name = env.Name
	s.Type = env.Type
	s.Content = content
	s.Settings = settings
	return nil
}

// Clone returns a deep copy of the section via JSON round-trip. Content
// shapes are plain data, so the round-trip is lossless.
func (s Section) Clone() (Section, error) {
	encoded, err := json.Marshal(s)
	if err != nil {
		return Section{}, err
	}
	var out Section
	if err := json.Unmarshal(encoded, &out); err != nil {
		return Section{}, err
	}
	return out, nil
}

// Alignment enumerates horizontal content alignment.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// LogoMode selects how the header brand is rendered.
type LogoMode string

const (
	LogoText  LogoMode = "text"
	LogoImage LogoMode = "image"
	LogoBoth  LogoMode = "both"
)

// HeaderContent is the navigation bar payload.
type HeaderContent struct {
	Logo     *string  `json:"logo,omitempty"`
	Title    *string  `json:"title,omitempty"`
	LogoMode LogoMode `json:"logoMode"`
	Links    []Link   `json:"links"`
	CTA      *Link    `json:"cta,omitempty"`
	Sticky   bool     `json:"sticky"`
}

func defaultHeaderContent() HeaderContent {
	return HeaderContent{LogoMode: LogoText, Sticky: true}
}

func (c *HeaderContent) UnmarshalJSON(data []byte) error {
	type alias HeaderContent
	tmp := alias(defaultHeaderContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = HeaderContent(tmp)
	return nil
}

func (c HeaderContent) SectionType() SectionType { return SectionHeader }

func (c HeaderContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogoMode, validation.In(LogoText, LogoImage, LogoBoth)),
		validation.Field(&c.Links, validation.NotNil),
		validation.Field(&c.CTA),
	)
}

// HeroContent is the primary above-the-fold payload.
type HeroContent struct {
	Headline    string    `json:"headline"`
	Subheadline string    `json:"subheadline"`
	CTA         []Link    `json:"cta,omitempty"`
	Image       *Image    `json:"image,omitempty"`
	Alignment   Alignment `json:"alignment"`
	Logo        *string   `json:"logo,omitempty"`
	VideoURL    *string   `json:"videoUrl,omitempty"`
}

func defaultHeroContent() HeroContent {
	return HeroContent{Alignment: AlignCenter}
}

func (c *HeroContent) UnmarshalJSON(data []byte) error {
	type alias HeroContent
	tmp := alias(defaultHeroContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = HeroContent(tmp)
	return nil
}

func (c HeroContent) SectionType() SectionType { return SectionHero }

func (c HeroContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Headline, validation.Required),
		validation.Field(&c.Subheadline, validation.Required),
		validation.Field(&c.CTA),
		validation.Field(&c.Image),
		validation.Field(&c.Alignment, validation.In(AlignLeft, AlignCenter, AlignRight)),
		validation.Field(&c.VideoURL, is.URL),
	)
}

// FeatureItem is one entry in a features grid. Icon names reference the
// frontend icon set and are treated as opaque strings here.
type FeatureItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (i FeatureItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required),
		validation.Field(&i.Description, validation.Required),
		validation.Field(&i.Icon, validation.Required),
	)
}

// FeaturesContent is the feature grid payload.
type FeaturesContent struct {
	Title    string        `json:"title"`
	Subtitle *string       `json:"subtitle,omitempty"`
	Features []FeatureItem `json:"features"`
	Columns  int           `json:"columns"`
}

func defaultFeaturesContent() FeaturesContent {
	return FeaturesContent{Columns: 3}
}

func (c *FeaturesContent) UnmarshalJSON(data []byte) error {
	type alias FeaturesContent
	tmp := alias(defaultFeaturesContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = FeaturesContent(tmp)
	return nil
}

func (c FeaturesContent) SectionType() SectionType { return SectionFeatures }

func (c FeaturesContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Features, validation.NotNil),
		validation.Field(&c.Columns, validation.Required, validation.Min(1), validation.Max(4)),
	)
}

// TestimonialItem is a single customer quote with a bounded star rating.
type TestimonialItem struct {
	Name    string  `json:"name"`
	Role    *string `json:"role,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`
	Content string  `json:"content"`
	Rating  int     `json:"rating"`
}

func (i *TestimonialItem) UnmarshalJSON(data []byte) error {
	type alias TestimonialItem
	tmp := alias(TestimonialItem{Rating: 5})
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*i = TestimonialItem(tmp)
	return nil
}

func (i TestimonialItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required),
		validation.Field(&i.Content, validation.Required),
		validation.Field(&i.Avatar, is.URL),
		validation.Field(&i.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// TestimonialsContent is the social-proof payload.
type TestimonialsContent struct {
	Title        string            `json:"title"`
	Testimonials []TestimonialItem `json:"testimonials"`
}

func (c TestimonialsContent) SectionType() SectionType { return SectionTestimonials }

func (c TestimonialsContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Testimonials, validation.NotNil),
	)
}

// PricingPlan describes one purchasable tier.
type PricingPlan struct {
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Period    *string  `json:"period,omitempty"`
	Features  []string `json:"features"`
	CTA       Link     `json:"cta"`
	Highlight bool     `json:"highlight"`
}

func (p PricingPlan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Price, validation.Required),
		validation.Field(&p.CTA),
	)
}

// PricingContent is the plan comparison payload.
type PricingContent struct {
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Plans       []PricingPlan `json:"plans"`
}

func (c PricingContent) SectionType() SectionType { return SectionPricing }

func (c PricingContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Plans, validation.NotNil),
	)
}

// CTAContent is the standalone call-to-action banner payload.
type CTAContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Buttons     []Link `json:"buttons"`
}

func (c CTAContent) SectionType() SectionType { return SectionCTA }

func (c CTAContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Description, validation.Required),
		validation.Field(&c.Buttons, validation.NotNil),
	)
}

// ContactContent is the contact block payload. All channels are optional; the
// renderer hides whatever is absent.
type ContactContent struct {
	Title    string  `json:"title"`
	Subtitle *string `json:"subtitle,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Hours    *string `json:"hours,omitempty"`
}

func (c ContactContent) SectionType() SectionType { return SectionContact }

func (c ContactContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Email, is.EmailFormat),
	)
}

// SocialPlatform enumerates the supported social networks.
type SocialPlatform string

const (
	SocialTwitter   SocialPlatform = "twitter"
	SocialFacebook  SocialPlatform = "facebook"
	SocialInstagram SocialPlatform = "instagram"
	SocialLinkedIn  SocialPlatform = "linkedin"
	SocialGitHub    SocialPlatform = "github"
	SocialYouTube   SocialPlatform = "youtube"
)

// FooterSocial is one social media link in the footer.
type FooterSocial struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
	Enabled  bool           `json:"enabled"`
}

func (s *FooterSocial) UnmarshalJSON(data []byte) error {
	type alias FooterSocial
	tmp := alias(FooterSocial{Enabled: true})
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = FooterSocial(tmp)
	return nil
}

func (s FooterSocial) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Platform, validation.Required, validation.In(
			SocialTwitter, SocialFacebook, SocialInstagram,
			SocialLinkedIn, SocialGitHub, SocialYouTube,
		)),
		validation.Field(&s.URL, validation.Required, is.URL),
	)
}

// FooterLinkGroup is a titled column of footer links.
type FooterLinkGroup struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

func (g FooterLinkGroup) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Title, validation.Required),
		validation.Field(&g.Links, validation.NotNil),
	)
}

// FooterLegal carries the legal-entity disclosure block. Every field is
// optional; publishers fill in whatever their jurisdiction requires.
type FooterLegal struct {
	Publisher            *string `json:"publisher,omitempty"`
	PublisherContact     *string `json:"publisherContact,omitempty"`
	SIRET                *string `json:"siret,omitempty"`
	RCS                  *string `json:"rcs,omitempty"`
	Capital              *string `json:"capital,omitempty"`
	TVA                  *string `json:"tva,omitempty"`
	Host                 *string `json:"host,omitempty"`
	HostAddress          *string `json:"hostAddress,omitempty"`
	IntellectualProperty *string `json:"intellectualProperty,omitempty"`
}

// FooterContent is the page footer payload.
type FooterContent struct {
	Copyright  string            `json:"copyright"`
	Socials    []FooterSocial    `json:"socials,omitempty"`
	CTAButton  *Link             `json:"ctaButton,omitempty"`
	Columns    []FooterLinkGroup `json:"columns,omitempty"`
	LegalLinks []Link            `json:"legalLinks,omitempty"`
	Legal      *FooterLegal      `json:"legal,omitempty"`
}

func (c FooterContent) SectionType() SectionType { return SectionFooter }

func (c FooterContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Copyright, validation.Required),
		validation.Field(&c.Socials),
		validation.Field(&c.CTAButton),
		validation.Field(&c.Columns),
		validation.Field(&c.LegalLinks),
	)
}

// VideoContent embeds a single video player.
type VideoContent struct {
	VideoURL string  `json:"videoUrl"`
	Title    *string `json:"title,omitempty"`
	Autoplay bool    `json:"autoplay"`
	Controls bool    `json:"controls"`
	Width    string  `json:"width"`
	MaxWidth string  `json:"maxWidth"`
}

func defaultVideoContent() VideoContent {
	return VideoContent{Controls: true, Width: "100%", MaxWidth: "800px"}
}

func (c *VideoContent) UnmarshalJSON(data []byte) error {
	type alias VideoContent
	tmp := alias(defaultVideoContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = VideoContent(tmp)
	return nil
}

func (c VideoContent) SectionType() SectionType { return SectionVideo }

func (c VideoContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.VideoURL, validation.Required, is.URL),
	)
}

// AspectRatio constrains gallery tiles.
type AspectRatio string

const (
	AspectSquare   AspectRatio = "square"
	AspectVideo    AspectRatio = "video"
	AspectPortrait AspectRatio = "portrait"
	AspectNone     AspectRatio = "none"
)

// GalleryContent is the image grid payload.
type GalleryContent struct {
	Title       *string     `json:"title,omitempty"`
	Images      []Image     `json:"images"`
	Columns     int         `json:"columns"`
	AspectRatio AspectRatio `json:"aspectRatio"`
}

func defaultGalleryContent() GalleryContent {
	return GalleryContent{Columns: 3, AspectRatio: AspectSquare}
}

func (c *GalleryContent) UnmarshalJSON(data []byte) error {
	type alias GalleryContent
	tmp := alias(defaultGalleryContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = GalleryContent(tmp)
	return nil
}

func (c GalleryContent) SectionType() SectionType { return SectionGallery }

func (c GalleryContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Images, validation.NotNil),
		validation.Field(&c.Columns, validation.Required, validation.Min(1), validation.Max(6)),
		validation.Field(&c.AspectRatio, validation.In(AspectSquare, AspectVideo, AspectPortrait, AspectNone)),
	)
}

// VideoItem is one tile of a video gallery.
type VideoItem struct {
	VideoURL  string  `json:"videoUrl"`
	Thumbnail *string `json:"thumbnail,omitempty"`
	Title     *string `json:"title,omitempty"`
}

func (i VideoItem) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.VideoURL, validation.Required, is.URL),
		validation.Field(&i.Thumbnail, is.URL),
	)
}

// VideoGalleryContent is the video grid payload.
type VideoGalleryContent struct {
	Title       *string     `json:"title,omitempty"`
	Videos      []VideoItem `json:"videos"`
	Columns     int         `json:"columns"`
	AspectRatio AspectRatio `json:"aspectRatio"`
}

func defaultVideoGalleryContent() VideoGalleryContent {
	return VideoGalleryContent{Columns: 3, AspectRatio: AspectVideo}
}

func (c *VideoGalleryContent) UnmarshalJSON(data []byte) error {
	type alias VideoGalleryContent
	tmp := alias(defaultVideoGalleryContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = VideoGalleryContent(tmp)
	return nil
}

func (c VideoGalleryContent) SectionType() SectionType { return SectionVideoGallery }

func (c VideoGalleryContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Videos, validation.NotNil),
		validation.Field(&c.Columns, validation.Required, validation.Min(1), validation.Max(4)),
		validation.Field(&c.AspectRatio, validation.In(AspectVideo, AspectSquare, AspectPortrait)),
	)
}

// MapContent embeds a map centred on a street address.
type MapContent struct {
	Title   *string `json:"title,omitempty"`
	Address string  `json:"address"`
	Zoom    int     `json:"zoom"`
	Height  string  `json:"height"`
}

func defaultMapContent() MapContent {
	return MapContent{Zoom: 15, Height: "400px"}
}

func (c *MapContent) UnmarshalJSON(data []byte) error {
	type alias MapContent
	tmp := alias(defaultMapContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = MapContent(tmp)
	return nil
}

func (c MapContent) SectionType() SectionType { return SectionMap }

func (c MapContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Address, validation.Required),
		validation.Field(&c.Zoom, validation.Required, validation.Min(1), validation.Max(20)),
		validation.Field(&c.Height, validation.Required),
	)
}

// IframeContent embeds arbitrary external content. The URL is intentionally
// not validated as absolute so relative and scheme-less embeds keep working.
type IframeContent struct {
	URL             string  `json:"url"`
	Title           *string `json:"title,omitempty"`
	Width           string  `json:"width"`
	Height          string  `json:"height"`
	MaxWidth        string  `json:"maxWidth"`
	Border          bool    `json:"border"`
	AllowFullScreen bool    `json:"allowFullScreen"`
}

func defaultIframeContent() IframeContent {
	return IframeContent{
		Width:           "100%",
		Height:          "500px",
		MaxWidth:        "1200px",
		AllowFullScreen: true,
	}
}

func (c *IframeContent) UnmarshalJSON(data []byte) error {
	type alias IframeContent
	tmp := alias(defaultIframeContent())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = IframeContent(tmp)
	return nil
}

func (c IframeContent) SectionType() SectionType { return SectionIframe }

func (c IframeContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL, validation.Required),
	)
}
