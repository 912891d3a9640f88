package defaults

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/goliatone/go-landing/internal/schema"
)

//go:embed default-config.json
var templateJSON []byte

var (
	once        sync.Once
	template    *schema.Config
	templateErr error
)

// Document returns a deep copy of the bundled default document. When the
// embedded template is missing or malformed it degrades to an empty-but-valid
// document and reports the template error alongside, so callers can log the
// degradation without failing startup.
func Document() (*schema.Config, error) {
	once.Do(func() {
		template, templateErr = schema.Validate(templateJSON)
		if templateErr != nil {
			template = Fallback()
		}
	})
	copied, err := clone(template)
	if err != nil {
		return Fallback(), err
	}
	return copied, templateErr
}

// Raw returns the template serialized as JSON, ready for gateway writes.
func Raw() (json.RawMessage, error) {
	doc, err := Document()
	if err != nil && doc == nil {
		return nil, err
	}
	encoded, marshalErr := json.Marshal(doc)
	if marshalErr != nil {
		return nil, marshalErr
	}
	return encoded, err
}

// Fallback returns the minimal valid document used when the bundled template
// cannot be loaded.
func Fallback() *schema.Config {
	return &schema.Config{
		Meta: schema.Meta{
			Title:        "Landing Page",
			Description:  "Landing page configuration",
			Robots:       "index, follow",
			BusinessType: "LocalBusiness",
		},
		Theme: schema.Theme{
			Colors: schema.ThemeColors{
				Primary:    "#3b82f6",
				Secondary:  "#10b981",
				Background: "#ffffff",
				Text:       "#1f2937",
			},
			Fonts: schema.ThemeFonts{
				Heading: "Inter",
				Body:    "Inter",
			},
		},
		Sections: []schema.Section{},
	}
}

func clone(cfg *schema.Config) (*schema.Config, error) {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var out schema.Config
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
