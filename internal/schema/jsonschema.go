package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// sectionSchemas holds one compiled JSON schema per section kind, covering
// the full section envelope (id, type, content, settings). They guard raw
// editor payloads before the typed decode runs.
var (
	sectionSchemasOnce sync.Once
	sectionSchemas     map[SectionType]*jsonschema.Schema
	sectionSchemasErr  error
)

func compiledSectionSchema(t SectionType) (*jsonschema.Schema, error) {
	sectionSchemasOnce.Do(func() {
		sectionSchemas = make(map[SectionType]*jsonschema.Schema, len(SectionTypes()))
		for _, kind := range SectionTypes() {
			compiled, err := compileSchema(sectionEnvelopeSchema(kind))
			if err != nil {
				sectionSchemasErr = fmt.Errorf("schema: compile %s: %w", kind, err)
				return
			}
			sectionSchemas[kind] = compiled
		}
	})
	if sectionSchemasErr != nil {
		return nil, sectionSchemasErr
	}
	schema, ok := sectionSchemas[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSectionType, string(t))
	}
	return schema, nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

// validateSectionJSON checks a raw section payload against the JSON schema of
// its declared kind, reporting the first failing instance location.
func validateSectionJSON(data []byte) error {
	var probe struct {
		Type SectionType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return decodeError(err)
	}
	compiled, err := compiledSectionSchema(probe.Type)
	if err != nil {
		return &ValidationError{
			Path:    "type",
			Message: fmt.Sprintf("unknown section type %q", string(probe.Type)),
			Cause:   ErrUnknownSectionType,
		}
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return decodeError(err)
	}
	if err := compiled.Validate(payload); err != nil {
		return schemaIssue(err)
	}
	return nil
}

// schemaIssue converts a jsonschema validation failure into the first-leaf
// ValidationError the rest of the layer reports.
func schemaIssue(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Message: err.Error(), Cause: err}
	}
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	path := strings.Trim(leaf.InstanceLocation, "/")
	path = strings.ReplaceAll(path, "/", ".")
	return &ValidationError{
		Path:    path,
		Message: strings.TrimSpace(leaf.Message),
		Cause:   err,
	}
}

func sectionEnvelopeSchema(t SectionType) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"id", "type", "content"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1},
			"name":     map[string]any{"type": "string"},
			"type":     map[string]any{"const": string(t)},
			"content":  contentSchema(t),
			"settings": map[string]any{"$ref": "#/$defs/settings"},
		},
		"$defs": map[string]any{
			"link":     linkSchema,
			"image":    imageSchema,
			"settings": settingsSchema,
		},
	}
}

var linkSchema = map[string]any{
	"type":     "object",
	"required": []string{"text", "url"},
	"properties": map[string]any{
		"text":     map[string]any{"type": "string"},
		"url":      map[string]any{"type": "string"},
		"variant":  map[string]any{"enum": []string{"primary", "secondary", "outline", "link"}},
		"external": map[string]any{"type": "boolean"},
	},
}

var imageSchema = map[string]any{
	"type":     "object",
	"required": []string{"src", "alt"},
	"properties": map[string]any{
		"src":    map[string]any{"type": "string"},
		"alt":    map[string]any{"type": "string"},
		"width":  map[string]any{"type": "number"},
		"height": map[string]any{"type": "number"},
	},
}

var settingsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"visible":         map[string]any{"type": "boolean"},
		"paddingTop":      map[string]any{"type": "string"},
		"paddingBottom":   map[string]any{"type": "string"},
		"backgroundColor": map[string]any{"type": "string"},
		"container":       map[string]any{"type": "boolean"},
		"animation": map[string]any{
			"enum": []string{"none", "fade-in", "slide-up", "slide-left", "slide-right", "zoom-in"},
		},
		"border": map[string]any{"type": "boolean"},
		"shadow": map[string]any{"enum": []string{"none", "sm", "md", "lg"}},
	},
}

func linkArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/link"}}
}

func contentSchema(t SectionType) map[string]any {
	switch t {
	case SectionHeader:
		return map[string]any{
			"type":     "object",
			"required": []string{"links"},
			"properties": map[string]any{
				"logo":     map[string]any{"type": "string"},
				"title":    map[string]any{"type": "string"},
				"logoMode": map[string]any{"enum": []string{"text", "image", "both"}},
				"links":    linkArray(),
				"cta":      map[string]any{"$ref": "#/$defs/link"},
				"sticky":   map[string]any{"type": "boolean"},
			},
		}
	case SectionHero:
		return map[string]any{
			"type":     "object",
			"required": []string{"headline", "subheadline"},
			"properties": map[string]any{
				"headline":    map[string]any{"type": "string"},
				"subheadline": map[string]any{"type": "string"},
				"cta":         linkArray(),
				"image":       map[string]any{"$ref": "#/$defs/image"},
				"alignment":   map[string]any{"enum": []string{"left", "center", "right"}},
				"logo":        map[string]any{"type": "string"},
				"videoUrl":    map[string]any{"type": "string"},
			},
		}
	case SectionFeatures:
		return map[string]any{
			"type":     "object",
			"required": []string{"title", "features"},
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"subtitle": map[string]any{"type": "string"},
				"features": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"title", "description", "icon"},
						"properties": map[string]any{
							"title":       map[string]any{"type": "string"},
							"description": map[string]any{"type": "string"},
							"icon":        map[string]any{"type": "string"},
						},
					},
				},
				"columns": map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
			},
		}
	case SectionTestimonials:
		return map[string]any{
			"type":     "object",
			"required": []string{"title", "testimonials"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"testimonials": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"name", "content"},
						"properties": map[string]any{
							"name":    map[string]any{"type": "string"},
							"role":    map[string]any{"type": "string"},
							"avatar":  map[string]any{"type": "string"},
							"content": map[string]any{"type": "string"},
							"rating":  map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
						},
					},
				},
			},
		}
	case SectionPricing:
		return map[string]any{
			"type":     "object",
			"required": []string{"title", "plans"},
			"properties": map[string]any{
				"title":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
				"plans": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"name", "price", "cta"},
						"properties": map[string]any{
							"name":      map[string]any{"type": "string"},
							"price":     map[string]any{"type": "string"},
							"period":    map[string]any{"type": "string"},
							"features":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"cta":       map[string]any{"$ref": "#/$defs/link"},
							"highlight": map[string]any{"type": "boolean"},
						},
					},
				},
			},
		}
	case SectionCTA:
		return map[string]any{
			"type":     "object",
			"required": []string{"title", "description", "buttons"},
			"properties": map[string]any{
				"title":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
				"buttons":     linkArray(),
			},
		}
	case SectionContact:
		return map[string]any{
			"type":     "object",
			"required": []string{"title"},
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"subtitle": map[string]any{"type": "string"},
				"email":    map[string]any{"type": "string"},
				"phone":    map[string]any{"type": "string"},
				"address":  map[string]any{"type": "string"},
				"hours":    map[string]any{"type": "string"},
			},
		}
	case SectionFooter:
		return map[string]any{
			"type":     "object",
			"required": []string{"copyright"},
			"properties": map[string]any{
				"copyright": map[string]any{"type": "string"},
				"socials": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"platform", "url"},
						"properties": map[string]any{
							"platform": map[string]any{
								"enum": []string{"twitter", "facebook", "instagram", "linkedin", "github", "youtube"},
							},
							"url":     map[string]any{"type": "string"},
							"enabled": map[string]any{"type": "boolean"},
						},
					},
				},
				"ctaButton": map[string]any{"$ref": "#/$defs/link"},
				"columns": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"title", "links"},
						"properties": map[string]any{
							"title": map[string]any{"type": "string"},
							"links": linkArray(),
						},
					},
				},
				"legalLinks": linkArray(),
				"legal": map[string]any{
					"type":                 "object",
					"additionalProperties": map[string]any{"type": "string"},
				},
			},
		}
	case SectionVideo:
		return map[string]any{
			"type":     "object",
			"required": []string{"videoUrl"},
			"properties": map[string]any{
				"videoUrl": map[string]any{"type": "string"},
				"title":    map[string]any{"type": "string"},
				"autoplay": map[string]any{"type": "boolean"},
				"controls": map[string]any{"type": "boolean"},
				"width":    map[string]any{"type": "string"},
				"maxWidth": map[string]any{"type": "string"},
			},
		}
	case SectionGallery:
		return map[string]any{
			"type":     "object",
			"required": []string{"images"},
			"properties": map[string]any{
				"title":       map[string]any{"type": "string"},
				"images":      map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/image"}},
				"columns":     map[string]any{"type": "integer", "minimum": 1, "maximum": 6},
				"aspectRatio": map[string]any{"enum": []string{"square", "video", "portrait", "none"}},
			},
		}
	case SectionVideoGallery:
		return map[string]any{
			"type":     "object",
			"required": []string{"videos"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"videos": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"videoUrl"},
						"properties": map[string]any{
							"videoUrl":  map[string]any{"type": "string"},
							"thumbnail": map[string]any{"type": "string"},
							"title":     map[string]any{"type": "string"},
						},
					},
				},
				"columns":     map[string]any{"type": "integer", "minimum": 1, "maximum": 4},
				"aspectRatio": map[string]any{"enum": []string{"video", "square", "portrait"}},
			},
		}
	case SectionMap:
		return map[string]any{
			"type":     "object",
			"required": []string{"address"},
			"properties": map[string]any{
				"title":   map[string]any{"type": "string"},
				"address": map[string]any{"type": "string"},
				"zoom":    map[string]any{"type": "integer", "minimum": 1, "maximum": 20},
				"height":  map[string]any{"type": "string"},
			},
		}
	case SectionIframe:
		return map[string]any{
			"type":     "object",
			"required": []string{"url"},
			"properties": map[string]any{
				"url":             map[string]any{"type": "string"},
				"title":           map[string]any{"type": "string"},
				"width":           map[string]any{"type": "string"},
				"height":          map[string]any{"type": "string"},
				"maxWidth":        map[string]any{"type": "string"},
				"border":          map[string]any{"type": "boolean"},
				"allowFullScreen": map[string]any{"type": "boolean"},
			},
		}
	default:
		return map[string]any{"type": "object"}
	}
}
