package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrUnknownSectionType  = errors.New("schema: unknown section type")
	ErrDuplicateSectionID  = errors.New("schema: duplicate section id")
	ErrSectionIDRequired   = errors.New("schema: section id is required")
	ErrContentTypeMismatch = errors.New("schema: content does not match section type")
)

// ValidationError reports the first failing field path together with a
// human-readable message. Multi-error aggregation is intentionally not
// attempted; callers surface one issue at a time.
type ValidationError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "schema: validation failed"
	}
	if e.Path == "" {
		return "schema: " + e.Message
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// IsValidationError reports whether err originated from schema validation.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Validate decodes untrusted JSON into a Config, filling declared defaults,
// and enforces every schema rule. It is a pure function over the input.
func Validate(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, decodeError(err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig enforces the schema rules on an already-decoded document:
// required meta/theme fields, per-section content and settings rules, and
// section ID uniqueness.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Message: "document is empty"}
	}
	if err := cfg.Meta.Validate(); err != nil {
		return ruleError("meta", err)
	}
	if err := cfg.Theme.Validate(); err != nil {
		return ruleError("theme", err)
	}
	if cfg.WhatsApp != nil {
		if err := cfg.WhatsApp.Validate(); err != nil {
			return ruleError("whatsapp", err)
		}
	}

	seen := make(map[string]struct{}, len(cfg.Sections))
	for i := range cfg.Sections {
		prefix := fmt.Sprintf("sections.%d", i)
		if err := validateSection(&cfg.Sections[i]); err != nil {
			return prefixError(prefix, err)
		}
		id := cfg.Sections[i].ID
		if _, dup := seen[id]; dup {
			return &ValidationError{
				Path:    prefix + ".id",
				Message: fmt.Sprintf("id %q is already used by another section", id),
				Cause:   ErrDuplicateSectionID,
			}
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ValidateSection decodes and validates one raw section payload. The editor
// round-trips single sections through this so one broken section does not
// invalidate the whole document in the UI.
func ValidateSection(data []byte) (*Section, error) {
	if err := validateSectionJSON(data); err != nil {
		return nil, err
	}
	var sec Section
	if err := json.Unmarshal(data, &sec); err != nil {
		return nil, decodeError(err)
	}
	if err := validateSection(&sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// ValidateSettings decodes and validates a raw settings payload on its own.
// Settings are independent of content, so a section whose content no longer
// decodes can still have its visibility or spacing adjusted.
func ValidateSettings(data []byte) (*SectionSettings, error) {
	settings := DefaultSettings()
	if len(data) > 0 {
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, decodeError(err)
		}
	}
	if err := settings.Validate(); err != nil {
		return nil, ruleError("settings", err)
	}
	return &settings, nil
}

func validateSection(sec *Section) error {
	if sec == nil {
		return &ValidationError{Message: "section is empty"}
	}
	if strings.TrimSpace(sec.ID) == "" {
		return &ValidationError{Path: "id", Message: "cannot be blank", Cause: ErrSectionIDRequired}
	}
	if sec.Content == nil {
		return &ValidationError{Path: "content", Message: "cannot be blank"}
	}
	if _, err := NewContent(sec.Type); err != nil {
		return &ValidationError{
			Path:    "type",
			Message: fmt.Sprintf("unknown section type %q", string(sec.Type)),
			Cause:   ErrUnknownSectionType,
		}
	}
	if sec.Content.SectionType() != sec.Type {
		return &ValidationError{
			Path: "content",
			Message: fmt.Sprintf("content shape %q does not match declared type %q",
				string(sec.Content.SectionType()), string(sec.Type)),
			Cause: ErrContentTypeMismatch,
		}
	}
	if err := sec.Settings.Validate(); err != nil {
		return ruleError("settings", err)
	}
	if err := sec.Content.Validate(); err != nil {
		return ruleError("content", err)
	}
	return nil
}

// decodeError converts JSON decoding failures into the validation taxonomy,
// keeping the original error reachable through errors.Is/As.
func decodeError(err error) error {
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type.String(), typeErr.Value),
			Cause:   err,
		}
	}
	return &ValidationError{Message: err.Error(), Cause: err}
}

// ruleError lifts the first issue out of an ozzo validation result, joining
// nested error keys into a dotted field path under the given prefix.
func ruleError(prefix string, err error) error {
	if err == nil {
		return nil
	}
	path, message := firstIssue(err)
	full := prefix
	if path != "" {
		full = prefix + "." + path
	}
	return &ValidationError{Path: full, Message: message, Cause: err}
}

// prefixError reattaches an outer path segment to an inner ValidationError.
func prefixError(prefix string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		full := prefix
		if verr.Path != "" {
			full = prefix + "." + verr.Path
		}
		return &ValidationError{Path: full, Message: verr.Message, Cause: verr.Cause}
	}
	return &ValidationError{Path: prefix, Message: err.Error(), Cause: err}
}

// firstIssue walks nested ozzo error maps and returns one deterministic
// failing field path (alphabetical within each level) and its message.
func firstIssue(err error) (string, string) {
	errs, ok := err.(validation.Errors)
	if !ok {
		return "", err.Error()
	}
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		inner := errs[key]
		if inner == nil {
			continue
		}
		path, message := firstIssue(inner)
		if path != "" {
			return key + "." + path, message
		}
		return key, message
	}
	return "", err.Error()
}
