package store

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/defaults"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/schema"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// IDGenerator produces section IDs for duplication.
type IDGenerator func() string

// Option configures the store during construction.
type Option func(*Store)

// WithLoggerProvider attaches a logger provider to the store.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Store) {
		if provider != nil {
			s.logger = logging.StoreLogger(provider)
		}
	}
}

// WithCachePath enables the local snapshot mirror at path. The snapshot is
// loaded during construction and rewritten after every mutation.
func WithCachePath(path string) Option {
	return func(s *Store) {
		s.cachePath = path
	}
}

// WithRemoteURL sets the config API base URL used by FetchRemoteConfig.
func WithRemoteURL(url string) Option {
	return func(s *Store) {
		s.remoteURL = url
	}
}

// WithHTTPClient overrides the HTTP client used by FetchRemoteConfig.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.client = client
		}
	}
}

// WithIDGenerator overrides the section ID generator.
func WithIDGenerator(generator IDGenerator) Option {
	return func(s *Store) {
		if generator != nil {
			s.id = generator
		}
	}
}

// Store holds the current in-memory document for one session and exposes
// atomic, id-addressed mutation operations. It is the source of truth for
// the editor and renderer within one running client; durable persistence
// goes through the gateway on explicit publish, not through the store.
type Store struct {
	mu        sync.RWMutex
	config    *schema.Config
	cachePath string
	remoteURL string
	client    *http.Client
	id        IDGenerator
	logger    interfaces.Logger
}

// New constructs a store initialized from the local cache snapshot when one
// exists and is valid, otherwise from the bundled default document.
func New(opts ...Option) *Store {
	s := &Store{
		client: &http.Client{Timeout: 10 * time.Second},
		id:     func() string { return uuid.NewString() },
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if cached, ok := s.loadCache(); ok {
		s.config = cached
		return s
	}

	doc, err := defaults.Document()
	if err != nil {
		s.logger.Warn("default template degraded", "error", err)
	}
	s.config = doc
	return s
}

// Config returns a deep copy of the current document.
func (s *Store) Config() *schema.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConfig(s.config)
}

// SetConfig replaces the whole document verbatim. The caller is responsible
// for validating first; the store applies no schema checks of its own.
func (s *Store) SetConfig(cfg *schema.Config) {
	if cfg == nil {
		s.logger.Warn("set config ignored nil document")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cloneConfig(cfg)
	s.writeCacheLocked()
}

// UpdateSection shallow-merges patch into the section matching id, at the top
// level of the section object. A content patch must carry the full new
// content object. Missing ids are a logged no-op.
func (s *Store) UpdateSection(id string, patch json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.logger.Debug("update section skipped, id not found", "section_id", id)
		return
	}

	// IDs and the type discriminant are immutable once a section exists; a
	// patch carrying either is merged without them so it can neither rename
	// a section nor re-decode its content as another kind.
	sanitized, err := dropKeys(patch, "id", "type")
	if err != nil {
		s.logger.Warn("update section patch rejected", "section_id", id, "error", err)
		return
	}

	var merged schema.Section
	if err := mergeShallow(s.config.Sections[idx], sanitized, &merged); err != nil {
		s.logger.Warn("update section patch rejected", "section_id", id, "error", err)
		return
	}
	s.config.Sections[idx] = merged
	s.writeCacheLocked()
}

// UpdateSectionContent replaces the content sub-object of the section
// matching id, leaving settings untouched. Content whose discriminant
// disagrees with the section's declared type is rejected.
func (s *Store) UpdateSectionContent(id string, content schema.SectionContent) {
	if content == nil {
		s.logger.Warn("update section content ignored nil content", "section_id", id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.logger.Debug("update section content skipped, id not found", "section_id", id)
		return
	}
	if content.SectionType() != s.config.Sections[idx].Type {
		s.logger.Warn("update section content rejected, type mismatch",
			"section_id", id,
			"section_type", string(s.config.Sections[idx].Type),
			"content_type", string(content.SectionType()),
		)
		return
	}

	s.config.Sections[idx].Content = content
	s.writeCacheLocked()
}

// UpdateSectionSettings shallow-merges partial into the settings sub-object
// of the section matching id, leaving content untouched.
func (s *Store) UpdateSectionSettings(id string, partial json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.logger.Debug("update section settings skipped, id not found", "section_id", id)
		return
	}

	var merged schema.SectionSettings
	if err := mergeShallow(s.config.Sections[idx].Settings, partial, &merged); err != nil {
		s.logger.Warn("update section settings patch rejected", "section_id", id, "error", err)
		return
	}
	s.config.Sections[idx].Settings = merged
	s.writeCacheLocked()
}

// AddSection appends the section to the end of the sequence. The caller
// supplies a pre-generated unique id; the store does not generate or dedupe
// ids itself.
func (s *Store) AddSection(section schema.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfLocked(section.ID) >= 0 {
		s.logger.Warn("add section received duplicate id", "section_id", section.ID)
	}
	s.config.Sections = append(s.config.Sections, section)
	s.writeCacheLocked()
}

// DuplicateSection clones the section matching id under a freshly generated
// id, inserted immediately after the original. It returns the new id, or the
// empty string when id was not found.
func (s *Store) DuplicateSection(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.logger.Debug("duplicate section skipped, id not found", "section_id", id)
		return ""
	}

	copied, err := s.config.Sections[idx].Clone()
	if err != nil {
		s.logger.Warn("duplicate section clone failed", "section_id", id, "error", err)
		return ""
	}
	copied.ID = s.id()

	sections := s.config.Sections
	sections = append(sections[:idx+1], append([]schema.Section{copied}, sections[idx+1:]...)...)
	s.config.Sections = sections
	s.writeCacheLocked()
	return copied.ID
}

// RemoveSection filters out the section matching id. Missing ids are a
// logged no-op.
func (s *Store) RemoveSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.logger.Debug("remove section skipped, id not found", "section_id", id)
		return
	}

	s.config.Sections = append(s.config.Sections[:idx], s.config.Sections[idx+1:]...)
	s.writeCacheLocked()
}

// ReorderSections moves the section at activeID's index to overID's index.
// Sections between the two indices shift by one; no ids are created or
// destroyed. A missing id on either side is a logged no-op.
func (s *Store) ReorderSections(activeID, overID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.indexOfLocked(activeID)
	to := s.indexOfLocked(overID)
	if from < 0 || to < 0 {
		s.logger.Debug("reorder skipped, id not found",
			"active_id", activeID,
			"over_id", overID,
		)
		return
	}
	if from == to {
		return
	}

	sections := s.config.Sections
	moved := sections[from]
	sections = append(sections[:from], sections[from+1:]...)
	sections = append(sections[:to], append([]schema.Section{moved}, sections[to:]...)...)
	s.config.Sections = sections
	s.writeCacheLocked()
}

// UpdateTheme shallow-merges patch into the theme, with the colors and fonts
// sub-objects merged one level deeper so a caller can patch a single color
// without clobbering the rest.
func (s *Store) UpdateTheme(patch json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	adjusted, err := mergeNestedKeys(s.config.Theme, patch, "colors", "fonts")
	if err != nil {
		s.logger.Warn("update theme patch rejected", "error", err)
		return
	}

	var merged schema.Theme
	if err := mergeShallow(s.config.Theme, adjusted, &merged); err != nil {
		s.logger.Warn("update theme patch rejected", "error", err)
		return
	}
	s.config.Theme = merged
	s.writeCacheLocked()
}

// UpdateMeta shallow-merges patch into the meta object.
func (s *Store) UpdateMeta(patch json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var merged schema.Meta
	if err := mergeShallow(s.config.Meta, patch, &merged); err != nil {
		s.logger.Warn("update meta patch rejected", "error", err)
		return
	}
	s.config.Meta = merged
	s.writeCacheLocked()
}

// UpdateWhatsApp shallow-merges patch into the WhatsApp config, starting from
// the disabled default when the document has none yet.
func (s *Store) UpdateWhatsApp(patch json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := schema.DefaultWhatsApp()
	if s.config.WhatsApp != nil {
		base = *s.config.WhatsApp
	}

	var merged schema.WhatsApp
	if err := mergeShallow(base, patch, &merged); err != nil {
		s.logger.Warn("update whatsapp patch rejected", "error", err)
		return
	}
	s.config.WhatsApp = &merged
	s.writeCacheLocked()
}

// ResetToDefault replaces the whole document with the bundled default.
func (s *Store) ResetToDefault() {
	doc, err := defaults.Document()
	if err != nil {
		s.logger.Warn("default template degraded", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = doc
	s.writeCacheLocked()
}

func (s *Store) indexOfLocked(id string) int {
	for i, section := range s.config.Sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

func cloneConfig(cfg *schema.Config) *schema.Config {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return cfg
	}
	var out schema.Config
	if err := json.Unmarshal(encoded, &out); err != nil {
		return cfg
	}
	return &out
}

// mergeShallow overlays the top-level keys of patch onto base and decodes the
// result into out. Keys absent from patch keep their base value; there is no
// deep merge beyond this one level.
func mergeShallow(base any, patch json.RawMessage, out any) error {
	encoded, err := json.Marshal(base)
	if err != nil {
		return err
	}

	baseMap := map[string]json.RawMessage{}
	if err := json.Unmarshal(encoded, &baseMap); err != nil {
		return err
	}

	patchMap := map[string]json.RawMessage{}
	if len(patch) > 0 {
		if err := json.Unmarshal(patch, &patchMap); err != nil {
			return err
		}
	}

	for key, value := range patchMap {
		baseMap[key] = value
	}

	merged, err := json.Marshal(baseMap)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, out)
}

// dropKeys removes the named top-level keys from a JSON object patch.
func dropKeys(patch json.RawMessage, keys ...string) (json.RawMessage, error) {
	if len(patch) == 0 {
		return patch, nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, err
	}
	for _, key := range keys {
		delete(fields, key)
	}
	return json.Marshal(fields)
}

// mergeNestedKeys pre-merges the named sub-objects of patch against their
// base counterparts, so the subsequent shallow merge replaces them with the
// combined value instead of the patch fragment alone.
func mergeNestedKeys(base any, patch json.RawMessage, keys ...string) (json.RawMessage, error) {
	if len(patch) == 0 {
		return patch, nil
	}

	patchMap := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &patchMap); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	baseMap := map[string]json.RawMessage{}
	if err := json.Unmarshal(encoded, &baseMap); err != nil {
		return nil, err
	}

	for _, key := range keys {
		fragment, ok := patchMap[key]
		if !ok {
			continue
		}
		nested := map[string]json.RawMessage{}
		if current, ok := baseMap[key]; ok && len(current) > 0 {
			if err := json.Unmarshal(current, &nested); err != nil {
				return nil, err
			}
		}
		overlay := map[string]json.RawMessage{}
		if err := json.Unmarshal(fragment, &overlay); err != nil {
			return nil, err
		}
		for k, v := range overlay {
			nested[k] = v
		}
		combined, err := json.Marshal(nested)
		if err != nil {
			return nil, err
		}
		patchMap[key] = combined
	}

	return json.Marshal(patchMap)
}
