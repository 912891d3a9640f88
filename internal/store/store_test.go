package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-landing/internal/schema"
)

func TestSetConfigReplacesDocument(t *testing.T) {
	s := New()

	cfg := s.Config()
	cfg.Meta.Title = "Replaced"
	s.SetConfig(cfg)

	if got := s.Config().Meta.Title; got != "Replaced" {
		t.Fatalf("Config().Meta.Title = %q, want %q", got, "Replaced")
	}

	// The returned copy must be isolated from the store.
	out := s.Config()
	out.Meta.Title = "Mutated"
	if got := s.Config().Meta.Title; got != "Replaced" {
		t.Fatalf("store mutated through returned copy: %q", got)
	}
}

func TestUpdateSectionShallowMerge(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`, `cta-1`))

	s.UpdateSection("hero-1", json.RawMessage(`{"name":"Renamed hero"}`))

	section := findSection(t, s, "hero-1")
	if section.Name == nil || *section.Name != "Renamed hero" {
		t.Fatalf("section name = %v, want Renamed hero", section.Name)
	}
	if section.Type != schema.SectionHero {
		t.Fatalf("section type changed to %q", section.Type)
	}
}

func TestUpdateSectionPreservesID(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))

	s.UpdateSection("hero-1", json.RawMessage(`{"id":"hijacked"}`))

	if len(s.Config().Sections) != 1 || s.Config().Sections[0].ID != "hero-1" {
		t.Fatalf("section id mutated: %+v", s.Config().Sections)
	}
}

func TestUpdateSectionPreservesType(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))

	s.UpdateSection("hero-1", json.RawMessage(`{"type":"cta","name":"Still a hero"}`))

	section := findSection(t, s, "hero-1")
	if section.Type != schema.SectionHero {
		t.Fatalf("section type mutated to %q", section.Type)
	}
	if _, ok := section.Content.(*schema.HeroContent); !ok {
		t.Fatalf("content re-decoded as %T", section.Content)
	}
	if section.Name == nil || *section.Name != "Still a hero" {
		t.Fatalf("remaining patch keys dropped: name = %v", section.Name)
	}
}

func TestUpdateSectionMissingIDIsNoOp(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))
	before := s.Config()

	s.UpdateSection("missing", json.RawMessage(`{"name":"x"}`))

	if !equalDocs(t, before, s.Config()) {
		t.Fatal("document changed for missing section id")
	}
}

func TestUpdateSectionContent(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))

	content := &schema.HeroContent{Headline: "New headline"}
	s.UpdateSectionContent("hero-1", content)

	section := findSection(t, s, "hero-1")
	hero, ok := section.Content.(*schema.HeroContent)
	if !ok {
		t.Fatalf("content type = %T, want *schema.HeroContent", section.Content)
	}
	if hero.Headline != "New headline" {
		t.Fatalf("headline = %q, want New headline", hero.Headline)
	}
}

func TestUpdateSectionContentRejectsTypeMismatch(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))

	s.UpdateSectionContent("hero-1", &schema.CTAContent{Title: "wrong shape"})

	section := findSection(t, s, "hero-1")
	if _, ok := section.Content.(*schema.HeroContent); !ok {
		t.Fatalf("content replaced with mismatched type %T", section.Content)
	}
}

func TestUpdateSectionSettingsLeavesContent(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))
	original := findSection(t, s, "hero-1")

	s.UpdateSectionSettings("hero-1", json.RawMessage(`{"visible":false,"backgroundColor":"dark"}`))

	section := findSection(t, s, "hero-1")
	if section.Settings.Visible {
		t.Fatal("visible = true, want false")
	}
	if section.Settings.BackgroundColor != "dark" {
		t.Fatalf("backgroundColor = %q, want dark", section.Settings.BackgroundColor)
	}
	if section.Settings.PaddingTop != original.Settings.PaddingTop {
		t.Fatalf("unpatched setting changed: %q", section.Settings.PaddingTop)
	}
	if _, ok := section.Content.(*schema.HeroContent); !ok {
		t.Fatalf("content disturbed by settings patch: %T", section.Content)
	}
}

func TestAddAndRemoveSection(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`))

	s.AddSection(newSection(t, "cta-9", schema.SectionCTA))
	if ids := sectionIDs(s); len(ids) != 2 || ids[1] != "cta-9" {
		t.Fatalf("sections after add = %v", ids)
	}

	s.RemoveSection("hero-1")
	if ids := sectionIDs(s); len(ids) != 1 || ids[0] != "cta-9" {
		t.Fatalf("sections after remove = %v", ids)
	}

	s.RemoveSection("missing")
	if ids := sectionIDs(s); len(ids) != 1 {
		t.Fatalf("remove of missing id changed sections: %v", ids)
	}
}

func TestDuplicateSectionInsertsAfterOriginal(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `hero-1`, `cta-1`))

	newID := s.DuplicateSection("hero-1")
	if newID == "" {
		t.Fatal("DuplicateSection() returned empty id")
	}
	if newID == "hero-1" {
		t.Fatal("DuplicateSection() reused the original id")
	}

	ids := sectionIDs(s)
	want := []string{"hero-1", newID, "cta-1"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("sections = %v, want %v", ids, want)
		}
	}

	if got := s.DuplicateSection("missing"); got != "" {
		t.Fatalf("DuplicateSection(missing) = %q, want empty", got)
	}
}

func TestReorderSectionsIsArrayMove(t *testing.T) {
	s := New()
	s.SetConfig(docWithSections(t, `a`, `b`, `c`, `d`))

	s.ReorderSections("a", "c")
	if ids := sectionIDs(s); ids[0] != "b" || ids[1] != "c" || ids[2] != "a" || ids[3] != "d" {
		t.Fatalf("sections after move down = %v", ids)
	}

	s.ReorderSections("d", "b")
	if ids := sectionIDs(s); ids[0] != "d" || ids[1] != "b" || ids[2] != "c" || ids[3] != "a" {
		t.Fatalf("sections after move up = %v", ids)
	}

	before := sectionIDs(s)
	s.ReorderSections("missing", "b")
	s.ReorderSections("b", "missing")
	after := sectionIDs(s)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("reorder with missing id changed order: %v", after)
		}
	}
}

func TestUpdateThemeMergesNestedColors(t *testing.T) {
	s := New()
	base := s.Config()
	base.Theme.Colors.Primary = "#111111"
	base.Theme.Colors.Secondary = "#222222"
	s.SetConfig(base)

	s.UpdateTheme(json.RawMessage(`{"colors":{"primary":"#ff0000"}}`))

	theme := s.Config().Theme
	if theme.Colors.Primary != "#ff0000" {
		t.Fatalf("primary = %q, want #ff0000", theme.Colors.Primary)
	}
	if theme.Colors.Secondary != "#222222" {
		t.Fatalf("secondary clobbered: %q", theme.Colors.Secondary)
	}
	if theme.Fonts.Heading != base.Theme.Fonts.Heading {
		t.Fatalf("fonts clobbered: %q", theme.Fonts.Heading)
	}
}

func TestUpdateMetaShallowMerge(t *testing.T) {
	s := New()

	s.UpdateMeta(json.RawMessage(`{"title":"Patched title"}`))

	meta := s.Config().Meta
	if meta.Title != "Patched title" {
		t.Fatalf("title = %q, want Patched title", meta.Title)
	}
	if meta.Robots != "index, follow" {
		t.Fatalf("robots lost its default: %q", meta.Robots)
	}
}

func TestUpdateWhatsAppFromAbsent(t *testing.T) {
	s := New()
	base := s.Config()
	base.WhatsApp = nil
	s.SetConfig(base)

	s.UpdateWhatsApp(json.RawMessage(`{"enabled":true,"number":"+1555"}`))

	wa := s.Config().WhatsApp
	if wa == nil {
		t.Fatal("whatsapp still absent after patch")
	}
	if !wa.Enabled || wa.Number != "+1555" {
		t.Fatalf("whatsapp = %+v", wa)
	}
	if wa.Position != schema.PositionBottomRight {
		t.Fatalf("position = %q, want default bottom-right", wa.Position)
	}
}

func TestResetToDefault(t *testing.T) {
	s := New()
	defaultDoc := s.Config()

	mutated := s.Config()
	mutated.Meta.Title = "Changed"
	mutated.Sections = nil
	s.SetConfig(mutated)

	s.ResetToDefault()

	if !equalDocs(t, defaultDoc, s.Config()) {
		t.Fatal("reset did not restore the default document")
	}
}

func TestCacheSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	first := New(WithCachePath(path))
	doc := first.Config()
	doc.Meta.Title = "Cached title"
	first.SetConfig(doc)

	second := New(WithCachePath(path))
	if got := second.Config().Meta.Title; got != "Cached title" {
		t.Fatalf("restored title = %q, want Cached title", got)
	}
}

func TestFetchRemoteConfigReplacesOnSuccess(t *testing.T) {
	remote := New()
	doc := remote.Config()
	doc.Meta.Title = "Remote title"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"config": doc})
	}))
	t.Cleanup(server.Close)

	s := New(WithRemoteURL(server.URL))
	s.FetchRemoteConfig(context.Background())

	if got := s.Config().Meta.Title; got != "Remote title" {
		t.Fatalf("title after refresh = %q, want Remote title", got)
	}
}

func TestFetchRemoteConfigKeepsDocumentOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	s := New(WithRemoteURL(server.URL))
	before := s.Config()

	s.FetchRemoteConfig(context.Background())

	if !equalDocs(t, before, s.Config()) {
		t.Fatal("failed refresh replaced the document")
	}
}

func docWithSections(t *testing.T, ids ...string) *schema.Config {
	t.Helper()

	cfg := New().Config()
	cfg.Sections = nil
	for _, id := range ids {
		sectionType := schema.SectionHero
		if id == `cta-1` || id == `cta-9` {
			sectionType = schema.SectionCTA
		}
		cfg.Sections = append(cfg.Sections, newSection(t, id, sectionType))
	}
	return cfg
}

func newSection(t *testing.T, id string, sectionType schema.SectionType) schema.Section {
	t.Helper()

	raw := []byte(`{"id":"` + id + `","type":"` + string(sectionType) + `","content":{},"settings":{}}`)
	var section schema.Section
	if err := json.Unmarshal(raw, &section); err != nil {
		t.Fatalf("build section %q: %v", id, err)
	}
	return section
}

func findSection(t *testing.T, s *Store, id string) schema.Section {
	t.Helper()

	for _, section := range s.Config().Sections {
		if section.ID == id {
			return section
		}
	}
	t.Fatalf("section %q not found", id)
	return schema.Section{}
}

func sectionIDs(s *Store) []string {
	sections := s.Config().Sections
	ids := make([]string, len(sections))
	for i, section := range sections {
		ids[i] = section.ID
	}
	return ids
}

func equalDocs(t *testing.T, a, b *schema.Config) bool {
	t.Helper()

	left, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	right, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(left) == string(right)
}
