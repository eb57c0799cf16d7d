package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func sampleDocument(t *testing.T) Document {
	t.Helper()

	raw := `{
		"default": {
			"title": {"value": "Test Dataset Title"},
			"description": {"value": "<p>Test description with HTML</p>"},
			"keyword": {"value": ["Test", "sample", "data"]},
			"language": {"value": "de"},
			"publisher": {"value": "DCC Data Competence Center"}
		},
		"internal": {
			"license_id": {"value": "5sylls5"}
		},
		"dcat": {
			"temporal_coverage_start_date": {"value": "2020-01-01"},
			"temporal_coverage_end_date": {"value": "2020-12-31"}
		}
	}`

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decode sample document: %v", err)
	}
	return doc
}

func TestDocumentGet(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)

	title, ok := doc.Title()
	if !ok || title != "Test Dataset Title" {
		t.Fatalf("unexpected title: %q ok=%v", title, ok)
	}

	keywords, ok := doc.Keywords()
	if !ok || !reflect.DeepEqual(keywords, []string{"Test", "sample", "data"}) {
		t.Fatalf("unexpected keywords: %v ok=%v", keywords, ok)
	}

	start, end := doc.TemporalPeriod()
	if start != "2020-01-01" || end != "2020-12-31" {
		t.Fatalf("unexpected temporal period: %q %q", start, end)
	}

	if _, ok := doc.Get("default", "theme_id"); ok {
		t.Fatalf("absent field must report ok=false")
	}
	if _, ok := doc.Get("nonexistent", "title"); ok {
		t.Fatalf("absent template must report ok=false")
	}
}

func TestDocumentSetCreatesTemplateAndField(t *testing.T) {
	t.Parallel()

	doc := Document{}
	doc.Set(TemplateDefault, FieldTitle, "New Title")

	title, ok := doc.Title()
	if !ok || title != "New Title" {
		t.Fatalf("unexpected title after set: %q ok=%v", title, ok)
	}

	// Setting the same value twice must not accumulate anything.
	doc.Set(TemplateDefault, FieldTitle, "New Title")
	if len(doc[TemplateDefault][FieldTitle]) != 1 {
		t.Fatalf("wrapper grew on repeated set: %v", doc[TemplateDefault][FieldTitle])
	}
}

func TestDocumentSetPreservesWrapperSiblings(t *testing.T) {
	t.Parallel()

	doc := Document{
		TemplateDefault: Template{
			FieldModified: FieldWrapper{"value": "2026-02-06", "override_remote_metadata": true},
		},
	}
	doc.Set(TemplateDefault, FieldModified, "2026-03-01")

	wrapper := doc[TemplateDefault][FieldModified]
	if wrapper["override_remote_metadata"] != true {
		t.Fatalf("wrapper sibling key lost: %v", wrapper)
	}
	if wrapper["value"] != "2026-03-01" {
		t.Fatalf("value not updated: %v", wrapper)
	}
}

func TestDocumentTemplatesSorted(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)
	got := doc.Templates()
	want := []string{"dcat", "default", "internal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("templates: got %v want %v", got, want)
	}
}
