package prompt

import (
	"strings"
	"testing"
)

type sampleOut struct {
	Heading  string   `json:"heading" prompt_desc:"main headline"`
	Keywords []string `json:"keywords" prompt:"optional"`
	Internal string   `json:"-"`
	hidden   int
}

func TestFieldsFromStruct(t *testing.T) {
	fields, err := FieldsFromStruct(sampleOut{})
	if err != nil {
		t.Fatalf("FieldsFromStruct() error = %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("fields = %+v, want 2 entries", fields)
	}
	if fields[0].Name != "heading" || !fields[0].Required || fields[0].Description != "main headline" {
		t.Fatalf("heading field = %+v", fields[0])
	}
	if fields[1].Name != "keywords" || fields[1].Required || fields[1].Type != "[]string" {
		t.Fatalf("keywords field = %+v", fields[1])
	}
}

func TestRenderSections(t *testing.T) {
	spec := ApplyPresets(Spec{
		Purpose:      "Test purpose.",
		OutputFields: MustFieldsFromStruct(sampleOut{}),
		Rules:        []string{"Be brief."},
		OutputFormat: "JSON only.",
	}, PresetStrictJSON())

	out, err := spec.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"[PURPOSE]", "[OUTPUT]", "[CONSTRAINTS]", "[RULES]", "Return strict JSON only."} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered prompt missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[ASSUMPTIONS]") {
		t.Fatal("empty section should be omitted")
	}
}

func TestRenderRequiresPurposeAndFields(t *testing.T) {
	if _, err := (Spec{OutputFields: MustFieldsFromStruct(sampleOut{})}).Render(); err == nil {
		t.Fatal("expected error for empty purpose")
	}
	if _, err := (Spec{Purpose: "p"}).Render(); err == nil {
		t.Fatal("expected error for empty fields")
	}
}
