package resume

import (
	"reflect"
	"testing"
)

func TestExtractLanguagesQualifierPerLanguage(t *testing.T) {
	got := extractLanguages("Languages\nEnglish (Fluent), Hindi (Native), Tamil\n")
	want := []string{"English (Fluent)", "Hindi (Native)", "Tamil"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("languages = %v, want %v", got, want)
	}
}

func TestExtractLanguagesLeadingQualifierNotBorrowed(t *testing.T) {
	// A qualifier before the language name belongs to nothing that follows.
	got := extractLanguages("Fluent communicator\nSpanish, German (Basic)\n")
	want := []string{"Spanish", "German (Basic)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("languages = %v, want %v", got, want)
	}
}

func TestExtractLanguagesDedupesAcrossLines(t *testing.T) {
	got := extractLanguages("English (Fluent)\nEnglish (Basic)\n")
	want := []string{"English (Fluent)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("languages = %v, want %v", got, want)
	}
}
