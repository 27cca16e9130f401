package i18n

import (
	"strings"
	"testing"
)

func TestLoadDefaultLanguage(t *testing.T) {
	m, err := Load("uz")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tr := m.Default()
	if tr.Lang() != "uz" {
		t.Fatalf("expected uz, got %s", tr.Lang())
	}

	if got := tr.T("onboarding.welcome"); got != "Salom! Xush kelibsiz." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUnknownLanguageFallsBackToDefault(t *testing.T) {
	m, err := Load("uz")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tr := m.Translator("fr")
	if tr.Lang() != "uz" {
		t.Fatalf("expected fallback to uz, got %s", tr.Lang())
	}
}

func TestMissingKeyReturnsKey(t *testing.T) {
	m, err := Load("uz")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := m.Default().T("no.such.key"); got != "no.such.key" {
		t.Fatalf("expected key passthrough, got %q", got)
	}
}

func TestTfFormatsArguments(t *testing.T) {
	m, err := Load("uz")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := m.Default().Tf("admin.broadcast_done", 3, 2)
	if !strings.Contains(got, "3") || !strings.Contains(got, "2") {
		t.Fatalf("expected formatted tallies, got %q", got)
	}
}

func TestMissingDefaultLanguageFails(t *testing.T) {
	if _, err := Load("de"); err == nil {
		t.Fatal("expected error for missing default language")
	}
}

func TestEveryUzbekKeyHasEnglishCounterpart(t *testing.T) {
	m, err := Load("uz")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	uz := m.translations["uz"]
	en := m.translations["en"]
	for key := range uz {
		if _, ok := en[key]; !ok {
			t.Errorf("key %q missing from en catalog", key)
		}
	}
}
