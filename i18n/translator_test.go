package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("required", nil); msg == "required" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("required", nil); msg == "required field missing" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T("invalid_enum", map[string]string{"value": `"curved"`, "allowed": "[movement pass]"})
	want := `value "curved" is not one of [movement pass]`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("unknown code should echo, got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("required", nil); got != "X-required" {
		t.Fatalf("custom translator not used: %q", got)
	}
}
