package message_test

import (
	"net/url"
	"strings"
	"testing"

	"rsvpsend/internal/message"
)

func TestRenderInsertsFieldsAndCutoff(t *testing.T) {
	tmpl := message.DefaultTemplate()
	got := tmpl.Render("Ana", "https://x.test/r/1")

	for _, want := range []string{"Ana", "https://x.test/r/1", "20/12/2025"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered message missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, message.PlaceholderName) || strings.Contains(got, message.PlaceholderInviteLink) {
		t.Fatalf("rendered message still has placeholders:\n%s", got)
	}
}

func TestRenderTreatsValuesAsLiterals(t *testing.T) {
	tmpl, err := message.ParseTemplate("Hi {name}, see {invite_link}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	got := tmpl.Render("{invite_link}", "https://x.test/{name}?a=%s")
	want := "Hi {invite_link}, see https://x.test/{name}?a=%s"
	if got != want {
		t.Fatalf("unexpected render: got %q want %q", got, want)
	}
}

func TestParseTemplateRejectsBadPlaceholders(t *testing.T) {
	tests := map[string]string{
		"empty":          "   ",
		"missing name":   "Visit {invite_link}",
		"missing link":   "Hello {name}",
		"duplicate link": "{name} {invite_link} {invite_link}",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := message.ParseTemplate(text); err == nil {
				t.Fatalf("expected error for %q", text)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	inputs := []string{
		message.DefaultTemplate().Render("Ana", "https://x.test/r/1"),
		"a+b & c=d?e#f/g%h",
		"línea 1\r\nlínea 2\t🎉",
		"",
	}
	for _, in := range inputs {
		encoded := message.Encode(in)
		if strings.ContainsAny(encoded, " \n\r&#+?=") {
			t.Fatalf("encoded text contains unsafe characters: %q", encoded)
		}
		decoded, err := url.PathUnescape(encoded)
		if err != nil {
			t.Fatalf("PathUnescape: %v", err)
		}
		if decoded != in {
			t.Fatalf("path round trip mismatch: got %q want %q", decoded, in)
		}
		decoded, err = url.QueryUnescape(encoded)
		if err != nil {
			t.Fatalf("QueryUnescape: %v", err)
		}
		if decoded != in {
			t.Fatalf("query round trip mismatch: got %q want %q", decoded, in)
		}
	}
}

func TestEncodeUsesPercentTwentyForSpaces(t *testing.T) {
	if got := message.Encode("a b"); got != "a%20b" {
		t.Fatalf("unexpected encoding: %q", got)
	}
	if got := message.Encode("💍"); got != "%F0%9F%92%8D" {
		t.Fatalf("unexpected emoji encoding: %q", got)
	}
}

func TestDeepLinkFormat(t *testing.T) {
	text := message.DefaultTemplate().Render("Ana", "https://x.test/r/1")
	link := message.DeepLink("web.whatsapp.com", "50433655484", message.Encode(text))

	prefix := "https://web.whatsapp.com/send?phone=50433655484&text="
	suffix := "&type=phone_number&app_absent=0"
	if !strings.HasPrefix(link, prefix) || !strings.HasSuffix(link, suffix) {
		t.Fatalf("unexpected deep link: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	query := parsed.Query()
	if query.Get("phone") != "50433655484" {
		t.Fatalf("unexpected phone: %q", query.Get("phone"))
	}
	if query.Get("text") != text {
		t.Fatalf("text did not survive query parsing:\n%q\n%q", query.Get("text"), text)
	}
	if query.Get("type") != "phone_number" || query.Get("app_absent") != "0" {
		t.Fatalf("unexpected fixed parameters: %v", query)
	}
}
