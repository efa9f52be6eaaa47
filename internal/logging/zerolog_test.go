package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologLogger_WritesFieldsAndMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))

	log.Info(context.Background(), "session refreshed", "email", "a@b.c")

	out := buf.String()
	for _, s := range []string{`"message":"session refreshed"`, `"email":"a@b.c"`, `"level":"info"`} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %q in output, got:\n%s", s, out)
		}
	}
}

func TestZerologLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf)).With("component", "otp")

	log.Warn(context.Background(), "resend blocked")

	out := buf.String()
	if !strings.Contains(out, `"component":"otp"`) {
		t.Fatalf("expected component attribute, got:\n%s", out)
	}
}

func TestParseLevel_Fallback(t *testing.T) {
	if parseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatalf("unrecognised level should fall back to info")
	}
}
