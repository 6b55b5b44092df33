package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestResumeTextPlainPassesThrough(t *testing.T) {
	text, err := ResumeText(context.Background(), []byte("10 years of Go"), "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("ResumeText: %v", err)
	}
	if text != "10 years of Go" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestResumeTextSniffsOctetStream(t *testing.T) {
	text, err := ResumeText(context.Background(), []byte("plain resume body"), "application/octet-stream", "resume")
	if err != nil {
		t.Fatalf("expected text sniff to succeed, got %v", err)
	}
	if !strings.Contains(text, "resume body") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestResumeTextMapsPdfExtension(t *testing.T) {
	// Not a real PDF, so extraction must fail after the type is resolved,
	// proving the extension mapping routed it to the PDF path.
	_, err := ResumeText(context.Background(), []byte("not a pdf"), "application/octet-stream", "resume.pdf")
	if err == nil {
		t.Fatal("expected pdf parse error")
	}
	if errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected a parse error, not ErrUnsupported: %v", err)
	}
}

func TestResumeTextRejectsBinaryGarbage(t *testing.T) {
	_, err := ResumeText(context.Background(), []byte{0x00, 0x01, 0xff, 0xfe}, "application/x-msdownload", "resume.exe")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestResumeTextRejectsEmptyPayload(t *testing.T) {
	_, err := ResumeText(context.Background(), nil, "application/pdf", "resume.pdf")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
