package requestdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

const deployYAML = `
title: Deploy
message: Ship build 42 to production?
icon: warning
buttons:
  - id: 1000
    label: Deploy
    kind: destructive
    default: true
  - id: cancel
    cancel: true
verification: Don't ask again for this build
input:
  mode: combo
  prompt: Region
  items: [eu, us]
  value: eu
secondary:
  expanded: Changes since 41 ...
  help_link: https://example.com/deploy
timeout: 30s
timeout_button: cancel
allow_escape: false
`

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(deployYAML), "deploy.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	req, err := doc.Request()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := core.ValidateRequest(req); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(req.Buttons) != 2 || req.Buttons[0].ID != core.ButtonCustomBase || req.Buttons[0].Kind != core.KindDestructive {
		t.Fatalf("buttons = %+v", req.Buttons)
	}
	if req.Buttons[1].Label != "Cancel" || !req.Buttons[1].IsCancel {
		t.Fatalf("cancel button = %+v", req.Buttons[1])
	}
	if req.Icon != core.IconWarning || req.AllowEscapeCancel || !req.VerificationRequested() {
		t.Fatalf("flags = %+v", req)
	}
	if req.Input.Mode != core.InputCombo || req.Input.DefaultValue != "eu" || len(req.Input.Items) != 2 {
		t.Fatalf("input = %+v", req.Input)
	}
	if req.Timeout != 30*time.Second || req.TimeoutButton != core.ButtonCancel {
		t.Fatalf("timeout = %v / %v", req.Timeout, req.TimeoutButton)
	}
	if req.Secondary.HelpLink != "https://example.com/deploy" {
		t.Fatalf("secondary = %+v", req.Secondary)
	}
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"message":"Hi","buttons":[{"id":"yes"},{"id":"no"}]}`), "hi.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	req, _ := doc.Request()
	if len(req.Buttons) != 2 || req.Buttons[0].ID != core.ButtonYes || req.Buttons[0].Label != "Yes" {
		t.Fatalf("buttons = %+v", req.Buttons)
	}
}

func TestNumericButtonIDs(t *testing.T) {
	doc, err := Parse([]byte(`{"message":"Go?","buttons":[{"id":4294967295,"label":"Max"},{"id":1000,"label":"Go"}],"timeout_button":1000}`), "ids.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Buttons[0].ID != "4294967295" || doc.TimeoutButton != "1000" {
		t.Fatalf("ids = %q / %q", doc.Buttons[0].ID, doc.TimeoutButton)
	}
	for _, body := range []string{
		`{"message":"x","buttons":[{"id":1.5}]}`,
		`{"message":"x","buttons":[{"id":0}]}`,
	} {
		if _, err := Parse([]byte(body), "bad.json"); err == nil {
			t.Fatalf("%s: expected a schema error", body)
		}
	}
}

func TestSchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", "title: x\n"},
		{"empty message", "message: ''\n"},
		{"unknown field", "message: x\ncolour: red\n"},
		{"bad icon", "message: x\nicon: skull\n"},
		{"button without id", "message: x\nbuttons:\n  - label: Go\n"},
		{"bad timeout", "message: x\ntimeout: later\n"},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.body), "doc.yaml"); err == nil {
			t.Fatalf("%s: expected a schema error", tt.name)
		}
	}
}

func TestUnknownButtonName(t *testing.T) {
	doc, err := Parse([]byte("message: x\nbuttons:\n  - id: maybe\n"), "doc.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := doc.Request(); err == nil || !strings.Contains(err.Error(), "doc.yaml") {
		t.Fatalf("err = %v", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "nested/deeper/b.yaml", "nested/c.json", "notes.txt"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("message: x\n"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got, err := Discover(filepath.Join(dir, "**", "*.yaml"))
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 2 || !strings.HasSuffix(got[0], "a.yaml") || !strings.HasSuffix(got[1], "b.yaml") {
		t.Fatalf("matches = %v", got)
	}
	doc, err := Load(got[1])
	if err != nil || doc.Message != "x" || doc.Source != got[1] {
		t.Fatalf("load = %+v, %v", doc, err)
	}
}
