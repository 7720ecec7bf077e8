// Package requestdoc reads dialog requests from YAML or JSON documents. Every
// document is checked against an embedded JSON Schema before it is turned
// into a core.Request.
package requestdoc

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

//go:embed request.schema.json
var schemaText string

const schemaURL = "request.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaText)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// ButtonRef names a button by its well-known name or its number.
type ButtonRef string

func (r *ButtonRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ButtonRef(s)
		return nil
	}
	var n uint32
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("button reference must be a name or a number: %s", data)
	}
	*r = ButtonRef(strconv.FormatUint(uint64(n), 10))
	return nil
}

type Button struct {
	ID          ButtonRef `json:"id"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	Default     bool      `json:"default,omitempty"`
	Cancel      bool      `json:"cancel,omitempty"`
}

type Input struct {
	Mode        string   `json:"mode"`
	Prompt      string   `json:"prompt,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Value       string   `json:"value,omitempty"`
	Items       []string `json:"items,omitempty"`
}

type Secondary struct {
	Informative string `json:"informative,omitempty"`
	Expanded    string `json:"expanded,omitempty"`
	Footer      string `json:"footer,omitempty"`
	HelpLink    string `json:"help_link,omitempty"`
}

// Document is one request as written in a file.
type Document struct {
	Title         string     `json:"title,omitempty"`
	Message       string     `json:"message"`
	Buttons       []Button   `json:"buttons,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Severity      string     `json:"severity,omitempty"`
	Modality      string     `json:"modality,omitempty"`
	Input         *Input     `json:"input,omitempty"`
	Secondary     *Secondary `json:"secondary,omitempty"`
	Verification  string     `json:"verification,omitempty"`
	AllowEscape   *bool      `json:"allow_escape,omitempty"`
	ExplicitAck   bool       `json:"explicit_ack,omitempty"`
	Timeout       string     `json:"timeout,omitempty"`
	TimeoutButton ButtonRef  `json:"timeout_button,omitempty"`
	Locale        string     `json:"locale,omitempty"`

	// Source is the file the document was read from.
	Source string `json:"-"`
}

// Parse decodes and validates a document. name picks the format: .json is
// JSON, anything else YAML (a superset of JSON).
func Parse(data []byte, name string) (*Document, error) {
	raw := data
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	s, err := compiled()
	if err != nil {
		return nil, fmt.Errorf("request schema: %w", err)
	}
	var inst any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&inst); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := s.Validate(inst); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	doc := &Document{Source: name}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Discover expands a doublestar pattern ("requests/**/*.yaml") into a
// sorted list of files.
func Discover(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("bad request pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// Request builds the core request the document describes.
func (d *Document) Request() (*core.Request, error) {
	req := core.NewRequest(d.Message)
	req.Title = d.Title
	req.Locale = d.Locale
	req.RequireExplicitAck = d.ExplicitAck
	if d.AllowEscape != nil {
		req.AllowEscapeCancel = *d.AllowEscape
	}
	if d.Verification != "" {
		req.VerificationText = d.Verification
		req.ShowSuppressCheckbox = true
	}

	var err error
	if req.Icon, err = core.ParseIcon(d.Icon); err != nil {
		return nil, d.wrap(err)
	}
	if req.Severity, err = core.ParseSeverity(d.Severity); err != nil {
		return nil, d.wrap(err)
	}
	if req.Modality, err = core.ParseModality(d.Modality); err != nil {
		return nil, d.wrap(err)
	}

	for _, b := range d.Buttons {
		id, err := core.ParseButtonID(string(b.ID))
		if err != nil {
			return nil, d.wrap(err)
		}
		kind, err := core.ParseKind(b.Kind)
		if err != nil {
			return nil, d.wrap(err)
		}
		btn := req.AddButton(id, b.Label)
		btn.Description = b.Description
		btn.Kind = kind
		btn.IsDefault = b.Default
		btn.IsCancel = b.Cancel
	}

	if d.Input != nil {
		mode, err := core.ParseInputMode(d.Input.Mode)
		if err != nil {
			return nil, d.wrap(err)
		}
		if mode != core.InputNone {
			req.Input = core.NewInput(mode)
			req.Input.Prompt = d.Input.Prompt
			req.Input.Placeholder = d.Input.Placeholder
			req.Input.DefaultValue = d.Input.Value
			req.Input.Items = d.Input.Items
		}
	}
	if d.Secondary != nil && *d.Secondary != (Secondary{}) {
		req.Secondary = core.NewSecondary()
		req.Secondary.Informative = d.Secondary.Informative
		req.Secondary.Expanded = d.Secondary.Expanded
		req.Secondary.Footer = d.Secondary.Footer
		req.Secondary.HelpLink = d.Secondary.HelpLink
	}

	if d.Timeout != "" {
		if req.Timeout, err = time.ParseDuration(d.Timeout); err != nil {
			return nil, d.wrap(err)
		}
	}
	if d.TimeoutButton != "" {
		if req.TimeoutButton, err = core.ParseButtonID(string(d.TimeoutButton)); err != nil {
			return nil, d.wrap(err)
		}
	}
	return req, nil
}

func (d *Document) wrap(err error) error {
	if d.Source == "" {
		return err
	}
	return fmt.Errorf("%s: %w", d.Source, err)
}
