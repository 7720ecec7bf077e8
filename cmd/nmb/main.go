// Command nmb shows message boxes from the command line and prints what the
// user chose as JSON, one object per dialog.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	nmb "github.com/wieslawsoltes/NativeMessageBox"
	"github.com/wieslawsoltes/NativeMessageBox/internal/config"
	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
	"github.com/wieslawsoltes/NativeMessageBox/internal/logger"
	"github.com/wieslawsoltes/NativeMessageBox/internal/requestdoc"
	"github.com/wieslawsoltes/NativeMessageBox/internal/suppress"
)

type options struct {
	configPath string
	request    string
	batch      string
	remember   bool
	verbose    bool
	version    bool
	noEscape   bool

	buttons    string
	defaultBtn string
	cancelBtn  string
	items      string
	inputMode  string
	doc        requestdoc.Document
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	d := &o.doc
	in := &requestdoc.Input{}
	sec := &requestdoc.Secondary{}
	var timeoutButton string

	fs := flag.NewFlagSet("nmb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "configuration file (default "+config.DefaultPath()+")")
	fs.StringVar(&d.Title, "title", "", "dialog title")
	fs.StringVar(&d.Message, "message", "", "dialog message")
	fs.StringVar(&o.buttons, "buttons", "", "comma separated buttons, e.g. ok,cancel or 1000=Deploy,cancel")
	fs.StringVar(&o.defaultBtn, "default", "", "default button")
	fs.StringVar(&o.cancelBtn, "cancel", "", "cancel button")
	fs.StringVar(&d.Icon, "icon", "", "icon: info, warning, error, question or shield")
	fs.StringVar(&d.Severity, "severity", "", "severity: info, warning, error or critical")
	fs.StringVar(&o.inputMode, "input", "", "input field: text, password, combo or checkbox")
	fs.StringVar(&in.Prompt, "prompt", "", "input prompt")
	fs.StringVar(&in.Placeholder, "placeholder", "", "input placeholder")
	fs.StringVar(&in.Value, "value", "", "initial input value")
	fs.StringVar(&o.items, "items", "", "comma separated combo items")
	fs.StringVar(&d.Verification, "verification", "", "verification checkbox text")
	fs.StringVar(&sec.Expanded, "details", "", "expandable details text")
	fs.StringVar(&sec.Informative, "informative", "", "informative text below the message")
	fs.StringVar(&sec.Footer, "footer", "", "footer text")
	fs.StringVar(&sec.HelpLink, "help-link", "", "help URL")
	fs.StringVar(&d.Timeout, "timeout", "", "auto-answer after this duration, e.g. 30s")
	fs.StringVar(&timeoutButton, "timeout-button", "", "button chosen when the timeout fires")
	fs.BoolVar(&d.ExplicitAck, "explicit-ack", false, "require a button press to close")
	fs.BoolVar(&o.noEscape, "no-escape", false, "do not let Escape cancel")
	fs.StringVar(&d.Locale, "locale", "", "BCP 47 locale hint")
	fs.StringVar(&o.request, "request", "", "read the request from a YAML or JSON file")
	fs.StringVar(&o.batch, "batch", "", "show every request file matching a ** glob in order")
	fs.BoolVar(&o.remember, "remember", false, "remember answers given with the verification box ticked")
	fs.BoolVar(&o.verbose, "verbose", false, "echo diagnostics to stderr")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 && d.Message == "" {
		d.Message = strings.Join(fs.Args(), " ")
	}

	d.TimeoutButton = requestdoc.ButtonRef(timeoutButton)
	if o.inputMode != "" {
		in.Mode = o.inputMode
		in.Items = splitList(o.items)
		d.Input = in
	}
	if *sec != (requestdoc.Secondary{}) {
		d.Secondary = sec
	}
	buttons, err := parseButtons(o.buttons)
	if err != nil {
		return nil, err
	}
	d.Buttons = buttons
	if err := markButton(d.Buttons, o.defaultBtn, func(b *requestdoc.Button) { b.Default = true }); err != nil {
		return nil, fmt.Errorf("-default: %w", err)
	}
	if err := markButton(d.Buttons, o.cancelBtn, func(b *requestdoc.Button) { b.Cancel = true }); err != nil {
		return nil, fmt.Errorf("-cancel: %w", err)
	}
	return o, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseButtons reads "ref[=label]" entries.
func parseButtons(s string) ([]requestdoc.Button, error) {
	var out []requestdoc.Button
	for _, part := range splitList(s) {
		ref, label, _ := strings.Cut(part, "=")
		ref = strings.TrimSpace(ref)
		if _, err := core.ParseButtonID(ref); err != nil {
			return nil, fmt.Errorf("-buttons: %w", err)
		}
		out = append(out, requestdoc.Button{ID: requestdoc.ButtonRef(ref), Label: strings.TrimSpace(label)})
	}
	return out, nil
}

func markButton(buttons []requestdoc.Button, ref string, mark func(*requestdoc.Button)) error {
	if ref == "" {
		return nil
	}
	want, err := core.ParseButtonID(ref)
	if err != nil {
		return err
	}
	for i := range buttons {
		if id, _ := core.ParseButtonID(string(buttons[i].ID)); id == want {
			mark(&buttons[i])
			return nil
		}
	}
	return fmt.Errorf("%q is not one of -buttons", ref)
}

// applyDefaults fills what the flags left empty from the configuration.
func applyDefaults(d *requestdoc.Document, def config.Defaults, noEscape bool) {
	if d.Title == "" {
		d.Title = def.Title
	}
	if d.Timeout == "" {
		d.Timeout = def.Timeout
	}
	if d.TimeoutButton == "" {
		d.TimeoutButton = requestdoc.ButtonRef(def.TimeoutButton)
	}
	switch {
	case noEscape:
		no := false
		d.AllowEscape = &no
	case def.AllowEscape != nil:
		allow := *def.AllowEscape
		d.AllowEscape = &allow
	}
}

type job struct {
	source string
	req    *core.Request
}

// jobs resolves the requests to show: a batch glob, a request file, or the
// flags themselves.
func (o *options) jobs(cfg *config.Config) ([]job, error) {
	var docs []*requestdoc.Document
	pattern := o.batch
	if pattern == "" && o.request == "" && o.doc.Message == "" {
		pattern = cfg.RequestGlob
	}
	switch {
	case pattern != "":
		files, err := requestdoc.Discover(config.ExpandPath(pattern))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no request files match %q", core.ErrInvalidArgument, pattern)
		}
		for _, f := range files {
			doc, err := requestdoc.Load(f)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	case o.request != "":
		doc, err := requestdoc.Load(config.ExpandPath(o.request))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	default:
		if o.doc.Message == "" {
			return nil, fmt.Errorf("%w: -message is required", core.ErrInvalidArgument)
		}
		doc := o.doc
		applyDefaults(&doc, cfg.Defaults, o.noEscape)
		docs = append(docs, &doc)
	}

	out := make([]job, 0, len(docs))
	for _, doc := range docs {
		req, err := doc.Request()
		if err != nil {
			return nil, err
		}
		out = append(out, job{source: doc.Source, req: req})
	}
	return out, nil
}

// report is the JSON line printed per dialog.
type report struct {
	Source     string        `json:"source,omitempty"`
	Button     core.ButtonID `json:"button"`
	ButtonName string        `json:"button_name,omitempty"`
	Checkbox   bool          `json:"checkbox"`
	Input      *string       `json:"input,omitempty"`
	Timeout    bool          `json:"timeout"`
	Status     string        `json:"status"`
	Remembered bool          `json:"remembered,omitempty"`

	status core.Status
}

func newReport(source string, res *core.Result) report {
	r := report{
		Source:   source,
		Button:   res.Button,
		Checkbox: res.CheckboxChecked,
		Timeout:  res.WasTimeout,
		Status:   res.Status.String(),
		status:   res.Status,
	}
	if res.Button != core.ButtonNone {
		r.ButtonName = res.Button.String()
	}
	if res.InputValue != nil {
		v := res.Input()
		r.Input = &v
	}
	return r
}

// exitCode maps a status to the process exit code.
func exitCode(s core.Status) int {
	if s > 254 {
		return 255
	}
	return int(s)
}

type cli struct {
	cfg   *config.Config
	log   *logger.Logger
	store *suppress.Store
	show  func(*nmb.Request, *nmb.Result) error
	out   io.Writer
}

// setup loads configuration and the log for o. It returns a non-nil error
// only for problems that stop the command.
func setup(o *options, stderr io.Writer) (*cli, error) {
	cfg, err := config.Load(o.configPath)
	if cfg == nil {
		return nil, err
	}
	log := logger.New(cfg.LogFile)
	log.SetEcho(nil)
	if o.verbose {
		log.SetEcho(stderr)
	}
	if err != nil {
		log.Log(fmt.Sprintf("Configuration load warning: %v", err))
	}
	c := &cli{cfg: cfg, log: log, show: nmb.Show}
	if o.remember {
		if c.store, err = suppress.Open(cfg.SuppressStore); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// initialize configures the runtime. toolkit is the host toolkit handle
// (the fyne.App on cgo builds) or nil.
func (c *cli) initialize(toolkit any) error {
	opts := nmb.NewInitializeOptions()
	opts.RuntimeName = c.cfg.RuntimeName
	if opts.RuntimeName == "" {
		opts.RuntimeName = "nmb " + core.VersionString(nmb.GetABIVersion())
	}
	opts.LogCallback = c.log.Sink
	opts.RejectSafetyDegradation = c.cfg.RejectSafetyDegradation
	opts.Toolkit = toolkit
	return nmb.Initialize(opts)
}

// run shows every job in order and returns the exit code: the status of the
// first dialog that did not end with ok.
func (c *cli) run(jobs []job) int {
	enc := json.NewEncoder(c.out)
	code := 0
	for _, j := range jobs {
		rep := c.showOne(j)
		if err := enc.Encode(rep); err != nil {
			c.log.Log(fmt.Sprintf("Failed to write result: %v", err))
			return exitCode(core.StatusUnknown)
		}
		if code == 0 {
			code = exitCode(rep.status)
		}
	}
	return code
}

func (c *cli) showOne(j job) report {
	if c.store != nil {
		if e, ok := c.store.Lookup(j.req); ok {
			c.log.Log(fmt.Sprintf("Using remembered answer %s from %s.", e.Button, e.Saved.Format("2006-01-02")))
			rep := report{
				Source:     j.source,
				Button:     e.Button,
				ButtonName: e.Button.String(),
				Checkbox:   true,
				Input:      e.Input,
				Status:     core.StatusOK.String(),
				Remembered: true,
			}
			return rep
		}
	}

	res := nmb.NewResult()
	err := c.show(j.req, res)
	if err != nil && !errors.Is(err, nmb.ErrCancelled) {
		c.log.Log(fmt.Sprintf("Dialog failed: %v", err))
	}
	rep := newReport(j.source, res)
	if c.store != nil {
		if stored, err := c.store.Remember(j.req, res); err != nil {
			c.log.Log(fmt.Sprintf("Failed to remember answer: %v", err))
		} else if stored {
			c.log.Log("Answer remembered.")
		}
	}
	nmb.ReleaseInput(j.req.Allocator, res)
	return rep
}

// prepare parses args and builds everything main needs. When the command
// should stop early it returns a nil cli and the exit code.
func prepare(args []string, stdout, stderr io.Writer) (*cli, []job, int) {
	o, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, 0
		}
		fmt.Fprintln(stderr, err)
		return nil, nil, exitCode(core.StatusInvalidArgument)
	}
	if o.version {
		fmt.Fprintf(stdout, "nmb %s\n", core.VersionString(nmb.GetABIVersion()))
		return nil, nil, 0
	}
	c, err := setup(o, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, nil, exitCode(core.StatusPlatformFailure)
	}
	c.out = stdout
	jobs, err := o.jobs(c.cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nil, nil, exitCode(core.StatusInvalidArgument)
	}
	return c, jobs, 0
}
