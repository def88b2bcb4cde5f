package codegen

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/logger"
	"github.com/wxglade/wxglade/project"
	"github.com/wxglade/wxglade/version"
	"github.com/wxglade/wxglade/widget"
)

// ProgressFunc is called after each top-level class has been built.
type ProgressFunc func(done, total int, class string)

// FileStatus is the write state of a generated file.
type FileStatus int

const (
	StatusPending FileStatus = iota
	StatusWritten
	StatusUnchanged
)

func (s FileStatus) String() string {
	return [...]string{"pending", "written", "unchanged"}[s]
}

// GeneratedFile is one output file of a pass.
type GeneratedFile struct {
	Path    string
	Role    Role
	Doc     *Doc
	Content []byte
	// Previous is the file on disk before the pass, nil when absent.
	Previous []byte
	// Preserved lists the user regions carried over from Previous.
	Preserved []string
	Status    FileStatus
}

// Changed reports whether the file differs from disk.
func (f *GeneratedFile) Changed() bool {
	return f.Previous == nil || !bytes.Equal(f.Previous, f.Content)
}

// Result is the outcome of a generation pass.
type Result struct {
	RunID    string
	Language string
	Started  time.Time
	Plan     *Plan
	Files    []*GeneratedFile
	Warnings []string
}

// Written returns the paths written by Write.
func (r *Result) Written() []string { return r.paths(StatusWritten) }

// Unchanged returns the paths Write left alone.
func (r *Result) Unchanged() []string { return r.paths(StatusUnchanged) }

func (r *Result) paths(s FileStatus) []string {
	var out []string
	for _, f := range r.Files {
		if f.Status == s {
			out = append(out, f.Path)
		}
	}
	return out
}

// Engine runs generation passes.
type Engine struct {
	langs         *Languages
	log           *zap.SugaredLogger
	progress      ProgressFunc
	headerComment string
	timestamp     bool
	backups       bool
	now           func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = logger.OrNop(log) }
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// WithHeaderComment adds text below the banner of every file.
func WithHeaderComment(text string) Option {
	return func(e *Engine) { e.headerComment = text }
}

// WithTimestamp adds the generation time to the banner.
func WithTimestamp(enabled bool) Option {
	return func(e *Engine) { e.timestamp = enabled }
}

// WithBackups keeps the previous version of rewritten files as <file>.bak.
func WithBackups(enabled bool) Option {
	return func(e *Engine) { e.backups = enabled }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine generating the languages of langs.
func NewEngine(langs *Languages, opts ...Option) *Engine {
	e := &Engine{
		langs: langs,
		log:   logger.OrNop(nil),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("codegen")
	return e
}

// pass holds the state of one Generate call.
type pass struct {
	*Engine
	adapter Adapter
	cfg     Config
	res     *Result
	log     *zap.SugaredLogger
}

func (ps *pass) warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	ps.res.Warnings = append(ps.res.Warnings, msg)
	ps.log.Warnw(msg)
}

// Generate renders every file of the project in memory. Nothing is written;
// any error aborts the whole pass.
func (e *Engine) Generate(p *project.Project) (*Result, error) {
	opts := p.Options
	res := &Result{RunID: uuid.NewString(), Language: opts.Language, Started: e.now()}
	log := e.log.With("run_id", res.RunID, "language", opts.Language)

	if opts.IsTemplate {
		return nil, errors.Unsupportedf("Code generation from a template is not possible")
	}
	if err := CheckOutputPath(opts); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v, err := p.ToolkitVersion()
	if err != nil {
		return nil, err
	}
	cfg := Config{
		Version:         v,
		Indent:          opts.Indent(),
		Gettext:         opts.UseGettext,
		Encoding:        opts.Encoding,
		HeaderExtension: opts.HeaderExtension,
		SourceExtension: opts.SourceExtension,
	}
	a, err := e.langs.New(opts.Language, cfg)
	if err != nil {
		return nil, err
	}
	if err := CheckOutput(opts, a); err != nil {
		return nil, err
	}

	ps := &pass{Engine: e, adapter: a, cfg: cfg, res: res, log: log}

	// the tree is not touched again for the rest of the pass
	root := p.Root.Clone()
	tops := root.Toplevels()
	classes := make([]*Class, 0, len(tops))
	for i, tl := range tops {
		c, err := ps.buildClass(tl)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
		log.Debugw("class built", "class", c.Name, "widgets", len(c.Widgets))
		if e.progress != nil {
			e.progress(i+1, len(tops), c.Name)
		}
	}

	app := ps.buildApp(opts, classes)
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	appName := ""
	if app != nil {
		appName = app.Name
	}
	plan, err := PlanFiles(opts, a, names, appName)
	if err != nil {
		return nil, err
	}
	res.Plan = plan
	log.Debugw("files planned", "files", plan.Paths(), "multiple", plan.Multiple)

	byName := make(map[string]*Class, len(classes))
	for _, c := range classes {
		byName[c.Name] = c
	}
	banner := ps.banner()
	for _, pf := range plan.Files {
		f := &File{Path: pf.Path, Role: pf.Role, Banner: banner}
		for _, name := range pf.Classes {
			f.Classes = append(f.Classes, byName[name])
		}
		if pf.App {
			f.App = app
			if plan.Multiple {
				f.Deps = []*Class{app.Top}
			}
		}
		gf, err := ps.render(f, opts.Overwrite)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, gf)
	}
	log.Infow("generation pass rendered", "files", len(res.Files), "warnings", len(res.Warnings))
	return res, nil
}

func (ps *pass) banner() []string {
	line := "generated by " + version.Get().Banner()
	if ps.timestamp {
		line += " on " + ps.now().Format(time.RFC1123)
	}
	lines := []string{line}
	if ps.headerComment != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(ps.headerComment, "\n"), "\n")...)
	}
	return lines
}

func (ps *pass) render(f *File, overwrite bool) (*GeneratedFile, error) {
	a := ps.adapter
	doc, err := a.RenderFile(f)
	if err != nil {
		return nil, errors.Wrapf(err, "render %s", f.Path)
	}
	gf := &GeneratedFile{Path: f.Path, Role: f.Role, Doc: doc}
	content := doc.Render(a.Naming(), nil)

	previous, err := os.ReadFile(f.Path)
	switch {
	case err == nil:
		gf.Previous = previous
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, "read %s", f.Path)
	}

	if gf.Previous != nil && !overwrite && a.Supports(FeatureUserCode) {
		m := Merge(doc, a.Naming(), string(gf.Previous))
		switch {
		case m.Overwritten:
			ps.warn("%s: user code markers are broken (%s); the file is overwritten", f.Path, m.Reason)
		case len(m.Preserved) > 0 || len(doc.Regions()) == 0 || len(bytes.TrimSpace(gf.Previous)) == 0:
		case m.Found == 0:
			ps.warn("%s: no user code markers found; the file is overwritten", f.Path)
		case len(m.Orphaned) == 0:
			ps.warn("%s: none of the %d user regions matched the new file; the file is overwritten", f.Path, m.Found)
		}
		for _, id := range m.Orphaned {
			ps.warn("%s: user code of region %s has no place in the new file and is dropped", f.Path, id)
		}
		content = m.Content
		gf.Preserved = m.Preserved
	}
	gf.Content = []byte(content)
	return gf, nil
}

func (ps *pass) buildApp(opts project.Options, classes []*Class) *App {
	if !opts.HasApplication() {
		return nil
	}
	if !ps.adapter.Supports(FeatureApplication) {
		ps.warn("%s code does not support application code; application %s is not generated", ps.adapter.Language(), opts.Class)
		return nil
	}
	if len(classes) == 0 {
		ps.warn("no top-level window; application %s is not generated", opts.Class)
		return nil
	}
	top := classes[0]
	for _, c := range classes {
		if c.Top.Name == opts.TopWindow {
			top = c
		}
	}
	return &App{Name: opts.Name, Class: opts.Class, Top: top, TopName: top.Top.Name}
}

func (ps *pass) buildClass(top *widget.Node) (*Class, error) {
	a := ps.adapter
	c := &Class{Name: top.Klass}
	models := make(map[*widget.Node]*Widget)

	// models first: a window's sizer must be known before the window renders
	err := top.Walk(func(n *widget.Node) error {
		if !a.SupportsClass(n.Info()) {
			return errors.Unsupportedf("%s code generation does not support %s (widget %s)", a.Language(), n.Class(), n.Path())
		}
		w := ps.newWidget(n, models[n.Parent()])
		if len(w.Events) > 0 && !a.Supports(FeatureEvents) {
			return errors.Unsupportedf("%s code does not support %s (widget %s binds %s)",
				a.Language(), FeatureEvents, n.Path(), w.Events[0].Name)
		}
		models[n] = w
		c.Widgets = append(c.Widgets, w)
		return nil
	})
	if err != nil {
		return nil, err
	}

	enter := func(n *widget.Node) error {
		w := models[n]
		frag, err := a.RenderWidget(w)
		if err != nil {
			return errors.Wrapf(err, "%s", n.Path())
		}
		w.Fragment = frag
		c.add(w, frag)
		return nil
	}
	leave := func(n *widget.Node) error {
		c.Layout = append(c.Layout, models[n].Fragment.Layout...)
		return nil
	}
	if err := top.WalkEnterLeave(enter, leave); err != nil {
		return nil, err
	}
	c.Top = c.Widgets[0]
	return c, nil
}

func (ps *pass) newWidget(n *widget.Node, parent *Widget) *Widget {
	info := n.Info()
	w := &Widget{
		Node:      n,
		Info:      info,
		Name:      n.Name(),
		Klass:     n.Klass,
		Top:       parent == nil,
		Container: parent,
	}
	if parent != nil {
		parent.Children = append(parent.Children, w)
		w.Window = parent
		if parent.IsSizer() {
			w.Window = parent.Window
		} else if w.IsSizer() {
			parent.Sizer = w
		}
	}
	if p := n.Prop("attribute"); p != nil {
		w.Attribute = p.Bool()
	}
	if code := info.Code; code.Module != "" && (code.ModuleSince == "" || ps.cfg.AtLeast(code.ModuleSince)) {
		w.Module = code.Module
	}

	for _, name := range info.Code.Args {
		w.Args = append(w.Args, propValue(n.Prop(name)))
	}
	if p := n.Prop("style"); p != nil && p.Styles() != nil && p.Value() != "" && (w.Top || p.IsActive()) {
		w.Style = p.Styles()
		ps.checkStyles(n, "style", p)
	}
	for _, s := range info.Code.Setters {
		if p := n.Prop(s.Property); p != nil && p.IsActive() {
			w.Calls = append(w.Calls, Call{Method: s.Method, Args: []Value{propValue(p)}})
		}
	}
	w.Calls = append(w.Calls, windowCalls(n, w.Top)...)

	if it := n.Item(); it != nil {
		w.Item = &Item{Option: it.Option.Int(), Flag: it.Flag.Styles(), Border: it.Border.Int()}
		ps.checkStyles(n, "flag", it.Flag)
	}
	if info.Code.Ctor == widget.CtorCustom {
		for _, arg := range strings.Split(n.Value("arguments"), ",") {
			if arg = strings.TrimSpace(arg); arg != "" {
				w.Custom = append(w.Custom, arg)
			}
		}
	}
	for _, b := range n.Events() {
		spec, _ := info.Event(b.Event)
		w.Events = append(w.Events, Event{Name: b.Event, Type: spec.Type, Handler: b.Handler, Module: w.Module})
	}
	return w
}

func (ps *pass) checkStyles(n *widget.Node, prop string, p *widget.Property) {
	set := p.Styles()
	if set == nil {
		return
	}
	for _, name := range set.Unsupported(ps.cfg.Version) {
		ps.warn("%s: %s %s is not supported by wx %s and is left out", n.Path(), prop, name, ps.cfg.Version.Original())
	}
}

// propValue converts a property to a code value.
func propValue(p *widget.Property) Value {
	switch p.Kind() {
	case widget.KindBool:
		return Bool(p.Bool())
	case widget.KindInt:
		return Int(p.Int())
	case widget.KindChoice:
		return Const(p.Value())
	case widget.KindStyle:
		return Value{Kind: ValStyle, Styles: p.Styles()}
	case widget.KindFont:
		return Value{Kind: ValFont, Font: p.Font()}
	case widget.KindColour:
		return Value{Kind: ValColour, Text: p.Value()}
	case widget.KindSize:
		w, h, du, _ := p.Size()
		return Value{Kind: ValSize, Width: w, Height: h, DialogUnits: du}
	}
	return Str(p.Value(), p.Name() != "url")
}

// windowCalls returns the calls applying the common window properties.
func windowCalls(n *widget.Node, top bool) []Call {
	var calls []Call
	active := func(name string) *widget.Property {
		if p := n.Prop(name); p != nil && p.IsActive() && p.Value() != "" {
			return p
		}
		return nil
	}
	if p := active("size"); p != nil {
		if _, _, _, ok := p.Size(); ok {
			method := "SetMinSize"
			if top {
				method = "SetSize"
			}
			calls = append(calls, Call{Method: method, Args: []Value{propValue(p)}})
		}
	}
	if p := active("background"); p != nil {
		calls = append(calls, Call{Method: "SetBackgroundColour", Args: []Value{propValue(p)}})
	}
	if p := active("foreground"); p != nil {
		calls = append(calls, Call{Method: "SetForegroundColour", Args: []Value{propValue(p)}})
	}
	if p := active("font"); p != nil && p.Font() != nil {
		calls = append(calls, Call{Method: "SetFont", Args: []Value{propValue(p)}})
	}
	if p := active("tooltip"); p != nil {
		calls = append(calls, Call{Method: "SetToolTip", Args: []Value{Str(p.Value(), true)}})
	}
	if p := active("disabled"); p != nil && p.Bool() {
		calls = append(calls, Call{Method: "Enable", Args: []Value{Bool(false)}})
	}
	if p := active("focused"); p != nil && p.Bool() {
		calls = append(calls, Call{Method: "SetFocus"})
	}
	if p := active("hidden"); p != nil && p.Bool() {
		calls = append(calls, Call{Method: "Hide"})
	}
	return calls
}
