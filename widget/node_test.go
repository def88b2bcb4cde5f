package widget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/widget"
	"github.com/wxglade/wxglade/widgets"
)

func newRegistry(t *testing.T) *widget.Registry {
	t.Helper()
	reg, err := widgets.NewRegistry()
	require.NoError(t, err)
	return reg
}

// frameWithSizer builds app -> frame_1 -> sizer_1.
func frameWithSizer(t *testing.T, reg *widget.Registry) (*widget.Node, *widget.Node, *widget.Node) {
	t.Helper()
	root := widget.NewRoot(reg.Catalog())
	frame, err := reg.Build("wxFrame", root, -1)
	require.NoError(t, err)
	sizer, err := reg.Build("wxBoxSizer", frame, -1)
	require.NoError(t, err)
	return root, frame, sizer
}

func TestBuildNames(t *testing.T) {
	reg := newRegistry(t)
	_, frame, sizer := frameWithSizer(t, reg)

	assert.Equal(t, "frame_1", frame.Name())
	assert.Equal(t, "MyFrame", frame.Klass)
	assert.Equal(t, "sizer_1", sizer.Name())

	b1, err := reg.Build("wxButton", sizer, -1)
	require.NoError(t, err)
	b2, err := reg.Build("wxButton", sizer, -1)
	require.NoError(t, err)
	assert.Equal(t, "button_1", b1.Name())
	assert.Equal(t, "button_2", b2.Name())
	assert.Equal(t, "button_1", b1.Value("label"))
}

func TestHyperlinkBuilder(t *testing.T) {
	reg := newRegistry(t)
	_, _, sizer := frameWithSizer(t, reg)

	h, err := reg.Build("wxHyperlinkCtrl", sizer, -1)
	require.NoError(t, err)

	assert.Equal(t, "hyperlink_1", h.Name())
	assert.Equal(t, "hyperlink_1", h.Value("label"))
	assert.True(t, h.Prop("attribute").Bool())
	assert.True(t, h.IsActive("attribute"))
	assert.Equal(t, "wxHL_DEFAULT_STYLE", h.Value("style"))
	require.NotNil(t, h.Item())
	assert.Equal(t, "0", h.Item().Option.Value())
}

func TestNavigation(t *testing.T) {
	reg := newRegistry(t)
	root, frame, sizer := frameWithSizer(t, reg)
	a, _ := reg.Build("wxButton", sizer, -1)
	b, _ := reg.Build("wxCheckBox", sizer, -1)
	c, err := reg.Build("wxStaticText", sizer, 1)
	require.NoError(t, err)

	assert.Same(t, sizer, a.Parent())
	assert.Equal(t, []*widget.Node{a, c, b}, sizer.Children())
	assert.Equal(t, 1, c.IndexInParent())
	assert.Same(t, b, c.NextSibling())
	assert.Same(t, a, c.PrevSibling())
	assert.Nil(t, b.NextSibling())
	assert.Nil(t, a.PrevSibling())
	assert.Same(t, frame, b.Toplevel())
	assert.Same(t, root, b.Root())
	assert.Equal(t, "frame_1/sizer_1/checkbox_1", b.Path())
	assert.Equal(t, []*widget.Node{frame}, root.Toplevels())
	assert.Same(t, c, root.Find("label_1"))
}

func TestWalkPreOrder(t *testing.T) {
	reg := newRegistry(t)
	root, _, sizer := frameWithSizer(t, reg)
	_, _ = reg.Build("wxButton", sizer, -1)
	inner, _ := reg.Build("wxBoxSizer", sizer, -1)
	_, _ = reg.Build("wxTextCtrl", inner, -1)

	var names []string
	require.NoError(t, root.Walk(func(n *widget.Node) error {
		names = append(names, n.Name())
		return nil
	}))
	assert.Equal(t, []string{"app", "frame_1", "sizer_1", "button_1", "sizer_2", "text_ctrl_1"}, names)

	var visited []string
	for n := root; n != nil; n = widget.Next(n) {
		visited = append(visited, n.Name())
	}
	assert.Equal(t, names, visited)

	names = nil
	require.NoError(t, root.Walk(func(n *widget.Node) error {
		names = append(names, n.Name())
		if n.Name() == "sizer_2" {
			return widget.SkipChildren
		}
		return nil
	}))
	assert.NotContains(t, names, "text_ctrl_1")

	var events []string
	require.NoError(t, sizer.WalkEnterLeave(
		func(n *widget.Node) error { events = append(events, "+"+n.Name()); return nil },
		func(n *widget.Node) error { events = append(events, "-"+n.Name()); return nil },
	))
	assert.Equal(t, []string{"+sizer_1", "+button_1", "-button_1", "+sizer_2", "+text_ctrl_1", "-text_ctrl_1", "-sizer_2", "-sizer_1"}, events)
}

func TestPropertyLookup(t *testing.T) {
	reg := newRegistry(t)
	_, _, sizer := frameWithSizer(t, reg)
	b, _ := reg.Build("wxButton", sizer, -1)

	p, err := b.Property("label")
	require.NoError(t, err)
	assert.Equal(t, widget.KindText, p.Kind())

	_, err = b.Property("url")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownProperty))

	// sizer item properties are reachable once the node sits in a sizer
	_, err = b.Property("border")
	assert.NoError(t, err)
	assert.Error(t, b.SetProperty("nonexistent", "x"))
}

func TestPropertyActivation(t *testing.T) {
	reg := newRegistry(t)
	_, _, sizer := frameWithSizer(t, reg)
	g, _ := reg.Build("wxGauge", sizer, -1)

	value := g.Prop("value")
	assert.False(t, value.IsActive())
	require.NoError(t, value.Set("5"))
	assert.True(t, value.IsActive())
	assert.Equal(t, 5, value.Int())
	require.NoError(t, value.Set("0"))
	assert.False(t, value.IsActive())
	value.SetActive(true)
	assert.True(t, value.IsActive())

	assert.Error(t, value.Set("five"))
	assert.Error(t, g.SetProperty("size", "wide"))
	require.NoError(t, g.SetProperty("size", "100,20d"))
	w, h, dlg, ok := g.Prop("size").Size()
	assert.True(t, ok)
	assert.Equal(t, []int{100, 20}, []int{w, h})
	assert.True(t, dlg)
	assert.Equal(t, "100, 20d", g.Value("size"))

	require.NoError(t, g.SetProperty("font", "9,swiss,normal,bold,0,Arial"))
	assert.Equal(t, "bold", g.Prop("font").Font().Weight)
	assert.Error(t, g.SetProperty("font", "9,comic,normal,bold,0"))

	require.NoError(t, g.SetProperty("background", "#ff0000"))
	require.NoError(t, g.SetProperty("foreground", "wxSYS_COLOUR_BTNTEXT"))
	assert.Error(t, g.SetProperty("background", "red"))
}

func TestStyleProperty(t *testing.T) {
	reg := newRegistry(t)
	_, _, sizer := frameWithSizer(t, reg)
	st, _ := reg.Build("wxStaticText", sizer, -1)

	require.NoError(t, st.SetProperty("style", "wxST_NO_AUTORESIZE|wxALIGN_RIGHT"))
	assert.Equal(t, "wxALIGN_RIGHT|wxST_NO_AUTORESIZE", st.Value("style"))

	err := st.SetProperty("style", "wxBOGUS")
	assert.True(t, errors.Is(err, errors.ErrInvalidStyle))

	st.AllowUnknownStyles()
	require.NoError(t, st.SetProperty("style", "wxBOGUS"))
	assert.Equal(t, "wxBOGUS", st.Value("style"))
}

func TestNameUniqueness(t *testing.T) {
	reg := newRegistry(t)
	root, frame, sizer := frameWithSizer(t, reg)
	b1, _ := reg.Build("wxButton", sizer, -1)
	b2, _ := reg.Build("wxButton", sizer, -1)

	err := b2.SetProperty("name", b1.Name())
	require.Error(t, err)
	assert.Equal(t, errors.StructuralConstraint, errors.KindOf(err))
	assert.Equal(t, "button_2", b2.Name())

	assert.Error(t, b2.SetName("not valid"))
	require.NoError(t, b2.SetName("ok_button"))

	// a second top-level window has its own scope
	dialog, err := reg.Build("wxDialog", root, -1)
	require.NoError(t, err)
	dsizer, _ := reg.Build("wxBoxSizer", dialog, -1)
	other, err := reg.NewNode("wxButton", "button_1")
	require.NoError(t, err)
	assert.NoError(t, dsizer.InsertChild(-1, other))

	// but top-level names are unique across the application
	assert.Error(t, dialog.SetName(frame.Name()))
	dup, _ := reg.NewNode("wxFrame", "frame_1")
	assert.Error(t, root.InsertChild(-1, dup))

	// and generated class names too
	same, _ := reg.NewNode("wxFrame", "frame_9")
	err = root.InsertChild(-1, same)
	assert.Error(t, err, "MyFrame is already used by frame_1")

	dupInSubtree, _ := reg.NewNode("wxPanel", "panel_x")
	inner, _ := reg.NewNode("wxBoxSizer", "sizer_1")
	require.NoError(t, dupInSubtree.InsertChild(-1, inner))
	assert.Error(t, sizer.InsertChild(-1, dupInSubtree))
}

func TestStructuralConstraints(t *testing.T) {
	reg := newRegistry(t)
	root, frame, sizer := frameWithSizer(t, reg)
	b, _ := reg.Build("wxButton", sizer, -1)

	tests := []struct {
		name   string
		parent *widget.Node
		child  func() *widget.Node
	}{
		{"attached child", sizer, func() *widget.Node { return b }},
		{"control as top-level", root, func() *widget.Node { n, _ := reg.NewNode("wxButton", "x"); return n }},
		{"top-level inside sizer", sizer, func() *widget.Node { n, _ := reg.NewNode("wxDialog", "d"); return n }},
		{"child of control", b, func() *widget.Node { n, _ := reg.NewNode("wxButton", "y"); return n }},
		{"second sizer in window", frame, func() *widget.Node { n, _ := reg.NewNode("wxBoxSizer", "s9"); return n }},
		{"spacer outside sizer", frame, func() *widget.Node { n, _ := reg.NewNode("spacer", "spacer"); return n }},
		{"nil child", sizer, func() *widget.Node { return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parent.InsertChild(-1, tt.child())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrStructuralConstraint))
		})
	}
}

func TestNoCycles(t *testing.T) {
	reg := newRegistry(t)
	_, frame, sizer := frameWithSizer(t, reg)
	panel, err := reg.Build("wxPanel", sizer, -1)
	require.NoError(t, err)
	psizer, err := reg.Build("wxBoxSizer", panel, -1)
	require.NoError(t, err)

	require.NoError(t, frame.RemoveChild(sizer))
	assert.Nil(t, sizer.Parent())
	err = psizer.InsertChild(-1, sizer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")

	assert.Error(t, frame.RemoveChild(sizer), "already removed")
	require.NoError(t, frame.InsertChild(0, sizer))
}

func TestBuildNamesInNestedContainer(t *testing.T) {
	reg := newRegistry(t)
	_, frame, sizer := frameWithSizer(t, reg)
	_, err := reg.Build("wxButton", sizer, -1)
	require.NoError(t, err)
	panel, err := reg.Build("wxPanel", sizer, -1)
	require.NoError(t, err)

	inner, err := reg.Build("wxBoxSizer", panel, -1)
	require.NoError(t, err)
	assert.Equal(t, "sizer_2", inner.Name())
	button, err := reg.Build("wxButton", inner, -1)
	require.NoError(t, err)
	assert.Equal(t, "button_2", button.Name())
	assert.Equal(t, "sizer_3", inner.NextName("sizer_%d"))
	assert.Equal(t, "sizer_3", frame.NextName("sizer_%d"))
}

func TestSpacersShareNames(t *testing.T) {
	reg := newRegistry(t)
	_, _, sizer := frameWithSizer(t, reg)
	for i := 0; i < 3; i++ {
		s, err := reg.NewNode("spacer", "spacer")
		require.NoError(t, err)
		require.NoError(t, sizer.InsertChild(-1, s))
	}
	assert.Equal(t, 3, sizer.NumChildren())
}

func TestEvents(t *testing.T) {
	reg := newRegistry(t)
	_, _, sizer := frameWithSizer(t, reg)
	b, _ := reg.Build("wxButton", sizer, -1)

	require.NoError(t, b.SetEvent("EVT_BUTTON", "on_click"))
	assert.Equal(t, []widget.EventBinding{{Event: "EVT_BUTTON", Handler: "on_click"}}, b.Events())
	require.NoError(t, b.SetEvent("EVT_BUTTON", "on_press"))
	assert.Equal(t, "on_press", b.Events()[0].Handler)

	assert.Error(t, b.SetEvent("EVT_HYPERLINK", "on_link"))
	assert.Error(t, b.SetEvent("EVT_BUTTON", "on press"))

	require.NoError(t, b.SetEvent("EVT_BUTTON", ""))
	assert.Empty(t, b.Events())
}

func TestClone(t *testing.T) {
	reg := newRegistry(t)
	root, _, sizer := frameWithSizer(t, reg)
	b, _ := reg.Build("wxButton", sizer, -1)
	require.NoError(t, b.SetEvent("EVT_BUTTON", "on_click"))

	c := root.Clone()
	cb := c.Find("button_1")
	require.NotNil(t, cb)
	require.NoError(t, cb.SetProperty("label", "changed"))
	require.NoError(t, cb.Item().Flag.Set("wxALL"))

	assert.Equal(t, "button_1", b.Value("label"))
	assert.Equal(t, "", b.Item().Flag.Value())
	assert.Equal(t, b.Events(), cb.Events())
	assert.Same(t, c, cb.Root())
}

func TestRegistry(t *testing.T) {
	reg := newRegistry(t)
	assert.Contains(t, reg.List(), "wxHyperlinkCtrl")

	info, ok := reg.LookupEditor("EditHyperlinkCtrl")
	require.True(t, ok)
	assert.Equal(t, "wxHyperlinkCtrl", info.Class)

	assert.Error(t, reg.Register(&widget.ClassInfo{Class: "wxButton"}))
	assert.Error(t, reg.Register(&widget.ClassInfo{
		Class:      "wxOdd",
		Properties: []*widget.PropertySpec{{Name: "style", Kind: widget.KindStyle, StyleClass: "wxOdd"}},
	}))
	assert.Error(t, reg.Register(&widget.ClassInfo{Class: "wxOdd2", Code: widget.CodeSpec{Args: []string{"label"}}}))

	_, err := reg.NewNode("wxNothing", "n")
	assert.Error(t, err)
}
