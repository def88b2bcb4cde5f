// Package widgets declares the widget classes known to the generator and
// registers them with a widget.Registry.
package widgets

import (
	"github.com/wxglade/wxglade/errors"
	"github.com/wxglade/wxglade/widget"
)

// windowProperties are shared by every window class.
func windowProperties() []*widget.PropertySpec {
	return []*widget.PropertySpec{
		{Name: "size", Kind: widget.KindSize},
		{Name: "background", Kind: widget.KindColour},
		{Name: "foreground", Kind: widget.KindColour},
		{Name: "font", Kind: widget.KindFont},
		{Name: "tooltip", Kind: widget.KindText},
		{Name: "disabled", Kind: widget.KindBool, Default: "0"},
		{Name: "focused", Kind: widget.KindBool, Default: "0"},
		{Name: "hidden", Kind: widget.KindBool, Default: "0"},
	}
}

func attribute(def string) *widget.PropertySpec {
	return &widget.PropertySpec{
		Name:    "attribute",
		Kind:    widget.KindBool,
		Default: def,
		Help:    "Store instance as attribute of window class",
	}
}

func styleProp(class, def string) *widget.PropertySpec {
	return &widget.PropertySpec{Name: "style", Kind: widget.KindStyle, StyleClass: class, Default: def}
}

func props(own []*widget.PropertySpec, extra ...*widget.PropertySpec) []*widget.PropertySpec {
	out := append([]*widget.PropertySpec(nil), own...)
	return append(out, extra...)
}

var commandEvent = "wxCommandEvent"

// Classes returns the declarations of all built-in classes.
func Classes() []*widget.ClassInfo {
	return []*widget.ClassInfo{
		{
			Class: "wxFrame", Editor: "EditFrame", Category: widget.CategoryToplevel, NamePattern: "frame_%d",
			Properties: props([]*widget.PropertySpec{
				{Name: "title", Kind: widget.KindText, Default: "frame", AlwaysActive: true},
				styleProp("wxFrame", "wxDEFAULT_FRAME_STYLE"),
			}, windowProperties()...),
			Events: []widget.EventSpec{{Name: "EVT_CLOSE", Type: "wxCloseEvent"}, {Name: "EVT_SIZE", Type: "wxSizeEvent"}},
			Code:   widget.CodeSpec{Args: []string{"title"}, Header: "<wx/wx.h>"},
		},
		{
			Class: "wxDialog", Editor: "EditDialog", Category: widget.CategoryToplevel, NamePattern: "dialog_%d",
			Properties: props([]*widget.PropertySpec{
				{Name: "title", Kind: widget.KindText, Default: "dialog", AlwaysActive: true},
				styleProp("wxDialog", "wxDEFAULT_DIALOG_STYLE"),
			}, windowProperties()...),
			Events: []widget.EventSpec{{Name: "EVT_CLOSE", Type: "wxCloseEvent"}, {Name: "EVT_INIT_DIALOG", Type: "wxInitDialogEvent"}},
			Code:   widget.CodeSpec{Args: []string{"title"}, Header: "<wx/wx.h>"},
		},
		{
			Class: "wxPanel", Editor: "EditPanel", Category: widget.CategoryContainer, NamePattern: "panel_%d",
			Properties: props([]*widget.PropertySpec{attribute("0"), styleProp("wxPanel", "wxTAB_TRAVERSAL")}, windowProperties()...),
			Code:       widget.CodeSpec{Header: "<wx/wx.h>"},
		},
		{
			Class: "wxBoxSizer", Editor: "EditBoxSizer", Category: widget.CategorySizer, NamePattern: "sizer_%d",
			Properties: []*widget.PropertySpec{
				{Name: "orient", Kind: widget.KindChoice, Default: "wxVERTICAL", Choices: []string{"wxVERTICAL", "wxHORIZONTAL"}, AlwaysActive: true},
				attribute("0"),
			},
			Code: widget.CodeSpec{Ctor: widget.CtorSizer, Args: []string{"orient"}, Header: "<wx/sizer.h>"},
		},
		{
			Class: "wxStaticBoxSizer", Editor: "EditStaticBoxSizer", Category: widget.CategorySizer, NamePattern: "sizer_%d",
			Properties: []*widget.PropertySpec{
				{Name: "orient", Kind: widget.KindChoice, Default: "wxVERTICAL", Choices: []string{"wxVERTICAL", "wxHORIZONTAL"}, AlwaysActive: true},
				{Name: "label", Kind: widget.KindText, AlwaysActive: true},
				attribute("0"),
			},
			Code: widget.CodeSpec{Ctor: widget.CtorStaticBoxSizer, Args: []string{"orient", "label"}, Header: "<wx/statbox.h>"},
		},
		{
			Class: "wxGridSizer", Editor: "EditGridSizer", Category: widget.CategorySizer, NamePattern: "grid_sizer_%d",
			Properties: []*widget.PropertySpec{
				{Name: "rows", Kind: widget.KindInt, Default: "3", AlwaysActive: true},
				{Name: "cols", Kind: widget.KindInt, Default: "3", AlwaysActive: true},
				{Name: "vgap", Kind: widget.KindInt, Default: "0", AlwaysActive: true},
				{Name: "hgap", Kind: widget.KindInt, Default: "0", AlwaysActive: true},
				attribute("0"),
			},
			Code: widget.CodeSpec{Ctor: widget.CtorSizer, Args: []string{"rows", "cols", "vgap", "hgap"}, Header: "<wx/sizer.h>"},
		},
		{
			Class: "spacer", Editor: "EditSpacer", Category: widget.CategorySpacer,
			Properties: []*widget.PropertySpec{
				{Name: "width", Kind: widget.KindInt, Default: "20", AlwaysActive: true},
				{Name: "height", Kind: widget.KindInt, Default: "20", AlwaysActive: true},
			},
			Code: widget.CodeSpec{Ctor: widget.CtorSpacer, Args: []string{"width", "height"}},
		},
		{
			Class: "wxButton", Editor: "EditButton", Category: widget.CategoryControl, NamePattern: "button_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("1"),
				{Name: "label", Kind: widget.KindText, Default: "", AlwaysActive: true},
				{Name: "default", Kind: widget.KindBool, Default: "0"},
				styleProp("wxButton", ""),
			}, windowProperties()...),
			Events: []widget.EventSpec{{Name: "EVT_BUTTON", Type: commandEvent}},
			Code: widget.CodeSpec{
				Args:    []string{"label"},
				Setters: []widget.Setter{{Property: "default", Method: "SetDefault"}},
				Header:  "<wx/button.h>",
			},
			Builder: labelFromName,
		},
		{
			Class: "wxStaticText", Editor: "EditStaticText", Category: widget.CategoryControl, NamePattern: "label_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("0"),
				{Name: "label", Kind: widget.KindText, AlwaysActive: true},
				styleProp("wxStaticText", ""),
			}, windowProperties()...),
			Code:    widget.CodeSpec{Args: []string{"label"}, Header: "<wx/stattext.h>"},
			Builder: labelFromName,
		},
		{
			Class: "wxTextCtrl", Editor: "EditTextCtrl", Category: widget.CategoryControl, NamePattern: "text_ctrl_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("1"),
				{Name: "value", Kind: widget.KindText, AlwaysActive: true},
				styleProp("wxTextCtrl", ""),
			}, windowProperties()...),
			Events: []widget.EventSpec{{Name: "EVT_TEXT", Type: commandEvent}, {Name: "EVT_TEXT_ENTER", Type: commandEvent}},
			Code:   widget.CodeSpec{Args: []string{"value"}, Header: "<wx/textctrl.h>"},
		},
		{
			Class: "wxCheckBox", Editor: "EditCheckBox", Category: widget.CategoryControl, NamePattern: "checkbox_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("1"),
				{Name: "label", Kind: widget.KindText, AlwaysActive: true},
				{Name: "checked", Kind: widget.KindBool, Default: "0"},
				styleProp("wxCheckBox", ""),
			}, windowProperties()...),
			Events: []widget.EventSpec{{Name: "EVT_CHECKBOX", Type: commandEvent}},
			Code: widget.CodeSpec{
				Args:    []string{"label"},
				Setters: []widget.Setter{{Property: "checked", Method: "SetValue"}},
				Header:  "<wx/checkbox.h>",
			},
			Builder: labelFromName,
		},
		{
			Class: "wxHyperlinkCtrl", Editor: "EditHyperlinkCtrl", Category: widget.CategoryControl, NamePattern: "hyperlink_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("0"),
				{Name: "label", Kind: widget.KindText, AlwaysActive: true, Help: "Label of the hyperlink"},
				styleProp("wxHyperlinkCtrl", "wxHL_DEFAULT_STYLE"),
				{Name: "url", Kind: widget.KindText, AlwaysActive: true, Help: "URL associated with the given label"},
			}, windowProperties()...),
			Events: []widget.EventSpec{{Name: "EVT_HYPERLINK", Type: "wxHyperlinkEvent"}},
			Code: widget.CodeSpec{
				Args:        []string{"label", "url"},
				Module:      "wx.adv",
				ModuleSince: "3.0",
				Header:      "<wx/hyperlink.h>",
			},
			Builder: buildHyperlink,
		},
		{
			Class: "wxGauge", Editor: "EditGauge", Category: widget.CategoryControl, NamePattern: "gauge_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("1"),
				{Name: "range", Kind: widget.KindInt, Default: "10", AlwaysActive: true},
				{Name: "value", Kind: widget.KindInt, Default: "0"},
				styleProp("wxGauge", "wxGA_HORIZONTAL"),
			}, windowProperties()...),
			Code: widget.CodeSpec{
				Args:    []string{"range"},
				Setters: []widget.Setter{{Property: "value", Method: "SetValue"}},
				Header:  "<wx/gauge.h>",
			},
		},
		{
			Class: "CustomWidget", Editor: "CustomWidget", Category: widget.CategoryControl, NamePattern: "window_%d",
			Properties: props([]*widget.PropertySpec{
				attribute("1"),
				{Name: "arguments", Kind: widget.KindText, Default: "$parent, $id", AlwaysActive: true,
					Help: "Constructor arguments; $parent and $id are substituted"},
			}, windowProperties()...),
			Code: widget.CodeSpec{Ctor: widget.CtorCustom},
		},
	}
}

// labelFromName uses the node name as the initial label.
func labelFromName(n *widget.Node) error {
	return n.SetProperty("label", n.Name())
}

// buildHyperlink mirrors the palette defaults of a new hyperlink: the label
// is the name and the instance is stored as attribute.
func buildHyperlink(n *widget.Node) error {
	if err := labelFromName(n); err != nil {
		return err
	}
	n.Prop("style").Reset()
	p := n.Prop("attribute")
	if err := p.Set("1"); err != nil {
		return err
	}
	p.SetActive(true)
	return nil
}

// Register adds every built-in class to reg.
func Register(reg *widget.Registry) error {
	for _, info := range Classes() {
		if err := reg.Register(info); err != nil {
			return errors.Wrapf(err, "register %s", info.Class)
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in classes.
func NewRegistry() (*widget.Registry, error) {
	reg := widget.NewRegistry(nil)
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
