package python_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wxglade/wxglade/codegen/codegentest"
)

func TestHyperlinkModule(t *testing.T) {
	tests := []struct {
		version string
		want    []string
		absent  string
	}{
		{
			version: "3.0",
			want: []string{
				"import wx.adv\n",
				`self.hyperlink_1 = wx.adv.HyperlinkCtrl(self, wx.ID_ANY, "hyperlink_1", "")`,
			},
		},
		{
			version: "2.8",
			want:    []string{`self.hyperlink_1 = wx.HyperlinkCtrl(self, wx.ID_ANY, "hyperlink_1", "")`},
			absent:  "import wx.adv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "Ogg1.py")
			p := codegentest.Project(t, "python", out)
			p.Options.ForVersion = tt.version
			codegentest.Add(t, p, "sizer_1", "wxHyperlinkCtrl")
			files, _ := codegentest.Generate(t, p)
			for _, w := range tt.want {
				assert.Contains(t, files[out], w)
			}
			if tt.absent != "" {
				assert.NotContains(t, files[out], tt.absent)
			}
		})
	}
}

func TestToolTipByVersion(t *testing.T) {
	for version, method := range map[string]string{"2.8": "SetToolTipString", "3.0": "SetToolTip"} {
		out := filepath.Join(t.TempDir(), "Ogg1.py")
		p := codegentest.Project(t, "python", out)
		p.Options.ForVersion = version
		codegentest.Set(t, p, "button_1", "tooltip", "Press")
		files, _ := codegentest.Generate(t, p)
		assert.Contains(t, files[out], "self.button_1."+method+"(\"Press\")\n", version)
	}
}

func TestGettext(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := codegentest.Project(t, "python", out)
	p.Options.UseGettext = true
	files, _ := codegentest.Generate(t, p)

	code := files[out]
	assert.Contains(t, code, "import gettext\n")
	assert.Contains(t, code, `self.SetTitle(_("frame"))`)
	assert.Contains(t, code, `wx.Button(self, wx.ID_ANY, _("button_1"))`)
	assert.Contains(t, code, "    gettext.install(\"app\")\n")
}

func TestWindowProperties(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := codegentest.Project(t, "python", out)
	codegentest.Set(t, p, "frame_1", "size", "400, 300")
	codegentest.Set(t, p, "button_1", "size", "50, 20d")
	codegentest.Set(t, p, "button_1", "background", "#102030")
	codegentest.Set(t, p, "button_1", "foreground", "wxSYS_COLOUR_WINDOW")
	codegentest.Set(t, p, "button_1", "font", "9,swiss,italic,bold,1,Sans")
	codegentest.Set(t, p, "button_1", "hidden", "1")
	codegentest.Set(t, p, "button_1", "default", "1")
	files, _ := codegentest.Generate(t, p)

	code := files[out]
	for _, want := range []string{
		"        self.SetSize((400, 300))\n",
		"        self.button_1.SetDefault(True)\n",
		"        self.button_1.SetMinSize(self.ConvertDialogToPixels((50, 20)))\n",
		"        self.button_1.SetBackgroundColour(wx.Colour(16, 32, 48))\n",
		"        self.button_1.SetForegroundColour(wx.SystemSettings.GetColour(wx.SYS_COLOUR_WINDOW))\n",
		"        self.button_1.SetFont(wx.Font(9, wx.FONTFAMILY_SWISS, wx.FONTSTYLE_ITALIC, wx.FONTWEIGHT_BOLD, 1, \"Sans\"))\n",
		"        self.button_1.Hide()\n",
	} {
		assert.Contains(t, code, want)
	}
}

func TestSizerItemsAndSpacer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := codegentest.Project(t, "python", out)
	button := p.Root.Find("button_1")
	assert.NoError(t, button.Item().Option.Set("1"))
	assert.NoError(t, button.Item().Flag.Set("wxALL|wxEXPAND"))
	assert.NoError(t, button.Item().Border.Set("5"))
	codegentest.Add(t, p, "sizer_1", "spacer")
	files, _ := codegentest.Generate(t, p)

	code := files[out]
	assert.Contains(t, code, "sizer_1.Add(self.button_1, 1, wx.ALL | wx.EXPAND, 5)\n")
	assert.Contains(t, code, "sizer_1.Add((20, 20), 0, 0, 0)\n")
}

func TestDialogApplication(t *testing.T) {
	out := filepath.Join(t.TempDir(), "Ogg1.py")
	p := codegentest.Project(t, "python", out)
	dialog := codegentest.Add(t, p, "", "wxDialog")
	p.Options.TopWindow = dialog.Name()
	files, _ := codegentest.Generate(t, p)

	code := files[out]
	assert.Contains(t, code, "class MyDialog(wx.Dialog):\n")
	assert.Contains(t, code, "        self.dialog_1 = MyDialog(None, wx.ID_ANY, \"\")\n")
	assert.Contains(t, code, "        self.dialog_1.ShowModal()\n        self.dialog_1.Destroy()\n")
}
