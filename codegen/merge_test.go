package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxglade/wxglade/codegen"
)

var pyNaming = codegen.Naming{Source: ".py", CommentStart: "#"}

func TestParseRegions(t *testing.T) {
	content := `import wx
# begin wxGlade user code: extracode
import os
# end wxGlade user code: extracode
class A:
    # begin wxGlade user code: A.init
    # end wxGlade user code: A.init
`
	regions, err := codegen.ParseRegions(content)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"extracode": "import os\n", "A.init": ""}, regions)
}

func TestParseRegionsXMLComments(t *testing.T) {
	content := "<!-- begin wxGlade user code: extracode -->\nx\n<!-- end wxGlade user code: extracode -->\n"
	regions, err := codegen.ParseRegions(content)
	require.NoError(t, err)
	assert.Equal(t, "x\n", regions["extracode"])
}

func TestParseRegionsErrors(t *testing.T) {
	tests := map[string]string{
		"nested": "# begin wxGlade user code: a\n# begin wxGlade user code: b\n" +
			"# end wxGlade user code: b\n# end wxGlade user code: a\n",
		"duplicate": "# begin wxGlade user code: a\n# end wxGlade user code: a\n" +
			"# begin wxGlade user code: a\n# end wxGlade user code: a\n",
		"orphan end": "# end wxGlade user code: a\n",
		"mismatch":   "# begin wxGlade user code: a\n# end wxGlade user code: b\n",
		"unclosed":   "# begin wxGlade user code: a\ncode\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := codegen.ParseRegions(content)
			assert.Error(t, err)
		})
	}
}

func sampleDoc() *codegen.Doc {
	doc := &codegen.Doc{}
	doc.In("", codegen.BlockHeader).Line("import wx")
	doc.Region("extracode", "")
	doc.In("A", codegen.BlockConstructor).Line("class A:")
	doc.Region("A.init", "    ", "    pass")
	return doc
}

func TestDocRender(t *testing.T) {
	doc := sampleDoc()
	assert.Equal(t, []string{"extracode", "A.init"}, doc.Regions())
	assert.Equal(t, `import wx
# begin wxGlade user code: extracode
# end wxGlade user code: extracode
class A:
    # begin wxGlade user code: A.init
    pass
    # end wxGlade user code: A.init
`, doc.Render(pyNaming, nil))
}

func TestMerge(t *testing.T) {
	existing := `import wx
# begin wxGlade user code: extracode
import os
# end wxGlade user code: extracode
class A:
    # begin wxGlade user code: A.init
    self.x = 1
    # end wxGlade user code: A.init
    # begin wxGlade user code: A.gone
    self.y = 2
    # end wxGlade user code: A.gone
    # begin wxGlade user code: A.blank

    # end wxGlade user code: A.blank
`
	m := codegen.Merge(sampleDoc(), pyNaming, existing)
	assert.False(t, m.Overwritten)
	assert.Equal(t, []string{"extracode", "A.init"}, m.Preserved)
	assert.Equal(t, []string{"A.gone"}, m.Orphaned)
	assert.Equal(t, 4, m.Found)
	assert.Equal(t, `import wx
# begin wxGlade user code: extracode
import os
# end wxGlade user code: extracode
class A:
    # begin wxGlade user code: A.init
    self.x = 1
    # end wxGlade user code: A.init
`, m.Content)
}

func TestMergeBrokenMarkers(t *testing.T) {
	m := codegen.Merge(sampleDoc(), pyNaming, "# begin wxGlade user code: extracode\nimport os\n")
	assert.True(t, m.Overwritten)
	assert.Contains(t, m.Reason, "not closed")
	assert.Equal(t, sampleDoc().Render(pyNaming, nil), m.Content)
}

func TestMergeIsIdempotent(t *testing.T) {
	first := codegen.Merge(sampleDoc(), pyNaming, sampleDoc().Render(pyNaming, nil))
	second := codegen.Merge(sampleDoc(), pyNaming, first.Content)
	assert.Equal(t, first.Content, second.Content)
}
