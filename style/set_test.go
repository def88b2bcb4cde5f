package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxglade/wxglade/errors"
)

var hyperlinkNames = []string{
	"wxHL_ALIGN_LEFT", "wxHL_ALIGN_RIGHT", "wxHL_ALIGN_CENTRE", "wxHL_CONTEXTMENU", "wxHL_DEFAULT_STYLE",
}

func newSet(t *testing.T, class string) *Set {
	t.Helper()
	cls, ok := Default().Class(class)
	require.True(t, ok, "class %s missing from catalog", class)
	return NewSet(cls)
}

func TestCatalogNames(t *testing.T) {
	assert.Equal(t, hyperlinkNames, Default().Names("wxHyperlinkCtrl"))
	assert.Nil(t, Default().Names("wxNoSuchWidget"))
	assert.Contains(t, Default().Classes(), "sizeritem")
}

func TestCatalogNamesAreACopy(t *testing.T) {
	names := Default().Names("wxHyperlinkCtrl")
	names[0] = "changed"
	assert.Equal(t, "wxHL_ALIGN_LEFT", Default().Names("wxHyperlinkCtrl")[0])
}

func TestSetAllStyles(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	require.NoError(t, s.Set(hyperlinkNames))
	assert.Equal(t, "wxHL_ALIGN_LEFT|wxHL_ALIGN_RIGHT|wxHL_ALIGN_CENTRE|wxHL_CONTEXTMENU|wxHL_DEFAULT_STYLE", s.String())
}

func TestSetFromMask(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	require.NoError(t, s.Set([]bool{true, false, true, false, false}))

	assert.Equal(t, []string{"wxHL_ALIGN_LEFT", "wxHL_ALIGN_CENTRE"}, s.Names())
	assert.Equal(t, []bool{true, false, true, false, false}, s.Mask())
}

func TestSetMaskTooLong(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	err := s.Set(make([]bool, 6))
	require.Error(t, err)
	assert.Equal(t, errors.InvalidStyle, errors.KindOf(err))
}

func TestStringUsesDeclaredOrder(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	require.NoError(t, s.Set("wxHL_DEFAULT_STYLE | wxHL_ALIGN_LEFT"))
	assert.Equal(t, "wxHL_ALIGN_LEFT|wxHL_DEFAULT_STYLE", s.String())
}

func TestEmptyValues(t *testing.T) {
	for _, value := range []interface{}{nil, "", "  ", []string{}} {
		s := newSet(t, "wxHyperlinkCtrl")
		require.NoError(t, s.Set("wxHL_ALIGN_LEFT"))
		require.NoError(t, s.Set(value))

		assert.Equal(t, 0, s.Len())
		assert.Equal(t, "", s.String())
		assert.Equal(t, []bool{false, false, false, false, false}, s.Mask())
		assert.Equal(t, int64(0), s.Int(nil))
	}
}

func TestUnknownStyleRejected(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	require.NoError(t, s.Set("wxHL_ALIGN_LEFT"))

	err := s.Set("wxHL_ALIGN_LEFT|wxFANCY")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidStyle))
	assert.Contains(t, err.Error(), `"wxFANCY"`)
	// previous selection survives a failed Set
	assert.Equal(t, "wxHL_ALIGN_LEFT", s.String())
}

func TestUnknownStyleAllowed(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	s.AllowUnknown = true
	require.NoError(t, s.Set("wxFANCY|wxHL_ALIGN_RIGHT"))

	assert.Equal(t, "wxHL_ALIGN_RIGHT|wxFANCY", s.String())
	assert.True(t, s.Has("wxFANCY"))
	assert.Equal(t, int64(0x0002), s.Int(MustVersion("3.0")))
	assert.Equal(t, []string{"wxFANCY"}, s.Unsupported(MustVersion("3.0")))
}

func TestUnsupportedStyleForVersion(t *testing.T) {
	s := newSet(t, "wxStaticText")
	require.NoError(t, s.Set("wxST_ELLIPSIZE_MIDDLE"))

	v28 := MustVersion("2.8")
	assert.Equal(t, []string{"wxST_ELLIPSIZE_MIDDLE"}, s.Names())
	assert.Equal(t, int64(0), s.Int(v28))
	assert.Empty(t, s.Supported(v28))
	assert.Equal(t, []string{"wxST_ELLIPSIZE_MIDDLE"}, s.Unsupported(v28))

	assert.Equal(t, int64(0x0008), s.Int(MustVersion("3.0")))
}

func TestIntCombinations(t *testing.T) {
	s := newSet(t, "wxHyperlinkCtrl")
	require.NoError(t, s.Set("wxHL_DEFAULT_STYLE"))
	assert.Equal(t, int64(0x0008|0x00200000|0x0004), s.Int(MustVersion("3.0")))

	flags := newSet(t, "sizeritem")
	require.NoError(t, flags.Set([]string{"wxALL", "wxEXPAND"}))
	assert.Equal(t, int64(0x10|0x20|0x40|0x80|0x2000), flags.Int(nil))
}

func TestStringRoundTripIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"wxHL_CONTEXTMENU",
		"wxHL_DEFAULT_STYLE|wxHL_ALIGN_LEFT",
		"wxHL_ALIGN_RIGHT|wxHL_ALIGN_LEFT|wxHL_ALIGN_CENTRE",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			s := newSet(t, "wxHyperlinkCtrl")
			require.NoError(t, s.Set(in))
			first := s.String()

			again := newSet(t, "wxHyperlinkCtrl")
			require.NoError(t, again.Set(first))
			assert.Equal(t, first, again.String())
		})
	}
}

func TestClone(t *testing.T) {
	s := newSet(t, "wxButton")
	require.NoError(t, s.Set("wxBU_LEFT"))
	c := s.Clone()
	require.NoError(t, c.Add("wxBU_EXACTFIT"))

	assert.Equal(t, "wxBU_LEFT", s.String())
	assert.Equal(t, "wxBU_LEFT|wxBU_EXACTFIT", c.String())
}

func TestLoadCatalogErrors(t *testing.T) {
	_, err := LoadCatalog([]byte("classes:\n  wxX:\n    - {name: wxUNDECLARED}\n"))
	assert.Error(t, err)

	_, err = LoadCatalog([]byte("classes:\n  wxX:\n    - {name: wxA, value: 1}\n    - {name: wxA, value: 2}\n"))
	assert.Error(t, err)

	_, err = LoadCatalog([]byte("classes:\n  wxX:\n    - {name: wxA, value: 1, since: nope}\n"))
	assert.Error(t, err)
}
