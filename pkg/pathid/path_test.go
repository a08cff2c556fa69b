package pathid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "."},
		{".", "."},
		{"a/b/c", "a/b/c"},
		{"a//b", "a/b"},
		{"a/./b", "a/b"},
		{"a/b/../c", "a/c"},
		{"/a/b", "/a/b"},
		{"/a/../b", "/b"},
		{`a\b\c`, "a/b/c"},
		{`C:\a\b`, "C:/a/b"},
		{`\\server\share`, "//server/share"},
		{"docs/", "docs"},
		{"a/b/c/", "a/b/c"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Clean(c.in), "Clean(%q)", c.in)
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		in, parent, name string
	}{
		{"readme.md", ".", "readme.md"},
		{"docs/readme.md", "docs", "readme.md"},
		{"a/b/c", "a/b", "c"},
		{"/a/b", "/a", "b"},
	}
	for _, c := range cases {
		parent, name := Split(c.in)
		assert.Equal(t, c.parent, parent, "parent(%q)", c.in)
		assert.Equal(t, c.name, name, "name(%q)", c.in)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "b", Join("", "b"))
	assert.Equal(t, "b", Join(".", "b"))
	assert.Equal(t, "a/b", Join("a", "b"))
	assert.Equal(t, "a/b", Join("a/", "b"))
}

func TestJoinSplitRoundTrip(t *testing.T) {
	// R2: join(parent(p), name(p)) == clean(p)
	for _, p := range []string{"a/b/c", "docs/readme.md", "x"} {
		parent, name := Split(p)
		assert.Equal(t, Clean(p), Join(parent, name))
	}
}

func TestRelative(t *testing.T) {
	assert.Equal(t, ".", Relative("/root", "/root"))
	assert.Equal(t, "docs/a.md", Relative("/root", "/root/docs/a.md"))
	assert.Equal(t, "", Relative("/root", "/other/a.md"))
	assert.Equal(t, "docs", Relative(".", "docs"))
}

func TestNewUUIDIsUnique(t *testing.T) {
	a := NewUUID()
	b := NewUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestNowMillisMonotonicEnough(t *testing.T) {
	a := NowMillis()
	b := NowMillis()
	assert.GreaterOrEqual(t, b, a)
}
