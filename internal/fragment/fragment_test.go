package fragment

import (
	"strings"
	"testing"

	"github.com/Nomadcxx/artpop/internal/portfolio"
	"github.com/stretchr/testify/assert"
)

func files(names ...string) []portfolio.MediaFile {
	out := make([]portfolio.MediaFile, 0, len(names))
	for _, n := range names {
		out = append(out, portfolio.MediaFile{Name: n})
	}
	return out
}

func TestYearBlock_Structure(t *testing.T) {
	got := YearBlock(DefaultPrefix, "2020", files("a.jpg", "b.png"))

	want := "\t\t\t\t<h2>2020</h2>\n" +
		"\t\t\t\t<ul style=\"list-style-type: none; padding: 0;\">\n" +
		"\t\t\t\t\t<li><a href=\"images/portfolio/2020/a.jpg\">a.jpg</a></li>\n" +
		"\t\t\t\t\t<li><a href=\"images/portfolio/2020/b.png\">b.png</a></li>\n" +
		"\t\t\t\t</ul>"

	assert.Equal(t, want, got)
}

func TestYearBlock_Escaping(t *testing.T) {
	got := YearBlock(DefaultPrefix, "2021", files("A & B.jpg"))

	assert.Contains(t, got, `href="images/portfolio/2021/A%20%26%20B.jpg"`)
	assert.Contains(t, got, `>A &amp; B.jpg</a>`)
}

func TestBuild(t *testing.T) {
	years := []portfolio.YearDirectory{
		{Name: "2014"},
		{Name: "2015", Files: files("a.jpg")},
		{Name: "2016", Files: files("b.jpg")},
	}

	got := Build(DefaultPrefix, years)

	assert.NotContains(t, got, "2014")
	assert.True(t, strings.HasSuffix(got, "</ul>\n"))
	assert.Equal(t,
		YearBlock(DefaultPrefix, "2015", files("a.jpg"))+"\n\n"+YearBlock(DefaultPrefix, "2016", files("b.jpg"))+"\n",
		got)
}

func TestBuild_Empty(t *testing.T) {
	assert.Equal(t, "", Build(DefaultPrefix, nil))
	assert.Equal(t, "", Build(DefaultPrefix, []portfolio.YearDirectory{{Name: "2014"}}))
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain-name_1.jpg", "plain-name_1.jpg"},
		{"with space.png", "with%20space.png"},
		{"a&b.jpg", "a%26b.jpg"},
		{"100%.gif", "100%25.gif"},
		{"q?x=1#y.jpg", "q%3Fx%3D1%23y.jpg"},
		{"tilde~.svg", "tilde~.svg"},
		{"café.jpg", "caf%C3%A9.jpg"},
		{`quote".jpg`, "quote%22.jpg"},
		{"plus+comma,.jpg", "plus%2Bcomma%2C.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapePath(tt.in))
		})
	}
}

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "A &amp; B.jpg", EscapeText("A & B.jpg"))
	assert.Equal(t, "&lt;b&gt;&quot;x&quot; &#x27;y&#x27;", EscapeText(`<b>"x" 'y'`))
	assert.Equal(t, "café.jpg", EscapeText("café.jpg"))
}
