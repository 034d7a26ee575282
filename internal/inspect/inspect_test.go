package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/artpop/internal/fragment"
	"github.com/Nomadcxx/artpop/internal/patch"
	"github.com/Nomadcxx/artpop/internal/portfolio"
)

func sampleYears() []portfolio.YearDirectory {
	return []portfolio.YearDirectory{
		{Name: "2", Files: []portfolio.MediaFile{{Name: "early.gif"}}},
		{Name: "2014"},
		{Name: "2015", Files: []portfolio.MediaFile{{Name: "A & B.jpg"}, {Name: "<odd> 'name'.png"}}},
		{Name: "2020", Files: []portfolio.MediaFile{{Name: "x.png"}}},
	}
}

func TestRead_RoundTrip(t *testing.T) {
	years := sampleYears()
	p := patch.New(patch.DefaultMarkers)

	res, err := p.Apply("<html><main>\n</main></html>", fragment.Build(fragment.DefaultPrefix, years))
	require.NoError(t, err)

	got, ok, err := Read(res.Text, p)
	require.NoError(t, err)
	require.True(t, ok)

	want := FromScan(fragment.DefaultPrefix, years)
	assert.Equal(t, want, got)

	missing, extra := Diff(want, got)
	assert.Empty(t, missing)
	assert.Empty(t, extra)
}

func TestRead_NoMarkers(t *testing.T) {
	entries, ok, err := Read("<main></main>", patch.New(patch.DefaultMarkers))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entries)
}

func TestParse_DecodesEntities(t *testing.T) {
	entries, err := Parse(`<h2>2021</h2><ul><li><a href="images/portfolio/2021/A%20%26%20B.jpg">A &amp; B.jpg</a></li></ul>`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Year: "2021", Filename: "A & B.jpg", Href: "images/portfolio/2021/A%20%26%20B.jpg"}, entries[0])
}

func TestDiff(t *testing.T) {
	want := []Entry{{Year: "2020", Filename: "b.jpg"}, {Year: "2020", Filename: "a.jpg"}, {Year: "2021", Filename: "c.jpg"}}
	have := []Entry{{Year: "2020", Filename: "a.jpg"}, {Year: "2019", Filename: "old.jpg"}}

	missing, extra := Diff(want, have)
	assert.Equal(t, []Entry{{Year: "2020", Filename: "b.jpg"}, {Year: "2021", Filename: "c.jpg"}}, missing)
	assert.Equal(t, []Entry{{Year: "2019", Filename: "old.jpg"}}, extra)
}

func TestDiff_ComparesHref(t *testing.T) {
	tests := []struct {
		name    string
		want    []Entry
		have    []Entry
		missing int
		extra   int
	}{
		{
			name:    "same href",
			want:    []Entry{{Year: "2020", Filename: "a.jpg", Href: "images/portfolio/2020/a.jpg"}},
			have:    []Entry{{Year: "2020", Filename: "a.jpg", Href: "images/portfolio/2020/a.jpg"}},
			missing: 0,
			extra:   0,
		},
		{
			name:    "prefix changed",
			want:    []Entry{{Year: "2020", Filename: "a.jpg", Href: "/media/2020/a.jpg"}},
			have:    []Entry{{Year: "2020", Filename: "a.jpg", Href: "images/portfolio/2020/a.jpg"}},
			missing: 1,
			extra:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, extra := Diff(tt.want, tt.have)
			assert.Len(t, missing, tt.missing)
			assert.Len(t, extra, tt.extra)
		})
	}
}
