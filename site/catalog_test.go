package site_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-tourism/site"
)

const testCatalog = `
destinations:
  - slug: nainital
    title: Nainital
    category: hills
    text: Boating on the <b>lake</b> & the Mall Road's shops.
    body: <p onclick="steal()">Ropeway to <strong>Snow View</strong></p><script>alert(1)</script>
  - slug: auli
    title: Auli
    category: adventure
    text: Ski slopes facing Nanda Devi.
  - slug: rishikesh
    title: Rishikesh
    category: spiritual
    text: Rafting and yoga by the Ganga.
`

func loadTestCatalog(t *testing.T) *site.Catalog {
	t.Helper()
	c, err := site.LoadCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)
	return c
}

func slugs(ds []site.Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Slug
	}
	return out
}

func TestLoadCatalog_Sanitises(t *testing.T) {
	c := loadTestCatalog(t)
	d := c.All()[0]

	assert.Equal(t, "Boating on the lake & the Mall Road's shops.", d.Text)
	assert.Equal(t, `<p>Ropeway to <strong>Snow View</strong></p>`, string(d.Body))
}

func TestCatalog_Categories(t *testing.T) {
	c := loadTestCatalog(t)
	assert.Equal(t, []string{"hills", "adventure", "spiritual"}, c.Categories())
}

func TestCatalog_Search(t *testing.T) {
	c := loadTestCatalog(t)

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"everything", "", "", []string{"nainital", "auli", "rishikesh"}},
		{"all category", "", site.AllCategories, []string{"nainital", "auli", "rishikesh"}},
		{"title, any case", "AULI", "", []string{"auli"}},
		{"text", "ganga", "", []string{"rishikesh"}},
		{"tags stripped before matching", "<b>", "", []string{}},
		{"category", "", "hills", []string{"nainital"}},
		{"query and category", "ski", "hills", []string{}},
		{"unknown category", "", "beaches", []string{}},
		{"surrounding space ignored", "  lake ", "", []string{"nainital"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugs(c.Search(tt.query, tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q, %q) mismatch (-want +got):\n%s", tt.query, tt.category, diff)
			}
		})
	}
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing slug":   "destinations:\n  - title: X\n    category: hills\n",
		"duplicate slug": "destinations:\n  - {slug: a, category: hills}\n  - {slug: a, category: hills}\n",
		"no category":    "destinations:\n  - {slug: a}\n",
		"category all":   "destinations:\n  - {slug: a, category: all}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := site.LoadCatalog(strings.NewReader(doc))
			assert.ErrorIs(t, err, site.ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalog_BadYAML(t *testing.T) {
	_, err := site.LoadCatalog(strings.NewReader("destinations: ["))
	assert.Error(t, err)
}

func TestLoadCatalogFile(t *testing.T) {
	fsys := fstest.MapFS{"catalog.yaml": {Data: []byte(testCatalog)}}
	c, err := site.LoadCatalogFile(fsys, "catalog.yaml")
	require.NoError(t, err)
	assert.Len(t, c.All(), 3)

	_, err = site.LoadCatalogFile(fsys, "missing.yaml")
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	c, err := site.DefaultCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, c.All())
	assert.Contains(t, c.Categories(), "spiritual")
}
