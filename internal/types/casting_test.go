package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastingID_FromListingURL(t *testing.T) {
	id := CastingID("https://newyork.craigslist.org/mnh/tlg/d/new-york-runway-models/7712345678.html")
	assert.Equal(t, "7712345678", id)
}

func TestCastingID_NoExtension(t *testing.T) {
	id := CastingID("https://example.org/postings/abc123")
	assert.Equal(t, "abc123", id)
}

func TestCastingID_Unparseable(t *testing.T) {
	id := CastingID("https://example.org/")
	assert.True(t, strings.HasPrefix(id, "cl_"))
	assert.Greater(t, len(id), len("cl_"))
}

func TestNewCasting_TruncatesDescription(t *testing.T) {
	body := strings.Repeat("x", 600)
	c := NewCasting(Listing{Title: "Runway show", URL: "https://x.org/d/1.html"}, body, "a@b.co", "Not specified", 0)
	assert.Len(t, c.Description, DefaultDescriptionLimit)
	assert.Equal(t, SourceCraigslist, c.Source)
	assert.Equal(t, "a@b.co", c.Email)
}

func TestNewCasting_CustomLimit(t *testing.T) {
	c := NewCasting(Listing{URL: "https://x.org/d/2.html"}, "abcdef", "a@b.co", "pay: $200", 4)
	assert.Equal(t, "abcd", c.Description)
	assert.Equal(t, "pay: $200", c.Compensation)
}

func TestNewCasting_ShortBodyUntouched(t *testing.T) {
	c := NewCasting(Listing{URL: "https://x.org/d/3.html"}, "short body", "a@b.co", "Not specified", 0)
	assert.Equal(t, "short body", c.Description)
}

func TestProfileValidate_MissingEmail(t *testing.T) {
	p := &Profile{Name: "Jane Doe", Phone: "555-0100"}
	require.Error(t, p.Validate())
}

func TestProfileValidate_InvalidEmail(t *testing.T) {
	p := &Profile{Email: "not-an-email"}
	require.Error(t, p.Validate())
}

func TestProfileValidate_EmailOnlyIsEnough(t *testing.T) {
	p := &Profile{Email: "jane@example.com"}
	require.NoError(t, p.Validate())
}
