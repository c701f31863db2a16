package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageHTML = `
<html>
	<body>
		<section id="postingbody">Looking for runway models. Email us.</section>
		<p class="attrgroup">compensation: $300/day</p>
		<a href="mailto:relay@relay.craigslist.org?subject=gig">reply</a>
	</body>
</html>`

func TestPage_Text(t *testing.T) {
	page, err := NewPage(pageHTML)
	require.NoError(t, err)
	assert.Equal(t, "Looking for runway models. Email us.", page.Text("#postingbody"))
	assert.Equal(t, "compensation: $300/day", page.Text(".attrgroup"))
}

func TestPage_TextAbsentSelector(t *testing.T) {
	page, err := NewPage(pageHTML)
	require.NoError(t, err)
	assert.Equal(t, "", page.Text(".does-not-exist"))
}

func TestPage_Attr(t *testing.T) {
	page, err := NewPage(pageHTML)
	require.NoError(t, err)
	assert.Equal(t, "mailto:relay@relay.craigslist.org?subject=gig", page.Attr(`a[href^="mailto:"]`, "href"))
}

func TestPage_AttrAbsent(t *testing.T) {
	page, err := NewPage(pageHTML)
	require.NoError(t, err)
	assert.Equal(t, "", page.Attr("a", "data-missing"))
	assert.Equal(t, "", page.Attr(".nope", "href"))
}

func TestPage_Find(t *testing.T) {
	page, err := NewPage(`<ul><li class="row">a</li><li class="row">b</li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Find(".row").Length())
}
