package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmails_Strict(t *testing.T) {
	got := Emails("Send headshots to casting@agency.com before Friday")
	assert.Equal(t, []string{"casting@agency.com"}, got)
}

func TestEmails_WhitespaceTolerant(t *testing.T) {
	got := Emails("reach us at bookings @ studio . com thanks")
	assert.Equal(t, []string{"bookings@studio.com"}, got)
}

func TestEmails_BracketObfuscation(t *testing.T) {
	got := Emails("Contact me: jane [AT] example [DOT] com")
	assert.Equal(t, []string{"jane@example.com"}, got)
}

func TestEmails_ParenObfuscation(t *testing.T) {
	got := Emails("reach ME at Bob(at)Studio(dot)NET please")
	assert.Equal(t, []string{"bob@studio.net"}, got)
}

func TestEmails_OverlappingPatternsDeduplicate(t *testing.T) {
	// The strict and whitespace-tolerant families both fire on this text;
	// the result set must still hold the address once.
	got := Emails("apply: talent@nyc-castings.com")
	assert.Equal(t, []string{"talent@nyc-castings.com"}, got)
}

func TestEmails_MultipleAddressesKeepOrder(t *testing.T) {
	got := Emails("first a@one.com then b [at] two [dot] org")
	assert.Equal(t, []string{"a@one.com", "b@two.org"}, got)
}

func TestEmails_CaseNormalized(t *testing.T) {
	got := Emails("Email JANE@Example.COM")
	assert.Equal(t, []string{"jane@example.com"}, got)
}

func TestEmails_NoAddressLikeText(t *testing.T) {
	assert.Empty(t, Emails("open call saturday at noon, bring comp cards"))
	assert.Empty(t, Emails(""))
}

func TestFromMailto_StripsQuery(t *testing.T) {
	got := FromMailto("mailto:relay123@relay.craigslist.org?subject=x")
	assert.Equal(t, "relay123@relay.craigslist.org", got)
}

func TestFromMailto_PlainHref(t *testing.T) {
	got := FromMailto("mailto:Reply@Example.org")
	assert.Equal(t, "reply@example.org", got)
}

func TestFromMailto_Empty(t *testing.T) {
	assert.Equal(t, "", FromMailto(""))
	assert.Equal(t, "", FromMailto("mailto:"))
}
