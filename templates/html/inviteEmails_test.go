package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderNewInviteEmailEscapes(t *testing.T) {
	out := RenderNewInviteEmail(InviteEmailData{
		Name:       "<b>Alex</b>",
		Likelihood: "hot",
		Timestamp:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, out, "&lt;b&gt;Alex&lt;/b&gt;")
	assert.NotContains(t, out, "<b>Alex</b>")
	assert.Contains(t, out, "hot")
	assert.Contains(t, out, `<td>-</td>`)
}

func TestRenderDigestEmail(t *testing.T) {
	out := RenderDigestEmail(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), []DigestRow{
		{Likelihood: "hot", Count: 2},
		{Likelihood: "mild", Count: 1},
	}, 3, 10)

	assert.Contains(t, out, "3 new RSVPs")
	assert.Contains(t, out, `<td class="label">hot</td><td>2</td>`)
	assert.Contains(t, out, "10 RSVPs in total.")

	out = RenderDigestEmail(time.Now(), nil, 0, 0)
	assert.NotContains(t, out, "in total")
}
