package templates

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// InviteEmailData holds the invite fields shown in the operator notification
type InviteEmailData struct {
	Name          string
	Likelihood    string
	Availability  string
	Activities    string
	ContactNumber string
	Timestamp     time.Time
}

// DigestRow is one likelihood bucket in the digest email
type DigestRow struct {
	Likelihood string
	Count      int
}

// RenderNewInviteEmail generates the HTML for the new submission notification
func RenderNewInviteEmail(d InviteEmailData) string {
	var b strings.Builder
	b.WriteString("<p>Someone just answered the invite.</p><table>")
	writeRow(&b, "Name", d.Name)
	writeRow(&b, "Likelihood", d.Likelihood)
	writeRow(&b, "Availability", orDash(d.Availability))
	writeRow(&b, "Activities", orDash(d.Activities))
	writeRow(&b, "Contact number", orDash(d.ContactNumber))
	writeRow(&b, "Received", d.Timestamp.UTC().Format(time.RFC1123))
	b.WriteString("</table>")
	return renderLayout("New RSVP from "+d.Name, b.String())
}

// RenderDigestEmail generates the HTML for the periodic submission digest.
// allTime is omitted when it is not positive.
func RenderDigestEmail(since time.Time, rows []DigestRow, total int, allTime int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>%d new RSVPs since %s.</p><table>", total, html.EscapeString(since.UTC().Format(time.RFC1123)))
	for _, r := range rows {
		writeRow(&b, r.Likelihood, fmt.Sprintf("%d", r.Count))
	}
	b.WriteString("</table>")
	if allTime > 0 {
		fmt.Fprintf(&b, "<p>%d RSVPs in total.</p>", allTime)
	}
	return renderLayout("RSVP digest", b.String())
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<tr><td class="label">%s</td><td>%s</td></tr>`, html.EscapeString(label), html.EscapeString(value))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
