package templates

import (
	"fmt"
	"html"
)

// renderLayout wraps already-safe HTML in the shared email chrome. The title
// is escaped here.
func renderLayout(title, htmlBody string) string {
	safeTitle := html.EscapeString(title)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #1a0b0b; }
    .container { max-width: 600px; margin: 0 auto; background-color: #241212; }
    .header { background: linear-gradient(135deg, #f97316 0%%, #dc2626 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #e5e7eb; line-height: 1.6; font-size: 15px; }
    .content table { width: 100%%; border-collapse: collapse; }
    .content td { padding: 6px 0; border-bottom: 1px solid rgba(255,255,255,0.08); }
    .content td.label { color: #9ca3af; width: 40%%; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(255,255,255,0.1); }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>Sent by your RSVP wizard</p>
    </div>
  </div>
</body>
</html>`, safeTitle, safeTitle, htmlBody)
}
