package digest

import (
	"fmt"
	"strings"

	"github.com/selah-content-api/internal/models"
)

const textRule = "----------------------------------------"

// articleLink builds the link target for an article. With no base URL
// the link degrades to the hash-fragment route the reader app serves.
func articleLink(baseURL, articleID string) string {
	if baseURL == "" {
		return "#/articles/" + articleID
	}
	return strings.TrimSuffix(baseURL, "/") + "/#/articles/" + articleID
}

// RenderText renders the digest as a plain-text email body. Output is a
// pure function of the digest and base URL; quote and paragraph text
// pass through unmodified.
func RenderText(d *models.Digest, baseURL string) string {
	var b strings.Builder

	b.WriteString(d.Subject + "\n")
	b.WriteString(textRule + "\n\n")

	if r := d.Reflection; r != nil {
		b.WriteString(r.Title + "\n\n")
		fmt.Fprintf(&b, "%s (%s)\n\n", r.Scripture.Text, r.Scripture.Ref)
		b.WriteString(r.Body + "\n\n")
		fmt.Fprintf(&b, "Prayer: %s\n\n", r.Prayer)
		if len(r.Questions) > 0 {
			b.WriteString("For reflection:\n")
			for _, q := range r.Questions {
				b.WriteString("  - " + q + "\n")
			}
			b.WriteString("\n")
		}
	}

	if len(d.Articles) > 0 {
		b.WriteString("In this edition:\n\n")
		for _, a := range d.Articles {
			b.WriteString("* " + a.Title + "\n")
			b.WriteString("  " + a.Excerpt + "\n")
			b.WriteString("  " + articleLink(baseURL, a.ID) + "\n\n")
		}
	}

	if r := d.Reflection; r != nil {
		fmt.Fprintf(&b, "\"%s\"\n    %s\n", r.Quote.Text, r.Quote.Author)
	}
	return b.String()
}

// RenderHTML renders the digest as a single-table HTML email. All text
// is generator-controlled, so it is written into the document verbatim;
// explicit string building keeps the output byte-stable across releases.
func RenderHTML(d *models.Digest, baseURL string) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString("<title>" + d.Subject + "</title>\n")
	b.WriteString("</head>\n<body style=\"margin:0;padding:24px;background-color:#f5f2ec;font-family:Georgia,serif;color:#2d2a26;\">\n")
	b.WriteString(`<table role="presentation" width="600" align="center" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border:1px solid #e3ddd2;">` + "\n")

	fmt.Fprintf(&b, "<tr><td style=\"padding:24px 32px;border-bottom:2px solid #8a7b64;\"><h1 style=\"margin:0;font-size:22px;\">%s</h1></td></tr>\n", d.Subject)

	if r := d.Reflection; r != nil {
		b.WriteString(`<tr><td style="padding:24px 32px;">` + "\n")
		fmt.Fprintf(&b, "<h2 style=\"margin:0 0 12px 0;font-size:19px;\">%s</h2>\n", r.Title)
		fmt.Fprintf(&b, "<p style=\"margin:0 0 12px 0;font-style:italic;\">%s <span style=\"font-style:normal;color:#8a7b64;\">(%s)</span></p>\n", r.Scripture.Text, r.Scripture.Ref)
		fmt.Fprintf(&b, "<p style=\"margin:0 0 12px 0;line-height:1.6;\">%s</p>\n", r.Body)
		fmt.Fprintf(&b, "<p style=\"margin:0;color:#5c5346;\">Prayer: %s</p>\n", r.Prayer)
		b.WriteString("</td></tr>\n")
	}

	for _, a := range d.Articles {
		b.WriteString(`<tr><td style="padding:16px 32px;border-top:1px solid #e3ddd2;">` + "\n")
		fmt.Fprintf(&b, "<h3 style=\"margin:0 0 6px 0;font-size:16px;\"><a href=\"%s\" style=\"color:#5c4a32;\">%s</a></h3>\n", articleLink(baseURL, a.ID), a.Title)
		fmt.Fprintf(&b, "<p style=\"margin:0;color:#5c5346;line-height:1.5;\">%s</p>\n", a.Excerpt)
		b.WriteString("</td></tr>\n")
	}

	if r := d.Reflection; r != nil {
		fmt.Fprintf(&b, "<tr><td style=\"padding:20px 32px;border-top:2px solid #8a7b64;color:#5c5346;\">&ldquo;%s&rdquo;<br><span style=\"color:#8a7b64;\">%s</span></td></tr>\n", r.Quote.Text, r.Quote.Author)
	}

	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}
