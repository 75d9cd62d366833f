package pages

import (
	"fmt"
	"html"
	"strings"

	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

// bookmarksPage lists all bookmarks sorted by title.
func (p *Pages) bookmarksPage(_ *scheme.Request) (*scheme.Response, error) {
	var sb strings.Builder

	sb.WriteString("<ul>\n")
	for _, mark := range p.cfg.Bookmarks.Marks() {
		fmt.Fprintf(&sb, "<li><a href=\"%s\">%s</a></li>\n",
			html.EscapeString(mark.URL), html.EscapeString(mark.Title))
	}
	sb.WriteString("</ul>\n")

	return scheme.TextResponse("text/html", renderPage("Bookmarks", sb.String())), nil
}
