package pages

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

// versionPage renders build and runtime information, plus the list of
// registered pages. Also registered under the "about" alias.
func (p *Pages) versionPage(r *scheme.Request) (*scheme.Response, error) {
	var sb strings.Builder

	sb.WriteString("<dl>\n")
	for _, row := range [][2]string{
		{"Version", p.cfg.Version},
		{"Revision", p.cfg.Revision},
		{"Go", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
	} {
		fmt.Fprintf(&sb, "<dt>%s</dt><dd>%s</dd>\n",
			html.EscapeString(row[0]), html.EscapeString(row[1]))
	}
	sb.WriteString("</dl>\n<h2>Registered pages</h2>\n<ul>\n")
	for _, name := range p.registry.Names() {
		fmt.Fprintf(&sb, "<li>%s://%s/</li>\n", html.EscapeString(r.Scheme), html.EscapeString(name))
	}
	sb.WriteString("</ul>\n")

	return scheme.TextResponse("text/html", renderPage("Version info", sb.String())), nil
}

// SetEvalOutput replaces the text shown by the eval page. Called by the
// host whenever its evaluator produces new output.
func (p *Pages) SetEvalOutput(output string) {
	p.evalMu.Lock()
	p.evalOutput = output
	p.evalMu.Unlock()
}

func (p *Pages) evalPage(_ *scheme.Request) (*scheme.Response, error) {
	p.evalMu.Lock()
	output := p.evalOutput
	p.evalMu.Unlock()

	return scheme.TextResponse("text/html", renderPre("eval", output)), nil
}

// licensePage serves the license text from the doc root. A missing file
// surfaces as an I/O failure for the host to report.
func (p *Pages) licensePage(_ *scheme.Request) (*scheme.Response, error) {
	data, err := os.ReadFile(filepath.Join(p.cfg.DocRoot, "COPYING.html"))
	if err != nil {
		return nil, err
	}
	return scheme.TextResponse("text/html", string(data)), nil
}
