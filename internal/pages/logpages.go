package pages

import (
	"github.com/sirupsen/logrus"

	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

// logLevel resolves the optional "level" query parameter. Everything is
// shown when the parameter is absent.
func logLevel(r *scheme.Request) (logrus.Level, error) {
	value := r.QueryValue("level")
	if value == "" {
		return logrus.TraceLevel, nil
	}

	level, err := logrus.ParseLevel(value)
	if err != nil {
		return 0, scheme.NewError("Query parameter level is invalid", 400)
	}
	return level, nil
}

const logTableHead = `<table>
<tr><th>Time</th><th>Level</th><th>Message</th></tr>
`

// logPage renders the in-memory log ring as an HTML table. An optional
// "level" query parameter sets the minimum severity, e.g.
// app://log/?level=warning.
func (p *Pages) logPage(r *scheme.Request) (*scheme.Response, error) {
	if p.cfg.LogBuffer == nil {
		return scheme.TextResponse("text/html", renderPre("log", "Log output was disabled.")), nil
	}

	level, err := logLevel(r)
	if err != nil {
		return nil, err
	}

	body := logTableHead + p.cfg.LogBuffer.DumpHTML(level) + "</table>\n"
	return scheme.TextResponse("text/html", renderPage("log", body)), nil
}

// plainLogPage is logPage without markup around the messages.
func (p *Pages) plainLogPage(r *scheme.Request) (*scheme.Response, error) {
	if p.cfg.LogBuffer == nil {
		return scheme.TextResponse("text/html", renderPre("log", "Log output was disabled.")), nil
	}

	level, err := logLevel(r)
	if err != nil {
		return nil, err
	}

	return scheme.TextResponse("text/html", renderPre("log", p.cfg.LogBuffer.Dump(level))), nil
}
