package pages

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

const historyPageSize = 1000

// historyEntry is the JSON shape consumed by the host's history widget.
// Time is in epoch milliseconds.
type historyEntry struct {
	URL   string  `json:"url"`
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// historyPage serves both forms of the history page: the machine-readable
// /data subpath and the rendered per-day view.
func (p *Pages) historyPage(r *scheme.Request) (*scheme.Response, error) {
	if r.Path == "/data" {
		return p.historyData(r)
	}
	return p.historyDay(r)
}

// historyData returns history entries as JSON. Query parameters: "offset"
// (int, entries to skip) and "start_time" (float epoch seconds, defaults
// to now). Malformed values reject the request.
func (p *Pages) historyData(r *scheme.Request) (*scheme.Response, error) {
	offset := 0
	if value := r.QueryValue("offset"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return nil, scheme.NewError("Query parameter offset is invalid", 400)
		}
		offset = parsed
	}

	start := float64(time.Now().Unix())
	if value := r.QueryValue("start_time"); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, scheme.NewError("Query parameter start_time is invalid", 400)
		}
		start = parsed
	}

	entries, err := p.cfg.History.EntriesBefore(start, historyPageSize, offset)
	if err != nil {
		return nil, err
	}

	payload := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = e.URL
		}
		payload = append(payload, historyEntry{URL: e.URL, Title: title, Time: e.Atime * 1000})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return scheme.DataResponse("application/json", data), nil
}

// historyDay renders the visits of one day. The "date" query parameter
// selects the day (ISO form); a malformed date falls back to today.
func (p *Pages) historyDay(r *scheme.Request) (*scheme.Response, error) {
	day := time.Now().Truncate(24 * time.Hour)
	if value := r.QueryValue("date"); value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			log.WithField("date", value).Debug("Invalid date passed to app://history")
		} else {
			day = parsed
		}
	}

	// The window ends on the last second of the selected day.
	end := float64(day.AddDate(0, 0, 1).Unix() - 1)
	start := end - 24*60*60

	entries, err := p.cfg.History.EntriesBetween(start, end)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<p><a href=\"?date=%s\">&laquo; prev</a> | <a href=\"?date=%s\">next &raquo;</a></p>\n",
		day.AddDate(0, 0, -1).Format("2006-01-02"),
		day.AddDate(0, 0, 1).Format("2006-01-02"))
	sb.WriteString("<table>\n<tr><th>Time</th><th>Title</th><th>URL</th></tr>\n")
	for _, e := range entries {
		at := time.Unix(int64(e.Atime), 0)
		title := e.Title
		if title == "" {
			title = e.URL
		}
		fmt.Fprintf(&sb, "<tr><td>%s</td><td>%s</td><td><a href=\"%s\">%s</a></td></tr>\n",
			at.Format("15:04"),
			html.EscapeString(title),
			html.EscapeString(e.URL),
			html.EscapeString(e.URL))
	}
	sb.WriteString("</table>\n")

	title := fmt.Sprintf("History for %s", day.Format("2006-01-02"))
	return scheme.TextResponse("text/html", renderPage(title, sb.String())), nil
}
