// Package pages implements the builtin app:// pages: version info, log
// viewers, history, bookmarks, help and the evaluator output page.
//
// The dispatch protocol lives in internal/scheme; everything here is page
// content generation on top of it.
package pages

import (
	"fmt"
	"html"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"gitlab.com/tachyons/app-scheme/internal/bookmarks"
	"gitlab.com/tachyons/app-scheme/internal/history"
	"gitlab.com/tachyons/app-scheme/internal/logbuf"
	"gitlab.com/tachyons/app-scheme/internal/scheme"
	"gitlab.com/tachyons/app-scheme/metrics"
)

// Config carries the collaborators the builtin pages render from.
type Config struct {
	Version  string
	Revision string

	// DocRoot is the directory the help and license pages read from.
	DocRoot string

	History   *history.Store
	Bookmarks *bookmarks.Store
	LogBuffer *logbuf.Buffer
}

// Pages holds the state shared by the builtin handlers.
type Pages struct {
	cfg      Config
	registry *scheme.Registry
	docCache *cache.Cache

	evalMu     sync.Mutex
	evalOutput string
}

// Register wires all builtin pages into reg and returns the Pages value
// owning their shared state.
func Register(reg *scheme.Registry, cfg Config) *Pages {
	p := &Pages{
		cfg:        cfg,
		registry:   reg,
		docCache:   cache.New(5*time.Minute, 10*time.Minute),
		evalOutput: "evaluator was never run",
	}

	reg.Register("version", p.versionPage)
	reg.Register("about", p.versionPage)
	reg.Register("log", p.logPage)
	reg.Register("plainlog", p.plainLogPage)
	reg.Register("history", p.historyPage)
	reg.Register("bookmarks", p.bookmarksPage)
	reg.Register("help", p.helpPage)
	reg.Register("license", p.licensePage)
	reg.Register("eval", p.evalPage)

	metrics.PagesRegistered.Set(float64(len(reg.Names())))

	return p
}

const pageShell = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%v</title>
</head>
<body>
<h1>%v</h1>
%v
</body>
</html>
`

func renderPage(title, body string) string {
	escaped := html.EscapeString(title)
	return fmt.Sprintf(pageShell, escaped, escaped, body)
}

func renderPre(title, content string) string {
	return renderPage(title, "<pre>"+html.EscapeString(content)+"</pre>")
}
