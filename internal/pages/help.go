package pages

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

// helpPage serves the generated documentation tree from the doc root.
// PNG images are served as-is; everything else is assumed to be HTML.
// Rendered pages are cached for a few minutes since the doc tree only
// changes on upgrade.
func (p *Pages) helpPage(r *scheme.Request) (*scheme.Response, error) {
	if _, err := os.Stat(filepath.Join(p.cfg.DocRoot, "index.html")); err != nil {
		// No generated documentation at all. This gets a friendly
		// page rather than an I/O error because it is the common
		// state on source checkouts.
		return scheme.TextResponse("text/html", scheme.ErrorPage(
			"Error while loading documentation",
			r.URL(),
			"This most likely means the documentation was not generated properly. "+
				"If you are running a released version this is a bug, please report it.")), nil
	}

	urlPath := r.Path
	if urlPath == "" || urlPath == "/" {
		urlPath = "index.html"
	} else {
		urlPath = strings.TrimPrefix(path.Clean(urlPath), "/")
	}

	data, err := p.readDoc(urlPath)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(urlPath, ".png") {
		return scheme.DataResponse("image/png", data), nil
	}
	return scheme.TextResponse("text/html", string(data)), nil
}

func (p *Pages) readDoc(urlPath string) ([]byte, error) {
	if cached, ok := p.docCache.Get(urlPath); ok {
		return cached.([]byte), nil
	}

	data, err := os.ReadFile(filepath.Join(p.cfg.DocRoot, urlPath))
	if err != nil {
		return nil, err
	}

	p.docCache.SetDefault(urlPath, data)
	return data, nil
}
