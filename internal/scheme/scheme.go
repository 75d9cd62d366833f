// Package scheme resolves app:// URLs to registered page handlers.
//
// The host application hands a raw URL to a Dispatcher, which canonicalizes
// it, finds the handler registered for its authority and returns the
// (content type, body) pair the handler produced. Handlers never see the
// network; they are synchronous, in-process functions producing page
// content.
package scheme

// Backend identifies the rendering engine the host application is running
// under. Some pages only work on a specific backend.
type Backend string

const (
	// BackendAny marks a handler as usable with every backend.
	BackendAny Backend = ""

	// BackendWebKit is the legacy rendering engine.
	BackendWebKit Backend = "webkit"

	// BackendWebEngine is the default rendering engine.
	BackendWebEngine Backend = "webengine"
)

// KnownBackends lists the backends a host may declare as active.
var KnownBackends = []Backend{BackendWebKit, BackendWebEngine}

// HandlerFunc produces the page content for one authority.
type HandlerFunc func(r *Request) (*Response, error)

// Response is the raw handler output before normalization. Handlers set
// either Text or Data; Data, when non-nil, is passed to the caller
// untouched, while Text goes through markup encoding when the content type
// calls for it.
type Response struct {
	ContentType string
	Text        string
	Data        []byte
}

// TextResponse builds a Response around a textual body.
func TextResponse(contentType, text string) *Response {
	return &Response{ContentType: contentType, Text: text}
}

// DataResponse builds a Response around a raw byte body.
func DataResponse(contentType string, data []byte) *Response {
	return &Response{ContentType: contentType, Data: data}
}
