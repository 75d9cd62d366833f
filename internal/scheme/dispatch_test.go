package scheme

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T, backend Backend) (*Dispatcher, *Registry) {
	t.Helper()
	reg := NewRegistry()
	return NewDispatcher(reg, backend), reg
}

func TestDispatchSuccess(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	reg.Register("echo", func(r *Request) (*Response, error) {
		return TextResponse("text/plain", "hi"), nil
	})

	content, err := d.Dispatch("app://echo/")
	require.NoError(t, err)
	require.Equal(t, "text/plain", content.Type)
	require.Equal(t, []byte("hi"), content.Data)
}

func TestDispatchNotFound(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	reg.Register("echo", func(r *Request) (*Response, error) {
		t.Fatal("handler must not run")
		return nil, nil
	})

	content, err := d.Dispatch("app://missing/")
	require.Nil(t, content)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "app://missing/", notFound.URL)
}

func TestDispatchShorthandRedirect(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	reg.Register("echo", func(r *Request) (*Response, error) {
		return TextResponse("text/plain", "hi"), nil
	})

	content, err := d.Dispatch("app:echo")
	require.Nil(t, content)

	var redirect *RedirectError
	require.True(t, errors.As(err, &redirect))
	require.Equal(t, "app://echo/", redirect.URL)

	// One hop is always enough: the canonical form resolves directly.
	content, err = d.Dispatch(redirect.URL)
	require.NoError(t, err)
	require.Equal(t, "text/plain", content.Type)
	require.Equal(t, []byte("hi"), content.Data)
}

func TestDispatchShorthandInvalidAuthority(t *testing.T) {
	d, _ := newTestDispatcher(t, BackendWebEngine)

	_, err := d.Dispatch("app:not a host")

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
}

func TestDispatchHandlerIOError(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	reg.Register("help", func(r *Request) (*Response, error) {
		_, err := os.ReadFile("/nonexistent/doc/index.html")
		return nil, err
	})

	_, err := d.Dispatch("app://help/")

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	require.True(t, errors.Is(ioErr, fs.ErrNotExist), "cause must be preserved")
}

func TestDispatchHandlerIOErrorNotDoubleWrapped(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	wrapped := &IOError{Cause: fs.ErrNotExist}
	reg.Register("help", func(r *Request) (*Response, error) {
		return nil, wrapped
	})

	_, err := d.Dispatch("app://help/")

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	require.Same(t, wrapped, ioErr)
}

func TestDispatchHandlerSignaledError(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	signaled := NewError("Query parameter offset is invalid", 400)
	reg.Register("history", func(r *Request) (*Response, error) {
		return nil, signaled
	})

	_, err := d.Dispatch("app://history/data?offset=nope")

	var schemeErr *Error
	require.True(t, errors.As(err, &schemeErr))
	require.Same(t, signaled, schemeErr, "signaled errors pass through unchanged")
	require.Equal(t, 400, schemeErr.Code)
}

func TestDispatchHandlerFaultPropagates(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	fault := errors.New("nil map write")
	reg.Register("broken", func(r *Request) (*Response, error) {
		return nil, fault
	})

	_, err := d.Dispatch("app://broken/")
	require.Same(t, fault, err)
}

func TestDispatchEmptyContentTypePanics(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	reg.Register("bad", func(r *Request) (*Response, error) {
		return &Response{Text: "body without type"}, nil
	})

	require.Panics(t, func() {
		d.Dispatch("app://bad/") //nolint:errcheck
	})
}

func TestDispatchMarkupTextIsEncoded(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	reg.Register("page", func(r *Request) (*Response, error) {
		return TextResponse("text/html", "<p>caf\xed\xa0\x80</p>"), nil
	})

	content, err := d.Dispatch("app://page/")
	require.NoError(t, err)
	require.Equal(t, []byte("<p>caf&#55296;</p>"), content.Data)
}

func TestDispatchBinaryPassThrough(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebEngine)
	raw := []byte{0x89, 'P', 'N', 'G', 0xed, 0xa0, 0x80}
	reg.Register("icon", func(r *Request) (*Response, error) {
		return DataResponse("image/png", raw), nil
	})

	content, err := d.Dispatch("app://icon/")
	require.NoError(t, err)
	require.Equal(t, "image/png", content.Type)
	require.Equal(t, raw, content.Data)
}

func TestDispatchBackendGateMismatch(t *testing.T) {
	d, reg := newTestDispatcher(t, BackendWebKit)
	reg.RegisterBackend("inspector", BackendWebEngine, func(r *Request) (*Response, error) {
		t.Fatal("gated handler must not run")
		return nil, nil
	})

	content, err := d.Dispatch("app://inspector/")
	require.NoError(t, err)
	require.Equal(t, "text/html", content.Type)
	require.Contains(t, string(content.Data), "not available with this backend")
}
