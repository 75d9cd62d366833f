package pages

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"gitlab.com/tachyons/app-scheme/internal/bookmarks"
	"gitlab.com/tachyons/app-scheme/internal/history"
	"gitlab.com/tachyons/app-scheme/internal/logbuf"
	"gitlab.com/tachyons/app-scheme/internal/scheme"
)

type fixture struct {
	dispatcher *scheme.Dispatcher
	pages      *Pages
	history    *history.Store
	docRoot    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()

	store, err := history.Open(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	marksPath := filepath.Join(dir, "bookmarks")
	require.NoError(t, os.WriteFile(marksPath, []byte("https://example.com/b beta\nhttps://example.com/a alpha\n"), 0600))
	marks, err := bookmarks.Open(marksPath)
	require.NoError(t, err)

	docRoot := filepath.Join(dir, "doc")
	require.NoError(t, os.MkdirAll(docRoot, 0755))

	buf := logbuf.New(32)

	reg := scheme.NewRegistry()
	p := Register(reg, Config{
		Version:   "1.2.3",
		Revision:  "abcdef1",
		DocRoot:   docRoot,
		History:   store,
		Bookmarks: marks,
		LogBuffer: buf,
	})

	return &fixture{
		dispatcher: scheme.NewDispatcher(reg, scheme.BackendWebEngine),
		pages:      p,
		history:    store,
		docRoot:    docRoot,
	}
}

func (f *fixture) writeDoc(t *testing.T, name string, content []byte) {
	t.Helper()
	path := filepath.Join(f.docRoot, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0600))
}

func TestVersionPage(t *testing.T) {
	f := newFixture(t)

	content, err := f.dispatcher.Dispatch("app://version/")
	require.NoError(t, err)
	require.Equal(t, "text/html", content.Type)

	body := string(content.Data)
	require.Contains(t, body, "1.2.3")
	require.Contains(t, body, "abcdef1")
	require.Contains(t, body, "app://bookmarks/")
}

func TestVersionAlias(t *testing.T) {
	f := newFixture(t)

	direct, err := f.dispatcher.Dispatch("app://version/")
	require.NoError(t, err)
	aliased, err := f.dispatcher.Dispatch("app://about/")
	require.NoError(t, err)
	require.Equal(t, direct.Data, aliased.Data)
}

func TestBookmarksPage(t *testing.T) {
	f := newFixture(t)

	content, err := f.dispatcher.Dispatch("app://bookmarks/")
	require.NoError(t, err)

	body := string(content.Data)
	require.Contains(t, body, "alpha")
	require.Contains(t, body, "beta")
	require.Less(t, strings.Index(body, "alpha"), strings.Index(body, "beta"), "sorted by title")
}

func TestHistoryData(t *testing.T) {
	f := newFixture(t)

	at := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	require.NoError(t, f.history.Add("https://example.com/", "Example", at))

	content, err := f.dispatcher.Dispatch("app://history/data?start_time=1790000000")
	require.NoError(t, err)
	require.Equal(t, "application/json", content.Type)

	var entries []historyEntry
	require.NoError(t, json.Unmarshal(content.Data, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "https://example.com/", entries[0].URL)
	require.Equal(t, "Example", entries[0].Title)
	require.InDelta(t, float64(at.Unix())*1000, entries[0].Time, 1000)
}

func TestHistoryDataBadQuery(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		url     string
		message string
	}{
		{"app://history/data?offset=nope", "Query parameter offset is invalid"},
		{"app://history/data?offset=-1", "Query parameter offset is invalid"},
		{"app://history/data?start_time=later", "Query parameter start_time is invalid"},
	}

	for _, tt := range tests {
		_, err := f.dispatcher.Dispatch(tt.url)

		var schemeErr *scheme.Error
		require.True(t, errors.As(err, &schemeErr), tt.url)
		require.Equal(t, tt.message, schemeErr.Message)
		require.Equal(t, 400, schemeErr.Code)
	}
}

func TestHistoryDayView(t *testing.T) {
	f := newFixture(t)

	at := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	require.NoError(t, f.history.Add("https://example.com/day", "Day page", at))

	content, err := f.dispatcher.Dispatch("app://history/?date=2026-08-20")
	require.NoError(t, err)

	body := string(content.Data)
	require.Contains(t, body, "Day page")
	require.Contains(t, body, "2026-08-19", "prev day link")
	require.Contains(t, body, "2026-08-21", "next day link")
}

func TestHistoryDayViewBadDateFallsBack(t *testing.T) {
	f := newFixture(t)

	content, err := f.dispatcher.Dispatch("app://history/?date=not-a-date")
	require.NoError(t, err)
	require.Contains(t, string(content.Data), "History for")
}

func TestLogPages(t *testing.T) {
	f := newFixture(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(f.pages.cfg.LogBuffer)
	logger.Warn("something looks off")
	logger.Info("just info")

	content, err := f.dispatcher.Dispatch("app://log/?level=warning")
	require.NoError(t, err)
	body := string(content.Data)
	require.Contains(t, body, "something looks off")
	require.NotContains(t, body, "just info")

	content, err = f.dispatcher.Dispatch("app://plainlog/")
	require.NoError(t, err)
	require.Contains(t, string(content.Data), "just info")
}

func TestLogPageBadLevel(t *testing.T) {
	f := newFixture(t)

	_, err := f.dispatcher.Dispatch("app://log/?level=loud")

	var schemeErr *scheme.Error
	require.True(t, errors.As(err, &schemeErr))
	require.Equal(t, "Query parameter level is invalid", schemeErr.Message)
}

func TestLogPageDisabled(t *testing.T) {
	reg := scheme.NewRegistry()
	Register(reg, Config{})
	d := scheme.NewDispatcher(reg, scheme.BackendWebEngine)

	content, err := d.Dispatch("app://log/")
	require.NoError(t, err)
	require.Contains(t, string(content.Data), "Log output was disabled.")
}

func TestEvalPage(t *testing.T) {
	f := newFixture(t)

	content, err := f.dispatcher.Dispatch("app://eval/")
	require.NoError(t, err)
	require.Contains(t, string(content.Data), "evaluator was never run")

	f.pages.SetEvalOutput("21 * 2 = 42")
	content, err = f.dispatcher.Dispatch("app://eval/")
	require.NoError(t, err)
	require.Contains(t, string(content.Data), "21 * 2 = 42")
}
