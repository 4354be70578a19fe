package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//termcal//test//EN\r\n" +
	"BEGIN:VEVENT\r\nUID:a\r\nSUMMARY:A\r\nDTSTART;VALUE=DATE:20210101\r\nEND:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestFetchAllFromDiskAndHTTP(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ics"), []byte(tinyCalendar), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ics"), []byte(tinyCalendar), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.ics" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(tinyCalendar))
	}))
	defer srv.Close()

	sources := []Source{
		{ID: "dir", Path: dir},
		{ID: "remote", URL: srv.URL + "/cal.ics?token=secret"},
		{ID: "gone", URL: srv.URL + "/missing.ics"},
		{ID: "nowhere", Path: filepath.Join(dir, "does-not-exist.ics")},
		{ID: "empty"},
	}

	results, errs := NewFetcher().FetchAll(context.Background(), sources)
	assert.Len(t, errs, 3)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "a.ics"), results[0].Name)
	assert.Equal(t, filepath.Join(dir, "b.ics"), results[1].Name)
	assert.Equal(t, "remote", results[2].Source.ID)
	assert.NotContains(t, results[2].Name, "secret")
	assert.Equal(t, tinyCalendar, string(results[2].Body))
}

func TestLoadEventsSkipsBadPayloads(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ics")
	bad := filepath.Join(dir, "bad.ics")
	require.NoError(t, os.WriteFile(good, []byte(tinyCalendar), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))

	events := LoadEvents(context.Background(), NewFetcher(), []Source{
		{ID: "good", Path: good},
		{ID: "bad", Path: bad},
	}, time.UTC)
	require.Len(t, events, 1)
	assert.Equal(t, "A", events[0].Summary)
	assert.Equal(t, "good", events[0].SourceID)
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/...(redacted)", redactURL("https://example.com/path/private.ics?token=abcd"))
	assert.Equal(t, "ics://...(redacted)", redactURL("not a url"))
}
