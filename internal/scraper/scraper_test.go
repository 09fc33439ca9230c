package scraper_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/geoquiz/backend/internal/domain/dataset"
	"github.com/geoquiz/backend/internal/scraper"
)

const capitalsPage = `<html><body>
<table class="wikitable">
<tr><th>Huvudstad</th><th>Sedan</th><th>Land</th></tr>
<tr><td> Stockholm </td><td>1634</td><td>Sverige
</td></tr>
<tr><td>Oslo</td><td>1814</td><td>  Norge</td></tr>
<tr><td>Sarajevo</td><td>1992</td><td>Bosnien och Hercegovina</td></tr>
</table>
</body></html>`

func article(src string) string {
	return `<html><body><table class="infobox"><tr><td>
<a href="/wiki/Fil:Flag.svg"><img class="mw-file-element thumbborder" src="` + src + `" width="125"></a>
</td></tr></table></body></html>`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /wiki/{title}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("title") {
		case "Lista":
			io.WriteString(w, capitalsPage)
		case "Sverige":
			io.WriteString(w, article("/media/125px-Flag_of_Sweden.png"))
		case "Bosnien och Hercegovina":
			io.WriteString(w, article("//upload.example.org/thumb/125px-Flag_of_Bosnia.png"))
		case "Norge":
			io.WriteString(w, `<html><body><p>No image here</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("GET /media/250px-Flag_of_Sweden.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		io.WriteString(w, "PNG-SWEDEN")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server, capitalsPath string) *scraper.Client {
	return scraper.New(scraper.Config{
		CapitalsURL:    srv.URL + capitalsPath,
		ArticleBaseURL: srv.URL + "/wiki/",
		Timeout:        5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchEntries_ParsesTableInStrideOfThree(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Lista")

	entries, err := c.FetchEntries(context.Background())
	require.NoError(t, err)

	require.Equal(t, []dataset.Entry{
		{Capital: "Stockholm", Country: "Sverige"},
		{Capital: "Oslo", Country: "Norge"},
		{Capital: "Sarajevo", Country: "Bosnien och Hercegovina"},
	}, entries)
}

func TestFetchEntries_IgnoresIncompleteTrailingRow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /list", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<table><tr><td>Oslo</td><td>1814</td><td>Norge</td></tr><tr><td>Bern</td></tr></table>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	entries, err := newClient(srv, "/list").FetchEntries(context.Background())
	require.NoError(t, err)
	require.Equal(t, []dataset.Entry{{Capital: "Oslo", Country: "Norge"}}, entries)
}

func TestFetchEntries_NonSuccessStatus(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Saknas")

	_, err := c.FetchEntries(context.Background())

	var statusErr *scraper.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetchFlagURL_SwapsToLargerRendition(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Lista")

	got, err := c.FetchFlagURL(context.Background(), "Sverige")
	require.NoError(t, err)
	require.Equal(t, srv.URL+"/media/250px-Flag_of_Sweden.png", got)
}

func TestFetchFlagURL_ProtocolRelativeSource(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Lista")

	got, err := c.FetchFlagURL(context.Background(), "Bosnien och Hercegovina")
	require.NoError(t, err)
	require.Equal(t, "http://upload.example.org/thumb/250px-Flag_of_Bosnia.png", got)
}

func TestFetchFlagURL_MissingImage(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Lista")

	_, err := c.FetchFlagURL(context.Background(), "Norge")
	require.True(t, errors.Is(err, scraper.ErrFlagNotFound), "got %v", err)
}

func TestDownload_WritesFile(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Lista")
	dst := filepath.Join(t.TempDir(), "Sverige.png")

	require.NoError(t, c.Download(context.Background(), srv.URL+"/media/250px-Flag_of_Sweden.png", dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "PNG-SWEDEN", string(data))
}

func TestDownload_FailureLeavesNoFile(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv, "/wiki/Lista")
	dir := t.TempDir()
	dst := filepath.Join(dir, "Norge.png")

	err := c.Download(context.Background(), srv.URL+"/media/missing.png", dst)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	require.True(t, os.IsNotExist(statErr))

	leftovers, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, leftovers)
}
