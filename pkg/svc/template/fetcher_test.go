package template_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/devantler-tech/snapp/pkg/svc/template"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSHA    = "0123456789abcdef0123456789abcdef01234567"
	testSource = "github:o1-labs/snapp-cli/templates/project#main"
)

type archiveEntry struct {
	name    string
	content string
	dir     bool
}

func buildArchive(t *testing.T, entries ...archiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer

	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	require.NoError(t, tarWriter.WriteHeader(&tar.Header{
		Typeflag:   tar.TypeXGlobalHeader,
		Name:       "pax_global_header",
		PAXRecords: map[string]string{"comment": testSHA},
	}))

	for _, entry := range entries {
		if entry.dir {
			require.NoError(t, tarWriter.WriteHeader(&tar.Header{
				Typeflag: tar.TypeDir,
				Name:     entry.name,
				Mode:     0o755,
			}))

			continue
		}

		require.NoError(t, tarWriter.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     entry.name,
			Mode:     0o644,
			Size:     int64(len(entry.content)),
		}))

		_, err := tarWriter.Write([]byte(entry.content))
		require.NoError(t, err)
	}

	require.NoError(t, tarWriter.Close())
	require.NoError(t, gzipWriter.Close())

	return buf.Bytes()
}

func defaultArchive(t *testing.T) []byte {
	t.Helper()

	root := "o1-labs-snapp-cli-0123456/"

	return buildArchive(t,
		archiveEntry{name: root, dir: true},
		archiveEntry{name: root + "README.md", content: "# snapp-cli"},
		archiveEntry{name: root + "templates/project/", dir: true},
		archiveEntry{name: root + "templates/project/package.json", content: `{"name":"project"}`},
		archiveEntry{name: root + "templates/project/src/index.ts", content: "export {};"},
		archiveEntry{name: root + "templates/projectile/ignored.txt", content: "nope"},
	)
}

// fakeGitHub serves the commit SHA, archive link and codeload endpoints.
type fakeGitHub struct {
	server        *httptest.Server
	archive       []byte
	refStatus     atomic.Int32
	archiveStatus atomic.Int32
	flakyLeft     atomic.Int32
	refHits       atomic.Int32
	downloadHits  atomic.Int32
}

func newFakeGitHub(t *testing.T, archive []byte) *fakeGitHub {
	t.Helper()

	fake := &fakeGitHub{archive: archive}
	fake.refStatus.Store(http.StatusOK)
	fake.archiveStatus.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o1-labs/snapp-cli/commits/main", func(w http.ResponseWriter, _ *http.Request) {
		fake.refHits.Add(1)

		status := int(fake.refStatus.Load())
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"No commit found for SHA: main"}`))

			return
		}

		_, _ = w.Write([]byte(testSHA))
	})
	mux.HandleFunc("/repos/o1-labs/snapp-cli/tarball/"+testSHA, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, fake.server.URL+"/codeload/"+testSHA, http.StatusFound)
	})
	mux.HandleFunc("/codeload/"+testSHA, func(w http.ResponseWriter, _ *http.Request) {
		fake.downloadHits.Add(1)

		if fake.flakyLeft.Add(-1) >= 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("partial"))

			return
		}

		status := int(fake.archiveStatus.Load())
		if status != http.StatusOK {
			w.WriteHeader(status)

			return
		}

		_, _ = w.Write(fake.archive)
	})

	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeGitHub) fetcher(t *testing.T, cacheDir string) *template.GitHubFetcher {
	t.Helper()

	return f.fetcherWithOptions(t, template.Options{Cache: cacheDir != "", CacheDir: cacheDir})
}

func (f *fakeGitHub) fetcherWithOptions(t *testing.T, opts template.Options) *template.GitHubFetcher {
	t.Helper()

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	opts.HTTPClient = f.server.Client()
	opts.BaseURL = f.server.URL + "/"
	opts.Logger = logger

	fetcher, err := template.NewGitHubFetcher(testSource, opts)
	require.NoError(t, err)

	return fetcher
}

func requireCode(t *testing.T, err error, want template.Code) {
	t.Helper()

	require.Error(t, err)

	code, ok := template.CodeOf(err)
	require.True(t, ok, "expected coded error, got %v", err)
	assert.Equal(t, want, code)
}

func TestGitHubFetcher_FetchExtractsSubdirectory(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	dest := filepath.Join(t.TempDir(), "nested", "my-app")

	err := fake.fetcher(t, "").Fetch(context.Background(), dest)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "package.json")) //nolint:gosec // test path
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"project"}`, string(content))
	assert.FileExists(t, filepath.Join(dest, "src", "index.ts"))
	assert.NoFileExists(t, filepath.Join(dest, "README.md"))
	assert.NoFileExists(t, filepath.Join(dest, "ignored.txt"))
}

func TestGitHubFetcher_FetchIntoExistingEmptyDirectory(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	dest := t.TempDir()

	require.NoError(t, fake.fetcher(t, "").Fetch(context.Background(), dest))
	assert.FileExists(t, filepath.Join(dest, "package.json"))
}

func TestGitHubFetcher_FetchRejectsNonEmptyDestination(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "existing"), []byte("x"), 0o600))

	err := fake.fetcher(t, "").Fetch(context.Background(), dest)

	requireCode(t, err, template.CodeDestNotEmpty)
	assert.Zero(t, fake.refHits.Load(), "no remote call expected")
	assert.NoFileExists(t, filepath.Join(dest, "package.json"))
}

func TestGitHubFetcher_FetchRejectsFileDestination(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	dest := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o600))

	err := fake.fetcher(t, "").Fetch(context.Background(), dest)

	requireCode(t, err, template.CodeDestNotEmpty)
}

func TestGitHubFetcher_CacheServesOfflineFetch(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	cacheDir := t.TempDir()
	fetcher := fake.fetcher(t, cacheDir)

	require.NoError(t, fetcher.Fetch(context.Background(), filepath.Join(t.TempDir(), "first")))
	assert.FileExists(t, filepath.Join(cacheDir, "github", "o1-labs", "snapp-cli", testSHA+".tar.gz"))
	assert.FileExists(t, filepath.Join(cacheDir, "github", "o1-labs", "snapp-cli", "map.yaml"))

	fake.refStatus.Store(http.StatusServiceUnavailable)

	second := filepath.Join(t.TempDir(), "second")
	require.NoError(t, fetcher.Fetch(context.Background(), second))

	assert.FileExists(t, filepath.Join(second, "package.json"))
	assert.Equal(t, int32(1), fake.downloadHits.Load(), "archive should be downloaded once")
}

func TestGitHubFetcher_CachedArchiveSkipsDownload(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	cacheDir := t.TempDir()

	require.NoError(t, fake.fetcher(t, cacheDir).Fetch(context.Background(), filepath.Join(t.TempDir(), "a")))
	require.NoError(t, fake.fetcher(t, cacheDir).Fetch(context.Background(), filepath.Join(t.TempDir(), "b")))

	assert.Equal(t, int32(2), fake.refHits.Load())
	assert.Equal(t, int32(1), fake.downloadHits.Load())
}

func TestGitHubFetcher_OfflineWithoutCache(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	fake.refStatus.Store(http.StatusServiceUnavailable)

	err := fake.fetcher(t, t.TempDir()).Fetch(context.Background(), filepath.Join(t.TempDir(), "app"))

	requireCode(t, err, template.CodeCouldNotFetch)
}

func TestGitHubFetcher_MissingRef(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	fake.refStatus.Store(http.StatusUnprocessableEntity)

	err := fake.fetcher(t, "").Fetch(context.Background(), filepath.Join(t.TempDir(), "app"))

	requireCode(t, err, template.CodeMissingRef)
}

func TestGitHubFetcher_DownloadFailure(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	fake.archiveStatus.Store(http.StatusInternalServerError)
	dest := filepath.Join(t.TempDir(), "app")

	err := fake.fetcher(t, "").Fetch(context.Background(), dest)

	requireCode(t, err, template.CodeCouldNotDownload)
	assert.NoDirExists(t, dest)
	assert.Equal(t, int32(1), fake.downloadHits.Load(), "downloads are not retried by default")
}

func TestGitHubFetcher_RetriesTransientDownloadFailure(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	fake.flakyLeft.Store(1)
	cacheDir := t.TempDir()
	dest := filepath.Join(t.TempDir(), "app")

	fetcher := fake.fetcherWithOptions(t, template.Options{
		Cache:     true,
		CacheDir:  cacheDir,
		Retries:   2,
		RetryWait: time.Millisecond,
	})

	require.NoError(t, fetcher.Fetch(context.Background(), dest))

	assert.Equal(t, int32(2), fake.downloadHits.Load())
	assert.FileExists(t, filepath.Join(dest, "package.json"))
}

func TestGitHubFetcher_GivesUpAfterRetries(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	fake.archiveStatus.Store(http.StatusBadGateway)
	dest := filepath.Join(t.TempDir(), "app")

	fetcher := fake.fetcherWithOptions(t, template.Options{Retries: 1, RetryWait: time.Millisecond})

	err := fetcher.Fetch(context.Background(), dest)

	requireCode(t, err, template.CodeCouldNotDownload)
	assert.Equal(t, int32(2), fake.downloadHits.Load())
}

func TestGitHubFetcher_MissingSubdirectoryCleansUp(t *testing.T) {
	t.Parallel()

	root := "o1-labs-snapp-cli-0123456/"
	fake := newFakeGitHub(t, buildArchive(t, archiveEntry{name: root + "README.md", content: "x"}))
	dest := filepath.Join(t.TempDir(), "app")

	err := fake.fetcher(t, "").Fetch(context.Background(), dest)

	requireCode(t, err, template.CodeBadArchive)
	assert.NoDirExists(t, dest)
}

func TestGitHubFetcher_FailedExtractionEmptiesExistingDirectory(t *testing.T) {
	t.Parallel()

	root := "o1-labs-snapp-cli-0123456/"
	fake := newFakeGitHub(t, buildArchive(t,
		archiveEntry{name: root + "templates/project/package.json", content: `{"name":"project"}`},
		archiveEntry{name: root + "templates/project/package.json/inner.txt", content: "broken"},
	))
	dest := t.TempDir()

	err := fake.fetcher(t, "").Fetch(context.Background(), dest)

	requireCode(t, err, template.CodeBadArchive)
	assert.DirExists(t, dest)

	entries, readErr := os.ReadDir(dest)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestNewGitHubFetcher_InvalidSource(t *testing.T) {
	t.Parallel()

	_, err := template.NewGitHubFetcher("gitlab:o1-labs/snapp-cli", template.Options{})

	requireCode(t, err, template.CodeUnsupportedHost)
}

func TestGitHubFetcher_FetchSkipsExcludedPaths(t *testing.T) {
	t.Parallel()

	fake := newFakeGitHub(t, defaultArchive(t))
	dest := filepath.Join(t.TempDir(), "app")

	fetcher := fake.fetcherWithOptions(t, template.Options{Exclude: []string{"src"}})

	require.NoError(t, fetcher.Fetch(context.Background(), dest))

	assert.FileExists(t, filepath.Join(dest, "package.json"))
	assert.NoDirExists(t, filepath.Join(dest, "src"))
}
