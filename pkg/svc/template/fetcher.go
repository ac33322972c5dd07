// Package template fetches project templates from remote repositories into a
// destination directory, keeping a local archive cache for offline use.
package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devantler-tech/snapp/pkg/client/netretry"
	"github.com/devantler-tech/snapp/pkg/fsutil"
	"github.com/google/go-github/v72/github"
	"github.com/sirupsen/logrus"
)

// Fetcher populates a destination directory with a template.
type Fetcher interface {
	// Fetch copies the template into dest. It never overwrites a non-empty dest.
	Fetch(ctx context.Context, dest string) error
}

// Options configures a GitHubFetcher.
type Options struct {
	// Cache enables reading and writing the local archive cache.
	Cache bool
	// CacheDir is the cache root. Required when Cache is true.
	CacheDir string
	// Token authenticates GitHub API requests when set.
	Token string
	// HTTPClient is used for API and archive requests (http.DefaultClient when nil).
	HTTPClient *http.Client
	// BaseURL overrides the GitHub API endpoint. It must end with a slash.
	BaseURL string
	// Exclude lists template paths or glob patterns that are not copied.
	Exclude []string
	// Retries is the number of extra download attempts after a transient failure.
	Retries int
	// RetryWait is the delay before the first download retry.
	RetryWait time.Duration
	// Logger receives debug diagnostics (logrus standard logger when nil).
	Logger logrus.FieldLogger
}

// GitHubFetcher fetches templates from GitHub repository tarballs.
type GitHubFetcher struct {
	source  Source
	client  *github.Client
	cache   *Cache
	exclude []string
	retry   netretry.Policy
	logger  logrus.FieldLogger
}

// Compile-time interface compliance verification.
var _ Fetcher = (*GitHubFetcher)(nil)

// NewGitHubFetcher creates a fetcher for the template reference rawSource.
func NewGitHubFetcher(rawSource string, opts Options) (*GitHubFetcher, error) {
	source, err := ParseSource(rawSource)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}

	if opts.BaseURL != "" {
		baseURL, parseErr := url.Parse(opts.BaseURL)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, parseErr)
		}

		client.BaseURL = baseURL
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	fetcher := &GitHubFetcher{
		source:  source,
		client:  client,
		exclude: opts.Exclude,
		retry: netretry.Policy{
			Retries:  max(opts.Retries, 0),
			BaseWait: opts.RetryWait,
		},
		logger: logger.WithField("template", source.String()),
	}

	if opts.Cache {
		cacheDir, expandErr := fsutil.ExpandHomePath(opts.CacheDir)
		if expandErr != nil {
			return nil, fmt.Errorf("invalid cache directory: %w", expandErr)
		}

		fetcher.cache = NewCache(cacheDir, source)
	}

	return fetcher, nil
}

// Source returns the parsed template reference.
func (f *GitHubFetcher) Source() Source {
	return f.source
}

// Fetch resolves the template ref, obtains its archive (from cache when possible)
// and extracts it into dest.
func (f *GitHubFetcher) Fetch(ctx context.Context, dest string) error {
	state, err := fsutil.InspectDir(dest)
	if err != nil {
		return newError(CodeBadArchive, err, "could not inspect destination %s", dest)
	}

	if state == fsutil.DirNotEmpty || state == fsutil.NotADir {
		return newError(CodeDestNotEmpty, nil, "destination directory %s is not empty", dest)
	}

	sha, err := f.resolveRef(ctx)
	if err != nil {
		return err
	}

	archivePath, cleanup, err := f.obtainArchive(ctx, sha)
	if err != nil {
		return err
	}

	defer cleanup()

	if f.cache != nil {
		recordErr := f.cache.Record(f.source.Ref, sha)
		if recordErr != nil {
			f.logger.WithError(recordErr).Debug("failed to update template cache index")
		}
	}

	files, err := extractArchive(archivePath, dest, f.source.Subdir, f.exclude)
	if err != nil {
		f.discardPartial(dest, state)

		return newError(CodeBadArchive, err, "could not extract template into %s", dest)
	}

	f.logger.WithFields(logrus.Fields{"sha": sha, "files": files, "dest": dest}).Debug("template extracted")

	return nil
}

// discardPartial restores dest to its state before a failed extraction.
func (f *GitHubFetcher) discardPartial(dest string, state fsutil.DirState) {
	var err error

	switch state {
	case fsutil.DirAbsent:
		err = os.RemoveAll(dest)
	case fsutil.DirEmpty:
		err = fsutil.RemoveContents(dest)
	default:
	}

	if err != nil {
		f.logger.WithError(err).WithField("dest", dest).Debug("failed to remove partial template")
	}
}

// resolveRef turns the source ref into a commit SHA, falling back to the cache
// index when the API cannot be reached.
func (f *GitHubFetcher) resolveRef(ctx context.Context) (string, error) {
	sha, resp, err := f.client.Repositories.GetCommitSHA1(
		ctx,
		f.source.Owner,
		f.source.Repo,
		f.source.Ref,
		"",
	)
	if err == nil && sha != "" {
		return strings.TrimSpace(sha), nil
	}

	f.logger.WithError(err).Debug("failed to resolve template ref")

	if f.cache != nil {
		cached, ok, lookupErr := f.cache.Lookup(f.source.Ref)
		if lookupErr != nil {
			f.logger.WithError(lookupErr).Debug("failed to read template cache index")
		}

		if ok && f.cache.HasArchive(cached) {
			f.logger.WithField("sha", cached).Debug("using cached template ref")

			return cached, nil
		}
	}

	if resp != nil && isMissingRefStatus(resp.StatusCode) {
		return "", newError(CodeMissingRef, err, "could not find commit for %s", f.source.Ref)
	}

	return "", newError(CodeCouldNotFetch, err, "could not fetch %s", f.source.String())
}

// obtainArchive returns the local path of the archive for sha, downloading it when
// needed. The cleanup function removes temporary files and is always non-nil.
func (f *GitHubFetcher) obtainArchive(ctx context.Context, sha string) (string, func(), error) {
	noop := func() {}

	if f.cache != nil && f.cache.HasArchive(sha) {
		f.logger.WithField("sha", sha).Debug("using cached template archive")

		return f.cache.ArchivePath(sha), noop, nil
	}

	targetDir := os.TempDir()
	if f.cache != nil {
		targetDir = f.cache.Dir()

		err := os.MkdirAll(targetDir, dirPerm)
		if err != nil {
			return "", noop, newError(CodeCouldNotDownload, err, "could not create cache directory")
		}
	}

	tmp, err := os.CreateTemp(targetDir, sha+"-*.tmp")
	if err != nil {
		return "", noop, newError(CodeCouldNotDownload, err, "could not create archive file")
	}

	removeTmp := func() { _ = os.Remove(tmp.Name()) }

	err = netretry.Do(ctx, f.retry, func(attempt int) error {
		if attempt > 1 {
			rewindErr := rewind(tmp)
			if rewindErr != nil {
				return rewindErr
			}
		}

		return f.download(ctx, sha, tmp)
	}, func(attempt int, err error) {
		f.logger.WithError(err).WithField("attempt", attempt).Debug("retrying template download")
	})

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		removeTmp()

		return "", noop, newError(CodeCouldNotDownload, err, "could not download %s", f.source.String())
	}

	if f.cache == nil {
		return tmp.Name(), removeTmp, nil
	}

	archivePath := f.cache.ArchivePath(sha)

	err = os.Rename(tmp.Name(), archivePath)
	if err != nil {
		removeTmp()

		return "", noop, newError(CodeCouldNotDownload, err, "could not store archive in %s", filepath.Dir(archivePath))
	}

	return archivePath, noop, nil
}

// download streams the tarball for sha into out.
func (f *GitHubFetcher) download(ctx context.Context, sha string, out io.Writer) error {
	link, _, err := f.client.Repositories.GetArchiveLink(
		ctx,
		f.source.Owner,
		f.source.Repo,
		github.Tarball,
		&github.RepositoryContentGetOptions{Ref: sha},
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to get archive link: %w", err)
	}

	f.logger.WithField("url", link.String()).Debug("downloading template archive")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build archive request: %w", err)
	}

	resp, err := f.client.Client().Do(req)
	if err != nil {
		return fmt.Errorf("failed to request archive: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errUnexpectedStatus, resp.Status)
	}

	_, err = io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// rewind truncates a partially written archive before another attempt.
func rewind(file *os.File) error {
	err := file.Truncate(0)
	if err != nil {
		return fmt.Errorf("failed to truncate archive: %w", err)
	}

	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to rewind archive: %w", err)
	}

	return nil
}

var errUnexpectedStatus = errors.New("unexpected archive response status")

func isMissingRefStatus(status int) bool {
	return status == http.StatusNotFound || status == http.StatusUnprocessableEntity
}
