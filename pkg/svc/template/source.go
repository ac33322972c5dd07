package template

import (
	"fmt"
	"regexp"
	"strings"
)

// HostGitHub is the only recognized template host.
const HostGitHub = "github"

// defaultRef is used when a source carries no #ref suffix.
const defaultRef = "HEAD"

// sourcePattern accepts github:owner/repo/sub/dir#ref, owner/repo#ref,
// github.com/owner/repo and https://github.com/owner/repo.git forms.
var sourcePattern = regexp.MustCompile(
	`^(?:(?:https://)?([^:/\s]+\.[^:/\s]+)/|git@([^:/\s]+)[:/]|([^/:\s]+):)?` +
		`([^/\s]+)/([^/\s#]+)((?:/[^/\s#]+)*)/?(?:#(\S+))?$`,
)

// Source identifies a template inside a remote repository.
type Source struct {
	Host   string
	Owner  string
	Repo   string
	Subdir string
	Ref    string
}

// ParseSource parses a template reference.
func ParseSource(raw string) (Source, error) {
	trimmed := strings.TrimSpace(raw)

	match := sourcePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Source{}, newError(CodeBadSource, nil, "could not parse template source %q", raw)
	}

	host := firstNonEmpty(match[1], match[2], match[3], HostGitHub)
	host = strings.TrimSuffix(strings.TrimSuffix(host, ".com"), ".org")

	if host != HostGitHub {
		return Source{}, newError(CodeUnsupportedHost, nil, "template host %q is not supported", host)
	}

	ref := match[7]
	if ref == "" {
		ref = defaultRef
	}

	return Source{
		Host:   host,
		Owner:  match[4],
		Repo:   strings.TrimSuffix(match[5], ".git"),
		Subdir: strings.Trim(match[6], "/"),
		Ref:    ref,
	}, nil
}

// String renders the source in host:owner/repo/subdir#ref form.
func (s Source) String() string {
	path := s.Owner + "/" + s.Repo
	if s.Subdir != "" {
		path += "/" + s.Subdir
	}

	return fmt.Sprintf("%s:%s#%s", s.Host, path, s.Ref)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
