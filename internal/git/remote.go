package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNoOrigin is returned when the repository has no origin remote.
var ErrNoOrigin = errors.New("no origin remote configured")

// Remote is the owner/name pair parsed from a remote URL.
type Remote struct {
	Host  string
	Owner string
	Name  string
	URL   string // original, unmodified input
}

// ParseRemoteURL parses a git remote URL.
// Supports HTTPS (https://github.com/owner/repo.git), scp-like SSH
// (git@github.com:owner/repo.git) and ssh:// URLs. Nested groups keep the
// last path segment as Name and everything before it as Owner.
func ParseRemoteURL(rawURL string) (Remote, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return Remote{}, errors.New("empty remote URL")
	}

	var host, path string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Remote{}, fmt.Errorf("invalid remote URL %s: %w", rawURL, err)
		}
		host, path = u.Hostname(), u.Path
	case strings.Contains(raw, ":"):
		// scp-like: [user@]host:owner/repo
		parts := strings.SplitN(raw, ":", 2)
		host = parts[0]
		if at := strings.LastIndex(host, "@"); at >= 0 {
			host = host[at+1:]
		}
		path = parts[1]
	default:
		return Remote{}, fmt.Errorf("unsupported remote URL format: %s", rawURL)
	}

	path = strings.Trim(strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git"), "/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return Remote{}, fmt.Errorf("remote URL has no owner/repository path: %s", rawURL)
	}
	return Remote{
		Host:  host,
		Owner: path[:idx],
		Name:  path[idx+1:],
		URL:   rawURL,
	}, nil
}

// OriginURL returns the first URL of the origin remote of the repository
// containing dir. Parent directories are searched for the .git directory.
func (c *Client) OriginURL(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", dir, err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", ErrNoOrigin
		}
		return "", fmt.Errorf("read origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoOrigin
	}
	return urls[0], nil
}
