package gitsource

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// IsURL reports whether source is an http(s), ssh or git URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ssh", "git":
		return u.Host != ""
	}
	return false
}

// IsSCP reports whether source uses the scp-like form user@host:path.
func IsSCP(source string) bool {
	at := strings.Index(source, "@")
	colon := strings.Index(source, ":")
	return at > 0 && colon > at+1 && !strings.Contains(source[:colon], "/")
}

// LocalPath maps a repository URL to its checkout directory under baseDir,
// as baseDir/host/path without the ".git" suffix.
func LocalPath(baseDir, repoURL string) (string, error) {
	if IsURL(repoURL) {
		u, _ := url.Parse(repoURL)
		repoPath := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
		if repoPath == "" {
			return "", fmt.Errorf("could not parse git URL: %s", repoURL)
		}
		return filepath.Join(baseDir, u.Hostname(), repoPath), nil
	}

	if IsSCP(repoURL) {
		hostPart, repoPath, _ := strings.Cut(repoURL, ":")
		_, host, _ := strings.Cut(hostPart, "@")
		repoPath = strings.TrimSuffix(strings.Trim(repoPath, "/"), ".git")
		if repoPath == "" {
			return "", fmt.Errorf("could not parse git URL: %s", repoURL)
		}
		return filepath.Join(baseDir, host, repoPath), nil
	}

	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
