package github

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when an input names no owner/repo pair.
var ErrInvalidURL = errors.New("invalid GitHub URL")

// RepoRef identifies a repository and, optionally, the branch named in its URL.
type RepoRef struct {
	Owner  string
	Repo   string
	Branch string
}

var shorthandPrefixRe = regexp.MustCompile(`^(?:git@github\.com:|(?:www\.)?github\.com/)`)

// ParseRepoURL accepts https://github.com/owner/repo[/tree/<branch>[/...]] as well as
// the owner/repo and git@github.com:owner/repo.git shorthands.
func ParseRepoURL(input string) (RepoRef, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return RepoRef{}, ErrInvalidURL
	}

	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		host := strings.ToLower(u.Hostname())
		if host != "github.com" && host != "www.github.com" {
			return RepoRef{}, ErrInvalidURL
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) < 2 {
			return RepoRef{}, ErrInvalidURL
		}
		ref := RepoRef{Owner: parts[0], Repo: strings.TrimSuffix(parts[1], ".git")}
		if ref.Owner == "" || ref.Repo == "" {
			return RepoRef{}, ErrInvalidURL
		}
		for i, part := range parts {
			if part == "tree" && i+1 < len(parts) && parts[i+1] != "" {
				ref.Branch = parts[i+1]
				break
			}
		}
		return ref, nil
	}

	cleaned := strings.TrimSuffix(shorthandPrefixRe.ReplaceAllString(input, ""), ".git")
	parts := strings.Split(strings.Trim(cleaned, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, ErrInvalidURL
	}
	return RepoRef{Owner: parts[0], Repo: parts[1]}, nil
}
