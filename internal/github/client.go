// Package github fetches repository trees and file contents from GitHub.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeexplainer/config"
	"codeexplainer/internal/language"
	"codeexplainer/internal/models"
	"codeexplainer/internal/repotree"

	"github.com/sirupsen/logrus"
)

// ErrNotFound matches any StatusError carrying a 404.
var ErrNotFound = errors.New("not found")

// StatusError is an upstream failure that callers should report with Status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s (status %d)", e.Message, e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

const defaultRef = "main"

// Client talks to the GitHub REST API and the raw content mirror.
type Client struct {
	hc        *http.Client
	apiBase   string
	rawBase   string
	token     string
	userAgent string
	filter    *repotree.Filter
}

// NewClient creates a Client. filter is applied to every fetched tree; nil keeps
// every entry.
func NewClient(cfg config.GitHubConfig, filter *repotree.Filter) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		hc:        &http.Client{Timeout: timeout},
		apiBase:   strings.TrimRight(cfg.APIBase, "/"),
		rawBase:   strings.TrimRight(cfg.RawBase, "/"),
		token:     cfg.Token,
		userAgent: cfg.UserAgent,
		filter:    filter,
	}
	if c.apiBase == "" {
		c.apiBase = "https://api.github.com"
	}
	if c.rawBase == "" {
		c.rawBase = "https://raw.githubusercontent.com"
	}
	if c.userAgent == "" {
		c.userAgent = "codeexplainer"
	}
	return c
}

type repoInfo struct {
	DefaultBranch string `json:"default_branch"`
}

type gitTree struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

type contentsPayload struct {
	Encoding    string `json:"encoding"`
	Content     string `json:"content"`
	DownloadURL string `json:"download_url"`
}

type apiMessage struct {
	Message string `json:"message"`
}

// FetchTree resolves repoURL and returns its full file listing. A /tree/<branch>
// segment in the URL takes precedence over the repository's default branch. token
// overrides the configured token when non-empty.
func (c *Client) FetchTree(ctx context.Context, repoURL, token string) (models.RepoTree, error) {
	ref, err := ParseRepoURL(repoURL)
	if err != nil {
		return models.RepoTree{}, err
	}
	token = c.authToken(token)
	log := logrus.WithFields(logrus.Fields{"owner": ref.Owner, "repo": ref.Repo})

	var info repoInfo
	repoPath := fmt.Sprintf("/repos/%s/%s", url.PathEscape(ref.Owner), url.PathEscape(ref.Repo))
	if err := c.getJSON(ctx, c.apiBase+repoPath, token, &info, "Repo not found or API error"); err != nil {
		return models.RepoTree{}, err
	}

	branch := ref.Branch
	if branch == "" {
		branch = info.DefaultBranch
	}
	if branch == "" {
		branch = defaultRef
	}

	var tree gitTree
	treeURL := fmt.Sprintf("%s%s/git/trees/%s?recursive=1", c.apiBase, repoPath, url.PathEscape(branch))
	if err := c.getJSON(ctx, treeURL, token, &tree, "Tree fetch failed"); err != nil {
		return models.RepoTree{}, err
	}
	if tree.Truncated {
		log.Warn("GitHub truncated the recursive tree listing")
	}

	entries := make([]repotree.Entry, 0, len(tree.Tree))
	for _, item := range tree.Tree {
		entries = append(entries, repotree.Entry{Path: item.Path, Dir: item.Type != "blob"})
	}
	entries = c.filter.Apply(entries)
	log.WithFields(logrus.Fields{"branch": branch, "entries": len(entries)}).Info("Fetched repository tree")

	return models.RepoTree{
		Owner:  ref.Owner,
		Repo:   ref.Repo,
		Branch: branch,
		Tree:   repotree.Build(entries),
	}, nil
}

// FetchFile returns the text of one file and its detected language. It tries the
// contents API, then the payload's download_url, then the raw mirror, each once.
func (c *Client) FetchFile(ctx context.Context, repoURL, filePath, token string) (models.FileContent, error) {
	ref, err := ParseRepoURL(repoURL)
	if err != nil {
		return models.FileContent{}, err
	}
	if ref.Branch == "" {
		ref.Branch = defaultRef
	}
	filePath = strings.Trim(filePath, "/")
	token = c.authToken(token)
	log := logrus.WithFields(logrus.Fields{"owner": ref.Owner, "repo": ref.Repo, "path": filePath})

	content, err := c.fetchContent(ctx, ref, filePath, token, log)
	if err != nil {
		return models.FileContent{}, err
	}
	return models.FileContent{
		Content:  content,
		Language: language.Sniff(filePath, content).String(),
	}, nil
}

func (c *Client) fetchContent(ctx context.Context, ref RepoRef, filePath, token string, log *logrus.Entry) (string, error) {
	contentsURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.apiBase, url.PathEscape(ref.Owner), url.PathEscape(ref.Repo), escapePath(filePath), url.QueryEscape(ref.Branch))

	resp, err := c.get(ctx, contentsURL, token, true)
	if err != nil {
		log.WithError(err).Warn("Contents API unreachable, trying raw mirror")
		content, _, rawErr := c.fetchRaw(ctx, c.rawURL(ref, filePath))
		if rawErr != nil {
			return "", err
		}
		return content, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		apiErr := statusError(resp, "Failed to fetch file")
		log.WithField("status", resp.StatusCode).Warn("Contents API refused, trying raw mirror")
		content, _, rawErr := c.fetchRaw(ctx, c.rawURL(ref, filePath))
		if rawErr != nil {
			return "", apiErr
		}
		return content, nil
	}

	var payload contentsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Unexpected contents payload, trying raw mirror")
	}
	if payload.Encoding == "base64" && payload.Content != "" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
		if err == nil {
			return string(decoded), nil
		}
		log.WithError(err).Warn("Invalid base64 content, trying download link")
	}

	if payload.DownloadURL != "" {
		content, _, err := c.fetchRaw(ctx, payload.DownloadURL)
		if err == nil {
			return content, nil
		}
		log.WithError(err).Warn("Download link failed, trying raw mirror")
	}

	content, status, err := c.fetchRaw(ctx, c.rawURL(ref, filePath))
	if err != nil {
		if status != 0 {
			return "", &StatusError{Status: status, Message: fmt.Sprintf("Failed to fetch file (%d)", status)}
		}
		return "", err
	}
	return content, nil
}

// fetchRaw GETs a plain-text URL. The status is 0 when no response was received.
func (c *Client) fetchRaw(ctx context.Context, rawURL string) (string, int, error) {
	resp, err := c.get(ctx, rawURL, "", false)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", resp.StatusCode, fmt.Errorf("github: raw fetch %s: status %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("github: read raw body: %w", err)
	}
	return string(body), resp.StatusCode, nil
}

func (c *Client) getJSON(ctx context.Context, apiURL, token string, out any, failure string) error {
	resp, err := c.get(ctx, apiURL, token, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError(resp, failure)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: decode %s: %w", apiURL, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, target, token string, api bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("github: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if api {
		req.Header.Set("Accept", "application/vnd.github+json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}
	return resp, nil
}

func (c *Client) authToken(token string) string {
	if token = strings.TrimSpace(token); token != "" {
		return token
	}
	return c.token
}

// The raw mirror expects the path unescaped.
func (c *Client) rawURL(ref RepoRef, filePath string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase, ref.Owner, ref.Repo, ref.Branch, filePath)
}

func statusError(resp *http.Response, failure string) *StatusError {
	var msg apiMessage
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(body, &msg); err != nil || msg.Message == "" {
		msg.Message = fmt.Sprintf("%s (%d)", failure, resp.StatusCode)
	}
	return &StatusError{Status: resp.StatusCode, Message: msg.Message}
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
