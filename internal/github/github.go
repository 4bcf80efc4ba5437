// Package github implements issues.Tracker on the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/issues"
)

// DefaultBaseURL is the GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

const (
	pageSize = 100
	maxPages = 20
)

// Tracker is an issues.Tracker backed by the issues of one repository.
type Tracker struct {
	client  *transport.Client
	baseURL string
	repo    string
}

var _ issues.Tracker = (*Tracker)(nil)

// Option configures a Tracker.
type Option func(*options)

type options struct {
	baseURL   string
	transport []transport.Option
}

// WithBaseURL points the tracker to another API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTransport passes options to the underlying transport client.
func WithTransport(opts ...transport.Option) Option {
	return func(o *options) {
		o.transport = append(o.transport, opts...)
	}
}

// New returns a tracker for repo, given as "owner/name", authenticated with
// token.
func New(token, repo string, opts ...Option) (*Tracker, error) {
	if token == "" {
		return nil, errors.NewConfigError("github", "token is required", nil)
	}
	if owner, name, ok := strings.Cut(repo, "/"); !ok || owner == "" || name == "" {
		return nil, errors.NewConfigError("github", fmt.Sprintf("repository %q is not owner/name", repo), nil)
	}

	o := &options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(o)
	}
	topts := append([]transport.Option{
		transport.WithCredential(token),
		transport.WithService("github"),
	}, o.transport...)

	return &Tracker{
		client:  transport.New(&transport.BearerAuth{}, topts...),
		baseURL: o.baseURL,
		repo:    repo,
	}, nil
}

type label struct {
	Name string `json:"name"`
}

type user struct {
	Login string `json:"login"`
}

type apiIssue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Labels      []label   `json:"labels"`
	Assignees   []user    `json:"assignees"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

func (a apiIssue) issue() issues.Issue {
	i := issues.Issue{Number: a.Number, Title: a.Title, Body: a.Body}
	for _, l := range a.Labels {
		i.Labels = append(i.Labels, l.Name)
	}
	for _, u := range a.Assignees {
		i.Assignees = append(i.Assignees, u.Login)
	}
	return i
}

type payload struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
}

func newPayload(i issues.Issue) payload {
	p := payload{Title: i.Title, Body: i.Body, Labels: i.Labels, Assignees: i.Assignees}
	if p.Labels == nil {
		p.Labels = []string{}
	}
	if p.Assignees == nil {
		p.Assignees = []string{}
	}
	return p
}

// FindByTitle implements issues.Tracker. It pages through the open issues
// of the repository, skipping pull requests.
func (t *Tracker) FindByTitle(ctx context.Context, title string) (issues.Issue, bool, error) {
	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s/repos/%s/issues?state=open&per_page=%d&page=%d", t.baseURL, t.repo, pageSize, page)
		var batch []apiIssue
		if err := t.client.JSON(ctx, http.MethodGet, url, nil, &batch); err != nil {
			return issues.Issue{}, false, err
		}
		for _, a := range batch {
			if a.PullRequest == nil && a.Title == title {
				return a.issue(), true, nil
			}
		}
		if len(batch) < pageSize {
			break
		}
	}
	return issues.Issue{}, false, nil
}

// Create implements issues.Tracker.
func (t *Tracker) Create(ctx context.Context, issue issues.Issue) (issues.Issue, error) {
	url := fmt.Sprintf("%s/repos/%s/issues", t.baseURL, t.repo)
	var created apiIssue
	if err := t.client.JSON(ctx, http.MethodPost, url, newPayload(issue), &created); err != nil {
		return issues.Issue{}, err
	}
	return created.issue(), nil
}

// Update implements issues.Tracker.
func (t *Tracker) Update(ctx context.Context, issue issues.Issue) error {
	if issue.Number == 0 {
		return errors.NewValidationError("number", issue.Number, "issue number is required to update")
	}
	url := fmt.Sprintf("%s/repos/%s/issues/%d", t.baseURL, t.repo, issue.Number)
	return t.client.JSON(ctx, http.MethodPatch, url, newPayload(issue), nil)
}
