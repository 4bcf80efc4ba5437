// Package registryapi implements registry.Client on the registry web
// services.
package registryapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/registrysync/internal/transport"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/registry"
)

// pageSize is the page size of the snapshot readers.
const pageSize = 500

// Client talks to the collections API of the registry.
type Client struct {
	http    *transport.Client
	baseURL string
}

var _ registry.Client = (*Client)(nil)

// New returns a client for the API at baseURL, e.g.
// "https://api.gbif.org/v1", authenticated as user.
func New(baseURL, user, password string, opts ...transport.Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil || baseURL == "" {
		return nil, errors.NewConfigError("registry", fmt.Sprintf("invalid API URL %q", baseURL), err)
	}
	if user == "" || password == "" {
		return nil, errors.NewConfigError("registry", "user and password are required", nil)
	}
	topts := append([]transport.Option{
		transport.WithCredential(password),
		transport.WithService("registry"),
	}, opts...)
	return &Client{
		http:    transport.New(&transport.BasicAuth{Username: user}, topts...),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (c *Client) url(kind registry.Kind, parts ...string) string {
	segs := append([]string{c.baseURL, "grscicoll", string(kind)}, parts...)
	return strings.Join(segs, "/")
}

type page[T any] struct {
	Offset       int  `json:"offset"`
	Limit        int  `json:"limit"`
	EndOfRecords bool `json:"endOfRecords"`
	Results      []T  `json:"results"`
}

func list[T any](ctx context.Context, c *Client, kind registry.Kind) ([]T, error) {
	var out []T
	for offset := 0; ; offset += pageSize {
		var p page[T]
		u := fmt.Sprintf("%s?limit=%d&offset=%d", c.url(kind), pageSize, offset)
		if err := c.http.JSON(ctx, http.MethodGet, u, nil, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Results...)
		if p.EndOfRecords || len(p.Results) == 0 {
			return out, nil
		}
	}
}

func get[T any](ctx context.Context, c *Client, kind registry.Kind, key string) (T, error) {
	var v T
	err := c.http.JSON(ctx, http.MethodGet, c.url(kind, key), nil, &v)
	return v, err
}

// create posts v and returns the key in the response body.
func (c *Client) create(ctx context.Context, kind registry.Kind, v any) (string, error) {
	var raw string
	if err := c.http.JSON(ctx, http.MethodPost, c.url(kind), v, &raw); err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(raw), `"`), nil
}

func (c *Client) update(ctx context.Context, kind registry.Kind, key string, v any) error {
	if key == "" {
		return errors.NewValidationError("key", key, "key is required to update")
	}
	return c.http.JSON(ctx, http.MethodPut, c.url(kind, key), v, nil)
}

func (c *Client) addSubEntity(ctx context.Context, kind registry.Kind, key, sub string, v any) (int, error) {
	var raw string
	if err := c.http.JSON(ctx, http.MethodPost, c.url(kind, key, sub), v, &raw); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.WrapParse("json", sub+" key", err)
	}
	return n, nil
}

// Institution implements registry.Reader.
func (c *Client) Institution(ctx context.Context, key string) (registry.Institution, error) {
	return get[registry.Institution](ctx, c, registry.KindInstitution, key)
}

// Collection implements registry.Reader.
func (c *Client) Collection(ctx context.Context, key string) (registry.Collection, error) {
	return get[registry.Collection](ctx, c, registry.KindCollection, key)
}

// Person implements registry.Reader.
func (c *Client) Person(ctx context.Context, key string) (registry.Person, error) {
	return get[registry.Person](ctx, c, registry.KindPerson, key)
}

// Institutions implements registry.Reader.
func (c *Client) Institutions(ctx context.Context) ([]registry.Institution, error) {
	return list[registry.Institution](ctx, c, registry.KindInstitution)
}

// Collections implements registry.Reader.
func (c *Client) Collections(ctx context.Context) ([]registry.Collection, error) {
	return list[registry.Collection](ctx, c, registry.KindCollection)
}

// Persons implements registry.Reader.
func (c *Client) Persons(ctx context.Context) ([]registry.Person, error) {
	return list[registry.Person](ctx, c, registry.KindPerson)
}

// CreateInstitution implements registry.Writer.
func (c *Client) CreateInstitution(ctx context.Context, i registry.Institution) (string, error) {
	return c.create(ctx, registry.KindInstitution, i)
}

// UpdateInstitution implements registry.Writer.
func (c *Client) UpdateInstitution(ctx context.Context, i registry.Institution) error {
	return c.update(ctx, registry.KindInstitution, i.Key, i)
}

// CreateCollection implements registry.Writer.
func (c *Client) CreateCollection(ctx context.Context, col registry.Collection) (string, error) {
	return c.create(ctx, registry.KindCollection, col)
}

// UpdateCollection implements registry.Writer.
func (c *Client) UpdateCollection(ctx context.Context, col registry.Collection) error {
	return c.update(ctx, registry.KindCollection, col.Key, col)
}

// CreatePerson implements registry.Writer.
func (c *Client) CreatePerson(ctx context.Context, p registry.Person) (string, error) {
	return c.create(ctx, registry.KindPerson, p)
}

// UpdatePerson implements registry.Writer.
func (c *Client) UpdatePerson(ctx context.Context, p registry.Person) error {
	return c.update(ctx, registry.KindPerson, p.Key, p)
}

// AddIdentifier implements registry.Writer.
func (c *Client) AddIdentifier(ctx context.Context, kind registry.Kind, key string, id registry.Identifier) (int, error) {
	return c.addSubEntity(ctx, kind, key, "identifier", id)
}

// AddMachineTag implements registry.Writer.
func (c *Client) AddMachineTag(ctx context.Context, kind registry.Kind, key string, tag registry.MachineTag) (int, error) {
	return c.addSubEntity(ctx, kind, key, "machineTag", tag)
}

// AddPerson implements registry.Writer.
func (c *Client) AddPerson(ctx context.Context, kind registry.Kind, key, personKey string) error {
	return c.http.JSON(ctx, http.MethodPost, c.url(kind, key, "contact"), personKey, nil)
}

// RemovePerson implements registry.Writer.
func (c *Client) RemovePerson(ctx context.Context, kind registry.Kind, key, personKey string) error {
	return c.http.JSON(ctx, http.MethodDelete, c.url(kind, key, "contact", personKey), nil, nil)
}
