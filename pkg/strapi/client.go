package strapi

import (
	"context"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-content/pkg/httpclient"
)

// DefaultBaseURL is the origin of a local Strapi development server.
const DefaultBaseURL = "http://localhost:1337"

// Config holds the CMS connection settings. It is built once at startup and
// handed to New; the client never reads process state itself.
type Config struct {
	BaseURL string
	Token   string
	// Timeout bounds each request; zero leaves requests unbounded.
	Timeout time.Duration
}

// ContentAPI groups the content accessors a rendering layer depends on.
type ContentAPI interface {
	Articles(ctx context.Context) ([]Article, error)
	Article(ctx context.Context, slug string) (Article, bool, error)
	Categories(ctx context.Context) ([]Category, error)
	Authors(ctx context.Context) ([]Author, error)
	Tags(ctx context.Context) ([]Tag, error)
	ImageURL(img *Image) string
}

// Client fetches and flattens content from a Strapi REST API. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    httpclient.Client
	log     Logger
}

var _ ContentAPI = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLogger sets the sink request failures are reported to.
func WithLogger(l Logger) Option {
	return func(cl *Client) {
		cl.log = ensureLogger(l)
	}
}

// New builds a Client for cfg. An empty BaseURL falls back to DefaultBaseURL.
func New(cfg Config, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	c := &Client{
		baseURL: base,
		token:   cfg.Token,
		log:     noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(cfg.Timeout)
	}
	return c
}

// BaseURL returns the CMS origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) headers() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}
	return headers
}

// Fetch issues a single GET for path (which carries its own query string)
// and decodes the JSON body into out. Values of an unexpected JSON type are
// left at their zero value; only a body that is not JSON fails the decode.
// Failures are logged, then returned as *APIError or *TransportError.
func (c *Client) Fetch(ctx context.Context, path string, out any) error {
	url := c.baseURL + requestTarget(path)

	resp, err := c.http.Get(ctx, url, c.headers())
	if err != nil {
		return c.fail(url, &TransportError{Op: "request", URL: url, Err: err})
	}

	code := resp.StatusCode()
	if code < 200 || code > 299 {
		return c.fail(url, &APIError{
			StatusCode: code,
			Status:     statusText(code, resp.Status()),
			URL:        url,
			Body:       responseSnippet(resp.Body()),
		})
	}

	if err := decodeLenient(resp.Body(), out); err != nil {
		return c.fail(url, &TransportError{Op: "decode", URL: url, Err: err})
	}
	return nil
}

// requestTarget percent-encodes the bytes that may not appear raw in an HTTP
// request target: controls, space, non-ASCII and the quote and angle bracket
// characters. Everything else, including existing %XX escapes, is kept so
// query keys like filters[slug][$eq] go out as written.
func requestTarget(path string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c > ' ' && c < 0x7f && c != '"' && c != '\'' && c != '<' && c != '>' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func (c *Client) fail(url string, err error) error {
	c.log.ErrorObj("strapi api request failed", "strapi_error", map[string]any{
		"url":   url,
		"error": err.Error(),
	})
	return err
}

// Articles lists articles in the order the CMS returns them.
func (c *Client) Articles(ctx context.Context) ([]Article, error) {
	var env listEnvelope[articleAttributes]
	if err := c.Fetch(ctx, ArticlesPath, &env); err != nil {
		return nil, err
	}
	return transformArticles(env.Data), nil
}

// Article fetches the article with the given slug. found is false, with a
// nil error, when no article matches.
func (c *Client) Article(ctx context.Context, slug string) (Article, bool, error) {
	var env listEnvelope[articleAttributes]
	if err := c.Fetch(ctx, ArticlePath(slug), &env); err != nil {
		return Article{}, false, err
	}
	if len(env.Data) == 0 {
		return Article{}, false, nil
	}
	return transformArticle(env.Data[0]), true, nil
}

// Categories lists categories. Record ids are not carried over.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var env listEnvelope[Category]
	if err := c.Fetch(ctx, CategoriesPath, &env); err != nil {
		return nil, err
	}
	return attributesOf(env.Data), nil
}

// Authors lists authors with their profile image unwrapped.
func (c *Client) Authors(ctx context.Context) ([]Author, error) {
	var env listEnvelope[authorAttributes]
	if err := c.Fetch(ctx, AuthorsPath, &env); err != nil {
		return nil, err
	}
	return transformAuthors(env.Data), nil
}

// Tags lists tags. Record ids are not carried over.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var env listEnvelope[Tag]
	if err := c.Fetch(ctx, TagsPath, &env); err != nil {
		return nil, err
	}
	return attributesOf(env.Data), nil
}

// ImageURL resolves img against the client's origin.
func (c *Client) ImageURL(img *Image) string {
	return ResolveImageURL(c.baseURL, img)
}
