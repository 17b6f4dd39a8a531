package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lyricroom/backend/pkg/xcontext"
)

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	POST(ctx context.Context) (*Response, error)
	GET(ctx context.Context) (*Response, error)
	PUT(ctx context.Context) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	domain     string
	httpClient *http.Client
}

// NewGenerator creates clients of the API at domain. Requests go through
// httpClient, which is where authorization (for example an oauth2 transport)
// is plugged in.
func NewGenerator(domain string, httpClient *http.Client) *defaultGenerator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &defaultGenerator{domain: strings.TrimSuffix(domain, "/"), httpClient: httpClient}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		httpClient: g.httpClient,
		url:        g.domain + fmt.Sprintf(path, args...),
		headers:    make(http.Header),
	}
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

type defaultClient struct {
	httpClient *http.Client
	method     string
	url        string
	headers    http.Header
	query      Parameter
	body       Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers.Set(name, value)
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) POST(ctx context.Context) (*Response, error) {
	c.method = http.MethodPost
	return c.call(ctx)
}

func (c *defaultClient) GET(ctx context.Context) (*Response, error) {
	c.method = http.MethodGet
	return c.call(ctx)
}

func (c *defaultClient) PUT(ctx context.Context) (*Response, error) {
	c.method = http.MethodPut
	return c.call(ctx)
}

func (c *defaultClient) call(ctx context.Context) (*Response, error) {
	var reader io.Reader
	var contentType string
	if c.body != nil {
		var err error
		reader, contentType, err = c.body.ToReader()
		if err != nil {
			return nil, err
		}
	}

	url := c.url
	if len(c.query) > 0 {
		url = url + "?" + c.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, c.method, url, reader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for h, values := range c.headers {
		for _, v := range values {
			req.Header.Add(h, v)
		}
	}

	result, err := c.httpClient.Do(req)
	if err != nil {
		xcontext.Logger(ctx).Warnf("An error occurred when calling to %s: %v", c.url, err)
		return nil, err
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		xcontext.Logger(ctx).Warnf("An error occurred when reading body of %s: %v", c.url, err)
		return nil, err
	}

	return &Response{Code: result.StatusCode, Header: result.Header, RawBody: body}, nil
}
