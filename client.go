package marvel

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// ProductionURL is the official public API endpoint.
	ProductionURL = "https://gateway.marvel.com:443/v1/public/"

	modulePath = "thde.io/marvel"
)

var (
	// ErrTransport is returned when the API cannot be reached (connection, TLS, DNS).
	ErrTransport = errors.New("transport failure")
	// ErrInvalidURI is returned when a request URI cannot be built. No request is sent.
	ErrInvalidURI = errors.New("invalid uri")
	// ErrDecode is returned when a response body is not JSON or does not match the envelope.
	ErrDecode = errors.New("decode response")
	// ErrCharacterNotFound is returned when an exact-name lookup has no results.
	// Use [errors.As] with [*CharacterNotFoundError] to get the queried name.
	ErrCharacterNotFound = errors.New("character not found")
)

// CharacterNotFoundError reports the name of a character that does not exist.
type CharacterNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *CharacterNotFoundError) Error() string {
	return fmt.Sprintf("character %q not found", e.Name)
}

// Is reports whether target is [ErrCharacterNotFound].
func (e *CharacterNotFoundError) Is(target error) bool {
	return target == ErrCharacterNotFound
}

// Client holds configuration needed to call the Marvel Comics API.
// Use [New] to create a new client. A Client is safe for concurrent use.
type Client struct {
	baseURL *url.URL

	httpClient *http.Client
	userAgent  string
	logger     *log.Logger

	auth *signer
}

// ClientOption configures a Client before use.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
// Paths are resolved relative to it, so it should end with a slash.
func WithBaseURL(baseURL *url.URL) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
// Timeouts and transport level behaviour are taken from it as is.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets a custom User-Agent header for API requests.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger sets the logger used for request tracing.
// By default nothing is logged.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock overrides the clock used for request timestamps.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.auth.now = now
	}
}

// New creates a Marvel API client for the provided key pair.
// The client defaults to the production endpoint and applies any provided
// options. New performs no network I/O.
func New(publicKey, privateKey string, opts ...ClientOption) *Client {
	productionURL, _ := url.Parse(ProductionURL)

	c := &Client{
		baseURL: productionURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		auth: newSigner(publicKey, privateKey),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userAgent == "" {
		c.userAgent = userAgent()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	return c
}

// version returns the module version of the marvel package.
// It returns "devel" if built without module version information.
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}

	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Version == "(devel)" {
				return "devel"
			}

			return dep.Version
		}
	}

	if info.Main.Path == modulePath && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return "devel+" + setting.Value[:7]
		}
	}

	return "devel"
}

// userAgent returns the default User-Agent string for this package.
func userAgent() string {
	return fmt.Sprintf("go-marvel/%s (%s; %s/%s)", version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
