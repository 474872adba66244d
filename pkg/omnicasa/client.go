package omnicasa

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"omnicasa-gateway/pkg/cache"
	"omnicasa-gateway/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultHost       = "newapi.omnicasa.com"
	DefaultAPIVersion = "1.12"
	ServiceName       = "OmnicasaService.svc"
	DefaultCacheTTL   = 3600 * time.Second
	DefaultLogFile    = "omnicasa.log"
)

// Logger receives one INFO line per uncached call. Implementations that also
// provide Errorf get transport and API failures as well.
type Logger interface {
	Printf(format string, v ...interface{})
}

type errorLogger interface {
	Errorf(format string, v ...interface{})
}

// Client manages Omnicasa credentials, request signing and response caching
type Client struct {
	username   string
	password   string
	languageID int

	mu            sync.RWMutex
	baseURL       string
	httpClient    *resty.Client
	store         cache.Store
	logger        Logger
	logCloser     io.Closer
	caching       bool
	cacheTTL      time.Duration
	retryAttempts uint
	retryDelay    time.Duration

	Settings *Settings
	General  *General
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithCache injects the store used for cached responses.
func WithCache(s cache.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithLogger injects the request logger.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the transport. The default has no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = resty.NewWithClient(hc) }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

func WithCaching(enabled bool) Option {
	return func(c *Client) { c.caching = enabled }
}

// WithRetryAttempts retries transport failures up to n attempts in total.
func WithRetryAttempts(n uint, delay time.Duration) Option {
	return func(c *Client) {
		if n == 0 {
			n = 1
		}
		c.retryAttempts = n
		c.retryDelay = delay
	}
}

// NewClient creates a new Omnicasa client. An unknown language falls back to
// Dutch and an empty version selects DefaultAPIVersion.
func NewClient(username, password, language, version string, opts ...Option) *Client {
	if version == "" {
		version = DefaultAPIVersion
	}
	c := &Client{
		username:      username,
		password:      password,
		languageID:    LanguageID(language),
		baseURL:       BaseURL(DefaultHost, version),
		httpClient:    resty.NewWithClient(&http.Client{}),
		caching:       true,
		cacheTTL:      DefaultCacheTTL,
		retryAttempts: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Settings = &Settings{client: c}
	c.General = &General{client: c}
	return c
}

// BaseURL derives the service root for an API version.
func BaseURL(host, version string) string {
	return fmt.Sprintf("http://%s/%s/%s/", host, version, ServiceName)
}

// LanguageID returns the numeric language selected for this client.
func (c *Client) LanguageID() int {
	return c.languageID
}

// URL returns the current base URL.
func (c *Client) URL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// EnableLogging writes the request log to a rotating file. An empty path uses DefaultLogFile.
func (c *Client) EnableLogging(logfile string) error {
	if logfile == "" {
		logfile = DefaultLogFile
	}
	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logfile, err)
	}
	f.Close()
	l, closer := logger.NewFileLogger(logfile, "info", logger.DefaultRotation)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logCloser != nil {
		c.logCloser.Close()
	}
	c.logger = l
	c.logCloser = closer
	return nil
}

func (c *Client) SetLogger(l Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *Client) SetCachingTimeout(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cacheTTL = ttl
}

func (c *Client) SetCaching(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.caching = enabled
}

func (c *Client) SetURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = u
}

func (c *Client) SetCache(s cache.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = s
}

// Cache returns the store in use, creating the default filesystem store on first use.
func (c *Client) Cache() (cache.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		s, err := cache.NewFileStore(os.TempDir(), cache.DefaultNamespace)
		if err != nil {
			return nil, err
		}
		c.store = s
	}
	return c.store, nil
}

// Close releases the log file opened by EnableLogging.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

// settings is a consistent view of the mutable fields for one request.
type settings struct {
	baseURL       string
	logger        Logger
	caching       bool
	cacheTTL      time.Duration
	retryAttempts uint
	retryDelay    time.Duration
}

func (c *Client) snapshot() settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return settings{
		baseURL:       c.baseURL,
		logger:        c.logger,
		caching:       c.caching,
		cacheTTL:      c.cacheTTL,
		retryAttempts: c.retryAttempts,
		retryDelay:    c.retryDelay,
	}
}
