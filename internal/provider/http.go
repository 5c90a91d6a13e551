package provider

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/table"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	DefaultTimeout = 5 * time.Second
	DefaultRetries = 2

	devicesPath = "devices"
)

// Endpoints maps each category to its API path.
var Endpoints = map[device.Category]string{
	device.CategoryOverview:       "/storage/devices",
	device.CategorySustainability: "/sustainability/metrics",
	device.CategoryPerformance:    "/performance/metrics",
	device.CategoryFeatures:       "/features/comparison",
}

// HealthPath is the API health endpoint.
const HealthPath = "/health"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPOptions configure an HTTP provider.
type HTTPOptions struct {
	BaseURL string
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed request.
	Retries int
	// RetryDelay is the initial backoff between attempts.
	RetryDelay time.Duration
	Client     *http.Client
	Logger     logger.Logger
}

// HTTP fetches device records from a remote device API.
type HTTP struct {
	baseURL    string
	client     *http.Client
	retries    int
	retryDelay time.Duration
	log        logger.Logger
	sources    sourceTracker
}

// NewHTTP returns an HTTP provider. Zero options take the defaults.
func NewHTTP(opts HTTPOptions) (*HTTP, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid provider base URL %q", base),
			"Use a full URL such as http://localhost:3000")
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[provider]")
	}

	return &HTTP{
		baseURL:    strings.TrimRight(base, "/"),
		client:     client,
		retries:    retries,
		retryDelay: delay,
		log:        log,
	}, nil
}

// BaseURL returns the API root.
func (p *HTTP) BaseURL() string {
	return p.baseURL
}

// FetchDevices requests the category endpoint with sortBy/sortOrder and
// decodes the "devices" array. Transport errors and 5xx responses are
// retried with exponential backoff; 4xx responses and malformed bodies are
// not.
func (p *HTTP) FetchDevices(ctx context.Context, category device.Category, sort table.SortConfig) ([]device.Record, error) {
	path, ok := Endpoints[category]
	if !ok {
		return nil, errors.New(errors.ErrProvider, fmt.Sprintf("No endpoint for table %q", category), "")
	}
	target := p.baseURL + path + sortQuery(sort)

	records, err := backoff.Retry(ctx,
		func() ([]device.Record, error) {
			return p.fetch(ctx, target)
		},
		backoff.WithMaxTries(uint(p.retries+1)),
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithNotify(func(err error, d time.Duration) {
			p.log.Warn("fetch %s failed, retrying in %s: %v", target, d, err)
		}),
	)
	if err != nil {
		return nil, errors.NewProviderError(target, err)
	}

	if category == device.CategoryFeatures {
		records = fillDataReduction(records, p.log)
	}
	for _, r := range records {
		if verr := r.Validate(); verr != nil {
			p.log.Warn("suspicious record from %s: %v", target, verr)
		}
	}

	p.sources.set(category, SourceLive)
	p.log.Debug("fetched %d %s records", len(records), category)
	return records, nil
}

func (p *HTTP) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.retryDelay
	b.MaxInterval = 5 * p.retryDelay
	return b
}

func (p *HTTP) fetch(ctx context.Context, target string) ([]device.Record, error) {
	body, err := p.get(ctx, target)
	if err != nil {
		return nil, err
	}

	raw := gjson.GetBytes(body, devicesPath)
	if !raw.Exists() {
		// Some deployments return the bare array.
		if root := gjson.ParseBytes(body); root.IsArray() {
			raw = root
		} else {
			return nil, backoff.Permanent(errPathNotFound(devicesPath))
		}
	}
	if raw.Type == gjson.Null {
		return []device.Record{}, nil
	}
	if !raw.IsArray() {
		return nil, backoff.Permanent(errNotArray(devicesPath))
	}

	var records []device.Record
	if err := json.Unmarshal([]byte(raw.Raw), &records); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode devices: %w", err))
	}
	if records == nil {
		records = []device.Record{}
	}
	return records, nil
}

// get performs one GET and returns the body of a 2xx response.
func (p *HTTP) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := errStatusNotOK(resp.StatusCode)
		if resp.StatusCode < 500 {
			return nil, backoff.Permanent(statusErr)
		}
		return nil, statusErr
	}

	return io.ReadAll(resp.Body)
}

// Source reports SourceLive once the category has been fetched.
func (p *HTTP) Source(category device.Category) Source {
	return p.sources.get(category)
}

// Health calls the health endpoint. A body without a status field is
// treated as healthy.
func (p *HTTP) Health(ctx context.Context) (Health, error) {
	target := p.baseURL + HealthPath
	body, err := p.get(ctx, target)
	if err != nil {
		var perm *backoff.PermanentError
		if stderrors.As(err, &perm) {
			err = perm.Unwrap()
		}
		return Health{Status: "error", Mode: "api"}, errors.NewProviderError(target, err)
	}

	status := gjson.GetBytes(body, "status").String()
	if status == "" {
		status = "healthy"
	}
	h := Health{Status: status, Mode: "api", Devices: int(gjson.GetBytes(body, "devices").Int())}
	if status != "healthy" && status != "ok" {
		return h, errors.New(errors.ErrProvider,
			fmt.Sprintf("Device API at %s reports status %q", p.baseURL, status),
			"Check the API server logs")
	}
	return h, nil
}

func sortQuery(sort table.SortConfig) string {
	if sort.Key == "" {
		return ""
	}
	dir := sort.Direction
	if dir == "" {
		dir = table.Desc
	}
	q := url.Values{}
	q.Set("sortBy", sort.Key)
	q.Set("sortOrder", string(dir))
	return "?" + q.Encode()
}

// fillDataReduction derives dataReduction for feature records that omit it.
func fillDataReduction(records []device.Record, log logger.Logger) []device.Record {
	for i, r := range records {
		if r.DataReduction != "" || r.Features == nil {
			continue
		}
		dm := r.Features.DataManagement
		records[i].DataReduction = device.DeriveDataReduction(dm.Deduplication, dm.Compression)
		log.Debug("derived dataReduction %s for %s from %s/%s",
			records[i].DataReduction, r.Name, dm.Deduplication, dm.Compression)
	}
	return records
}

type errStatusNotOK int

func (e errStatusNotOK) Error() string {
	return fmt.Sprintf("non-2xx HTTP status code: %d %s", int(e), http.StatusText(int(e)))
}

type errPathNotFound string

func (e errPathNotFound) Error() string {
	return "JSON path not found in response: " + string(e)
}

type errNotArray string

func (e errNotArray) Error() string {
	return "JSON path is not an array: " + string(e)
}
