package sweeps

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Query defaults used by the dashboard.
const (
	DefaultSweepsLimit      = 50
	DefaultDailyLimit       = 30
	DefaultUserMetricsLimit = 50
)

// API paths.
const (
	PathSweeps           = "/api/sweeps"
	PathAggregated       = "/api/sweeps/aggregated"
	PathDailyMetrics     = "/api/sweeps/daily-metrics"
	PathUsersDailyMetric = "/api/users/daily-metrics"
)

// ErrMissingAddress is returned when a user query has no wallet address.
var ErrMissingAddress = errors.New("missing wallet address")

// Request is a built API request: a path plus its query string.
type Request struct {
	Path  string
	Query url.Values
}

// URL joins the request onto base, e.g. "http://localhost:8080".
func (r Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// SweepsFilter selects a page of sweeps. A non-positive Limit means the
// default; empty strings are omitted.
type SweepsFilter struct {
	Limit          int
	Offset         int
	MarketSlug     string
	MarketQuestion string
	MarketType     MarketType
	SortField      SortField
	SortDirection  SortDirection
}

// Request builds the sweeps list request.
func (f SweepsFilter) Request() Request {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(orDefault(f.Limit, DefaultSweepsLimit)))
	q.Set("offset", strconv.Itoa(max(f.Offset, 0)))

	sortField := f.SortField
	if sortField == "" {
		sortField = SortCreatedAt
	}
	sortDir := f.SortDirection
	if sortDir == "" {
		sortDir = SortDesc
	}
	q.Set("sort_field", string(sortField))
	q.Set("sort_direction", string(sortDir))

	if f.MarketSlug != "" {
		q.Set("market_slug", f.MarketSlug)
	}
	if f.MarketQuestion != "" {
		q.Set("market_question", f.MarketQuestion)
	}
	if f.MarketType != "" {
		q.Set("market_type", string(f.MarketType))
	}
	return Request{Path: PathSweeps, Query: q}
}

// AggregatedFilter selects an aggregation window.
type AggregatedFilter struct {
	Period     Period
	MarketType MarketType
}

// Request builds the aggregated sweeps request.
func (f AggregatedFilter) Request() Request {
	period := f.Period
	if period == "" {
		period = PeriodAll
	}
	q := url.Values{}
	q.Set("period", string(period))
	if f.MarketType != "" {
		q.Set("market_type", string(f.MarketType))
	}
	return Request{Path: PathAggregated, Query: q}
}

// DailyMetricsFilter selects a page of daily sweep metrics.
type DailyMetricsFilter struct {
	Limit  int
	Offset int
}

// Request builds the daily metrics request.
func (f DailyMetricsFilter) Request() Request {
	return Request{Path: PathDailyMetrics, Query: pageQuery(f.Limit, f.Offset, DefaultDailyLimit)}
}

// UserDailyMetricsFilter selects one wallet's daily metrics.
type UserDailyMetricsFilter struct {
	Address string
	Limit   int
	Offset  int
}

// Request builds the single-user daily metrics request.
func (f UserDailyMetricsFilter) Request() (Request, error) {
	addr := strings.TrimSpace(f.Address)
	if addr == "" {
		return Request{}, ErrMissingAddress
	}
	return Request{
		Path:  "/api/users/" + url.PathEscape(addr) + "/daily-metrics",
		Query: pageQuery(f.Limit, f.Offset, DefaultUserMetricsLimit),
	}, nil
}

// UsersDailyMetricsFilter aggregates daily metrics across wallets.
type UsersDailyMetricsFilter struct {
	Addresses []string
	Limit     int
	Offset    int
}

// Request builds the multi-user daily metrics request. Addresses are sent
// comma-joined in one parameter.
func (f UsersDailyMetricsFilter) Request() (Request, error) {
	addrs := make([]string, 0, len(f.Addresses))
	for _, a := range f.Addresses {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	if len(addrs) == 0 {
		return Request{}, ErrMissingAddress
	}
	q := pageQuery(f.Limit, f.Offset, DefaultUserMetricsLimit)
	q.Set("addresses", strings.Join(addrs, ","))
	return Request{Path: PathUsersDailyMetric, Query: q}, nil
}

func pageQuery(limit, offset, defaultLimit int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(orDefault(limit, defaultLimit)))
	q.Set("offset", strconv.Itoa(max(offset, 0)))
	return q
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
