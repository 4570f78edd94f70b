package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ModemClient talks to the modem's management interface.
type ModemClient struct {
	baseURL *url.URL
	client  *http.Client

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewModemClient(address string, timeout time.Duration) (*ModemClient, error) {
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}

	requestCount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "client_requests_total",
		Help:      "HTTP requests to the modem.",
	}, []string{"code", "method"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "client_request_duration_seconds",
		Help:      "Histogram of modem HTTP request latencies.",
	}, []string{"code", "method"})

	client := &http.Client{Timeout: timeout}
	client.Transport = promhttp.InstrumentRoundTripperCounter(requestCount,
		promhttp.InstrumentRoundTripperDuration(requestDuration, http.DefaultTransport))

	return &ModemClient{
		baseURL:         u,
		client:          client,
		requestCount:    requestCount,
		requestDuration: requestDuration,
	}, nil
}

func (c *ModemClient) resolve(filename string) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, filename)
	return u.String()
}

// StatusPage fetches the modem's root status page.
func (c *ModemClient) StatusPage() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.resolve("/"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if !(resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return nil, fmt.Errorf("fetching %s failed: HTTP status %d", req.URL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Reboot asks the modem to reboot, optionally restoring factory
// defaults. The modem tends to drop the connection while acting on the
// request, so callers treat the returned error as advisory.
func (c *ModemClient) Reboot(restoreFactoryDefaults bool) error {
	form := url.Values{
		"Rebooting":             {"1"},
		"RestoreFactoryDefault": {"0"},
	}
	if restoreFactoryDefaults {
		form.Set("RestoreFactoryDefault", "1")
	}

	resp, err := c.client.PostForm(c.resolve("goform/RgConfiguration.pl"), form)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Collectors exposes the client's request metrics for registration in
// the textfile snapshot.
func (c *ModemClient) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.requestCount, c.requestDuration}
}
