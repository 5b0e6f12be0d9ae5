package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harp-protocol/harp-go/pkg/channel"
	"github.com/harp-protocol/harp-go/pkg/register"
	"github.com/harp-protocol/harp-go/pkg/wire"
)

// metrics exports the last event value of every register and the channel
// and router counters of a session.
type metrics struct {
	registry *prometheus.Registry
	values   *prometheus.GaugeVec
	seconds  *prometheus.GaugeVec
}

func newMetrics(s *session) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "harp_register_value",
			Help: "Last value reported by a device event, by register.",
		}, []string{"register"}),
		seconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "harp_register_device_seconds",
			Help: "Device time of the last event, by register.",
		}, []string{"register"}),
	}
	m.registry.MustRegister(m.values, m.seconds, &statsCollector{s: s})
	s.router.HandleAll(m.observe)
	return m
}

func (m *metrics) observe(desc register.Descriptor, msg *wire.Message) {
	v, err := register.DecodeRawTimestamped(desc, msg)
	if err != nil {
		return
	}
	m.values.WithLabelValues(desc.Name).Set(float64(v.Value))
	m.seconds.WithLabelValues(desc.Name).Set(v.Seconds)
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var (
	descSent      = prometheus.NewDesc("harp_commands_sent_total", "Commands written to the device.", nil, nil)
	descReplies   = prometheus.NewDesc("harp_replies_total", "Replies matched to a pending command.", nil, nil)
	descDiscarded = prometheus.NewDesc("harp_replies_discarded_total", "Replies no pending command claimed.", nil, nil)
	descCancelled = prometheus.NewDesc("harp_commands_cancelled_total", "Commands abandoned by their caller.", nil, nil)
	descEvents    = prometheus.NewDesc("harp_events_total", "Unsolicited device events received.", nil, nil)
	descDropped   = prometheus.NewDesc("harp_events_dropped_total", "Events dropped because the buffer was full.", nil, nil)
	descRouted    = prometheus.NewDesc("harp_events_routed_total", "Events dispatched by the router.", nil, nil)
	descUnknown   = prometheus.NewDesc("harp_events_unknown_total", "Events for addresses outside the catalog.", nil, nil)
	descUndecoded = prometheus.NewDesc("harp_events_undecodable_total", "Events whose payload did not decode.", nil, nil)
	descConnected = prometheus.NewDesc("harp_device_connected", "1 while a verified device connection is open.", nil, nil)
)

// statsCollector reads the counters at scrape time. Channel counters
// restart from zero when the device is reopened.
type statsCollector struct {
	s *session
}

func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		descSent, descReplies, descDiscarded, descCancelled, descEvents, descDropped,
		descRouted, descUnknown, descUndecoded, descConnected,
	} {
		ch <- d
	}
}

func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}

	rs := c.s.router.Stats()
	counter(descRouted, rs.Routed)
	counter(descUnknown, rs.Unknown)
	counter(descUndecoded, rs.DecodeErrors)

	c.s.mu.Lock()
	dev := c.s.dev
	c.s.mu.Unlock()

	var cs channel.Stats
	connected := 0.0
	if dev != nil {
		cs = dev.Stats()
		select {
		case <-dev.Done():
		default:
			connected = 1
		}
	}
	counter(descSent, cs.Sent)
	counter(descReplies, cs.Replies)
	counter(descDiscarded, cs.Discarded)
	counter(descCancelled, cs.Cancelled)
	counter(descEvents, cs.Events)
	counter(descDropped, cs.DroppedEvents)
	ch <- prometheus.MustNewConstMetric(descConnected, prometheus.GaugeValue, connected)
}

// serveMetrics serves /metrics on addr until ctx ends.
func (s *session) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", newMetrics(s).handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		s.zl.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.zl.Error().Err(err).Msg("metrics server")
		}
	}()
}
