package services

import (
	"net/http"

	"wardrobeapi/outfits"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutfitMetrics counts generated outfits per kind (suggestion, shuffle, surprise, daily).
type OutfitMetrics struct {
	registry  *prometheus.Registry
	generated *prometheus.CounterVec
	empty     *prometheus.CounterVec
	score     *prometheus.HistogramVec
}

func NewOutfitMetrics(registry *prometheus.Registry) *OutfitMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &OutfitMetrics{
		registry: registry,
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wardrobe",
				Name:      "outfits_generated_total",
				Help:      "Total number of outfits handed out",
			},
			[]string{"kind"},
		),
		empty: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wardrobe",
				Name:      "outfit_empty_total",
				Help:      "Generation requests that produced no outfit",
			},
			[]string{"kind"},
		),
		score: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "wardrobe",
				Name:      "outfit_score",
				Help:      "Compatibility score of generated outfits",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"kind"},
		),
	}
	registry.MustRegister(m.generated, m.empty, m.score)
	return m
}

func (m *OutfitMetrics) Observe(kind string, suggestions ...outfits.OutfitSuggestion) {
	if len(suggestions) == 0 {
		m.empty.WithLabelValues(kind).Inc()
		return
	}
	m.generated.WithLabelValues(kind).Add(float64(len(suggestions)))
	for _, s := range suggestions {
		m.score.WithLabelValues(kind).Observe(s.Score)
	}
}

func (m *OutfitMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
