package render

import (
	"strconv"
	"strings"
	"sync"

	"github.com/matzehuels/forcegraph/pkg/observability"
)

// MarkerSize is an arrow marker bucket.
type MarkerSize int

const (
	MarkerSmall MarkerSize = iota
	MarkerMedium
	MarkerLarge
)

var markerNames = [...]string{
	MarkerSmall:  "marker-small",
	MarkerMedium: "marker-medium",
	MarkerLarge:  "marker-large",
}

// Name returns the marker name prefix, e.g. "marker-small".
func (s MarkerSize) Name() string { return markerNames[s] }

// Scale returns the marker's drawing scale relative to the small size.
func (s MarkerSize) Scale() float64 {
	switch s {
	case MarkerMedium:
		return 0.5
	case MarkerLarge:
		return 0.25
	default:
		return 1
	}
}

// MarkerSizeFor buckets a zoom transform: below maxZoom/4 is small, below
// maxZoom/2 medium, otherwise large.
func MarkerSizeFor(transform, maxZoom float64) MarkerSize {
	switch {
	case transform < maxZoom/4:
		return MarkerSmall
	case transform < maxZoom/2:
		return MarkerMedium
	default:
		return MarkerLarge
	}
}

// MarkerID formats a marker id from its size and color.
func MarkerID(size MarkerSize, color string) string {
	return size.Name() + "-" + color
}

// ParseMarkerID splits an id produced by MarkerID.
func ParseMarkerID(id string) (MarkerSize, string, bool) {
	for s, name := range markerNames {
		if color, ok := strings.CutPrefix(id, name+"-"); ok && color != "" {
			return MarkerSize(s), color, true
		}
	}
	return 0, "", false
}

// MarkerResolver memoizes marker ids by (transform, maxZoom, color).
// The cache is unbounded; the key space is small in practice. A resolver
// is safe for concurrent use.
type MarkerResolver struct {
	mu     sync.Mutex
	cache  map[string]string
	hits   int
	misses int
}

// NewMarkerResolver returns an empty resolver.
func NewMarkerResolver() *MarkerResolver {
	return &MarkerResolver{cache: make(map[string]string)}
}

// Resolve returns the marker id for a link stroke color at the given zoom.
func (m *MarkerResolver) Resolve(transform float64, color string, maxZoom float64) string {
	key := markerKey(transform, maxZoom, color)

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.cache[key]; ok {
		m.hits++
		observability.Markers().OnLookup(key, true)
		return id
	}
	id := MarkerID(MarkerSizeFor(transform, maxZoom), color)
	m.cache[key] = id
	m.misses++
	observability.Markers().OnLookup(key, false)
	return id
}

// Stats returns the hit and miss counts.
func (m *MarkerResolver) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

// Len returns the number of memoized entries.
func (m *MarkerResolver) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}

func markerKey(transform, maxZoom float64, color string) string {
	return strconv.FormatFloat(transform, 'g', -1, 64) + ";" +
		strconv.FormatFloat(maxZoom, 'g', -1, 64) + ";" + color
}
