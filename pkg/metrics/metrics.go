package metrics

import (
	"sync"
	"time"
)

const maxObservations = 100

// Collector is a small in-process metrics sink: counters, latency
// observations and size observations, exposed on the /metrics route.
type Collector struct {
	mu        sync.RWMutex
	counters  map[string]map[string]int64
	latencies map[string][]time.Duration
	sizes     map[string][]float64
}

func NewCollector() *Collector {
	return &Collector{
		counters:  make(map[string]map[string]int64),
		latencies: make(map[string][]time.Duration),
		sizes:     make(map[string][]float64),
	}
}

func (c *Collector) IncrementCounter(name string, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	labelKey := "default"
	for k, v := range labels {
		labelKey = k + ":" + v
		break
	}

	if _, exists := c.counters[name]; !exists {
		c.counters[name] = make(map[string]int64)
	}
	c.counters[name][labelKey]++
}

func (c *Collector) ObserveLatency(name string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latencies[name] = append(c.latencies[name], duration)
	if len(c.latencies[name]) > maxObservations {
		c.latencies[name] = c.latencies[name][len(c.latencies[name])-maxObservations:]
	}
}

func (c *Collector) ObserveSize(name string, size float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sizes[name] = append(c.sizes[name], size)
	if len(c.sizes[name]) > maxObservations {
		c.sizes[name] = c.sizes[name][len(c.sizes[name])-maxObservations:]
	}
}

func (c *Collector) GetCounters() map[string]map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counters := make(map[string]map[string]int64, len(c.counters))
	for name, labels := range c.counters {
		counters[name] = make(map[string]int64, len(labels))
		for label, value := range labels {
			counters[name][label] = value
		}
	}
	return counters
}

func (c *Collector) GetLatencies() map[string]map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]map[string]float64)
	for name, durations := range c.latencies {
		if len(durations) == 0 {
			continue
		}
		var sum time.Duration
		for _, d := range durations {
			sum += d
		}
		result[name] = map[string]float64{
			"avg_ms": float64(sum) / float64(len(durations)) / float64(time.Millisecond),
		}
	}
	return result
}

func (c *Collector) GetSizes() map[string]map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]map[string]float64)
	for name, observations := range c.sizes {
		if len(observations) == 0 {
			continue
		}
		var sum, max float64
		for _, v := range observations {
			sum += v
			if v > max {
				max = v
			}
		}
		result[name] = map[string]float64{
			"avg_bytes": sum / float64(len(observations)),
			"max_bytes": max,
		}
	}
	return result
}
