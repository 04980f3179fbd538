package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"docrepo/internal/model"
)

// Metrics counts accepted uploads per folder.
type Metrics struct {
	uploads     *prometheus.CounterVec
	uploadBytes *prometheus.CounterVec
}

// NewMetrics creates the upload counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrepo_uploads_total",
				Help: "Total number of documents stored.",
			},
			[]string{"section", "type"},
		),
		uploadBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrepo_upload_bytes_total",
				Help: "Total bytes of documents stored.",
			},
			[]string{"section", "type"},
		),
	}
	for _, c := range []prometheus.Collector{m.uploads, m.uploadBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observeUpload is safe on a nil receiver so the service works without metrics.
func (m *Metrics) observeUpload(f model.Folder, size int64) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(string(f.Category), string(f.Type)).Inc()
	if size > 0 {
		m.uploadBytes.WithLabelValues(string(f.Category), string(f.Type)).Add(float64(size))
	}
}
