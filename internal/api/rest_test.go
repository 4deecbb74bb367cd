package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/markusressel/bed2go/internal/configuration"
	"github.com/markusressel/bed2go/internal/engine"
	"github.com/markusressel/bed2go/internal/hardware"
	"github.com/markusressel/bed2go/internal/persistence"
	"github.com/markusressel/bed2go/internal/safety"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func createEngine(t *testing.T) *engine.Engine {
	config := configuration.DefaultConfiguration()
	hw := engine.Hardware{}
	for range config.Channels {
		hw.Sensors = append(hw.Sensors, hardware.NewVirtualAnalogInput(700))
		hw.Relays = append(hw.Relays, hardware.NewVirtualDigitalOutput(true))
	}
	e, err := engine.New(config, hw)
	assert.NoError(t, err)
	assert.NoError(t, e.Init())
	e.Cycle(context.Background())
	return e
}

func request(t *testing.T, service http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	service := CreateRestService(createEngine(t).Board(), nil, prometheus.NewRegistry())

	// WHEN
	rec := request(t, service, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus(t *testing.T) {
	// GIVEN
	e := createEngine(t)
	assert.NoError(t, e.Activate(2))
	service := CreateRestService(e.Board(), nil, prometheus.NewRegistry())

	// WHEN
	rec := request(t, service, "/status/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status engine.Status
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Len(t, status.Channels, 16)
	assert.Len(t, status.Sections, 4)
	assert.Equal(t, 60.0, status.Channels[0].Temperature)
	assert.Equal(t, "hysteresis", status.System.Strategy)
}

func TestStatusChannel(t *testing.T) {
	// GIVEN
	service := CreateRestService(createEngine(t).Board(), nil, prometheus.NewRegistry())

	// WHEN
	rec := request(t, service, "/status/channel/3/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status engine.ChannelStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 3, status.ID)
	assert.Equal(t, 1, status.Section)
}

func TestStatusChannelNotFound(t *testing.T) {
	// GIVEN
	service := CreateRestService(createEngine(t).Board(), nil, prometheus.NewRegistry())

	// WHEN
	rec := request(t, service, "/status/channel/17/")
	invalid := request(t, service, "/status/channel/abc/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, invalid.Code)
}

func TestStatusSection(t *testing.T) {
	// GIVEN
	service := CreateRestService(createEngine(t).Board(), nil, prometheus.NewRegistry())

	// WHEN
	rec := request(t, service, "/status/section/2/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status engine.SectionStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, []int{5, 6, 7, 8}, status.Channels)
}

func TestNoWriteEndpoints(t *testing.T) {
	// GIVEN
	service := CreateRestService(createEngine(t).Board(), nil, prometheus.NewRegistry())

	// WHEN
	req := httptest.NewRequest(http.MethodPost, "/status/", nil)
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)

	// THEN
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestJournal(t *testing.T) {
	// GIVEN
	journal := persistence.NewPersistence(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, journal.SaveSafetyTrip(safety.Trip{Channel: 1, Temperature: 125, Ceiling: 120, At: time.Now()}))
	service := CreateRestService(createEngine(t).Board(), journal, prometheus.NewRegistry())

	// WHEN
	rec := request(t, service, "/journal/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var records []persistence.TripRecord
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Segment)
}

func TestMetrics(t *testing.T) {
	// GIVEN
	service := CreateRestService(createEngine(t).Board(), nil, prometheus.NewRegistry())
	request(t, service, "/alive/")

	// WHEN
	rec := request(t, service, "/metrics/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bed2go_api_requests_total")
}
