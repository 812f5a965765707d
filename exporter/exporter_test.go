package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"embedded-batteries-go/async"
	"embedded-batteries-go/drivers/sbs"
	"embedded-batteries-go/drivers/sbs/sim"
	sb "embedded-batteries-go/smartbattery"
)

func simServer(t *testing.T) (*Server, *sim.Bus) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bus := sim.New()
	w := async.NewWorker()
	w.Start(ctx)
	bat := w.Battery(sbs.NewBattery(bus, sbs.DefaultConfig()))

	cfg := DefaultConfig()
	cfg.Name = "sim"
	return New(bat, cfg), bus
}

func serve(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestRead(t *testing.T) {
	bus := sim.New()
	delete(bus.Battery.Regs, sb.CmdCycleCount)
	snap := Read(context.Background(), async.Direct(sbs.NewBattery(bus, sbs.DefaultConfig())))

	require.Equal(t, "ACME", snap.Manufacturer)
	require.Equal(t, "SIM3S1P", snap.Device)
	require.Equal(t, "LION", snap.Chemistry)
	require.Equal(t, "2024-06-15", snap.Manufactured)
	require.Equal(t, "current", snap.CapacityMode)
	require.Equal(t, uint16(11850), snap.Voltage_mV)
	require.Equal(t, int16(-1500), snap.Current_mA)
	require.Equal(t, int32(25050), snap.Temperature_mC)
	require.Equal(t, uint16(4000), snap.RemainingCapacity)
	require.Contains(t, snap.Status, "discharging")
	require.Equal(t, "ok", snap.ErrorCode)

	require.Zero(t, snap.CycleCount)
	require.False(t, snap.OK("cycle_count"))
	require.Len(t, snap.Failed, 1)
}

// mute fails the mode and status registers of an otherwise healthy battery.
type mute struct{ *sbs.Battery }

func (mute) BatteryMode() (sb.BatteryModeFields, error) {
	return 0, errors.New("battery_mode: nack")
}

func (mute) BatteryStatus() (sb.BatteryStatusFields, error) {
	return 0, errors.New("battery_status: nack")
}

func TestReadLeavesFailedFlagsEmpty(t *testing.T) {
	bat := mute{sbs.NewBattery(sim.New(), sbs.DefaultConfig())}
	snap := Read(context.Background(), async.Direct(bat))

	require.False(t, snap.OK("battery_mode"))
	require.False(t, snap.OK("battery_status"))
	require.Empty(t, snap.CapacityMode)
	require.Empty(t, snap.Mode)
	require.Empty(t, snap.Status)
	require.Empty(t, snap.ErrorCode)
	require.Equal(t, uint16(11850), snap.Voltage_mV)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "capacity_mode")
	require.NotContains(t, string(raw), "error_code")
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := simServer(t)
	rec := serve(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `sbs_battery_voltage_volts{battery="sim"} 11.85`)
	require.Contains(t, body, `sbs_battery_current_amps{battery="sim"} -1.5`)
	require.Contains(t, body, `sbs_battery_capacity{battery="sim",register="remaining_capacity",unit="mAh"} 4000`)
	require.Contains(t, body, `sbs_battery_status{battery="sim",flag="discharging"} 1`)
	require.Contains(t, body, `sbs_battery_status{battery="sim",flag="fully_charged"} 0`)
	require.Contains(t, body, `sbs_battery_average_time_to_full_minutes{battery="sim"} -1`)
	require.Contains(t, body, `sbs_battery_read_failures{battery="sim"} 0`)
}

func TestBatteryEndpoint(t *testing.T) {
	s, _ := simServer(t)
	rec := serve(t, s, "/battery")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, uint8(80), snap.RelativeSOC)
	require.Equal(t, uint16(42), snap.CycleCount)
	require.Empty(t, snap.Failed)
}

func TestHealth(t *testing.T) {
	s, bus := simServer(t)
	require.Equal(t, http.StatusOK, serve(t, s, "/healthz").Code)

	bus.InjectFaults(100)
	require.Equal(t, http.StatusServiceUnavailable, serve(t, s, "/healthz").Code)
}

func TestRequestLogging(t *testing.T) {
	var out bytes.Buffer
	l := logrus.New()
	l.SetOutput(&out)
	l.SetLevel(logrus.DebugLevel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ginLogger(l))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/down", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Contains(t, out.String(), "level=debug msg=\"GET /ok\" latency=")
	require.Contains(t, out.String(), "status=200")

	out.Reset()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/down", nil))
	require.Contains(t, out.String(), "level=warning")
	require.Contains(t, out.String(), "status=503")
}
