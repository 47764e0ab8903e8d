package fix

import (
	"encoding/json"
	"math"
	"time"
)

// Fix is one raw geostamped sample as ingested from a tracker device.
type Fix struct {
	ID             int64       `json:"id"`
	TrackerID      string      `json:"tracker_id,omitempty"`
	Lat            float64     `json:"lat"`
	Lng            float64     `json:"lng"`
	Address        string      `json:"address,omitempty"`
	BatteryPercent *float64    `json:"battery_percent,omitempty"`
	Device         *DeviceInfo `json:"device,omitempty"`
	RecordedAt     time.Time   `json:"recorded_at"`
}

// DeviceInfo is the canonical shape of the optional device telemetry payload.
type DeviceInfo struct {
	Name       string `json:"name,omitempty"`
	Model      string `json:"model,omitempty"`
	OS         string `json:"os,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
}

// Valid reports whether the fix carries usable coordinates. Invalid fixes are
// dropped at retrieval and never reach the metrics engine or the snapper.
func (f Fix) Valid() bool {
	return !math.IsNaN(f.Lat) && !math.IsNaN(f.Lng)
}

// ParseDeviceInfo normalizes the device_info column, which holds either a
// JSON object or an opaque blob from older clients. Undecodable payloads
// normalize to absent, never to an error.
func ParseDeviceInfo(raw []byte) *DeviceInfo {
	if len(raw) == 0 {
		return nil
	}
	var info DeviceInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil
	}
	if info == (DeviceInfo{}) {
		return nil
	}
	return &info
}
