package panel

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
)

// Actions a client may request.
const (
	ActionResetTarget = settings.ActionResetTarget
	ActionSave        = "save"
)

// Outgoing message types.
const (
	TypeReply    = "reply"
	TypeSettings = "settings"
	TypeStats    = "stats"
)

// Request is a message received on the control socket. A request carries either an action
// or a panel/key/value triple.
type Request struct {
	Panel  string `json:"panel,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  any    `json:"value,omitempty"`
	Action string `json:"action,omitempty"`
}

// Reply answers exactly one Request.
type Reply struct {
	Type     string            `json:"type"`
	OK       bool              `json:"ok"`
	Error    string            `json:"error,omitempty"`
	Settings settings.Settings `json:"settings"`
}

// SettingsUpdate is pushed to every client when the settings change.
type SettingsUpdate struct {
	Type     string            `json:"type"`
	Settings settings.Settings `json:"settings"`
}

// StatsUpdate is pushed to every client with each profiler sample while showStats is on.
type StatsUpdate struct {
	Type  string          `json:"type"`
	Stats profiler.Sample `json:"stats"`
}

// Health is the body of GET /health.
type Health struct {
	Status  string  `json:"status"`
	UptimeS float64 `json:"uptime_s"`
	Frames  uint64  `json:"frames"`
	FPS     float64 `json:"fps"`
	Clients int     `json:"clients"`
}
