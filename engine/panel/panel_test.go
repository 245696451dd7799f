package panel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResetter struct {
	calls atomic.Int32
}

func (c *countingResetter) ResetTarget() { c.calls.Add(1) }

func newTestServer(t *testing.T, srv Server) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/control"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// every client is greeted with the current settings
	var greeting SettingsUpdate
	readJSON(t, conn, &greeting)
	require.Equal(t, TypeSettings, greeting.Type)
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

// readReply skips broadcasts until the next reply.
func readReply(t *testing.T, conn *websocket.Conn) Reply {
	t.Helper()
	for {
		var raw map[string]json.RawMessage
		readJSON(t, conn, &raw)
		if string(raw["type"]) != `"`+TypeReply+`"` {
			continue
		}
		data, err := json.Marshal(raw)
		require.NoError(t, err)
		var r Reply
		require.NoError(t, json.Unmarshal(data, &r))
		return r
	}
}

func TestHealth(t *testing.T) {
	p := profiler.NewProfiler()
	p.Tick()
	ts := newTestServer(t, NewServer(settings.NewStore(), WithProfiler(p)))

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	var h Health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, uint64(1), h.Frames)
}

func TestSettingsEndpoint(t *testing.T) {
	store := settings.NewStore()
	require.NoError(t, store.Set(settings.PanelCamera, "fov", 75))
	ts := newTestServer(t, NewServer(store))

	resp, err := http.Get(ts.URL + "/settings")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got settings.Settings
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, float32(75), got.Camera.Fov)
}

func TestSchemaEndpoint(t *testing.T) {
	ts := newTestServer(t, NewServer(settings.NewStore()))

	resp, err := http.Get(ts.URL + "/schema")
	require.NoError(t, err)
	defer resp.Body.Close()

	var panels []settings.Panel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&panels))
	require.NotEmpty(t, panels)
	assert.Equal(t, settings.PanelBox, panels[0].Name)
}

func TestPreflight(t *testing.T) {
	ts := newTestServer(t, NewServer(settings.NewStore()))

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/settings", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestControlSetsParameter(t *testing.T) {
	store := settings.NewStore()
	ts := newTestServer(t, NewServer(store))
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Request{Panel: "box", Key: "metalness", Value: 0.7}))
	reply := readReply(t, conn)

	assert.True(t, reply.OK)
	assert.Empty(t, reply.Error)
	assert.InDelta(t, 0.7, reply.Settings.Box.Metalness, 1e-6)
	assert.InDelta(t, 0.7, store.Snapshot().Box.Metalness, 1e-6)
}

func TestControlRejectsUnknownKey(t *testing.T) {
	store := settings.NewStore()
	ts := newTestServer(t, NewServer(store))
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Request{Panel: "box", Key: "wobble", Value: 1}))
	reply := readReply(t, conn)

	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown key")
	assert.Equal(t, settings.Default(), reply.Settings)
}

func TestControlRejectsMalformedJSON(t *testing.T) {
	ts := newTestServer(t, NewServer(settings.NewStore()))
	conn := dial(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	reply := readReply(t, conn)

	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "decode request")
}

func TestControlResetTarget(t *testing.T) {
	r := &countingResetter{}
	ts := newTestServer(t, NewServer(settings.NewStore(), WithResetter(r)))
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Request{Action: ActionResetTarget}))
	assert.True(t, readReply(t, conn).OK)

	require.NoError(t, conn.WriteJSON(Request{Panel: settings.PanelCamera, Key: settings.ActionResetTarget}))
	assert.True(t, readReply(t, conn).OK)

	assert.Equal(t, int32(2), r.calls.Load())
}

func TestHandleWithoutResetter(t *testing.T) {
	srv := NewServer(settings.NewStore())
	t.Cleanup(srv.Close)

	reply := srv.Handle(Request{Action: ActionResetTarget})
	assert.False(t, reply.OK)

	reply = srv.Handle(Request{Action: "dance"})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown action")

	reply = srv.Handle(Request{})
	assert.False(t, reply.OK)
}

func TestControlSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	store := settings.NewStore()
	require.NoError(t, store.Set(settings.PanelBox, "speed", 0.02))
	ts := newTestServer(t, NewServer(store, WithSettingsPath(path)))
	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Request{Action: ActionSave}))
	require.True(t, readReply(t, conn).OK)

	saved, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.Snapshot(), saved)
}

func TestSaveWithoutPath(t *testing.T) {
	srv := NewServer(settings.NewStore())
	t.Cleanup(srv.Close)

	reply := srv.Handle(Request{Action: ActionSave})
	assert.False(t, reply.OK)
	assert.Equal(t, ErrNoSettingsFile.Error(), reply.Error)
}

func TestSettingsChangesAreBroadcast(t *testing.T) {
	store := settings.NewStore()
	srv := NewServer(store)
	ts := newTestServer(t, srv)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	store.Replace(settings.Settings{})

	var update SettingsUpdate
	readJSON(t, conn, &update)
	assert.Equal(t, TypeSettings, update.Type)
	assert.Equal(t, store.Snapshot(), update.Settings)
}

func TestStatsBroadcastOnlyWithShowStats(t *testing.T) {
	store := settings.NewStore()
	now := time.Unix(0, 0)
	p := profiler.NewProfiler(profiler.WithClock(func() time.Time { return now }))
	srv := NewServer(store, WithProfiler(p))
	ts := newTestServer(t, srv)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	// sample with showStats off is not sent
	now = now.Add(time.Second)
	require.True(t, p.Tick())

	require.NoError(t, store.Set(settings.PanelGeneral, "showStats", true))
	var update SettingsUpdate
	readJSON(t, conn, &update)
	require.True(t, update.Settings.General.ShowStats)

	now = now.Add(time.Second)
	require.True(t, p.Tick())

	var stats StatsUpdate
	readJSON(t, conn, &stats)
	assert.Equal(t, TypeStats, stats.Type)
	assert.Equal(t, uint64(2), stats.Stats.Frames)
}

func TestCloseDisconnectsClients(t *testing.T) {
	srv := NewServer(settings.NewStore())
	ts := newTestServer(t, srv)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Clients() == 1 }, time.Second, 10*time.Millisecond)

	srv.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return srv.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestNewServerPanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { NewServer(nil) })
}
