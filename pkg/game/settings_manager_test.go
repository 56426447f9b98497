package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore opens gdata storage rooted in a temporary home directory.
func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	store, err := gdata.Open(gdata.Config{AppName: "engine2d_test"})
	require.NoError(t, err)
	return store
}

func TestSettingsManagerDefaults(t *testing.T) {
	defaults := Settings{FPS: 60, ShowFPS: true}
	sm := NewSettingsManager(openTestStore(t), defaults, nil)

	assert.Equal(t, defaults, sm.Settings())
	assert.False(t, sm.Stored())
}

func TestSettingsManagerSaveAndReload(t *testing.T) {
	store := openTestStore(t)
	sm := NewSettingsManager(store, Settings{FPS: 60}, nil)

	sm.SetFPS(30)
	sm.SetShowFPS(true)
	sm.SetMuted(true)
	require.NoError(t, sm.Save())
	assert.True(t, sm.Stored())

	reloaded := NewSettingsManager(store, Settings{FPS: 60}, nil)
	assert.True(t, reloaded.Stored())
	assert.Equal(t, Settings{FPS: 30, ShowFPS: true, Muted: true}, reloaded.Settings())
}

func TestSettingsManagerRejectsCorruptData(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SaveObjectProp(settingsObject, settingsProperty, []byte("fps: [not a number")))

	sm := NewSettingsManager(store, Settings{FPS: 45}, nil)
	assert.Equal(t, Settings{FPS: 45}, sm.Settings(), "defaults survive a failed load")
	assert.Error(t, sm.Load())
}

func TestSettingsManagerClampsNegativeFPS(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SaveObjectProp(settingsObject, settingsProperty, []byte("fps: -5\n")))

	sm := NewSettingsManager(store, Settings{}, nil)
	assert.Zero(t, sm.Settings().FPS)

	sm.SetFPS(-1)
	assert.Zero(t, sm.Settings().FPS)
}

func TestSettingsManagerWithoutStore(t *testing.T) {
	sm := NewSettingsManager(nil, Settings{FPS: 60}, nil)

	sm.SetShowFPS(true)
	assert.NoError(t, sm.Save())
	assert.False(t, sm.Stored())
	assert.NoError(t, sm.Load())
	assert.Equal(t, Settings{FPS: 60}, sm.Settings(), "Load restores defaults without a store")
}

func TestSettingsManagerApplyAndCapture(t *testing.T) {
	e, _, _ := newTestEngine(t, Options{FPS: 60})
	sm := NewSettingsManager(nil, Settings{FPS: 24, ShowFPS: true, Muted: true}, nil)

	sm.Apply(e)
	assert.Equal(t, 24.0, e.FPS())
	assert.True(t, e.ShowFPS())
	assert.True(t, e.Muted())

	e.SetFPS(0)
	e.SetShowFPS(false)
	sm.Capture(e)
	assert.Equal(t, Settings{FPS: 0, ShowFPS: false, Muted: true}, sm.Settings())
}
