package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefers(dark bool) PrefersDark {
	return func(context.Context) bool { return dark }
}

func TestMount_FallsBackToEnvironment(t *testing.T) {
	var applied []Mode
	st := &MemoryStorage{}
	th := New(st, prefers(true), WithApply(func(m Mode) { applied = append(applied, m) }))

	require.NoError(t, th.Mount(context.Background()))
	assert.True(t, th.IsDark())
	assert.Equal(t, []Mode{Dark}, applied)

	_, saved, _ := st.Load(context.Background())
	assert.False(t, saved, "mount does not persist")
}

func TestMount_StoredPreferenceWins(t *testing.T) {
	st := &MemoryStorage{}
	require.NoError(t, st.Save(context.Background(), Light))

	th := New(st, prefers(true))
	require.NoError(t, th.Mount(context.Background()))
	assert.Equal(t, Light, th.Mode())
}

func TestToggle_TwiceRestores(t *testing.T) {
	th := New(&MemoryStorage{}, prefers(false))
	require.NoError(t, th.Mount(context.Background()))
	before := th.Mode()

	_, err := th.Toggle(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, before, th.Mode())

	_, err = th.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, th.Mode())
}

func TestToggle_PersistsAcrossReload(t *testing.T) {
	st := &MemoryStorage{}
	var attr Mode
	th := New(st, prefers(false), WithApply(func(m Mode) { attr = m }))
	require.NoError(t, th.Mount(context.Background()))

	m, err := th.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Dark, m)
	assert.Equal(t, Dark, attr)

	reloaded := New(st, prefers(false))
	require.NoError(t, reloaded.Mount(context.Background()))
	assert.Equal(t, Dark, reloaded.Mode())
}

type brokenStorage struct{}

func (brokenStorage) Load(context.Context) (Mode, bool, error) {
	return "", false, errors.New("disk gone")
}
func (brokenStorage) Save(context.Context, Mode) error { return errors.New("disk gone") }

func TestStorageErrors(t *testing.T) {
	th := New(brokenStorage{}, nil)
	assert.ErrorContains(t, th.Mount(context.Background()), "loading theme")

	_, err := th.Toggle(context.Background())
	assert.ErrorContains(t, err, "saving theme")
	assert.True(t, th.IsDark(), "the in-memory flag still flips")
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("dark")
	assert.True(t, ok)
	assert.Equal(t, Dark, m)
	_, ok = ParseMode("blue")
	assert.False(t, ok)
}

func TestModeOf(t *testing.T) {
	assert.Equal(t, Dark, ModeOf(true))
	assert.Equal(t, Light, ModeOf(false))
}
