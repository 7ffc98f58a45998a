package blendrules

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/camrig/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAtomic(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestBuildWithoutFiles(t *testing.T) {
	lookup, err := Build("", "", nil)
	require.NoError(t, err)
	assert.True(t, lookup.LookupBlend(namedCamera("a"), namedCamera("b")).IsCut())
}

func TestBuildUsesScriptFromYaml(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "rules.tengo")
	writeAtomic(t, script, `lookup := func(from, to) { return {style: "hard_in", duration: 3} }`)
	blends := filepath.Join(dir, "blends.yaml")
	writeAtomic(t, blends, "default:\n  style: linear\n  duration: 1\nscript: "+script+"\n")

	lookup, err := Build(blends, "", nil)
	require.NoError(t, err)
	_, ok := lookup.(*Script)
	require.True(t, ok)
	assert.Equal(t, camera.HardIn, lookup.LookupBlend(nil, namedCamera("x")).Style)
}

func TestReloaderPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	blends := filepath.Join(dir, "blends.yaml")
	writeAtomic(t, blends, "default:\n  style: linear\n  duration: 1\n")

	logger, _ := bufferLogger()
	r, err := NewReloader(blends, "", logger)
	require.NoError(t, err)
	defer r.Close()
	require.NoError(t, r.Watch(dir))
	assert.Error(t, r.Watch(dir))

	a, b := namedCamera("a"), namedCamera("b")
	assert.Equal(t, camera.Linear, r.LookupBlend(a, b).Style)

	changed, err := r.Poll()
	require.NoError(t, err)
	assert.False(t, changed)

	writeAtomic(t, blends, "default:\n  style: hard_out\n  duration: 4\n")
	require.Eventually(t, func() bool {
		_, _ = r.Poll()
		return r.LookupBlend(a, b).Style == camera.HardOut
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, float32(4), r.LookupBlend(a, b).Duration)
}

func TestReloaderKeepsLookupOnBadFile(t *testing.T) {
	dir := t.TempDir()
	blends := filepath.Join(dir, "blends.yaml")
	writeAtomic(t, blends, "default:\n  style: ease_in\n  duration: 1\n")

	logger, buf := bufferLogger()
	r, err := NewReloader(blends, "", logger)
	require.NoError(t, err)

	writeAtomic(t, blends, "default:\n  style: wobble\n")
	assert.Error(t, r.Reload())
	assert.Equal(t, camera.EaseIn, r.LookupBlend(nil, namedCamera("b")).Style)

	require.NoError(t, r.Watch(dir))
	defer r.Close()
	writeAtomic(t, blends, "default: [")
	require.Eventually(t, func() bool {
		_, err := r.Poll()
		return err != nil
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, camera.EaseIn, r.Current().LookupBlend(nil, namedCamera("b")).Style)
	assert.Contains(t, buf.String(), "blend rules reload failed")
}
