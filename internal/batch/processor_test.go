package batch

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whitted-renderer/internal/imageio"
)

const sphereScene = `
view: {width: 24, height: 12, max_depth: 3}
lights: [{position: [0, 0, 1], intensity: 20}]
objects:
  - {type: sphere, position: [0, 0, 3], color: [255, 0, 0], radius: 0.5, lambert: 0.9}
`

func writeScene(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunRendersScenes(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	scenes := []string{
		writeScene(t, dir, "one.yaml", sphereScene),
		writeScene(t, dir, "two.yaml", sphereScene),
		writeScene(t, dir, "broken.yaml", "objects: [{type: cube}]"),
		filepath.Join(dir, "missing.yaml"),
	}

	results := Run(Config{OutputDir: out, Format: imageio.PNG, Thumbnail: 8, Workers: 3}, scenes)
	require.Len(t, results, 4)

	for i, r := range results[:2] {
		assert.True(t, r.Success, "scene %d: %s", i, r.Error)
		assert.Equal(t, scenes[i], r.Scene)
		assert.Equal(t, 24, r.Width)
		assert.Equal(t, 12, r.Height)

		f, err := os.Open(r.Image)
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 24, img.Bounds().Dx())

		f, err = os.Open(r.Thumbnail)
		require.NoError(t, err)
		thumb, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 8, thumb.Bounds().Dx())
		assert.Equal(t, 4, thumb.Bounds().Dy())
	}
	assert.Equal(t, filepath.Join(out, "one.png"), results[0].Image)
	assert.Equal(t, filepath.Join(out, "two_thumb.png"), results[1].Thumbnail)

	for _, r := range results[2:] {
		assert.False(t, r.Success)
		assert.NotEmpty(t, r.Error)
		assert.Empty(t, r.Image)
	}
}

func TestRunSameBaseNameInDifferentDirs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0755))
	scenes := []string{
		writeScene(t, dir, filepath.Join("a", "room.yaml"), sphereScene),
		writeScene(t, dir, filepath.Join("b", "room.yaml"),
			"view: {width: 10, height: 6, max_depth: 1}\nobjects: []\n"),
	}

	results := Run(Config{OutputDir: out, Format: imageio.PNG, Thumbnail: 4, Workers: 2}, scenes)
	require.Len(t, results, 2)
	require.True(t, results[0].Success, results[0].Error)
	require.True(t, results[1].Success, results[1].Error)

	assert.Equal(t, filepath.Join(out, "room.png"), results[0].Image)
	assert.Equal(t, filepath.Join(out, "room_2.png"), results[1].Image)
	assert.Equal(t, filepath.Join(out, "room_2_thumb.png"), results[1].Thumbnail)

	// Each file holds its own scene's render.
	for i, want := range []int{24, 10} {
		f, err := os.Open(results[i].Image)
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, want, img.Bounds().Dx(), results[i].Image)
	}
}

func TestOutputStems(t *testing.T) {
	got := outputStems([]string{"a/room.yaml", "b/room.json", "room_2.yaml", "c/room.yml", "hall.yaml"})
	assert.Equal(t, []string{"room", "room_2", "room_2_2", "room_3", "hall"}, got)
}

func TestRunWebP(t *testing.T) {
	dir := t.TempDir()
	scene := writeScene(t, dir, "s.yml", sphereScene)
	results := Run(Config{OutputDir: dir, Format: imageio.WebP}, []string{scene})
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, filepath.Join(dir, "s.webp"), results[0].Image)
	assert.Empty(t, results[0].Thumbnail)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	in := []Result{
		{Scene: "a.yaml", Image: "out/a.png", Width: 4, Height: 2, Success: true},
		{Scene: "b.yaml", Error: "boom"},
	}
	require.NoError(t, WriteManifest(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []Result
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, in, got)
}
