package matmap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestEncodeKeepsOrder(t *testing.T) {
	m := New()
	door := m.Add("Door")
	door.Set("baseColor", str("tex/door_c.png"))
	door.Set("normalCamera", nil)
	m.Add("Arch").Set("opacity", str(`N:\tex\arch&o.png`))

	data, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{
    "Door": {
        "baseColor": "tex/door_c.png",
        "normalCamera": null
    },
    "Arch": {
        "opacity": "N:\\tex\\arch&o.png"
    }
}`, string(data))
}

func TestDecode(t *testing.T) {
	m, err := Decode([]byte(`{"Zed": {"b": "1.png", "a": null}, "Alpha": {}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed", "Alpha"}, m.Objects())

	zed := m.Get("Zed")
	require.NotNil(t, zed)
	assert.Equal(t, "b", zed.Channels[0].Name)
	assert.Equal(t, "a", zed.Channels[1].Name)

	path, bound, present := zed.Get("b")
	assert.Equal(t, "1.png", path)
	assert.True(t, bound)
	assert.True(t, present)

	_, bound, present = zed.Get("a")
	assert.False(t, bound)
	assert.True(t, present)

	_, _, present = zed.Get("c")
	assert.False(t, present)
	assert.Empty(t, m.Get("Alpha").Channels)
}

func TestDecodeErrors(t *testing.T) {
	for _, data := range []string{
		``,
		`[]`,
		`{"Door": "x"}`,
		`{"Door": {"baseColor": 5}}`,
		`{"Door": {"baseColor": {}}}`,
		`{"Door": {}`,
	} {
		_, err := Decode([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestSaveLoad(t *testing.T) {
	m := New()
	m.Add("Door").Set("baseColor", str("tex/door_c.png"))

	assert.ErrorIs(t, m.Save(""), ErrMissingOutputPath)

	path := filepath.Join(t.TempDir(), "material_info.json")
	require.NoError(t, m.Save(path))
	// overwrite
	m.Add("Arch")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}
