package assetdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")

func writeSource(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0666))
	return path
}

func TestContentDirectories(t *testing.T) {
	c := NewContent(t.TempDir())

	assert.True(t, c.DirectoryExists("/Game"))
	assert.False(t, c.DirectoryExists("/Game/ASSETS/Animations"))
	require.NoError(t, c.MakeDirectory("/Game/ASSETS/Animations"))
	require.NoError(t, c.MakeDirectory("/Game/ASSETS/Animations"))
	assert.True(t, c.DirectoryExists("/Game/ASSETS/Animations"))
	assert.True(t, c.DirectoryExists("/Game/ASSETS/"))

	assert.Error(t, c.MakeDirectory("/Engine/Stuff"))
	assert.False(t, c.DirectoryExists("/All/Game"))
}

func TestImportAnimation(t *testing.T) {
	c := NewContent(t.TempDir())
	src := writeSource(t, "Bird_scene001_v2.fbx", append(append([]byte{}, fbxBinaryMagic...), 0x1a, 0, 0xe8, 0x1c))

	task := &ImportTask{
		Filename:        src,
		DestinationPath: "/Game/ASSETS/Animations/Bird/scene001",
		DestinationName: "anim_Bird_scene001",
		ReplaceExisting: true,
		Automated:       true,
		Options:         AnimationImportOptions(),
	}
	require.NoError(t, c.ImportAssets([]*ImportTask{task}))
	assert.Equal(t, []string{"/Game/ASSETS/Animations/Bird/scene001/anim_Bird_scene001.anim_Bird_scene001"}, task.ImportedObjectPaths)

	assert.True(t, c.AssetExists("/Game/ASSETS/Animations/Bird/scene001/anim_Bird_scene001"))
	assert.True(t, c.AssetExists(task.ImportedObjectPaths[0]))

	r, err := c.Get("/Game/ASSETS/Animations/Bird/scene001/anim_Bird_scene001")
	require.NoError(t, err)
	assert.Equal(t, ClassAnimSequence, r.Class)
	assert.Equal(t, "anim_Bird_scene001.fbx", r.Data)
	assert.NotEmpty(t, r.UUID)

	// replace keeps uuid
	again := *task
	again.ImportedObjectPaths = nil
	require.NoError(t, c.ImportAssets([]*ImportTask{&again}))
	r2, err := c.Get("/Game/ASSETS/Animations/Bird/scene001/anim_Bird_scene001")
	require.NoError(t, err)
	assert.Equal(t, r.UUID, r2.UUID)
}

func TestImportRejectsGarbage(t *testing.T) {
	c := NewContent(t.TempDir())

	err := c.ImportAssets([]*ImportTask{{
		Filename:        writeSource(t, "broken.fbx", []byte("hello")),
		DestinationPath: "/Game/A",
	}})
	assert.Error(t, err)

	err = c.ImportAssets([]*ImportTask{{
		Filename:        writeSource(t, "notes.txt", []byte("hello")),
		DestinationPath: "/Game/A",
	}})
	assert.Error(t, err)

	err = c.ImportAssets([]*ImportTask{{
		Filename:        filepath.Join(t.TempDir(), "missing.png"),
		DestinationPath: "/Game/A",
	}})
	assert.Error(t, err)
	assert.False(t, c.DirectoryExists("/Game/A"))
}

func TestImportWithoutReplaceKeepsExisting(t *testing.T) {
	c := NewContent(t.TempDir())
	src := writeSource(t, "door c.png", pngHeader)

	path, err := ImportTexture(c, src, "/Game/Materials")
	require.NoError(t, err)
	assert.Equal(t, "/Game/Materials/door_c.door_c", path)

	task := &ImportTask{Filename: src, DestinationPath: "/Game/Materials"}
	require.NoError(t, c.ImportAssets([]*ImportTask{task}))
	assert.Empty(t, task.ImportedObjectPaths)
}

func TestReplaceRemovesOldPayload(t *testing.T) {
	c := NewContent(t.TempDir())
	jpgHeader := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

	tmp := t.TempDir()
	png := filepath.Join(tmp, "door_c.png")
	jpg := filepath.Join(tmp, "door_c.jpg")
	require.NoError(t, os.WriteFile(png, pngHeader, 0666))
	require.NoError(t, os.WriteFile(jpg, jpgHeader, 0666))

	first, err := ImportTexture(c, png, "/Game/Materials")
	require.NoError(t, err)
	second, err := ImportTexture(c, jpg, "/Game/Materials")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	r, err := c.Get(second)
	require.NoError(t, err)
	assert.Equal(t, "door_c.jpg", r.Data)
	assert.Equal(t, "jpg", r.Properties["format"])

	dir := filepath.Join(c.Root(), "Materials")
	assert.NoFileExists(t, filepath.Join(dir, "door_c.png"))
	assert.FileExists(t, filepath.Join(dir, "door_c.jpg"))
}

func TestMaterialWiring(t *testing.T) {
	c := NewContent(t.TempDir())

	mat, err := c.CreateMaterial("M_Door", "/Game/Materials")
	require.NoError(t, err)
	assert.Equal(t, "/Game/Materials/M_Door", mat)

	_, err = c.CreateMaterial("M_Door", "/Game/Materials")
	assert.Error(t, err, "existing material")

	tex, err := ImportTexture(c, writeSource(t, "door_n.png", pngHeader), mat)
	require.NoError(t, err)
	assert.Equal(t, "/Game/Materials/M_Door/door_n.door_n", tex)

	r, err := c.Get(tex)
	require.NoError(t, err)
	assert.Equal(t, ClassTexture, r.Class)
	assert.Equal(t, "png", r.Properties["format"])
	assert.Equal(t, "door_n.png", r.Data)

	require.NoError(t, c.ConnectTexture(mat, tex, "NORMAL", SamplerNormal))
	assert.Error(t, c.ConnectTexture(tex, tex, "NORMAL", SamplerNormal))
	assert.Error(t, c.ConnectTexture(mat, mat, "NORMAL", SamplerNormal))
	assert.Error(t, c.ConnectTexture(mat, "/Game/Materials/nope", "NORMAL", SamplerNormal))

	m, err := c.Get(mat)
	require.NoError(t, err)
	assert.True(t, m.TwoSided)
	require.Len(t, m.Expressions, 1)
	assert.Equal(t, Expression{Texture: tex, Sampler: SamplerNormal, Output: "RGB", Property: "NORMAL"}, *m.Expressions[0])
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, "door_c", AssetName("/tmp/door c.png"))
	assert.Equal(t, "Bird_scene001_v2", AssetName("Bird_scene001_v2.fbx"))
	assert.Equal(t, "a_b_c", AssetName("a.b-c.tga"))
}
