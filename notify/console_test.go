package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleAsk(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("M_Door\n  M_Arch  \nlast"), &out)

	for _, expected := range []string{"M_Door", "M_Arch", "last"} {
		answer, err := c.Ask("Name?")
		require.NoError(t, err)
		assert.Equal(t, expected, answer)
	}

	_, err := c.Ask("Name?")
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, strings.Repeat("Name? ", 4), out.String())
}

func TestConsolePick(t *testing.T) {
	c := NewConsole(strings.NewReader("material_info.json\n/abs/map.json\nC:\\maps\\map.json\n\n"), &bytes.Buffer{})

	for _, expected := range []string{"N:/GOLEMS_FATE/material_info.json", "/abs/map.json", `C:\maps\map.json`} {
		path, err := c.SaveFile("Save material map", "N:/GOLEMS_FATE")
		require.NoError(t, err)
		assert.Equal(t, expected, path)
	}

	_, err := c.LoadFile("Select a JSON file", "")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestConsoleMessages(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out)
	c.Info("Success", "Data exported to %s", "map.json")
	c.Error("Export", errors.New("character and scene must be selected"))

	assert.Equal(t, "[Success] Data exported to map.json\n"+
		"[Export] ERROR: character and scene must be selected\n", out.String())
}

func TestAssetNames(t *testing.T) {
	var out bytes.Buffer
	names := AssetNames(NewConsole(strings.NewReader("M_Door\n"), &out))

	name, err := names.AssetName("Door")
	require.NoError(t, err)
	assert.Equal(t, "M_Door", name)
	assert.Contains(t, out.String(), "object 'Door'")

	// closed input gives no name
	name, err = names.AssetName("Arch")
	require.NoError(t, err)
	assert.Equal(t, "", name)
}
