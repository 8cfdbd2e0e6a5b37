package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/matmap"
	"github.com/golemsfate/asset_pipeline/notify"
	"github.com/golemsfate/asset_pipeline/scene"
)

func main() {
	var cfgPath, snapshot, gltf, out, channels string
	var gui bool
	flag.StringVar(&cfgPath, "config", config.DefaultConfigName, "Path to pipeline config")
	flag.StringVar(&snapshot, "snapshot", "", "Scene snapshot with selected groups")
	flag.StringVar(&gltf, "gltf", "", "glTF document, its default scene is the selection")
	flag.StringVar(&out, "out", "", "Output json path, asked starting from material_map_path folder when empty")
	flag.StringVar(&channels, "channels", "", "Comma separated channels, config value when empty")
	flag.BoolVar(&gui, "gui", false, "Use native dialogs")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	console := notify.NewConsole(os.Stdin, os.Stdout)
	var n notify.Notifier = console
	var picker notify.FilePicker = console
	if gui {
		d := notify.NewDialog(console)
		n, picker = d, d
	}

	fail := func(err error) {
		n.Error("Export Material Info", err)
		os.Exit(1)
	}

	path := snapshot
	if gltf != "" {
		path = gltf
	}
	if path == "" {
		fail(matmap.ErrNoSelection)
	}
	insp, err := scene.Open(path)
	if err != nil {
		fail(err)
	}

	selected := cfg.Channels
	if channels != "" {
		selected = strings.Split(channels, ",")
	}

	m, err := matmap.Build(insp, insp.Selection(), selected)
	if err != nil {
		fail(err)
	}

	if out == "" {
		out, err = picker.SaveFile("Save material map", cfg.MaterialMapDir())
		if err != nil && err != notify.ErrCancelled {
			fail(err)
		}
	}
	if err := m.Save(out); err != nil {
		fail(err)
	}
	n.Info("Success", "Data exported to %s", out)
}
