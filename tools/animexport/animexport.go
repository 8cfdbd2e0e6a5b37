package main

import (
	"flag"
	"log"
	"os"

	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/export"
	"github.com/golemsfate/asset_pipeline/fbx"
	"github.com/golemsfate/asset_pipeline/notify"
	"github.com/golemsfate/asset_pipeline/scene"
)

func main() {
	var cfgPath, character, sceneName, base, snapshot string
	var gui bool
	flag.StringVar(&cfgPath, "config", config.DefaultConfigName, "Path to pipeline config")
	flag.StringVar(&character, "character", config.Placeholder, "Character to export")
	flag.StringVar(&sceneName, "scene", config.Placeholder, "Scene to export")
	flag.StringVar(&base, "base", "", "Animations root, config value when empty")
	flag.StringVar(&snapshot, "snapshot", "", "Scene snapshot with selected armature")
	flag.BoolVar(&gui, "gui", false, "Use native message boxes")
	flag.Parse()

	var n notify.Notifier = notify.NewConsole(os.Stdin, os.Stdout)
	if gui {
		n = notify.NewDialog(notify.NewConsole(os.Stdin, os.Stdout))
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if base == "" {
		base = cfg.AnimationsRoot
	}

	if err := cfg.ValidateSelection(character, sceneName); err != nil {
		n.Error("Export", err)
		os.Exit(1)
	}

	s, err := scene.LoadSnapshot(snapshot)
	if err != nil {
		n.Error("Export", err)
		os.Exit(1)
	}

	path, err := export.NewCoordinator(fbx.NewExporter(s)).Export(character, sceneName, base)
	if err != nil {
		n.Error("Export", err)
		os.Exit(1)
	}
	n.Info("Success", "Animation exported to %s", path)
}
