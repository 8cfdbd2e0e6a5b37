package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/golemsfate/asset_pipeline/assetdb"
	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/matmap"
	"github.com/golemsfate/asset_pipeline/notify"
)

func main() {
	var cfgPath, mapPath, packagePath, content string
	var gui bool
	flag.StringVar(&cfgPath, "config", config.DefaultConfigName, "Path to pipeline config")
	flag.StringVar(&mapPath, "map", "", "Material map json, asked when empty")
	flag.StringVar(&packagePath, "package", "", "Content folder for materials, config value when empty")
	flag.StringVar(&content, "content", "", "Directory backing /Game, config value when empty")
	flag.BoolVar(&gui, "gui", false, "Use native dialogs")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if content == "" {
		content = cfg.ContentDir
	}
	if packagePath == "" {
		packagePath = cfg.MaterialPackage
	}
	packagePath = config.NormalizeContentPath(packagePath)
	log.Printf("Using selected folder: %s", packagePath)

	console := notify.NewConsole(os.Stdin, os.Stdout)
	var n notify.Notifier = console
	var picker notify.FilePicker = console
	if gui {
		d := notify.NewDialog(console)
		n, picker = d, d
	}

	fail := func(err error) {
		n.Error("Import Material Map", err)
		os.Exit(1)
	}

	if mapPath == "" {
		if mapPath, err = picker.LoadFile("Select a JSON file", cfg.MaterialMapDir()); err != nil {
			fail(err)
		}
	}

	m, err := matmap.Load(mapPath)
	if err != nil {
		fail(err)
	}
	remapped, dropped := matmap.Remap(m, cfg.RemapTable())
	if len(dropped) != 0 {
		log.Printf("Channels without remap are skipped: %v", dropped)
	}

	a := &matmap.Applier{
		DB:          assetdb.NewContent(content),
		Names:       notify.AssetNames(console),
		PackagePath: packagePath,
		TextureRoot: filepath.Dir(mapPath),
	}
	materials, err := a.Apply(remapped)
	if err != nil {
		fail(err)
	}
	n.Info("Success", "%d materials created in %s", len(materials), packagePath)
}
