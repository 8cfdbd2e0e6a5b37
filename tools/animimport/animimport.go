package main

import (
	"flag"
	"log"
	"os"

	"github.com/golemsfate/asset_pipeline/animsync"
	"github.com/golemsfate/asset_pipeline/assetdb"
	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/notify"
	"github.com/golemsfate/asset_pipeline/utils"
)

func main() {
	var cfgPath, source, dest, content string
	var dry, dump bool
	flag.StringVar(&cfgPath, "config", config.DefaultConfigName, "Path to pipeline config")
	flag.StringVar(&source, "source", "", "Animations root on disk, config value when empty")
	flag.StringVar(&dest, "dest", "", "Engine content path to mirror into, config value when empty")
	flag.StringVar(&content, "content", "", "Directory backing /Game, config value when empty")
	flag.BoolVar(&dry, "dry", false, "Only print what would be imported")
	flag.BoolVar(&dump, "dump", false, "Dump planned tasks")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if source == "" {
		source = cfg.AnimationsRoot
	}
	if dest == "" {
		dest = cfg.ContentRoot
	}
	if content == "" {
		content = cfg.ContentDir
	}

	n := notify.NewConsole(os.Stdin, os.Stdout)
	p := animsync.NewPlanner(assetdb.NewContent(content))
	p.DryRun = dry

	report, err := p.Sync(source, dest)
	if dump && report != nil {
		utils.LogDump(report)
	}
	if err != nil {
		n.Error("Import", err)
		os.Exit(1)
	}

	if dry {
		n.Info("Dry run", "%d folders to create, %d animations to import", len(report.Folders), len(report.Tasks))
	} else {
		n.Info("Completed successfully", "%d animations imported", len(report.Imported))
	}
}
