package main

import (
	"flag"
	"log"

	"github.com/golemsfate/asset_pipeline/config"
	"github.com/golemsfate/asset_pipeline/web"
)

func main() {
	var addr, cfgPath, animations, content, contentDir, webPath string
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&cfgPath, "config", config.DefaultConfigName, "Path to pipeline config")
	flag.StringVar(&animations, "animations", "", "Animations root override")
	flag.StringVar(&content, "content", "", "Engine content path of animations override")
	flag.StringVar(&contentDir, "contentdir", "", "Directory backing /Game override")
	flag.StringVar(&webPath, "web", "web", "Path to web resources")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if animations != "" {
		cfg.AnimationsRoot = animations
	}
	if content != "" {
		cfg.ContentRoot = content
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}

	if err := web.StartServer(addr, web.NewServer(cfg), webPath); err != nil {
		log.Fatal(err)
	}
}
