package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/calvinmclean/stickkeys/host"
	"github.com/calvinmclean/stickkeys/ui"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file. Default is the user config dir")
	flag.Parse()

	cfg, err := host.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("ENABLE_UI") == "true" {
		ui.NewCalibratorUI(cfg).Run()
		return
	}

	runCLI(cfg)
}

// runCLI pipes stdin to the device and prints everything it sends back.
func runCLI(cfg host.Config) {
	c, err := host.New(cfg.Port, cfg.Baud)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	fmt.Println("connected to", c.PortName())
	fmt.Println("type 'help' for available commands")

	err = c.Run(context.Background(), os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}
