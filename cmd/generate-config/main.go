package main

import (
	"flag"
	"gopkg.in/yaml.v2"
	"io"
	"os"
	"texasholdem-server/internal/config"
)

var out = flag.String("out", "", "write the config to this file instead of stdout")

func main() {
	flag.Parse()

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.OpenFile(*out, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err != nil {
			panic(err)
		}
		defer file.Close()

		w = file
	}

	if err := yaml.NewEncoder(w).Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
