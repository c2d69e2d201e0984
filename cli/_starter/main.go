package main

import (
	"log"

	"github.com/go-barry/boilerplate"
)

func main() {
	err := boilerplate.Start(boilerplate.RuntimeConfig{
		Env:        "dev",
		ConfigPath: "boilerplate.config.yml",
	})
	if err != nil {
		log.Fatal(err)
	}
}
