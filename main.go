package main

import (
	"log"

	"github.com/naveenaduri/resume-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
