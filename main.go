package main

import (
	"log"

	"github.com/talentscout/hiring-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
