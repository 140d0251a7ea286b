package main

import (
	"context"
	"log"

	"finpal-server/src/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
