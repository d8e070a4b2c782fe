package main

import (
	"context"
	"log"

	"github.com/Apurer/go-gin-shelter-server/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
