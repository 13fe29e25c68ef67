package main

import (
	"context"
	"log"

	"github.com/shopmesh/shopmesh/internal/app/productapp"
)

func main() {
	if err := productapp.Run(context.Background()); err != nil {
		log.Fatalf("product service failed: %v", err)
	}
}
