package main

import (
	"context"
	"log"

	"github.com/shopmesh/shopmesh/internal/app/orderapp"
)

func main() {
	if err := orderapp.Run(context.Background()); err != nil {
		log.Fatalf("order service failed: %v", err)
	}
}
