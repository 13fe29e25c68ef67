package main

import (
	"context"
	"log"

	"github.com/shopmesh/shopmesh/internal/app/userapp"
)

func main() {
	if err := userapp.Run(context.Background()); err != nil {
		log.Fatalf("user service failed: %v", err)
	}
}
