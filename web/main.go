package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-bvh-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	textureDir := flag.String("texture-dir", "textures", "Directory containing image textures")
	flag.Parse()

	webServer := server.NewServer(*port, *textureDir)

	log.Printf("BVH Path Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=cornell-box&width=200", *port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
