package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gallery-room/internal/gallery"
	"gallery-room/internal/logger"
)

func main() {
	dir := flag.String("dir", "photos", "directory of images to serve")
	logPath := flag.String("log", "logs/galleryd.txt", "log file")
	flag.Parse()

	glog := logger.New(*logPath)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	gallery.NewHandler(*dir, glog).RegisterRoutes(r)

	addr := ":" + strings.TrimSpace(os.Getenv("PORT"))
	if addr == ":" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	glog.Infof("galleryd: serving %s on %s", *dir, addr)
	log.Printf("listening on http://localhost%s/api/photos", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
