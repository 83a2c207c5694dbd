package server

import (
	"aimtrainer/internal/config"
	"context"
	"fmt"
	"net/http"
	"text/template"
	"time"
)

func Run() error {
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	tmpl := template.Must(template.ParseFiles("templates/index.html"))
	srv := New(appCfg, tmpl)
	go srv.Players.RunSweeper(context.Background(), 5*time.Minute)

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.Routes())
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metricsHandler())
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}
