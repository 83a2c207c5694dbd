package server

import (
	"aimtrainer/internal/config"
	"aimtrainer/internal/events"
	"aimtrainer/internal/metrics"
	"aimtrainer/internal/players"
	"aimtrainer/internal/scheduler"
	"aimtrainer/internal/shell"
	"aimtrainer/internal/wshub"
	"context"
	"fmt"
	"log"
	"net/http"
	"text/template"
	"time"

	"github.com/coder/quartz"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Surface size used until the browser reports its canvas size.
const (
	GameWidth  = 600
	GameHeight = 400
)

type Server struct {
	Players  *players.Store
	Hub      *wshub.Hub
	Tmpl     *template.Template
	Registry *prometheus.Registry
	Recorder *metrics.Recorder
	Config   config.Config
}

func New(cfg config.Config, tmpl *template.Template) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		Players:  players.NewStore(cfg.SessionTTL),
		Hub:      wshub.NewHub(),
		Tmpl:     tmpl,
		Registry: reg,
		Recorder: metrics.NewRecorder(reg),
		Config:   cfg,
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := s.Tmpl.ExecuteTemplate(w, "index", nil); err != nil {
		log.Println(err)
		http.Error(w, "Error rendering home page", http.StatusInternalServerError)
	}
}

// handleWS hosts one player: a shell running on its own event loop, fed by
// the messages the browser sends.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WS] Accept error: %v\n", err)
		return
	}

	playerID := uuid.New().String()
	ctx, cancel := context.WithCancel(r.Context())

	client := wshub.NewClient(playerID, conn)
	s.Hub.Register(client)

	loop := scheduler.NewLoop(quartz.NewReal(), 256)
	sh := shell.New(
		loop,
		wshub.NewCanvas(s.Hub, playerID, GameWidth, GameHeight),
		wshub.NewView(s.Hub, playerID),
		events.NewBus(),
		shell.Config{
			FrameInterval: s.Config.FrameInterval(),
			Recorder:      s.Recorder,
		},
	)
	s.Players.Add(&players.Player{
		ID:        playerID,
		Shell:     sh,
		Loop:      loop,
		CreatedAt: time.Now(),
	})
	log.Printf("[WS] Player %s connected\n", playerID)

	defer func() {
		loop.Close()
		cancel()
		s.Players.Remove(playerID)
		s.Hub.Unregister(playerID)
		conn.Close(websocket.StatusNormalClosure, "")
		log.Printf("[WS] Player %s disconnected\n", playerID)
	}()

	go client.WritePump(ctx)
	go loop.Run(ctx)
	go s.navigate(ctx, loop, sh)
	go func() {
		select {
		case <-loop.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		var msg wshub.ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			return
		}
		loop.Post(func() { dispatch(sh, msg) })
	}
}

// navigate plays the host's part: a request for the challenge screen
// starts a session on the player's loop.
func (s *Server) navigate(ctx context.Context, loop *scheduler.Loop, sh *shell.Shell) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-sh.Events.Navigations:
			switch ev.Screen {
			case events.ScreenChallenge:
				loop.Post(func() {
					if err := sh.StartChallenge(); err != nil {
						log.Printf("[Server] StartChallenge error: %v\n", err)
					}
				})
			case events.ScreenTraining:
				log.Println("[Server] Training mode requested")
			}
		}
	}
}

func dispatch(sh *shell.Shell, msg wshub.ClientMessage) {
	switch msg.Type {
	case wshub.MsgDown:
		sh.Press(msg.X, msg.Y)
	case wshub.MsgKey:
		if msg.Key == "Escape" {
			sh.Escape()
		}
	case wshub.MsgResize:
		resizeIfSized(sh, msg)
	case wshub.MsgChallenge:
		resizeIfSized(sh, msg)
		sh.OpenChallenge()
	case wshub.MsgTrain:
		sh.OpenTrain()
	case wshub.MsgRestart:
		resizeIfSized(sh, msg)
		sh.Restart()
	case wshub.MsgMenu:
		sh.BackToMenu()
	default:
		log.Printf("[WS] Unknown message type %q\n", msg.Type)
	}
}

// resizeIfSized applies a canvas size carried by msg. Requests to start a
// challenge carry one so the first spawn uses the real surface.
func resizeIfSized(sh *shell.Shell, msg wshub.ClientMessage) {
	if msg.Width > 0 && msg.Height > 0 {
		sh.Resize(msg.Width, msg.Height)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","players":%d}`, s.Hub.Len())
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}
