// Package web provides the HTTP control surface for the lampctl daemon.
// All routes are GET; mutating routes redirect back to / so a browser form
// submission produces a clean reload.
package web

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/sweeney/lampctl/internal/control"
)

// Server serves the control UI and API over HTTP.
type Server struct {
	httpServer *http.Server
	ctrl       *control.Controller
}

// New creates a Server that reads and mutates state through the controller.
func New(addr string, ctrl *control.Controller) *Server {
	s := &Server{ctrl: ctrl}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/led1on", s.handleLamp(1, true))
	mux.HandleFunc("/led1off", s.handleLamp(1, false))
	mux.HandleFunc("/led2on", s.handleLamp(2, true))
	mux.HandleFunc("/led2off", s.handleLamp(2, false))
	mux.HandleFunc("/setAlarms", s.handleSetAlarms)
	mux.HandleFunc("/clearAlarms", s.handleClearAlarms)
	mux.HandleFunc("/startTimer", s.handleStartTimer)
	mux.HandleFunc("/stopTimer", s.handleStopTimer)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// The mux routes every unregistered path here.
	if r.URL.Path != "/" {
		notFound(w)
		return
	}
	snap := s.ctrl.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.ctrl.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(formatStatus(snap))
}

func (s *Server) handleLamp(n int, on bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.ctrl.SetLamp(n, on); err != nil {
			log.Printf("set lamp %d: %v", n, err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (s *Server) handleSetAlarms(w http.ResponseWriter, r *http.Request) {
	s.ctrl.SetAlarms(r.URL.Query())
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleClearAlarms(w http.ResponseWriter, r *http.Request) {
	s.ctrl.ClearAlarms()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "OK")
}

func (s *Server) handleStartTimer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.ctrl.StartTimer(intParam(q.Get("hours")), intParam(q.Get("minutes")), intParam(q.Get("seconds")))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleStopTimer(w http.ResponseWriter, r *http.Request) {
	s.ctrl.StopTimer()
	http.Redirect(w, r, "/", http.StatusFound)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, "Not found")
}

// intParam parses a form integer; missing or malformed means 0.
func intParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
