package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/lxzan/gws"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/soar/padbridge/internal/gamepad"
	"github.com/soar/padbridge/internal/hub"
)

// StateSource provides the current console state.
type StateSource interface {
	CurrentState() gamepad.ConsoleState
}

// DeviceLister lists the open joysticks.
type DeviceLister interface {
	Devices() []gamepad.DeviceInfo
}

// Options configure a Server. Devices is optional; when it also implements
// DeviceSelector, monitors can switch the active joystick.
type Options struct {
	Hub         *hub.Hub
	Broadcaster *hub.Broadcaster
	State       StateSource
	Devices     DeviceLister
	Frontend    fs.FS
	Addr        string
	Minify      bool
}

type Server struct {
	opts       Options
	handler    http.Handler
	httpServer *http.Server
}

// New builds the server and prepares the static frontend. With Minify set,
// HTML, CSS and JavaScript files are minified once here.
func New(opts Options) (*Server, error) {
	s := &Server{opts: opts}

	assets, err := loadAssets(opts.Frontend, opts.Minify)
	if err != nil {
		return nil, fmt.Errorf("load frontend: %w", err)
	}

	ws := &socketHandler{hub: opts.Hub, broadcaster: opts.Broadcaster}
	if sel, ok := opts.Devices.(DeviceSelector); ok {
		ws.selector = sel
	}
	upgrader := gws.NewUpgrader(ws, &gws.ServerOption{
		ParallelEnabled:    true,
		ReadMaxPayloadSize: 4096,
	})

	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		go socket.ReadLoop()
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, opts.State.CurrentState())
	})
	mux.HandleFunc("/api/devices", func(w http.ResponseWriter, r *http.Request) {
		devices := []gamepad.DeviceInfo{}
		if opts.Devices != nil {
			devices = append(devices, opts.Devices.Devices()...)
		}
		writeJSON(w, devices)
	})

	// Static files (frontend)
	mux.Handle("/", assets)

	s.handler = mux
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.handler,
	}

	log.Printf("HTTP server listening on %s", s.opts.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down HTTP server...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

type asset struct {
	data        []byte
	contentType string
}

// assetServer serves a frontend held in memory.
type assetServer struct {
	files   map[string]asset
	modTime time.Time
}

func loadAssets(fsys fs.FS, minified bool) (*assetServer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)

	a := &assetServer{files: make(map[string]asset), modTime: time.Now()}
	if fsys == nil {
		return a, nil
	}
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		ct := mime.TypeByExtension(path.Ext(name))
		if minified {
			mediatype, _, _ := strings.Cut(ct, ";")
			if out, err := m.Bytes(mediatype, data); err == nil {
				data = out
			} else if !errors.Is(err, minify.ErrNotExist) {
				return fmt.Errorf("minify %s: %w", name, err)
			}
		}
		a.files["/"+name] = asset{data: data, contentType: ct}
		return nil
	})
	return a, err
}

func (a *assetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	f, ok := a.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if f.contentType != "" {
		w.Header().Set("Content-Type", f.contentType)
	}
	http.ServeContent(w, r, name, a.modTime, bytes.NewReader(f.data))
}
