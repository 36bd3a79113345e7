package metrics

import (
	"github.com/valyala/fasthttp"

	"github.com/mnaljm/Project-bonk/internal/logging"
)

// Server exposes the registry over HTTP for scraping and health probes.
type Server struct {
	addr   string
	server *fasthttp.Server
}

func NewServer(addr string) *Server {
	s := &Server{addr: addr}
	s.server = &fasthttp.Server{
		Handler: s.handle,
		Name:    "bonk-metrics",
	}
	return s
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/metrics":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString(Get().Export())
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok\n")
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

// Start serves in the background; listen failures are logged, not fatal.
func (s *Server) Start() {
	go func() {
		logging.Info("Metrics endpoint listening on %s", s.addr)
		if err := s.server.ListenAndServe(s.addr); err != nil {
			logging.Error("Metrics server stopped: %v", err)
		}
	}()
}

func (s *Server) Stop() error {
	return s.server.Shutdown()
}
