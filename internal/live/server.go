package live

import (
	"net/http"

	"Ductwork/internal/calc/duct"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	Engine   *duct.Calculator
	Upgrader websocket.Upgrader
}

func NewServer(engine *duct.Calculator) *Server {
	return &Server{
		Engine: engine,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWs upgrades the request and runs a session until the client leaves.
func (s *Server) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	session := NewSession(s.Engine)
	entry := log.WithField("remote", r.RemoteAddr)
	entry.Info("live session opened")
	if err := session.Run(conn); err != nil {
		entry.WithError(err).Warn("live session ended")
		return
	}
	entry.WithField("messages", session.Count()).Info("live session closed")
}
