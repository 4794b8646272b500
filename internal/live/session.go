package live

import (
	"encoding/json"
	"fmt"

	"Ductwork/internal/calc/duct"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	TypeCalculate = "calculate"
	TypeMaterials = "materials"
	TypeResult    = "result"
	TypeError     = "error"
)

// Msg is a request from the client.
type Msg struct {
	Type  string      `json:"type"`
	Input *duct.Input `json:"input,omitempty"`
}

// Reply is sent back for every request.
type Reply struct {
	Type      string          `json:"type"`
	Result    *duct.Result    `json:"result,omitempty"`
	Materials []duct.Material `json:"materials,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Session holds the state of one live connection. A calculate message
// without input recalculates the last accepted input.
type Session struct {
	engine *duct.Calculator
	last   duct.Input
	count  int
}

func NewSession(engine *duct.Calculator) *Session {
	return &Session{
		engine: engine,
		last:   duct.WithDefaults(duct.Input{}),
	}
}

// Count is the number of messages handled so far.
func (s *Session) Count() int { return s.count }

// Last returns the input of the last successful calculation.
func (s *Session) Last() duct.Input { return s.last }

func (s *Session) Handle(msg Msg) Reply {
	s.count++
	switch msg.Type {
	case TypeCalculate:
		in := s.last
		if msg.Input != nil {
			in = duct.WithDefaults(*msg.Input)
		}
		res, err := s.engine.Calculate(in)
		if err != nil {
			return Reply{Type: TypeError, Error: err.Error()}
		}
		s.last = in
		return Reply{Type: TypeResult, Result: &res}
	case TypeMaterials:
		return Reply{Type: TypeMaterials, Materials: s.engine.Materials}
	default:
		return Reply{Type: TypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
}

// Run reads messages from conn until the peer goes away.
func (s *Session) Run(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var reply Reply
		var msg Msg
		if err := json.Unmarshal(data, &msg); err != nil {
			s.count++
			reply = Reply{Type: TypeError, Error: "malformed message: " + err.Error()}
		} else {
			reply = s.Handle(msg)
		}
		if reply.Type == TypeError {
			log.WithFields(log.Fields{"msg": s.count, "error": reply.Error}).Debug("live calculation rejected")
		}
		if err := conn.WriteJSON(&reply); err != nil {
			return err
		}
	}
}
