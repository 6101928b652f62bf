package observer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"stairforge.ai/internal/plan"
	"stairforge.ai/internal/protocol"
)

// Server streams planner runs to execution/animation clients. Each
// SUBSCRIBE starts a fresh headless run of the configured scenario; the
// client receives RUN_HEADER, one ACTION per committed action, and a
// terminal RUN_RESULT. Slow consumers are dropped, never block the planner.
type Server struct {
	scenario plan.Scenario
	log      *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64
}

func NewServer(sc plan.Scenario, logger *log.Logger) *Server {
	return &Server{
		scenario: sc,
		log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: must send SUBSCRIBE first.
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var sub protocol.SubscribeMsg
		if err := json.Unmarshal(msg, &sub); err != nil {
			s.closePolicy(conn, "bad subscribe")
			return
		}
		if sub.Type != protocol.TypeSubscribe || sub.ProtocolVersion != protocol.Version {
			s.closePolicy(conn, "expected SUBSCRIBE")
			return
		}

		sid := s.nextID.Add(1)
		s.log.Printf("observer O%d: starting run of %q", sid, s.scenario.Name)
		s.streamRun(r.Context(), conn, sid)
	}
}

func (s *Server) closePolicy(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(time.Second))
}

func (s *Server) streamRun(ctx context.Context, conn *websocket.Conn, sid uint64) {
	out := make(chan []byte, 4096)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Writer goroutine; the planner itself stays synchronous.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-out:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	send := func(v any) {
		b, err := json.Marshal(v)
		if err != nil {
			return
		}
		select {
		case out <- b:
		default:
			// Slow consumer: drop the session rather than block.
			s.log.Printf("observer O%d: send buffer full, dropping", sid)
			cancel()
		}
	}

	sc := s.scenario
	send(protocol.RunHeaderMsg{
		Type:            protocol.TypeRunHeader,
		ProtocolVersion: protocol.Version,
		Scenario:        sc.Name,
		ScenarioDigest:  sc.Digest(),
		Width:           sc.Width,
		Depth:           sc.Depth,
		Goal:            sc.Goal,
		GoalHeight:      sc.GoalHeight,
		Steps:           len(sc.Steps),
		MaxIterations:   sc.MaxIterations,
	})

	runner := plan.NewRunner(sc, s.log)
	seq := 0
	runner.OnAction = func(iteration int, a plan.PlannedAction) {
		send(protocol.ActionMsg{
			Type:      protocol.TypeAction,
			Iteration: iteration,
			Seq:       seq,
			Kind:      a.Kind,
			Cell:      a.Cell,
			Pos:       a.Pos,
			Path:      a.Path,
			Desc:      a.Desc,
		})
		seq++
	}

	res, err := runner.Run(ctx)
	if err != nil {
		send(protocol.ErrorMsg{Type: protocol.TypeError, Code: protocol.ErrInternal, Message: err.Error()})
	} else {
		send(protocol.RunResultMsg{
			Type:          protocol.TypeRunResult,
			ReachedGoal:   res.ReachedGoal,
			Iterations:    res.Iterations,
			Actions:       len(res.Actions),
			FinalAgentPos: res.FinalAgentPos,
			FailureCode:   protocol.FailureCode(res, sc.MaxIterations),
		})
	}
	close(out)
	<-done
	s.log.Printf("observer O%d: run finished (reached=%v, actions=%d)", sid, res.ReachedGoal, len(res.Actions))
}
