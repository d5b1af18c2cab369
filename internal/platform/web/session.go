package web

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/dino-runner/internal/runner"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// playSession couples one websocket to one simulation. The loop goroutine
// owns the simulation and is the only writer on the connection; the read
// pump only forwards decoded commands.
type playSession struct {
	conn     *websocket.Conn
	sim      *runner.Simulation
	variant  string
	tickRate int
	store    *storage.Store
	logger   *log.Logger
	commands chan command
}

// readPump decodes client messages until the connection fails, then cancels
// the session.
func (s *playSession) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(512)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}

		cmd, ok := msg.decode()
		if !ok {
			s.logger.Debug("ignoring message", "type", msg.Type)
			continue
		}
		select {
		case s.commands <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

// loop ticks the simulation at the session's rate and streams snapshots.
// Idle snapshots are only sent when something changed; the game-over frame
// always precedes its "ended" message.
func (s *playSession) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := s.write(ServerMessage{Type: msgConfig, Data: newFieldInfo(s.variant, s.sim.Config())}); err != nil {
		return
	}
	dirty := true

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-s.commands:
			switch {
			case cmd.start:
				dirty = s.sim.Start() || dirty
			case cmd.reset:
				s.sim.Reset()
				dirty = true
			default:
				s.sim.ApplyInput(cmd.event)
			}

		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}

		case <-ticker.C:
			res := s.sim.Tick()
			ended, over := res.Ended()
			if res.Snapshot.Running() || dirty || over {
				if err := s.write(ServerMessage{Type: msgSnapshot, Data: res.Snapshot}); err != nil {
					return
				}
				dirty = false
			}

			if over {
				s.record(ended)
				if err := s.write(ServerMessage{Type: msgEnded, Data: ended}); err != nil {
					return
				}
			}
		}
	}
}

func (s *playSession) write(msg ServerMessage) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *playSession) record(ended runner.SessionEnded) {
	s.logger.Info("session ended",
		"variant", s.variant,
		"score", ended.FinalScore,
		"record", ended.NewRecord,
	)
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveScore(s.variant, ended.FinalScore, ended.Ticks); err != nil {
		s.logger.Error("save score", "variant", s.variant, "err", err)
	}
}
