package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/strategickhaos/pipetrades/internal/adapters/nats"
	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/pkg/metrics"
)

// wsMessage is sent from client to subscribe to crew feeds or run a calc.
type wsMessage struct {
	Action  string          `json:"action"`  // "subscribe" | "unsubscribe" | "calc"
	Channel string          `json:"channel"` // "crew" | "presence" | "broadcast" (default: crew)
	Kind    string          `json:"kind"`    // crew: kind filter; calc: which calculator
	Params  json.RawMessage `json:"params"`  // calc inputs
}

// WebSocketHandler upgrades to WebSocket and bridges two directions: crew
// events relayed off NATS toward the browser, and calc requests answered
// synchronously from the pure core.
// Clients send JSON like {"action":"subscribe","channel":"crew"} or
// {"action":"calc","kind":"offset","params":{"angle":45,"offset":5}}.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		// Helper: thread-safe write
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		natsSubscribe := func(subject string) error {
			if deps.NATS == nil {
				return nats.ErrConnectionClosed
			}
			if _, exists := subs[subject]; exists {
				return nil
			}
			s, err := deps.NATS.Subscribe(subject, func(msg *nats.Msg) {
				_ = writeJSON(json.RawMessage(msg.Data))
			})
			if err != nil {
				return err
			}
			subs[subject] = s
			return nil
		}

		// Auto-subscribe to the broadcast relay so every client sees shared
		// calculations without asking.
		if deps.NATS != nil {
			if err := natsSubscribe(natsadapter.SubjectBroadcast); err != nil {
				slog.Warn("ws default subscribe failed", "error", err)
			}
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			switch m.Action {
			case "calc":
				_ = writeJSON(handleCalc(deps, m.Kind, m.Params))

			case "subscribe", "unsubscribe":
				channel := m.Channel
				if channel == "" {
					channel = "crew"
				}

				var subject string
				switch channel {
				case "crew":
					if m.Kind != "" {
						subject = natsadapter.SubjectCrewPrefix + m.Kind
					} else {
						subject = natsadapter.SubjectCrewPrefix + ">"
					}
				case "presence":
					subject = natsadapter.SubjectPresence
				case "broadcast":
					subject = natsadapter.SubjectBroadcast
				default:
					_ = writeJSON(map[string]string{"error": "unknown channel: " + channel})
					continue
				}

				if m.Action == "subscribe" {
					if _, exists := subs[subject]; exists {
						_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
						continue
					}
					if err := natsSubscribe(subject); err != nil {
						_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
						continue
					}
					_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})
				} else {
					if s, exists := subs[subject]; exists {
						_ = s.Unsubscribe()
						delete(subs, subject)
						_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
					} else {
						_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
					}
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		// Cleanup
		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}

// handleCalc runs one calculator against the params blob and shapes the
// response envelope sent back over the socket.
func handleCalc(deps *Dependencies, kind string, params json.RawMessage) map[string]interface{} {
	fail := func(msg string) map[string]interface{} {
		return map[string]interface{}{"action": "calc", "kind": kind, "error": msg}
	}
	ok := func(result interface{}) map[string]interface{} {
		metrics.CalculationsTotal.WithLabelValues(kind).Inc()
		return map[string]interface{}{"action": "calc", "kind": kind, "result": result}
	}

	switch kind {
	case domain.JobKindOffset:
		var p struct {
			Angle  float64 `json:"angle"`
			Offset float64 `json:"offset"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			return fail("invalid params: " + err.Error())
		}
		return ok(deps.Fitting.RollingOffset(p.Angle, p.Offset))

	case domain.JobKindCutback:
		var p struct {
			Angle  float64 `json:"angle"`
			Offset float64 `json:"offset"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			return fail("invalid params: " + err.Error())
		}
		return ok(deps.Fitting.Cutback(p.Angle, p.Offset))

	case domain.JobKindBeam:
		var p struct {
			Circ  float64 `json:"circ"`
			Shoes int     `json:"shoes"`
			Boot  float64 `json:"boot"`
			Rise  float64 `json:"rise"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			return fail("invalid params: " + err.Error())
		}
		return ok(deps.Beam.Estimate(domain.NewBeamJob(p.Circ, p.Shoes, p.Boot, p.Rise)))

	case domain.JobKindCalibration:
		var p struct {
			Satellite float64 `json:"satellite"`
			Field     float64 `json:"field"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			return fail("invalid params: " + err.Error())
		}
		return ok(deps.Calibration.Check(p.Satellite, p.Field))

	case "hypotenuse":
		var p struct {
			Run  float64 `json:"run"`
			Rise float64 `json:"rise"`
		}
		if err := json.Unmarshal(params, &p); err != nil {
			return fail("invalid params: " + err.Error())
		}
		return ok(map[string]float64{"run": p.Run, "rise": p.Rise, "hypotenuse": deps.Geo.Hypotenuse(p.Run, p.Rise)})

	default:
		return fail("unknown calc kind: " + kind)
	}
}
