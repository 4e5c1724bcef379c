package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pagecraft/internal/pipeline"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsOutbound struct {
	Type     string                        `json:"type"`
	Progress *pipeline.ProgressEvent       `json:"progress,omitempty"`
	PageID   string                        `json:"pageId,omitempty"`
	Result   *pipeline.OrchestrationResult `json:"result,omitempty"`
	Message  string                        `json:"message,omitempty"`
}

// handleGenerateWS runs one generation per connection: the client sends
// a single generate request, receives progress events as they happen,
// then the final result, and the server closes.
func (a *App) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		log.Printf("generate ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(wsPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	var req generateRequest
	if err := conn.ReadJSON(&req); err != nil {
		cancel()
		<-writerDone
		return
	}

	// Keep reading so pongs are processed while the pipeline runs.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	orch := pipeline.NewOrchestrator(a.LLM)
	orch.OnProgress = func(ev pipeline.ProgressEvent) {
		pushWS(writeCh, wsOutbound{Type: "progress", Progress: &ev})
	}

	result, runErr := orch.Run(ctx, req.Input)
	pageID := ""
	if runErr == nil {
		pageID = a.persist(req.OwnerID, result)
	}

	out := wsOutbound{Type: "result", PageID: pageID, Result: &result}
	if runErr != nil {
		out.Type = "error"
		out.Message = runErr.Error()
	}
	pushWS(writeCh, out)

	// Let the writer drain before tearing the connection down.
	deadline := time.NewTimer(wsWriteWait)
	defer deadline.Stop()
	for {
		select {
		case <-deadline.C:
			return
		default:
			if len(writeCh) == 0 {
				time.Sleep(50 * time.Millisecond)
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func pushWS(ch chan<- wsOutbound, out wsOutbound) {
	select {
	case ch <- out:
	default:
		log.Printf("generate ws backpressure, dropping %s event", out.Type)
	}
}
