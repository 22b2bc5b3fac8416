package http

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/game"
)

type WSHandler struct {
	service  *app.GameService
	defaults domain.GameConfig
	upgrader websocket.Upgrader
}

// NewWSHandler serves games over websockets. defaults fill a start request's
// zero question count and time limit.
func NewWSHandler(service *app.GameService, defaults domain.GameConfig) *WSHandler {
	return &WSHandler{
		service:  service,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Mode            string   `json:"mode"`
	Categories      []string `json:"categories"`
	QuestionCount   int      `json:"questionCount"`
	TimePerQuestion int      `json:"timePerQuestion"`
}

type answerPayload struct {
	Choice string `json:"choice"`
}

type selectPayload struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type readyPayload struct {
	PlayerID string `json:"playerId"`
}

type tickPayload struct {
	Remaining int `json:"remaining"`
}

type resultsPayload struct {
	domain.Results
	Accuracy int `json:"accuracy"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// wsPresenter queues session events for the connection writer. Sends give up
// once the connection is gone so a session lock is never held on a dead socket.
type wsPresenter struct {
	send chan outboundMessage
	done chan struct{}
	once sync.Once
}

func newWSPresenter() *wsPresenter {
	return &wsPresenter{
		send: make(chan outboundMessage, 32),
		done: make(chan struct{}),
	}
}

func (p *wsPresenter) emit(typ string, payload any) {
	select {
	case p.send <- outboundMessage{Type: typ, Payload: payload}:
	case <-p.done:
	}
}

func (p *wsPresenter) stop() {
	p.once.Do(func() { close(p.done) })
}

func (p *wsPresenter) PresentQuestion(q game.QuestionView) { p.emit("question", q) }
func (p *wsPresenter) PresentBoard(b game.BoardView) { p.emit("board", b) }
func (p *wsPresenter) ShowAnswerOutcome(o domain.Outcome) { p.emit("outcome", o) }
func (p *wsPresenter) UpdateTimer(remaining int) { p.emit("tick", tickPayload{Remaining: remaining}) }

func (p *wsPresenter) ReportResults(r domain.Results) {
	p.emit("results", resultsPayload{Results: r, Accuracy: r.Accuracy()})
}

// ServeWS upgrades HTTP requests to websockets and plays one game at a time
// for the connecting player.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	presenter := newWSPresenter()
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-presenter.send:
				if err := conn.WriteJSON(msg); err != nil {
					log.Printf("ws write error: %v", err)
					presenter.stop()
					return
				}
			case <-presenter.done:
				return
			}
		}
	}()

	presenter.emit("ready", readyPayload{PlayerID: playerID})

	// the game this connection started; a newer connection may have replaced it
	var current game.Session
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(r, playerID, inbound, presenter, &current); err != nil {
			if !app.UserFacing(err) && !protocolError(err) {
				log.Printf("player %s %s failed: %v", playerID, inbound.Type, err)
			}
			presenter.emit("error", errorPayload{Message: err.Error()})
		}
	}

	h.service.QuitSession(ctx, playerID, current)
	presenter.stop()
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, playerID string, inbound inboundMessage, presenter *wsPresenter, current *game.Session) error {
	ctx := r.Context()
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		mode, err := domain.ParseMode(payload.Mode)
		if err != nil {
			return err
		}
		cfg := domain.GameConfig{
			Categories:      payload.Categories,
			QuestionCount:   payload.QuestionCount,
			TimePerQuestion: payload.TimePerQuestion,
		}
		if cfg.QuestionCount == 0 {
			cfg.QuestionCount = h.defaults.QuestionCount
		}
		if cfg.TimePerQuestion == 0 {
			cfg.TimePerQuestion = h.defaults.TimePerQuestion
		}
		session, err := h.service.Start(ctx, playerID, mode, cfg, presenter)
		if err != nil {
			return err
		}
		*current = session
		return nil
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		// late and repeated answers are dropped silently
		_, _, err := h.service.Answer(ctx, playerID, payload.Choice)
		return err
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		return h.service.SelectCell(ctx, playerID, payload.Col, payload.Row)
	case "next":
		return h.service.Next(ctx, playerID)
	case "timeout":
		_, _, err := h.service.Timeout(ctx, playerID)
		return err
	case "quit":
		h.service.QuitSession(ctx, playerID, *current)
		*current = nil
		return nil
	default:
		return errUnsupported
	}
}

// ServeCategories lists the categories that currently have questions.
func (h *WSHandler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		log.Printf("list categories: %v", err)
		http.Error(w, "questions unavailable", http.StatusServiceUnavailable)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(categories)
}
