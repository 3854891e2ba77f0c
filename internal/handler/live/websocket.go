package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	analysismodel "github.com/zhouzirui/moodlens/backend/internal/model/analysis"
	emotionservice "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	maxDebounce  = 5 * time.Second
)

// Analyzer 抽象情绪分析服务。
type Analyzer interface {
	Analyze(ctx context.Context, text string) emotionservice.Outcome
}

// Handler 实时情绪分析的 WebSocket 处理器。
// 客户端每次输入都发送完整文本，停顿 debounce 之后才做一次分析。
type Handler struct {
	analyzer  Analyzer
	debounce  time.Duration
	maxLength int
	upgrader  websocket.Upgrader
}

// New 创建 WebSocket 处理器
func New(analyzer Analyzer, debounce time.Duration, maxLength int) *Handler {
	return &Handler{
		analyzer:  analyzer,
		debounce:  debounce,
		maxLength: maxLength,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册 WebSocket 路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// TextMessage 文本消息，携带输入框中的完整文本
type TextMessage struct {
	Text string `json:"text"`
}

// ConfigMessage 配置消息
type ConfigMessage struct {
	DebounceMs *int `json:"debounceMs,omitempty"`
}

type outgoingMessage struct {
	Type         string      `json:"type"`
	ConnectionID string      `json:"connectionId,omitempty"`
	Data         interface{} `json:"data,omitempty"`
	Timestamp    int64       `json:"timestamp"`
}

type connectionState struct {
	id       string
	conn     *websocket.Conn
	writeMu  sync.Mutex
	mu       sync.Mutex
	debounce time.Duration
	pending  string
	seq      uint64
	timer    *time.Timer
}

func newConnectionState(conn *websocket.Conn, debounce time.Duration) *connectionState {
	return &connectionState{
		id:       uuid.NewString(),
		conn:     conn,
		debounce: debounce,
	}
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.analyzer == nil {
		http.Error(w, "analyzer unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	state := newConnectionState(conn, h.debounce)
	log.Printf("[live] new connection: %s", state.id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	defer state.stopTimer()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, state)

	h.send(state, "connected", map[string]any{
		"debounceMs": state.debounce.Milliseconds(),
		"maxLength":  h.maxLength,
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[live] read error: %v", err)
				}
				return
			}

			conn.SetReadDeadline(time.Now().Add(readTimeout))
			h.handleMessage(ctx, state, &msg)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, state *connectionState, msg *inboundMessage) {
	switch msg.Type {
	case "text":
		h.handleTextMessage(ctx, state, msg.Data)
	case "config":
		h.handleConfigMessage(state, msg.Data)
	default:
		h.sendError(state, "unsupported message type: "+msg.Type)
	}
}

func (h *Handler) handleTextMessage(ctx context.Context, state *connectionState, raw json.RawMessage) {
	var text TextMessage
	if err := json.Unmarshal(raw, &text); err != nil {
		h.sendError(state, "invalid text payload")
		return
	}

	if h.maxLength > 0 && utf8.RuneCountInString(text.Text) > h.maxLength {
		h.sendError(state, fmt.Sprintf("text exceeds %d characters", h.maxLength))
		return
	}

	if strings.TrimSpace(text.Text) == "" {
		state.stopTimer()
		h.send(state, "cleared", nil)
		return
	}

	state.schedule(text.Text, func(seq uint64) {
		h.flush(ctx, state, seq)
	})
}

// flush 在防抖结束后分析最新文本，过期的定时器直接丢弃。
func (h *Handler) flush(ctx context.Context, state *connectionState, seq uint64) {
	text, ok := state.take(seq)
	if !ok || ctx.Err() != nil {
		return
	}

	outcome := h.analyzer.Analyze(ctx, text)
	if ctx.Err() != nil {
		return
	}
	h.send(state, "result", analysismodel.NewAnalyzeResponse(text, outcome))
}

func (h *Handler) handleConfigMessage(state *connectionState, raw json.RawMessage) {
	var cfg ConfigMessage
	if err := json.Unmarshal(raw, &cfg); err != nil {
		h.sendError(state, "invalid config payload")
		return
	}

	h.applyConfig(state, cfg)
	log.Printf("[live] config applied connection=%s debounce=%s", state.id, state.currentDebounce())

	h.send(state, "config", map[string]any{
		"debounceMs": state.currentDebounce().Milliseconds(),
	})
}

func (h *Handler) applyConfig(state *connectionState, cfg ConfigMessage) {
	if cfg.DebounceMs == nil {
		return
	}
	debounce := time.Duration(*cfg.DebounceMs) * time.Millisecond
	if debounce < 0 {
		debounce = 0
	}
	if debounce > maxDebounce {
		debounce = maxDebounce
	}

	state.mu.Lock()
	state.debounce = debounce
	state.mu.Unlock()
}

func (h *Handler) send(state *connectionState, msgType string, data interface{}) {
	msg := outgoingMessage{
		Type:         msgType,
		ConnectionID: state.id,
		Data:         data,
		Timestamp:    time.Now().Unix(),
	}

	state.writeMu.Lock()
	defer state.writeMu.Unlock()
	if err := state.conn.WriteJSON(msg); err != nil {
		log.Printf("[live] write %s failed: %v", msgType, err)
	}
}

func (h *Handler) sendError(state *connectionState, message string) {
	h.send(state, "error", map[string]string{"message": message})
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, state *connectionState) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state.writeMu.Lock()
			err := state.conn.WriteMessage(websocket.PingMessage, nil)
			state.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (s *connectionState) schedule(text string, fire func(seq uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = text
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { fire(seq) })
}

func (s *connectionState) take(seq uint64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return "", false
	}
	return s.pending, true
}

func (s *connectionState) stopTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *connectionState) currentDebounce() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounce
}
