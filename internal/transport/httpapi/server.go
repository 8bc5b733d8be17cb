// Package httpapi exposes chat turns over JSON and websocket endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/sandevgo/motivate/internal/config"
	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/pkg/conv"
	"github.com/sandevgo/motivate/pkg/log"
)

// Metrics is the subset of observability.Metrics the server reports to.
type Metrics interface {
	ObserveHTTP(route string, code int)
	Handler() http.Handler
}

type Server struct {
	cfg      *config.HTTPConfig
	chat     core.ChatService
	metrics  Metrics
	upgrader websocket.Upgrader
	http     *http.Server
}

func New(cfg *config.HTTPConfig, chat core.ChatService, metrics Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		chat:    chat,
		metrics: metrics,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.cors)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Get("/metrics", s.metrics.Handler().ServeHTTP)
	}

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/chat/ws", s.handleChatWS)
	r.Get("/api/sessions/{key}/history", s.handleHistory)

	return r
}

// Start listens on the configured address and blocks until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("http api listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

type chatRequest struct {
	SessionKey string `json:"sessionKey"`
	Message    string `json:"message"`
}

type chatResponse struct {
	Reply     string `json:"reply"`
	ReplyHTML string `json:"replyHtml"`
}

type historyResponse struct {
	SessionKey string          `json:"sessionKey"`
	Turns      core.Transcript `json:"turns"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, errEmptyBody):
			respondError(w, http.StatusBadRequest, "invalid_request", core.ErrEmptyMessage.Error())
		case errors.As(err, &tooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "request_too_large", err.Error())
		default:
			respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		}
		return
	}
	if err := core.ValidateMessage(req.Message); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	reply, err := s.chat.HandleTurn(r.Context(), core.KeyOrDefault(req.SessionKey), req.Message)
	if err != nil {
		s.respondTurnError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, chatResponse{Reply: reply, ReplyHTML: conv.MarkdownToHTML(reply)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	key, err := core.ValidateKey(chi.URLParam(r, "key"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	turns, err := s.chat.History(r.Context(), key)
	if err != nil {
		s.respondTurnError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, historyResponse{SessionKey: key, Turns: turns})
}

type wsInbound struct {
	Message string `json:"message"`
}

type wsError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleChatWS runs turns for one session key over a websocket. Inbound frames are
// processed strictly in order; each gets exactly one outbound frame.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	key := core.KeyOrDefault(r.URL.Query().Get("sessionKey"))
	logger := log.FromCtx(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(maxRequestBytes)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var out any
		var in wsInbound
		switch {
		case json.Unmarshal(data, &in) != nil:
			out = wsError{Error: "invalid json", Code: "invalid_request"}
		case core.ValidateMessage(in.Message) != nil:
			out = wsError{Error: core.ErrEmptyMessage.Error(), Code: "invalid_request"}
		default:
			reply, err := s.chat.HandleTurn(ctx, key, in.Message)
			if err != nil {
				_, code := classify(err)
				out = wsError{Error: err.Error(), Code: code}
			} else {
				out = chatResponse{Reply: reply, ReplyHTML: conv.MarkdownToHTML(reply)}
			}
		}

		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(out); err != nil {
			return
		}
	}
}

func (s *Server) respondTurnError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	log.FromCtx(r.Context()).Error().Err(err).Str("code", code).Msg("chat request failed")
	respondError(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrEmptySessionKey), errors.Is(err, core.ErrEmptyMessage):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, core.ErrInferenceFailed):
		return http.StatusBadGateway, "inference_failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	allow := strings.TrimSpace(s.cfg.AllowOrigin)
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if allow == "*" || origin == "" {
		return true
	}
	if strings.EqualFold(origin, allow) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// maxRequestBytes caps a chat request body and a websocket frame.
const maxRequestBytes = 1 << 20

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		// io.EOF only for a body with no JSON value; a truncated one is io.ErrUnexpectedEOF.
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
