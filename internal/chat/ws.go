package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/smartsupport/internal/agent"
	"github.com/ziadkadry99/smartsupport/internal/llm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format. The server keeps
// the conversation history for the lifetime of the connection, so each
// message carries only the new user turn.
type wsRequest struct {
	Type      string `json:"type"` // "message" or "reset"
	Content   string `json:"content"`
	UseRAG    *bool  `json:"use_rag,omitempty"`
	UseTools  bool   `json:"use_tools,omitempty"`
	PromptKey string `json:"prompt_key,omitempty"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string                 `json:"type"` // "response" or "error"
	Message   string                 `json:"message,omitempty"`
	Sources   []string               `json:"sources,omitempty"`
	ToolCalls []agent.ToolCallRecord `json:"tool_calls,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func wsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chat: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		var history []llm.Message

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chat: websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWS(conn, wsResponse{Type: "error", Error: "invalid message format"})
				continue
			}

			switch req.Type {
			case "reset":
				history = nil
				sendWS(conn, wsResponse{Type: "response"})
			case "message":
				if req.Content == "" {
					sendWS(conn, wsResponse{Type: "error", Error: "content is required"})
					continue
				}
				history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Content})

				resp, err := svc.Respond(r.Context(), &Request{
					Messages:  history,
					UseRAG:    req.UseRAG,
					UseTools:  req.UseTools,
					PromptKey: req.PromptKey,
				})
				if err != nil {
					sendWS(conn, wsResponse{Type: "error", Error: err.Error()})
					continue
				}
				history = append(history, llm.Message{Role: llm.RoleAssistant, Content: resp.Message})

				sendWS(conn, wsResponse{
					Type:      "response",
					Message:   resp.Message,
					Sources:   resp.Sources,
					ToolCalls: resp.ToolCalls,
				})
			default:
				sendWS(conn, wsResponse{Type: "error", Error: "unknown message type: " + req.Type})
			}
		}
	}
}

func sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write: %v", err)
	}
}
