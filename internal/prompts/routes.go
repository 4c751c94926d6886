package prompts

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the prompt catalog endpoints on the given router.
func RegisterRoutes(r chi.Router) {
	r.Get("/api/prompts", listPromptsHandler())
	r.Get("/api/prompts/{key}", getPromptHandler())
}

func listPromptsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, All())
	}
}

func getPromptHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		p, ok := Lookup(key)
		if !ok {
			http.Error(w, "prompt not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Key string `json:"key"`
			Prompt
		}{Key: key, Prompt: p})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
