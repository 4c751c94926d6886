package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

const maxUploadBytes = 32 << 20

type addTextRequest struct {
	Texts     []string            `json:"texts"`
	Metadatas []map[string]string `json:"metadatas,omitempty"`
}

type loadDirectoryRequest struct {
	DirectoryPath string   `json:"directory_path"`
	Include       []string `json:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty"`
}

type addTextResponse struct {
	ChunksAdded int    `json:"chunks_added"`
	Message     string `json:"message"`
}

type statsResponse struct {
	TotalDocuments int    `json:"total_documents"`
	CollectionName string `json:"collection_name"`
}

// RegisterRoutes mounts the knowledge-base management endpoints.
func RegisterRoutes(r chi.Router, ingestor *Ingestor, store vectordb.Store) {
	r.Post("/api/documents/add-text", addTextHandler(ingestor))
	r.Post("/api/documents/upload", uploadHandler(ingestor))
	r.Post("/api/documents/load-directory", loadDirectoryHandler(ingestor))
	r.Get("/api/documents/stats", statsHandler(store))
	r.Delete("/api/documents/clear", clearHandler(store))
}

func addTextHandler(ingestor *Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if len(req.Texts) == 0 {
			http.Error(w, "texts is required", http.StatusBadRequest)
			return
		}
		added, err := ingestor.AddTexts(r.Context(), req.Texts, req.Metadatas)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, addTextResponse{
			ChunksAdded: added,
			Message:     fmt.Sprintf("Successfully added %d chunks to the knowledge base.", added),
		})
	}
}

func uploadHandler(ingestor *Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if !Supported(header.Filename) {
			http.Error(w, "file type not supported", http.StatusBadRequest)
			return
		}

		// The loaders work on paths, so spool the upload to disk first.
		tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tmp.Close()

		added, err := ingestor.AddFile(r.Context(), tmp.Name(), header.Filename)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrUnsupported) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, http.StatusOK, addTextResponse{
			ChunksAdded: added,
			Message:     fmt.Sprintf("Successfully processed %q and added %d chunks.", header.Filename, added),
		})
	}
}

func loadDirectoryHandler(ingestor *Ingestor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loadDirectoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.DirectoryPath == "" {
			http.Error(w, "directory_path is required", http.StatusBadRequest)
			return
		}
		if info, err := os.Stat(req.DirectoryPath); err != nil || !info.IsDir() {
			http.Error(w, "directory not found: "+req.DirectoryPath, http.StatusBadRequest)
			return
		}
		added, err := ingestor.LoadDirectory(r.Context(), req.DirectoryPath, req.Include, req.Exclude, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, addTextResponse{
			ChunksAdded: added,
			Message:     fmt.Sprintf("Successfully loaded directory and added %d chunks.", added),
		})
	}
}

func statsHandler(store vectordb.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := store.Stats()
		writeJSON(w, http.StatusOK, statsResponse{
			TotalDocuments: stats.Count,
			CollectionName: stats.Collection,
		})
	}
}

func clearHandler(store vectordb.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Clear(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Knowledge base cleared successfully.",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
