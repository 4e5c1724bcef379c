package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"pagecraft/internal/llm"
	"pagecraft/internal/pagestore"
	"pagecraft/internal/pipeline"
)

// App holds the wired dependencies behind the HTTP surface.
type App struct {
	Store  *pagestore.Store
	Export *pagestore.ExportStore
	LLM    llm.Client
}

func (a *App) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /v1/pages/generate", a.handleGenerate)
	mux.HandleFunc("GET /v1/pages/generate/ws", a.handleGenerateWS)
	mux.HandleFunc("GET /v1/pages", a.handleList)
	mux.HandleFunc("GET /v1/pages/{id}", a.handleGet)
	mux.HandleFunc("DELETE /v1/pages/{id}", a.handleDelete)
	mux.HandleFunc("POST /v1/pages/{id}/publish", a.handlePublish)
	return withCORS(mux)
}

type generateRequest struct {
	OwnerID string                      `json:"owner_id,omitempty"`
	Input   pipeline.OrchestrationInput `json:"input"`
}

type generateResponse struct {
	PageID string                       `json:"page_id,omitempty"`
	Result pipeline.OrchestrationResult `json:"result"`
}

func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orch := pipeline.NewOrchestrator(a.LLM)
	result, err := orch.Run(r.Context(), req.Input)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, generateResponse{Result: result})
		return
	}

	pageID := a.persist(req.OwnerID, result)
	writeJSON(w, http.StatusOK, generateResponse{PageID: pageID, Result: result})
}

// persist stores a successful result and returns the new page id. A
// store failure is logged, not surfaced: the caller still has the page.
func (a *App) persist(ownerID string, result pipeline.OrchestrationResult) string {
	if !result.Success || result.Page == nil {
		return ""
	}
	now := time.Now().UTC()
	rec := pagestore.Record{
		PageID:       pagestore.NewPageID(result.Page.Title),
		OwnerID:      strings.TrimSpace(ownerID),
		Title:        result.Page.Title,
		Description:  result.Page.Description,
		QualityScore: result.Metadata.QualityScore,
		TokensUsed:   result.Metadata.TokensUsed,
		Page:         *result.Page,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.Store.Put(rec); err != nil {
		log.Printf("persist page %s: %v", rec.PageID, err)
		return ""
	}
	return rec.PageID
}

func (a *App) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.Store.List(strings.TrimSpace(r.URL.Query().Get("owner_id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": summaries})
}

func (a *App) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Store.Get(r.PathValue("id"))
	if errors.Is(err, pagestore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *App) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handlePublish(w http.ResponseWriter, r *http.Request) {
	if a.Export == nil {
		writeError(w, http.StatusNotImplemented, "publishing is not configured")
		return
	}
	rec, err := a.Store.Get(r.PathValue("id"))
	if errors.Is(err, pagestore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "page not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}
	if err := a.Export.Publish(r.Context(), rec); err != nil {
		log.Printf("publish %s: %v", rec.PageID, err)
		writeError(w, http.StatusBadGateway, "publish failed")
		return
	}
	url, err := a.Export.PublishURL(r.Context(), rec.PageID)
	if err != nil {
		writeError(w, http.StatusBadGateway, "publish url failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"page_id": rec.PageID, "url": url})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
