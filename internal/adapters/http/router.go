package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Navya123445/RAG-project/internal/config"
	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/core/ports"
)

type Router struct {
	cfg      config.Config
	ingestUC ports.DocumentIngestor
	queryUC  ports.DocumentQueryService
	docs     ports.DocumentReader
}

func NewRouter(
	cfg config.Config,
	ingestUC ports.DocumentIngestor,
	queryUC ports.DocumentQueryService,
	docs ports.DocumentReader,
) *Router {
	return &Router{
		cfg:      cfg,
		ingestUC: ingestUC,
		queryUC:  queryUC,
		docs:     docs,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocument)
	mux.HandleFunc("/v1/rag/query", rt.queryRAG)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	return requestIDMiddleware(accessLogMiddleware(handler))
}

const backpressureWait = 100 * time.Millisecond

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// uploadDocument accepts a multipart form with a required "file" part and
// an optional "marks" part carrying the color-markup sidecar JSON.
func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	var marks io.Reader
	if marksFile, _, err := r.FormFile("marks"); err == nil {
		defer marksFile.Close()
		marks = marksFile
	}

	doc, err := rt.ingestUC.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		marks,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

// getDocument serves /v1/documents/{id} and /v1/documents/{id}/annotations.
func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch sub {
	case "":
		doc, err := rt.docs.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	case "annotations":
		records, err := rt.docs.GetAnnotations(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"document_id": id,
			"pages":       records,
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

type queryRequest struct {
	Question string `json:"question"`
	Limit    int    `json:"limit"`

	Filename            string  `json:"filename"`
	RequireColorAmounts bool    `json:"require_color_amounts"`
	RequireColorParties bool    `json:"require_color_parties"`
	RequireColorDates   bool    `json:"require_color_dates"`
	RequireColorPercent bool    `json:"require_color_percent"`
	RequireHighQuality  bool    `json:"require_high_quality"`
	MinRelevance        float64 `json:"min_relevance"`
}

func (rt *Router) queryRAG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = rt.cfg.RAGTopK
	}

	answer, err := rt.queryUC.Answer(r.Context(), req.Question, limit, domain.SearchFilter{
		Filename:            req.Filename,
		RequireColorAmounts: req.RequireColorAmounts,
		RequireColorParties: req.RequireColorParties,
		RequireColorDates:   req.RequireColorDates,
		RequireColorPercent: req.RequireColorPercent,
		RequireHighQuality:  req.RequireHighQuality,
		MinRelevance:        req.MinRelevance,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
