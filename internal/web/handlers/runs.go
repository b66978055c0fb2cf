package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mailtrace/internal/columns"
	"github.com/mailtrace/internal/engine"
	"github.com/mailtrace/internal/store"
	"github.com/mailtrace/internal/tabular"
)

// RunsHandler runs matches over uploaded CSV text and, when a store is
// configured, persists and serves past runs. Store may be nil; the run
// endpoint still works, only history is unavailable.
type RunsHandler struct {
	Store *store.Store
}

// RunRequest is the POST /api/runs body. Mapping is optional; when the
// automatic column resolution fails the response carries the headers and
// synonym tables the caller needs to build one.
type RunRequest struct {
	MailCSV string           `json:"mailCsv"`
	CRMCSV  string           `json:"crmCsv"`
	Mapping *columns.Mapping `json:"mapping,omitempty"`
	Fuzzy   *bool            `json:"fuzzy,omitempty"`
	Mode    string           `json:"mode,omitempty"`
	Workers int              `json:"workers,omitempty"`
	Save    bool             `json:"save,omitempty"`
}

// RunResponse wraps the engine result with the persisted id when saved.
type RunResponse struct {
	RunID   int64       `json:"runId,omitempty"`
	Matches interface{} `json:"matches"`
	Stats   interface{} `json:"stats"`
}

// CreateRun parses both CSVs, runs the match and returns the result.
func (h *RunsHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.MailCSV == "" || req.CRMCSV == "" {
		writeError(w, http.StatusBadRequest, "mailCsv and crmCsv are required")
		return
	}

	opts := engine.DefaultOptions()
	if req.Fuzzy != nil {
		opts.FuzzyEnabled = *req.Fuzzy
	}
	if req.Mode != "" {
		mode, err := engine.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Mode = mode
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}

	res, err := engine.Run(req.MailCSV, req.CRMCSV, req.Mapping, opts)
	if err != nil {
		var mre *columns.MappingRequiredError
		if errors.As(err, &mre) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":           "mapping_required",
				"mappingRequired": mre,
			})
			return
		}
		var pe *tabular.ParseError
		if errors.As(err, &pe) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := RunResponse{Matches: res.Matches, Stats: res.Stats}
	if req.Save {
		if h.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "run persistence is not configured")
			return
		}
		runID, err := h.Store.SaveRun(res, opts)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save run: %v", err))
			return
		}
		resp.RunID = runID
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListRuns returns persisted run summaries, newest first.
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := h.Store.ListRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// GetRun returns one persisted run with its match list and statistics.
func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence is not configured")
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	detail, err := h.Store.GetRun(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("run %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are out; nothing useful left to do.
		fmt.Printf("response encode error: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
