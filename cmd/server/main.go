package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"

	"github.com/ritamzico/pregex"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type matchResponse struct {
	Matched    bool    `json:"matched"`
	Likelihood float64 `json:"likelihood,omitempty"`
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	cacheDir := flag.String("cache-dir", "", "NFA disk-cache directory (disabled when empty)")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("/match", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Pattern string `json:"pattern"`
			Input   string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Pattern == "" {
			writeError(w, http.StatusBadRequest, "missing field: pattern")
			return
		}

		nfa, err := pregex.Compile(body.Pattern, *cacheDir)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid pattern: %v", err))
			return
		}

		p, _, err := pregex.MatchLikelihood(nfa, body.Input, false)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if p == nil {
			writeJSON(w, http.StatusOK, matchResponse{Matched: false})
			return
		}
		writeJSON(w, http.StatusOK, matchResponse{Matched: true, Likelihood: *p})
	})

	mux.HandleFunc("/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Pattern string   `json:"pattern"`
			Inputs  []string `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.Pattern == "" {
			writeError(w, http.StatusBadRequest, "missing field: pattern")
			return
		}

		nfa, err := pregex.Compile(body.Pattern, *cacheDir)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid pattern: %v", err))
			return
		}

		result, err := pregex.Batch(r.Context(), nfa, body.Inputs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, result.Results)
	})

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("pregex server listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}
