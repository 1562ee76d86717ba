// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/yakirbe/lyricdeck/internal/deck"
	"github.com/yakirbe/lyricdeck/internal/images"
	"github.com/yakirbe/lyricdeck/internal/scrape"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []types.SearchResult `json:"results"`
}

type generateRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "lyricdeck",
		"version": s.version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	results, err := s.source.Search(r.Context(), req.Query)
	if err != nil {
		s.logger.Warn("search failed", "query", req.Query, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "search failed"})
		return
	}
	if results == nil {
		results = []types.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	song, err := s.source.Lyrics(r.Context(), req.URL)
	if err != nil {
		s.logger.Warn("lyric extraction failed", "url", req.URL, "error", err)
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "could not extract lyrics"})
		return
	}

	// The scraped title wins; the request title is the fallback.
	if song.Title == "" {
		song.Title = req.Title
	}
	song.ID = scrape.Slug(song.Title)

	backgrounds := map[string]string{}
	if s.imgs != nil {
		seed := images.SeedForTitle(song.Title)
		if path, imgErr := s.imgs.Background(r.Context(), seed); imgErr == nil {
			backgrounds[song.ID] = path
		} else {
			s.logger.Warn("background image unavailable", "seed", seed, "error", imgErr)
		}
	}

	html, err := deck.Build([]*types.Song{song}, backgrounds, s.deckCfg)
	if err != nil {
		s.logger.Error("deck build failed", "title", song.Title, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "deck generation failed"})
		return
	}

	filename := strings.ReplaceAll(song.Title, " ", "_") + ".html"
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", urlEncode(filename)))
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// urlEncode percent-encodes a filename for the Content-Disposition
// extended syntax, which is what keeps Hebrew titles intact.
func urlEncode(s string) string {
	var sb strings.Builder
	for _, b := range []byte(s) {
		if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' ||
			b == '.' || b == '_' || b == '-' {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", b)
	}
	return sb.String()
}
