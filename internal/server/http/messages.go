package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mrsanskar19/self-transfer/internal/store"
	logpkg "github.com/mrsanskar19/self-transfer/pkg/log"
)

type createMessageReq struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	UserID  string `json:"userId,omitempty"`
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req createMessageReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed JSON body")
			return
		}
		m := store.Message{
			Type:    req.Type,
			Content: req.Content,
			UserID:  req.UserID,
			Name:    req.Name,
			URL:     req.URL,
			DeviceInfo: &store.DeviceInfo{
				UserAgent: r.UserAgent(),
				IP:        clientIP(r),
			},
		}
		stored, err := s.svc.Create(r.Context(), m)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(stored)
	case http.MethodGet:
		list, err := s.svc.List(r.Context(), store.ListFilter{UserID: r.URL.Query().Get("userId")})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, list)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMessageByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/messages/")
	if path == "" {
		writeError(w, http.StatusNotFound, "message id required")
		return
	}

	if id, ok := strings.CutSuffix(path, "/seen"); ok {
		s.handleMarkSeen(w, r, id)
		return
	}
	if strings.ContainsRune(path, '/') {
		writeError(w, http.StatusNotFound, "unknown route")
		return
	}

	switch r.Method {
	case http.MethodGet:
		m, err := s.svc.Get(r.Context(), path)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, m)
	case http.MethodDelete:
		if err := s.svc.Delete(r.Context(), path); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleMarkSeen(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	m, err := s.svc.MarkSeen(r.Context(), id, clientIP(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, m)
}

// handleSharedDownload serves a one-time file download. The message is
// deleted as part of the request, so the link works exactly once.
func (s *Server) handleSharedDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/shared/")
	if id == "" || strings.ContainsRune(id, '/') {
		writeError(w, http.StatusNotFound, "unknown route")
		return
	}
	m, err := s.svc.Consume(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if m.Type != store.TypeFile {
		writeJSON(w, m)
		return
	}
	mediaType, data, ok := decodeDataURL(m.URL)
	if !ok {
		// Externally hosted payload.
		http.Redirect(w, r, m.URL, http.StatusFound)
		return
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(m.Name, `"`, "")+`"`)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("shared download write failed", logpkg.Str("id", id), logpkg.Err(err))
	}
}

// decodeDataURL splits a base64 data URL into media type and bytes.
func decodeDataURL(u string) (string, []byte, bool) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, false
	}
	mediaType, b64 := strings.CutSuffix(meta, ";base64")
	if !b64 {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return mediaType, data, true
}
