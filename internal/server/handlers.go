package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"contentfilter/internal/codec"
	"contentfilter/internal/filter"
	"contentfilter/internal/validation"
)

type modeSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Whitelist   int    `json:"whitelist"`
	Blacklist   int    `json:"blacklist"`
}

type modeResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Whitelist   []string `json:"whitelist"`
	Blacklist   []string `json:"blacklist"`
}

// AddRequest carries one item or several.
type AddRequest struct {
	Item  string   `json:"item"`
	Items []string `json:"items"`
}

type CheckRequest struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListModes(w http.ResponseWriter, r *http.Request) {
	modes := s.store.Modes()
	out := make([]modeSummary, 0, len(modes))
	for _, mode := range modes {
		lists, err := s.store.Lists(mode)
		if err != nil {
			continue
		}
		out = append(out, modeSummary{
			Name:        mode,
			Description: filter.Describe(mode),
			Whitelist:   len(lists.Whitelist),
			Blacklist:   len(lists.Blacklist),
		})
	}
	JSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMode(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	lists, err := s.store.Lists(mode)
	if err != nil {
		Fail(w, err)
		return
	}
	q := r.URL.Query().Get("q")
	JSON(w, http.StatusOK, modeResponse{
		Name:        mode,
		Description: filter.Describe(mode),
		Whitelist:   filter.MatchItems(lists.Whitelist, q),
		Blacklist:   filter.MatchItems(lists.Blacklist, q),
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	kind, err := filter.ParseListKind(r.PathValue("kind"))
	if err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}

	var req AddRequest
	if err := ParseJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	items := make([]string, 0, len(req.Items)+1)
	if strings.TrimSpace(req.Item) != "" {
		items = append(items, req.Item)
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item) != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		Fail(w, filter.ErrEmptyItem)
		return
	}
	for _, item := range items {
		if err := validation.ValidateItem(item); err != nil {
			Error(w, http.StatusBadRequest, fmt.Sprintf("%q: %v", item, err))
			return
		}
	}

	added, err := s.store.AddMany(mode, kind, items)
	if err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]int{"added": added})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	kind, err := filter.ParseListKind(r.PathValue("kind"))
	if err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}
	item := r.PathValue("item")
	if err := s.store.Remove(mode, kind, item); err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"removed": item})
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	dir, err := filter.ParseDirection(r.URL.Query().Get("dir"))
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Sort(mode, dir); err != nil {
		Fail(w, err)
		return
	}
	lists, err := s.store.Lists(mode)
	if err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, lists)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	if err := s.store.Clear(mode); err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"cleared": mode})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.PathValue("mode"))
	if err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, stats)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	format, err := formatParam(r)
	if err != nil {
		Fail(w, err)
		return
	}
	lists, err := s.store.Lists(mode)
	if err != nil {
		Fail(w, err)
		return
	}
	raw, err := codec.Encode(format, mode, lists)
	if err != nil {
		Fail(w, err)
		return
	}
	name := codec.ExportFileName(mode, s.now(), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	if !s.store.HasMode(mode) {
		Fail(w, fmt.Errorf("%w: %q", filter.ErrUnknownMode, mode))
		return
	}
	format, err := formatParam(r)
	if err != nil {
		Fail(w, err)
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read body")
		return
	}
	lists, err := codec.Decode(format, bytes.NewReader(body))
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}
	added, err := codec.Merge(s.store, mode, lists)
	if err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]int{"added": added})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := ParseJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode == "" {
		req.Mode = filter.DefaultMode()
	}
	verdict, err := s.store.Check(req.Mode, req.Text)
	if err != nil {
		Fail(w, err)
		return
	}
	JSON(w, http.StatusOK, verdict)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.opts.StorePath == "" {
		Error(w, http.StatusInternalServerError, "no store path configured")
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := codec.SaveStore(s.opts.StorePath, s.store.Snapshot()); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save store: "+err.Error())
		return
	}
	JSON(w, http.StatusOK, map[string]string{"saved": s.opts.StorePath})
}

// formatParam reads ?format=, defaulting to CSV.
func formatParam(r *http.Request) (codec.Format, error) {
	value := r.URL.Query().Get("format")
	if value == "" {
		return codec.FormatCSV, nil
	}
	return codec.ParseFormat(value)
}
