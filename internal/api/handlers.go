package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pocketnotes/internal/apperr"
	"github.com/starford/pocketnotes/internal/checksum"
	"github.com/starford/pocketnotes/internal/models"
	"github.com/starford/pocketnotes/internal/noteservice"
	"github.com/starford/pocketnotes/internal/preview"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

func listResponse(list []models.NoteSummary, err error) NoteListResponse {
	resp := NoteListResponse{
		Notes: list,
		Count: len(list),
		Label: preview.CountLabel(len(list)),
	}
	if err != nil {
		resp.Warning = err.Error()
	}
	return resp
}

// mutationStatus maps a store error to the HTTP status of a mutation whose
// list result is still returned.
func mutationStatus(err error, ok int) int {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidFilename:
		return http.StatusBadRequest
	case apperr.KindDirectoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		// Write and delete failures degrade: the list is still accurate.
		return ok
	}
}

func decodeContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	return req.Content, true
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List notes, most recently created or edited first
//	@Tags			notes
//	@Produce		json
//	@Success		200		{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse(h.svc.List(r.Context()), nil))
}

// NewFilename handles POST /api/notes/new.
//
//	@Summary		Generate a filename for a note that has not been saved yet
//	@Tags			notes
//	@Produce		json
//	@Success		200		{object}	FilenameResponse
//	@Security		BearerAuth
//	@Router			/notes/new [post]
func (h *Handler) NewFilename(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FilenameResponse{Filename: h.svc.GenerateFilename(r.Context())})
}

// ReloadNotes handles POST /api/notes/reload.
//
//	@Summary		Rebuild the list from the notes directory
//	@Tags			notes
//	@Produce		json
//	@Success		200		{object}	NoteListResponse
//	@Failure		503		{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes/reload [post]
func (h *Handler) ReloadNotes(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Reload(r.Context())
	if err != nil {
		slog.Warn("reload notes failed", slog.String("error", err.Error()))
	}
	writeJSON(w, mutationStatus(err, http.StatusOK), listResponse(h.svc.List(r.Context()), err))
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a note under a generated filename
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SaveNoteRequest	true	"Note text"
//	@Success		201		{object}	CreateNoteResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}
	if content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	filename, list, err := h.svc.Create(r.Context(), content)
	if err != nil {
		slog.Error("create note failed", slog.String("filename", filename), slog.String("error", err.Error()))
		writeJSON(w, mutationStatus(err, http.StatusInternalServerError), CreateNoteResponse{
			NoteListResponse: listResponse(list, err),
		})
		return
	}
	writeJSON(w, http.StatusCreated, CreateNoteResponse{
		NoteListResponse: listResponse(list, nil),
		Filename:         filename,
	})
}

// GetNote handles GET /api/notes/{filename}.
//
//	@Summary		Get the full text of a note
//	@Tags			notes
//	@Produce		json
//	@Param			filename	path		string	true	"Note filename"
//	@Success		200			{object}	NoteDetail
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{filename} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	content, err := h.svc.Read(r.Context(), filename)
	if err != nil {
		writeReadError(w, filename, err)
		return
	}
	w.Header().Set("ETag", checksum.ETag(content))
	if checksum.NoneMatch(r.Header.Get("If-None-Match"), content) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, NoteDetail{Filename: filename, Content: content, Checksum: checksum.Sum(content)})
}

// SaveNote handles PUT /api/notes/{filename}.
//
//	@Summary		Save a note; empty content deletes it
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			filename	path		string			true	"Note filename"
//	@Param			body		body		SaveNoteRequest	true	"Note text"
//	@Success		200			{object}	NoteListResponse
//	@Failure		400			{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes/{filename} [put]
func (h *Handler) SaveNote(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}
	list, err := h.svc.Save(r.Context(), filename, content)
	if err != nil {
		slog.Warn("save note failed", slog.String("filename", filename), slog.String("error", err.Error()))
	}
	writeJSON(w, mutationStatus(err, http.StatusOK), listResponse(list, err))
}

// DeleteNote handles DELETE /api/notes/{filename}.
//
//	@Summary		Delete a note
//	@Tags			notes
//	@Produce		json
//	@Param			filename	path		string	true	"Note filename"
//	@Success		200			{object}	NoteListResponse
//	@Failure		400			{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes/{filename} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	list, err := h.svc.Delete(r.Context(), filename)
	if err != nil {
		slog.Warn("delete note failed", slog.String("filename", filename), slog.String("error", err.Error()))
	}
	writeJSON(w, mutationStatus(err, http.StatusOK), listResponse(list, err))
}

// ShareNote handles GET /api/notes/{filename}/share.
//
//	@Summary		Download a note as plain text for sharing
//	@Tags			notes
//	@Produce		plain
//	@Param			filename	path		string	true	"Note filename"
//	@Success		200			{string}	string
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{filename}/share [get]
func (h *Handler) ShareNote(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	title, text, err := h.svc.Share(r.Context(), filename)
	if err != nil {
		writeReadError(w, filename, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Note-Title", strconv.QuoteToASCII(title))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// Activity handles GET /api/activity.
//
//	@Summary		Recent note activity
//	@Tags			activity
//	@Produce		json
//	@Param			limit	query		int		false	"Max events"
//	@Param			after	query		int		false	"Only events after this ID, oldest first"
//	@Success		200		{object}	ActivityResponse
//	@Security		BearerAuth
//	@Router			/activity [get]
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	var (
		events []models.ActivityEvent
		err    error
	)
	if after := q.Get("after"); after != "" {
		id, perr := strconv.ParseInt(after, 10, 64)
		if perr != nil || id < 0 {
			writeError(w, http.StatusBadRequest, "invalid after")
			return
		}
		events, err = h.svc.ActivitySince(r.Context(), id, limit)
	} else {
		events, err = h.svc.Activity(r.Context(), limit)
	}
	if err != nil {
		slog.Error("activity failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{Events: events})
}

func writeReadError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidFilename):
		writeError(w, http.StatusBadRequest, "invalid filename")
	case errors.Is(err, os.ErrNotExist):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrDirectoryUnavailable):
		writeError(w, http.StatusServiceUnavailable, "notes directory unavailable")
	default:
		slog.Error("read note failed", slog.String("filename", filename), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
