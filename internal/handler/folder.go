package handler

import (
	"log/slog"
	"net/http"

	"lempek/internal/domain/models"
	"lempek/internal/domain/services"
	"lempek/internal/httputil"
)

// FolderHandler handles folder tree endpoints
type FolderHandler struct {
	folders services.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: folders, logger: logger}
}

// CreateFolder handles POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folders.Create(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// RenameFolder handles PATCH /api/folders/{id}
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req services.RenameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folders.Rename(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.folders.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFolders handles GET /api/folders?parent=&order=
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	order := models.ParseListOrder(r.URL.Query().Get("order"))

	folders, err := h.folders.List(r.Context(), httputil.GetPrincipal(r), optionalID(r, "parent"), order)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	httputil.RespondJSON(w, http.StatusOK, folders)
}

// ListAllFolders handles GET /api/folders/all
func (h *FolderHandler) ListAllFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.ListAll(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	httputil.RespondJSON(w, http.StatusOK, folders)
}

// GetFolderPath handles GET /api/folders/{id}/path
func (h *FolderHandler) GetFolderPath(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	entries, err := h.folders.Path(r.Context(), httputil.GetPrincipal(r), &id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if entries == nil {
		entries = []models.PathEntry{}
	}
	httputil.RespondJSON(w, http.StatusOK, entries)
}
