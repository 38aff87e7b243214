package handler

import (
	"log/slog"
	"net/http"

	"lempek/internal/domain/models"
	"lempek/internal/domain/services"
	"lempek/internal/httputil"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// bodies spill to temp files.
const maxUploadMemory = 32 << 20

// FileHandler handles file endpoints, uploads included
type FileHandler struct {
	files  services.FileService
	logger *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(files services.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

// UploadFile handles POST /api/files. The body is multipart form data with a
// "file" part and optional "folder", "name" and "overwrite" fields.
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer part.Close()

	req := services.UploadRequest{
		Filename:  header.Filename,
		Overwrite: r.FormValue("overwrite") == "true",
		Content:   part,
	}
	if folder := r.FormValue("folder"); folder != "" {
		req.FolderID = &folder
	}
	if name := r.FormValue("name"); name != "" {
		req.Name = &name
	}

	file, err := h.files.Upload(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// RenameFile handles PATCH /api/files/{id}
func (h *FileHandler) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req services.RenameRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.files.Rename(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile handles DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.files.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFiles handles GET /api/files?parent=&order=
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	order := models.ParseListOrder(r.URL.Query().Get("order"))

	files, err := h.files.List(r.Context(), httputil.GetPrincipal(r), optionalID(r, "parent"), order)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if files == nil {
		files = []models.File{}
	}
	httputil.RespondJSON(w, http.StatusOK, files)
}

// ListAllFiles handles GET /api/files/all
func (h *FileHandler) ListAllFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.files.ListAll(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if files == nil {
		files = []models.File{}
	}
	httputil.RespondJSON(w, http.StatusOK, files)
}
