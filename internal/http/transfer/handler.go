// Package transfer serves CSV import and the monthly export archive.
package transfer

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vipledger/internal/export"
	"github.com/MrJamesThe3rd/vipledger/internal/http/render"
	"github.com/MrJamesThe3rd/vipledger/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importer *importer.Service
	exporter *export.Service
}

func NewHandler(importer *importer.Service, exporter *export.Service) *Handler {
	return &Handler{importer: importer, exporter: exporter}
}

func (h *Handler) ImportRoutes(r chi.Router) {
	r.Post("/", h.importFile)
}

func (h *Handler) ExportRoutes(r chi.Router) {
	r.Get("/", h.exportMonth)
}

type importResponse struct {
	Kind     importer.Kind      `json:"kind"`
	Charset  string             `json:"charset"`
	Imported int                `json:"imported"`
	Skipped  []importer.Skipped `json:"skipped"`
}

// importFile accepts a multipart "file" field or a raw CSV body.
func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	kind, err := importer.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		render.Error(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var body io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			render.Error(w, fmt.Errorf("%w: %w", render.ErrBadRequest, err))
			return
		}
		defer file.Close()

		body = file
	}

	batch, err := h.importer.Parse(kind, body)
	if err != nil {
		render.Error(w, fmt.Errorf("%w: %w", render.ErrBadRequest, err))
		return
	}

	res, err := h.importer.Apply(r.Context(), batch)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, importResponse{
		Kind:     kind,
		Charset:  batch.Charset,
		Imported: res.Imported,
		Skipped:  res.Skipped,
	})
}

func (h *Handler) exportMonth(w http.ResponseWriter, r *http.Request) {
	m, err := render.Month(r)
	if err != nil {
		render.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ArchiveName(m)))

	if err := h.exporter.WriteArchive(w, m); err != nil {
		slog.Error("failed to write export archive", "error", err)
	}
}
