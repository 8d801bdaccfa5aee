package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"renotrack/internal/apperr"
	"renotrack/internal/normalize"
)

// multipartOverhead leaves room for the multipart framing around a
// maximum-size photo.
const multipartOverhead = 1 << 20

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "slotID")

	r.Body = http.MaxBytesReader(w, r.Body, normalize.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(normalize.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("photo too large or invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("photo file required"))
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Error("failed to close upload file", "error", cerr)
		}
	}()

	declaredType := header.Header.Get("Content-Type")

	// Cheap checks before buffering the body.
	if err := normalize.CheckUpload(declaredType, header.Size); err != nil {
		s.writeError(w, r, err)
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("read upload failed", "slot_id", slotID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
		return
	}

	photo, err := s.service.UploadPhoto(r.Context(), slotID, header.Filename, declaredType, raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success: true,
		Photo: uploadedPhotoDTO{
			ID:           photo.ID,
			Filename:     photo.Filename,
			OriginalName: photo.OriginalName,
		},
	})
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("photo not found"))
		return
	}

	if err := s.service.DeletePhoto(r.Context(), photoID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (s *Server) handleDownloadArchive(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "slotID")

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.service.ArchiveName(slotID)))

	err := s.service.ExportSlot(r.Context(), slotID, w)
	if err == nil {
		return
	}

	switch apperr.KindOf(err) {
	case apperr.KindNotFound, apperr.KindStore:
		// These surface before the first archive byte, so a clean JSON
		// response is still possible.
		w.Header().Del("Content-Disposition")
		s.writeError(w, r, err)
	default:
		// Mid-stream fault: headers are gone, all we can do is cut the
		// stream so the client sees a truncated download.
		s.logger.Error("archive stream aborted", "slot_id", slotID, "error", err)
	}
}

func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	blob, err := s.blobs.Open(r.Context(), filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() {
		if cerr := blob.Close(); cerr != nil {
			s.logger.Error("failed to close blob reader", "filename", filename, "error", cerr)
		}
	}()

	// Every stored photo is normalized to JPEG.
	w.Header().Set("Content-Type", "image/jpeg")
	if _, err := io.Copy(w, blob); err != nil {
		s.logger.Error("write photo failed", "filename", filename, "error", err)
	}
}
