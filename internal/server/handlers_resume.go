package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/ingestion"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// multipartOverhead leaves room for form boundaries around the file part
const multipartOverhead = 1 << 20

// handleUploadResume stores an uploaded PDF/DOCX resume and returns its parsed profile.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			s.errorResponse(w, http.StatusBadRequest, msgFileMissing)
		case errors.As(err, &maxBytes):
			s.writeError(w, r, &ingestion.UploadTooLargeError{Limit: s.maxUploadBytes})
		default:
			s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		}
		return
	}
	defer file.Close()

	if !ingestion.IsSupported(header.Filename) {
		s.writeError(w, r, &ingestion.UnsupportedFormatError{Filename: header.Filename})
		return
	}

	upload, err := ingestion.SaveUpload(s.uploadDir, header.Filename, file, s.maxUploadBytes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := upload.ReadAll()
	if err != nil {
		s.discardUpload(upload)
		s.writeError(w, r, err)
		return
	}

	text, err := ingestion.ExtractText(upload.Filename, data)
	if err != nil {
		s.log.Warn("resume extraction failed",
			zap.String("filename", upload.Filename),
			zap.String("stored", upload.StoredName),
			zap.Error(err),
		)
		s.discardUpload(upload)
		s.writeError(w, r, err)
		return
	}

	profile := parsing.ParseResume(text)
	s.log.Info("resume parsed",
		zap.String("filename", upload.Filename),
		zap.String("hash", upload.Hash),
		zap.Int64("size", upload.Size),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experience", profile.ExperienceYears),
	)

	s.jsonResponse(w, http.StatusOK, types.UploadResponse{
		Filename:     upload.Filename,
		ParsedResume: profile,
	})
}

// discardUpload removes an upload whose text could not be used
func (s *Server) discardUpload(upload *ingestion.Upload) {
	if err := upload.Remove(); err != nil {
		s.log.Warn("failed to remove upload", zap.String("stored", upload.StoredName), zap.Error(err))
	}
}
