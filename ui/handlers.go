package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"pricelens/app"
	"pricelens/domain/pricelist"
	"pricelens/internal/errors"
)

// indexView feeds the upload form template.
type indexView struct {
	MaxUploadMB int64
	Error       string
}

// resultView feeds the comparison result template.
type resultView struct {
	FileA  string
	FileB  string
	Result pricelist.ComparisonResult
}

// handleIndex renders the upload form.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", indexView{MaxUploadMB: a.maxUploadBytes / (1024 * 1024)})
}

// handleCompare runs a comparison and renders the result page.
func (a *App) handleCompare(w http.ResponseWriter, r *http.Request) {
	uploadA, uploadB, cleanup, err := a.parseUploads(w, r)
	if err != nil {
		a.renderFormError(w, err)
		return
	}
	defer cleanup()

	result, err := a.service.CompareUploads(r.Context(), uploadA, uploadB)
	if err != nil {
		a.renderFormError(w, err)
		return
	}

	a.renderTemplate(w, "result.html", resultView{
		FileA:  uploadA.Filename,
		FileB:  uploadB.Filename,
		Result: result,
	})
}

// handleCompareReport runs a comparison and responds with the xlsx workbook.
func (a *App) handleCompareReport(w http.ResponseWriter, r *http.Request) {
	uploadA, uploadB, cleanup, err := a.parseUploads(w, r)
	if err != nil {
		a.renderFormError(w, err)
		return
	}
	defer cleanup()

	result, err := a.service.CompareUploads(r.Context(), uploadA, uploadB)
	if err != nil {
		a.renderFormError(w, err)
		return
	}

	payload, filename, err := a.service.BuildReport(result)
	if err != nil {
		a.renderFormError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(payload)))
	if _, err := w.Write(payload); err != nil {
		log.Printf("[handleCompareReport] Failed to stream report: %v", err)
	}
}

// handleCompareJSON runs a comparison and returns the raw result for tooling.
func (a *App) handleCompareJSON(w http.ResponseWriter, r *http.Request) {
	uploadA, uploadB, cleanup, err := a.parseUploads(w, r)
	if err != nil {
		a.writeJSONError(w, err)
		return
	}
	defer cleanup()

	result, err := a.service.CompareUploads(r.Context(), uploadA, uploadB)
	if err != nil {
		a.writeJSONError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Printf("[handleCompareJSON] Failed to encode result: %v", err)
	}
}

// parseUploads extracts the two multipart files from the request. The
// returned cleanup closes both files and must be called once parsing
// succeeded.
func (a *App) parseUploads(w http.ResponseWriter, r *http.Request) (app.UploadedList, app.UploadedList, func(), error) {
	var empty app.UploadedList

	r.Body = http.MaxBytesReader(w, r.Body, 2*a.maxUploadBytes)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		return empty, empty, nil, errors.Wrap(err, "could not parse the upload form")
	}

	fileA, closeA, err := a.formFile(r, "list_a", "Archivo A")
	if err != nil {
		return empty, empty, nil, err
	}
	fileB, closeB, err := a.formFile(r, "list_b", "Archivo B")
	if err != nil {
		closeA()
		return empty, empty, nil, err
	}

	cleanup := func() {
		closeA()
		closeB()
	}
	return fileA, fileB, cleanup, nil
}

// formFile fetches one named upload and validates its size and extension
// before any parsing happens.
func (a *App) formFile(r *http.Request, field, label string) (app.UploadedList, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return app.UploadedList{}, nil, errors.EmptyInput(fmt.Sprintf("%s was not uploaded", label))
	}

	if header.Size > a.maxUploadBytes {
		file.Close()
		return app.UploadedList{}, nil, errors.UnsupportedFile(fmt.Sprintf("%s exceeds the %d MB upload limit", header.Filename, a.maxUploadBytes/(1024*1024)))
	}

	name := strings.ToLower(header.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".csv") {
		file.Close()
		return app.UploadedList{}, nil, errors.UnsupportedFile(fmt.Sprintf("%s: only .xlsx and .csv files are accepted", header.Filename))
	}

	upload := app.UploadedList{
		Name:     strings.TrimPrefix(label, "Archivo "),
		Filename: header.Filename,
		Reader:   file,
	}
	return upload, func() { closeQuietly(file) }, nil
}

func closeQuietly(f multipart.File) {
	if err := f.Close(); err != nil {
		log.Printf("[parseUploads] Failed to close upload: %v", err)
	}
}

// renderFormError shows the upload form again with the failure message.
func (a *App) renderFormError(w http.ResponseWriter, err error) {
	log.Printf("[Compare] Request failed (%s): %v", errors.GetCode(err), err)
	w.WriteHeader(statusForError(err))
	a.renderTemplate(w, "index.html", indexView{
		MaxUploadMB: a.maxUploadBytes / (1024 * 1024),
		Error:       err.Error(),
	})
}

func (a *App) writeJSONError(w http.ResponseWriter, err error) {
	log.Printf("[Compare] API request failed (%s): %v", errors.GetCode(err), err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForError(err))
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidRow, errors.CodeMissingColumn, errors.CodeEmptyInput, errors.CodeUnsupportedFile:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
