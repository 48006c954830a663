package controllers

import (
	"net/http"
	"path/filepath"

	"editorial-management-api/services"
	"editorial-management-api/utils"

	"github.com/gin-gonic/gin"
)

// UploadFullPaper handles POST /abstracts/:abstractId/full-paper
// (author only). Multipart array field 'files'; every file must pass the
// type/size whitelist before anything is persisted. Files are written to
// disk outside the workflow transaction; if the transition is refused the
// stored files are removed best-effort.
func (ac *AbstractController) UploadFullPaper(c *gin.Context) {
	abstractID, ok := parseIDParam(c, "abstractId")
	if !ok {
		return
	}
	authorID, ok := currentActorID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Multipart form with 'files' field is required")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respondMessage(c, http.StatusBadRequest, "At least one file is required")
		return
	}
	for _, file := range files {
		if err := utils.ValidateUpload(file); err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	dir, err := utils.UploadDir("full_papers")
	if err != nil {
		respondError(c, err)
		return
	}

	uploads := make([]services.FullPaperUpload, 0, len(files))
	stored := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(dir, utils.StoredFilename("fullpaper", file.Filename))
		if err := c.SaveUploadedFile(file, path); err != nil {
			for _, p := range stored {
				removeOrphanFile(p)
			}
			respondError(c, err)
			return
		}
		stored = append(stored, path)
		uploads = append(uploads, services.FullPaperUpload{
			FileName: file.Filename,
			FileType: file.Header.Get("Content-Type"),
			FilePath: path,
		})
	}

	created, err := ac.workflow.AttachFullPapers(c.Request.Context(), abstractID, authorID, uploads)
	if err != nil {
		for _, p := range stored {
			removeOrphanFile(p)
		}
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Full paper uploaded successfully", created)
}
