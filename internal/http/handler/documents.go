package handler

import (
	"mime/multipart"
	"net/url"
	"sort"

	"github.com/gofiber/fiber/v2"

	"docrepo/internal/model"
	"docrepo/internal/service"
)

type uploadResponse struct {
	Message string            `json:"message"`
	File    *model.StoredFile `json:"file"`
}

type catalogueEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type catalogueResponse struct {
	Sections []catalogueEntry `json:"sections"`
	Types    []catalogueEntry `json:"types"`
}

// UploadDocument stores one multipart file in a section/type folder.
//
// @Summary  Upload a document
// @Tags     documents
// @Accept   multipart/form-data
// @Produce  json
// @Param    file     formData file   true "Document"
// @Param    section  formData string true "Section identifier (legacy ids such as s4_logistics are accepted)"
// @Param    type     formData string true "incoming or outgoing"
// @Success  200 {object} uploadResponse
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/upload [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Fields come from the multipart body only; query args are ignored.
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SECTION_OR_TYPE", "invalid section or type")
		}

		// Reject unknown folders before opening the payload.
		section, docType := formField(form, "section"), formField(form, "type")
		if !model.IsValid(section, docType) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SECTION_OR_TYPE", "invalid section or type")
		}

		files := form.File["file"]
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		fh := files[0]

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docSvc.Upload(c.UserContext(), section, docType, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(uploadResponse{
			Message: "File uploaded successfully",
			File:    doc,
		})
	}
}

func formField(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// ListDocuments returns the live contents of a folder, newest first.
//
// @Summary  List documents in a folder
// @Tags     documents
// @Produce  json
// @Param    section path string true "Section identifier"
// @Param    type    path string true "incoming or outgoing"
// @Success  200 {array}  model.FileInfo
// @Failure  400 {object} errorPayload
// @Failure  500 {object} errorPayload
// @Router   /api/files/{section}/{type} [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := docSvc.List(c.UserContext(), c.Params("section"), c.Params("type"))
		if err != nil {
			return writeServiceError(c, err)
		}

		sort.SliceStable(files, func(i, j int) bool {
			if !files[i].CreatedAt.Equal(files[j].CreatedAt) {
				return files[i].CreatedAt.After(files[j].CreatedAt)
			}
			return files[i].Name < files[j].Name
		})
		return c.JSON(files)
	}
}

// DownloadDocument streams a stored file as an attachment.
//
// @Summary  Download a document
// @Tags     documents
// @Produce  octet-stream
// @Param    section  path string true "Section identifier"
// @Param    type     path string true "incoming or outgoing"
// @Param    filename path string true "Stored name as returned by the listing"
// @Success  200 {file}   binary
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/download/{section}/{type}/{filename} [get]
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Params are raw; "%2F" must be decoded before the separator check.
		filename, err := url.PathUnescape(c.Params("filename"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "invalid filename")
		}

		rc, info, err := docSvc.Download(c.UserContext(), c.Params("section"), c.Params("type"), filename)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(info.Name)
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, int(info.Size))
	}
}

// ListSections returns the fixed folder taxonomy.
//
// @Summary  List sections and document types
// @Tags     documents
// @Produce  json
// @Success  200 {object} catalogueResponse
// @Router   /api/sections [get]
func ListSections() fiber.Handler {
	res := catalogueResponse{}
	for _, cat := range model.Categories() {
		res.Sections = append(res.Sections, catalogueEntry{ID: string(cat), Name: cat.Label()})
	}
	for _, t := range model.DocumentTypes() {
		res.Types = append(res.Types, catalogueEntry{ID: string(t), Name: t.Label()})
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(res)
	}
}
