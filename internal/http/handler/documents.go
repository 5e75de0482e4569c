package handler

import (
	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/http/middleware"
	"advocatehub/internal/service"
)

// ListDocuments lists the signed-in user's documents with limit & offset.
//
// @Summary List documents
// @Tags documents
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.DocumentListResult
// @Router /documents [get]
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := parsePage(c)
		if !ok {
			return err
		}
		res, err := docSvc.List(c.UserContext(), middleware.UserFromCtx(c).ID, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument stores a multipart upload (field name: file).
//
// @Summary Upload a document
// @Tags documents
// @Accept multipart/form-data
// @Param file formData file true "document"
// @Success 201 {object} model.Document
// @Router /documents [post]
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := docSvc.Upload(c.UserContext(), middleware.UserFromCtx(c).ID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns document metadata by ID.
//
// @Summary Get a document
// @Tags documents
// @Param id path string true "document id"
// @Success 200 {object} model.Document
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathUUID(c, "id")
		if !ok {
			return err
		}
		doc, err := docSvc.Get(c.UserContext(), middleware.UserFromCtx(c).ID, id)
		if err != nil {
			return documentError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document and its stored object.
//
// @Summary Delete a document
// @Tags documents
// @Param id path string true "document id"
// @Success 204
// @Router /documents/{id} [delete]
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathUUID(c, "id")
		if !ok {
			return err
		}
		if err := docSvc.Delete(c.UserContext(), middleware.UserFromCtx(c).ID, id); err != nil {
			return documentError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PreviewDocument returns the render directive for a stored document.
//
// @Summary Preview a document
// @Tags documents
// @Param id path string true "document id"
// @Success 200 {object} service.DocumentPreview
// @Router /documents/{id}/preview [get]
func PreviewDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathUUID(c, "id")
		if !ok {
			return err
		}
		preview, err := docSvc.Preview(c.UserContext(), middleware.UserFromCtx(c).ID, id)
		if err != nil {
			return documentError(c, err)
		}
		return c.JSON(preview)
	}
}

// documentError maps a DocumentService error onto the error envelope.
func documentError(c *fiber.Ctx, err error) error {
	if isNotFound(err) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
