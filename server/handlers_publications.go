package server

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/sublitr/sublitr/auth"
	"github.com/sublitr/sublitr/publications"
	"github.com/sublitr/sublitr/storage"
)

func (s *Server) serializePublication(c *fiber.Ctx, pub *publications.Publication) map[string]any {
	imageURL := ""
	if pub.ImageKey != "" {
		url, err := s.blobs.PresignGet(c.Context(), pub.ImageKey)
		if err != nil {
			s.logger.Error("presign failed for publication %s: %v", pub.ID, err)
		} else {
			imageURL = url
		}
	}
	return pub.Serialize(imageURL)
}

func (s *Server) handlePublicationList(c *fiber.Ctx) error {
	records, err := s.repos.Publications().List(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}

	out := make([]map[string]any, len(records))
	for i, record := range records {
		out[i] = s.serializePublication(c, record)
	}

	return c.JSON(out)
}

// PublicationCreateRequest is the admin payload for a new publication.
// The cover image is optional and travels as an opaque payload field.
type PublicationCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ContentType string `json:"contentType"`
}

// Validate will run validation rules
func (r PublicationCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
	)
}

func (s *Server) handlePublicationCreate(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if !auth.CanAccess(identity, "", auth.TierAdminOnly) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	payload := new(PublicationCreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return s.renderError(c, newValidationError("Missing field", "title"))
	}

	record := publications.New(payload.Title, payload.Description)

	if payload.Image != "" {
		key := storage.NewStorageKey("publications")
		if err := s.blobs.Upload(c.Context(), key, strings.NewReader(payload.Image), payload.ContentType); err != nil {
			return s.renderError(c, errors.Wrap(err, errors.CategoryInternal, "failed to store publication image"))
		}
		record.ImageKey = key
	}

	created, err := s.repos.Publications().Create(c.Context(), record)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(s.serializePublication(c, created))
}

func (s *Server) handlePublicationDelete(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if !auth.CanAccess(identity, "", auth.TierAdminOnly) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	record, err := s.repos.Publications().GetByID(c.Context(), c.Params("publicationID"))
	if err != nil {
		return s.renderError(c, err)
	}

	if err := s.repos.Publications().Delete(c.Context(), record.ID.String()); err != nil {
		return s.renderError(c, err)
	}

	if record.ImageKey != "" {
		if err := s.blobs.Delete(c.Context(), record.ImageKey); err != nil {
			s.logger.Error("failed to delete blob %s: %v", record.ImageKey, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
