package server

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/sublitr/sublitr/auth"
	"github.com/sublitr/sublitr/storage"
	"github.com/sublitr/sublitr/submissions"
)

// serializeSubmission renders one submission for the given viewer,
// resolving the stored file key into a short-lived download link for
// reviewers.
func (s *Server) serializeSubmission(c *fiber.Ctx, sub *submissions.Submission, reviewer bool) map[string]any {
	fileURL := ""
	if reviewer && sub.FileKey != "" {
		url, err := s.blobs.PresignGet(c.Context(), sub.FileKey)
		if err != nil {
			s.logger.Error("presign failed for submission %s: %v", sub.ID, err)
		} else {
			fileURL = url
		}
	}
	return sub.Serialize(reviewer, fileURL)
}

func (s *Server) handleSubmissionList(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	reviewer := auth.IsReviewer(identity)

	var (
		records []*submissions.Submission
		err     error
	)

	if reviewer {
		records, err = s.repos.Submissions().List(c.Context())
	} else {
		records, err = s.repos.Submissions().ListByAuthor(c.Context(), identity.ID)
	}
	if err != nil {
		return s.renderError(c, err)
	}

	out := make([]map[string]any, len(records))
	for i, record := range records {
		out[i] = s.serializeSubmission(c, record, reviewer)
	}

	return c.JSON(out)
}

func (s *Server) handleSubmissionGet(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)

	record, err := s.repos.Submissions().GetByID(c.Context(), c.Params("submissionID"))
	if err != nil {
		return s.renderError(c, err)
	}

	if !auth.CanAccess(identity, record.AuthorID, auth.TierOwnerOrEditorOrAdmin) {
		return s.renderError(c, errors.New("Not authorized to view submission", errors.CategoryAuthz).
			WithCode(errors.CodeUnauthorized))
	}

	return c.JSON(s.serializeSubmission(c, record, auth.IsReviewer(identity)))
}

// SubmissionCreateRequest is the manuscript submission payload. File
// content travels as an opaque payload field and is stored, never parsed.
type SubmissionCreateRequest struct {
	Title       string `json:"title"`
	Publication string `json:"publication"`
	File        string `json:"file"`
	ContentType string `json:"contentType"`
}

// Validate will run validation rules
func (r SubmissionCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Publication, validation.Required),
		validation.Field(&r.File, validation.Required),
	)
}

func (s *Server) handleSubmissionCreate(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)

	payload := new(SubmissionCreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	if err := payload.Validate(); err != nil {
		location := ""
		if verrs, ok := err.(validation.Errors); ok {
			for field := range verrs {
				location = strings.ToLower(field[:1]) + field[1:]
				break
			}
		}
		return s.renderError(c, newValidationError("Missing field", location))
	}

	key := storage.NewStorageKey("submissions")
	if err := s.blobs.Upload(c.Context(), key, strings.NewReader(payload.File), payload.ContentType); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryInternal, "failed to store submission file"))
	}

	record := submissions.New(payload.Title, payload.Publication, identity.FullName(), identity.ID)
	record.FileKey = key

	created, err := s.repos.Submissions().Create(c.Context(), record)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(s.serializeSubmission(c, created, auth.IsReviewer(identity)))
}

// SubmissionStatusRequest updates the editorial state.
type SubmissionStatusRequest struct {
	Decision       string `json:"decision"`
	Recommendation string `json:"recommendation"`
}

func (s *Server) handleSubmissionStatus(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if !auth.CanAccess(identity, "", auth.TierEditorOrAdmin) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	payload := new(SubmissionStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	if payload.Decision == "" && payload.Recommendation == "" {
		return s.renderError(c, newValidationError("Missing field", "decision"))
	}

	updated, err := s.repos.Submissions().UpdateReview(
		c.Context(), c.Params("submissionID"), payload.Decision, payload.Recommendation,
	)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(s.serializeSubmission(c, updated, true))
}

// SubmissionCommentRequest appends a reviewer note.
type SubmissionCommentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSubmissionComment(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if !auth.CanAccess(identity, "", auth.TierEditorOrAdmin) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	payload := new(SubmissionCommentRequest)
	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	if strings.TrimSpace(payload.Text) == "" {
		return s.renderError(c, newValidationError("Missing field", "text"))
	}

	updated, err := s.repos.Submissions().AddComment(c.Context(), c.Params("submissionID"), submissions.Comment{
		Name:     identity.FullName(),
		AuthorID: identity.ID,
		Text:     payload.Text,
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(s.serializeSubmission(c, updated, true))
}

func (s *Server) handleSubmissionDelete(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)

	record, err := s.repos.Submissions().GetByID(c.Context(), c.Params("submissionID"))
	if err != nil {
		return s.renderError(c, err)
	}

	if !auth.CanAccess(identity, record.AuthorID, auth.TierSelfOrAdmin) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	if err := s.repos.Submissions().Delete(c.Context(), record.ID.String()); err != nil {
		return s.renderError(c, err)
	}

	if record.FileKey != "" {
		if err := s.blobs.Delete(c.Context(), record.FileKey); err != nil {
			s.logger.Error("failed to delete blob %s: %v", record.FileKey, err)
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
