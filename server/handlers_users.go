package server

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/sublitr/sublitr/auth"
)

func (s *Server) handleUsersOK(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	// validation inspects the raw document so wrongly typed fields report
	// "expected string" instead of failing the bind
	body := map[string]any{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	if verr := validateRegistration(body); verr != nil {
		return s.renderError(c, verr)
	}

	// duplicate emails are rejected inside the registration transaction
	handler := auth.NewRegisterUserHandler(s.repos)
	user, err := handler.Execute(c.Context(), auth.RegisterUserMessage{
		FirstName: body["firstName"].(string),
		LastName:  body["lastName"].(string),
		Email:     body["email"].(string),
		Password:  body["password"].(string),
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.Serialize())
}

// UserUpdateRequest is the profile update payload. Pointer fields
// distinguish "leave alone" from "set to zero value".
type UserUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
	Admin     *bool   `json:"admin"`
	Editor    *bool   `json:"editor"`
}

func (s *Server) handleUserUpdate(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	targetID := c.Params("userID")

	if !auth.CanAccess(identity, targetID, auth.TierSelfOrAdmin) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	id, err := uuid.Parse(targetID)
	if err != nil {
		return s.renderError(c, errors.New("No document with that ID", errors.CategoryNotFound))
	}

	payload := new(UserUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return s.renderError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
			WithCode(fiber.StatusBadRequest))
	}

	// role flags are admin-only regardless of whose profile it is
	if (payload.Admin != nil || payload.Editor != nil) && !identity.Admin {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	record, err := s.repos.Users().FindByID(c.Context(), id)
	if err != nil {
		return s.renderError(c, err)
	}

	columns := []string{}
	if payload.FirstName != nil {
		record.FirstName = *payload.FirstName
		columns = append(columns, "first_name")
	}
	if payload.LastName != nil {
		record.LastName = *payload.LastName
		columns = append(columns, "last_name")
	}
	if payload.Password != nil {
		if verr := validatePasswordChange(*payload.Password); verr != nil {
			return s.renderError(c, verr)
		}
		hash, err := auth.HashPassword(*payload.Password)
		if err != nil {
			return s.renderError(c, err)
		}
		record.PasswordHash = hash
		columns = append(columns, "password_hash")
	}
	if payload.Admin != nil {
		record.Admin = *payload.Admin
		columns = append(columns, "admin")
	}
	if payload.Editor != nil {
		record.Editor = *payload.Editor
		columns = append(columns, "editor")
	}

	updated, err := s.repos.Users().UpdateProfile(c.Context(), record, columns...)
	if err != nil {
		return s.renderError(c, err)
	}

	return c.JSON(updated.Serialize())
}

func (s *Server) handleUserDelete(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	targetID := c.Params("userID")

	if !auth.CanAccess(identity, targetID, auth.TierSelfOrAdmin) {
		return s.renderError(c, auth.ErrNotAuthorized)
	}

	id, err := uuid.Parse(targetID)
	if err != nil {
		return s.renderError(c, errors.New("No document with that ID", errors.CategoryNotFound))
	}

	record, err := s.repos.Users().FindByID(c.Context(), id)
	if err != nil {
		return s.renderError(c, err)
	}

	// admin accounts can only be removed by themselves
	if record.Admin && identity.ID != record.ID.String() {
		return s.renderError(c, auth.ErrCannotDeleteAdmin)
	}

	if err := s.repos.Users().DeleteByID(c.Context(), id); err != nil {
		return s.renderError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
