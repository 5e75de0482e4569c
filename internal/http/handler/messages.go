package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/http/middleware"
	"advocatehub/internal/model"
	"advocatehub/internal/service"
)

type sendMessageRequest struct {
	Body string `json:"body" form:"body" validate:"required,max=4000"`
}

// Conversation lists messages exchanged with :peerID, newest first.
//
// @Summary Conversation with a user
// @Tags messages
// @Param peerID path string true "counterpart user id"
// @Param limit query int false "page size" default(10)
// @Param offset query int false "offset" default(0)
// @Success 200 {object} service.MessageListResult
// @Router /messages/{peerID} [get]
func Conversation(msgSvc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		peerID, ok, err := pathUUID(c, "peerID")
		if !ok {
			return err
		}
		user := middleware.UserFromCtx(c)
		limit, offset, ok, err := parsePage(c)
		if !ok {
			return err
		}
		res, err := msgSvc.Conversation(c.UserContext(), user.ID, peerID, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// SendMessage sends a direct message to :peerID.
//
// @Summary Send a message
// @Tags messages
// @Accept json
// @Param peerID path string true "recipient user id"
// @Param body body sendMessageRequest true "message"
// @Success 201 {object} model.Message
// @Router /messages/{peerID} [post]
func SendMessage(msgSvc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		peerID, ok, err := pathUUID(c, "peerID")
		if !ok {
			return err
		}
		var req sendMessageRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		user := middleware.UserFromCtx(c)
		msg, err := msgSvc.Send(c.UserContext(), user.ID, peerID, req.Body)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSelfMessage):
				return writeError(c, fiber.StatusBadRequest, "SELF_MESSAGE", "cannot message yourself")
			case errors.Is(err, service.ErrEmptyBody):
				return writeError(c, fiber.StatusBadRequest, "EMPTY_BODY", "message body is empty")
			case errors.Is(err, service.ErrRecipientGone):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "recipient not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	}
}

// ChatInbox lists the latest message of each of the advocate's conversations.
//
// @Summary Advocate chat inbox
// @Tags messages
// @Success 200 {object} map[string][]model.Message
// @Router /chat [get]
func ChatInbox(msgSvc service.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.UserFromCtx(c)
		items, err := msgSvc.Inbox(c.UserContext(), user.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if items == nil {
			items = []model.Message{}
		}
		return c.JSON(fiber.Map{"data": items})
	}
}
