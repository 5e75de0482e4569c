package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"advocatehub/internal/http/middleware"
	"advocatehub/internal/service"
)

type createPostRequest struct {
	Content string `json:"content" form:"content" validate:"required,max=10000"`
}

// ListMyPosts lists the signed-in user's profile posts.
//
// @Summary My profile posts
// @Tags posts
// @Success 200 {object} service.PostListResult
// @Router /profile/posts [get]
func ListMyPosts(postSvc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return listPosts(c, postSvc, middleware.UserFromCtx(c).ID)
	}
}

// ListUserPosts lists another user's profile posts.
//
// @Summary A user's profile posts
// @Tags posts
// @Param id path string true "user id"
// @Success 200 {object} service.PostListResult
// @Router /users/{id}/posts [get]
func ListUserPosts(postSvc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := pathUUID(c, "id")
		if !ok {
			return err
		}
		return listPosts(c, postSvc, id)
	}
}

func listPosts(c *fiber.Ctx, postSvc service.PostService, authorID string) error {
	limit, offset, ok, err := parsePage(c)
	if !ok {
		return err
	}
	res, err := postSvc.ListByAuthor(c.UserContext(), authorID, limit, offset)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return c.JSON(res)
}

// CreatePost publishes a post on the signed-in user's profile.
//
// @Summary Create a profile post
// @Tags posts
// @Accept json
// @Param body body createPostRequest true "post"
// @Success 201 {object} model.Post
// @Router /profile/posts [post]
func CreatePost(postSvc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createPostRequest
		if ok, err := bindBody(c, &req); !ok {
			return err
		}
		post, err := postSvc.Create(c.UserContext(), middleware.UserFromCtx(c).ID, req.Content)
		if err != nil {
			if errors.Is(err, service.ErrEmptyContent) {
				return writeError(c, fiber.StatusBadRequest, "EMPTY_CONTENT", "post content is empty")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	}
}
