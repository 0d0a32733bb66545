package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/creatorflow/creatorflow-api/internal/publishing"
	"github.com/creatorflow/creatorflow-api/internal/queue"
	"github.com/creatorflow/creatorflow-api/internal/service"
	"github.com/creatorflow/creatorflow-api/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	ps          publishing.Service
	AsynqClient *asynq.Client
}

func NewPostHandler(service service.PostService, ps publishing.Service, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, ps: ps, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	content := c.FormValue("content")
	platforms := c.FormValue("platforms")
	scheduledTime := c.FormValue("scheduling_time")

	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	postID, delay, err := h.s.CreatePost(c.Context(), userID, &transfer.PostCreation{
		Content:       content,
		Platforms:     platforms,
		ScheduledTime: scheduledTime},
		form.File["files"])

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if scheduledTime != "" {
		err = queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: postID, UserID: userID}, delay)
		if err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error": "Error scheduling post",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post created successfully",
		"post_id": postID,
	})
}

func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	result, err := h.ps.PublishPost(c.Context(), req.PostID, userID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, publishing.ErrPostNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) SchedulePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	scheduledAt, err := time.Parse("2006-01-02T15:04", req.ScheduledTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid scheduled time format",
		})
	}

	if err := h.ps.SchedulePost(c.Context(), req.PostID, userID, scheduledAt); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, publishing.ErrPostNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err = queue.EnqueuePost(h.AsynqClient, queue.PublishPostPayload{PostID: req.PostID, UserID: userID}, time.Until(scheduledAt))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post scheduled successfully",
	})
}

func (h *PostHandler) CancelPost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if err := h.ps.CancelScheduledPost(c.Context(), req.PostID, userID); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, publishing.ErrPostNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Schedule cancelled",
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userId := GetUserID(c)
	postId := c.QueryInt("id", 0)

	if postId != 0 {
		post, err := h.s.PostInfo(c.Context(), int64(postId), userId)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to list posts",
			})
		}

		return c.Status(fiber.StatusOK).JSON(post)

	}

	posts, err := h.s.List(c.Context(), userId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postId := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(postId))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove post",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
