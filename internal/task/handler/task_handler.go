package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	authhandler "github.com/nandha2804/TMS/internal/auth/handler"
	autherror "github.com/nandha2804/TMS/internal/errors"
	"github.com/nandha2804/TMS/internal/task/domain"
	"github.com/nandha2804/TMS/internal/task/dto"
	"github.com/nandha2804/TMS/internal/task/service"
	"github.com/nandha2804/TMS/pkg/validator"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	var input dto.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if err := validator.Validate(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := h.taskService.Create(c.UserContext(), input, user)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	filter := domain.Filter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		AssigneeID: c.Query("assignee"),
		CreatorID:  c.Query("creator"),
	}

	if v := c.Query("due_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid due_before timestamp"})
		}
		filter.DueBefore = &t
	}
	if v := c.Query("due_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid due_after timestamp"})
		}
		filter.DueAfter = &t
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid limit"})
		}
		filter.Limit = limit
	}

	tasks, err := h.taskService.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	stats, err := h.taskService.Stats(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *TaskHandler) ListMine(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	listType := c.Query("type", "assigned")
	if listType != "assigned" && listType != "created" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "type must be 'created' or 'assigned'"})
	}

	tasks, err := h.taskService.ListMine(c.UserContext(), user.ID, listType)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) ListOverdue(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	tasks, err := h.taskService.ListOverdue(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	task, err := h.taskService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	var input dto.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if err := validator.Validate(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task, err := h.taskService.Update(c.UserContext(), c.Params("id"), input, user)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	if err := h.taskService.Delete(c.UserContext(), c.Params("id"), user); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func respondError(c *fiber.Ctx, err error) error {
	status := autherror.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
