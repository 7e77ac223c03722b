package controller

import (
	"errors"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/pkg/serverutils"
	"steam-recs-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Submit)
	h.Get("", c.List)
	h.Delete(":game_id", c.Delete)
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Submit(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFeedbackType) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNoBaselineVector) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "game not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit feedback", res))
}

func (c *feedbackController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.feedbackService.List(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list feedback", res))
}

func (c *feedbackController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	gameId, err := uuid.Parse(ctx.Params("game_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid game id")
	}

	if err := c.feedbackService.Delete(ctx.Context(), userId, gameId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete feedback", nil))
}
