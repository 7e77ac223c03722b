package controller

import (
	"errors"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/pkg/serverutils"
	"steam-recs-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	GeneratePreference(ctx *fiber.Ctx) error
	ShowProfile(ctx *fiber.Ctx) error
	GetRecommendations(ctx *fiber.Ctx) error
}

type recommendationController struct {
	preferenceService     service.IPreferenceService
	recommendationService service.IRecommendationService
}

func NewRecommendationController(
	preferenceService service.IPreferenceService,
	recommendationService service.IRecommendationService,
) IRecommendationController {
	return &recommendationController{
		preferenceService:     preferenceService,
		recommendationService: recommendationService,
	}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommendation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("preference", c.GeneratePreference)
	h.Get("profile", c.ShowProfile)
	h.Post("games", c.GetRecommendations)
}

func (c *recommendationController) GeneratePreference(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GeneratePreferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.preferenceService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate preference vector", res))
}

func (c *recommendationController) ShowProfile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.preferenceService.ShowProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}

func (c *recommendationController) GetRecommendations(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.GetRecommendationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendationService.GetRecommendations(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoPreferenceVector) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}
