package controller

import (
	"writer-coach-be/internal/dto"
	"writer-coach-be/internal/pkg/serverutils"
	"writer-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	HandleMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	dialogService service.IDialogService
}

func NewChatController(dialogService service.IDialogService) IChatController {
	return &chatController{
		dialogService: dialogService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("message", c.HandleMessage)
}

// HandleMessage is the single entry point for the transport gateway: every
// user message, command or extracted document lands here.
func (c *chatController) HandleMessage(ctx *fiber.Ctx) error {
	var req dto.HandleMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogService.HandleMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message handled", res))
}
