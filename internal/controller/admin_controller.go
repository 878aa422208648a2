package controller

import (
	"writer-coach-be/internal/dto"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/pkg/serverutils"
	"writer-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	StageBroadcast(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	dialogService  service.IDialogService
	indexPublisher service.IIndexPublisherService
	logger         logger.ILogger
	adminUserID    string
}

func NewAdminController(
	dialogService service.IDialogService,
	indexPublisher service.IIndexPublisherService,
	log logger.ILogger,
	adminUserID string,
) IAdminController {
	return &adminController{
		dialogService:  dialogService,
		indexPublisher: indexPublisher,
		logger:         log,
		adminUserID:    adminUserID,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.AdminJwtMiddleware(c.adminUserID))
	h.Post("broadcast", c.StageBroadcast)
	h.Post("reindex", c.Reindex)
	h.Get("logs", c.GetLogs)
}

// StageBroadcast puts the staged text into the operator's own chat for
// confirmation; nothing is published until they answer yes there.
func (c *adminController) StageBroadcast(ctx *fiber.Ctx) error {
	if c.adminUserID == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "No admin user configured")
	}

	var req dto.StageBroadcastRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogService.StageBroadcast(ctx.Context(), c.adminUserID, req.Text)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Broadcast staged", res))
}

func (c *adminController) Reindex(ctx *fiber.Ctx) error {
	var req dto.ReindexRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	var err error
	if req.Category == "" {
		err = c.indexPublisher.PublishAll(ctx.Context(), req.Force)
	} else {
		err = c.indexPublisher.Publish(ctx.Context(), req.Category, req.Force)
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Reindex queued", nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Logs fetched", entries))
}
