package controller

import (
	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/pkg/logger"
	"tg-assist-be/internal/pkg/serverutils"
	"tg-assist-be/internal/service"
	"tg-assist-be/pkg/dedupe"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Handle(ctx *fiber.Ctx) error
}

type webhookController struct {
	conversation service.IConversationService
	guard        *dedupe.Guard
	secretToken  string
	logger       logger.ILogger
}

func NewWebhookController(
	conversation service.IConversationService,
	guard *dedupe.Guard,
	secretToken string,
	log logger.ILogger,
) IWebhookController {
	return &webhookController{
		conversation: conversation,
		guard:        guard,
		secretToken:  secretToken,
		logger:       log,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("", c.Handle)
}

// Handle processes one Telegram webhook delivery. Telegram retries any
// non-200 response, so malformed updates are logged and acknowledged
// rather than rejected.
func (c *webhookController) Handle(ctx *fiber.Ctx) error {
	if c.secretToken != "" && ctx.Get("X-Telegram-Bot-Api-Secret-Token") != c.secretToken {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse("Invalid secret token"))
	}

	var update dto.TelegramUpdate
	if err := ctx.BodyParser(&update); err != nil {
		c.logger.Warn("webhook", "malformed update payload", map[string]interface{}{"error": err.Error()})
		return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
	}

	event := update.ToInboundEvent()
	if event == nil {
		// Update kinds the bot does not handle; nothing to reply to
		return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
	}

	if !c.guard.FirstDelivery(ctx.Context(), event.UpdateID) {
		c.logger.Info("webhook", "duplicate delivery suppressed", map[string]interface{}{
			"update_id": event.UpdateID,
			"chat_id":   event.ChatID,
		})
		return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
	}

	if err := c.conversation.HandleEvent(ctx.Context(), event); err != nil {
		c.logger.Error("webhook", "event handling failed", map[string]interface{}{
			"update_id": event.UpdateID,
			"chat_id":   event.ChatID,
			"error":     err.Error(),
		})
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
}
