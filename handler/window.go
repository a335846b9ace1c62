package handler

import (
	"campus_queue/constants"
	"campus_queue/database"
	"campus_queue/helper"
	"campus_queue/model"
	"campus_queue/utils"
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Thao tác tại cửa phục vụ — mọi chuyển trạng thái đều ghi cả hai bảng

func ReserveQueueEntry(c *fiber.Ctx) error {
	claim, isAdmin, isCashier := helper.GetInfoUserFromToken(c)
	if !isAdmin && !isCashier {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	entryId := c.Locals("inputId").(int)

	entry, err := helper.ReserveQueueEntry(database.DB, uint(entryId), claim.UserId)
	if err != nil {
		if errors.Is(err, helper.ErrInvalidTransition) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Vé không ở trạng thái nhận được", err)
		}
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
	}

	go BroadcastQueueUpdate()
	return utils.SuccessResponse(c, fiber.StatusOK, entry)
}

func HoldQueueEntry(c *fiber.Ctx) error {
	_, isAdmin, isCashier := helper.GetInfoUserFromToken(c)
	if !isAdmin && !isCashier {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	entryId := c.Locals("inputId").(int)

	entry, err := helper.HoldQueueEntry(database.DB, uint(entryId))
	if err != nil {
		if errors.Is(err, helper.ErrInvalidTransition) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ hold được vé đang xử lý", err)
		}
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
	}

	go BroadcastQueueUpdate()
	return utils.SuccessResponse(c, fiber.StatusOK, entry)
}

// ResumeQueueEntry: lấy lại vé đang ON_HOLD về cửa của user hiện tại
func ResumeQueueEntry(c *fiber.Ctx) error {
	claim, isAdmin, isCashier := helper.GetInfoUserFromToken(c)
	if !isAdmin && !isCashier {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	entryId := c.Locals("inputId").(int)

	var entry model.QueueEntry
	if err := database.DB.First(&entry, entryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
	}
	if entry.Status != model.QueueOnHold {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Vé không ở trạng thái ON_HOLD", helper.ErrInvalidTransition)
	}

	updated, err := helper.ReserveQueueEntry(database.DB, entry.ID, claim.UserId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	go BroadcastQueueUpdate()
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func CompleteQueueEntry(c *fiber.Ctx) error {
	return finishQueueEntry(c, model.QueueCompleted)
}

func CancelQueueEntry(c *fiber.Ctx) error {
	return finishQueueEntry(c, model.QueueCancelled)
}

func finishQueueEntry(c *fiber.Ctx, status string) error {
	_, isAdmin, isCashier := helper.GetInfoUserFromToken(c)
	if !isAdmin && !isCashier {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	entryId := c.Locals("inputId").(int)

	entry, err := helper.FinishQueueEntry(database.DB, uint(entryId), status)
	if err != nil {
		if errors.Is(err, helper.ErrInvalidTransition) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Vé đã ở trạng thái kết thúc", err)
		}
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
	}

	go BroadcastQueueUpdate()
	return utils.SuccessResponse(c, fiber.StatusOK, entry)
}
