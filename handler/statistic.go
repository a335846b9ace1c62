package handler

import (
	"campus_queue/constants"
	"campus_queue/database"
	"campus_queue/helper"
	"campus_queue/model"
	"campus_queue/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetQueueStatistics: thống kê hàng đợi hôm nay cho admin
func GetQueueStatistics(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	db := database.DB
	startOfDay, endOfDay := helper.DayWindow(time.Now())

	countWith := func(conds string, args ...any) int64 {
		var count int64
		db.Model(&model.QueueEntry{}).
			Where("created_at >= ? AND created_at < ?", startOfDay, endOfDay).
			Where(conds, args...).
			Count(&count)
		return count
	}

	var total int64
	db.Model(&model.QueueEntry{}).
		Where("created_at >= ? AND created_at < ?", startOfDay, endOfDay).
		Count(&total)

	stats := fiber.Map{
		"total":     total,
		"onQueue":   countWith("status = ?", model.QueueOnQueue),
		"inProcess": countWith("status = ?", model.QueueInProcess),
		"onHold":    countWith("status = ?", model.QueueOnHold),
		"completed": countWith("status = ?", model.QueueCompleted),
		"cancelled": countWith("status = ?", model.QueueCancelled),
		"cutOff":    countWith("status = ?", model.QueueCutOff),
		"priority":  countWith("priority = ?", true),
		"standard":  countWith("priority = ?", false),
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
