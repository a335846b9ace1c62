package handler

import (
	"campus_queue/constants"
	"campus_queue/database"
	"campus_queue/helper"
	"campus_queue/model"
	"campus_queue/utils"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestQueue: gate cutoff -> cấp số -> ghi vé vào cả hai bảng
func RequestQueue(c *fiber.Ctx) error {
	input := c.Locals("input").(model.QueueRequestInput)

	db := database.DB

	requester, err := helper.FindRequesterByQrId(db, input.QrId)
	if err != nil {
		if errors.Is(err, helper.ErrRequesterNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.QR_ID_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Campus đã qua giờ cutoff thì từ chối luôn
	if helper.IsCampusCutoff(requester.Campus) {
		campusName := requester.Campus
		if campusName == "" {
			campusName = "this campus"
		}
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.CAMPUS_CUTOFF_CLOSED,
			fmt.Errorf("queue requests for %s are closed due to cutoff", campusName))
	}

	// Student chỉ được một transaction đang mở
	if requester.Type == model.RequesterStudent {
		active, err := helper.HasActiveStudentEntry(db, requester.Id)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if active {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.ACTIVE_TRANSACTION_EXISTS,
				helper.ErrActiveTransactionExists)
		}
	}

	if err := helper.EnsurePriority(db, requester); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	entry, err := helper.CreateQueueEntry(db, *requester, input.TransactionType, input.TransactionPurpose, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo queue entry", err)
	}

	// Hook in phiếu + cập nhật bảng chờ: fire-and-forget, không chặn response
	go PublishQueueSlip(entry.QueueNumber, entry.TransactionType)
	go BroadcastQueueUpdate()

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"entry":   entry,
		"message": fmt.Sprintf("Transaction created: %s", entry.QueueNumber),
	})
}

// quickQueue tạo vé nhanh tại quầy cho requester cố định đã seed sẵn
func quickQueue(c *fiber.Ctx, qrId, transactionType, transactionPurpose string) error {
	db := database.DB

	requester, err := helper.FindRequesterByQrId(db, qrId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.QR_ID_NOT_FOUND, err)
	}

	if err := helper.EnsurePriority(db, requester); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	entry, err := helper.CreateQueueEntry(db, *requester, transactionType, transactionPurpose, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo queue entry", err)
	}

	go PublishQueueSlip(entry.QueueNumber, entry.TransactionType)
	go BroadcastQueueUpdate()

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"entry":   entry,
		"message": fmt.Sprintf("Quick queue created: %s", entry.QueueNumber),
	})
}

func NewEnrolleeQuickQueue(c *fiber.Ctx) error {
	return quickQueue(c, constants.WalkInEnrolleeQrId, "Downpayment", "Enrollment")
}

func GuestQuickQueue(c *fiber.Ctx) error {
	return quickQueue(c, constants.WalkInGuestQrId, "Guest Payment", "Tenants/Guest")
}

// PublicNextQueues: 5 vé ON_QUEUE chưa reserve gần nhất hôm nay theo từng
// priority class + toàn bộ vé ON_HOLD hôm nay. Đọc từ bảng legacy — màn hình
// chờ là consumer cũ.
func PublicNextQueues(c *fiber.Ctx) error {
	db := database.DB
	startOfDay, endOfDay := helper.DayWindow(time.Now())

	fetch := func(priority bool) []model.PublicQueueItem {
		var entries []model.LegacyQueueEntry
		db.Where("status = ? AND reserved_by_id IS NULL AND priority = ?", model.QueueOnQueue, priority).
			Where("created_at >= ? AND created_at < ?", startOfDay, endOfDay).
			Order("created_at asc").Limit(5).Find(&entries)

		items := make([]model.PublicQueueItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, model.PublicQueueItem{
				QueueNumber: e.QueueNumber,
				CreatedAt:   e.CreatedAt.In(helper.ManilaTZ).Format("15:04"),
			})
		}
		return items
	}

	var onHold []model.LegacyQueueEntry
	db.Where("status = ?", model.QueueOnHold).
		Where("created_at >= ? AND created_at < ?", startOfDay, endOfDay).
		Order("created_at asc").Find(&onHold)

	onHoldItems := make([]model.PublicQueueItem, 0, len(onHold))
	for _, e := range onHold {
		onHoldItems = append(onHoldItems, model.PublicQueueItem{
			QueueNumber: e.QueueNumber,
			CreatedAt:   e.CreatedAt.In(helper.ManilaTZ).Format("15:04"),
		})
	}

	return c.JSON(fiber.Map{
		"priority": fetch(true),
		"standard": fetch(false),
		"on_hold":  onHoldItems,
	})
}

// LiveQueueStatus: vé IN_PROCESS hôm nay do user đang online giữ, kèm số cửa
func LiveQueueStatus(c *fiber.Ctx) error {
	db := database.DB
	startOfDay, endOfDay := helper.DayWindow(time.Now())

	var entries []model.QueueEntry
	db.Preload("ReservedBy").
		Joins("JOIN users ON users.id = queue_entries.reserved_by_id").
		Where("users.is_online = ?", true).
		Where("queue_entries.status = ?", model.QueueInProcess).
		Where("queue_entries.updated_at >= ? AND queue_entries.updated_at < ?", startOfDay, endOfDay).
		Find(&entries)

	result := make([]model.LiveQueueItem, 0, len(entries))
	for _, e := range entries {
		var window *uint
		if e.ReservedBy != nil {
			window = e.ReservedBy.WindowNum
		}
		result = append(result, model.LiveQueueItem{
			Window:      window,
			QueueNumber: e.QueueNumber,
			Status:      e.Status,
		})
	}

	return c.JSON(result)
}

// GetQueueEntries: danh sách vé cho admin, có filter + phân trang
func GetQueueEntries(c *fiber.Ctx) error {
	_, isAdmin, isCashier := helper.GetInfoUserFromToken(c)
	if !isAdmin && !isCashier {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filterInput := new(model.FilterQueueInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.QueueEntry{})

	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.Priority != nil {
		condition = condition.Where("priority = ?", *filterInput.Priority)
	}
	if filterInput.Campus != "" {
		condition = condition.Where("campus = ?", helper.NormalizeCampus(filterInput.Campus))
	}
	if filterInput.StartDate != nil {
		condition = condition.Where("created_at >= ?", filterInput.StartDate)
	}
	if filterInput.EndDate != nil {
		condition = condition.Where("created_at <= ?", filterInput.EndDate)
	}

	var totalCount int64
	condition.Count(&totalCount)

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)
	var entries []model.QueueEntry
	condition.Order("created_at desc").Find(&entries)

	response := &model.ResponseCustom{
		Rows:       entries,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: totalCount,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}
