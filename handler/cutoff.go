package handler

import (
	"campus_queue/constants"
	"campus_queue/database"
	"campus_queue/helper"
	"campus_queue/model"
	"campus_queue/utils"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func GetCutoffSchedules(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	filter := new(model.FilterCutoffInput)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INPUT, err)
	}

	db := database.DB.Model(&model.CutoffSchedule{})
	if filter.Campus != nil {
		db = db.Where("campus = ?", helper.NormalizeCampus(*filter.Campus))
	}
	if filter.IsCutoff != nil {
		db = db.Where("is_cutoff = ?", *filter.IsCutoff)
	}

	var total int64
	db.Count(&total)

	db = utils.ApplyPagination(db, filter.Limit, filter.Page)
	var schedules []model.CutoffSchedule
	db.Order("cutoff_time desc").Find(&schedules)

	response := &model.ResponseCustom{
		Rows:       schedules,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}
	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func CreateCutoffSchedule(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	sched := c.Locals("input").(model.CutoffSchedule)

	if err := database.DB.Create(&sched).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo lịch cutoff", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, sched)
}

func DeleteCutoffSchedule(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoUserFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not permission"))
	}

	id, _ := strconv.ParseUint(c.Params("id"), 10, 32)
	var sched model.CutoffSchedule
	if err := database.DB.First(&sched, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy lịch cutoff", err)
	}

	// Lịch đã fire rồi thì không xóa — giữ audit trail
	if sched.IsCutoff {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Lịch đã xử lý, không thể xóa", nil)
	}

	if err := database.DB.Delete(&sched).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xóa thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": sched.ID})
}
