package validate

import (
	"campus_queue/helper"
	"campus_queue/model"
	"campus_queue/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

func CreateCutoffSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateCutoffScheduleInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		cutoffTime, err := time.Parse(time.RFC3339, input.CutoffTime)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "cutoffTime phải theo RFC3339", err)
		}

		sched := model.CutoffSchedule{
			Campus:     helper.NormalizeCampus(input.Campus),
			CutoffTime: cutoffTime.UTC(),
			IsCutoff:   false,
		}

		c.Locals("input", sched)
		return c.Next()
	}
}
