package validate

import (
	"campus_queue/model"
	"campus_queue/utils"

	"github.com/gofiber/fiber/v2"
)

func QueueRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.QueueRequestInput

		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
