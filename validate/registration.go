package validate

import (
	"campus_queue/model"
	"campus_queue/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterStudentInput

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

// RegisterGuest dùng chung input cho cả guest lẫn new enrollee
func RegisterGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterGuestInput

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

func RecoverQR() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RecoverQRInput

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
