package handler

import (
	"bytes"
	"campus_queue/config"
	"campus_queue/database"
	"campus_queue/helper"
	"campus_queue/model"
	"campus_queue/utils"
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jordan-wright/email"
)

// Mail mọi thông báo đăng ký guest/enrollee về bàn tiếp nhận
var notifyEmail = config.Config("NOTIFY_EMAIL")

// Mailer xoay vòng account cho QR recovery — main gán khi khởi động
var qrMailer *utils.RollingSender

func InitMailer(sender *utils.RollingSender) {
	qrMailer = sender
}

func RegisterStudent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterStudentInput)

	student := model.Student{
		QrId:      uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		StudentNo: input.StudentNo,
		Campus:    helper.NormalizeCampus(input.Campus),
		Priority:  input.Priority,
	}

	if err := database.DB.Create(&student).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đăng ký student", err)
	}

	qrBytes, err := utils.GenerateQRCode(student.QrId, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo QR", err)
	}

	// Upload bản QR hosted lên cloudinary (async, fail thì thôi)
	go func(id uint, qrId string, png []byte) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		url, err := helper.UploadQRImage(ctx, qrId, png)
		if err != nil {
			log.Printf("Lỗi upload QR cho student %d: %v", id, err)
			return
		}
		database.DB.Model(&model.Student{}).Where("id = ?", id).Update("qr_img_url", url)
	}(student.ID, student.QrId, qrBytes)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"student": student,
		"message": "Student registered successfully",
	})
}

func RegisterGuest(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterGuestInput)

	guest := model.Guest{
		QrId:     uuid.New().String(),
		Name:     input.Name,
		Email:    input.Email,
		Campus:   helper.NormalizeCampus(input.Campus),
		Priority: input.Priority,
	}

	if err := database.DB.Create(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đăng ký guest", err)
	}

	go sendQrNotification("New Guest Registered", guest.QrId, "guest_qr.png")

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"guest":   guest,
		"message": "Guest registered. QR code sent via email.",
	})
}

func RegisterNewEnrollee(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RegisterGuestInput)

	enrollee := model.NewEnrollee{
		QrId:     uuid.New().String(),
		Name:     input.Name,
		Email:    input.Email,
		Campus:   helper.NormalizeCampus(input.Campus),
		Priority: input.Priority,
	}

	if err := database.DB.Create(&enrollee).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đăng ký enrollee", err)
	}

	go sendQrNotification("New Enrollee Registered", enrollee.QrId, "enrollee_qr.png")

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"enrollee": enrollee,
		"message":  "New enrollee registered. QR code sent via email.",
	})
}

// sendQrNotification gửi QR về bàn tiếp nhận (fire-and-forget)
func sendQrNotification(subject, qrId, filename string) {
	qrBytes, err := utils.GenerateQRCode(qrId, 256)
	if err != nil {
		log.Printf("Lỗi tạo QR notification: %v", err)
		return
	}

	e := email.NewEmail()
	e.From = config.Config("SMTP_FROM")
	e.To = []string{notifyEmail}
	e.Subject = subject
	e.Text = []byte(fmt.Sprintf("QR ID: %s", qrId))
	e.Attach(bytes.NewReader(qrBytes), filename, "image/png")

	addr := config.Config("SMTP_HOST") + ":" + config.Config("SMTP_PORT")
	auth := smtp.PlainAuth("", config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"), config.Config("SMTP_HOST"))
	if err := e.Send(addr, auth); err != nil {
		log.Printf("Lỗi gửi QR notification: %v", err)
	}
}

// RecoverQR gửi lại QR cho student theo email, dùng rolling SMTP sender
func RecoverQR(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RecoverQRInput)

	var student model.Student
	if err := database.DB.Where("email = ?", input.Email).First(&student).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No student found with this email", err)
	}

	qrBytes, err := utils.GenerateQRCode(student.QrId, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo QR", err)
	}

	if qrMailer == nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Mailer chưa được cấu hình", nil)
	}

	subject := "Your Student QR Code (Recovery)"
	body := fmt.Sprintf("Hi %s,\n\nHere is a copy of your student QR code.", student.Name)
	err = qrMailer.Send(subject, body, []string{student.Email}, []utils.Attachment{
		{Filename: "qr.png", Data: qrBytes, MimeType: "image/png"},
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to send QR code", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Your QR code has been sent to your email.",
	})
}
