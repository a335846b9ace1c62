package helper

import (
	"bytes"
	"context"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

// UploadQRImage đẩy ảnh QR của student lên cloudinary, trả về secure URL
func UploadQRImage(ctx context.Context, qrId string, pngBytes []byte) (string, error) {
	cld := InitCloudinary()

	resp, err := cld.Upload.Upload(ctx, bytes.NewReader(pngBytes), uploader.UploadParams{
		PublicID: "qr/" + qrId,
		Folder:   "campus_queue",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
