// file: internals/helpers/business_error.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

/* =========================================================
   Error bisnis dengan kode numerik stabil.
   Semua error dari engine fill & permission memakai tipe ini;
   selain itu dianggap error sistem (1000).
========================================================= */

type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

const (
	CodeSystemError            = 1000
	CodeParamError             = 1001
	CodePublishValidation      = 1002
	CodeUnauthorized           = 401
	CodeForbidden              = 403
	CodeNotFound               = 404
	CodeSurveyNotFound         = 4001
	CodeSurveyNotStarted       = 4002
	CodeSurveyEnded            = 4003
	CodeSurveyAlreadySubmitted = 4004
	CodeSubmitValidation       = 4005
	CodeSurveyIPLimit          = 4006
	CodeSurveyDeviceLimit      = 4007
)

var (
	ErrSystemError            = NewBusinessError(CodeSystemError, "Terjadi kesalahan sistem")
	ErrParamError             = NewBusinessError(CodeParamError, "Parameter tidak valid")
	ErrUnauthorized           = NewBusinessError(CodeUnauthorized, "Belum login atau sesi sudah berakhir")
	ErrForbidden              = NewBusinessError(CodeForbidden, "Tidak punya akses")
	ErrNotFound               = NewBusinessError(CodeNotFound, "Data tidak ditemukan")
	ErrSurveyNotFound         = NewBusinessError(CodeSurveyNotFound, "Survei sudah dihapus")
	ErrSurveyNotStarted       = NewBusinessError(CodeSurveyNotStarted, "Survei belum dimulai")
	ErrSurveyEnded            = NewBusinessError(CodeSurveyEnded, "Survei sudah ditutup")
	ErrSurveyAlreadySubmitted = NewBusinessError(CodeSurveyAlreadySubmitted, "Anda sudah mengisi survei ini")
	ErrSurveyIPLimit          = NewBusinessError(CodeSurveyIPLimit, "Batas pengisian dari alamat IP ini sudah tercapai")
	ErrSurveyDeviceLimit      = NewBusinessError(CodeSurveyDeviceLimit, "Batas pengisian dari perangkat ini sudah tercapai")
)

// SubmitValidationError: pelanggaran isi jawaban, menyebut pertanyaan yang
// bermasalah di pesannya.
func SubmitValidationError(message string) *BusinessError {
	return NewBusinessError(CodeSubmitValidation, message)
}

// PublishValidationError: survei belum layak dipublikasikan.
func PublishValidationError(message string) *BusinessError {
	return NewBusinessError(CodePublishValidation, message)
}

// JsonBusinessError menulis error bisnis ke envelope standar. Error non-bisnis
// (mis. kegagalan storage) dibungkus sebagai error sistem 1000.
func JsonBusinessError(c *fiber.Ctx, err error) error {
	var be *BusinessError
	if !errors.As(err, &be) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    CodeSystemError,
			"message": ErrSystemError.Message,
		})
	}
	status := fiber.StatusBadRequest
	switch be.Code {
	case CodeUnauthorized:
		status = fiber.StatusUnauthorized
	case CodeForbidden:
		status = fiber.StatusForbidden
	case CodeNotFound, CodeSurveyNotFound:
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    be.Code,
		"message": be.Message,
	})
}
