// file: internals/features/fill/controller/fill_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "surveyku_backend/internals/features/fill/dto"
	service "surveyku_backend/internals/features/fill/service"
	helper "surveyku_backend/internals/helpers"
)

type FillController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.FillService
}

func NewFillController(db *gorm.DB) *FillController {
	return &FillController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewFillService(db),
	}
}

/* =========================================================
   Helper parsing request
========================================================= */

func parseSurveyID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("survey_id"))
	if err != nil {
		return uuid.Nil, helper.ErrParamError
	}
	return id, nil
}

// resolveIdentity: user dari token (boleh kosong), device dari body,
// query ?device_id=, atau header X-Device-Id.
func (ctl *FillController) resolveIdentity(c *fiber.Ctx, bodyDeviceID *string) service.Identity {
	identity := service.Identity{UserID: helper.GetOptionalUserID(c)}
	deviceID := ""
	if bodyDeviceID != nil {
		deviceID = strings.TrimSpace(*bodyDeviceID)
	}
	if deviceID == "" {
		deviceID = strings.TrimSpace(c.Query("device_id"))
	}
	if deviceID == "" {
		deviceID = strings.TrimSpace(c.Get("X-Device-Id"))
	}
	if deviceID != "" {
		identity.DeviceID = &deviceID
	}
	return identity
}

func isPreview(c *fiber.Ctx) bool {
	v := strings.ToLower(c.Query("preview"))
	return v == "1" || v == "true"
}

/* =========================================================
   Handler
========================================================= */

// GetFillSurvey
// GET /public/fill/surveys/:survey_id
// Metadata survei + pertanyaan untuk halaman pengisian. ?preview=1 untuk
// pratinjau creator (lolos gate status & waktu).
func (ctl *FillController) GetFillSurvey(c *fiber.Ctx) error {
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	identity := ctl.resolveIdentity(c, nil)

	var vo *dto.FillSurveyVO
	if isPreview(c) {
		vo, err = ctl.Service.GetFillMetadataForPreview(c.Context(), surveyID, identity.UserID)
	} else {
		vo, err = ctl.Service.GetFillMetadata(c.Context(), surveyID, identity)
	}
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil survei", vo)
}

// SaveDraft
// PUT /public/fill/surveys/:survey_id/draft
// Simpan jawaban sementara (autosave). Selalu 200 selama survei ada.
func (ctl *FillController) SaveDraft(c *fiber.Ctx) error {
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.SubmitRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	identity := ctl.resolveIdentity(c, req.DeviceID)

	if err := ctl.Service.SaveDraft(c.Context(), surveyID, identity, &req); err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Draft tersimpan", nil)
}

// GetDraft
// GET /public/fill/surveys/:survey_id/draft
// Draft milik identitas ini, data null bila belum ada.
func (ctl *FillController) GetDraft(c *fiber.Ctx) error {
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	identity := ctl.resolveIdentity(c, nil)

	vo, err := ctl.Service.GetDraft(c.Context(), surveyID, identity)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	return helper.JsonOK(c, "Berhasil mengambil draft", vo)
}

// Submit
// POST /public/fill/surveys/:survey_id/submit
// Finalkan jawaban. Gate + rate limit + validasi isi dievaluasi ulang
// di dalam transaksi.
func (ctl *FillController) Submit(c *fiber.Ctx) error {
	surveyID, err := parseSurveyID(c)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	var req dto.SubmitRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonBusinessError(c, helper.ErrParamError)
	}
	identity := ctl.resolveIdentity(c, req.DeviceID)
	clientIP := helper.GetClientIP(c)

	result, err := ctl.Service.Submit(c.Context(), surveyID, identity, clientIP, &req)
	if err != nil {
		return helper.JsonBusinessError(c, err)
	}
	log.Printf("[FILL] submit survey=%s response=%s", surveyID, result.ResponseID)
	return helper.JsonOK(c, "Jawaban terkirim", result)
}
