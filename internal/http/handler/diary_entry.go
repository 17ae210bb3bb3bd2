package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"diaryapi/internal/service"
)

var (
	errUnsupportedMediaType = errors.New("request body must be application/json")
	errMalformedBody        = errors.New("malformed JSON body")
)

// entryID parses the :id route param. Anything that is not a positive integer cannot name an entry.
func entryID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeInput reads a JSON object body. An empty body is an empty object; a JSON null is no data at all.
func decodeInput(c *fiber.Ctx) (service.DiaryEntryInput, error) {
	in := service.DiaryEntryInput{}
	body := c.Body()
	if len(body) == 0 {
		return in, nil
	}
	if !c.Is("json") {
		return nil, errUnsupportedMediaType
	}

	if err := c.App().Config().JSONDecoder(body, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "" {
			return nil, &service.ValidationError{Fields: map[string][]string{
				"non_field_errors": {"Invalid data. Expected a dictionary, but got " + typeErr.Value + "."},
			}}
		}
		return nil, errMalformedBody
	}
	if in == nil {
		return nil, &service.ValidationError{Fields: map[string][]string{
			"non_field_errors": {"No data provided"},
		}}
	}
	return in, nil
}

// writeServiceError maps service and decoding errors onto HTTP responses.
func writeServiceError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "diary entry not found")
	case errors.Is(err, errMalformedBody):
		return writeError(c, fiber.StatusBadRequest, "PARSE_ERROR", err.Error())
	case errors.Is(err, errUnsupportedMediaType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", err.Error())
	default:
		return writeInternal(c, log, err)
	}
}

// ListDiaryEntries godoc
// @Summary List diary entries
// @Description All entries, newest upload first.
// @Tags dairyentry
// @Produce json
// @Success 200 {array} model.DiaryEntry
// @Router /dairyentry/ [get]
func ListDiaryEntries(svc service.DiaryEntryService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeInternal(c, log, err)
		}
		return c.JSON(items)
	}
}

// CreateDiaryEntry godoc
// @Summary Create a diary entry
// @Tags dairyentry
// @Accept json
// @Produce json
// @Param entry body DiaryEntryRequest true "Entry fields"
// @Success 201 {object} model.DiaryEntry
// @Failure 400 {object} map[string][]string
// @Router /dairyentry/ [post]
func CreateDiaryEntry(svc service.DiaryEntryService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := decodeInput(c)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		entry, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// GetDiaryEntry godoc
// @Summary Retrieve a diary entry
// @Tags dairyentry
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} model.DiaryEntry
// @Failure 404 {object} errorPayload
// @Router /dairyentry/{id}/ [get]
func GetDiaryEntry(svc service.DiaryEntryService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := entryID(c)
		if !ok {
			return writeServiceError(c, log, service.ErrNotFound)
		}
		entry, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(entry)
	}
}

// UpdateDiaryEntry godoc
// @Summary Update a diary entry
// @Description PUT replaces every writable field; PATCH changes only the supplied ones. upload_date is read-only.
// @Tags dairyentry
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param entry body DiaryEntryRequest true "Entry fields"
// @Success 200 {object} model.DiaryEntry
// @Failure 400 {object} map[string][]string
// @Failure 404 {object} errorPayload
// @Router /dairyentry/{id}/ [put]
// @Router /dairyentry/{id}/ [patch]
func UpdateDiaryEntry(svc service.DiaryEntryService, log *zap.Logger, partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := decodeInput(c)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		// An unusable id becomes 0, which the service reports as not found after validating the body.
		id, _ := entryID(c)
		entry, err := svc.Update(c.UserContext(), id, in, partial)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(entry)
	}
}

// DeleteDiaryEntry godoc
// @Summary Delete a diary entry
// @Tags dairyentry
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /dairyentry/{id}/ [delete]
func DeleteDiaryEntry(svc service.DiaryEntryService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := entryID(c)
		if !ok {
			return writeServiceError(c, log, service.ErrNotFound)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DiaryEntryRequest documents the writable fields of a diary entry.
type DiaryEntryRequest struct {
	Title   string `json:"title" example:"Day 1"`
	Content string `json:"content" example:"Went hiking"`
	Mood    string `json:"mood" example:"happy"`
	Date    string `json:"date" example:"2024-05-01"`
}
