package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-form-keeper/internal/service"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

// answersPart is the multipart value that may carry all answers as one JSON object.
const answersPart = "answers"

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// parseListQuery reads ?status&page&limit&sortBy&order. Missing values are
// left zero for the service to default.
func parseListQuery(r *http.Request) (models.ListQuery, error) {
	values := r.URL.Query()
	query := models.ListQuery{
		Status: values.Get("status"),
		SortBy: values.Get("sortBy"),
		Order:  strings.ToLower(values.Get("order")),
	}

	var err error
	if query.Page, err = positiveInt(values.Get("page")); err != nil {
		return models.ListQuery{}, fmt.Errorf("%w: page: %w", ErrInvalidQuery, err)
	}
	if query.Limit, err = positiveInt(values.Get("limit")); err != nil {
		return models.ListQuery{}, fmt.Errorf("%w: limit: %w", ErrInvalidQuery, err)
	}
	if query.Order != "" && query.Order != models.OrderAsc && query.Order != models.OrderDesc {
		return models.ListQuery{}, fmt.Errorf("%w: order must be %q or %q", ErrInvalidQuery, models.OrderAsc, models.OrderDesc)
	}

	return query, nil
}

func positiveInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && strings.HasPrefix(mediaType, "multipart/")
}

// submitBody is the JSON submission payload.
type submitBody struct {
	Answers map[string]any `json:"answers"`
}

// readSubmission builds a SubmitRequest from a JSON or multipart body. The
// returned closer releases the opened upload files and must be called once
// the submission is handled.
func (h *Handler) readSubmission(r *http.Request, formID string) (service.SubmitRequest, func(), error) {
	request := service.SubmitRequest{
		FormID: formID,
		Metadata: models.SubmissionMetadata{
			IPAddress: utils.ClientIP(r),
			UserAgent: r.UserAgent(),
		},
	}

	if !isMultipart(r) {
		var body submitBody
		if err := decodeJSON(r, &body); err != nil {
			return service.SubmitRequest{}, func() {}, err
		}
		request.Answers = sanitizeAnswers(body.Answers)
		return request, func() {}, nil
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return service.SubmitRequest{}, func() {}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
	}

	answers, err := multipartAnswers(r.MultipartForm)
	if err != nil {
		return service.SubmitRequest{}, func() {}, err
	}
	request.Answers = sanitizeAnswers(answers)

	uploads, closer, err := multipartUploads(r.MultipartForm)
	if err != nil {
		return service.SubmitRequest{}, func() {}, err
	}
	request.Uploads = uploads

	return request, func() {
		closer()
		r.MultipartForm.RemoveAll()
	}, nil
}

// multipartAnswers reads plain form values. An "answers" part holding a JSON
// object is decoded first; other values are added on top of it, repeated
// keys becoming lists.
func multipartAnswers(form *multipart.Form) (map[string]any, error) {
	answers := map[string]any{}

	if raw := form.Value[answersPart]; len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw[0]), &answers); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
		}
	}

	for key, values := range form.Value {
		if key == answersPart || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			answers[key] = values[0]
			continue
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = v
		}
		answers[key] = list
	}

	return answers, nil
}

func multipartUploads(form *multipart.Form) ([]models.FileUpload, func(), error) {
	var (
		uploads []models.FileUpload
		opened  []io.Closer
	)
	closeAll := func() {
		for _, c := range opened {
			c.Close()
		}
	}

	for fieldName, headers := range form.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				closeAll()
				return nil, func() {}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
			}
			opened = append(opened, file)

			uploads = append(uploads, models.FileUpload{
				FieldName:    fieldName,
				OriginalName: header.Filename,
				MimeType:     header.Header.Get("Content-Type"),
				Size:         header.Size,
				Body:         file,
			})
		}
	}

	return uploads, closeAll, nil
}

// sanitizeAnswers strips HTML from every string answer.
func sanitizeAnswers(answers map[string]any) map[string]any {
	if answers == nil {
		return map[string]any{}
	}
	clean, _ := utils.SanitizeValue(answers).(map[string]any)
	return clean
}
