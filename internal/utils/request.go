package utils

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	appErrors "github.com/JBcollo1/magnet-sub000/internal/errors"
	"github.com/go-playground/validator/v10"
)

func DecodeJSONBody(r *http.Request, dest any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("Failed to read request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)

		return appErrors.BadRequestError("Failed to read request body").WithError(err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		return appErrors.BadRequestError("Request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Warn("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)

		return appErrors.BadRequestError("Invalid JSON format").WithError(err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) validator.ValidationErrors {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validationErrs
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
	}

	return nil
}
