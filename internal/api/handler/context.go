package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmate/taskmate-api/internal/api/middleware"
	"github.com/taskmate/taskmate-api/internal/core/domain"
)

// principal returns the caller resolved by the Authenticate middleware.
func principal(c echo.Context) domain.Principal {
	return middleware.PrincipalFrom(c)
}

// taskID parses the :id path parameter. Anything that is not a positive
// integer cannot name a task, so it is reported as not found.
func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTaskNotFound
	}
	return id, nil
}

// taskFields holds the task attributes a JSON body carried. A nil field was
// absent; a JSON null counts as present and empty, so it fails the same
// checks an empty string would.
type taskFields struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// bindTaskFields decodes a JSON object body into taskFields. An empty body
// yields no fields.
func bindTaskFields(c echo.Context) (taskFields, error) {
	var raw map[string]json.RawMessage
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return taskFields{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var f taskFields
	for key, dst := range map[string]**string{
		"title":       &f.Title,
		"description": &f.Description,
		"status":      &f.Status,
		"priority":    &f.Priority,
	} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		s, err := optionalString(value)
		if err != nil {
			return taskFields{}, echo.NewHTTPError(http.StatusBadRequest, key+" must be a string")
		}
		*dst = &s
	}
	return f, nil
}

func optionalString(value json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", err
	}
	return s, nil
}
