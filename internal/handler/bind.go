package handler

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// RegisterValidatorTagNames makes validation errors report JSON field names
// instead of Go struct field names.
func RegisterValidatorTagNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes and validates the request body into req. On failure it
// writes a 400 response and returns false; the handler must stop there.
func bindJSON(c *gin.Context, req any) bool {
	switch err := c.ShouldBindJSON(req).(type) {
	case nil:
		return true
	case validator.ValidationErrors:
		fields := make(map[string][]string)
		for _, ferr := range err {
			name := fieldPath(ferr)
			fields[name] = append(fields[name], ferr.Error())
		}
		c.JSON(http.StatusBadRequest, fields)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	}
	return false
}

// fieldPath drops the root struct name from the error namespace, so
// "updateDriverRequest.query.message" becomes "query.message".
func fieldPath(ferr validator.FieldError) string {
	if _, rest, ok := strings.Cut(ferr.Namespace(), "."); ok {
		return rest
	}
	return ferr.Field()
}
