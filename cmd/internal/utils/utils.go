package utils

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// EpochAt converts a "YYYY-MM-DD" date and an "HH:MM" clock into UTC
// epoch milliseconds.
func EpochAt(date, clock string) (int64, error) {
	t, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return 0, err
	}
	return t.UTC().UnixMilli(), nil
}

// UserIDFromCtx reads the caller identity from the X-User-ID header.
// Authentication proper is owned by an upstream gateway; this layer only
// needs to know which calendar to operate on.
func UserIDFromCtx(c echo.Context) (int64, error) {
	raw := strings.TrimSpace(c.Request().Header.Get("X-User-ID"))
	return strconv.ParseInt(raw, 10, 64)
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
