package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Minimal internal validator to avoid external dependency. Supports:
// - required (non-empty string, or positive number)
// - titleok (letters, numbers, common punctuation, 1-191 chars)
// - positive (float/int field > 0)
// - maxlen=N (string at most N chars)

var reTitleOK = regexp.MustCompile(`^[\pL\pN .,:;!?&()/'"-]{1,191}$`)

// ValidateStruct inspects struct tags `validate:"..."` and returns the
// first error encountered.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		var nval float64
		isNum := false
		switch fv.Kind() {
		case reflect.Float32, reflect.Float64:
			nval = fv.Float()
			isNum = true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			nval = float64(fv.Int())
			isNum = true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			nval = float64(fv.Uint())
			isNum = true
		}

		for _, p := range strings.Split(tag, ",") {
			p = strings.TrimSpace(p)
			switch {
			case p == "required":
				if isNum {
					if nval == 0 {
						return errors.New(field.Name + " is required")
					}
				} else if strings.TrimSpace(sval) == "" {
					return errors.New(field.Name + " is required")
				}
			case p == "titleok":
				if sval != "" && !reTitleOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters")
				}
			case p == "positive":
				if !isNum || nval <= 0 {
					return errors.New(field.Name + " must be positive")
				}
			case strings.HasPrefix(p, "maxlen="):
				n, err := strconv.Atoi(strings.TrimPrefix(p, "maxlen="))
				if err == nil && len(sval) > n {
					return errors.New(field.Name + " is too long")
				}
			}
		}
	}
	return nil
}
