package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// StringToDate is a DecodeHookFunc that converts a YYYY-MM-DD string to a
// UTC time.Time during koanf unmarshalling.
func StringToDate() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return nil, fmt.Errorf("empty date string")
		}
		d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", s, err)
		}
		return d, nil
	}
}
