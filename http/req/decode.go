package req

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/waypoint"
)

// queryParamDecoder decodes url.Values into structs using "schema" struct tags.
// Unknown keys, such as access_token, are ignored.
type queryParamDecoder struct {
	dec *schema.Decoder
}

func newQueryParamDecoder() queryParamDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return queryParamDecoder{dec: dec}
}

// decode fills structPtr from params.
// Values that cannot convert into their field come back as ValidationErrors.
func (d queryParamDecoder) decode(structPtr any, params url.Values) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a pointer to a struct", waypoint.ErrBadAny, structPtr)
	}

	err := d.dec.Decode(structPtr, params)
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", waypoint.ErrBadFormat, err)
	}

	var errs ValidationErrors
	for key, e := range multi {
		var conv schema.ConversionError
		if !errors.As(e, &conv) {
			return fmt.Errorf("%w: query param %s: %s", waypoint.ErrBadFormat, key, e)
		}

		errs = append(errs, ValidationError{Field: conv.Key, Got: params.Get(conv.Key), Rule: "must be " + conv.Type.String()})
	}

	slices.SortFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })

	return errs
}
