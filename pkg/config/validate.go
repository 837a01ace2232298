package config

import (
	"fmt"
	"slices"
	"sync"

	cerrors "cloudeng.io/errors"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/goliatone/go-dateinput/pkg/dateinput"
)

// ErrBoundsOrder is reported when the minimum bound is after the maximum.
var ErrBoundsOrder = errors.New("config: widget min_date is after max_date")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("datebound", dateBoundValidator)
		_ = validate.RegisterValidation("errorkind", errorKindValidator)
	})
	return validate
}

func dateBoundValidator(fl validator.FieldLevel) bool {
	_, err := dateinput.ParseBound(fl.Field().String())
	return err == nil
}

func errorKindValidator(fl validator.FieldLevel) bool {
	return slices.Contains(dateinput.Kinds, dateinput.Kind(fl.Field().String()))
}

// Validate reports every problem found in c, not only the first.
func (c *Config) Validate() error {
	errs := &cerrors.M{}

	if err := structValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs.Append(fmt.Errorf("config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			errs.Append(errors.WithStack(err))
		}
	}

	if c.Widget.MinDate != "" && c.Widget.MaxDate != "" {
		minDate, minErr := dateinput.ParseBound(c.Widget.MinDate)
		maxDate, maxErr := dateinput.ParseBound(c.Widget.MaxDate)
		if minErr == nil && maxErr == nil && dateinput.CompareDates(minDate, maxDate) > 0 {
			errs.Append(ErrBoundsOrder)
		}
	}

	return errs.Err()
}
