package quadrant

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their json names so messages match the wire format
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the period counts, then every field constraint
func (e EquityInput) Validate() error {
	if len(e.Historical) != len(HistoricalSeries{}) {
		return fmt.Errorf("%w: historical series needs %d periods, got %d", ErrWrongPeriodCount, len(HistoricalSeries{}), len(e.Historical))
	}
	if len(e.Projected) != len(ProjectedSeries{}) {
		return fmt.Errorf("%w: projected series needs %d periods, got %d", ErrWrongPeriodCount, len(ProjectedSeries{}), len(e.Projected))
	}
	return structErrors(validate.Struct(e))
}

// Validate checks the score range and that both prices are positive
func (r ClassifyRequest) Validate() error {
	return structErrors(validate.Struct(r))
}

// Validate checks the ticker, scores and prices
func (s StockEntry) Validate() error {
	return structErrors(validate.Struct(s))
}

type scorePair struct {
	CompanyScore float64 `json:"company_score" validate:"gte=1,lte=4"`
	StockScore   float64 `json:"stock_score" validate:"gte=1,lte=4"`
}

// ValidateScores checks a company and stock score pair without prices
func ValidateScores(companyScore, stockScore float64) error {
	return structErrors(validate.Struct(scorePair{CompanyScore: companyScore, StockScore: stockScore}))
}

// structErrors sorts validator failures into the package's sentinel errors
func structErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var scores, financials, other []string
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		msg := fmt.Sprintf("%s must be %s", path, constraint(fe))
		switch {
		case strings.HasPrefix(path, "vcs.") || strings.HasSuffix(path, "_score"):
			scores = append(scores, msg)
		case strings.HasPrefix(path, "company.") || strings.HasSuffix(path, "ticker"):
			other = append(other, msg)
		default:
			financials = append(financials, msg)
		}
	}

	var errs []error
	if len(scores) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrScoreOutOfRange, strings.Join(scores, "; ")))
	}
	if len(financials) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidFinancialInput, strings.Join(financials, "; ")))
	}
	if len(other) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(other, "; ")))
	}
	return errors.Join(errs...)
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "set"
	case "gt":
		return "> " + fe.Param()
	case "gte", "min":
		return ">= " + fe.Param()
	case "lt":
		return "< " + fe.Param()
	case "lte", "max":
		return "<= " + fe.Param()
	case "ne":
		return "!= " + fe.Param()
	}
	return fmt.Sprintf("%s %s", fe.Tag(), fe.Param())
}
