package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"netivim/entity"
	"netivim/internal/lib/sl"
)

const (
	MsgInvalid          = "יש למלא את כל שדות החובה."
	MsgLocationNotFound = "לא הצלחנו למצוא את המיקום. אנא נסה כתובת מדויקת יותר."
	MsgGeocodeFailed    = "שגיאה בחיפוש המיקום."

	country = "Israel"
)

var (
	ErrInvalid          = errors.New("invalid intake fields")
	ErrLocationNotFound = errors.New("location not found")
	ErrGeocode          = errors.New("geocoding failed")
)

// Outcomes reported to the Observer.
const (
	OutcomeCreated  = "created"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "geocode_error"
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

type Geocoder interface {
	Search(ctx context.Context, query string) ([]entity.Location, error)
}

type Store interface {
	Add(ctx context.Context, draft entity.SchoolDraft) entity.School
}

type RegionResolver interface {
	Region(loc entity.Location) string
}

// Listener is told about every committed school.
type Listener interface {
	SchoolAdded(school entity.School)
}

type Observer interface {
	IntakeOutcome(outcome string)
}

// Fields is what the intake form submits.
type Fields struct {
	Name       string `json:"name" validate:"required"`
	City       string `json:"city" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Grades     string `json:"grades" validate:"required"`
	Type       string `json:"type" validate:"omitempty,school_type"`
	EstYear    int    `json:"estYear" validate:"omitempty,gte=1800,lte=2100"`
	OrigStream string `json:"origStream"`
	ConvYear   int    `json:"convYear" validate:"omitempty,gte=1800,lte=2100"`
	History    string `json:"history"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Website    string `json:"website" validate:"omitempty,url"`
}

func (f Fields) trimmed() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.Address = strings.TrimSpace(f.Address)
	f.Grades = strings.TrimSpace(f.Grades)
	f.Type = strings.TrimSpace(f.Type)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Website = strings.TrimSpace(f.Website)
	return f
}

// Query is the composite address sent to the geocoder.
func (f Fields) Query() string {
	return fmt.Sprintf("%s, %s, %s", f.Address, f.City, country)
}

type Form struct {
	geocoder  Geocoder
	store     Store
	regions   RegionResolver
	validate  *validator.Validate
	listeners []Listener
	observer  Observer
	log       *slog.Logger
}

func New(geocoder Geocoder, store Store, regions RegionResolver, log *slog.Logger) *Form {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("school_type", func(fl validator.FieldLevel) bool {
		return entity.SchoolType(fl.Field().String()).Valid()
	})
	return &Form{
		geocoder: geocoder,
		store:    store,
		regions:  regions,
		validate: v,
		log:      log.With(sl.Module("intake")),
	}
}

func (f *Form) AddListener(l Listener) {
	f.listeners = append(f.listeners, l)
}

func (f *Form) SetObserver(o Observer) {
	f.observer = o
}

// Validate checks required fields without contacting the geocoder.
func (f *Form) Validate(fields Fields) error {
	fields = fields.trimmed()
	err := f.validate.Struct(fields)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			names = append(names, fe.Field())
		}
		return &ValidationError{Fields: names}
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}

// Submit validates the fields, resolves the address, and commits a new
// school. Nothing is stored unless a location was found.
func (f *Form) Submit(ctx context.Context, fields Fields) (entity.School, error) {
	fields = fields.trimmed()
	if err := f.Validate(fields); err != nil {
		f.report(OutcomeInvalid)
		return entity.School{}, err
	}

	schoolType := entity.DefaultSchoolType
	if fields.Type != "" {
		schoolType = entity.SchoolType(fields.Type)
	}

	query := fields.Query()
	logger := f.log.With(slog.String("query", query))

	locations, err := f.geocoder.Search(ctx, query)
	if err != nil {
		logger.Error("geocode", sl.Err(err))
		f.report(OutcomeFailed)
		return entity.School{}, fmt.Errorf("%w: %v", ErrGeocode, err)
	}
	if len(locations) == 0 {
		logger.Info("location not found")
		f.report(OutcomeNotFound)
		return entity.School{}, ErrLocationNotFound
	}
	loc := locations[0]

	school := f.store.Add(ctx, entity.SchoolDraft{
		Name:       fields.Name,
		Type:       schoolType,
		City:       fields.City,
		Region:     f.regions.Region(loc),
		Lat:        loc.Lat,
		Lng:        loc.Lng,
		Grades:     fields.Grades,
		EstYear:    fields.EstYear,
		OrigStream: fields.OrigStream,
		ConvYear:   fields.ConvYear,
		History:    fields.History,
		Phone:      fields.Phone,
		Email:      fields.Email,
		Website:    fields.Website,
		Address:    fields.Address,
	})

	logger.With(
		slog.String("id", school.ID),
		slog.String("name", school.Name),
		slog.String("region", school.Region),
	).Info("school added")
	f.report(OutcomeCreated)

	for _, l := range f.listeners {
		l.SchoolAdded(school)
	}
	return school, nil
}

func (f *Form) report(outcome string) {
	if f.observer != nil {
		f.observer.IntakeOutcome(outcome)
	}
}
