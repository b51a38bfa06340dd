package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	rawMessageType = reflect.TypeOf(json.RawMessage(nil))
	timeType       = reflect.TypeOf(time.Time{})

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los issues se reportan con el nombre de columna (tag json), no con el nombre Go.
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return jsonName(sf)
	})
	// el "uuid" de validator solo acepta hex en minúsculas
	if err := v.RegisterValidation("uuid", func(fl validator.FieldLevel) bool {
		return IsUUID(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsUUID acepta la forma canónica 8-4-4-4-12, en mayúsculas o minúsculas.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

type field struct {
	name     string // nombre json / columna
	goName   string
	index    []int
	typ      reflect.Type
	nullable bool
	rules    bool
}

// Schema describe la forma de una entidad a partir de los tags de T:
//   - `json:"col"` nombra el campo (igual a la columna en la base hosteada)
//   - `validate:"..."` agrega reglas de formato (uuid, email, url, oneof, ...)
//   - punteros y json.RawMessage aceptan null; el resto no.
//
// Las variantes (insert/update) se derivan con Optional/Partial y comparten
// la misma lista de campos, así no hay drift entre las tres.
type Schema[T any] struct {
	name     string
	fields   []field
	byName   map[string]int
	optional map[string]struct{}
	partial  bool
}

// New construye el schema base de T: todas las keys son requeridas.
// T tiene que ser un struct; cualquier otra cosa es un error de programación.
func New[T any](name string) *Schema[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("schema %s: %s is not a struct", name, t))
	}

	s := &Schema[T]{
		name:     name,
		byName:   map[string]int{},
		optional: map[string]struct{}{},
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		n := jsonName(sf)
		if n == "" {
			continue
		}
		s.byName[n] = len(s.fields)
		s.fields = append(s.fields, field{
			name:     n,
			goName:   sf.Name,
			index:    sf.Index,
			typ:      sf.Type,
			nullable: sf.Type.Kind() == reflect.Pointer || sf.Type == rawMessageType,
			rules:    strings.TrimSpace(sf.Tag.Get("validate")) != "",
		})
	}

	return s
}

func (s *Schema[T]) Name() string { return s.name }

// Optional deriva una variante donde las keys indicadas pueden omitirse
// (p.ej. campos generados por el servidor en un insert).
func (s *Schema[T]) Optional(fields ...string) *Schema[T] {
	out := s.clone()
	for _, n := range fields {
		if _, ok := s.byName[n]; !ok {
			panic(fmt.Sprintf("schema %s: unknown field %q", s.name, n))
		}
		out.optional[n] = struct{}{}
	}
	return out
}

// Partial deriva una variante donde cualquier key puede omitirse (PATCH).
func (s *Schema[T]) Partial() *Schema[T] {
	out := s.clone()
	out.partial = true
	return out
}

// IsOptional indica si la key puede faltar en esta variante.
func (s *Schema[T]) IsOptional(field string) bool {
	if s.partial {
		return true
	}
	_, ok := s.optional[field]
	return ok
}

// Fields devuelve las keys del schema en orden de declaración.
func (s *Schema[T]) Fields() []string {
	out := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, f.name)
	}
	return out
}

// Parse valida un payload JSON sin tipar. Nunca coerciona: un tipo incorrecto
// o un null en un campo no nullable es un issue. Las keys desconocidas se ignoran.
func (s *Schema[T]) Parse(data []byte) (Parsed[T], error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return Parsed[T]{}, &ValidationError{
			Schema: s.name,
			Issues: []Issue{{Code: CodeInvalidType, Message: "payload must be a JSON object"}},
		}
	}

	var out T
	rv := reflect.ValueOf(&out).Elem()

	present := make(map[string]struct{}, len(raw))
	issues := make([]Issue, 0)
	check := make([]string, 0, len(s.fields))

	for _, f := range s.fields {
		msg, ok := raw[f.name]
		if !ok {
			if !s.IsOptional(f.name) {
				issues = append(issues, Issue{
					Path:    f.name,
					Code:    CodeRequired,
					Message: f.name + " is required",
				})
			}
			continue
		}
		present[f.name] = struct{}{}

		if isNull(msg) {
			if !f.nullable {
				issues = append(issues, Issue{
					Path:    f.name,
					Code:    CodeInvalidType,
					Message: fmt.Sprintf("%s must be %s, got null", f.name, describe(f.typ)),
				})
			}
			continue
		}

		target := reflect.New(f.typ)
		if err := json.Unmarshal(msg, target.Interface()); err != nil {
			issues = append(issues, Issue{
				Path:    f.name,
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("%s must be %s", f.name, describe(f.typ)),
			})
			continue
		}
		rv.FieldByIndex(f.index).Set(target.Elem())

		if f.rules {
			check = append(check, f.goName)
		}
	}

	if len(check) > 0 {
		if err := validate.StructPartial(out, check...); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return Parsed[T]{}, fmt.Errorf("schema %s: %w", s.name, err)
			}
			for _, fe := range verrs {
				issues = append(issues, issueFromFieldError(fe))
			}
		}
	}

	if len(issues) > 0 {
		sort.SliceStable(issues, func(i, j int) bool {
			return s.byName[issues[i].Path] < s.byName[issues[j].Path]
		})
		return Parsed[T]{}, &ValidationError{Schema: s.name, Issues: issues}
	}

	return Parsed[T]{Value: out, present: present, fields: s.fields}, nil
}

// ParseValue re-codifica v a JSON y lo valida. Sirve para chequear valores
// ya tipados (p.ej. un map armado a mano o una entidad luego de aplicar un patch).
func (s *Schema[T]) ParseValue(v any) (Parsed[T], error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Parsed[T]{}, fmt.Errorf("schema %s: marshal: %w", s.name, err)
	}
	return s.Parse(b)
}

func (s *Schema[T]) clone() *Schema[T] {
	opt := make(map[string]struct{}, len(s.optional))
	for k := range s.optional {
		opt[k] = struct{}{}
	}
	return &Schema[T]{
		name:     s.name,
		fields:   s.fields,
		byName:   s.byName,
		optional: opt,
		partial:  s.partial,
	}
}

// Parsed es el resultado de un Parse exitoso: el valor tipado más el set
// de keys que venían en el payload (necesario para PATCH).
type Parsed[T any] struct {
	Value T

	present map[string]struct{}
	fields  []field
}

func (p Parsed[T]) Has(field string) bool {
	_, ok := p.present[field]
	return ok
}

// Fields devuelve las keys presentes, en orden de declaración.
func (p Parsed[T]) Fields() []string {
	out := make([]string, 0, len(p.present))
	for _, f := range p.fields {
		if _, ok := p.present[f.name]; ok {
			out = append(out, f.name)
		}
	}
	return out
}

// ApplyTo copia sobre dst solo los campos presentes (semántica de patch parcial).
func (p Parsed[T]) ApplyTo(dst *T) {
	if dst == nil {
		return
	}
	src := reflect.ValueOf(&p.Value).Elem()
	d := reflect.ValueOf(dst).Elem()
	for _, f := range p.fields {
		if _, ok := p.present[f.name]; !ok {
			continue
		}
		d.FieldByIndex(f.index).Set(src.FieldByIndex(f.index))
	}
}

func jsonName(sf reflect.StructField) string {
	n, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if n == "-" {
		return ""
	}
	return strings.TrimSpace(n)
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

func describe(t reflect.Type) string {
	if t == timeType {
		return "an RFC3339 timestamp"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return describe(t.Elem())
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
