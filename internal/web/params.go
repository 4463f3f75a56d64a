package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const missingArgument = "Missing required parameter in the JSON body or the post body or the query string"

// maxBodyBytes caps the size of request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("arg")
	})
	return v
}

// args holds request arguments gathered from the query string, a form body
// and a JSON object body, later sources overriding earlier ones.
type args map[string]string

// argErrors maps an argument name to what was wrong with it.
type argErrors map[string]string

func readArgs(w http.ResponseWriter, r *http.Request) (args, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	a := args{}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		for name, values := range r.Form {
			if len(values) > 0 {
				a[name] = values[0]
			}
		}
		return a, nil
	}

	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			a[name] = values[0]
		}
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return a, nil
		}
		return nil, fmt.Errorf("decode json body: %w", err)
	}
	for name, value := range body {
		s, ok := argString(value)
		if ok {
			a[name] = s
		}
	}
	return a, nil
}

// argString flattens a JSON value into its argument text.
// Nulls count as absent; arrays and objects keep their JSON encoding.
func argString(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

func (a args) str(name string) string {
	return a[name]
}

func (a args) int64Ptr(name string, errs argErrors) *int64 {
	v, ok := a[name]
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		errs[name] = fmt.Sprintf("invalid integer: %q", v)
		return nil
	}
	return &n
}

func (a args) intPtr(name string, errs argErrors) *int {
	n := a.int64Ptr(name, errs)
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}

// check runs the struct's validate tags and merges failures into errs.
func check(params any, errs argErrors) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		if fe.Tag() == "required" {
			errs[fe.Field()] = missingArgument
		} else {
			errs[fe.Field()] = fmt.Sprintf("failed %q check", fe.Tag())
		}
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// pathInt64 reads a numeric route variable.
func pathInt64(vars map[string]string, name string) (int64, error) {
	n, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, vars[name], err)
	}
	return n, nil
}

// writeArgErrors answers 400 with one message per offending argument.
func writeArgErrors(w http.ResponseWriter, errs argErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"message": map[string]string(errs)})
}
