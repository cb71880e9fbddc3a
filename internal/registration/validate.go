// Package registration holds the role registration forms, their validation
// rules and the payloads submitted to the backend.
package registration

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
)

// Focus orders: the first field with an error in this order receives focus.
var (
	CitizenOrder = []string{
		"firstName", "lastName", "email", "phoneNumber", "dateOfBirth", "gender",
		"password", "confirmPassword", "addressLine1", "city", "state", "pincode",
		"idProof", "location",
	}
	LawyerOrder = []string{
		"firstName", "lastName", "email", "phoneNumber", "dateOfBirth", "gender",
		"barCouncilNumber", "barCouncilState", "enrollmentYear", "yearsOfExperience",
		"officeAddressLine1", "city", "state", "pincode", "password", "confirmPassword",
		"location", "file",
	}
	NGOOrder = []string{
		"ngoName", "darpanId", "officialEmail", "areasOfWork", "repName", "repRole",
		"repEmail", "repPhone", "repDob", "repGender", "password", "confirmPassword",
		"registrationDate", "officialPhone", "websiteUrl", "officeAddress", "city", "state",
		"pincode", "maxProBonoCases", "regCertificate", "darpanCertificate", "ngoPan",
		"repIdProof",
	}
)

var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// FieldErrors maps a field name to its message. Empty means valid.
type FieldErrors map[string]string

// Result is the outcome of validating a whole form.
type Result struct {
	Fields       FieldErrors `json:"fields"`
	FirstInvalid string      `json:"focus,omitempty"`
	FormError    string      `json:"form_error,omitempty"`
}

// Valid reports whether the form may be submitted.
func (r Result) Valid() bool {
	return len(r.Fields) == 0 && r.FormError == ""
}

// Err returns a validation_error carrying r, or nil when r is valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	msg := r.FormError
	if msg == "" {
		msg = FixErrorsMessage
	}
	return &FormInvalidError{Result: r, err: dErrors.New(dErrors.CodeValidation, msg)}
}

// FormInvalidError is returned by Result.Err so handlers can render fields.
type FormInvalidError struct {
	Result Result
	err    error
}

func (e *FormInvalidError) Error() string { return e.err.Error() }
func (e *FormInvalidError) Unwrap() error { return e.err }

// AsFormInvalid extracts the validation result from err.
func AsFormInvalid(err error) (Result, bool) {
	var fe *FormInvalidError
	if errors.As(err, &fe) {
		return fe.Result, true
	}
	return Result{}, false
}

type fieldSpec struct {
	tag  string
	kind reflect.Kind
}

// Validator runs the registration rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	specs    map[domain.Role]map[string]fieldSpec
}

func NewValidator() *Validator {
	return &Validator{
		validate: newValidate(),
		specs: map[domain.Role]map[string]fieldSpec{
			domain.RoleCitizen: specsOf(reflect.TypeOf(CitizenForm{})),
			domain.RoleLawyer:  specsOf(reflect.TypeOf(LawyerForm{})),
			domain.RoleNGO:     specsOf(reflect.TypeOf(NGOForm{})),
		},
	}
}

func specsOf(t reflect.Type) map[string]fieldSpec {
	out := make(map[string]fieldSpec)
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("validate")
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || name == "" || name == "-" {
			continue
		}
		kind := f.Type.Kind()
		if kind == reflect.Pointer {
			kind = f.Type.Elem().Kind()
		}
		out[name] = fieldSpec{tag: tag, kind: kind}
	}
	return out
}

// Validate dispatches on the concrete form type.
func (v *Validator) Validate(form Form, now time.Time) Result {
	switch f := form.(type) {
	case *CitizenForm:
		return v.ValidateCitizen(f, now)
	case *LawyerForm:
		return v.ValidateLawyer(f, now)
	case *NGOForm:
		return v.ValidateNGO(f, now)
	default:
		return Result{Fields: FieldErrors{}, FormError: "Unsupported registration type"}
	}
}

func (v *Validator) ValidateCitizen(form *CitizenForm, now time.Time) Result {
	errs := v.structErrors(form, now)
	checkAttachment(errs, "idProof", form.IDProof, "ID proof is required")
	if !form.Location.Selected() {
		setOnce(errs, "location", LocationMessage)
	}
	return finish(errs, CitizenOrder, form.AcceptedTerms)
}

// ValidateLawyer derives years of experience on form before validating it.
func (v *Validator) ValidateLawyer(form *LawyerForm, now time.Time) Result {
	form.DeriveExperience(now)
	errs := v.structErrors(form, now)
	checkAttachment(errs, "file", form.BarCouncilID, "Bar Council ID Card is required")
	if !form.Location.Selected() {
		setOnce(errs, "location", LocationMessage)
	}
	return finish(errs, LawyerOrder, form.AcceptedTerms)
}

func (v *Validator) ValidateNGO(form *NGOForm, now time.Time) Result {
	errs := v.structErrors(form, now)
	checkAttachment(errs, "regCertificate", form.RegCertificate, "Registration certificate is required")
	checkAttachment(errs, "darpanCertificate", form.DarpanCertificate, "")
	checkAttachment(errs, "ngoPan", form.PanCard, "")
	checkAttachment(errs, "repIdProof", form.RepIDProof, "")
	return finish(errs, NGOOrder, form.AcceptedTerms)
}

type fieldOptions struct {
	password string
	now      time.Time
}

type FieldOption func(*fieldOptions)

// WithPassword supplies the password confirmPassword is compared against.
func WithPassword(password string) FieldOption {
	return func(o *fieldOptions) { o.password = password }
}

func WithNow(now time.Time) FieldOption {
	return func(o *fieldOptions) { o.now = now }
}

// Field validates a single field of role's form in isolation and returns its
// message, or "" when valid. Unknown fields are valid.
func (v *Validator) Field(role domain.Role, field, value string, opts ...FieldOption) string {
	o := fieldOptions{now: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}
	spec, ok := v.specs[role][field]
	if !ok {
		return ""
	}
	ctx := withNow(context.Background(), o.now)

	tag, compareToPassword := stripEqField(spec.tag)
	var input any = value
	switch spec.kind {
	case reflect.Int:
		if strings.TrimSpace(value) == "" {
			input = (*int)(nil)
		} else {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return messageFor(field, "max", "", o.now)
			}
			input = &n
		}
	case reflect.Slice:
		input = splitList(value)
	}

	if err := v.validate.VarCtx(ctx, input, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return messageFor(field, verrs[0].Tag(), verrs[0].Param(), o.now)
		}
		return "Invalid value"
	}
	if compareToPassword && value != o.password {
		return passwordMismatch
	}
	return ""
}

func stripEqField(tag string) (string, bool) {
	parts := strings.Split(tag, ",")
	kept := parts[:0]
	found := false
	for _, p := range parts {
		if strings.HasPrefix(p, "eqfield=") {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ","), found
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (v *Validator) structErrors(form any, now time.Time) FieldErrors {
	errs := FieldErrors{}
	err := v.validate.StructCtx(withNow(context.Background(), now), form)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "Invalid value"
		return errs
	}
	for _, fe := range verrs {
		setOnce(errs, fe.Field(), messageFor(fe.Field(), fe.Tag(), fe.Param(), now))
	}
	return errs
}

func checkAttachment(errs FieldErrors, field string, a *Attachment, requiredMsg string) {
	if a == nil {
		if requiredMsg != "" {
			setOnce(errs, field, requiredMsg)
		}
		return
	}
	if !allowedAttachmentTypes[a.DetectedType()] {
		setOnce(errs, field, FileTypeMessage)
		return
	}
	size := a.Size
	if size == 0 {
		size = int64(len(a.Content))
	}
	if size > MaxAttachmentBytes {
		setOnce(errs, field, FileSizeMessage)
	}
}

func setOnce(errs FieldErrors, field, msg string) {
	if _, ok := errs[field]; !ok {
		errs[field] = msg
	}
}

func finish(errs FieldErrors, order []string, termsAccepted bool) Result {
	r := Result{Fields: errs, FirstInvalid: FirstInvalid(errs, order)}
	switch {
	case !termsAccepted:
		r.FormError = TermsRequiredMessage
	case len(errs) > 0:
		r.FormError = FixErrorsMessage
	}
	return r
}

// FirstInvalid returns the first field of order with a non-empty error. Fields
// outside order come last, alphabetically.
func FirstInvalid(errs FieldErrors, order []string) string {
	for _, f := range order {
		if errs[f] != "" {
			return f
		}
	}
	var rest []string
	for f, msg := range errs {
		if msg != "" {
			rest = append(rest, f)
		}
	}
	if len(rest) == 0 {
		return ""
	}
	sort.Strings(rest)
	return rest[0]
}
