package registration

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
)

const (
	maxFormMemory   = 8 << 20
	maxRequestBytes = 4*MaxAttachmentBytes + (1 << 20)
)

// NewForm returns an empty form for role.
func NewForm(role domain.Role) (Form, error) {
	switch role {
	case domain.RoleCitizen:
		return &CitizenForm{}, nil
	case domain.RoleLawyer:
		return &LawyerForm{}, nil
	case domain.RoleNGO:
		return &NGOForm{}, nil
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "unsupported registration role")
	}
}

// DecodeForm reads a role form from either a JSON body or a multipart body
// whose "data" part (field or file) holds the JSON and whose file parts hold
// the documents.
func DecodeForm(w http.ResponseWriter, r *http.Request, role domain.Role) (Form, error) {
	form, err := NewForm(role)
	if err != nil {
		return nil, err
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			if tooLarge(err) {
				return nil, dErrors.Wrap(err, dErrors.CodeValidation, FileSizeMessage)
			}
			if errors.Is(err, io.EOF) {
				return nil, dErrors.New(dErrors.CodeBadRequest, "request body is required")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
		}
		return form, nil
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if tooLarge(err) {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, FileSizeMessage)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart body")
	}
	raw, err := dataPart(r.MultipartForm)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid data part")
	}
	if err := attachFiles(form, r.MultipartForm); err != nil {
		return nil, err
	}
	return form, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func dataPart(mf *multipart.Form) ([]byte, error) {
	if vals := mf.Value["data"]; len(vals) > 0 {
		return []byte(vals[0]), nil
	}
	if files := mf.File["data"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "unreadable data part")
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, 1<<20))
	}
	return nil, dErrors.New(dErrors.CodeBadRequest, "missing data part")
}

func attachFiles(form Form, mf *multipart.Form) error {
	var err error
	get := func(fields ...string) *Attachment {
		for _, name := range fields {
			if files := mf.File[name]; len(files) > 0 && err == nil {
				var a *Attachment
				a, err = readAttachment(files[0])
				return a
			}
		}
		return nil
	}
	switch f := form.(type) {
	case *CitizenForm:
		f.IDProof = get("file", "idProof")
	case *LawyerForm:
		f.BarCouncilID = get("file")
	case *NGOForm:
		f.RegCertificate = get("regCertificate")
		f.DarpanCertificate = get("darpanCertificate")
		f.PanCard = get("ngoPan")
		f.RepIDProof = get("repIdProof")
	}
	return err
}

// readAttachment keeps oversize uploads as metadata only; validation rejects them.
func readAttachment(fh *multipart.FileHeader) (*Attachment, error) {
	a := &Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if fh.Size > MaxAttachmentBytes {
		return a, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("unreadable file %q", fh.Filename))
	}
	defer f.Close()
	a.Content, err = io.ReadAll(f)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("unreadable file %q", fh.Filename))
	}
	if strings.TrimSpace(a.ContentType) == "" {
		a.ContentType = a.DetectedType()
	}
	return a, nil
}
