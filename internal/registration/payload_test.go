package registration

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
)

func TestNGORegistrationType(t *testing.T) {
	assert.Equal(t, RegistrationTypeTrust, NGORegistrationType("trust"))
	assert.Equal(t, RegistrationTypeSociety, NGORegistrationType(" Society "))
	assert.Equal(t, RegistrationTypeSection8, NGORegistrationType("section8"))
	assert.Equal(t, RegistrationTypeOther, NGORegistrationType("cooperative"))
	assert.Equal(t, RegistrationTypeOther, NGORegistrationType(""))
}

func TestBuildCitizenPayload(t *testing.T) {
	form := validCitizen()
	form.Gender = "female"

	req := BuildCitizenPayload(form)
	data, ok := req.Data.(CitizenPayload)
	require.True(t, ok)

	assert.Equal(t, "9876543210", data.PhoneNumber)
	assert.Equal(t, "+91", data.CountryCode)
	assert.Equal(t, "India", data.Country)
	assert.Equal(t, "FEMALE", data.Gender)
	assert.Equal(t, "citizen", data.Role)
	require.Len(t, req.Files, 1)
	assert.Equal(t, "file", req.Files[0].Field)
	assert.Equal(t, "id.pdf", req.Files[0].Filename)
	assert.Equal(t, "application/pdf", req.Files[0].ContentType)
}

func TestBuildLawyerPayload(t *testing.T) {
	form := validLawyer()
	form.EnrollmentYear = "1990"
	form.DeriveExperience(fixedNow)

	data := BuildLawyerPayload(form).Data.(LawyerPayload)
	assert.Equal(t, 1990, data.EnrollmentYear)
	assert.Equal(t, 36, data.YearsOfExperience)
	assert.Equal(t, "English", data.Languages)
	assert.Equal(t, "lawyer", data.Role)

	form.Languages = "Hindi, marathi ,hindi"
	data = BuildLawyerPayload(form).Data.(LawyerPayload)
	assert.Equal(t, "Hindi, marathi", data.Languages)
}

func TestBuildNGOPayload(t *testing.T) {
	form := validNGO()
	form.DarpanCertificate = &Attachment{Filename: "darpan.png", ContentType: "image/png", Content: []byte("png")}

	req := BuildNGOPayload(form)
	data := req.Data.(NGOPayload)
	assert.Equal(t, "contact@udaan.org", data.Email)
	assert.Equal(t, data.Email, data.OrganizationEmail)
	assert.Equal(t, RegistrationTypeTrust, data.RegistrationType)
	assert.Equal(t, 5, data.MaxProBonoCases)
	assert.True(t, data.ProBonoCommitment)
	assert.Equal(t, "Meera Joshi", data.ContactPersonName)

	fields := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"regCertificate", "darpanCertificate"}, fields)

	off := false
	form.ProBonoCommitment = &off
	form.MaxProBonoCases = 2
	data = BuildNGOPayload(form).Data.(NGOPayload)
	assert.False(t, data.ProBonoCommitment)
	assert.Equal(t, 2, data.MaxProBonoCases)
}

func multipartRequest(t *testing.T, data string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("data", data))
	for field, name := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		h.Set("Content-Type", "application/pdf")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 test"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/register/lawyer", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDecodeForm(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/register/citizen",
			strings.NewReader(`{"firstName":"Asha","acceptedTerms":true,"latitude":18.5,"longitude":73.8}`))
		req.Header.Set("Content-Type", "application/json")

		form, err := DecodeForm(httptest.NewRecorder(), req, domain.RoleCitizen)
		require.NoError(t, err)
		c := form.(*CitizenForm)
		assert.Equal(t, "Asha", c.FirstName)
		assert.True(t, c.TermsAccepted())
		assert.True(t, c.Location.Selected())
	})

	t.Run("multipart with documents", func(t *testing.T) {
		req := multipartRequest(t, `{"firstName":"Ravi","enrollmentYear":"2005"}`, map[string]string{"file": "bar.pdf"})

		form, err := DecodeForm(httptest.NewRecorder(), req, domain.RoleLawyer)
		require.NoError(t, err)
		l := form.(*LawyerForm)
		assert.Equal(t, "Ravi", l.FirstName)
		require.NotNil(t, l.BarCouncilID)
		assert.Equal(t, "bar.pdf", l.BarCouncilID.Filename)
		assert.Equal(t, "application/pdf", l.BarCouncilID.DetectedType())
	})

	t.Run("ngo documents map to their fields", func(t *testing.T) {
		req := multipartRequest(t, `{"ngoName":"Udaan"}`, map[string]string{
			"regCertificate": "reg.pdf",
			"ngoPan":         "pan.pdf",
		})
		form, err := DecodeForm(httptest.NewRecorder(), req, domain.RoleNGO)
		require.NoError(t, err)
		n := form.(*NGOForm)
		assert.NotNil(t, n.RegCertificate)
		assert.NotNil(t, n.PanCard)
		assert.Nil(t, n.DarpanCertificate)
	})

	t.Run("missing data part", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("role", "lawyer"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/register/lawyer", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		_, err := DecodeForm(httptest.NewRecorder(), req, domain.RoleLawyer)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("empty json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/register/citizen", strings.NewReader(""))
		_, err := DecodeForm(httptest.NewRecorder(), req, domain.RoleCitizen)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("oversized upload reports the file size limit", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("data", `{"firstName":"Ravi"}`))
		part, err := mw.CreateFormFile("file", "huge.pdf")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), maxRequestBytes+1))
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/register/lawyer", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		_, err = DecodeForm(httptest.NewRecorder(), req, domain.RoleLawyer)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, FileSizeMessage, dErrors.MessageOf(err))
	})

	t.Run("location needs both coordinates", func(t *testing.T) {
		zero, lat := 0.0, 18.5
		assert.False(t, Location{Latitude: &lat, Longitude: &zero}.Selected())
		assert.False(t, Location{Latitude: &zero, Longitude: &lat}.Selected())
		assert.False(t, Location{Latitude: &lat}.Selected())
		assert.True(t, Location{Latitude: &lat, Longitude: &lat}.Selected())
	})

	t.Run("admin cannot register", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/register/admin", strings.NewReader("{}"))
		_, err := DecodeForm(httptest.NewRecorder(), req, domain.RoleAdmin)
		assert.Error(t, err)
	})
}
