package registration

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"jurify/pkg/domain"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type ValidatorSuite struct {
	suite.Suite
	v *Validator
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupSuite() {
	s.v = NewValidator()
}

func ptr[T any](v T) *T { return &v }

func pdf() *Attachment {
	return &Attachment{Filename: "id.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4"), Size: 8}
}

func validCitizen() *CitizenForm {
	return &CitizenForm{
		FirstName:       "Asha",
		LastName:        "Rao",
		Email:           "asha.rao@example.in",
		PhoneNumber:     "+91 98765 43210",
		DateOfBirth:     "1994-03-12",
		Gender:          "FEMALE",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
		AddressLine1:    "12 MG Road",
		City:            "Pune",
		State:           "Maharashtra",
		Pincode:         "411001",
		Location:        Location{Latitude: ptr(18.52), Longitude: ptr(73.85)},
		AcceptedTerms:   true,
		IDProof:         pdf(),
	}
}

func validLawyer() *LawyerForm {
	return &LawyerForm{
		FirstName:          "Ravi",
		LastName:           "Menon",
		Email:              "ravi@law.in",
		PhoneNumber:        "9123456789",
		DateOfBirth:        "1980-01-01",
		Gender:             "MALE",
		BarCouncilNumber:   "MAH/1234/2005",
		BarCouncilState:    "Maharashtra",
		EnrollmentYear:     "2005",
		OfficeAddressLine1: "Chamber 4, High Court",
		City:               "Mumbai",
		State:              "Maharashtra",
		Pincode:            "400032",
		Password:           "Str0ng!Pass",
		ConfirmPassword:    "Str0ng!Pass",
		Location:           Location{Latitude: ptr(18.93), Longitude: ptr(72.83)},
		AcceptedTerms:      true,
		BarCouncilID:       pdf(),
	}
}

func validNGO() *NGOForm {
	return &NGOForm{
		NgoName:         "Udaan Foundation",
		DarpanID:        "MH/2019/0234567",
		NgoType:         "trust",
		OfficialEmail:   "contact@udaan.org",
		AreasOfWork:     []string{"Education"},
		RepName:         "Meera Joshi",
		RepRole:         "Director",
		RepEmail:        "meera@udaan.org",
		RepPhone:        "8765432109",
		RepDob:          "1985-07-20",
		RepGender:       "FEMALE",
		Password:        "Str0ng!Pass",
		ConfirmPassword: "Str0ng!Pass",
		AcceptedTerms:   true,
		RegCertificate:  pdf(),
	}
}

func (s *ValidatorSuite) TestValidFormsPass() {
	s.Run("citizen", func() {
		r := s.v.ValidateCitizen(validCitizen(), fixedNow)
		s.True(r.Valid(), "%v", r.Fields)
		s.NoError(r.Err())
	})
	s.Run("lawyer", func() {
		r := s.v.ValidateLawyer(validLawyer(), fixedNow)
		s.True(r.Valid(), "%v", r.Fields)
	})
	s.Run("ngo", func() {
		r := s.v.ValidateNGO(validNGO(), fixedNow)
		s.True(r.Valid(), "%v", r.Fields)
	})
}

func (s *ValidatorSuite) TestRequiredBeatsFormat() {
	tests := []struct {
		field string
		value string
		want  string
	}{
		{"firstName", "", "First name is required"},
		{"firstName", "   ", "First name is required"},
		{"firstName", "A", "First name must be at least 2 characters"},
		{"firstName", "A1b", "First name should only contain letters"},
		{"lastName", "", "Last name is required"},
		{"lastName", "R2", "Last name should only contain letters"},
		{"email", "", "Email is required"},
		{"email", "asha@", "Please enter a valid email address"},
		{"phoneNumber", "", "Phone number is required"},
		{"phoneNumber", "12345", PhoneInvalidMessage},
		{"password", "", "Password is required"},
		{"password", "weakpass", "Password does not meet all requirements"},
		{"dateOfBirth", "", "Date of birth is required"},
		{"dateOfBirth", "2030-01-01", "Date of birth cannot be in the future"},
		{"dateOfBirth", "1890-01-01", "Please enter a valid date of birth"},
		{"dateOfBirth", "12/03/1994", "Please enter a valid date of birth"},
		{"gender", "", "Please select your gender"},
		{"addressLine1", "", "Street address is required"},
		{"addressLine1", "12 A", "Please enter a complete address"},
		{"city", "", "City is required"},
		{"city", "Pune-1", "City should only contain letters"},
		{"state", "", "State is required"},
		{"state", "MH1", "State should only contain letters"},
		{"pincode", "", "Postal code is required"},
		{"pincode", "41A001", "Please enter a valid postal code"},
		{"pincode", "411001", ""},
	}
	for _, tt := range tests {
		s.Run(fmt.Sprintf("%s=%q", tt.field, tt.value), func() {
			s.Equal(tt.want, s.v.Field(domain.RoleCitizen, tt.field, tt.value, WithNow(fixedNow)))
		})
	}
}

func (s *ValidatorSuite) TestRoleSpecificFieldRules() {
	s.Run("lawyer must be 21", func() {
		s.Equal("You must be at least 21 years old",
			s.v.Field(domain.RoleLawyer, "dateOfBirth", "2008-01-01", WithNow(fixedNow)))
	})
	s.Run("lawyer last name minimum length", func() {
		s.Equal("Last name must be at least 2 characters",
			s.v.Field(domain.RoleLawyer, "lastName", "M", WithNow(fixedNow)))
	})
	s.Run("lawyer office address", func() {
		s.Equal("Office address is required",
			s.v.Field(domain.RoleLawyer, "officeAddressLine1", " ", WithNow(fixedNow)))
	})
	s.Run("enrollment year range names current year", func() {
		s.Equal("Please enter a valid year between 1950 and 2026",
			s.v.Field(domain.RoleLawyer, "enrollmentYear", "1949", WithNow(fixedNow)))
		s.Equal("", s.v.Field(domain.RoleLawyer, "enrollmentYear", "2026", WithNow(fixedNow)))
	})
	s.Run("experience range", func() {
		s.Equal("Years of experience is required", s.v.Field(domain.RoleLawyer, "yearsOfExperience", ""))
		s.Equal("Please enter valid years of experience (0-70)", s.v.Field(domain.RoleLawyer, "yearsOfExperience", "71"))
		s.Equal("", s.v.Field(domain.RoleLawyer, "yearsOfExperience", "0"))
	})
	s.Run("ngo representative must be 18", func() {
		s.Equal("Representative must be at least 18 years old",
			s.v.Field(domain.RoleNGO, "repDob", "2010-06-01", WithNow(fixedNow)))
	})
	s.Run("ngo darpan id", func() {
		s.Equal("Darpan ID is required", s.v.Field(domain.RoleNGO, "darpanId", ""))
		s.Equal("Please enter a valid Darpan ID", s.v.Field(domain.RoleNGO, "darpanId", "MH/123"))
	})
	s.Run("ngo areas of work", func() {
		s.Equal("Select at least one area of work", s.v.Field(domain.RoleNGO, "areasOfWork", " , "))
		s.Equal("", s.v.Field(domain.RoleNGO, "areasOfWork", "Education, Healthcare"))
	})
	s.Run("confirm password", func() {
		s.Equal("Please confirm your password", s.v.Field(domain.RoleCitizen, "confirmPassword", "", WithPassword("Str0ng!Pass")))
		s.Equal("Passwords do not match", s.v.Field(domain.RoleCitizen, "confirmPassword", "Str0ng!Pas", WithPassword("Str0ng!Pass")))
		s.Equal("", s.v.Field(domain.RoleCitizen, "confirmPassword", "Str0ng!Pass", WithPassword("Str0ng!Pass")))
	})
	s.Run("unknown field is valid", func() {
		s.Equal("", s.v.Field(domain.RoleCitizen, "nickname", "x"))
	})
}

func (s *ValidatorSuite) TestTermsBlockSubmission() {
	forms := []Form{validCitizen(), validLawyer(), validNGO()}
	for _, f := range forms {
		s.Run(f.Role().String(), func() {
			switch v := f.(type) {
			case *CitizenForm:
				v.AcceptedTerms = false
			case *LawyerForm:
				v.AcceptedTerms = false
			case *NGOForm:
				v.AcceptedTerms = false
			}
			r := s.v.Validate(f, fixedNow)
			s.Empty(r.Fields)
			s.False(r.Valid())
			s.Equal(TermsRequiredMessage, r.FormError)

			got, ok := AsFormInvalid(r.Err())
			s.True(ok)
			s.Equal(TermsRequiredMessage, got.FormError)
		})
	}
}

func (s *ValidatorSuite) TestLawyerExperienceDerivedFromEnrollment() {
	form := validLawyer()
	form.EnrollmentYear = "1990"

	r := s.v.ValidateLawyer(form, fixedNow)
	s.True(r.Valid(), "%v", r.Fields)
	s.Require().NotNil(form.YearsOfExperience)
	s.Equal(fixedNow.Year()-1990, *form.YearsOfExperience)

	s.Run("manual override is kept", func() {
		form := validLawyer()
		form.EnrollmentYear = "1990"
		form.ExperienceOverridden = true
		form.YearsOfExperience = ptr(12)
		s.v.ValidateLawyer(form, fixedNow)
		s.Equal(12, *form.YearsOfExperience)
	})
}

func (s *ValidatorSuite) TestNGOFocusOrder() {
	form := validNGO()
	form.NgoName = ""
	form.RepPhone = "555"

	r := s.v.ValidateNGO(form, fixedNow)
	s.Equal("NGO name is required", r.Fields["ngoName"])
	s.Equal(PhoneInvalidMessage, r.Fields["repPhone"])
	s.Equal("ngoName", r.FirstInvalid)
	s.Equal(FixErrorsMessage, r.FormError)
}

func (s *ValidatorSuite) TestCitizenDerivedConditions() {
	s.Run("missing id proof and location", func() {
		form := validCitizen()
		form.IDProof = nil
		form.Location = Location{}
		r := s.v.ValidateCitizen(form, fixedNow)
		s.Equal("ID proof is required", r.Fields["idProof"])
		s.Equal(LocationMessage, r.Fields["location"])
		s.Equal("idProof", r.FirstInvalid)
	})
	s.Run("focus follows declared order", func() {
		form := validCitizen()
		form.Pincode = ""
		form.Gender = ""
		r := s.v.ValidateCitizen(form, fixedNow)
		s.Equal("gender", r.FirstInvalid)
	})
}

func (s *ValidatorSuite) TestAttachmentRules() {
	s.Run("wrong type", func() {
		form := validLawyer()
		form.BarCouncilID = &Attachment{Filename: "card.gif", ContentType: "image/gif", Content: []byte("GIF89a")}
		r := s.v.ValidateLawyer(form, fixedNow)
		s.Equal(FileTypeMessage, r.Fields["file"])
	})
	s.Run("too large", func() {
		form := validLawyer()
		form.BarCouncilID = &Attachment{Filename: "card.png", ContentType: "image/png", Size: MaxAttachmentBytes + 1}
		r := s.v.ValidateLawyer(form, fixedNow)
		s.Equal(FileSizeMessage, r.Fields["file"])
	})
	s.Run("sniffed when undeclared", func() {
		form := validCitizen()
		form.IDProof = &Attachment{Filename: "scan", Content: []byte("%PDF-1.7 scan")}
		r := s.v.ValidateCitizen(form, fixedNow)
		s.True(r.Valid(), "%v", r.Fields)
	})
	s.Run("missing NGO registration certificate", func() {
		form := validNGO()
		form.RegCertificate = nil
		r := s.v.ValidateNGO(form, fixedNow)
		s.Equal("Registration certificate is required", r.Fields["regCertificate"])
	})
}

func (s *ValidatorSuite) TestEveryMessageComesFromADeclaredRule() {
	form := &CitizenForm{FirstName: "1", Email: "bad", PhoneNumber: "123", Password: "x", ConfirmPassword: "y"}
	r := s.v.ValidateCitizen(form, fixedNow)
	for field, msg := range r.Fields {
		s.NotEmpty(msg, field)
		s.False(strings.HasPrefix(msg, "Invalid value"), "field %s produced a fallback message", field)
	}
	s.Equal("firstName", r.FirstInvalid)
}
