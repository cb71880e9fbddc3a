package registration

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"jurify/pkg/domain"
)

// Attachment is an uploaded document.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// DetectedType returns the declared content type, sniffing the content when
// none was declared.
func (a *Attachment) DetectedType() string {
	ct := strings.ToLower(strings.TrimSpace(a.ContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if (ct == "" || ct == "application/octet-stream") && len(a.Content) > 0 {
		ct = http.DetectContentType(a.Content)
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = ct[:i]
		}
	}
	return ct
}

// Location is the map selection. Both coordinates must be set and non-zero
// for it to count.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l Location) Selected() bool {
	return l.Latitude != nil && l.Longitude != nil && *l.Latitude != 0 && *l.Longitude != 0
}

// Form is implemented by the three role forms.
type Form interface {
	Role() domain.Role
	TermsAccepted() bool
}

type CitizenForm struct {
	FirstName       string `json:"firstName" validate:"filled,trimmin=2,letters"`
	LastName        string `json:"lastName" validate:"filled,letters"`
	Email           string `json:"email" validate:"filled,emailaddr"`
	PhoneNumber     string `json:"phoneNumber" validate:"filled,indianmobile"`
	CountryCode     string `json:"countryCode"`
	DateOfBirth     string `json:"dateOfBirth" validate:"filled,isodate,notfuture,maxage=120"`
	Gender          string `json:"gender" validate:"filled"`
	Password        string `json:"password" validate:"filled,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"filled,eqfield=Password"`
	AddressLine1    string `json:"addressLine1" validate:"filled,trimmin=5"`
	City            string `json:"city" validate:"filled,letters"`
	State           string `json:"state" validate:"filled,letters"`
	Pincode         string `json:"pincode" validate:"filled,postalcode"`
	Country         string `json:"country"`
	Location
	AcceptedTerms bool `json:"acceptedTerms"`

	IDProof *Attachment `json:"-"`
}

func (f *CitizenForm) Role() domain.Role   { return domain.RoleCitizen }
func (f *CitizenForm) TermsAccepted() bool { return f.AcceptedTerms }

type LawyerForm struct {
	FirstName            string `json:"firstName" validate:"filled,trimmin=2,letters"`
	LastName             string `json:"lastName" validate:"filled,trimmin=2,letters"`
	Email                string `json:"email" validate:"filled,emailaddr"`
	PhoneNumber          string `json:"phoneNumber" validate:"filled,indianmobile"`
	CountryCode          string `json:"countryCode"`
	DateOfBirth          string `json:"dateOfBirth" validate:"filled,isodate,notfuture,minage=21,maxage=120"`
	Gender               string `json:"gender" validate:"filled"`
	BarCouncilNumber     string `json:"barCouncilNumber" validate:"filled"`
	BarCouncilState      string `json:"barCouncilState" validate:"filled"`
	EnrollmentYear       string `json:"enrollmentYear" validate:"filled,yearrange=1950"`
	YearsOfExperience    *int   `json:"yearsOfExperience" validate:"required,min=0,max=70"`
	ExperienceOverridden bool   `json:"experienceOverridden"`
	LawFirmName          string `json:"lawFirmName"`
	OfficeAddressLine1   string `json:"officeAddressLine1" validate:"filled,trimmin=5"`
	City                 string `json:"city" validate:"filled,letters"`
	State                string `json:"state" validate:"filled,letters"`
	Pincode              string `json:"pincode" validate:"filled,postalcode"`
	Country              string `json:"country"`
	Bio                  string `json:"bio"`
	Languages            string `json:"languages"`
	Password             string `json:"password" validate:"filled,strongpassword"`
	ConfirmPassword      string `json:"confirmPassword" validate:"filled,eqfield=Password"`
	Location
	AcceptedTerms bool `json:"acceptedTerms"`

	BarCouncilID *Attachment `json:"-"`
}

func (f *LawyerForm) Role() domain.Role   { return domain.RoleLawyer }
func (f *LawyerForm) TermsAccepted() bool { return f.AcceptedTerms }

const minEnrollmentYear = 1950

// DeriveExperience sets YearsOfExperience to currentYear - enrollmentYear
// unless the user entered it manually. Years outside 1950..now leave it
// unset.
func (f *LawyerForm) DeriveExperience(now time.Time) {
	if f.ExperienceOverridden {
		return
	}
	year, err := strconv.Atoi(strings.TrimSpace(f.EnrollmentYear))
	if err != nil || year < minEnrollmentYear || year > now.Year() {
		f.YearsOfExperience = nil
		return
	}
	years := now.Year() - year
	f.YearsOfExperience = &years
}

type NGOForm struct {
	NgoName              string   `json:"ngoName" validate:"filled,trimmin=3"`
	DarpanID             string   `json:"darpanId" validate:"filled,trimmin=8"`
	RegistrationNumber   string   `json:"registrationNumber"`
	RegistrationDate     string   `json:"registrationDate" validate:"omitempty,isodate,notfuture"`
	RegisteringAuthority string   `json:"registeringAuthority"`
	NgoPan               string   `json:"ngoPan"`
	NgoType              string   `json:"ngoType"`
	OfficialEmail        string   `json:"officialEmail" validate:"filled,emailaddr"`
	OfficialPhone        string   `json:"officialPhone" validate:"omitempty,indianmobile"`
	WebsiteURL           string   `json:"websiteUrl" validate:"omitempty,url"`
	OfficeAddress        string   `json:"officeAddress" validate:"omitempty,trimmin=5"`
	City                 string   `json:"city" validate:"omitempty,letters"`
	State                string   `json:"state" validate:"omitempty,letters"`
	Pincode              string   `json:"pincode" validate:"omitempty,postalcode"`
	AreasOfWork          []string `json:"areasOfWork" validate:"min=1"`
	RepName              string   `json:"repName" validate:"filled,letters"`
	RepRole              string   `json:"repRole" validate:"filled"`
	RepEmail             string   `json:"repEmail" validate:"filled,emailaddr"`
	RepPhone             string   `json:"repPhone" validate:"filled,indianmobile"`
	RepDob               string   `json:"repDob" validate:"filled,isodate,notfuture,minage=18,maxage=120"`
	RepGender            string   `json:"repGender" validate:"filled"`
	ProBonoCommitment    *bool    `json:"proBonoCommitment"`
	MaxProBonoCases      int      `json:"maxProBonoCases" validate:"min=0"`
	Password             string   `json:"password" validate:"filled,strongpassword"`
	ConfirmPassword      string   `json:"confirmPassword" validate:"filled,eqfield=Password"`
	Location
	AcceptedTerms bool `json:"acceptedTerms"`

	RegCertificate    *Attachment `json:"-"`
	DarpanCertificate *Attachment `json:"-"`
	PanCard           *Attachment `json:"-"`
	RepIDProof        *Attachment `json:"-"`
}

func (f *NGOForm) Role() domain.Role   { return domain.RoleNGO }
func (f *NGOForm) TermsAccepted() bool { return f.AcceptedTerms }
