package registration

import (
	"strconv"
	"strings"

	"jurify/internal/jurifyapi"
	pstrings "jurify/pkg/platform/strings"
)

const (
	defaultCountry         = "India"
	defaultCountryCode     = "+91"
	defaultLawyerLanguages = "English"
	defaultMaxProBonoCases = 5
)

// NGO registration types as the backend names them.
const (
	RegistrationTypeTrust    = "TRUST_REGISTRATION_ACT"
	RegistrationTypeSociety  = "SOCIETIES_REGISTRATION_ACT"
	RegistrationTypeSection8 = "SECTION_8_COMPANY"
	RegistrationTypeOther    = "OTHER"
)

// NGORegistrationType maps the form's ngoType to the backend enum.
func NGORegistrationType(ngoType string) string {
	switch strings.ToLower(strings.TrimSpace(ngoType)) {
	case "trust":
		return RegistrationTypeTrust
	case "society":
		return RegistrationTypeSociety
	case "section8":
		return RegistrationTypeSection8
	default:
		return RegistrationTypeOther
	}
}

type CitizenPayload struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	PhoneNumber  string   `json:"phoneNumber"`
	CountryCode  string   `json:"countryCode"`
	DateOfBirth  string   `json:"dateOfBirth"`
	Gender       string   `json:"gender"`
	AddressLine1 string   `json:"addressLine1"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Role         string   `json:"role"`
}

type LawyerPayload struct {
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	PhoneNumber        string   `json:"phoneNumber"`
	CountryCode        string   `json:"countryCode"`
	DateOfBirth        string   `json:"dateOfBirth"`
	Gender             string   `json:"gender"`
	BarCouncilNumber   string   `json:"barCouncilNumber"`
	BarCouncilState    string   `json:"barCouncilState"`
	EnrollmentYear     int      `json:"enrollmentYear"`
	YearsOfExperience  int      `json:"yearsOfExperience"`
	LawFirmName        string   `json:"lawFirmName,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	Languages          string   `json:"languages"`
	OfficeAddressLine1 string   `json:"officeAddressLine1"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Pincode            string   `json:"pincode"`
	Country            string   `json:"country"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Role               string   `json:"role"`
}

type NGOPayload struct {
	Email                    string   `json:"email"`
	Password                 string   `json:"password"`
	OrganizationName         string   `json:"organizationName"`
	RegistrationNumber       string   `json:"registrationNumber"`
	RegistrationType         string   `json:"registrationType"`
	RegistrationDate         string   `json:"registrationDate,omitempty"`
	RegisteringAuthority     string   `json:"registeringAuthority"`
	PanNumber                string   `json:"panNumber"`
	OrganizationPhone        string   `json:"organizationPhone"`
	OrganizationEmail        string   `json:"organizationEmail"`
	ContactPersonName        string   `json:"contactPersonName"`
	ContactPersonDesignation string   `json:"contactPersonDesignation"`
	ContactEmail             string   `json:"contactEmail"`
	ContactPhone             string   `json:"contactPhone"`
	ProBonoCommitment        bool     `json:"proBonoCommitment"`
	MaxProBonoCases          int      `json:"maxProBonoCases"`
	WebsiteURL               string   `json:"websiteUrl"`
	OfficeAddressLine1       string   `json:"officeAddressLine1"`
	City                     string   `json:"city"`
	State                    string   `json:"state"`
	Pincode                  string   `json:"pincode"`
	Latitude                 *float64 `json:"latitude"`
	Longitude                *float64 `json:"longitude"`
	AreasOfWork              []string `json:"areasOfWork"`
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func filePart(field string, a *Attachment) (jurifyapi.FilePart, bool) {
	if a == nil {
		return jurifyapi.FilePart{}, false
	}
	name := a.Filename
	if name == "" {
		name = field
	}
	return jurifyapi.FilePart{Field: field, Filename: name, ContentType: a.DetectedType(), Content: a.Content}, true
}

// BuildCitizenPayload builds the multipart request for a validated citizen form.
// The ID proof is sent as the "file" part.
func BuildCitizenPayload(f *CitizenForm) jurifyapi.RegisterRequest {
	req := jurifyapi.RegisterRequest{Data: CitizenPayload{
		Email:        strings.TrimSpace(f.Email),
		Password:     f.Password,
		FirstName:    strings.TrimSpace(f.FirstName),
		LastName:     strings.TrimSpace(f.LastName),
		PhoneNumber:  NormalizePhone(f.PhoneNumber),
		CountryCode:  orDefault(f.CountryCode, defaultCountryCode),
		DateOfBirth:  strings.TrimSpace(f.DateOfBirth),
		Gender:       strings.ToUpper(strings.TrimSpace(f.Gender)),
		AddressLine1: strings.TrimSpace(f.AddressLine1),
		City:         strings.TrimSpace(f.City),
		State:        strings.TrimSpace(f.State),
		Pincode:      strings.TrimSpace(f.Pincode),
		Country:      orDefault(f.Country, defaultCountry),
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		Role:         "citizen",
	}}
	if part, ok := filePart("file", f.IDProof); ok {
		req.Files = append(req.Files, part)
	}
	return req
}

// BuildLawyerPayload expects DeriveExperience to have run (ValidateLawyer does).
func BuildLawyerPayload(f *LawyerForm) jurifyapi.RegisterRequest {
	year, _ := strconv.Atoi(strings.TrimSpace(f.EnrollmentYear))
	experience := 0
	if f.YearsOfExperience != nil {
		experience = *f.YearsOfExperience
	}
	languages := pstrings.JoinList(pstrings.SplitList(f.Languages))
	req := jurifyapi.RegisterRequest{Data: LawyerPayload{
		Email:              strings.TrimSpace(f.Email),
		Password:           f.Password,
		FirstName:          strings.TrimSpace(f.FirstName),
		LastName:           strings.TrimSpace(f.LastName),
		PhoneNumber:        NormalizePhone(f.PhoneNumber),
		CountryCode:        orDefault(f.CountryCode, defaultCountryCode),
		DateOfBirth:        strings.TrimSpace(f.DateOfBirth),
		Gender:             strings.ToUpper(strings.TrimSpace(f.Gender)),
		BarCouncilNumber:   strings.TrimSpace(f.BarCouncilNumber),
		BarCouncilState:    strings.TrimSpace(f.BarCouncilState),
		EnrollmentYear:     year,
		YearsOfExperience:  experience,
		LawFirmName:        strings.TrimSpace(f.LawFirmName),
		Bio:                strings.TrimSpace(f.Bio),
		Languages:          orDefault(languages, defaultLawyerLanguages),
		OfficeAddressLine1: strings.TrimSpace(f.OfficeAddressLine1),
		City:               strings.TrimSpace(f.City),
		State:              strings.TrimSpace(f.State),
		Pincode:            strings.TrimSpace(f.Pincode),
		Country:            orDefault(f.Country, defaultCountry),
		Latitude:           f.Latitude,
		Longitude:          f.Longitude,
		Role:               "lawyer",
	}}
	if part, ok := filePart("file", f.BarCouncilID); ok {
		req.Files = append(req.Files, part)
	}
	return req
}

// BuildNGOPayload logs the organisation in with its official email.
func BuildNGOPayload(f *NGOForm) jurifyapi.RegisterRequest {
	maxCases := f.MaxProBonoCases
	if maxCases <= 0 {
		maxCases = defaultMaxProBonoCases
	}
	proBono := true
	if f.ProBonoCommitment != nil {
		proBono = *f.ProBonoCommitment
	}
	official := strings.TrimSpace(f.OfficialEmail)
	req := jurifyapi.RegisterRequest{Data: NGOPayload{
		Email:                    official,
		Password:                 f.Password,
		OrganizationName:         strings.TrimSpace(f.NgoName),
		RegistrationNumber:       strings.TrimSpace(f.RegistrationNumber),
		RegistrationType:         NGORegistrationType(f.NgoType),
		RegistrationDate:         strings.TrimSpace(f.RegistrationDate),
		RegisteringAuthority:     strings.TrimSpace(f.RegisteringAuthority),
		PanNumber:                strings.ToUpper(strings.TrimSpace(f.NgoPan)),
		OrganizationPhone:        NormalizePhone(f.OfficialPhone),
		OrganizationEmail:        official,
		ContactPersonName:        strings.TrimSpace(f.RepName),
		ContactPersonDesignation: strings.TrimSpace(f.RepRole),
		ContactEmail:             strings.TrimSpace(f.RepEmail),
		ContactPhone:             NormalizePhone(f.RepPhone),
		ProBonoCommitment:        proBono,
		MaxProBonoCases:          maxCases,
		WebsiteURL:               strings.TrimSpace(f.WebsiteURL),
		OfficeAddressLine1:       strings.TrimSpace(f.OfficeAddress),
		City:                     strings.TrimSpace(f.City),
		State:                    strings.TrimSpace(f.State),
		Pincode:                  strings.TrimSpace(f.Pincode),
		Latitude:                 f.Latitude,
		Longitude:                f.Longitude,
		AreasOfWork:              pstrings.DedupeAndTrim(f.AreasOfWork),
	}}
	for _, p := range []struct {
		field string
		a     *Attachment
	}{
		{"regCertificate", f.RegCertificate},
		{"darpanCertificate", f.DarpanCertificate},
		{"ngoPan", f.PanCard},
		{"repIdProof", f.RepIDProof},
	} {
		if part, ok := filePart(p.field, p.a); ok {
			req.Files = append(req.Files, part)
		}
	}
	return req
}

// BuildPayload dispatches on the concrete form type.
func BuildPayload(form Form) jurifyapi.RegisterRequest {
	switch f := form.(type) {
	case *CitizenForm:
		return BuildCitizenPayload(f)
	case *LawyerForm:
		return BuildLawyerPayload(f)
	case *NGOForm:
		return BuildNGOPayload(f)
	default:
		return jurifyapi.RegisterRequest{}
	}
}
