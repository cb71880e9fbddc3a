package jurifyapi

import (
	"net/url"
	"strconv"
)

// AuthResponse is the backend's login/verification/me payload. Lawyer and NGO
// extras are carried so dashboards can render them without another call.
type AuthResponse struct {
	AccessToken     string `json:"accessToken,omitempty"`
	RefreshToken    string `json:"refreshToken,omitempty"`
	TokenType       string `json:"tokenType,omitempty"`
	UserID          int64  `json:"userId"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Dob             string `json:"dob,omitempty"`

	BarCouncilNumber  string `json:"barCouncilNumber,omitempty"`
	BarCouncilState   string `json:"barCouncilState,omitempty"`
	EnrollmentYear    *int   `json:"enrollmentYear,omitempty"`
	LawFirmName       string `json:"lawFirmName,omitempty"`
	YearsOfExperience *int   `json:"yearsOfExperience,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Languages         string `json:"languages,omitempty"`

	NgoName   string `json:"ngoName,omitempty"`
	DarpanID  string `json:"darpanId,omitempty"`
	RepName   string `json:"repName,omitempty"`
	RepRole   string `json:"repRole,omitempty"`
	RepEmail  string `json:"repEmail,omitempty"`
	RepGender string `json:"repGender,omitempty"`

	AddressLine1 string `json:"addressLine1,omitempty"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	Pincode      string `json:"pincode,omitempty"`

	VerificationStatus string `json:"verificationStatus,omitempty"`
	IsVerified         *bool  `json:"isVerified,omitempty"`
	IsActive           *bool  `json:"isActive,omitempty"`
}

// HasTokens reports whether the response carries a usable token pair.
func (r *AuthResponse) HasTokens() bool {
	return r != nil && r.AccessToken != "" && r.RefreshToken != ""
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterResponse struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Message      string `json:"message,omitempty"`
	PollingToken string `json:"pollingToken,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// FilePart is one binary attachment of a registration submission.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// RegisterRequest is the multipart body: Data is sent as the JSON "data"
// part, followed by every file part in order.
type RegisterRequest struct {
	Data  any
	Files []FilePart
}

// PollResult is the outcome of one verification poll.
type PollResult struct {
	Verified bool
	Auth     *AuthResponse
}

// LocationUpdate matches the backend's location DTO.
type LocationUpdate struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	AddressLine1 string  `json:"addressLine1,omitempty"`
	AddressLine2 string  `json:"addressLine2,omitempty"`
	City         string  `json:"city,omitempty"`
	State        string  `json:"state,omitempty"`
	Pincode      string  `json:"pincode,omitempty"`
	Country      string  `json:"country,omitempty"`
}

// DirectoryQuery holds the public directory search parameters. Zero values
// are omitted, except Page and Size which are always sent.
type DirectoryQuery struct {
	Q              string
	State          string
	City           string
	Type           string
	Specialization string
	MinExp         *int
	MaxExp         *int
	MinRating      float64
	MaxRating      float64
	Languages      string
	Page           int
	Size           int
}

// Values encodes the query the way the directory endpoint expects.
func (q DirectoryQuery) Values() url.Values {
	v := url.Values{}
	setIf := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setIf("q", q.Q)
	setIf("state", q.State)
	setIf("city", q.City)
	if q.Type != "" && q.Type != "all" {
		v.Set("type", q.Type)
	}
	setIf("specialization", q.Specialization)
	if q.MinExp != nil {
		v.Set("minExp", strconv.Itoa(*q.MinExp))
	}
	if q.MaxExp != nil {
		v.Set("maxExp", strconv.Itoa(*q.MaxExp))
	}
	if q.MinRating > 0 {
		v.Set("minRating", strconv.FormatFloat(q.MinRating, 'f', -1, 64))
	}
	if q.MaxRating > 0 {
		v.Set("maxRating", strconv.FormatFloat(q.MaxRating, 'f', -1, 64))
	}
	setIf("languages", q.Languages)
	size := q.Size
	if size <= 0 {
		size = 10
	}
	v.Set("page", strconv.Itoa(max(q.Page, 0)))
	v.Set("size", strconv.Itoa(size))
	return v
}
