package registration

import (
	"fmt"
	"time"
)

const (
	PhoneInvalidMessage   = "Please enter a valid 10-digit Indian mobile number starting with 6–9."
	TermsRequiredMessage  = "You must agree to the Terms & Conditions and Privacy Policy."
	FixErrorsMessage      = "Please fix all errors before submitting"
	LocationMessage       = "Please select your location on the map"
	FileTypeMessage       = "Please upload a valid file type (JPEG, PNG, or PDF)"
	FileSizeMessage       = "File size should not exceed 5MB"
	MaxAttachmentBytes    = 5 * 1024 * 1024
	passwordMismatch      = "Passwords do not match"
	experienceRangeReason = "Please enter valid years of experience (0-70)"
)

// requiredMessages is shown when a field is empty, ahead of any format rule.
var requiredMessages = map[string]string{
	"firstName":          "First name is required",
	"lastName":           "Last name is required",
	"email":              "Email is required",
	"phoneNumber":        "Phone number is required",
	"dateOfBirth":        "Date of birth is required",
	"gender":             "Please select your gender",
	"password":           "Password is required",
	"confirmPassword":    "Please confirm your password",
	"addressLine1":       "Street address is required",
	"officeAddressLine1": "Office address is required",
	"city":               "City is required",
	"state":              "State is required",
	"pincode":            "Postal code is required",
	"barCouncilNumber":   "Bar Council number is required",
	"barCouncilState":    "Bar Council state is required",
	"enrollmentYear":     "Enrollment year is required",
	"yearsOfExperience":  "Years of experience is required",
	"ngoName":            "NGO name is required",
	"darpanId":           "Darpan ID is required",
	"officialEmail":      "Official email is required",
	"areasOfWork":        "Select at least one area of work",
	"repName":            "Representative name is required",
	"repRole":            "Representative role is required",
	"repEmail":           "Representative email is required",
	"repPhone":           "Representative phone is required",
	"repDob":             "Date of birth is required",
	"repGender":          "Please select gender",
}

// fieldMessages overrides the per-tag default for specific fields.
var fieldMessages = map[string]map[string]string{
	"firstName": {
		TagTrimMin: "First name must be at least 2 characters",
		TagLetters: "First name should only contain letters",
	},
	"lastName": {
		TagTrimMin: "Last name must be at least 2 characters",
		TagLetters: "Last name should only contain letters",
	},
	"city":               {TagLetters: "City should only contain letters"},
	"state":              {TagLetters: "State should only contain letters"},
	"repName":            {TagLetters: "Representative name should only contain letters"},
	"addressLine1":       {TagTrimMin: "Please enter a complete address"},
	"officeAddressLine1": {TagTrimMin: "Please enter a complete address"},
	"officeAddress":      {TagTrimMin: "Please enter a complete address"},
	"ngoName":            {TagTrimMin: "NGO name must be at least 3 characters"},
	"darpanId":           {TagTrimMin: "Please enter a valid Darpan ID"},
	"dateOfBirth":        {TagMinAge: "You must be at least %s years old"},
	"repDob":             {TagMinAge: "Representative must be at least %s years old"},
	"registrationDate": {
		TagISODate:   "Please enter a valid registration date",
		TagNotFuture: "Registration date cannot be in the future",
	},
	"yearsOfExperience": {
		"min": experienceRangeReason,
		"max": experienceRangeReason,
	},
	"maxProBonoCases": {"min": "Pro bono case limit cannot be negative"},
}

var tagMessages = map[string]string{
	TagEmailAddr:      "Please enter a valid email address",
	TagIndianMobile:   PhoneInvalidMessage,
	TagPostalCode:     "Please enter a valid postal code",
	TagStrongPassword: "Password does not meet all requirements",
	TagISODate:        "Please enter a valid date of birth",
	TagMaxAge:         "Please enter a valid date of birth",
	TagNotFuture:      "Date of birth cannot be in the future",
	"eqfield":         passwordMismatch,
	"url":             "Please enter a valid website URL",
}

func isRequiredTag(tag string) bool {
	return tag == TagFilled || tag == "required"
}

// messageFor renders the contract message for a failed (field, tag) pair.
func messageFor(field, tag, param string, now time.Time) string {
	if isRequiredTag(tag) || (field == "areasOfWork" && tag == "min") {
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
		return "This field is required"
	}
	if msg, ok := fieldMessages[field][tag]; ok {
		if tag == TagMinAge {
			return fmt.Sprintf(msg, param)
		}
		return msg
	}
	if tag == TagYearRange {
		return fmt.Sprintf("Please enter a valid year between %s and %d", param, now.Year())
	}
	if msg, ok := tagMessages[tag]; ok {
		return msg
	}
	return "Invalid value"
}
