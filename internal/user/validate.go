package user

import (
	"regexp"
	"strings"
)

// format rules for the add form
var (
	emailRe   = regexp.MustCompile(`\S+@\S+\.\S+`)
	phoneRe   = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
	websiteRe = regexp.MustCompile(`^(https?://)?([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(:\d{1,5})?(/\S*)?$`)
)

// Validate checks a candidate record before it is accepted into the local
// store. It returns a map of field name to message; an empty map means the
// candidate is valid. Every field is checked independently so the form can
// display all violations at once.
func Validate(u User) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(u.Name) == "" {
		errs["name"] = "Full Name is required"
	}
	if strings.TrimSpace(u.Username) == "" {
		errs["username"] = "Username is required"
	}

	switch {
	case strings.TrimSpace(u.Email) == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(u.Email):
		errs["email"] = "Email address is invalid"
	}

	switch {
	case strings.TrimSpace(u.Phone) == "":
		errs["phone"] = "Phone number is required"
	case !phoneRe.MatchString(u.Phone):
		errs["phone"] = "Phone number is invalid"
	}

	switch {
	case strings.TrimSpace(u.Website) == "":
		errs["website"] = "Website is required"
	case !websiteRe.MatchString(u.Website):
		errs["website"] = "Website URL is invalid"
	}

	if strings.TrimSpace(u.Company.Name) == "" {
		errs["company.name"] = "Company Name is required"
	}
	if strings.TrimSpace(u.Company.CatchPhrase) == "" {
		errs["company.catchPhrase"] = "Catch Phrase is required"
	}
	if strings.TrimSpace(u.Company.BS) == "" {
		errs["company.bs"] = "Business Service is required"
	}
	if strings.TrimSpace(u.Address.Full) == "" {
		errs["address.full"] = "Full Address is required"
	}

	return errs
}
