package validators

import "github.com/BruksfildServices01/store-rating/internal/httperr"

const PasswordRuleMessage = "Password must be 8-16 characters with at least one uppercase and one special character"

// NewUser checks the fields of a user about to be created, in the order the
// API has always reported them: name, address, email, password.
func NewUser(name, email, password, address string) error {
	if !ValidateName(name) {
		return httperr.Validation("invalid_name", "Name must be between 20 and 60 characters")
	}
	if !ValidateAddress(address) {
		return httperr.Validation("invalid_address", "Address cannot exceed 400 characters")
	}
	if !ValidateEmail(email) {
		return httperr.Validation("invalid_email", "Invalid email format")
	}
	if !ValidatePassword(password) {
		return httperr.Validation("invalid_password", PasswordRuleMessage)
	}
	return nil
}

// Registration is NewUser for self sign-up, which has always worded the
// email failure differently.
func Registration(name, email, password, address string) error {
	err := NewUser(name, email, password, address)
	if httperr.IsBusiness(err, "invalid_email") {
		return httperr.Validation("invalid_email", "Please enter a valid email")
	}
	return err
}

func NewStore(name, email, address string) error {
	if !ValidateName(name) {
		return httperr.Validation("invalid_name", "Store name must be between 20 and 60 characters")
	}
	if !ValidateEmail(email) {
		return httperr.Validation("invalid_email", "Invalid email format")
	}
	if !ValidateAddress(address) {
		return httperr.Validation("invalid_address", "Address cannot exceed 400 characters")
	}
	return nil
}

func NewPassword(password string) error {
	if !ValidatePassword(password) {
		return httperr.Validation("invalid_password", "New "+lowerFirst(PasswordRuleMessage))
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
