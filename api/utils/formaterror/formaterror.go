package formaterror

import "strings"

// FormatError maps raw storage errors onto the field-keyed messages the
// frontend renders next to inputs.
func FormatError(err string) map[string]string {
	errorMessages := make(map[string]string)

	if strings.Contains(err, "username") {
		errorMessages["Taken_username"] = "Username Already Taken"
	}
	if strings.Contains(err, "email") {
		errorMessages["Taken_email"] = "Email Already Taken"
	}
	if strings.Contains(err, "hashedPassword") || strings.Contains(err, "crypto/bcrypt") {
		errorMessages["Incorrect_password"] = "Incorrect Password"
	}
	if strings.Contains(err, "record not found") || strings.Contains(err, "not found") {
		errorMessages["Not_found"] = "Record Not Found"
	}

	if len(errorMessages) > 0 {
		return errorMessages
	}
	return map[string]string{"Incorrect_details": "Incorrect Details"}
}
