package validator

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/anshk25/formbot/internal/domain"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var commandTypes = map[string]struct{}{
	"output-text":  {},
	"output-image": {},
	"input-text":   {},
	"input-number": {},
}

func ValidateRegister(username, email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateUserUpdate(oldUsername, oldEmail string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(oldUsername) == "" && strings.TrimSpace(oldEmail) == "" {
		errs.Add("oldUsername", "Either oldUsername or oldEmail is required")
	}

	return errs
}

// ValidateGrants checks a proposed sharing batch: at least one entry, each
// with an email and a known access level.
func ValidateGrants(grants []domain.Grant) ValidationErrors {
	errs := make(ValidationErrors)

	if len(grants) == 0 {
		errs.Add("sharedWith", "At least one grant is required")
		return errs
	}

	for _, g := range grants {
		if strings.TrimSpace(g.Email) == "" {
			errs.Add("sharedWith", "Every grant needs an email")
			break
		}
		if g.Access != domain.AccessView && g.Access != domain.AccessEdit {
			errs.Add("sharedWith", "Access must be view or edit")
			break
		}
	}

	return errs
}

func ValidateFolder(name string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Folder name is required")
	} else if len(name) > 100 {
		errs.Add("name", "Folder name is too long")
	}

	return errs
}

func ValidateFormbot(name, workspaceID, folderName string, commandTypesUsed []string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Formbot name is required")
	}
	if strings.TrimSpace(workspaceID) == "" {
		errs.Add("workspaceId", "Workspace is required")
	}
	if strings.TrimSpace(folderName) == "" {
		errs.Add("folderName", "Folder name is required")
	}
	validateCommandTypes(commandTypesUsed, errs)

	return errs
}

func ValidateCommands(commandTypesUsed []string) ValidationErrors {
	errs := make(ValidationErrors)
	validateCommandTypes(commandTypesUsed, errs)
	return errs
}

func validateCommandTypes(types []string, errs ValidationErrors) {
	for _, t := range types {
		if _, ok := commandTypes[t]; !ok {
			errs.Add("commands", "Unknown command type "+t)
			return
		}
	}
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}
}
