package merge

import "strings"

// Canonical field keys shared by templates and recipient records.
const (
	FieldFirstName = "firstname"
	FieldLastName  = "lastname"
	FieldEmail     = "email"
	FieldUsername  = "username"
)

// fieldAliases maps lowercase, trimmed spellings to their canonical key.
// Every canonical key also maps to itself so canonicalization stays idempotent.
var fieldAliases = map[string]string{
	// First name
	"firstname":  FieldFirstName,
	"first_name": FieldFirstName,
	"first name": FieldFirstName,
	"first-name": FieldFirstName,
	"fname":      FieldFirstName,
	"given name": FieldFirstName,
	"given_name": FieldFirstName,

	// Last name
	"lastname":    FieldLastName,
	"last_name":   FieldLastName,
	"last name":   FieldLastName,
	"last-name":   FieldLastName,
	"lname":       FieldLastName,
	"surname":     FieldLastName,
	"family name": FieldLastName,
	"family_name": FieldLastName,

	// Email
	"email":         FieldEmail,
	"mail":          FieldEmail,
	"e-mail":        FieldEmail,
	"emailaddress":  FieldEmail,
	"email_address": FieldEmail,
	"email address": FieldEmail,
	"email-address": FieldEmail,

	// Username
	"username":  FieldUsername,
	"user_name": FieldUsername,
	"user name": FieldUsername,
	"login":     FieldUsername,
}

var braceStripper = strings.NewReplacer("{", "", "}", "")

// Canonicalize returns the canonical form of a field key. Braces are removed,
// surrounding whitespace trimmed and the result lower-cased before the alias
// lookup. Keys without an alias come back trimmed and lower-cased.
func Canonicalize(key string) string {
	key = strings.ToLower(strings.TrimSpace(braceStripper.Replace(key)))
	if canonical, ok := fieldAliases[key]; ok {
		return canonical
	}
	return key
}
