package hierarchy

import (
	"regexp"
	"strings"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateNewItem checks the fields required to create an item.
func ValidateNewItem(code, name string) error {
	verr := &ValidationError{}
	checkCode(verr, code)
	checkName(verr, name)
	return verr.orNil()
}

// ValidateItemPatch checks only the fields a partial update supplies.
func ValidateItemPatch(code, name *string, changeReason string) error {
	verr := &ValidationError{}
	if code != nil {
		checkCode(verr, *code)
	}
	if name != nil {
		checkName(verr, *name)
	}
	checkChangeReason(verr, changeReason)
	return verr.orNil()
}

// ValidateChangeReason enforces the audit rationale required for update,
// delete and reorder. Enforced here rather than only at the API boundary so
// the engine cannot write a changelog entry without one.
func ValidateChangeReason(changeReason string) error {
	verr := &ValidationError{}
	checkChangeReason(verr, changeReason)
	return verr.orNil()
}

func checkCode(verr *ValidationError, code string) {
	if strings.TrimSpace(code) == "" {
		verr.add("code", "code is required")
		return
	}
	if !codePattern.MatchString(code) {
		verr.add("code", "code may only contain letters, digits, '.', '_' and '-'")
	}
}

func checkName(verr *ValidationError, name string) {
	if strings.TrimSpace(name) == "" {
		verr.add("name", "name is required")
	}
}

func checkChangeReason(verr *ValidationError, changeReason string) {
	if strings.TrimSpace(changeReason) == "" {
		verr.add("changeReason", "change reason is required")
	}
}
