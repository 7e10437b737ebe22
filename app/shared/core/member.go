package core

import (
	"strings"
)

// FallbackFullName returns the name to store for a member.
// The display name of the linked identity is used only when no name was entered
// and an identity is linked. A custom name is never overwritten.
func FallbackFullName(fullName string, userLinked bool, displayName string) string {
	if strings.TrimSpace(fullName) != "" || !userLinked {
		return fullName
	}

	return displayName
}
