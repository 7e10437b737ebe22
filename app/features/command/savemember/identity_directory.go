package savemember

import (
	"context"
	"strings"
)

// IdentityDirectory resolves the display name of a linked identity.
// found is false when the directory does not know userRef.
type IdentityDirectory interface {
	DisplayName(ctx context.Context, userRef string) (name string, found bool, err error)
}

// StaticDirectory is an IdentityDirectory backed by a fixed map from user reference to display name.
type StaticDirectory map[string]string

func (d StaticDirectory) DisplayName(_ context.Context, userRef string) (string, bool, error) {
	name, found := d[userRef]

	return name, found, nil
}

// ParseStaticDirectory reads "ref=Display Name" entries separated by ";".
// Entries without "=" are skipped.
func ParseStaticDirectory(entries string) StaticDirectory {
	directory := make(StaticDirectory)

	for _, entry := range strings.Split(entries, ";") {
		ref, name, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}

		directory[strings.TrimSpace(ref)] = strings.TrimSpace(name)
	}

	return directory
}
