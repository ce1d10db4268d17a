package service

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

// AvatarCatalog is the avatar allow-list: the sorted *.png files in Dir, read
// on every call so new images show up without a restart. With no Dir, an
// unreadable one or one without images, the built-in set is used, so the
// list always matches what new accounts are assigned.
type AvatarCatalog struct {
	Dir string
}

func (c AvatarCatalog) List() []string {
	if c.Dir == "" {
		return slices.Clone(domain.DefaultAvatars)
	}
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return slices.Clone(domain.DefaultAvatars)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".png") {
			out = append(out, e.Name())
		}
	}
	if len(out) == 0 {
		return slices.Clone(domain.DefaultAvatars)
	}
	slices.Sort(out)
	return out
}

func (c AvatarCatalog) Allowed(name string) bool {
	if name == "" || name != filepath.Base(name) {
		return false
	}
	return slices.Contains(c.List(), name)
}
