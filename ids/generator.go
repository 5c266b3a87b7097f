// Package ids mints item identifiers. An id encodes the creation type, a
// timestamp and a random suffix: globally unique but still readable when
// debugging a persisted blob by hand.
package ids

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/nanoshelf/types"
)

const timeLayout = "20060102T150405"

// New returns a fresh id for an item of the given type, e.g.
// "folder-20240131T142233-9f1c04ab". Uniqueness comes from the uuid-derived
// suffix; the type and timestamp are purely diagnostic.
func New(t types.ItemType, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", t, now.UTC().Format(timeLayout), suffix)
}

// CreationType extracts the type segment an id was minted with. This exists
// for migration diagnostics and log messages only; runtime type dispatch
// always goes through Item.Type.
func CreationType(id string) (types.ItemType, bool) {
	idx := strings.IndexByte(id, '-')
	if idx <= 0 {
		return "", false
	}
	t := types.ItemType(id[:idx])
	if !t.Valid() {
		return "", false
	}
	return t, true
}
