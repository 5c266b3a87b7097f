package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/arthur-debert/nanoshelf/types"
)

// Legacy schema: before the unified item list, the blob carried separate
// top-level "notebooks" and "documents" arrays, with notebooks holding their
// document ids directly and expansion state split across two fields. The
// shape is detected structurally and migrated exactly once; the migrated
// blob is persisted back immediately.

type legacyBlob struct {
	Notebooks         []legacyNotebook `json:"notebooks"`
	Documents         []legacyDocument `json:"documents"`
	ExpandedNotebooks []string         `json:"expandedNotebooks"`
	ExpandedFolders   []string         `json:"expandedFolders"`
	SelectedItems     []string         `json:"selectedItems"`
	ClosedNotebooks   []string         `json:"closedNotebooks"`
}

type legacyNotebook struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Documents []string `json:"documents"`
	Created   string   `json:"created"`
}

type legacyDocument struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	BlockID  string   `json:"blockId"`
	ParentID string   `json:"parentId"`
	Order    int      `json:"order"`
	Children []string `json:"children"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
}

// migrateLegacy converts a legacy blob into the unified item list: notebooks
// become root-level notebook items carrying their old document-id list as
// children, documents and folders are copied through with the type
// normalized, and the two expansion fields are unioned into ExpandedItems.
func (a *Adapter) migrateLegacy(raw string) (*types.TreeData, error) {
	var legacy legacyBlob
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse legacy blob: %w", err)
	}

	now := a.clock()
	data := types.NewTreeData()

	for pos, nb := range legacy.Notebooks {
		created := now
		if nb.Created != "" {
			if t, err := time.Parse(time.RFC3339, nb.Created); err == nil {
				created = t
			}
		}
		children := nb.Documents
		if children == nil {
			children = []string{}
		}
		data.Items = append(data.Items, types.Item{
			ID:       nb.ID,
			Name:     nb.Name,
			Type:     types.ItemNotebook,
			Order:    pos,
			Children: children,
			Created:  created,
			Modified: now,
		})
	}

	for _, doc := range legacy.Documents {
		item := types.Item{
			ID:       doc.ID,
			Name:     doc.Name,
			Type:     legacyType(doc),
			BlockID:  doc.BlockID,
			ParentID: doc.ParentID,
			Order:    doc.Order,
			Icon:     doc.Icon,
			Color:    doc.Color,
			Created:  now,
			Modified: now,
		}
		if item.Type.IsContainer() {
			item.Children = doc.Children
			if item.Children == nil {
				item.Children = []string{}
			}
		}
		if item.ParentID == "" {
			// Old blobs relied on the notebook side alone for parentage; the
			// position in the notebook's document list is the sibling order.
			if nbID, pos := owningNotebook(legacy.Notebooks, doc.ID); nbID != "" {
				item.ParentID = nbID
				item.Order = pos
			}
		}
		data.Items = append(data.Items, item)
	}

	data.Settings.ExpandedItems = unionStrings(legacy.ExpandedNotebooks, legacy.ExpandedFolders)
	data.Settings.SelectedItems = append(data.Settings.SelectedItems, legacy.SelectedItems...)
	data.Settings.ClosedNotebooks = append(data.Settings.ClosedNotebooks, legacy.ClosedNotebooks...)

	data.Normalize()
	return data, nil
}

// legacyType normalizes the loose type strings of the old schema. Entries
// that carried a children list were folders even when untyped.
func legacyType(doc legacyDocument) types.ItemType {
	if doc.Type == "" && doc.Children != nil {
		return types.ItemFolder
	}
	t := types.NormalizeType(doc.Type)
	if t == types.ItemNotebook {
		// Old blobs never nested notebooks; a stray notebook type on a
		// document entry is treated as a folder.
		return types.ItemFolder
	}
	return t
}

// owningNotebook finds the notebook whose document list contains id and the
// position of id within that list.
func owningNotebook(notebooks []legacyNotebook, id string) (string, int) {
	for _, nb := range notebooks {
		for pos, docID := range nb.Documents {
			if docID == id {
				return nb.ID, pos
			}
		}
	}
	return "", 0
}

func unionStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, list := range lists {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}
