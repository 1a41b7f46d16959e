package ui

import (
	"fmt"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/preview"
)

// TutorialItem wraps a catalog row to implement list.Item
type TutorialItem struct {
	Row catalog.Row
}

func (i TutorialItem) Title() string {
	return i.Row.Topic
}

func (i TutorialItem) Description() string {
	return fmt.Sprintf("%s • %s", i.Row.Category, i.Row.Keywords)
}

func (i TutorialItem) FilterValue() string {
	return i.Row.Topic + " " + i.Row.Keywords
}

// Target identifies the row for previews. The dataset index keeps two rows
// that share a document distinct.
func (i TutorialItem) Target() preview.Target {
	return preview.Target(fmt.Sprintf("%d:%s", i.Row.Index, i.Row.Filename))
}

// itemsFromView converts a rendered view into list items.
func itemsFromView(v catalog.View) []TutorialItem {
	items := make([]TutorialItem, len(v.Rows))
	for i, r := range v.Rows {
		items[i] = TutorialItem{Row: r}
	}
	return items
}
