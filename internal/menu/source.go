package menu

// Predicate decides whether an item applies to the current selection,
// judging the request's check-props (which tool produced the selection,
// whether a measurement value exists, and so on).
type Predicate func(checkProps map[string]any) bool

// ItemDef is a declared menu item plus its applicability predicate.
type ItemDef struct {
	ItemDescriptor
	When Predicate // nil means always shown
}

// Group is a named set of item definitions. Top-level menus name one or more
// groups; submenu navigation targets a single group by id.
type Group struct {
	ID    string
	Items []ItemDef
}

// StaticSource serves menu items from declared groups, filtered per request.
type StaticSource struct {
	groups map[string]Group
}

// NewStaticSource builds a source from group definitions. Later groups with
// a duplicate id replace earlier ones.
func NewStaticSource(groups ...Group) *StaticSource {
	s := &StaticSource{groups: make(map[string]Group, len(groups))}
	for _, g := range groups {
		s.groups[g.ID] = g
	}
	return s
}

// MenuItems returns the applicable items for a request. When activeMenuID is
// set (submenu navigation) only that group is consulted; otherwise the
// requested groups are walked in order. Unknown group ids are skipped.
func (s *StaticSource) MenuItems(checkProps map[string]any, _ *InputEvent, groups []string, _ map[string]any, activeMenuID string) []ItemDescriptor {
	ids := groups
	if activeMenuID != "" {
		ids = []string{activeMenuID}
	}

	var out []ItemDescriptor
	for _, id := range ids {
		g, ok := s.groups[id]
		if !ok {
			continue
		}
		for _, def := range g.Items {
			if def.When == nil || def.When(checkProps) {
				out = append(out, def.ItemDescriptor)
			}
		}
	}
	return out
}

// ToolIs returns a predicate matching selections produced by the named tool.
func ToolIs(tool string) Predicate {
	return func(checkProps map[string]any) bool {
		got, _ := checkProps["tool"].(string)
		return got == tool
	}
}

// HasKey returns a predicate requiring a check-prop to be present.
func HasKey(key string) Predicate {
	return func(checkProps map[string]any) bool {
		_, ok := checkProps[key]
		return ok
	}
}
