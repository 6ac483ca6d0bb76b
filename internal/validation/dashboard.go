package validation

import (
	"fmt"

	"github.com/google/uuid"

	"docboard/internal/domain"
)

// Dashboards validates the full dashboard list: uuids unique across the
// list, item uuids unique within each project, names non-empty.
func Dashboards(list []domain.DashboardProject) *Error {
	e := &Error{}

	seen := make(map[uuid.UUID]bool, len(list))
	for i, p := range list {
		path := fmt.Sprintf("dashboard_list[%d]", i)
		if p.Name == "" {
			e.add(path+".name", "name is required")
		}
		if seen[p.UUID] {
			e.add(path+".uuid", "duplicate dashboard uuid %s", p.UUID)
		}
		seen[p.UUID] = true

		items := make(map[uuid.UUID]bool, len(p.Items))
		for j, item := range p.Items {
			if items[item.UUID] {
				e.add(fmt.Sprintf("%s.items[%d].uuid", path, j), "duplicate item uuid %s", item.UUID)
			}
			items[item.UUID] = true
		}
	}

	return e.orNil()
}
