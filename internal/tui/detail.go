package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/models"
)

type carDetailModel struct {
	id      models.ID
	data    models.CarWithActions
	loaded  bool
	idx     int
	sortKey int
	order   service.SortOrder
	// filter is an index into models.ActionTypes, -1 shows every type.
	filter int
	status string
}

func newCarDetailModel(car models.Car) carDetailModel {
	return carDetailModel{
		id:     car.ID,
		data:   models.CarWithActions{Car: car},
		order:  service.Descending,
		filter: -1,
	}
}

func (m carDetailModel) filterTypes() []models.ActionType {
	if m.filter < 0 {
		return nil
	}
	return []models.ActionType{models.ActionTypes[m.filter]}
}

func (m carDetailModel) visible() []models.Action {
	filtered := service.FilterActions(m.data.Actions, m.filterTypes()...)
	return service.SortActions(filtered, service.SortKeys[m.sortKey], m.order)
}

func (m carDetailModel) current() (models.Action, bool) {
	actions := m.visible()
	if m.idx < 0 || m.idx >= len(actions) {
		return models.Action{}, false
	}
	return actions[m.idx], true
}

func (m carDetailModel) clampCursor() carDetailModel {
	m.idx = min(m.idx, len(m.visible())-1)
	m.idx = max(m.idx, 0)
	return m
}

func (m carDetailModel) nextSortKey() carDetailModel {
	m.sortKey = (m.sortKey + 1) % len(service.SortKeys)
	return m
}

func (m carDetailModel) nextFilter() carDetailModel {
	m.filter++
	if m.filter >= len(models.ActionTypes) {
		m.filter = -1
	}
	m.idx = 0
	return m
}

func imageSummary(img *models.Image) string {
	if img == nil {
		return "-"
	}
	switch img.Kind() {
	case models.ImageEmbedded:
		return fmt.Sprintf("embedded, %d bytes", len(img.Data()))
	case models.ImageReferenced:
		return img.URI()
	default:
		return "-"
	}
}

func (m carDetailModel) View() string {
	car := m.data.Car

	var b strings.Builder
	fmt.Fprintf(&b, "Model:  %s\n", dashIfEmpty(car.Model))
	fmt.Fprintf(&b, "Plate:  %s\n", dashIfEmpty(car.PlateNumber))
	fmt.Fprintf(&b, "Year:   %s\n", dashIfEmpty(car.Year))
	fmt.Fprintf(&b, "Photo:  %s\n", imageSummary(car.Image))
	fmt.Fprintf(&b, "ID:     %s\n\n", car.ID)

	filter := "all"
	if types := m.filterTypes(); len(types) > 0 {
		filter = string(types[0])
	}
	fmt.Fprintf(&b, "Actions by %s %s, type: %s\n", service.SortKeys[m.sortKey], m.order, filter)

	actions := m.visible()
	switch {
	case !m.loaded:
		b.WriteString("Loading...\n")
	case len(actions) == 0:
		b.WriteString("No actions\n")
	default:
		var total float64
		for i, a := range actions {
			total += a.Cost
			cursor := "  "
			line := fmt.Sprintf("%-19s %-12s %-24s %10.2f", fitText(a.Date, 19), a.Type, fitText(a.Action, 24), a.Cost)
			if a.ServiceStationName != "" {
				line += "  @ " + fitText(a.ServiceStationName, 20)
			}
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		fmt.Fprintf(&b, "\nTotal: %.2f\n", total)
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}

	hotKeys := "n new  e edit  d delete  s sort  o order  f type  p photo  c copy id  r reload  esc back"
	return renderPage(titleStyle.Render(dashIfEmpty(car.Name)), b.String(), hotKeys)
}
