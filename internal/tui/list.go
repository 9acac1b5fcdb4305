package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/models"
)

// carSortKeys lists the list orders. The empty key keeps the order the
// garage returned.
var carSortKeys = []service.CarSortKey{"", service.CarSortByName, service.CarSortByYear, service.CarSortByModel}

type carListModel struct {
	page     models.Page[models.Car]
	loaded   bool
	inflight int
	idx      int
	sortKey  int
	order    service.SortOrder
	spinner  spinner.Model
	status   string

	// scroll shows every car loaded so far instead of one page.
	scroll      bool
	feed        []models.Car
	feedHasNext bool
	feedLoading bool
}

func newCarListModel() carListModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return carListModel{spinner: s, order: service.Ascending}
}

func (m carListModel) loading() bool {
	return m.inflight > 0 || m.feedLoading
}

func (m carListModel) items() []models.Car {
	if m.scroll {
		return m.feed
	}
	return m.page.Items
}

func (m carListModel) visible() []models.Car {
	return service.SortCars(m.items(), carSortKeys[m.sortKey], m.order)
}

func (m carListModel) current() (models.Car, bool) {
	cars := m.visible()
	if m.idx < 0 || m.idx >= len(cars) {
		return models.Car{}, false
	}
	return cars[m.idx], true
}

func (m carListModel) clampCursor() carListModel {
	m.idx = min(m.idx, len(m.items())-1)
	m.idx = max(m.idx, 0)
	return m
}

func (m carListModel) View() string {
	title := titleStyle.Render("Garage")
	if m.loading() {
		title += "  " + m.spinner.View()
	}

	var b strings.Builder
	switch {
	case !m.loaded && m.loading():
		b.WriteString("Loading...\n")
	case len(m.items()) == 0:
		b.WriteString("No cars yet\n")
	default:
		for i, car := range m.visible() {
			cursor := "  "
			line := fmt.Sprintf("%-20s %-16s %-10s %s", fitText(car.Name, 20), fitText(car.Model, 16), car.PlateNumber, car.Year)
			if i == m.idx {
				cursor = "> "
				line = selectedStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
	}

	b.WriteString("\n")
	if m.scroll {
		fmt.Fprintf(&b, "%d cars loaded", len(m.feed))
		if m.feedHasNext {
			b.WriteString(", more below")
		}
	} else {
		fmt.Fprintf(&b, "page %d of %d  (%d cars)", max(m.page.PageIndex, 1), max(m.page.TotalPages, 1), m.page.TotalCount)
	}
	if key := carSortKeys[m.sortKey]; key != "" {
		fmt.Fprintf(&b, "  sorted by %s %s", key, m.order)
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}

	hotKeys := "enter open  n new  d delete  c copy id  s sort  o order  ←/→ page  v scroll  r reload  i about  q quit"
	if m.scroll {
		hotKeys = "enter open  n new  d delete  c copy id  s sort  o order  ↓/→ more  v pages  r reload  i about  q quit"
	}
	return renderPage(title, b.String(), hotKeys)
}
