package tui

import (
	"github.com/MKhiriev/go-garage/models"
)

// pageLoadedMsg carries a pager result. navigation is set for loads the
// user asked for by moving between pages.
type pageLoadedMsg struct {
	page       models.Page[models.Car]
	err        error
	navigation bool
}

// feedLoadedMsg carries the cars the scrolling list has accumulated.
type feedLoadedMsg struct {
	items   []models.Car
	hasNext bool
	err     error
}

type carLoadedMsg struct {
	id  models.ID
	car models.CarWithActions
	err error
}

// mutationDoneMsg reports a finished write. On success the browser moves to
// next and reloads reloadCar when it is set.
type mutationDoneMsg struct {
	err       error
	next      screen
	reloadCar models.ID
}

type persistFailedMsg struct {
	err error
}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
