package service

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/MKhiriev/go-garage/models"
)

// SortKey selects the action field to order by.
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByCost  SortKey = "cost"
	SortByType  SortKey = "type"
	SortByLabel SortKey = "label"
)

// SortKeys lists the action sort keys in display order.
var SortKeys = []SortKey{SortByDate, SortByCost, SortByType, SortByLabel}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// CarSortKey selects the car field to order by.
type CarSortKey string

const (
	CarSortByName  CarSortKey = "name"
	CarSortByYear  CarSortKey = "year"
	CarSortByModel CarSortKey = "model"
)

// SortActions returns a sorted copy of items. The sort is stable: actions
// with equal keys keep their input order in both directions. Dates that do
// not parse sort before every valid date. An unknown key keeps input order.
func SortActions(items []models.Action, key SortKey, order SortOrder) []models.Action {
	sorted := slices.Clone(items)

	var compare func(a, b models.Action) int
	switch key {
	case SortByDate:
		compare = func(a, b models.Action) int {
			return actionTime(a).Compare(actionTime(b))
		}
	case SortByCost:
		compare = func(a, b models.Action) int { return cmp.Compare(a.Cost, b.Cost) }
	case SortByType:
		compare = func(a, b models.Action) int { return cmp.Compare(a.Type, b.Type) }
	case SortByLabel:
		compare = func(a, b models.Action) int { return cmp.Compare(a.Action, b.Action) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, directed(compare, order))
	return sorted
}

// SortCars returns a sorted copy of cars. Years compare numerically.
func SortCars(cars []models.Car, key CarSortKey, order SortOrder) []models.Car {
	sorted := slices.Clone(cars)

	var compare func(a, b models.Car) int
	switch key {
	case CarSortByName:
		compare = func(a, b models.Car) int { return cmp.Compare(a.Name, b.Name) }
	case CarSortByModel:
		compare = func(a, b models.Car) int { return cmp.Compare(a.Model, b.Model) }
	case CarSortByYear:
		compare = func(a, b models.Car) int { return cmp.Compare(carYear(a), carYear(b)) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, directed(compare, order))
	return sorted
}

// FilterActions returns the actions whose type is one of types, in input
// order. Without types every action is returned.
func FilterActions(items []models.Action, types ...models.ActionType) []models.Action {
	if len(types) == 0 {
		return slices.Clone(items)
	}

	filtered := make([]models.Action, 0, len(items))
	for _, a := range items {
		if slices.Contains(types, a.Type) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// FilterByOwner returns the actions of car carID, in input order.
func FilterByOwner(items []models.Action, carID models.ID) []models.Action {
	filtered := make([]models.Action, 0)
	for _, a := range items {
		if a.CarID == carID {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func directed[T any](compare func(a, b T) int, order SortOrder) func(a, b T) int {
	if order == Descending {
		return func(a, b T) int { return compare(b, a) }
	}
	return compare
}

func actionTime(a models.Action) time.Time {
	t, err := models.ParseDate(a.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func carYear(c models.Car) int {
	year, err := strconv.Atoi(c.Year)
	if err != nil {
		return 0
	}
	return year
}
