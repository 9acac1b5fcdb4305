package models

import (
	"fmt"
	"time"
)

// ActionType classifies a maintenance event.
type ActionType string

const (
	ActionRepair      ActionType = "repair"
	ActionMaintenance ActionType = "maintenance"
	ActionInspection  ActionType = "inspection"
	ActionOilChange   ActionType = "oil_change"
	ActionOther       ActionType = "other"
)

// ActionTypes lists every known action type in display order.
var ActionTypes = []ActionType{
	ActionRepair,
	ActionMaintenance,
	ActionInspection,
	ActionOilChange,
	ActionOther,
}

// Valid reports whether t is one of ActionTypes.
func (t ActionType) Valid() bool {
	for _, known := range ActionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Action is a maintenance, repair or inspection record of one car.
type Action struct {
	ID    ID `json:"id"`
	CarID ID `json:"car_id"`
	// Action is a short label, e.g. "Changed brakes".
	Action             string     `json:"action"`
	Type               ActionType `json:"type"`
	Details            string     `json:"details,omitempty"`
	Cost               float64    `json:"cost"`
	ServiceStationName string     `json:"service_station_name,omitempty"`
	Date               string     `json:"date"`
}

func (a Action) EntityID() ID { return a.ID }

func (a Action) WithID(id ID) Action {
	a.ID = id
	return a
}

// ActionPatch carries only the fields to change. Nil fields are left as is.
type ActionPatch struct {
	CarID              *ID         `json:"car_id,omitempty"`
	Action             *string     `json:"action,omitempty"`
	Type               *ActionType `json:"type,omitempty"`
	Details            *string     `json:"details,omitempty"`
	Cost               *float64    `json:"cost,omitempty"`
	ServiceStationName *string     `json:"service_station_name,omitempty"`
	Date               *string     `json:"date,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ActionPatch) IsEmpty() bool {
	return p.CarID == nil &&
		p.Action == nil &&
		p.Type == nil &&
		p.Details == nil &&
		p.Cost == nil &&
		p.ServiceStationName == nil &&
		p.Date == nil
}

// Apply merges p into a shallowly and returns the result. The identifier
// is never touched.
func (a Action) Apply(p ActionPatch) Action {
	if p.CarID != nil {
		a.CarID = *p.CarID
	}
	if p.Action != nil {
		a.Action = *p.Action
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Details != nil {
		a.Details = *p.Details
	}
	if p.Cost != nil {
		a.Cost = *p.Cost
	}
	if p.ServiceStationName != nil {
		a.ServiceStationName = *p.ServiceStationName
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	return a
}

// ServerDateLayout is the date format the garage server accepts for actions.
const ServerDateLayout = "2006-01-02 15:04:05"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	ServerDateLayout,
	"2006-01-02T15:04:05",
	time.DateOnly,
	time.RFC1123,
}

// ParseDate parses an action date in any of the formats seen in stored and
// server data.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", s)
}

// ServerDate renders an action date in [ServerDateLayout].
func ServerDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(ServerDateLayout), nil
}
