package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-garage/internal/app"
	"github.com/MKhiriev/go-garage/models"
)

type formField struct {
	label       string
	placeholder string
}

// formModel is a column of labelled text inputs. One input has focus.
type formModel struct {
	title      string
	labels     []string
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newFormModel(title string, fields ...formField) formModel {
	m := formModel{title: title}
	for _, f := range fields {
		in := textinput.New()
		in.Width = 50
		in.Placeholder = f.placeholder
		m.labels = append(m.labels, f.label)
		m.inputs = append(m.inputs, in)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m formModel) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func (m formModel) withValue(i int, v string) formModel {
	m.inputs[i].SetValue(v)
	return m
}

func (m formModel) focusNext() formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) focusPrev() formModel {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) View() string {
	width := 0
	for _, l := range m.labels {
		width = max(width, len(l))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		fmt.Fprintf(&b, "%-*s [%s]\n", width+1, m.labels[i]+":", in.View())
	}
	b.WriteString("\n")
	if m.submitting {
		b.WriteString(statusStyle.Render("saving..."))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("esc cancel  tab next field  enter save"))
	return b.String()
}

const (
	carFieldName = iota
	carFieldModel
	carFieldPlate
	carFieldYear
)

func newCarForm() formModel {
	return newFormModel("New car",
		formField{label: "Name", placeholder: "Family car"},
		formField{label: "Model", placeholder: "Honda Civic"},
		formField{label: "Plate number", placeholder: "AB123C"},
		formField{label: "Year", placeholder: "2015"},
	)
}

func carFromForm(m formModel) models.Car {
	return models.Car{
		Name:        m.value(carFieldName),
		Model:       m.value(carFieldModel),
		PlateNumber: m.value(carFieldPlate),
		Year:        m.value(carFieldYear),
	}
}

const (
	actionFieldLabel = iota
	actionFieldType
	actionFieldCost
	actionFieldDate
	actionFieldDetails
	actionFieldStation
)

// newActionForm opens an empty form, or one filled from action when editing.
func newActionForm(action *models.Action, now time.Time) formModel {
	types := make([]string, len(models.ActionTypes))
	for i, t := range models.ActionTypes {
		types[i] = string(t)
	}

	title := "New action"
	if action != nil {
		title = "Edit action: " + action.Action
	}

	m := newFormModel(title,
		formField{label: "Action", placeholder: "Changed brakes"},
		formField{label: "Type", placeholder: strings.Join(types, "|")},
		formField{label: "Cost", placeholder: "0"},
		formField{label: "Date", placeholder: time.DateOnly},
		formField{label: "Details"},
		formField{label: "Service station"},
	)

	if action == nil {
		m = m.withValue(actionFieldType, string(models.ActionMaintenance))
		return m.withValue(actionFieldDate, now.Format(time.DateOnly))
	}

	m = m.withValue(actionFieldLabel, action.Action)
	m = m.withValue(actionFieldType, string(action.Type))
	m = m.withValue(actionFieldCost, strconv.FormatFloat(action.Cost, 'f', -1, 64))
	m = m.withValue(actionFieldDate, action.Date)
	m = m.withValue(actionFieldDetails, action.Details)
	return m.withValue(actionFieldStation, action.ServiceStationName)
}

var errInvalidCost = errors.New(app.MsgInvalidCost)

func parseCost(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	cost, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, errInvalidCost
	}
	return cost, nil
}

func actionFromForm(m formModel) (models.Action, error) {
	cost, err := parseCost(m.value(actionFieldCost))
	if err != nil {
		return models.Action{}, err
	}
	return models.Action{
		Action:             m.value(actionFieldLabel),
		Type:               models.ActionType(m.value(actionFieldType)),
		Cost:               cost,
		Date:               m.value(actionFieldDate),
		Details:            m.value(actionFieldDetails),
		ServiceStationName: m.value(actionFieldStation),
	}, nil
}

// patchFromForm returns only the fields that differ from original.
func patchFromForm(m formModel, original models.Action) (models.ActionPatch, error) {
	edited, err := actionFromForm(m)
	if err != nil {
		return models.ActionPatch{}, err
	}

	var patch models.ActionPatch
	if edited.Action != original.Action {
		patch.Action = &edited.Action
	}
	if edited.Type != original.Type {
		patch.Type = &edited.Type
	}
	if edited.Cost != original.Cost {
		patch.Cost = &edited.Cost
	}
	if edited.Date != original.Date {
		patch.Date = &edited.Date
	}
	if edited.Details != original.Details {
		patch.Details = &edited.Details
	}
	if edited.ServiceStationName != original.ServiceStationName {
		patch.ServiceStationName = &edited.ServiceStationName
	}
	return patch, nil
}

func newImageForm(car models.Car) formModel {
	return newFormModel("Photo of "+car.Name, formField{label: "Image file", placeholder: "/path/to/photo.jpg"})
}
