package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-garage/models"
)

// wireYear is the car year as the server sends it: a JSON number, though a
// string is tolerated.
type wireYear string

func (y *wireYear) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*y = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*y = wireYear(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("year %s is not an integer", n)
	}
	*y = wireYear(strconv.FormatInt(i, 10))
	return nil
}

func (y wireYear) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(y)); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(y))
}

type carDTO struct {
	ID          models.ID `json:"id,omitempty"`
	Name        string    `json:"name"`
	Model       string    `json:"model"`
	PlateNumber string    `json:"plate_number"`
	Year        wireYear  `json:"year"`
	CarImage    *string   `json:"car_image,omitempty"`
}

func newCarDTO(car models.Car) carDTO {
	dto := carDTO{
		ID:          car.ID,
		Name:        car.Name,
		Model:       car.Model,
		PlateNumber: car.PlateNumber,
		Year:        wireYear(car.Year),
	}
	if car.Image != nil && car.Image.Kind() == models.ImageEmbedded {
		encoded := car.Image.Base64()
		dto.CarImage = &encoded
	}
	return dto
}

func (d carDTO) toModel() (models.Car, error) {
	car := models.Car{
		ID:          d.ID,
		Name:        d.Name,
		Model:       d.Model,
		PlateNumber: d.PlateNumber,
		Year:        string(d.Year),
	}
	if d.CarImage != nil && *d.CarImage != "" {
		img, err := models.EmbeddedImageFromBase64(*d.CarImage)
		if err != nil {
			return models.Car{}, fmt.Errorf("car %s image: %w", d.ID, err)
		}
		car.Image = &img
	}
	return car, nil
}

type actionDTO struct {
	ID                 models.ID         `json:"id,omitempty"`
	CarID              models.ID         `json:"car_id,omitempty"`
	Action             string            `json:"action"`
	Type               models.ActionType `json:"type"`
	Details            *string           `json:"details"`
	Cost               *float64          `json:"cost"`
	ServiceStationName *string           `json:"service_station_name"`
	Date               *string           `json:"date"`
}

func newActionDTO(action models.Action) (actionDTO, error) {
	dto := actionDTO{
		CarID:  action.CarID,
		Action: action.Action,
		Type:   action.Type,
		Cost:   &action.Cost,
	}
	if action.Details != "" {
		dto.Details = &action.Details
	}
	if action.ServiceStationName != "" {
		dto.ServiceStationName = &action.ServiceStationName
	}
	if action.Date != "" {
		date, err := models.ServerDate(action.Date)
		if err != nil {
			return actionDTO{}, err
		}
		dto.Date = &date
	}
	return dto, nil
}

func (d actionDTO) toModel() models.Action {
	action := models.Action{
		ID:     d.ID,
		CarID:  d.CarID,
		Action: d.Action,
		Type:   d.Type,
	}
	if d.Details != nil {
		action.Details = *d.Details
	}
	if d.Cost != nil {
		action.Cost = *d.Cost
	}
	if d.ServiceStationName != nil {
		action.ServiceStationName = *d.ServiceStationName
	}
	if d.Date != nil {
		action.Date = *d.Date
	}
	return action
}

// actionPatchDTO carries only the fields present in the patch; the server
// keeps every absent field.
type actionPatchDTO struct {
	Action             *string            `json:"action,omitempty"`
	Type               *models.ActionType `json:"type,omitempty"`
	Details            *string            `json:"details,omitempty"`
	Cost               *float64           `json:"cost,omitempty"`
	ServiceStationName *string            `json:"service_station_name,omitempty"`
	Date               *string            `json:"date,omitempty"`
}

func newActionPatchDTO(p models.ActionPatch) (actionPatchDTO, error) {
	if p.CarID != nil {
		return actionPatchDTO{}, ErrMoveAction
	}

	dto := actionPatchDTO{
		Action:             p.Action,
		Type:               p.Type,
		Details:            p.Details,
		Cost:               p.Cost,
		ServiceStationName: p.ServiceStationName,
	}
	if p.Date != nil {
		date, err := models.ServerDate(*p.Date)
		if err != nil {
			return actionPatchDTO{}, err
		}
		dto.Date = &date
	}
	return dto, nil
}

type carsPageDTO struct {
	Cars       []carDTO `json:"cars"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalCount int      `json:"total_count"`
	TotalPages int      `json:"total_pages"`
}

type carWithActionsDTO struct {
	Car     carDTO      `json:"car"`
	Actions []actionDTO `json:"actions"`
}

// mutationResponse is the acknowledgement body some endpoints answer with
// instead of the stored entity.
type mutationResponse struct {
	Message  string    `json:"message"`
	ID       models.ID `json:"id"`
	CarID    models.ID `json:"car_id"`
	ActionID models.ID `json:"action_id"`
}
