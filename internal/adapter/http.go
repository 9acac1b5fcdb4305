package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-garage/internal/config"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/utils"
	"github.com/MKhiriev/go-garage/models"
)

type httpGarageAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPGarageAdapter constructs an HTTP/REST implementation of
// [GarageAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and bounds every request by
// adapterCfg.RequestTimeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPGarageAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (GarageAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpGarageAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ListCars implements [GarageAdapter]. It calls
// GET /cars?page={n}&pageSize={m}; a pageSize below 1 is left out so the
// server applies its default. A server that answers with a bare JSON array
// (no pagination support) is paged on the client.
func (h *httpGarageAdapter) ListCars(ctx context.Context, pageIndex, pageSize int) (models.Page[models.Car], error) {
	req := h.request(ctx).SetQueryParam("page", strconv.Itoa(pageIndex))
	if pageSize > 0 {
		req.SetQueryParam("pageSize", strconv.Itoa(pageSize))
	}

	resp, err := req.Get("/cars")
	if err != nil {
		return models.Page[models.Car]{}, h.networkError("list cars", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Page[models.Car]{}, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		var all []carDTO
		if err = json.Unmarshal(body, &all); err != nil {
			return models.Page[models.Car]{}, fmt.Errorf("%w: list cars: %w", ErrDecodeResponse, err)
		}
		cars, err := carsToModels(all)
		if err != nil {
			return models.Page[models.Car]{}, fmt.Errorf("%w: list cars: %w", ErrDecodeResponse, err)
		}
		if pageSize <= 0 {
			// everything on one page
			pageSize = max(len(cars), 1)
		}
		return models.Paginate(cars, pageIndex, pageSize), nil
	}

	var page carsPageDTO
	if err = json.Unmarshal(body, &page); err != nil {
		return models.Page[models.Car]{}, fmt.Errorf("%w: list cars: %w", ErrDecodeResponse, err)
	}
	cars, err := carsToModels(page.Cars)
	if err != nil {
		return models.Page[models.Car]{}, fmt.Errorf("%w: list cars: %w", ErrDecodeResponse, err)
	}

	return models.Page[models.Car]{
		Items:      cars,
		PageIndex:  page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalCount: page.TotalCount,
	}, nil
}

// GetCar implements [GarageAdapter]. It calls GET /car/{id}.
func (h *httpGarageAdapter) GetCar(ctx context.Context, id models.ID) (models.CarWithActions, error) {
	var dto carWithActionsDTO

	resp, err := h.request(ctx).
		SetPathParam("id", id.String()).
		Get("/car/{id}")
	if err != nil {
		return models.CarWithActions{}, h.networkError("get car", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CarWithActions{}, err
	}
	if err = json.Unmarshal(resp.Body(), &dto); err != nil {
		return models.CarWithActions{}, fmt.Errorf("%w: get car: %w", ErrDecodeResponse, err)
	}

	car, err := dto.Car.toModel()
	if err != nil {
		return models.CarWithActions{}, fmt.Errorf("%w: get car: %w", ErrDecodeResponse, err)
	}

	actions := make([]models.Action, 0, len(dto.Actions))
	for _, a := range dto.Actions {
		action := a.toModel()
		if action.CarID.IsZero() {
			action.CarID = car.ID
		}
		actions = append(actions, action)
	}

	return models.CarWithActions{Car: car, Actions: actions}, nil
}

// CreateCar implements [GarageAdapter]. It calls POST /cars.
func (h *httpGarageAdapter) CreateCar(ctx context.Context, car models.Car) (models.Car, error) {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(newCarDTO(car)).
		Post("/cars")
	if err != nil {
		return models.Car{}, h.networkError("create car", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Car{}, err
	}

	var created carDTO
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Car{}, fmt.Errorf("%w: create car: %w", ErrDecodeResponse, err)
	}
	if created.Name == "" {
		// acknowledgement only
		ack := decodeAck(resp.Body())
		car.ID = ack.ID
		return car, nil
	}

	out, err := created.toModel()
	if err != nil {
		return models.Car{}, fmt.Errorf("%w: create car: %w", ErrDecodeResponse, err)
	}
	return out, nil
}

// UploadCarImage implements [GarageAdapter]. It sends the image bytes as the
// multipart field "file" to PATCH /car/{id}.
func (h *httpGarageAdapter) UploadCarImage(ctx context.Context, id models.ID, image models.Image) (models.Car, error) {
	if image.Kind() != models.ImageEmbedded || len(image.Data()) == 0 {
		return models.Car{}, ErrUnsupportedImage
	}

	resp, err := h.request(ctx).
		SetPathParam("id", id.String()).
		SetFileReader("file", "car-image", bytes.NewReader(image.Data())).
		Patch("/car/{id}")
	if err != nil {
		return models.Car{}, h.networkError("upload car image", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Car{}, err
	}

	var updated carDTO
	if err = json.Unmarshal(resp.Body(), &updated); err == nil && !updated.ID.IsZero() {
		car, err := updated.toModel()
		if err != nil {
			return models.Car{}, fmt.Errorf("%w: upload car image: %w", ErrDecodeResponse, err)
		}
		return car, nil
	}

	withActions, err := h.GetCar(ctx, id)
	if err != nil {
		return models.Car{}, err
	}
	return withActions.Car, nil
}

// CreateAction implements [GarageAdapter]. It calls POST /action/{carId};
// dates are sent in [models.ServerDateLayout].
func (h *httpGarageAdapter) CreateAction(ctx context.Context, carID models.ID, action models.Action) (models.Action, error) {
	action.CarID = carID
	dto, err := newActionDTO(action)
	if err != nil {
		return models.Action{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("carId", carID.String()).
		SetBody(dto).
		Post("/action/{carId}")
	if err != nil {
		return models.Action{}, h.networkError("create action", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Action{}, err
	}

	var created actionDTO
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Action{}, fmt.Errorf("%w: create action: %w", ErrDecodeResponse, err)
	}
	if created.Action == "" {
		ack := decodeAck(resp.Body())
		action.ID = ack.ID
		if action.ID.IsZero() {
			action.ID = ack.ActionID
		}
		return action, nil
	}

	out := created.toModel()
	if out.CarID.IsZero() {
		out.CarID = carID
	}
	return out, nil
}

// UpdateAction implements [GarageAdapter]. It sends only the patched fields
// to PUT /action/{id}.
func (h *httpGarageAdapter) UpdateAction(ctx context.Context, id models.ID, patch models.ActionPatch) (models.Action, error) {
	dto, err := newActionPatchDTO(patch)
	if err != nil {
		return models.Action{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id.String()).
		SetBody(dto).
		Put("/action/{id}")
	if err != nil {
		return models.Action{}, h.networkError("update action", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Action{}, err
	}

	var updated actionDTO
	if err = json.Unmarshal(resp.Body(), &updated); err == nil && updated.Action != "" {
		out := updated.toModel()
		if out.ID.IsZero() {
			out.ID = id
		}
		return out, nil
	}

	return h.GetAction(ctx, id)
}

// DeleteAction implements [GarageAdapter]. It calls DELETE /action/{id}.
func (h *httpGarageAdapter) DeleteAction(ctx context.Context, id models.ID) error {
	resp, err := h.request(ctx).
		SetPathParam("id", id.String()).
		Delete("/action/{id}")
	if err != nil {
		return h.networkError("delete action", err)
	}

	return mapHTTPError(resp)
}

// GetAction implements [GarageAdapter]. It calls GET /action/{id}.
func (h *httpGarageAdapter) GetAction(ctx context.Context, id models.ID) (models.Action, error) {
	var dto actionDTO

	resp, err := h.request(ctx).
		SetPathParam("id", id.String()).
		Get("/action/{id}")
	if err != nil {
		return models.Action{}, h.networkError("get action", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Action{}, err
	}
	if err = json.Unmarshal(resp.Body(), &dto); err != nil {
		return models.Action{}, fmt.Errorf("%w: get action: %w", ErrDecodeResponse, err)
	}

	return dto.toModel(), nil
}

func (h *httpGarageAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpGarageAdapter) networkError(op string, err error) error {
	h.logger.Err(err).
		Str("func", "httpGarageAdapter").
		Str("op", op).
		Msg("garage server request failed")
	return fmt.Errorf("%w: %s: %w", ErrNetwork, op, err)
}

func carsToModels(dtos []carDTO) ([]models.Car, error) {
	cars := make([]models.Car, 0, len(dtos))
	for _, d := range dtos {
		car, err := d.toModel()
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, nil
}

func decodeAck(body []byte) mutationResponse {
	var ack mutationResponse
	_ = json.Unmarshal(body, &ack)
	return ack
}
