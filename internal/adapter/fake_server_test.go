package adapter

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-garage/models"
)

// writeJSON encodes data as the body of w with statusCode.
func writeJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}

// fakeGarage is an in-memory garage server speaking the same wire format as
// the real one: integer ids, snake_case fields, acknowledgement bodies on
// mutations.
type fakeGarage struct {
	mu      sync.Mutex
	nextID  int
	cars    []carDTO
	actions []actionDTO

	// requests counts hits per route pattern.
	requests map[string]int
}

func newFakeGarage(t *testing.T) (*fakeGarage, *httptest.Server) {
	t.Helper()
	g := &fakeGarage{requests: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(g.count)
	r.Get("/cars", g.listCars)
	r.Post("/cars", g.createCar)
	r.Get("/car/{id}", g.getCar)
	r.Patch("/car/{id}", g.uploadImage)
	r.Post("/action/{carId}", g.createAction)
	r.Get("/action/{id}", g.getAction)
	r.Put("/action/{id}", g.updateAction)
	r.Delete("/action/{id}", g.deleteAction)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return g, srv
}

func (g *fakeGarage) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		g.requests[r.Method+" "+r.URL.Path]++
		g.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (g *fakeGarage) hits(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[key]
}

func (g *fakeGarage) newID() models.ID {
	g.nextID++
	return models.ID(strconv.Itoa(g.nextID))
}

func (g *fakeGarage) addCar(c carDTO) carDTO {
	g.mu.Lock()
	defer g.mu.Unlock()
	c.ID = g.newID()
	g.cars = append(g.cars, c)
	return c
}

func (g *fakeGarage) addAction(a actionDTO) actionDTO {
	g.mu.Lock()
	defer g.mu.Unlock()
	a.ID = g.newID()
	g.actions = append(g.actions, a)
	return a
}

func notFound(w http.ResponseWriter, what string) {
	_, _ = writeJSON(w, map[string]string{"error": what + " not found"}, http.StatusNotFound)
}

// fakeDefaultPageSize is what the fake server uses when no pageSize is sent.
const fakeDefaultPageSize = 5

func (g *fakeGarage) listCars(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if size <= 0 {
		size = fakeDefaultPageSize
	}

	g.mu.Lock()
	p := models.Paginate(g.cars, page, size)
	g.mu.Unlock()

	_, _ = writeJSON(w, carsPageDTO{
		Cars:       p.Items,
		Page:       p.PageIndex,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
	}, http.StatusOK)
}

func (g *fakeGarage) createCar(w http.ResponseWriter, r *http.Request) {
	var c carDTO
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		_, _ = writeJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}
	c = g.addCar(c)
	_, _ = writeJSON(w, map[string]any{"message": "Car added successfully", "id": c.ID}, http.StatusOK)
}

func (g *fakeGarage) findCar(id string) (int, bool) {
	for i, c := range g.cars {
		if c.ID.String() == id {
			return i, true
		}
	}
	return 0, false
}

func (g *fakeGarage) findAction(id string) (int, bool) {
	for i, a := range g.actions {
		if a.ID.String() == id {
			return i, true
		}
	}
	return 0, false
}

func (g *fakeGarage) getCar(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.findCar(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "car")
		return
	}
	out := carWithActionsDTO{Car: g.cars[i], Actions: []actionDTO{}}
	for _, a := range g.actions {
		if a.CarID == g.cars[i].ID {
			// the real server omits car_id here
			a.CarID = ""
			out.Actions = append(out.Actions, a)
		}
	}
	_, _ = writeJSON(w, out, http.StatusOK)
}

func (g *fakeGarage) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		_, _ = writeJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}
	defer file.Close()
	data, _ := io.ReadAll(file)

	g.mu.Lock()
	defer g.mu.Unlock()
	i, ok := g.findCar(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "car")
		return
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	g.cars[i].CarImage = &encoded
	_, _ = writeJSON(w, map[string]string{"message": "Car image updated successfully"}, http.StatusOK)
}

func (g *fakeGarage) createAction(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "carId")

	var a actionDTO
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		_, _ = writeJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	_, ok := g.findCar(carID)
	g.mu.Unlock()
	if !ok {
		notFound(w, "car")
		return
	}

	a.CarID = models.ID(carID)
	a = g.addAction(a)
	_, _ = writeJSON(w, map[string]any{"message": "Action added successfully!", "car_id": carID, "id": a.ID}, http.StatusOK)
}

func (g *fakeGarage) getAction(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.findAction(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "action")
		return
	}
	_, _ = writeJSON(w, g.actions[i], http.StatusOK)
}

func (g *fakeGarage) updateAction(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		_, _ = writeJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	i, ok := g.findAction(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "action")
		return
	}

	current, _ := json.Marshal(g.actions[i])
	var merged map[string]json.RawMessage
	_ = json.Unmarshal(current, &merged)
	for k, v := range patch {
		merged[k] = v
	}
	data, _ := json.Marshal(merged)
	var updated actionDTO
	_ = json.Unmarshal(data, &updated)
	g.actions[i] = updated

	_, _ = writeJSON(w, map[string]any{"message": "Action updated successfully!", "action_id": updated.ID}, http.StatusOK)
}

func (g *fakeGarage) deleteAction(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.findAction(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "action")
		return
	}
	g.actions = append(g.actions[:i], g.actions[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
