package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/models"
)

type screen int

const (
	screenCars screen = iota
	screenCar
	screenCarForm
	screenActionForm
	screenImageForm
	screenBuildInfo
)

type deleteTarget struct {
	car   bool
	id    models.ID
	owner models.ID
}

type appModel struct {
	ctx           context.Context
	services      *service.ClientServices
	buildInfo     models.AppBuildInfo
	currentScreen screen
	infoReturn    screen
	now           func() time.Time

	cars       carListModel
	car        carDetailModel
	carForm    formModel
	actionForm formModel
	imageForm  formModel
	// editing is the action being changed by actionForm, nil for a new one.
	editing *models.Action

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete deleteTarget
	quitByUser    bool
}

func newAppModel(ctx context.Context, services *service.ClientServices, buildInfo models.AppBuildInfo) appModel {
	m := appModel{
		ctx:           ctx,
		services:      services,
		buildInfo:     buildInfo,
		currentScreen: screenCars,
		now:           time.Now,
		cars:          newCarListModel(),
	}
	m.cars.inflight = 1
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(
		m.cmdPage(func(ctx context.Context, p *service.Pager[models.Car]) (models.Page[models.Car], error) {
			return p.Load(ctx, 1)
		}),
		m.cars.spinner.Tick,
		m.cmdWatchPersistErrors(),
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				target := m.pendingDelete
				m.pendingDelete = deleteTarget{}
				return m, m.cmdDelete(target)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = deleteTarget{}
			}
			return m, nil
		}
	case pageLoadedMsg:
		if msg.navigation {
			m.cars.inflight = max(m.cars.inflight-1, 0)
		}
		switch {
		case errors.Is(msg.err, service.ErrPageSuperseded):
		case isPageGuard(msg.err):
			m.cars.status = errorText(msg.err)
			return m, cmdClearStatus()
		case msg.err != nil:
			m.showErrorf(errorText(msg.err))
		case len(msg.page.Items) == 0 && msg.page.PageIndex > msg.page.TotalPages && msg.page.TotalPages > 0:
			// the page emptied under us, step back to the new last page
			last := msg.page.TotalPages
			m.cars.inflight++
			return m, m.cmdPage(func(ctx context.Context, p *service.Pager[models.Car]) (models.Page[models.Car], error) {
				return p.Load(ctx, last)
			})
		default:
			m.cars.page = msg.page
			m.cars.loaded = true
			m.cars = m.cars.clampCursor()
		}
		return m, nil
	case feedLoadedMsg:
		m.cars.feedLoading = false
		switch {
		case errors.Is(msg.err, service.ErrPageSuperseded), errors.Is(msg.err, service.ErrFetchInProgress):
		case isPageGuard(msg.err):
			m.cars.feedHasNext = false
			m.cars.status = errorText(msg.err)
			return m, cmdClearStatus()
		case msg.err != nil:
			m.showErrorf(errorText(msg.err))
		default:
			m.cars.feed = msg.items
			m.cars.feedHasNext = msg.hasNext
			m.cars = m.cars.clampCursor()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.cars.spinner, cmd = m.cars.spinner.Update(msg)
		return m, cmd
	case carLoadedMsg:
		if msg.id != m.car.id {
			return m, nil
		}
		if msg.err != nil {
			m.showErrorf(errorText(msg.err))
			if errors.Is(msg.err, service.ErrNotFound) && m.currentScreen == screenCar {
				m.currentScreen = screenCars
				return m, m.reloadList()
			}
			return m, nil
		}
		m.car.data = msg.car
		m.car.loaded = true
		m.car = m.car.clampCursor()
		return m, nil
	case mutationDoneMsg:
		m.setSubmitting(false)
		if msg.err != nil {
			m.showErrorf(errorText(msg.err))
			return m, nil
		}
		m.currentScreen = msg.next
		cmds := []tea.Cmd{m.reloadList()}
		if msg.reloadCar != "" {
			cmds = append(cmds, m.cmdLoadCar(msg.reloadCar))
		}
		return m, tea.Batch(cmds...)
	case persistFailedMsg:
		m.showErrorf(errorText(msg.err))
		return m, m.cmdWatchPersistErrors()
	case copiedMsg:
		m.car.status = "Copied!"
		m.cars.status = "Copied!"
		return m, cmdClearStatus()
	case copyFailedMsg:
		m.showErrorf(msg.err.Error())
		return m, nil
	case clearStatusMsg:
		m.car.status = ""
		m.cars.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.currentScreen {
	case screenCars:
		return m.updateCars(msg)
	case screenCar:
		return m.updateCar(msg)
	case screenCarForm:
		return m.updateCarForm(msg)
	case screenActionForm:
		return m.updateActionForm(msg)
	case screenImageForm:
		return m.updateImageForm(msg)
	case screenBuildInfo:
		return m.updateBuildInfo(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.currentScreen {
	case screenCars:
		body = m.cars.View()
	case screenCar:
		body = m.car.View()
	case screenCarForm:
		body = m.carForm.View()
	case screenActionForm:
		body = m.actionForm.View()
	case screenImageForm:
		body = m.imageForm.View()
	case screenBuildInfo:
		body = renderBuildInfoWindow(m.buildInfo)
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m *appModel) setSubmitting(v bool) {
	m.carForm.submitting = v
	m.actionForm.submitting = v
	m.imageForm.submitting = v
}

func (m appModel) updateCars(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(msg, keys.up):
			if m.cars.idx > 0 {
				m.cars.idx--
			}
		case key.Matches(msg, keys.down):
			if m.cars.idx < len(m.cars.items())-1 {
				m.cars.idx++
				return m, nil
			}
			if m.cars.scroll {
				return m.fetchMore()
			}
		case key.Matches(msg, keys.right) && m.cars.scroll:
			return m.fetchMore()
		case key.Matches(msg, keys.right):
			m.cars.inflight++
			return m, m.cmdPage(func(ctx context.Context, p *service.Pager[models.Car]) (models.Page[models.Car], error) {
				return p.Next(ctx)
			})
		case key.Matches(msg, keys.left) && m.cars.scroll:
			return m, nil
		case key.Matches(msg, keys.left):
			m.cars.inflight++
			return m, m.cmdPage(func(ctx context.Context, p *service.Pager[models.Car]) (models.Page[models.Car], error) {
				return p.Previous(ctx)
			})
		case key.Matches(msg, keys.refresh):
			return m, m.reloadList()
		case key.Matches(msg, keys.scroll):
			m.cars.scroll = !m.cars.scroll
			m.cars.idx = 0
			if m.cars.scroll {
				m.cars.feedLoading = true
				return m, m.cmdFeed(true)
			}
		case key.Matches(msg, keys.enter):
			car, ok := m.cars.current()
			if !ok {
				return m, nil
			}
			m.car = newCarDetailModel(car)
			m.currentScreen = screenCar
			return m, m.cmdLoadCar(car.ID)
		case key.Matches(msg, keys.newItem):
			m.carForm = newCarForm()
			m.currentScreen = screenCarForm
		case key.Matches(msg, keys.delete):
			car, ok := m.cars.current()
			if !ok {
				return m, nil
			}
			m.pendingDelete = deleteTarget{car: true, id: car.ID}
			m.confirm.message = car.Name
			m.showConfirm = true
		case key.Matches(msg, keys.copy):
			if car, ok := m.cars.current(); ok {
				return m, cmdCopyToClipboard(car.ID.String())
			}
		case key.Matches(msg, keys.sortKey):
			m.cars.sortKey = (m.cars.sortKey + 1) % len(carSortKeys)
		case key.Matches(msg, keys.sortOrder):
			m.cars.order = m.cars.order.Toggle()
		case key.Matches(msg, keys.info):
			m.infoReturn = screenCars
			m.currentScreen = screenBuildInfo
		}
	}
	return m, nil
}

func (m appModel) updateCar(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = screenCars
		return m, m.reloadList()
	case key.Matches(keyMsg, keys.up):
		if m.car.idx > 0 {
			m.car.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.car.idx < len(m.car.visible())-1 {
			m.car.idx++
		}
	case key.Matches(keyMsg, keys.sortKey):
		m.car = m.car.nextSortKey()
	case key.Matches(keyMsg, keys.sortOrder):
		m.car.order = m.car.order.Toggle()
	case key.Matches(keyMsg, keys.filter):
		m.car = m.car.nextFilter()
	case key.Matches(keyMsg, keys.refresh):
		return m, m.cmdLoadCar(m.car.id)
	case key.Matches(keyMsg, keys.newItem):
		m.editing = nil
		m.actionForm = newActionForm(nil, m.now())
		m.currentScreen = screenActionForm
	case key.Matches(keyMsg, keys.edit):
		action, ok := m.car.current()
		if !ok {
			return m, nil
		}
		m.editing = &action
		m.actionForm = newActionForm(&action, m.now())
		m.currentScreen = screenActionForm
	case key.Matches(keyMsg, keys.delete):
		action, ok := m.car.current()
		if !ok {
			return m, nil
		}
		m.pendingDelete = deleteTarget{id: action.ID, owner: m.car.id}
		m.confirm.message = action.Action
		m.showConfirm = true
	case key.Matches(keyMsg, keys.image):
		m.imageForm = newImageForm(m.car.data.Car)
		m.currentScreen = screenImageForm
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.car.id.String())
	case key.Matches(keyMsg, keys.info):
		m.infoReturn = screenCar
		m.currentScreen = screenBuildInfo
	}
	return m, nil
}

func (m appModel) updateCarForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.forceQuit):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenCars
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.carForm = m.carForm.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.carForm = m.carForm.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.carForm.submitting {
				return m, nil
			}
			m.carForm.submitting = true
			return m, m.cmdAddCar(carFromForm(m.carForm))
		}
	}

	var cmd tea.Cmd
	m.carForm.inputs[m.carForm.focus], cmd = m.carForm.inputs[m.carForm.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateActionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.forceQuit):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenCar
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.actionForm = m.actionForm.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.actionForm = m.actionForm.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.actionForm.submitting {
				return m, nil
			}
			if m.editing != nil {
				patch, err := patchFromForm(m.actionForm, *m.editing)
				if err != nil {
					m.showErrorf(errorText(err))
					return m, nil
				}
				m.actionForm.submitting = true
				return m, m.cmdUpdateAction(m.car.id, m.editing.ID, patch)
			}
			action, err := actionFromForm(m.actionForm)
			if err != nil {
				m.showErrorf(errorText(err))
				return m, nil
			}
			m.actionForm.submitting = true
			return m, m.cmdAddAction(m.car.id, action)
		}
	}

	var cmd tea.Cmd
	m.actionForm.inputs[m.actionForm.focus], cmd = m.actionForm.inputs[m.actionForm.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateImageForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.forceQuit):
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc):
			m.currentScreen = screenCar
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.imageForm.submitting {
				return m, nil
			}
			m.imageForm.submitting = true
			return m, m.cmdUploadImage(m.car.id, m.imageForm.value(0))
		}
	}

	var cmd tea.Cmd
	m.imageForm.inputs[m.imageForm.focus], cmd = m.imageForm.inputs[m.imageForm.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateBuildInfo(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = m.infoReturn
	case key.Matches(keyMsg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) cmdPage(move func(context.Context, *service.Pager[models.Car]) (models.Page[models.Car], error)) tea.Cmd {
	ctx := m.ctx
	pager := m.services.Cars
	return func() tea.Msg {
		page, err := move(ctx, pager)
		return pageLoadedMsg{page: page, err: err, navigation: true}
	}
}

// cmdRefresh reloads the page on screen in the background. Only explicit
// navigation shows the spinner.
func (m appModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	pager := m.services.Cars
	return func() tea.Msg {
		page, err := pager.Refresh(ctx)
		return pageLoadedMsg{page: page, err: err}
	}
}

// reloadList refreshes the car list in the background, including the
// scrolling list when it is shown.
func (m appModel) reloadList() tea.Cmd {
	if !m.cars.scroll {
		return m.cmdRefresh()
	}
	return tea.Batch(m.cmdRefresh(), m.cmdFeed(true))
}

func (m appModel) fetchMore() (tea.Model, tea.Cmd) {
	if m.cars.feedLoading {
		return m, nil
	}
	if !m.cars.feedHasNext {
		m.cars.status = errorText(service.ErrNoNextPage)
		return m, cmdClearStatus()
	}
	m.cars.feedLoading = true
	return m, m.cmdFeed(false)
}

// cmdFeed loads the next page of the scrolling list, starting over from the
// first page when reset is set.
func (m appModel) cmdFeed(reset bool) tea.Cmd {
	ctx := m.ctx
	feed := m.services.CarFeed
	return func() tea.Msg {
		if reset {
			feed.Reset()
		}
		if _, err := feed.FetchNext(ctx); err != nil {
			return feedLoadedMsg{err: err}
		}
		return feedLoadedMsg{items: feed.Items(), hasNext: feed.HasNext()}
	}
}

func (m appModel) cmdLoadCar(id models.ID) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Garage
	return func() tea.Msg {
		car, err := svc.CarWithActions(ctx, id)
		return carLoadedMsg{id: id, car: car, err: err}
	}
}

func (m appModel) cmdAddCar(car models.Car) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Garage
	return func() tea.Msg {
		_, err := svc.AddCar(ctx, car)
		return mutationDoneMsg{err: err, next: screenCars}
	}
}

func (m appModel) cmdAddAction(carID models.ID, action models.Action) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Garage
	return func() tea.Msg {
		_, err := svc.AddAction(ctx, carID, action)
		return mutationDoneMsg{err: err, next: screenCar, reloadCar: carID}
	}
}

func (m appModel) cmdUpdateAction(carID, id models.ID, patch models.ActionPatch) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Garage
	return func() tea.Msg {
		_, err := svc.UpdateAction(ctx, id, patch)
		return mutationDoneMsg{err: err, next: screenCar, reloadCar: carID}
	}
}

func (m appModel) cmdUploadImage(carID models.ID, path string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Garage
	embed := m.services.Local == nil
	return func() tea.Msg {
		image, err := imageFromFile(path, embed)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		_, err = svc.UploadCarImage(ctx, carID, image)
		return mutationDoneMsg{err: err, next: screenCar, reloadCar: carID}
	}
}

func (m appModel) cmdDelete(target deleteTarget) tea.Cmd {
	ctx := m.ctx
	svc := m.services.Garage
	if target.car {
		return func() tea.Msg {
			err := svc.RemoveCar(ctx, target.id)
			return mutationDoneMsg{err: err, next: screenCars}
		}
	}
	return func() tea.Msg {
		err := svc.RemoveAction(ctx, target.id)
		return mutationDoneMsg{err: err, next: screenCar, reloadCar: target.owner}
	}
}

// cmdWatchPersistErrors waits for the next background write failure. It is
// issued again after every failure it reports.
func (m appModel) cmdWatchPersistErrors() tea.Cmd {
	errs := m.services.PersistErrors()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case err := <-errs:
			return persistFailedMsg{err: err}
		case <-ctx.Done():
			return nil
		}
	}
}

// imageFromFile turns a path typed by the user into a car photo. Local
// garages keep a reference to the file, the server needs the bytes.
func imageFromFile(path string, embed bool) (models.Image, error) {
	if path == "" {
		return models.Image{}, fmt.Errorf("%w: %w", service.ErrValidation, models.ErrEmptyImage)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return models.Image{}, fmt.Errorf("resolve image path: %w", err)
	}

	if !embed {
		if _, err := os.Stat(abs); err != nil {
			return models.Image{}, fmt.Errorf("open image: %w", err)
		}
		return models.ReferencedImage((&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()), nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return models.Image{}, fmt.Errorf("read image: %w", err)
	}
	return models.EmbeddedImage(data), nil
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copyFailedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
