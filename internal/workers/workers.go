package workers

// Workers starts and stops a group of workers.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Run starts them in order; Stop stops them in reverse.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
