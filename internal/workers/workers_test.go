// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// orderWorker appends "run:<id>" / "stop:<id>" to a shared log.
type orderWorker struct {
	id  string
	log *[]string
}

func (o *orderWorker) Run()  { *o.log = append(*o.log, "run:"+o.id) }
func (o *orderWorker) Stop() { *o.log = append(*o.log, "stop:"+o.id) }

func TestWorkers_RunAndStopOrder(t *testing.T) {
	var log []string
	ws := NewWorkers(
		&orderWorker{id: "1", log: &log},
		&orderWorker{id: "2", log: &log},
		&orderWorker{id: "3", log: &log},
	)

	ws.Run()
	ws.Stop()

	assert.Equal(t, []string{"run:1", "run:2", "run:3", "stop:3", "stop:2", "stop:1"}, log)
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	assert.NotPanics(t, func() {
		ws.Run()
		ws.Stop()
	})
}
