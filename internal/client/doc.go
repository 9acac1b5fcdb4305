// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It loads the garage, keeps the background writers running while the
// terminal browser is shown and writes pending changes on exit.
package client
