// Copyright 2026 The DST Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dstdebug holds the settings read from the DST_DEBUG environment
// variable.
package dstdebug

import (
	"sync"

	"dstlang.org/go/internal/envflag"
)

// Flags holds the DST_DEBUG settings. It is set by Init.
var Flags Config

// Config holds the known DST_DEBUG settings.
type Config struct {
	// Log enables debug logging of validation cycles to standard error.
	Log bool

	// CacheSize is the number of document analyses kept by a workspace.
	CacheSize int `envflag:"default:128"`

	// Strict makes dst vet treat warnings as errors.
	Strict bool
}

// Init initializes Flags. It is not an init function so that commands can
// report a malformed DST_DEBUG as an ordinary error.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "DST_DEBUG")
})
