/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package symxtest provides test assertions for export lists and forwards.
//
// Every Require* helper halts the test on the first failure, so a package's
// test suite can guard its export registry with a single call:
//
//	func TestExports(t *testing.T) {
//		symxtest.RequireExports(t, tools.Package)
//		symxtest.RequireTargets(t, tools.Package, symx.Loader())
//	}
package symxtest

import (
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/validate"
)

// RequireNames fails t unless advertised and keys hold the same names.
func RequireNames(t testing.TB, advertised, keys []string) {
	t.Helper()
	require.NoError(t, validate.Names(advertised, keys), "export list and registry disagree")
}

// RequireExports fails t unless the export list of e matches its resolvable names.
func RequireExports(t testing.TB, e apis.Exporter) {
	t.Helper()
	require.NoError(t, validate.Exports(e), "exports of %q", e.Path())
}

// RequireTargets fails t unless every forward of f resolves through ldr.
func RequireTargets(t testing.TB, f apis.Forwarder, ldr apis.Loader) {
	t.Helper()
	require.NoError(t, validate.Targets(f, ldr), "forwards of %q", f.Path())
}

// RequireRedirect resolves name through m and requires the result to be
// the object target defines under the same name. Pointer values must be
// identical; other values must be equal. The resolved value is returned.
func RequireRedirect(t testing.TB, m apis.Module, name, target string, ldr apis.Loader) any {
	t.Helper()
	got, err := m.Attr(name)
	require.NoError(t, err, "%s.%s", m.Path(), name)

	home, err := ldr.Import(target)
	require.NoError(t, err, "import %q", target)
	want, err := home.Attr(name)
	require.NoError(t, err, "%s.%s", target, name)

	if want != nil && reflect.ValueOf(want).Kind() == reflect.Pointer {
		require.Same(t, want, got, "%s.%s is not %s.%s", m.Path(), name, target, name)
	} else {
		require.Equal(t, want, got, "%s.%s differs from %s.%s", m.Path(), name, target, name)
	}
	return got
}

// Recorder is an apis.Notifier that keeps every notice it receives.
// It is safe for concurrent use.
type Recorder struct {
	mu  sync.Mutex
	got []apis.Notice
}

var _ apis.Notifier = (*Recorder)(nil)

// Notify implements apis.Notifier.
func (r *Recorder) Notify(n apis.Notice) {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
}

// Notices returns a copy of the recorded notices in arrival order.
func (r *Recorder) Notices() []apis.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.got)
}

// Len returns the number of recorded notices.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

// Reset drops every recorded notice.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.got = nil
	r.mu.Unlock()
}

// RequireNotices fails t unless exactly n notices were recorded.
func (r *Recorder) RequireNotices(t testing.TB, n int) []apis.Notice {
	t.Helper()
	got := r.Notices()
	require.Len(t, got, n, "deprecation notices")
	return got
}
