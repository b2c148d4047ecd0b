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

package registry_test

import (
	"runtime"
	"strconv"
	"sync"
	"testing"

	"dirpx.dev/symx/config"
	"dirpx.dev/symx/registry"
)

// TestConcurrentRegisterAndLookup verifies that Register/Lookup/Entries/Count
// are race-free and consistent under concurrent use.
func TestConcurrentRegisterAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	names := make([]string, 10)
	paths := make([]string, 10)
	for i := range names {
		names[i] = "T" + strconv.Itoa(i)
		paths[i] = "pkg.mod" + strconv.Itoa(i)
	}

	// Register once (sequential) to establish baseline.
	for i, n := range names {
		if err := reg.Register(n, paths[i]); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4

	// Readers
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				n := names[i%len(names)]
				if got, ok := reg.Lookup(n); !ok || got == "" {
					t.Errorf("lookup failed for %s: ok=%v got=%q", n, ok, got)
					return
				}
				_ = reg.Count()
				_ = reg.Entries()
			}
		}()
	}

	// Writers (idempotent re-register)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + id) % len(names)
				_ = reg.Register(names[j], paths[j]) // must be safe & idempotent
			}
		}(w)
	}

	wg.Wait()

	if reg.Count() != len(names) {
		t.Fatalf("count mismatch: got %d want %d", reg.Count(), len(names))
	}
	got := map[string]string{}
	for _, e := range reg.Entries() {
		got[e.Name] = e.Path
	}
	for i, n := range names {
		if got[n] != paths[i] {
			t.Fatalf("entry mismatch for %s: got %q want %q", n, got[n], paths[i])
		}
	}
}

// TestConcurrentSeal ensures that racing writers never land after Seal returns.
func TestConcurrentSeal(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 2
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				err := reg.Register("N"+strconv.Itoa(id)+"_"+strconv.Itoa(i), "pkg.mod")
				if err != nil && err != registry.ErrSealed {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}(w)
	}
	reg.Seal()
	before := reg.Count()
	wg.Wait()

	if after := reg.Count(); after != before {
		t.Fatalf("entries added after Seal: before=%d after=%d", before, after)
	}
}
