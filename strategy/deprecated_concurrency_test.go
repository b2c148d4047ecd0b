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

package strategy_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/strategy"
)

// TestDeprecatedStrategy_ConcurrentOnce verifies that PolicyOnce announces
// exactly once even when many goroutines race on the first access.
func TestDeprecatedStrategy_ConcurrentOnce(t *testing.T) {
	s := strategy.NewDeprecatedStrategy("pkg", sealed(t, map[string]string{"Old": "pkg.new_home"}))
	e, rec := env(t, apis.PolicyOnce)

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				v, ok, err := s.TryResolve("Old", e)
				if err != nil || !ok || v != oldValue {
					t.Errorf("TryResolve: got (%v,%v,%v)", v, ok, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if rec.len() != 1 {
		t.Fatalf("PolicyOnce under concurrency: got %d notices, want 1", rec.len())
	}
}
