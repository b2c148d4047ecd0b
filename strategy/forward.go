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

package strategy

import (
	"errors"
	"slices"
	"sync"

	"dirpx.dev/symx/apis"
)

// ErrNoLoader is the cause reported when a forward is attempted without a Loader.
var ErrNoLoader = errors.New("symx(strategy): no loader configured")

// forward imports target and returns its attribute called name.
// Every failure is reported as *apis.TargetError. A target already on
// env.Trail fails with *apis.CycleError instead of being imported again.
func forward(from, name, target string, env apis.Env) (any, error) {
	trail := append(slices.Clone(env.Trail), apis.Hop{Module: from, Name: name})
	next := apis.Hop{Module: target, Name: name}
	if slices.Contains(trail, next) {
		return nil, &apis.TargetError{Package: from, Name: name, Target: target,
			Err: &apis.CycleError{Trail: append(trail, next)}}
	}
	if env.Loader == nil {
		return nil, &apis.TargetError{Package: from, Name: name, Target: target,
			Err: &apis.ImportError{Path: target, Err: ErrNoLoader}}
	}
	m, err := env.Loader.Import(target)
	if err != nil {
		return nil, &apis.TargetError{Package: from, Name: name, Target: target, Err: err}
	}
	var v any
	if r, ok := m.(apis.Relay); ok {
		v, err = r.AttrVia(name, trail)
	} else {
		v, err = m.Attr(name)
	}
	if err != nil {
		return nil, &apis.TargetError{Package: from, Name: name, Target: target, Err: err}
	}
	return v, nil
}

// announcer emits deprecation notices according to the live policy.
type announcer struct {
	from string
	// seen records names already announced, for PolicyOnce.
	seen sync.Map // map[string]struct{}
}

func (a *announcer) announce(name, target string, env apis.Env) {
	if env.Notifier == nil {
		return
	}
	switch env.Config.Policy {
	case apis.PolicyNever:
		return
	case apis.PolicyOnce:
		if _, loaded := a.seen.LoadOrStore(name, struct{}{}); loaded {
			return
		}
	}
	env.Notifier.Notify(apis.Notice{
		Name:    name,
		From:    a.from,
		To:      target,
		Since:   env.Config.Since,
		Removal: env.Config.Removal,
	})
}
