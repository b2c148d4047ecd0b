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

// Package notice provides apis.Notifier implementations for deprecation notices.
package notice

import (
	"go.uber.org/zap"

	"dirpx.dev/symx/apis"
)

// NewZap returns a Notifier that writes each notice as a Warn record.
// A nil logger follows zap.L() at call time, so zap.ReplaceGlobals
// redirects notices without rebuilding the notifier.
func NewZap(l *zap.Logger) apis.Notifier {
	return &zapNotifier{l: l}
}

type zapNotifier struct {
	l *zap.Logger
}

// Ensure zapNotifier implements apis.Notifier.
var _ apis.Notifier = (*zapNotifier)(nil)

func (z *zapNotifier) Notify(n apis.Notice) {
	l := z.l
	if l == nil {
		l = zap.L()
	}
	fields := []zap.Field{
		zap.String("name", n.Name),
		zap.String("from", n.From),
		zap.String("to", n.To),
	}
	if n.Since != "" {
		fields = append(fields, zap.String("since", n.Since))
	}
	if n.Removal != "" {
		fields = append(fields, zap.String("removal", n.Removal))
	}
	l.Warn(n.String(), fields...)
}

// Nop returns a Notifier that discards every notice.
func Nop() apis.Notifier { return nop{} }

type nop struct{}

func (nop) Notify(apis.Notice) {}

// Func adapts a plain function to the Notifier interface.
type Func func(apis.Notice)

// Notify calls f(n).
func (f Func) Notify(n apis.Notice) { f(n) }

// Multi fans a notice out to every non-nil notifier, in order.
func Multi(ns ...apis.Notifier) apis.Notifier {
	out := make(multi, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

type multi []apis.Notifier

func (m multi) Notify(n apis.Notice) {
	for _, x := range m {
		x.Notify(n)
	}
}
