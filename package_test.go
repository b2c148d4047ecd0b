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

package symx_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/symx"
	"dirpx.dev/symx/apis"
	"dirpx.dev/symx/builder"
	"dirpx.dev/symx/config"
	"dirpx.dev/symx/loader"
	"dirpx.dev/symx/module"
	"dirpx.dev/symx/notice"
)

// Old lives in pkg.new_home now.
type Old struct{ Name string }

var theOld = &Old{Name: "old"}

type notices struct {
	mu  sync.Mutex
	got []apis.Notice
}

func (n *notices) Notify(x apis.Notice) {
	n.mu.Lock()
	n.got = append(n.got, x)
	n.mu.Unlock()
}

func (n *notices) all() []apis.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]apis.Notice(nil), n.got...)
}

// fixture returns a loader with pkg.new_home registered and a notice recorder.
func fixture(t *testing.T) (apis.Loader, *notices) {
	t.Helper()
	ldr := loader.New(config.DefaultConfig())
	require.NoError(t, ldr.Register("pkg.new_home", module.Factory("pkg.new_home", map[string]any{"Old": theOld})))
	return ldr, &notices{}
}

func TestAttr_DeprecatedRedirect(t *testing.T) {
	ldr, rec := fixture(t)
	p, err := symx.Declare(apis.Spec{
		Path:       "pkg",
		All:        []string{"Old"},
		Deprecated: map[string]string{"Old": "pkg.new_home"},
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))
	require.NoError(t, err)

	got, err := p.Attr("Old")
	require.NoError(t, err)

	direct, err := ldr.Import("pkg.new_home")
	require.NoError(t, err)
	want, err := direct.Attr("Old")
	require.NoError(t, err)

	assert.Same(t, want, got)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, apis.Notice{Name: "Old", From: "pkg", To: "pkg.new_home"}, rec.all()[0])

	// Idempotent: same object, notice re-emitted under the default policy.
	again, err := p.Attr("Old")
	require.NoError(t, err)
	assert.Same(t, got, again)
	assert.Len(t, rec.all(), 2)
}

func TestAttr_OncePolicy(t *testing.T) {
	ldr, rec := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:       "pkg",
		Deprecated: map[string]string{"Old": "pkg.new_home"},
	},
		symx.WithLoader(ldr),
		symx.WithNotifier(rec),
		symx.WithConfig(config.NewConfig(config.WithPolicy(apis.PolicyOnce), config.WithSince("0.1"))),
	)

	for i := 0; i < 3; i++ {
		_, err := p.Attr("Old")
		require.NoError(t, err)
	}
	require.Len(t, rec.all(), 1)
	assert.Equal(t, "0.1", rec.all()[0].Since)
}

func TestAttr_MissingTargetModule(t *testing.T) {
	ldr, rec := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:       "pkg",
		Deprecated: map[string]string{"Old": "pkg.missing"},
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))

	_, err := p.Attr("Old")
	require.Error(t, err)
	assert.ErrorIs(t, err, apis.ErrModuleNotFound)
	assert.ErrorIs(t, err, apis.ErrImport)
	assert.ErrorIs(t, err, apis.ErrStaleTarget)
	assert.Empty(t, rec.all())
}

func TestAttr_TargetNoLongerDefinesName(t *testing.T) {
	ldr, _ := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:       "pkg",
		Deprecated: map[string]string{"Gone": "pkg.new_home"},
	}, symx.WithLoader(ldr), symx.WithNotifier(notice.Nop()))

	_, err := p.Attr("Gone")
	assert.ErrorIs(t, err, apis.ErrStaleTarget)
	assert.ErrorIs(t, err, apis.ErrNoSuchAttribute)
}

func TestAttr_UnknownName(t *testing.T) {
	ldr, _ := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:       "pkg",
		Symbols:    map[string]any{"Here": 1},
		Deprecated: map[string]string{"Old": "pkg.new_home"},
	}, symx.WithLoader(ldr))

	_, err := p.Attr("Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, apis.ErrNoSuchAttribute)
	assert.NotErrorIs(t, err, apis.ErrStaleTarget)
	var ae *apis.AttributeError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "pkg", ae.Module)
	assert.Equal(t, "Nope", ae.Name)
}

func TestAttr_StaticBeforeForwarding(t *testing.T) {
	ldr, rec := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:    "pkg",
		Symbols: map[string]any{"Here": 1},
		Lookup:  map[string]string{"Old": "pkg.new_home"},
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))

	v, err := p.Attr("Here")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = p.Attr("Old")
	require.NoError(t, err)
	assert.Same(t, theOld, v)
	assert.Empty(t, rec.all(), "lookup entries are not deprecated")
}

func TestAttr_Fallback(t *testing.T) {
	ldr, rec := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:     "pkg.legacy",
		Fallback: "pkg.new_home",
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))

	v, err := p.Attr("Old")
	require.NoError(t, err)
	assert.Same(t, theOld, v)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, "pkg.legacy", rec.all()[0].From)

	_, err = p.Attr("Nope")
	var ae *apis.AttributeError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "pkg.legacy", ae.Module)
}

func TestPackage_ForwardsToPackage(t *testing.T) {
	ldr, rec := fixture(t)
	community := symx.MustDeclare(apis.Spec{
		Path:   "community.tools",
		All:    []string{"Old"},
		Lookup: map[string]string{"Old": "pkg.new_home"},
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))
	require.NoError(t, ldr.Register("community.tools", module.Of(community)))

	legacy := symx.MustDeclare(apis.Spec{
		Path:       "legacy.tools",
		All:        []string{"Old"},
		Deprecated: map[string]string{"Old": "community.tools"},
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))

	v, err := legacy.Attr("Old")
	require.NoError(t, err)
	assert.Same(t, theOld, v)
	require.Len(t, rec.all(), 1)
	assert.Equal(t, "community.tools", rec.all()[0].To)
}

func TestPackage_Accessors(t *testing.T) {
	spec := apis.Spec{
		Path:       "pkg",
		All:        []string{"B", "A", "B"},
		Symbols:    map[string]any{"C": 3},
		Lookup:     map[string]string{"A": "pkg.a"},
		Deprecated: map[string]string{"B": "pkg.b"},
		Fallback:   "pkg.rest",
	}
	p := symx.MustDeclare(spec)

	assert.Equal(t, "pkg", p.Path())
	assert.Equal(t, []string{"B", "A", "B"}, p.All())
	assert.Equal(t, []string{"A", "B", "C"}, p.Names())
	assert.Equal(t, map[string]string{"A": "pkg.a"}, p.Lookup())
	assert.Equal(t, map[string]string{"B": "pkg.b"}, p.Deprecated())
	assert.Equal(t, "pkg.rest", p.Fallback())
	assert.Equal(t, []apis.Forward{
		{Name: "A", Target: "pkg.a"},
		{Name: "B", Target: "pkg.b", Deprecated: true},
	}, p.Forwards())

	// Declaration copies its inputs.
	spec.All[0] = "mutated"
	spec.Lookup["Z"] = "pkg.z"
	assert.Equal(t, []string{"B", "A", "B"}, p.All())
	assert.NotContains(t, p.Lookup(), "Z")

	all := p.All()
	all[0] = "mutated"
	assert.Equal(t, "B", p.All()[0])
}

func TestDeclare_Errors(t *testing.T) {
	_, err := symx.Declare(apis.Spec{})
	assert.Error(t, err)

	_, err = symx.Declare(apis.Spec{
		Path:       "pkg",
		Lookup:     map[string]string{"A": "pkg.a"},
		Deprecated: map[string]string{"A": "pkg.b"},
	})
	assert.Error(t, err)

	assert.Panics(t, func() { symx.MustDeclare(apis.Spec{Path: ".bad"}) })
}

func TestAttrAs(t *testing.T) {
	ldr, _ := fixture(t)
	p := symx.MustDeclare(apis.Spec{
		Path:       "pkg",
		Symbols:    map[string]any{"N": 5},
		Deprecated: map[string]string{"Old": "pkg.new_home"},
	}, symx.WithLoader(ldr), symx.WithNotifier(notice.Nop()))

	o, err := symx.AttrAs[*Old](p, "Old")
	require.NoError(t, err)
	assert.Same(t, theOld, o)

	_, err = symx.AttrAs[string](p, "N")
	assert.ErrorIs(t, err, symx.ErrTypeMismatch)

	_, err = symx.AttrAs[int](p, "Missing")
	assert.ErrorIs(t, err, apis.ErrNoSuchAttribute)
}

func TestGlobalLoaderAndZapNotices(t *testing.T) {
	cfg := config.DefaultConfig()
	ldr := loader.New(cfg)
	core, logs := observer.New(zapcore.DebugLevel)
	symx.SetAll(&cfg, nil, ldr, notice.NewZap(zap.New(core)), builder.New())
	defer func() {
		c := config.DefaultConfig()
		symx.SetAll(&c, nil, loader.New(c), notice.NewZap(nil), builder.New())
		symx.UnpinLoader()
		symx.UnpinNotifier()
	}()

	require.NoError(t, symx.RegisterModule("pkg.new_home", module.Factory("pkg.new_home", map[string]any{"Old": theOld})))
	p := symx.MustDeclare(apis.Spec{
		Path:       "pkg",
		All:        []string{"Old"},
		Deprecated: map[string]string{"Old": "pkg.new_home"},
	})
	require.NoError(t, symx.RegisterPackage(p))

	v, err := p.Attr("Old")
	require.NoError(t, err)
	assert.Same(t, theOld, v)

	m, err := symx.Import("pkg")
	require.NoError(t, err)
	assert.Same(t, p, m)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "pkg.new_home", entry.ContextMap()["to"])
}

func TestAttr_ForwardCycle(t *testing.T) {
	ldr, rec := fixture(t)
	bind := []symx.Option{symx.WithLoader(ldr), symx.WithNotifier(rec)}

	a := symx.MustDeclare(apis.Spec{Path: "cycle.a", Lookup: map[string]string{"X": "cycle.b"}}, bind...)
	b := symx.MustDeclare(apis.Spec{Path: "cycle.b", Deprecated: map[string]string{"X": "cycle.a"}}, bind...)
	require.NoError(t, ldr.Register("cycle.a", module.Of(a)))
	require.NoError(t, ldr.Register("cycle.b", module.Of(b)))

	_, err := a.Attr("X")
	require.Error(t, err)
	assert.ErrorIs(t, err, apis.ErrForwardCycle)
	assert.ErrorIs(t, err, apis.ErrStaleTarget)
	var ce *apis.CycleError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []apis.Hop{
		{Module: "cycle.a", Name: "X"},
		{Module: "cycle.b", Name: "X"},
		{Module: "cycle.a", Name: "X"},
	}, ce.Trail)
	assert.Contains(t, err.Error(), "cycle.a.X -> cycle.b.X -> cycle.a.X")

	_, err = b.Attr("X")
	assert.ErrorIs(t, err, apis.ErrForwardCycle)
	assert.Empty(t, rec.all(), "failed redirects are not announced")
}

func TestAttr_ForwardToItself(t *testing.T) {
	ldr, rec := fixture(t)
	self := symx.MustDeclare(apis.Spec{
		Path:       "pkg.self",
		Deprecated: map[string]string{"X": "pkg.self"},
	}, symx.WithLoader(ldr), symx.WithNotifier(rec))
	require.NoError(t, ldr.Register("pkg.self", module.Of(self)))

	_, err := self.Attr("X")
	assert.ErrorIs(t, err, apis.ErrForwardCycle)
	assert.Empty(t, rec.all())
}

func TestAttr_FallbackCycle(t *testing.T) {
	ldr, rec := fixture(t)
	bind := []symx.Option{symx.WithLoader(ldr), symx.WithNotifier(rec)}

	a := symx.MustDeclare(apis.Spec{Path: "loop.a", Fallback: "loop.b"}, bind...)
	b := symx.MustDeclare(apis.Spec{Path: "loop.b", Fallback: "loop.a"}, bind...)
	require.NoError(t, ldr.Register("loop.a", module.Of(a)))
	require.NoError(t, ldr.Register("loop.b", module.Of(b)))

	_, err := a.Attr("Anything")
	assert.ErrorIs(t, err, apis.ErrForwardCycle)
	assert.Empty(t, rec.all())
}

func TestAttr_DiamondIsNotACycle(t *testing.T) {
	ldr, rec := fixture(t)
	bind := []symx.Option{symx.WithLoader(ldr), symx.WithNotifier(rec)}

	mid := symx.MustDeclare(apis.Spec{Path: "pkg.mid", Lookup: map[string]string{"Old": "pkg.new_home"}}, bind...)
	require.NoError(t, ldr.Register("pkg.mid", module.Of(mid)))
	top := symx.MustDeclare(apis.Spec{
		Path:   "pkg.top",
		Lookup: map[string]string{"Old": "pkg.mid"},
	}, bind...)

	for i := 0; i < 2; i++ {
		v, err := top.Attr("Old")
		require.NoError(t, err)
		assert.Same(t, theOld, v)
	}
}
