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

// Package symx provides export registries and deprecated-symbol redirection
// for libraries that move names between packages.
//
// A library declares each public namespace as a Package: the curated export
// list it advertises, the names it defines in place, a lookup table of names
// loaded lazily from other modules, and a deprecation map of legacy names
// that now live elsewhere. Consumers resolve names with Package.Attr and get
// the live object wherever it is defined today; legacy names additionally
// produce a deprecation notice.
//
// # Design
//
// The process-wide state is a read-mostly snapshot holding:
//
//   - Config: notice policy (always, once, never), the allowlist of module
//     roots that may be imported, and the since/removal versions reported
//     in notices.
//
//   - Loader: the catalog of importable modules. Modules are registered as
//     factories and built on first Import, then cached. Concurrent first
//     imports share a single factory call.
//
//   - Notifier: the diagnostic channel for deprecation notices. The default
//     writes zap Warn records to zap.L().
//
//   - Builder: constructs loaders, notifiers and per-package resolvers.
//
// Readers load the snapshot atomically and never lock. Writers (SetConfig,
// SetLoader, SetNotifier, SetBuilder, SetExt, SetAll) serialize on a build
// mutex, derive a new snapshot and swap it in. SetLoader and SetNotifier pin
// the layer they set; pinned layers are not rebuilt until unpinned.
//
// # Resolution
//
// Package.Attr runs a fixed strategy chain, first hit wins:
//
//  1. names the package defines itself;
//  2. lookup entries, imported lazily and silently;
//  3. deprecated entries, imported lazily, followed by a notice;
//  4. the fallback module, if any, followed by a notice.
//
// Unknown names fail with *apis.AttributeError (apis.ErrNoSuchAttribute).
// Forwards whose target is missing fail with *apis.TargetError
// (apis.ErrStaleTarget, plus apis.ErrModuleNotFound or
// apis.ErrNoSuchAttribute). A chain of forwards that loops back, including a
// package forwarding a name to itself, fails with apis.ErrForwardCycle.
// Nothing is retried and no notice is emitted for a failed resolution.
//
// # Consistency
//
// The export list, the enumerable names and the lookup tables are expected
// to agree. Package validate checks this as set equality (duplicates in the
// export list are tolerated) and checks that every forward still resolves;
// package symxtest turns those checks into test assertions.
//
// # Usage
//
//	var Tools = symx.MustDeclare(apis.Spec{
//	    Path: "langchain.tools.json.tool",
//	    All:  []string{"JsonGetValueTool", "JsonListKeysTool", "JsonSpec"},
//	    Deprecated: map[string]string{
//	        "JsonSpec":         "langchain_community.tools.json.tool",
//	        "JsonListKeysTool": "langchain_community.tools",
//	        "JsonGetValueTool": "langchain_community.tools",
//	    },
//	})
//
//	spec, err := Tools.Attr("JsonSpec") // logs a deprecation notice
package symx
