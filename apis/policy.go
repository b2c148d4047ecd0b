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

package apis

import "fmt"

// NoticePolicy selects the cadence of deprecation notices.
type NoticePolicy uint8

const (
	// PolicyAlways emits a notice on every access to a forwarded name.
	PolicyAlways NoticePolicy = iota
	// PolicyOnce emits a notice on the first access per package and name.
	PolicyOnce
	// PolicyNever suppresses notices entirely.
	PolicyNever
)

// String returns the lowercase policy name.
func (p NoticePolicy) String() string {
	switch p {
	case PolicyAlways:
		return "always"
	case PolicyOnce:
		return "once"
	case PolicyNever:
		return "never"
	default:
		return fmt.Sprintf("NoticePolicy(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p NoticePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty value decodes to PolicyAlways.
func (p *NoticePolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "always":
		*p = PolicyAlways
	case "once":
		*p = PolicyOnce
	case "never":
		*p = PolicyNever
	default:
		return fmt.Errorf("symx: unknown notice policy %q", string(b))
	}
	return nil
}
