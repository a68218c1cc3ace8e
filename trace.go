// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package modsys

import "github.com/golang/glog"

// trace logs step-by-step compiler internals (its one caller is
// Registry.Declare, tracing each identifier assignment) at verbosity 1. It never
// reaches a user running without -v=1 or higher; Reporter is the
// channel for anything a module author needs to see.
func trace(format string, a ...interface{}) {
	if glog.V(1) {
		glog.Infof(format, a...)
	}
}
