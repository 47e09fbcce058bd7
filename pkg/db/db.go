// healthprobe
// (C) 2023, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package db

import (
	"sync"

	"github.com/caas-team/healthprobe/pkg/probe"
)

// DB stores the latest probe result per target
type DB interface {
	Save(result probe.Result)
	Get(target string) (result probe.Result, ok bool)
}

var _ DB = (*InMemory)(nil)

type InMemory struct {
	data sync.Map
}

// NewInMemory creates a new in-memory database
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Save replaces the stored result of the result's target
func (i *InMemory) Save(result probe.Result) {
	i.data.Store(result.URL, result)
}

func (i *InMemory) Get(target string) (probe.Result, bool) {
	tmp, ok := i.data.Load(target)
	if !ok {
		return probe.Result{}, false
	}
	return tmp.(probe.Result), true
}
