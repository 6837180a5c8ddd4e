// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !icicle

package gpu

// create is the default, CUDA-free build: no accelerator is ever
// available, so domain.bestFFT always falls back to the CPU NTT paths.
func create(logMaxSize int, priority bool) (Kernel, error) {
	return nil, ErrUnavailable
}
