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

// Package gpu defines the narrow interface the domain package dispatches
// an NTT to when an accelerator is configured. By default (no "icicle"
// build tag) Create always fails and every Domain runs on the CPU path;
// building with -tags icicle links github.com/ingonyama-zk/icicle-gnark/v3
// and routes RadixFFT calls to the GPU.
package gpu

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrUnavailable is returned by Create when no accelerator could be
// instantiated (missing device, driver, or build without the icicle tag).
var ErrUnavailable = errors.New("gpu: accelerator kernel unavailable")

// Kernel is the narrow interface an accelerator must satisfy: an in-place
// radix-2 NTT over a field-element buffer. Implementations must accept
// buffers up to the max_size they were Created with, and only ever
// operate on Scalar-valued (field element) buffers.
type Kernel interface {
	// RadixFFT computes the radix-2 NTT of buf in place using omega as the
	// len(buf)-th root of unity (log_n = log2(len(buf))).
	RadixFFT(buf []fr.Element, omega *fr.Element, logN int) error
}

// Create attempts to instantiate a kernel sized for up to 2^logMaxSize
// elements. priority hints at whether this caller should preempt other
// kernel users sharing the device. Kernel creation is best-effort: a
// failure here is never fatal to a caller, only to the accelerator path.
func Create(logMaxSize int, priority bool) (Kernel, error) {
	return create(logMaxSize, priority)
}
