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

//go:build icicle

package gpu

import (
	"fmt"

	gnarkfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	icicle "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bn254"
	"github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bn254/ntt"
	"github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	"github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"
)

// icicleKernel is the GPU-backed accelerator. A single device stream
// backs it, so callers must serialize RadixFFT calls (the domain package
// creates one handle per Domain built WithAccelerator and takes no lock
// around RadixFFT). The NTT domain on the device is initialized once,
// lazily, on the first RadixFFT call, from that call's own omega; a later
// call with a different omega returns an error so the caller falls back
// to the CPU NTT. Create only probes that a CUDA backend is actually
// present.
type icicleKernel struct {
	maxSize     int
	priority    bool
	domainReady bool
	root        gnarkfr.Element
}

func create(logMaxSize int, priority bool) (Kernel, error) {
	if runtime.LoadBackendFromEnvOrDefault() != runtime.Success {
		return nil, fmt.Errorf("%w: no CUDA backend available", ErrUnavailable)
	}
	return &icicleKernel{maxSize: 1 << logMaxSize, priority: priority}, nil
}

func (k *icicleKernel) RadixFFT(buf []gnarkfr.Element, omega *gnarkfr.Element, logN int) error {
	n := 1 << logN
	if n > k.maxSize {
		return fmt.Errorf("gpu: buffer of size %d exceeds kernel max size %d", n, k.maxSize)
	}

	if !k.domainReady {
		var root icicle.ScalarField
		root.FromBytesLittleEndian(toLittleEndian(omega))
		if res := ntt.InitDomain(root, core.GetDefaultNTTInitDomainConfig()); res != runtime.Success {
			return fmt.Errorf("%w: InitDomain failed: %v", ErrUnavailable, res)
		}
		k.root.Set(omega)
		k.domainReady = true
	} else if !k.root.Equal(omega) {
		return fmt.Errorf("gpu: device domain was initialized for a different omega")
	}

	scalars := make([]icicle.ScalarField, n)
	for i := range buf {
		scalars[i].FromBytesLittleEndian(toLittleEndian(&buf[i]))
	}
	hostIn := core.HostSliceFromElements(scalars)
	hostOut := core.HostSliceWithSize[icicle.ScalarField](n)

	cfg := ntt.GetDefaultNttConfig()
	if res := ntt.Ntt(hostIn, core.KForward, &cfg, hostOut); res != runtime.Success {
		return fmt.Errorf("gpu: device NTT failed: %v", res)
	}

	for i := 0; i < n; i++ {
		fromLittleEndian(hostOut[i].ToBytesLittleEndian(), &buf[i])
	}
	return nil
}

func toLittleEndian(e *gnarkfr.Element) []byte {
	b := e.Bytes() // big-endian, fixed width
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b[:]
}

func fromLittleEndian(b []byte, e *gnarkfr.Element) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	e.SetBytes(b)
}
