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

package domain

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-evaldomain/internal/gpu"
	"github.com/consensys/gnark-evaldomain/internal/worker"
	"github.com/consensys/gnark-evaldomain/logger"
)

var kernelWarnOnce sync.Once

// bestFFT chooses between the accelerator, the parallel CPU path and the
// serial CPU path, per SPEC_FULL.md §4.5/§4.7. kernel may be nil (no
// accelerator configured, or one could not be created); accel is only
// ever attempted for Scalar-valued domains.
func bestFFT(pool *worker.Pool, kernel gpu.Kernel, a []Group, omega fr.Element, logN int, k kind, newZero func() Group) {
	if kernel != nil && k == scalarKind {
		buf := make([]fr.Element, len(a))
		for i, g := range a {
			buf[i] = g.(*Scalar).Element
		}
		if err := kernel.RadixFFT(buf, &omega, logN); err == nil {
			for i := range a {
				a[i] = NewScalar(buf[i])
			}
			return
		}
		kernelWarnOnce.Do(func() {
			logger.Logger().Warn().Msg("domain: accelerator RadixFFT failed, falling back to CPU NTT")
		})
	}

	logP := pool.LogNumCPUs()
	if logN > logP {
		fftParallel(pool, a, omega, logN, logP, newZero)
		return
	}
	fftSerial(a, omega, logN)
}

// createKernel attempts to create an accelerator kernel sized for up to
// 2^logMaxSize elements. Failure is logged once and treated as "no
// accelerator" for the lifetime of the domain, per §4.5/§7.2.
func createKernel(logMaxSize int) gpu.Kernel {
	k, err := gpu.Create(logMaxSize, false)
	if err != nil {
		kernelWarnOnce.Do(func() {
			logger.Logger().Warn().Err(err).Msg("domain: accelerator kernel unavailable, using CPU NTT")
		})
		return nil
	}
	return k
}
