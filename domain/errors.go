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

import "errors"

// ErrPolynomialDegreeTooLarge is returned by FromCoeffs when the requested
// domain size exceeds 2^S, the field's two-adicity: no root of unity of
// that order exists, so no domain can be constructed.
var ErrPolynomialDegreeTooLarge = errors.New("domain: polynomial degree too large for the evaluation domain")
