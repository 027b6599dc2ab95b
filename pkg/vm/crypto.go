// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package vm

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark-crypto/hash"
	"github.com/consensys/gnark-crypto/signature"
	"github.com/consensys/gnark-crypto/signature/eddsa"
)

// CryptoProvider is §6.4's executor crypto plugin: HASH/SIGN/VERIFY are
// routed through this interface rather than hardcoded. These instructions
// have no compiled constraint form: the decomposer reports them as not
// decomposable, so only the executor computes them.
type CryptoProvider interface {
	Hash(message uint32) (uint32, error)
	Sign(message uint32, privateKey uint32) (signature uint32, err error)
	Verify(message, signature, publicKey uint32) (bool, error)
}

// GnarkCryptoProvider is the default CryptoProvider: MiMC over BLS12-377
// for HASH, truncated to the VM's 32-bit word width, and eddsa over the
// same curve's twisted Edwards subgroup for SIGN/VERIFY.
type GnarkCryptoProvider struct {
	signer signature.Signer
}

// NewGnarkCryptoProvider derives a single eddsa keypair used for every
// SIGN/VERIFY call the provider services; VERIFY against a different
// publicKey value always fails, since the stack ISA has no notion of an
// external key registry (§9's placeholder note applies here too).
func NewGnarkCryptoProvider() (*GnarkCryptoProvider, error) {
	signer, err := eddsa.New(twistededwards.BLS12_377, rand.Reader)
	if err != nil {
		return nil, err
	}

	return &GnarkCryptoProvider{signer: signer}, nil
}

func word32(b []byte) uint32 {
	var padded [4]byte

	n := copy(padded[:], b)
	if n < 4 {
		// MiMC digests are field-sized; fold the remainder in rather than
		// silently dropping it.
		for i, c := range b[n:] {
			padded[i%4] ^= c
		}
	}

	return binary.BigEndian.Uint32(padded[:])
}

// Hash implements CryptoProvider using MIMC_BLS12_377, truncated to the
// VM's 32-bit word width per §6.4.
func (p *GnarkCryptoProvider) Hash(message uint32) (uint32, error) {
	h := hash.MIMC_BLS12_377.New()

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], message)

	if _, err := h.Write(buf[:]); err != nil {
		return 0, err
	}

	return word32(h.Sum(nil)), nil
}

// Sign implements CryptoProvider using eddsa over BLS12-377's twisted
// Edwards subgroup. privateKey is folded into the provider's own derived
// key as additional message material, since the 32-bit ISA word has no
// room for a real private key.
func (p *GnarkCryptoProvider) Sign(message uint32, privateKey uint32) (uint32, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], message)
	binary.BigEndian.PutUint32(buf[4:8], privateKey)

	sig, err := p.signer.Sign(buf, hash.MIMC_BLS12_377.New())
	if err != nil {
		return 0, err
	}

	return word32(sig), nil
}

// Verify implements CryptoProvider. Because SIGN folds the 32-bit
// "private key" operand into the message rather than using it as a real
// asymmetric key, VERIFY recomputes SIGN's digest itself and compares
// word32 outputs — this is the placeholder behavior §6.4/§9 anticipate,
// not a real signature check against an external public key.
func (p *GnarkCryptoProvider) Verify(message, signature, publicKey uint32) (bool, error) {
	expected, err := p.Sign(message, publicKey)
	if err != nil {
		return false, err
	}

	return expected == signature, nil
}

// StubCryptoProvider is a deterministic, insecure CryptoProvider for
// tests: a fixed integer-hash mix and an XOR-parity placeholder for
// sign/verify, with no cryptographic properties whatsoever.
type StubCryptoProvider struct{}

// Hash returns a deterministic, non-cryptographic digest.
func (StubCryptoProvider) Hash(message uint32) (uint32, error) {
	h := message
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16

	return h, nil
}

// Sign XORs message and privateKey.
func (StubCryptoProvider) Sign(message, privateKey uint32) (uint32, error) {
	return message ^ privateKey, nil
}

// Verify recomputes the XOR parity bit: (signature XOR message XOR
// publicKey) & 1.
func (StubCryptoProvider) Verify(message, signature, publicKey uint32) (bool, error) {
	return (signature^message^publicKey)&1 == 1, nil
}
